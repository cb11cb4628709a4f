// Package library is the HTTP client for the upstream public texts API. It
// retrieves raw index documents and text content; all interpretation of the
// index happens in the toc package.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// ErrNotFound reports that the upstream catalog has no such text or reference.
var ErrNotFound = errors.New("text not found")

// RetryableError indicates a transient upstream failure (rate limit, server
// error) worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable upstream error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// Client communicates with the texts API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	attempts   uint
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		attempts: 3,
	}
}

// GetIndex retrieves the raw index document for a named text. The payload is
// returned as-is for the normalizer to interpret.
func (c *Client) GetIndex(ctx context.Context, title string) (json.RawMessage, error) {
	body, err := c.get(ctx, "/api/v2/raw/index/"+url.PathEscape(title))
	if err != nil {
		return nil, fmt.Errorf("get index %s: %w", title, err)
	}
	return json.RawMessage(body), nil
}

// TextResult is one retrievable unit of text content.
type TextResult struct {
	Ref      string   `json:"ref"`
	Heading  string   `json:"heading"`
	Segments []string `json:"segments"`
	Hebrew   []string `json:"hebrew,omitempty"`
	Next     string   `json:"next,omitempty"`
	Prev     string   `json:"prev,omitempty"`
}

type textResponse struct {
	Ref        string          `json:"ref"`
	SectionRef string          `json:"sectionRef"`
	Text       json.RawMessage `json:"text"`
	He         json.RawMessage `json:"he"`
	Next       *string         `json:"next"`
	Prev       *string         `json:"prev"`
}

// GetText retrieves the content at a reference. Segments may contain inline
// HTML; callers clean them before display.
func (c *Client) GetText(ctx context.Context, ref string) (*TextResult, error) {
	body, err := c.get(ctx, "/api/texts/"+url.PathEscape(ref)+"?context=0&commentary=0")
	if err != nil {
		return nil, fmt.Errorf("get text %s: %w", ref, err)
	}

	var resp textResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode text %s: %w", ref, err)
	}

	result := &TextResult{
		Ref:      resp.Ref,
		Heading:  resp.SectionRef,
		Segments: flattenStrings(resp.Text),
		Hebrew:   flattenStrings(resp.He),
	}
	if result.Ref == "" {
		result.Ref = ref
	}
	if result.Heading == "" {
		result.Heading = result.Ref
	}
	if resp.Next != nil {
		result.Next = *resp.Next
	}
	if resp.Prev != nil {
		result.Prev = *resp.Prev
	}
	return result, nil
}

// get performs one GET with retry on transient failures. 404 maps to
// ErrNotFound and is never retried.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			var err error
			body, err = c.doGet(ctx, path)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var re *RetryableError
			return errors.As(err, &re)
		}),
	)
	return body, err
}

func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RetryableError{Message: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	case resp.StatusCode != http.StatusOK:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, &RetryableError{Message: fmt.Sprintf("read response: %s", err)}
	}
	return body, nil
}

// flattenStrings collapses the upstream's jagged text arrays (a string, an
// array of strings, or arrays of arrays) into a flat segment list, source
// order preserved.
func flattenStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil
		}
		return []string{s}
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil
	}
	var out []string
	for _, el := range arr {
		out = append(out, flattenStrings(el)...)
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
