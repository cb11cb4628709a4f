package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sifria",
	Short: "Reading service for a structured text library",
	Long: `Sifria serves a mobile reading app backed by an upstream text library.

It normalizes the library's heterogeneous index documents into uniform,
navigable outlines, and adds reading-session features on top:
  - Table-of-contents browsing with expand/collapse state
  - Sequential next/previous navigation between sections
  - Bookmarks with markdown notes
  - Per-user reading settings and meditation timers
  - Chapter export to .docx`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
