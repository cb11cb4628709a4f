package toc

// Data-driven special cases, kept apart from the dispatch logic so the
// catalog can grow without touching the builders.

// compoundLegalTitles lists the texts that must use the compound-legal
// convention. These legal codes cannot be distinguished structurally from
// plain schema texts, so the dispatch checks this allow-list first.
var compoundLegalTitles = map[string]bool{
	"Shulchan Arukh":        true,
	"Arba'ah Turim":         true,
	"Kitzur Shulchan Arukh": true,
}

// knownText records the primary unit label and total unit count for texts
// whose index documents do not carry the count themselves.
type knownText struct {
	Unit  string
	Total int
}

// knownTotals is consulted by the flat and schema builders when a numbered
// run of leaves has to be synthesized.
var knownTotals = map[string]knownText{
	"Pirkei Avot":       {Unit: "Chapter", Total: 6},
	"Mesillat Yesharim": {Unit: "Chapter", Total: 26},
	"Orchot Tzadikim":   {Unit: "Gate", Total: 28},
	"Tanya":             {Unit: "Chapter", Total: 53},
	"Sefer HaYashar":    {Unit: "Gate", Total: 18},
	"Tehillim":          {Unit: "Psalm", Total: 150},
}

// primaryUnits are the section labels that trigger numbered-leaf synthesis in
// the schema builder.
var primaryUnits = map[string]bool{
	"Chapter": true,
	"Gate":    true,
	"Psalm":   true,
}

func matchCompoundLegal(_ *rawIndex, title string) bool {
	return compoundLegalTitles[title]
}
