package store

import (
	"encoding/json"
	"io"

	"github.com/san-kum/brim/internal/assembly"
	"github.com/san-kum/brim/internal/symbolic"
)

type ExportData struct {
	Model        string           `json:"model"`
	System       symbolic.Summary `json:"system"`
	Descriptions []ExportSymbol   `json:"descriptions"`
}

type ExportSymbol struct {
	Symbol      string `json:"symbol"`
	Dynamic     bool   `json:"dynamic"`
	Owner       string `json:"owner"`
	Description string `json:"description"`
}

// ExportJSON writes the system summary and the description table of a built
// model as one JSON document.
func ExportJSON(w io.Writer, model string, entries []assembly.Entry, sys *symbolic.System) error {
	data := ExportData{
		Model:        model,
		System:       sys.Summary(),
		Descriptions: make([]ExportSymbol, 0, len(entries)),
	}
	for _, r := range Rows(entries) {
		data.Descriptions = append(data.Descriptions, ExportSymbol(r))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
