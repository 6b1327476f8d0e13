// Package report turns a ScanResult into its JSON wire record and into
// human-readable text, markdown and SARIF output.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core"
)

// Record is the JSON wire contract consumed by automated callers.
// Field names and shapes must stay stable.
type Record struct {
	Path       string          `json:"path"`
	FileCount  int             `json:"file_count"`
	TotalLines int             `json:"total_lines"`
	Verdict    string          `json:"verdict"`
	Summary    Summary         `json:"summary"`
	Findings   []FindingRecord `json:"findings"`
	Errors     []string        `json:"errors"`
}

// Summary counts findings per severity label.
type Summary struct {
	Critical int `json:"CRITICAL"`
	High     int `json:"HIGH"`
	Medium   int `json:"MEDIUM"`
	Low      int `json:"LOW"`
	Info     int `json:"INFO"`
}

// FindingRecord is the wire form of a core.Finding.
type FindingRecord struct {
	Category      string `json:"category"`
	Severity      string `json:"severity"`
	SeverityLevel int    `json:"severity_level"`
	Message       string `json:"message"`
	File          string `json:"file"`
	Line          int    `json:"line"`
	MatchedText   string `json:"matched_text"`
	InCodeBlock   bool   `json:"in_code_block"`
}

// NewRecord converts a result into its wire record. Findings keep
// discovery order.
func NewRecord(r *core.ScanResult) Record {
	counts := r.Summary()
	rec := Record{
		Path:       r.Path,
		FileCount:  r.FileCount,
		TotalLines: r.TotalLines,
		Verdict:    string(r.Verdict),
		Summary: Summary{
			Critical: counts[core.SeverityCritical],
			High:     counts[core.SeverityHigh],
			Medium:   counts[core.SeverityMedium],
			Low:      counts[core.SeverityLow],
			Info:     counts[core.SeverityInfo],
		},
		Findings: make([]FindingRecord, 0, len(r.Findings)),
		Errors:   make([]string, 0, len(r.Errors)),
	}

	for _, f := range r.Findings {
		rec.Findings = append(rec.Findings, FindingRecord{
			Category:      string(f.Category),
			Severity:      f.Severity.String(),
			SeverityLevel: int(f.Severity),
			Message:       f.Message,
			File:          f.File,
			Line:          f.Line,
			MatchedText:   f.MatchedText,
			InCodeBlock:   f.InCodeBlock,
		})
	}
	rec.Errors = append(rec.Errors, r.Errors...)

	return rec
}

// WriteJSON writes the indented wire record to w.
func WriteJSON(w io.Writer, r *core.ScanResult) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewRecord(r)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
