package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"yhmonitor/internal/monitor"
	"yhmonitor/internal/program"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// SourceReport is the per-source section of an OutputResult.
type SourceReport struct {
	Source   string        `json:"source"`
	Date     string        `json:"date"`
	PrevDate string        `json:"prev_date,omitempty"`
	Total    int           `json:"total"`
	Added    []program.Key `json:"added"`
	Removed  []program.Key `json:"removed"`
	FirstRun bool          `json:"first_run"`
	Error    string        `json:"error,omitempty"`
}

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt time.Time      `json:"checked_at"`
	Sources   []SourceReport `json:"sources"`
	Changed   bool           `json:"changed"`
}

// NewOutputResult converts run results into the output document.
func NewOutputResult(results []monitor.SourceResult) *OutputResult {
	out := &OutputResult{
		CheckedAt: time.Now().UTC(),
		Sources:   make([]SourceReport, 0, len(results)),
		Changed:   monitor.Changed(results),
	}

	for _, res := range results {
		report := SourceReport{
			Source:   res.Source,
			Date:     res.Date,
			PrevDate: res.PrevDate,
			Total:    res.Total,
			Added:    res.Diff.Added,
			Removed:  res.Diff.Removed,
			FirstRun: res.FirstRun,
		}
		// Keep the JSON arrays non-null.
		if report.Added == nil {
			report.Added = []program.Key{}
		}
		if report.Removed == nil {
			report.Removed = []program.Key{}
		}
		if res.Err != nil {
			report.Error = res.Err.Error()
		}
		out.Sources = append(out.Sources, report)
	}

	return out
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text. Errored sources are
// skipped here; the caller reports those on stderr.
func writeText(w io.Writer, result *OutputResult) error {
	for _, src := range result.Sources {
		if src.Error != "" {
			continue
		}

		if src.FirstRun {
			fmt.Fprintf(w, "[%s] First run or no data for yesterday, skipping comparison.\n", src.Source)
			continue
		}

		if len(src.Added) == 0 && len(src.Removed) == 0 {
			fmt.Fprintf(w, "[%s] No changes.\n", src.Source)
			continue
		}

		if len(src.Added) > 0 {
			fmt.Fprintf(w, "[%s] New program(s) added:\n", src.Source)
			for _, key := range src.Added {
				fmt.Fprintf(w, "  + %s by %s (%s)\n", key.Title, key.Provider, key.Link)
			}
		}
		if len(src.Removed) > 0 {
			fmt.Fprintf(w, "[%s] Program(s) removed:\n", src.Source)
			for _, key := range src.Removed {
				fmt.Fprintf(w, "  - %s by %s (%s)\n", key.Title, key.Provider, key.Link)
			}
		}
	}

	return nil
}
