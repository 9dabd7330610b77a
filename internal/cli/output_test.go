package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"yhmonitor/internal/monitor"
	"yhmonitor/internal/program"
)

func TestNewOutputResult(t *testing.T) {
	results := []monitor.SourceResult{
		{
			Source:   "on-site",
			Date:     "20260824",
			PrevDate: "20260823",
			Total:    12,
			Diff: program.DiffResult{
				Added:   []program.Key{{Title: "C", Provider: "Z", Link: "u3"}},
				Removed: []program.Key{{Title: "A", Provider: "X", Link: "u1"}},
			},
		},
		{Source: "remote", Date: "20260824", FirstRun: true},
		{Source: "broken", Date: "20260824", Err: errors.New("connection refused")},
	}

	out := NewOutputResult(results)

	if !out.Changed {
		t.Error("expected changed to be true")
	}
	if len(out.Sources) != 3 {
		t.Fatalf("expected 3 source reports, got %d", len(out.Sources))
	}

	onSite := out.Sources[0]
	if onSite.PrevDate != "20260823" {
		t.Errorf("expected prev date 20260823, got %q", onSite.PrevDate)
	}
	if onSite.Total != 12 {
		t.Errorf("expected total 12, got %d", onSite.Total)
	}
	if len(onSite.Added) != 1 || onSite.Added[0].Title != "C" {
		t.Errorf("unexpected added list: %v", onSite.Added)
	}
	if len(onSite.Removed) != 1 || onSite.Removed[0].Title != "A" {
		t.Errorf("unexpected removed list: %v", onSite.Removed)
	}

	remote := out.Sources[1]
	if !remote.FirstRun {
		t.Error("expected first run for remote")
	}
	if remote.Added == nil || remote.Removed == nil {
		t.Error("expected empty slices, not nil")
	}

	broken := out.Sources[2]
	if broken.Error != "connection refused" {
		t.Errorf("expected error string, got %q", broken.Error)
	}
}

func TestWriteTextChanges(t *testing.T) {
	result := &OutputResult{
		Sources: []SourceReport{
			{
				Source:  "on-site",
				Added:   []program.Key{{Title: "Javautvecklare", Provider: "Lexicon", Link: "https://example.org/c"}},
				Removed: []program.Key{{Title: "Nätverkstekniker", Provider: "STI", Link: "https://example.org/b"}},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, result, FormatText); err != nil {
		t.Fatalf("WriteOutput() unexpected error: %v", err)
	}

	want := "[on-site] New program(s) added:\n" +
		"  + Javautvecklare by Lexicon (https://example.org/c)\n" +
		"[on-site] Program(s) removed:\n" +
		"  - Nätverkstekniker by STI (https://example.org/b)\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestWriteTextNoChanges(t *testing.T) {
	result := &OutputResult{
		Sources: []SourceReport{{Source: "remote", Added: []program.Key{}, Removed: []program.Key{}}},
	}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, result, FormatText); err != nil {
		t.Fatalf("WriteOutput() unexpected error: %v", err)
	}

	if buf.String() != "[remote] No changes.\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestWriteTextFirstRun(t *testing.T) {
	result := &OutputResult{
		Sources: []SourceReport{{Source: "on-site", FirstRun: true}},
	}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, result, FormatText); err != nil {
		t.Fatalf("WriteOutput() unexpected error: %v", err)
	}

	want := "[on-site] First run or no data for yesterday, skipping comparison.\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestWriteTextSkipsErroredSources(t *testing.T) {
	result := &OutputResult{
		Sources: []SourceReport{
			{Source: "broken", Error: "connection refused"},
			{Source: "remote"},
		},
	}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, result, FormatText); err != nil {
		t.Fatalf("WriteOutput() unexpected error: %v", err)
	}

	if strings.Contains(buf.String(), "broken") {
		t.Errorf("expected errored source to be skipped, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[remote] No changes.") {
		t.Errorf("expected healthy source to be reported, got %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	results := []monitor.SourceResult{
		{Source: "on-site", Date: "20260824", FirstRun: true},
	}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, NewOutputResult(results), FormatJSON); err != nil {
		t.Fatalf("WriteOutput() unexpected error: %v", err)
	}

	var decoded OutputResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode JSON output: %v", err)
	}
	if len(decoded.Sources) != 1 || decoded.Sources[0].Source != "on-site" {
		t.Errorf("unexpected decoded sources: %+v", decoded.Sources)
	}
	if !decoded.Sources[0].FirstRun {
		t.Error("expected first_run to survive the round trip")
	}

	// Arrays must encode as [], not null, for downstream consumers.
	if strings.Contains(buf.String(), `"added": null`) {
		t.Errorf("expected empty array for added, got:\n%s", buf.String())
	}
}

func TestWriteOutputUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := WriteOutput(&buf, &OutputResult{}, OutputFormat("xml"))
	if err == nil {
		t.Error("expected error for unknown format, got nil")
	}
}
