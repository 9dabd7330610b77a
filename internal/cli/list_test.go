package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"yhmonitor/internal/program"
)

func TestFilterRecords(t *testing.T) {
	records := []program.Record{
		{Title: "Systemutvecklare .NET", Provider: "IT-Högskolan", Location: "Göteborg"},
		{Title: "Frontendutvecklare", Provider: "Chas Academy", Location: "Stockholm"},
		{Title: "Javautvecklare", Provider: "Lexicon", Location: "Göteborg"},
	}

	tests := []struct {
		name       string
		provider   string
		location   string
		wantTitles []string
	}{
		{
			name:       "no filters",
			wantTitles: []string{"Systemutvecklare .NET", "Frontendutvecklare", "Javautvecklare"},
		},
		{
			name:       "provider substring is case-insensitive",
			provider:   "högskolan",
			wantTitles: []string{"Systemutvecklare .NET"},
		},
		{
			name:       "location filter",
			location:   "göteborg",
			wantTitles: []string{"Systemutvecklare .NET", "Javautvecklare"},
		},
		{
			name:       "both filters",
			provider:   "lexicon",
			location:   "göteborg",
			wantTitles: []string{"Javautvecklare"},
		},
		{
			name:       "no match",
			provider:   "nackademin",
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterRecords(records, tt.provider, tt.location)

			if len(got) != len(tt.wantTitles) {
				t.Fatalf("expected %d records, got %d", len(tt.wantTitles), len(got))
			}
			for i, want := range tt.wantTitles {
				if got[i].Title != want {
					t.Errorf("expected title %q at %d, got %q", want, i, got[i].Title)
				}
			}
		})
	}
}

func TestSortRecords(t *testing.T) {
	t.Run("by title", func(t *testing.T) {
		records := []program.Record{
			{Title: "Frontendutvecklare", Provider: "Chas Academy"},
			{Title: "agil projektledare", Provider: "Nackademin"},
			{Title: "Backendutvecklare", Provider: "Lexicon"},
		}

		sortRecords(records, SortByTitle)

		want := []string{"agil projektledare", "Backendutvecklare", "Frontendutvecklare"}
		for i, title := range want {
			if records[i].Title != title {
				t.Errorf("expected %q at %d, got %q", title, i, records[i].Title)
			}
		}
	})

	t.Run("by provider with title tie-break", func(t *testing.T) {
		records := []program.Record{
			{Title: "Javautvecklare", Provider: "Lexicon"},
			{Title: "Backendutvecklare", Provider: "Lexicon"},
			{Title: "Frontendutvecklare", Provider: "Chas Academy"},
		}

		sortRecords(records, SortByProvider)

		if records[0].Provider != "Chas Academy" {
			t.Errorf("expected Chas Academy first, got %q", records[0].Provider)
		}
		if records[1].Title != "Backendutvecklare" || records[2].Title != "Javautvecklare" {
			t.Errorf("expected title tie-break within provider, got %q, %q", records[1].Title, records[2].Title)
		}
	})

	t.Run("by start with empty last", func(t *testing.T) {
		records := []program.Record{
			{Title: "A", Start: ""},
			{Title: "B", Start: "2026-09-01"},
			{Title: "C", Start: "2026-08-15"},
		}

		sortRecords(records, SortByStart)

		want := []string{"C", "B", "A"}
		for i, title := range want {
			if records[i].Title != title {
				t.Errorf("expected %q at %d, got %q", title, i, records[i].Title)
			}
		}
	})
}

func TestRenderListJSON(t *testing.T) {
	records := []program.Record{
		{Title: "Systemutvecklare .NET", Provider: "IT-Högskolan", Start: "Augusti 2026", Location: "Göteborg"},
	}

	var buf bytes.Buffer
	if err := renderList(&buf, "on-site", "20260824", records, "json"); err != nil {
		t.Fatalf("renderList() unexpected error: %v", err)
	}

	var doc struct {
		Source   string           `json:"source"`
		Date     string           `json:"date"`
		Programs []program.Record `json:"programs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to decode JSON output: %v", err)
	}

	if doc.Source != "on-site" || doc.Date != "20260824" {
		t.Errorf("unexpected document header: %+v", doc)
	}
	if len(doc.Programs) != 1 || doc.Programs[0].Title != "Systemutvecklare .NET" {
		t.Errorf("unexpected programs: %+v", doc.Programs)
	}
}

func TestRenderListTable(t *testing.T) {
	records := []program.Record{
		{Title: "Systemutvecklare .NET", Provider: "IT-Högskolan", Location: "Göteborg"},
	}

	var buf bytes.Buffer
	if err := renderList(&buf, "on-site", "20260824", records, "table"); err != nil {
		t.Fatalf("renderList() unexpected error: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "on-site (20260824): 1 program(s)") {
		t.Errorf("expected summary line, got:\n%s", got)
	}
	if !strings.Contains(got, "IT-Högskolan") {
		t.Errorf("expected provider in table, got:\n%s", got)
	}
}

func TestRenderListCSV(t *testing.T) {
	records := []program.Record{
		{Title: "Systemutvecklare .NET", Provider: "IT-Högskolan", Location: "Göteborg"},
	}

	var buf bytes.Buffer
	if err := renderList(&buf, "on-site", "20260824", records, "csv"); err != nil {
		t.Fatalf("renderList() unexpected error: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "Systemutvecklare .NET") {
		t.Errorf("expected record in CSV, got:\n%s", got)
	}
	if strings.Contains(got, "on-site (") {
		t.Errorf("expected no summary line in CSV output, got:\n%s", got)
	}
}
