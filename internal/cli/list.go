package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"yhmonitor/internal/program"
	"yhmonitor/internal/snapshot"
)

var (
	flagListSource   string
	flagListDate     string
	flagListProvider string
	flagListLocation string
	flagListSort     string
	flagListFormat   string
)

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the programs in a stored snapshot",
		Long: `List the programs stored in a snapshot. Defaults to the latest
snapshot of every source; use --source and --date to narrow down.`,
		RunE: runList,
	}

	cmd.Flags().StringVar(&flagListSource, "source", "", "Source name (defaults to all sources)")
	cmd.Flags().StringVar(&flagListDate, "date", "", "Snapshot date as YYYYMMDD (defaults to the latest)")
	cmd.Flags().StringVar(&flagListProvider, "provider", "", "Only show programs whose provider contains this text")
	cmd.Flags().StringVar(&flagListLocation, "location", "", "Only show programs whose location contains this text")
	cmd.Flags().StringVar(&flagListSort, "sort", "title", "Sort order: title, provider or start")
	cmd.Flags().StringVar(&flagListFormat, "format", "table", "Output format: table, csv or json")

	return cmd
}

// runList shows the stored snapshot contents
func runList(cmd *cobra.Command, args []string) error {
	order := SortOrder(strings.ToLower(flagListSort))
	if order != SortByTitle && order != SortByProvider && order != SortByStart {
		return fmt.Errorf("invalid sort order: %s (must be 'title', 'provider' or 'start')", flagListSort)
	}

	format := strings.ToLower(flagListFormat)
	if format != "table" && format != "csv" && format != "json" {
		return fmt.Errorf("invalid format: %s (must be 'table', 'csv' or 'json')", flagListFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := snapshot.New(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	sources := []string{flagListSource}
	if flagListSource == "" {
		sources, err = store.Sources()
		if err != nil {
			return fmt.Errorf("listing sources: %w", err)
		}
		if len(sources) == 0 {
			fmt.Println("No snapshots found.")
			return nil
		}
	}

	for _, source := range sources {
		date := flagListDate
		if date == "" {
			date, err = store.Latest(source)
			if err != nil {
				return fmt.Errorf("finding latest snapshot for %s: %w", source, err)
			}
		}

		records, err := store.Load(source, date)
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}

		records = filterRecords(records, flagListProvider, flagListLocation)
		sortRecords(records, order)

		if err := renderList(os.Stdout, source, date, records, format); err != nil {
			return err
		}
	}

	return nil
}

// filterRecords keeps records matching the provider and location
// substrings, case-insensitively. Empty filters match everything.
func filterRecords(records []program.Record, provider, location string) []program.Record {
	if provider == "" && location == "" {
		return records
	}

	provider = strings.ToLower(provider)
	location = strings.ToLower(location)

	filtered := make([]program.Record, 0, len(records))
	for _, rec := range records {
		if provider != "" && !strings.Contains(strings.ToLower(rec.Provider), provider) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(rec.Location), location) {
			continue
		}
		filtered = append(filtered, rec)
	}

	return filtered
}

// renderList writes one snapshot in the requested format.
func renderList(w io.Writer, source, date string, records []program.Record, format string) error {
	if format == "json" {
		doc := struct {
			Source   string           `json:"source"`
			Date     string           `json:"date"`
			Programs []program.Record `json:"programs"`
		}{Source: source, Date: date, Programs: records}
		if doc.Programs == nil {
			doc.Programs = []program.Record{}
		}

		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(doc)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Title", "Provider", "Start", "Scope", "Pace", "Location"})
	for _, rec := range records {
		t.AppendRow(table.Row{rec.Title, rec.Provider, rec.Start, rec.Scope, rec.Pace, rec.Location})
	}

	if format == "csv" {
		t.RenderCSV()
		return nil
	}

	fmt.Fprintf(w, "%s (%s): %d program(s)\n", source, date, len(records))
	t.Render()
	return nil
}
