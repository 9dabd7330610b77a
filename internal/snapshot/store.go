package snapshot

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"yhmonitor/internal/program"
)

// DateLayout is the date format used in snapshot file names.
const DateLayout = "20060102"

// Columns is the fixed column order of a snapshot file.
var Columns = []string{"title", "provider", "start", "scope", "pace", "location", "link"}

// identityColumns must be present in a snapshot header for the file to
// be usable in a diff.
var identityColumns = []string{"title", "provider", "link"}

var (
	// ErrNoSnapshot is returned by Load and Latest when no snapshot
	// exists for the requested source and date.
	ErrNoSnapshot = errors.New("no snapshot")

	// ErrSchema is returned by Load when a snapshot file's header lacks
	// one of the identity columns.
	ErrSchema = errors.New("snapshot header missing identity column")
)

// Store persists dated CSV snapshots under a data directory, one
// subdirectory per source and one file per calendar day.
type Store struct {
	dataDir string
}

// New creates a Store rooted at dataDir, creating the directory if it
// does not exist. A leading ~/ is expanded to the home directory.
func New(dataDir string) (*Store, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{
		dataDir: dataDir,
	}, nil
}

// snapshotPath returns the path of the snapshot file for source on date.
func (s *Store) snapshotPath(source, date string) string {
	return filepath.Join(s.dataDir, source, date+".csv")
}

// Write stores records as the snapshot for source on date, replacing
// any snapshot already written for that day.
func (s *Store) Write(source, date string, records []program.Record) error {
	dir := filepath.Join(s.dataDir, source)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating source directory: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}
	for _, rec := range records {
		row := []string{rec.Title, rec.Provider, rec.Start, rec.Scope, rec.Pace, rec.Location, rec.Link}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(s.snapshotPath(source, date), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// Load reads the snapshot for source on date. It returns ErrNoSnapshot
// when the file does not exist and ErrSchema when the file's header
// lacks an identity column. Optional columns absent from the header
// load as empty strings.
func (s *Store) Load(source, date string) ([]program.Record, error) {
	f, err := os.Open(s.snapshotPath(source, date))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNoSnapshot, source, date)
		}
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrSchema)
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range identityColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrSchema, name)
		}
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	records := make([]program.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, program.Record{
			Title:    field(row, index, "title"),
			Provider: field(row, index, "provider"),
			Start:    field(row, index, "start"),
			Scope:    field(row, index, "scope"),
			Pace:     field(row, index, "pace"),
			Location: field(row, index, "location"),
			Link:     field(row, index, "link"),
		})
	}

	return records, nil
}

// field returns the named column of row, or an empty string when the
// column is absent or the row is short.
func field(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Dates returns the snapshot dates available for source, oldest first.
// A source with no snapshot directory yields an empty slice.
func (s *Store) Dates(source string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dataDir, source))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	dates := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		date := strings.TrimSuffix(name, ".csv")
		if _, err := time.Parse(DateLayout, date); err != nil {
			continue
		}
		dates = append(dates, date)
	}

	// YYYYMMDD sorts chronologically
	sort.Strings(dates)
	return dates, nil
}

// Latest returns the most recent snapshot date for source, or
// ErrNoSnapshot when the source has none.
func (s *Store) Latest(source string) (string, error) {
	dates, err := s.Dates(source)
	if err != nil {
		return "", err
	}
	if len(dates) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoSnapshot, source)
	}
	return dates[len(dates)-1], nil
}

// Prune deletes all but the newest keep snapshots for source and
// returns the number of files removed.
func (s *Store) Prune(source string, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	dates, err := s.Dates(source)
	if err != nil {
		return 0, err
	}
	if len(dates) <= keep {
		return 0, nil
	}

	removed := 0
	for _, date := range dates[:len(dates)-keep] {
		if err := os.Remove(s.snapshotPath(source, date)); err != nil {
			return removed, fmt.Errorf("removing snapshot: %w", err)
		}
		removed++
	}

	return removed, nil
}

// Sources returns the source names that have a snapshot directory,
// sorted alphabetically.
func (s *Store) Sources() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("reading data directory: %w", err)
	}

	sources := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			sources = append(sources, entry.Name())
		}
	}

	sort.Strings(sources)
	return sources, nil
}
