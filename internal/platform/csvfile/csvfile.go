// Package csvfile reads and rewrites the header-prefixed CSV files that hold
// subjects and sessions. Rows that fail to parse are set aside and appended
// to a sibling quarantine file on the next rewrite.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"studytime/internal/platform/atomicfile"
)

// TimeLayout is RFC 3339 in UTC with millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime accepts any RFC 3339 timestamp and returns it in UTC.
func ParseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

type Table struct {
	path       string
	header     []string
	logger     *slog.Logger
	quarantine [][]string
}

func NewTable(path string, header []string, logger *slog.Logger) *Table {
	return &Table{path: path, header: header, logger: logger}
}

func (t *Table) Path() string { return t.path }

// QuarantinePath is foo.quarantine.csv for foo.csv.
func (t *Table) QuarantinePath() string {
	return strings.TrimSuffix(t.path, ".csv") + ".quarantine.csv"
}

// Pending reports how many malformed rows the last Read set aside.
func (t *Table) Pending() int { return len(t.quarantine) }

// Read calls parse for every data row. A missing file reads as empty. Rows
// for which parse fails are logged and held for quarantine.
func (t *Table) Read(parse func(record []string) error) error {
	t.quarantine = nil
	f, err := os.Open(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", t.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	line := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", t.path, err)
		}
		line++
		if line == 1 && slices.Equal(record, t.header) {
			continue
		}
		if len(record) != len(t.header) {
			t.hold(line, record, fmt.Errorf("expected %d fields, got %d", len(t.header), len(record)))
			continue
		}
		if err := parse(record); err != nil {
			t.hold(line, record, err)
		}
	}
}

func (t *Table) hold(line int, record []string, err error) {
	if t.logger != nil {
		t.logger.Warn("quarantined malformed row", "file", t.path, "line", line, "err", err)
	}
	t.quarantine = append(t.quarantine, record)
}

// Write replaces the file with the header followed by rows, after moving
// any held rows into the quarantine file. Held rows are released only once
// the rewrite has succeeded; a retry does not quarantine them twice.
func (t *Table) Write(rows [][]string) error {
	if len(t.quarantine) > 0 {
		if err := t.flushQuarantine(); err != nil {
			return err
		}
	}
	err := atomicfile.Write(t.path, 0o644, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(t.header); err != nil {
			return err
		}
		if err := cw.WriteAll(rows); err != nil {
			return fmt.Errorf("encode %s: %w", t.path, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	t.quarantine = nil
	return nil
}

// flushQuarantine appends the held rows that the quarantine file does not
// already contain.
func (t *Table) flushQuarantine() error {
	seen, err := t.quarantined()
	if err != nil {
		return err
	}
	var fresh [][]string
	for _, record := range t.quarantine {
		if _, ok := seen[recordKey(record)]; !ok {
			fresh = append(fresh, record)
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	f, err := os.OpenFile(t.QuarantinePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open quarantine: %w", err)
	}
	cw := csv.NewWriter(f)
	if err := cw.WriteAll(fresh); err != nil {
		_ = f.Close()
		return fmt.Errorf("write quarantine: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close quarantine: %w", err)
	}
	return nil
}

func (t *Table) quarantined() (map[string]struct{}, error) {
	seen := make(map[string]struct{})
	f, err := os.Open(t.QuarantinePath())
	if errors.Is(err, os.ErrNotExist) {
		return seen, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open quarantine: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return seen, nil
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read quarantine: %w", err)
		}
		seen[recordKey(record)] = struct{}{}
	}
}

func recordKey(record []string) string {
	return strings.Join(record, "\x1f")
}
