package series

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default column names and date layouts, matching the monthly car
// sales dataset the toolkit grew up on.
var (
	DefaultDateColumn  = "Month"
	DefaultValueColumn = "Sales"
	DefaultLayouts     = []string{"2006-01", "2006-01-02", "2006"}
)

// LoadOptions configures CSV ingestion. Zero values fall back to the
// defaults above.
type LoadOptions struct {
	DateColumn  string   // header name of the timestamp column
	ValueColumn string   // header name of the value column
	Layouts     []string // date layouts tried in order
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.DateColumn == "" {
		o.DateColumn = DefaultDateColumn
	}
	if o.ValueColumn == "" {
		o.ValueColumn = DefaultValueColumn
	}
	if len(o.Layouts) == 0 {
		o.Layouts = DefaultLayouts
	}
	return o
}

// LoadCSV reads a series from a CSV file with a header row. The date
// and value columns are located by header name; every data row must
// parse, and timestamps must arrive in strictly increasing order.
func LoadCSV(path string, opts LoadOptions) (*Series, error) {
	opts = opts.withDefaults()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s is empty or missing a header row", path)
	}

	header := records[0]
	dateIdx, valueIdx := -1, -1
	for i, name := range header {
		switch name {
		case opts.DateColumn:
			dateIdx = i
		case opts.ValueColumn:
			valueIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("%s: date column %q not found in header %v", path, opts.DateColumn, header)
	}
	if valueIdx < 0 {
		return nil, fmt.Errorf("%s: value column %q not found in header %v", path, opts.ValueColumn, header)
	}

	points := make([]Point, 0, len(records)-1)
	for i, record := range records[1:] {
		row := i + 2 // 1-based, counting the header

		if len(record) <= dateIdx || len(record) <= valueIdx {
			return nil, fmt.Errorf("%s: row %d has %d columns, want at least %d", path, row, len(record), max(dateIdx, valueIdx)+1)
		}

		t, err := parseDate(record[dateIdx], opts.Layouts)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, row, err)
		}

		value, err := strconv.ParseFloat(record[valueIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: invalid value %q: %w", path, row, record[valueIdx], err)
		}

		if n := len(points); n > 0 && !t.After(points[n-1].Time) {
			return nil, fmt.Errorf("%s: row %d: timestamp %s does not advance past %s",
				path, row, record[dateIdx], points[n-1].Time.Format(time.RFC3339))
		}

		points = append(points, Point{Time: t, Value: value})
	}

	return &Series{points: points}, nil
}

// parseDate tries each layout in order.
func parseDate(raw string, layouts []string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (tried layouts %v)", raw, layouts)
}
