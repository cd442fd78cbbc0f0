package pipeline

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prithvisense/thermal-monitor/internal/models"
)

// SourceStatus tells the caller why a load did or did not produce a series.
type SourceStatus int

const (
	// SourceLoaded means the file was read and at least one row parsed.
	SourceLoaded SourceStatus = iota
	// SourceMissing means the file could not be opened.
	SourceMissing
	// SourceMalformed means the file opened but yielded no usable rows.
	SourceMalformed
)

func (s SourceStatus) String() string {
	switch s {
	case SourceLoaded:
		return "loaded"
	case SourceMissing:
		return "missing"
	case SourceMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// LoadResult is the explicit outcome of a LoadSeries call. The load never
// fails hard: an unavailable source is a value, not an error, so the fallback
// decision stays a visible branch in the caller.
type LoadResult struct {
	Readings    []models.Reading
	Status      SourceStatus
	RowsDropped int
	// Err carries the underlying cause for logging. It is never fatal.
	Err error
}

// Available reports whether the source produced a usable series.
func (lr LoadResult) Available() bool {
	return lr.Status == SourceLoaded
}

// Columns the source file must carry. Extra columns are ignored.
const (
	colTimestamp = "timestamp"
	colZone      = "zone"
	colTemp      = "temp"
	colUV        = "uv"
)

// LoadSeries parses a delimited reading file into a series. Individual
// malformed rows are dropped and counted; a missing file or a file with no
// usable rows is reported as an unavailable source.
func LoadSeries(path string) LoadResult {
	f, err := os.Open(path)
	if err != nil {
		return LoadResult{Status: SourceMissing, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return LoadResult{Status: SourceMalformed, Err: err}
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colTimestamp, colZone, colTemp, colUV} {
		if _, ok := cols[required]; !ok {
			return LoadResult{Status: SourceMalformed, Err: errMissingColumn(required)}
		}
	}

	var readings []models.Reading
	dropped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			dropped++
			continue
		}

		reading, ok := parseRow(record, cols)
		if !ok {
			dropped++
			continue
		}
		readings = append(readings, reading)
	}

	// A file where every row is malformed is no better than no file.
	if len(readings) == 0 {
		return LoadResult{Status: SourceMalformed, RowsDropped: dropped}
	}

	return LoadResult{
		Readings:    readings,
		Status:      SourceLoaded,
		RowsDropped: dropped,
	}
}

// parseRow converts one CSV record to a Reading, rejecting it on any
// unparseable field.
func parseRow(record []string, cols map[string]int) (models.Reading, bool) {
	field := func(name string) (string, bool) {
		idx := cols[name]
		if idx >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[idx]), true
	}

	tsRaw, ok := field(colTimestamp)
	if !ok {
		return models.Reading{}, false
	}
	zoneRaw, ok := field(colZone)
	if !ok || zoneRaw == "" {
		return models.Reading{}, false
	}
	tempRaw, ok := field(colTemp)
	if !ok {
		return models.Reading{}, false
	}
	uvRaw, ok := field(colUV)
	if !ok {
		return models.Reading{}, false
	}

	ts, err := parseTimestamp(tsRaw)
	if err != nil {
		return models.Reading{}, false
	}
	temp, err := strconv.ParseFloat(tempRaw, 64)
	if err != nil {
		return models.Reading{}, false
	}
	uv, err := strconv.ParseFloat(uvRaw, 64)
	if err != nil {
		return models.Reading{}, false
	}

	reading := models.Reading{
		Timestamp:   ts,
		Zone:        models.Zone(zoneRaw),
		Temperature: temp,
		UVIndex:     uv,
	}
	if !reading.IsValid() {
		return models.Reading{}, false
	}
	return reading, true
}

// parseTimestamp tries multiple formats to parse a timestamp string
func parseTimestamp(ts string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		time.RFC3339,
		time.RFC3339Nano,
	}

	var lastErr error
	for _, format := range formats {
		t, err := time.Parse(format, ts)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}

type errMissingColumn string

func (e errMissingColumn) Error() string {
	return "missing required column: " + string(e)
}
