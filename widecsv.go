package marketdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/housefax/marketdata/date"
)

// Wide index files carry one row per region: a fixed run of metadata columns
// followed by one column per month. The split point is a property of the
// published format, not something to infer from the header.
const (
	metaColumns   = 8
	colRegionID   = 0
	colRegionName = 1
	colState      = 2
)

// ErrEmptyFile reports an input with no header row at all.
var ErrEmptyFile = errors.New("wide index file is empty")

// ErrNoRegions reports an input whose data rows all failed to yield a single
// valid observation.
var ErrNoRegions = errors.New("wide index file contains no valid region")

// ValidationError reports a structurally wrong header, with a human readable
// reason. It is returned before any data row is parsed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid wide index header: %s", e.Reason)
}

// ValidateWideHeader checks the header row shape: the metadata run must be
// complete and at least one date column must follow.
func ValidateWideHeader(header []string) ([]date.Date, error) {
	if len(header) < metaColumns+1 {
		return nil, &ValidationError{Reason: fmt.Sprintf(
			"want %d metadata columns and at least one date column, got %d columns",
			metaColumns, len(header))}
	}
	dates := make([]date.Date, 0, len(header)-metaColumns)
	for _, label := range header[metaColumns:] {
		on, err := date.Parse(strings.TrimSpace(label))
		if err != nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("column %q is not a date label", label)}
		}
		dates = append(dates, on)
	}
	return dates, nil
}

// ParseWide parses a wide index file into one RegionSeries per region row.
//
// A cell that does not parse as a number is an absent observation and is
// skipped, never coerced to zero. A row with no valid observation at all is
// dropped.
func ParseWide(r io.Reader) ([]RegionSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // trailing cells may be missing, rows are ragged

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read wide index header: %w", err)
	}

	dates, err := ValidateWideHeader(header)
	if err != nil {
		return nil, err
	}

	var regions []RegionSeries
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read wide index row: %w", err)
		}
		if len(row) < metaColumns {
			continue // not even a complete metadata run
		}

		series := RegionSeries{Region: Region{
			ID:    strings.TrimSpace(row[colRegionID]),
			Name:  strings.TrimSpace(row[colRegionName]),
			State: strings.TrimSpace(row[colState]),
		}}
		series.City = cityOf(series.Name)

		for i, on := range dates {
			col := metaColumns + i
			if col >= len(row) {
				break
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue // absent observation, not a zero
			}
			series.Points.Append(on, v)
		}

		if series.Points.Len() == 0 {
			continue // nothing observed for this region
		}
		regions = append(regions, series)
	}

	if len(regions) == 0 {
		return nil, ErrNoRegions
	}
	return regions, nil
}

// cityOf derives the city from a display name of the form "<city>, ...".
func cityOf(name string) string {
	if city, _, found := strings.Cut(name, ","); found {
		return strings.TrimSpace(city)
	}
	return strings.TrimSpace(name)
}
