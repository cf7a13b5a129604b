package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andareed/siftly-digest/digest"
	"github.com/andareed/siftly-digest/logging"
	"github.com/andareed/siftly-digest/timerange"
)

// loadModelAuto opens an offline file: a CSV export of the data log or a
// JSON snapshot saved from the viewer.
func loadModelAuto(path string) (*model, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return newModelFromJSONFile(path)
	case ".csv":
		return newModelFromCSVFile(path)
	default:
		return nil, fmt.Errorf("unsupported file extension %q (want .csv or .json)", ext)
	}
}

func newModelFromJSONFile(path string) (*model, error) {
	m := newModel(nil, nil)
	if err := LoadModel(m, path); err != nil {
		return nil, err
	}
	m.InitialPath = path
	m.InitialiseUI()
	return m, nil
}

func newModelFromCSVFile(path string) (*model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV %q has no rows", path)
	}

	m := initialModelFromRecords(records)
	m.data.source = nightSource{path: path}
	m.InitialPath = path
	m.InitialiseUI()
	return m, nil
}

// initialModelFromRecords builds the table from a header record followed by
// data records. Flags from an exposure_flag column seed the flag map.
func initialModelFromRecords(records [][]string) *model {
	if len(records) == 0 {
		return newModel(nil, nil)
	}
	cols := newColumns(records[0])
	rows := make([]exposureRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		rows = append(rows, newExposureRow(rec, i+1))
	}
	markEmptyColumns(cols, rows)

	m := newModel(cols, rows)
	if flagIdx := findColumnIndex(cols, "exposure_flag"); flagIdx >= 0 {
		for _, r := range rows {
			if f := parseExposureFlag(r.cell(flagIdx)); f != FlagNone {
				m.data.flaggedRows[r.id] = f
			}
		}
	}
	logging.Debugf("loaded %d rows, %d columns, %d flagged", len(rows), len(cols), len(m.data.flaggedRows))
	return m
}

// loadModelFromBackend fetches the data log for the queried nights.
func loadModelFromBackend(ctx context.Context, client *digest.Client, q digest.Query, telescope string) (*model, error) {
	exps, err := client.DataLog(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch data log: %w", err)
	}
	logging.Infof("data log %s to %s %s: %d exposures", q.Start, q.End, q.Instrument, len(exps))

	m := initialModelFromRecords(digest.Records(exps))
	m.client = client
	m.query = q
	m.data.source = nightSource{startDayObs: q.Start, endDayObs: q.End, telescope: telescope}
	m.InitialiseUI()
	return m, nil
}

// applyInitialWindow commits the window given on the command line. Missing
// or out of range endpoints fall back to the full range.
func (m *model) applyInitialWindow(startMillis, endMillis *int64) {
	if !m.data.hasTimeBounds || (startMillis == nil && endMillis == nil) {
		return
	}
	r := timerange.ValidRange(startMillis, endMillis, m.data.full)
	if startMillis != nil && endMillis != nil && *startMillis > *endMillis {
		r = m.data.full
	}
	m.setSelectedTimeRange(r)
}
