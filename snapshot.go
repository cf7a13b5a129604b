package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/andareed/siftly-digest/timerange"
)

const snapshotVersion = 2

type exposureRowDTO struct {
	Cols          []string `json:"cols"`
	ID            uint64   `json:"id"`
	OriginalIndex int      `json:"originalIndex"`
}

type windowDTO struct {
	StartMillis int64 `json:"startMillis"`
	EndMillis   int64 `json:"endMillis"`
}

type sourceDTO struct {
	StartDayObs int    `json:"startDayobs,omitempty"`
	EndDayObs   int    `json:"endDayobs,omitempty"`
	Telescope   string `json:"telescope,omitempty"`
}

type snapshotDTO struct {
	Version  int               `json:"version"`
	Header   []ColumnMeta      `json:"header"`
	Rows     []exposureRowDTO  `json:"rows"`
	Flags    map[string]string `json:"flags"`    // uint64 keys stringified
	Comments map[string]string `json:"comments"` // uint64 keys stringified
	Window   *windowDTO        `json:"window,omitempty"`
	Source   *sourceDTO        `json:"source,omitempty"`
}

// annotationsDTO carries flags and comments only, to re-apply them after a
// fresh backend load.
type annotationsDTO struct {
	Version  int               `json:"version"`
	Flags    map[string]string `json:"flags"`
	Comments map[string]string `json:"comments"`
}

func stringifyKeys[V ~string](in map[uint64]V) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[strconv.FormatUint(k, 10)] = string(v)
	}
	return out
}

func parseKeys[V ~string](in map[string]string, conv func(string) V) (map[uint64]V, error) {
	out := make(map[uint64]V, len(in))
	for ks, vs := range in {
		k, err := strconv.ParseUint(ks, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid row id %q: %w", ks, err)
		}
		out[k] = conv(vs)
	}
	return out, nil
}

func identity(s string) string { return s }

// ExportModel writes the currently filtered rows to a CSV file, with the
// flag and comment as additional columns.
func ExportModel(m *model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, 0, len(m.data.header)+2)
	for _, col := range m.data.header {
		header = append(header, col.Name)
	}
	header = append(header, "Flag", "Comment")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, idx := range m.data.filteredIndices {
		if idx < 0 || idx >= len(m.data.rows) {
			return fmt.Errorf("filtered index %d out of range", idx)
		}
		r := m.data.rows[idx]
		out := append([]string(nil), r.cols...)
		out = append(out, string(m.data.flaggedRows[r.id]), m.data.commentRows[r.id])
		if err := w.Write(out); err != nil {
			return fmt.Errorf("write row %d: %w", idx, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

// SaveModel writes the rows, annotations, committed window and night source
// to a JSON snapshot.
func SaveModel(m *model, path string) error {
	dto := snapshotDTO{
		Version:  snapshotVersion,
		Header:   append([]ColumnMeta(nil), m.data.header...),
		Rows:     make([]exposureRowDTO, 0, len(m.data.rows)),
		Flags:    stringifyKeys(m.data.flaggedRows),
		Comments: stringifyKeys(m.data.commentRows),
	}
	for _, r := range m.data.rows {
		dto.Rows = append(dto.Rows, exposureRowDTO{
			Cols:          append([]string(nil), r.cols...),
			ID:            r.id,
			OriginalIndex: r.originalIndex,
		})
	}
	if !m.data.window.IsZero() {
		dto.Window = &windowDTO{
			StartMillis: timerange.ToMillis(m.data.window.Start),
			EndMillis:   timerange.ToMillis(m.data.window.End),
		}
	}
	if src := m.data.source; src.startDayObs != 0 {
		dto.Source = &sourceDTO{
			StartDayObs: int(src.startDayObs),
			EndDayObs:   int(src.endDayObs),
			Telescope:   src.telescope,
		}
	}

	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadModel replaces the contents of m with the snapshot from path. The saved
// window is left in m.data.window for InitialiseUI to validate.
func LoadModel(m *model, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var dto snapshotDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	if dto.Version != snapshotVersion {
		return fmt.Errorf("snapshot version %d not supported (want %d)", dto.Version, snapshotVersion)
	}

	flags, err := parseKeys(dto.Flags, parseExposureFlag)
	if err != nil {
		return err
	}
	comments, err := parseKeys(dto.Comments, identity)
	if err != nil {
		return err
	}

	rows := make([]exposureRow, 0, len(dto.Rows))
	for _, dr := range dto.Rows {
		r := newExposureRow(append([]string(nil), dr.Cols...), dr.OriginalIndex)
		if dr.ID != 0 {
			r.id = dr.ID
		}
		rows = append(rows, r)
	}

	m.data = newDataState(append([]ColumnMeta(nil), dto.Header...), rows)
	m.data.flaggedRows = flags
	m.data.commentRows = comments
	if dto.Window != nil {
		m.data.window = timerange.Range{
			Start: timerange.FromMillis(dto.Window.StartMillis),
			End:   timerange.FromMillis(dto.Window.EndMillis),
		}
	}
	m.data.source = nightSource{path: path}
	if dto.Source != nil {
		m.data.source.startDayObs = timerange.DayObs(dto.Source.StartDayObs)
		m.data.source.endDayObs = timerange.DayObs(dto.Source.EndDayObs)
		m.data.source.telescope = dto.Source.Telescope
	}
	return nil
}

// SaveAnnotations writes only flags and comments.
func SaveAnnotations(m *model, path string) error {
	dto := annotationsDTO{
		Version:  snapshotVersion,
		Flags:    stringifyKeys(m.data.flaggedRows),
		Comments: stringifyKeys(m.data.commentRows),
	}
	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// MergeAnnotations merges flags and comments from a snapshot or annotations
// file into m, only for rows currently present. It returns how many rows
// picked up an annotation.
func MergeAnnotations(m *model, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var dto annotationsDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return 0, err
	}
	if dto.Version != snapshotVersion {
		return 0, fmt.Errorf("annotations version %d not supported (want %d)", dto.Version, snapshotVersion)
	}
	flags, err := parseKeys(dto.Flags, parseExposureFlag)
	if err != nil {
		return 0, err
	}
	comments, err := parseKeys(dto.Comments, identity)
	if err != nil {
		return 0, err
	}

	if m.data.flaggedRows == nil {
		m.data.flaggedRows = make(map[uint64]ExposureFlag)
	}
	if m.data.commentRows == nil {
		m.data.commentRows = make(map[uint64]string)
	}

	touched := make(map[uint64]struct{})
	for _, r := range m.data.rows {
		if f, ok := flags[r.id]; ok && f != FlagNone {
			m.data.flaggedRows[r.id] = f
			touched[r.id] = struct{}{}
		}
		if c, ok := comments[r.id]; ok && c != "" {
			m.data.commentRows[r.id] = c
			touched[r.id] = struct{}{}
		}
	}
	return len(touched), nil
}
