package main

import (
	"hash/fnv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// exposureRow is one data-log record as shown in the table.
type exposureRow struct {
	cols          []string
	height        int
	id            uint64
	originalIndex int // 1-based position in the source, shown in the gutter
	obsStart      time.Time
	hasTime       bool
}

func newExposureRow(cols []string, originalIndex int) exposureRow {
	r := exposureRow{
		cols:          cols,
		height:        1,
		originalIndex: originalIndex,
	}
	r.id = r.ComputeID()
	return r
}

// ComputeID hashes the normalised cells so flags and comments survive a
// reload of the same nights.
func (r exposureRow) ComputeID() uint64 {
	h := fnv.New64a()
	for _, col := range r.cols {
		norm := strings.ToLower(strings.TrimSpace(col))
		h.Write([]byte(norm))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

func (r *exposureRow) Join(sep string) string {
	return strings.Join(r.cols, sep)
}

// String is tab separated, used for regex matching and the clipboard.
func (r *exposureRow) String() string {
	return r.Join("\t")
}

func (r *exposureRow) cell(idx int) string {
	if idx < 0 || idx >= len(r.cols) {
		return ""
	}
	return r.cols[idx]
}

func (r *exposureRow) Render(style lipgloss.Style, colsMeta []ColumnMeta) string {
	var rendered []string

	for i, text := range r.cols {
		if i >= len(colsMeta) {
			break
		}
		meta := colsMeta[i]
		if !meta.Visible || meta.Width <= 0 {
			continue
		}
		rendered = append(rendered, style.Width(meta.Width).Render(text))
	}

	joined := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	r.height = lipgloss.Height(joined)
	return joined
}
