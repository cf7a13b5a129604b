package main

import (
	"strings"
)

type ColumnRole int

const (
	RoleNormal  ColumnRole = iota
	RolePrimary            // free text, gets most of the spare width
	RoleSecondary
	RoleTime
)

type ColumnMeta struct {
	Name     string
	Index    int
	Role     ColumnRole
	Visible  bool
	MinWidth int
	Weight   float64
	Width    int
}

// timeColumnNames are tried in order when looking for the row timestamp.
var timeColumnNames = []string{"obs_start", "time", "timestamp"}

func normaliseColumnName(name string) string {
	n := strings.TrimSpace(name)
	n = strings.TrimPrefix(n, "\ufeff")
	return strings.ToLower(n)
}

func detectRole(name string) ColumnRole {
	n := normaliseColumnName(name)
	switch n {
	case "message_text", "details", "comment":
		return RolePrimary
	case "exposure name", "exposure_name", "target_name", "id":
		return RoleSecondary
	}
	for _, t := range timeColumnNames {
		if n == t {
			return RoleTime
		}
	}
	return RoleNormal
}

func defaultMinWidthForRole(r ColumnRole) int {
	switch r {
	case RolePrimary:
		return 30
	case RoleTime:
		return 22
	case RoleSecondary:
		return 24 // exposure names are 20 cells
	default:
		return 8
	}
}

func defaultWeightForRole(r ColumnRole) float64 {
	switch r {
	case RolePrimary:
		return 5.0
	case RoleSecondary, RoleTime:
		return 2.0
	default:
		return 1.0
	}
}

func newColumns(names []string) []ColumnMeta {
	cols := make([]ColumnMeta, len(names))
	for i, name := range names {
		role := detectRole(name)
		cols[i] = ColumnMeta{
			Name:     name,
			Index:    i,
			Role:     role,
			Visible:  true,
			MinWidth: defaultMinWidthForRole(role),
			Weight:   defaultWeightForRole(role),
		}
	}
	return cols
}

// findTimeColumnIndex returns the column holding exposure start times, or -1.
func findTimeColumnIndex(cols []ColumnMeta) int {
	for _, want := range timeColumnNames {
		for i := range cols {
			if normaliseColumnName(cols[i].Name) == want {
				return i
			}
		}
	}
	return -1
}

func findColumnIndex(cols []ColumnMeta, name string) int {
	for i := range cols {
		if normaliseColumnName(cols[i].Name) == name {
			return i
		}
	}
	return -1
}

// markEmptyColumns hides columns with no data in any row, except free text.
func markEmptyColumns(cols []ColumnMeta, rows []exposureRow) {
	for i := range cols {
		hasData := false
		for _, row := range rows {
			if strings.TrimSpace(row.cell(cols[i].Index)) != "" {
				hasData = true
				break
			}
		}
		if !hasData && cols[i].Role != RolePrimary {
			cols[i].Visible = false
			cols[i].Width = 0
			cols[i].Weight = 0
		}
	}
}

// layoutColumns assigns each visible column its minimum width plus a share
// of the remaining space proportional to its weight.
func layoutColumns(cols []ColumnMeta, totalWidth int) []ColumnMeta {
	if totalWidth <= 0 {
		return cols
	}

	minSum := 0
	weightSum := 0.0
	for i := range cols {
		if !cols[i].Visible {
			continue
		}
		minSum += cols[i].MinWidth
		weightSum += cols[i].Weight
	}

	if minSum >= totalWidth {
		for i := range cols {
			if !cols[i].Visible {
				continue
			}
			cols[i].Width = min(cols[i].MinWidth, totalWidth)
		}
		return cols
	}

	remaining := totalWidth - minSum
	for i := range cols {
		if !cols[i].Visible {
			cols[i].Width = 0
			continue
		}
		extra := 0
		if weightSum > 0 {
			extra = int(float64(remaining) * (cols[i].Weight / weightSum))
		}
		cols[i].Width = cols[i].MinWidth + extra
	}
	return cols
}
