package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFooterWidth(t *testing.T) {
	st := FooterState{
		Mode:          CmdFilter,
		ModeInput:     "science",
		Source:        "2024-01-01 · Simonyi",
		FilterLabel:   "science|flats",
		Row:           12,
		TotalRows:     1500,
		AllRows:       2400,
		StatusMessage: "Window: full 12:00  2024-01-01 - 11:59  2024-01-02",
	}
	for _, width := range []int{40, 80, 160} {
		out := RenderFooter(width, st, DefaultFooterStyles())
		lines := strings.Split(out, "\n")
		require.Len(t, lines, footerHeight)
		for _, line := range lines {
			assert.Equal(t, width, lipgloss.Width(line), "width %d", width)
		}
	}
}

func TestRenderFooterContent(t *testing.T) {
	out := RenderFooter(160, FooterState{
		ModeLabel: "WINDOW",
		Source:    "night.csv",
		Row:       3,
		TotalRows: 1500,
		AllRows:   2400,
	}, DefaultFooterStyles())

	assert.Contains(t, out, "WINDOW")
	assert.Contains(t, out, "▸ night.csv")
	assert.Contains(t, out, "Rows 3/1,500 of 2,400")
	assert.Contains(t, out, "[FILTER: None]")
	assert.Contains(t, out, "(? help)")
}

func TestFooterModeLabels(t *testing.T) {
	assert.Equal(t, "NORMAL", footerModeLabel(FooterState{}))
	assert.Equal(t, "FLAG", footerModeLabel(FooterState{Mode: CmdFlag}))
	assert.Equal(t, "WINDOW", footerModeLabel(FooterState{Mode: CmdFlag, ModeLabel: "WINDOW"}))
}

func TestFooterViewShowsWindow(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.footerView(160)
	assert.Contains(t, out, "Window: full 12:00  2024-01-01")
	assert.Contains(t, out, "Rows 1/7")
}

func TestRenderFooterZeroWidth(t *testing.T) {
	assert.Empty(t, RenderFooter(0, FooterState{}, DefaultFooterStyles()))
}
