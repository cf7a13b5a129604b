package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

const footerHeight = 2

type FooterState struct {
	Mode      Command
	ModeLabel string // overrides the command label, e.g. WINDOW
	ModeInput string

	Source string

	FilterLabel string
	FlaggedOnly bool

	Row       int
	TotalRows int
	AllRows   int

	StatusMessage string
	Legend        string
}

type FooterStyles struct {
	BarBG      lipgloss.Color
	StatusBG   lipgloss.Color
	ModePillBG lipgloss.Color
	ModePillFG lipgloss.Color
	SourceFG   lipgloss.Color
	TextFG     lipgloss.Color
	DimFG      lipgloss.Color
	StatusFG   lipgloss.Color
	LegendFG   lipgloss.Color
}

func DefaultFooterStyles() FooterStyles {
	return FooterStyles{
		BarBG:      lipgloss.Color("#2b2b2b"),
		StatusBG:   lipgloss.Color("#000000"),
		ModePillBG: lipgloss.Color("#ff9f1c"),
		ModePillFG: lipgloss.Color("#000000"),
		SourceFG:   lipgloss.Color("#e0e0e0"),
		TextFG:     lipgloss.Color("#cfcfcf"),
		DimFG:      lipgloss.Color("#a0a0a0"),
		StatusFG:   lipgloss.Color("#9a9a9a"),
		LegendFG:   lipgloss.Color("#b0b0b0"),
	}
}

// RenderFooter draws the control bar and the status bar, each exactly width
// cells wide.
func RenderFooter(width int, st FooterState, styles FooterStyles) string {
	if width <= 0 {
		return ""
	}
	if st.FilterLabel == "" {
		st.FilterLabel = "None"
	}
	if st.Legend == "" {
		st.Legend = "(? help)"
	}
	st.Row = max(st.Row, 0)
	st.TotalRows = max(st.TotalRows, 0)

	return renderControlBar(width, st, styles) + "\n" + renderStatusBar(width, st, styles)
}

func renderControlBar(width int, st FooterState, styles FooterStyles) string {
	gapW := 1
	filterValW := 12
	flagW := 5
	statusFixedW := textWidth(fmt.Sprintf("[FILTER: %s] · [FLAGGED: %s]", strings.Repeat("X", filterValW), strings.Repeat("X", flagW)))

	rightPlain := fmt.Sprintf(" Rows %s/%s", humanize.Comma(int64(st.Row)), humanize.Comma(int64(st.TotalRows)))
	if st.AllRows > st.TotalRows {
		rightPlain += fmt.Sprintf(" of %s", humanize.Comma(int64(st.AllRows)))
	}
	rightPlain = truncatePlain(rightPlain, width)
	rightW := textWidth(rightPlain)

	leftW := max(width-rightW, 0)

	modeText := footerModeLabel(st)
	modeColW := min(textWidth(modeText)+2, clamp(leftW/4, 10, 36))
	statusColW := statusFixedW
	sourceColW := leftW - modeColW - statusColW - 2*gapW
	if sourceColW < 0 {
		deficit := -sourceColW
		if statusColW > 10 {
			shrink := min(deficit, statusColW-10)
			statusColW -= shrink
			deficit -= shrink
		}
		if deficit > 0 && modeColW > 6 {
			modeColW -= min(deficit, modeColW-6)
		}
		sourceColW = leftW - modeColW - statusColW - 2*gapW
		if sourceColW < 0 {
			modeColW = max(0, modeColW+sourceColW)
			sourceColW = 0
		}
	}

	left := renderModeSegment(modeColW, modeText, styles) +
		strings.Repeat(" ", gapW) +
		renderSourceSegment(sourceColW, st, styles) +
		strings.Repeat(" ", gapW) +
		renderFilterSegment(statusColW, st, styles, filterValW, flagW)
	leftWActual := modeColW + sourceColW + statusColW + 2*gapW
	if leftWActual < leftW {
		left += strings.Repeat(" ", leftW-leftWActual)
	}

	return applyBar(left+rightPlain, styles.BarBG, styles.TextFG)
}

func renderStatusBar(width int, st FooterState, styles FooterStyles) string {
	legendPlain := truncatePlain(st.Legend, width)
	leftW := max(width-textWidth(legendPlain), 0)

	msgPlain := padRightPlain(truncatePlain(st.StatusMessage, leftW), leftW)
	line := applyFG(msgPlain, styles.StatusFG, styles.StatusFG) + applyFG(legendPlain, styles.LegendFG, styles.StatusFG)
	return applyBar(line, styles.StatusBG, styles.StatusFG)
}

func renderModeSegment(colW int, label string, styles FooterStyles) string {
	if colW <= 0 {
		return ""
	}
	pill := truncatePlain(" "+truncatePlain(label, max(0, colW-2))+" ", colW)
	pad := strings.Repeat(" ", colW-textWidth(pill))
	return ansiBg(styles.ModePillBG) + ansiFg(styles.ModePillFG) + pill +
		ansiBg(styles.BarBG) + ansiFg(styles.TextFG) + pad
}

func renderSourceSegment(colW int, st FooterState, styles FooterStyles) string {
	if colW <= 0 {
		return ""
	}
	name := strings.TrimSpace(st.Source)
	if name == "" {
		name = "(no source)"
	}
	sourcePlain := truncatePlain("▸ "+name, colW)
	remaining := colW - textWidth(sourcePlain)

	inputPlain := ""
	if input := strings.TrimSpace(st.ModeInput); input != "" && remaining > 0 {
		inputPlain = truncatePlain(" ▸ "+input, remaining)
		remaining -= textWidth(inputPlain)
	}
	return applyFG(sourcePlain, styles.SourceFG, styles.TextFG) + inputPlain + strings.Repeat(" ", max(remaining, 0))
}

func renderFilterSegment(colW int, st FooterState, styles FooterStyles, filterValW, flagW int) string {
	if colW <= 0 {
		return ""
	}
	filterVal := truncatePlain(strings.TrimSpace(st.FilterLabel), filterValW)
	flagged := truncatePlain(fmt.Sprintf("%v", st.FlaggedOnly), flagW)
	plain := fmt.Sprintf("[FILTER: %s] · [FLAGGED: %s]", filterVal, flagged)
	return applyFG(padRightPlain(truncatePlain(plain, colW), colW), styles.DimFG, styles.TextFG)
}

func footerModeLabel(st FooterState) string {
	if st.ModeLabel != "" {
		return st.ModeLabel
	}
	switch st.Mode {
	case CmdJump:
		return "JUMP"
	case CmdSearch:
		return "SEARCH"
	case CmdFilter:
		return "FILTER"
	case CmdComment:
		return "COMMENT"
	case CmdFlag:
		return "FLAG"
	default:
		return "NORMAL"
	}
}

func applyBar(s string, bg lipgloss.Color, baseFG lipgloss.Color) string {
	return ansiBg(bg) + ansiFg(baseFG) + s + termenv.CSI + termenv.ResetSeq + "m"
}

func applyFG(s string, fg lipgloss.Color, resetFG lipgloss.Color) string {
	return ansiFg(fg) + s + ansiFg(resetFG)
}

func ansiFg(c lipgloss.Color) string {
	return ansiColor(false, c)
}

func ansiBg(c lipgloss.Color) string {
	return ansiColor(true, c)
}

// ansiColor emits a truecolor sequence for a #rrggbb colour regardless of
// the detected profile, so the bar looks the same in every terminal.
func ansiColor(isBg bool, c lipgloss.Color) string {
	s := string(c)
	if s == "" {
		if isBg {
			return termenv.CSI + "49m"
		}
		return termenv.CSI + "39m"
	}
	if !strings.HasPrefix(s, "#") || len(s) != 7 {
		return ""
	}
	return termenv.CSI + termenv.RGBColor(s).Sequence(isBg) + "m"
}

func padRightPlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	cur := textWidth(s)
	if cur >= w {
		return s
	}
	return s + strings.Repeat(" ", w-cur)
}

func truncatePlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return truncate.String(s, uint(w))
}

func textWidth(s string) int {
	return runewidth.StringWidth(s)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
