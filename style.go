package main

import "github.com/charmbracelet/lipgloss"

const (
	rowTextFGColor         = "#c0c0c0"
	rowSelectedTextFGColor = "#e0e0e0"
	rowSelectedBGColor     = "#3a3a3a"
	searchHighlightBGColor = "#f5c542"
	searchHighlightFGColor = "#000000"
	invalidColor           = "#e5484d"
	chartSelectBGColor     = "#2f5d8a"
)

// appMarginV and appMarginH must match appstyle; the chart hit-testing
// relies on them.
const (
	appMarginV = 1
	appMarginH = 2
)

var (
	appstyle    = lipgloss.NewStyle().Margin(appMarginV, appMarginH)
	headerStyle = lipgloss.NewStyle().BorderStyle(lipgloss.Border{
		Left:  " ",
		Right: " ",
	}).BorderLeft(true).BorderRight(true)
	rowStyle         = lipgloss.NewStyle()
	rowSelectedStyle = lipgloss.NewStyle().Background(lipgloss.Color(rowSelectedBGColor))

	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	tableStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))

	// flag pills: good, questionable, junk
	goodMarker         = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	questionableMarker = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	junkMarker         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	defaultMarker      = " "
	pillMarker         = "▐"
	commentMarker      = "[*]"

	commentArea = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 0)

	summaryArea = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 1)

	timeWindowArea = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 0)

	chartArea = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	chartBarStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	chartSelectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color(chartSelectBGColor))
	chartAxisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	fieldFocusedStyle = fieldStyle.BorderForeground(lipgloss.Color("252"))
	fieldInvalidStyle = fieldStyle.BorderForeground(lipgloss.Color(invalidColor))

	scrubberFocusedStyle = lipgloss.NewStyle().Bold(true)
	footerHintStyle      = lipgloss.NewStyle().Faint(true)
	invalidHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(invalidColor))

	searchHighlight = lipgloss.NewStyle().
			Background(lipgloss.Color(searchHighlightBGColor)).
			Foreground(lipgloss.Color(searchHighlightFGColor))
)
