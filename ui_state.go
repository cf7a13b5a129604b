package main

import "time"

type uiState struct {
	mode         mode
	command      CommandInput
	drawerOpen   bool
	summaryOpen  bool
	noticeMsg    string
	noticeType   string
	noticeSeq    int
	searchQuery  string
	visibleStart int
	visibleEnd   int

	timeWindow timeWindowUI

	// lastPress is used to turn two chart presses into a double click.
	lastPress time.Time

	debugCursorHeight int
	debugHeightFree   int
}
