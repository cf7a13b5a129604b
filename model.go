package main

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-digest/clipboard"
	"github.com/andareed/siftly-digest/dialogs"
	"github.com/andareed/siftly-digest/digest"
	"github.com/andareed/siftly-digest/logging"
	"github.com/andareed/siftly-digest/selection"
)

type mode int

const (
	modeView mode = iota
	modeCommand
	modeTimeWindow
)

type model struct {
	data dataState
	ui   uiState

	viewport            viewport.Model
	drawerPort          viewport.Model
	summaryPort         viewport.Model
	ready               bool
	cursor              int // index into data.filteredIndices
	lastVisibleRowCount int
	terminalWidth       int
	terminalHeight      int

	activeDialog dialogs.Dialog
	selector     *selection.Selector

	client        *digest.Client
	query         digest.Query
	summary       summaryState
	dashboardBase string

	InitialPath string

	now      func() time.Time
	copyText func(string) error
}

func newModel(header []ColumnMeta, rows []exposureRow) *model {
	return &model{
		data:     newDataState(header, rows),
		now:      time.Now,
		copyText: clipboard.Copy,
	}
}

// InitialiseUI derives the time bounds and filter state from the loaded
// rows. It must run after the rows, source and any saved window are set.
func (m *model) InitialiseUI() {
	prev := m.data.window
	m.computeTimeBounds()
	m.restoreWindow(prev)
	m.selector = selection.New(m.data.full, m.chartPosToMillis, m.setSelectedTimeRange)

	m.viewport = viewport.New(0, 0)
	m.drawerPort = viewport.New(0, commentDrawerHeight)
	m.summaryPort = viewport.New(0, summaryDrawerHeight)
	m.ui.timeWindow.step = timeWindowStepDefault
	m.ui.mode = modeView
	m.cursor = 0
	m.applyFilter()
}

func (m *model) Init() tea.Cmd {
	logging.Infof("siftly-digest: initialised with %d rows, window %s", len(m.data.rows), m.data.window)
	return m.fetchSummaryCmd()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		m.ready = true
		m.refreshView("resize", true)
		return m, nil

	case tea.KeyMsg:
		if m.activeDialog != nil && m.activeDialog.IsVisible() {
			return m.updateDialog(msg)
		}
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case clearNoticeMsg:
		m.clearNotice(msg)
		return m, nil

	case summaryLoadedMsg:
		return m, m.handleSummaryLoaded(msg)

	case dialogs.PathConfirmedMsg:
		m.activeDialog = nil
		return m, m.handlePathConfirmed(msg)

	case dialogs.PathCanceledMsg:
		m.activeDialog = nil
		m.refreshView("dialog-cancel", false)
		return m, nil
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		return m.updateDialog(msg)
	}
	return m, nil
}

func (m *model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	d, cmd := m.activeDialog.Update(msg)
	m.activeDialog = d
	if !d.IsVisible() {
		m.activeDialog = nil
	}
	return m, cmd
}

// openDialog shows d and drops any chart drag in progress, since the
// dialog swallows the mouse release.
func (m *model) openDialog(d dialogs.Dialog) tea.Cmd {
	if m.selector != nil {
		m.selector.Cancel()
	}
	m.activeDialog = d
	return d.Focus()
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.ui.mode {
	case modeCommand:
		return m.handleCommandKey(msg)
	case modeTimeWindow:
		return m.handleTimeWindowKey(msg)
	default:
		return m.handleViewModeKey(msg)
	}
}

func (m *model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	relayout := false

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.OpenHelp):
		return m, m.openDialog(dialogs.NewHelpDialog(Keys.Legend()))
	case key.Matches(msg, Keys.RowDown):
		m.moveCursor(1)
	case key.Matches(msg, Keys.RowUp):
		m.moveCursor(-1)
	case key.Matches(msg, Keys.PageDown):
		m.pageDown()
	case key.Matches(msg, Keys.PageUp):
		m.pageUp()
	case key.Matches(msg, Keys.Top):
		m.jumpToStart()
	case key.Matches(msg, Keys.Bottom):
		m.jumpToEnd()
	case key.Matches(msg, Keys.ScrollLeft):
		m.viewport.ScrollLeft(4)
	case key.Matches(msg, Keys.ScrollRight):
		m.viewport.ScrollRight(4)
	case key.Matches(msg, Keys.FlagMode):
		if !m.checkViewPortHasData() {
			return m, m.startNotice("No row selected", "warn", noticeDuration)
		}
		m.startCommand(CmdFlag, "")
	case key.Matches(msg, Keys.ShowFlaggedOnly):
		m.data.showOnlyFlagged = !m.data.showOnlyFlagged
		m.applyFilter()
	case key.Matches(msg, Keys.NextFlag):
		if !m.jumpToNextFlag() {
			cmd = m.startNotice("No next flagged exposure", "info", noticeDuration)
		}
	case key.Matches(msg, Keys.PrevFlag):
		if !m.jumpToPreviousFlag() {
			cmd = m.startNotice("No previous flagged exposure", "info", noticeDuration)
		}
	case key.Matches(msg, Keys.Filter):
		initial := ""
		if m.data.filterRegex != nil {
			initial = m.data.filterRegex.String()
		}
		m.startCommand(CmdFilter, initial)
	case key.Matches(msg, Keys.ClearFilter):
		_ = m.setFilterPattern("")
		m.ui.searchQuery = ""
	case key.Matches(msg, Keys.Search):
		m.startCommand(CmdSearch, "")
	case key.Matches(msg, Keys.Jump):
		m.startCommand(CmdJump, "")
	case key.Matches(msg, Keys.EditComment):
		id, ok := m.currentRowID()
		if !ok {
			return m, m.startNotice("No row selected", "warn", noticeDuration)
		}
		m.startCommand(CmdComment, m.getCommentContent(id))
	case key.Matches(msg, Keys.ShowComment):
		m.ui.drawerOpen = !m.ui.drawerOpen
		relayout = true
	case key.Matches(msg, Keys.Summary):
		m.ui.summaryOpen = !m.ui.summaryOpen
		relayout = true
	case key.Matches(msg, Keys.TimeWindow):
		return m, m.openTimeWindowDrawer()
	case key.Matches(msg, Keys.ZoomOut):
		if m.zoomOut() {
			cmd = m.startNotice(m.timeWindowStatusLabel(), "info", noticeDuration)
		}
	case key.Matches(msg, Keys.SaveToFile):
		return m, m.openDialog(dialogs.NewPathDialog(dialogs.KindSave, m.defaultSaveName(), ""))
	case key.Matches(msg, Keys.ExportToFile):
		return m, m.openDialog(dialogs.NewPathDialog(dialogs.KindExport, m.defaultExportName(), ""))
	case key.Matches(msg, Keys.CopyRow):
		cmd = m.copyCurrentRow()
	case key.Matches(msg, Keys.CopyLink):
		cmd = m.copyDashboardLink()
	default:
		return m, nil
	}

	m.refreshView("view-key", relayout)
	return m, cmd
}
