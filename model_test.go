package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/siftly-digest/dialogs"
	"github.com/andareed/siftly-digest/timerange"
)

const testNight = timerange.DayObs(20240101)

func testRecords() [][]string {
	return [][]string{
		{"exposure name", "obs_start", "exp_time", "band", "exposure_flag", "message_text"},
		{"MC_O_20240101_000001", "2024-01-01T14:00:00", "30.00", "g", "none", "focus sweep"},
		{"MC_O_20240101_000002", "2024-01-01T18:00:00", "30.00", "r", "none", "science"},
		{"MC_O_20240101_000003", "2024-01-01T22:00:00", "30.00", "i", "junk", "science, clouds"},
		{"MC_O_20240101_000004", "2024-01-02T02:00:00", "30.00", "r", "none", "science"},
		{"MC_O_20240101_000005", "2024-01-02T06:00:00", "15.00", "g", "none", "twilight flats"},
		{"MC_O_20240101_000006", "2024-01-02T10:00:00", "15.00", "g", "none", ""},
		{"MC_C_20240101_000007", "", "0.00", "", "none", "bias"},
	}
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 1, day, hour, minute, 0, 0, time.UTC)
}

func newTestModel(t *testing.T) (*model, *[]string) {
	t.Helper()
	m := initialModelFromRecords(testRecords())
	m.data.source = nightSource{startDayObs: testNight, endDayObs: testNight, telescope: "Simonyi"}
	m.dashboardBase = "https://example.org/nightlydigest"
	m.InitialiseUI()

	copied := &[]string{}
	m.copyText = func(s string) error {
		*copied = append(*copied, s)
		return nil
	}
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.True(t, m.data.hasTimeBounds)
	return m, copied
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func typeText(m *model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func visibleNames(m *model) []string {
	var out []string
	for _, idx := range m.data.filteredIndices {
		out = append(out, m.data.rows[idx].cols[0])
	}
	return out
}

func TestInitialState(t *testing.T) {
	m, _ := newTestModel(t)

	full := timerange.FullRange(testNight, testNight)
	assert.Equal(t, full, m.data.full)
	assert.Equal(t, full, m.data.window)
	assert.Len(t, m.data.filteredIndices, 7)
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, FlagJunk, m.data.flaggedRows[m.data.rows[2].id])
	assert.Len(t, m.data.flaggedRows, 1)
	assert.False(t, m.data.rows[6].hasTime)
	assert.Contains(t, m.View(), "focus sweep")
}

func TestCursorMovement(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, press("j"), press("j"))
	assert.Equal(t, 2, m.cursor)
	send(m, press("k"))
	assert.Equal(t, 1, m.cursor)
	send(m, press("G"))
	assert.Equal(t, 6, m.cursor)
	send(m, press("g"))
	assert.Equal(t, 0, m.cursor)
}

func TestFilterCommand(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, press("f"))
	require.Equal(t, modeCommand, m.ui.mode)
	typeText(m, "science")
	send(m, press("enter"))

	assert.Equal(t, modeView, m.ui.mode)
	assert.Equal(t, []string{"MC_O_20240101_000002", "MC_O_20240101_000003", "MC_O_20240101_000004"}, visibleNames(m))

	send(m, press("F"))
	assert.Len(t, m.data.filteredIndices, 7)
}

func TestBadFilterKeepsRows(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, press("f"))
	typeText(m, "(")
	send(m, press("enter"))

	assert.Nil(t, m.data.filterRegex)
	assert.Len(t, m.data.filteredIndices, 7)
	assert.Contains(t, m.ui.noticeMsg, "Invalid regex")
}

func TestSearchMovesCursor(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, press("/"))
	typeText(m, "TWILIGHT")
	send(m, press("enter"))
	assert.Equal(t, 4, m.cursor)
	assert.Equal(t, "TWILIGHT", m.ui.searchQuery)
}

func TestJumpToLine(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, press(":"))
	typeText(m, "6")
	send(m, press("enter"))
	assert.Equal(t, 5, m.cursor)
}

func TestFlagging(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, press("m"), press("g"))
	first := m.data.rows[0].id
	assert.Equal(t, FlagGood, m.data.flaggedRows[first])
	assert.Equal(t, modeView, m.ui.mode)

	send(m, press("n"))
	assert.Equal(t, 2, m.cursor)
	send(m, press("N"))
	assert.Equal(t, 0, m.cursor)

	send(m, press("M"))
	assert.Equal(t, []string{"MC_O_20240101_000001", "MC_O_20240101_000003"}, visibleNames(m))

	send(m, press("m"), press("c"))
	_, ok := m.data.flaggedRows[first]
	assert.False(t, ok)
	assert.Equal(t, []string{"MC_O_20240101_000003"}, visibleNames(m))
}

func TestComment(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, press("e"))
	typeText(m, "seeing 0.7")
	send(m, press("enter"))
	id := m.data.rows[0].id
	assert.Equal(t, "seeing 0.7", m.data.commentRows[id])

	send(m, press("c"))
	assert.True(t, m.ui.drawerOpen)
	assert.Contains(t, m.drawerPort.View(), "seeing 0.7")

	// editing starts from the existing text; clearing it removes the comment
	send(m, press("e"))
	assert.Equal(t, "seeing 0.7", m.ui.command.buf)
	for range "seeing 0.7" {
		send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	send(m, press("enter"))
	_, ok := m.data.commentRows[id]
	assert.False(t, ok)
}

func TestCopyRowAndLink(t *testing.T) {
	m, copied := newTestModel(t)

	send(m, press("y"))
	require.Len(t, *copied, 1)
	assert.Equal(t, "MC_O_20240101_000001\t2024-01-01T14:00:00\t30.00\tg\tnone\tfocus sweep", (*copied)[0])

	m.setSelectedTimeRange(timerange.Range{Start: at(1, 18, 0), End: at(1, 22, 0)})
	send(m, press("Y"))
	require.Len(t, *copied, 2)
	link := (*copied)[1]
	assert.Contains(t, link, "https://example.org/nightlydigest?")
	assert.Contains(t, link, "startDayobs=20240101")
	assert.Contains(t, link, "telescope=Simonyi")
	assert.Contains(t, link, "startTime=1704132000000")
	assert.Contains(t, link, "endTime=1704146400000")
}

func TestHelpDialog(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, press("?"))
	require.NotNil(t, m.activeDialog)
	assert.Contains(t, m.View(), "quit")

	send(m, press("esc"))
	assert.Nil(t, m.activeDialog)
}

func TestSaveDialogWritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	m, _ := newTestModel(t)

	send(m, press("w"))
	d, ok := m.activeDialog.(*dialogs.Path)
	require.True(t, ok)
	assert.Equal(t, "digest_20240101.json", d.Value())

	_, cmd := m.Update(press("enter"))
	require.NotNil(t, cmd)
	send(m, cmd())

	assert.Nil(t, m.activeDialog)
	assert.FileExists(t, "digest_20240101.json")
	assert.Contains(t, m.ui.noticeMsg, "Saved to digest_20240101.json")
}

func TestNoticeExpires(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := m.startNotice("first", "info", time.Millisecond)
	require.NotNil(t, cmd)
	m.startNotice("second", "info", time.Millisecond)

	send(m, clearNoticeMsg{id: m.ui.noticeSeq - 1})
	assert.Equal(t, "second", m.ui.noticeMsg)
	send(m, clearNoticeMsg{id: m.ui.noticeSeq})
	assert.Empty(t, m.ui.noticeMsg)
}
