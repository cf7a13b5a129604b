package dialogs

import (
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathDialogConfirm(t *testing.T) {
	d := NewPathDialog(KindExport, "night_export.csv", "/tmp/out")
	require.True(t, d.IsVisible())
	assert.Contains(t, d.View(), "Export as: ")
	assert.Contains(t, d.View(), "enter to export")

	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, PathConfirmedMsg{Kind: KindExport, Path: filepath.Join("/tmp/out", "night_export.csv")}, cmd())
	assert.False(t, d.IsVisible())
}

func TestPathDialogKeepsAbsolutePath(t *testing.T) {
	d := NewPathDialog(KindSave, "/data/night.json", "/tmp/out")
	assert.Equal(t, "/data/night.json", d.Value())
}

func TestPathDialogCancel(t *testing.T) {
	d := NewPathDialog(KindSave, "night.json", "")
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, PathCanceledMsg{Kind: KindSave}, cmd())
	assert.False(t, d.IsVisible())
}

func TestPathDialogEmptyIgnoresEnter(t *testing.T) {
	d := NewPathDialog(KindSave, "", "")
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, d.IsVisible())
}

func TestHelpDialog(t *testing.T) {
	d := NewHelpDialog([]key.Binding{
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "time window")),
	})
	assert.Contains(t, d.View(), "q  quit")
	assert.Contains(t, d.View(), "t  time window")

	d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, d.IsVisible())
	assert.Empty(t, d.View())
}
