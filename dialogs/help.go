package dialogs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("252")).
	BorderBackground(lipgloss.Color("236")).
	Padding(1, 2).
	Width(60)

// Help lists the key bindings.
type Help struct {
	visible  bool
	bindings []key.Binding
}

func NewHelpDialog(bindings []key.Binding) *Help {
	return &Help{visible: true, bindings: bindings}
}

func (d *Help) Init() tea.Cmd { return nil }

func (d *Help) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter", "esc", "?", "q":
			d.visible = false
		}
	}
	return d, nil
}

func (d *Help) View() string {
	if !d.visible {
		return ""
	}
	keyW := 0
	for _, b := range d.bindings {
		keyW = max(keyW, runewidth.StringWidth(b.Help().Key))
	}
	var lines []string
	for _, b := range d.bindings {
		h := b.Help()
		lines = append(lines, runewidth.FillRight(h.Key, keyW+2)+h.Desc)
	}
	hint := lipgloss.NewStyle().Faint(true).Render("enter/esc to return")
	return boxStyle.Render(fmt.Sprintf("%s\n\n%s", strings.Join(lines, "\n"), hint))
}

func (d *Help) Show()           { d.visible = true }
func (d *Help) Hide()           { d.visible = false }
func (d *Help) Focus() tea.Cmd  { return nil }
func (d *Help) Blur()           {}
func (d *Help) IsVisible() bool { return d.visible }
