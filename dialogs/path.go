package dialogs

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/siftly-digest/logging"
)

// PathKind tells the model what to do with a confirmed path.
type PathKind int

const (
	KindSave PathKind = iota
	KindExport
)

func (k PathKind) String() string {
	if k == KindExport {
		return "export"
	}
	return "save"
}

type (
	PathConfirmedMsg struct {
		Kind PathKind
		Path string
	}
	PathCanceledMsg struct{ Kind PathKind }
)

// Path prompts for a file name to save annotations or export rows to.
type Path struct {
	kind    PathKind
	input   textinput.Model
	visible bool
	lastDir string
}

func NewPathDialog(kind PathKind, defaultName, lastDir string) *Path {
	ti := textinput.New()
	ti.Placeholder = defaultName
	ti.Prompt = "Save as: "
	if kind == KindExport {
		ti.Prompt = "Export as: "
	}
	ti.CharLimit = 256
	ti.Width = 50
	if defaultName != "" {
		ti.SetValue(defaultName)
	}
	return &Path{kind: kind, input: ti, visible: true, lastDir: lastDir}
}

func (d *Path) Init() tea.Cmd { return d.input.Focus() }

func (d *Path) Kind() PathKind { return d.kind }

// Value is the path that enter would confirm.
func (d *Path) Value() string {
	val := d.input.Value()
	if val == "" {
		val = d.input.Placeholder
	}
	if val == "" {
		return ""
	}
	if d.lastDir != "" && !filepath.IsAbs(val) && filepath.Dir(val) == "." {
		val = filepath.Join(d.lastDir, filepath.Base(val))
	}
	return val
}

func (d *Path) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter":
			path := d.Value()
			if path == "" {
				return d, nil
			}
			logging.Debugf("path dialog: %s confirmed %q", d.kind, path)
			d.Hide()
			kind := d.kind
			return d, func() tea.Msg { return PathConfirmedMsg{Kind: kind, Path: path} }
		case "esc":
			logging.Debugf("path dialog: %s canceled", d.kind)
			d.Hide()
			kind := d.kind
			return d, func() tea.Msg { return PathCanceledMsg{Kind: kind} }
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d *Path) View() string {
	if !d.visible {
		return ""
	}
	help := lipgloss.NewStyle().
		Faint(true).
		Render(fmt.Sprintf("enter to %s • esc to cancel", d.kind))
	return boxStyle.Render(fmt.Sprintf("%s\n\n%s", d.input.View(), help))
}

func (d *Path) Show() {
	d.visible = true
	d.input.Focus()
}

func (d *Path) Hide() {
	d.visible = false
	d.input.Blur()
}

func (d *Path) Focus() tea.Cmd  { return d.input.Focus() }
func (d *Path) Blur()           { d.input.Blur() }
func (d *Path) IsVisible() bool { return d.visible }
