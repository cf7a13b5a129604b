package main

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-digest/dialogs"
	"github.com/andareed/siftly-digest/digest"
	"github.com/andareed/siftly-digest/logging"
)

func (m *model) sourceLabel() string {
	src := m.data.source
	if src.path != "" {
		return filepath.Base(src.path)
	}
	if src.startDayObs == 0 {
		return ""
	}
	label := src.startDayObs.ForDisplay()
	if src.endDayObs != src.startDayObs {
		label += " to " + src.endDayObs.ForDisplay()
	}
	if src.telescope != "" {
		label += " · " + src.telescope
	}
	return label
}

func (m *model) fileStem() string {
	src := m.data.source
	if src.path != "" {
		base := filepath.Base(src.path)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	if src.startDayObs != 0 {
		stem := "digest_" + src.startDayObs.String()
		if src.endDayObs != src.startDayObs {
			stem += "_" + src.endDayObs.String()
		}
		return stem
	}
	return "digest"
}

func (m *model) defaultSaveName() string {
	if strings.EqualFold(filepath.Ext(m.InitialPath), ".json") {
		return m.InitialPath
	}
	return m.fileStem() + ".json"
}

func (m *model) defaultExportName() string {
	return m.fileStem() + "_export.csv"
}

func (m *model) handlePathConfirmed(msg dialogs.PathConfirmedMsg) tea.Cmd {
	var err error
	switch msg.Kind {
	case dialogs.KindExport:
		err = ExportModel(m, msg.Path)
	default:
		err = SaveModel(m, msg.Path)
	}
	m.refreshView("path-confirmed", false)
	if err != nil {
		logging.Errorf("%s to %s failed: %v", msg.Kind, msg.Path, err)
		return m.startNotice(fmt.Sprintf("Could not %s: %v", msg.Kind, err), "error", noticeDuration)
	}
	logging.Infof("%s written to %s", msg.Kind, msg.Path)
	if msg.Kind == dialogs.KindExport {
		return m.startNotice(fmt.Sprintf("Exported %d rows to %s", len(m.data.filteredIndices), msg.Path), "success", noticeDuration)
	}
	return m.startNotice("Saved to "+msg.Path, "success", noticeDuration)
}

func (m *model) copyCurrentRow() tea.Cmd {
	row, ok := m.currentRow()
	if !ok {
		return m.startNotice("No row selected", "warn", noticeDuration)
	}
	return m.copyToClipboard(row.String(), "Row copied")
}

// copyDashboardLink copies a web dashboard link for the same nights and the
// committed window.
func (m *model) copyDashboardLink() tea.Cmd {
	src := m.data.source
	if m.dashboardBase == "" || src.startDayObs == 0 {
		return m.startNotice("No dashboard link for an offline file", "warn", noticeDuration)
	}
	link := digest.DashboardURL(m.dashboardBase, digest.LinkParams{
		StartDayObs: src.startDayObs,
		EndDayObs:   src.endDayObs,
		Telescope:   src.telescope,
		Window:      m.data.window,
	})
	return m.copyToClipboard(link, "Dashboard link copied")
}

func (m *model) copyToClipboard(text, ok string) tea.Cmd {
	if m.copyText == nil {
		return m.startNotice("Clipboard unavailable", "error", noticeDuration)
	}
	if err := m.copyText(text); err != nil {
		logging.Warnf("copy failed: %v", err)
		return m.startNotice("Copy failed: "+err.Error(), "error", noticeDuration)
	}
	return m.startNotice(ok, "success", noticeDuration)
}
