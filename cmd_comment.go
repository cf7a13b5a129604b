package main

import (
	"strings"

	"github.com/andareed/siftly-digest/logging"
)

// addComment sets the comment on the current row. An empty comment clears
// it; the return value says whether a comment is now present.
func (m *model) addComment(comment string) bool {
	id, ok := m.currentRowID()
	if !ok {
		return false
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		delete(m.data.commentRows, id)
		logging.Infof("cleared comment on id %d", id)
		return false
	}
	m.data.commentRows[id] = comment
	logging.Infof("comment %q on id %d", comment, id)
	return true
}

func (m *model) getCommentContent(id uint64) string {
	return m.data.commentRows[id]
}

func (m *model) refreshDrawerContent() {
	id, ok := m.currentRowID()
	if !ok {
		m.drawerPort.SetContent("")
		return
	}
	content := m.getCommentContent(id)
	if content == "" {
		content = "(no comment, press e to add one)"
	}
	m.drawerPort.SetContent(content)
}
