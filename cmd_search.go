package main

import "strings"

// searchNext moves the cursor to the next visible row containing query,
// wrapping around once.
func (m *model) searchNext(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	n := len(m.data.filteredIndices)
	if q == "" || n == 0 {
		return false
	}
	start := max(m.cursor, 0)
	for step := 1; step <= n; step++ {
		i := (start + step) % n
		row := m.data.rows[m.data.filteredIndices[i]]
		if strings.Contains(strings.ToLower(row.String()), q) {
			m.cursor = i
			return true
		}
	}
	return false
}
