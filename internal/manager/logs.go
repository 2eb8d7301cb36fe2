package manager

// Logs returns the activity log entries, oldest first.
func (m *Manager) Logs() []string { return m.activity.List() }

// ClearLogs empties the activity log; exactly one "cleared" entry remains.
func (m *Manager) ClearLogs() { m.activity.Clear() }

// ExportLogs returns the newline-joined log dump plus a suggested filename.
func (m *Manager) ExportLogs() (content, filename string) {
	return m.activity.ExportText(), "llama-swap-logs-" + m.now().Format("20060102-150405") + ".txt"
}
