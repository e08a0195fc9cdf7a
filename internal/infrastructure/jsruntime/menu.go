package jsruntime

// ContextMenu is the simulated native menu handed to the context-menu callback.
type ContextMenu struct {
	items []string
}

// Len implements port.ContextMenu.
func (m *ContextMenu) Len() int {
	return len(m.items)
}

// Clear implements port.ContextMenu.
func (m *ContextMenu) Clear() {
	m.items = nil
}

// Items returns the entries that would be shown.
func (m *ContextMenu) Items() []string {
	out := make([]string, len(m.items))
	copy(out, m.items)
	return out
}
