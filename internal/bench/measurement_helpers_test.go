package bench

// Count reports how many latencies were recorded for op.
func (m *Measurement) Count(op string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.hists[op]; ok {
		return h.TotalCount()
	}
	return 0
}
