package session

// Len reports how many sessions are stored
func (r *memoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
