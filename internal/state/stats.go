package state

import "github.com/julianstephens/tally/internal/models"

// GetStats derives summary counts from the current collections. It never
// touches storage.
func (s *Store) GetStats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.ComputeStats(s.tasks, s.habits)
}
