package state

import (
	"context"

	"github.com/julianstephens/tally/internal/constants"
)

// ToggleDarkMode flips and persists the theme preference.
func (s *Store) ToggleDarkMode(ctx context.Context) error {
	s.mu.Lock()
	next := !s.darkMode
	if err := s.persist(ctx, constants.KeyDarkMode, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.darkMode = next
	s.mu.Unlock()
	s.notify()
	return nil
}
