package attendance

import (
	"fmt"
	"sync"

	"gym-activity-backend/internal/catalog"
)

// Selection is the equipment toggled on for one in-progress check-in form.
// Items keep the order they were first toggled on.
type Selection struct {
	mu    sync.Mutex
	items []string
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Toggle adds name if it is not selected and removes it otherwise.
func (s *Selection) Toggle(name string) error {
	if !catalog.Contains(name) {
		return fmt.Errorf("%w: %q", ErrUnknownEquipment, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item == name {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	s.items = append(s.items, name)
	return nil
}

// Reset clears the selection.
func (s *Selection) Reset() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// Snapshot returns a copy of the current selection.
func (s *Selection) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
