package selection

import (
	"errors"

	"github.com/mcoot/fantasy-keepers/internal/model"
)

// ErrSelectionFull is returned when adding a keeper beyond MaxKeepers
var ErrSelectionFull = errors.New("maximum 3 keepers allowed")

// Set is an ordered set of keepers keyed by player name
// Insertion order is preserved and a name can appear at most once
type Set struct {
	keepers []model.Keeper
}

// NewSet creates an empty Set
func NewSet() *Set {
	return &Set{}
}

// Contains reports whether the named player is selected
func (s *Set) Contains(name string) bool {
	return s.indexOf(name) >= 0
}

// Add selects a keeper; adding an already-selected name is a no-op
func (s *Set) Add(k model.Keeper) error {
	if s.Contains(k.Name) {
		return nil
	}
	if len(s.keepers) >= MaxKeepers {
		return ErrSelectionFull
	}
	s.keepers = append(s.keepers, k)
	return nil
}

// Remove deselects the named player
func (s *Set) Remove(name string) {
	if i := s.indexOf(name); i >= 0 {
		s.keepers = append(s.keepers[:i], s.keepers[i+1:]...)
	}
}

// Toggle flips a player's selection, reporting whether it is now selected
func (s *Set) Toggle(k model.Keeper) (bool, error) {
	if s.Contains(k.Name) {
		s.Remove(k.Name)
		return false, nil
	}
	if err := s.Add(k); err != nil {
		return false, err
	}
	return true, nil
}

// Len returns the number of selected keepers
func (s *Set) Len() int {
	return len(s.keepers)
}

// Keepers returns a copy of the selection in insertion order
func (s *Set) Keepers() []model.Keeper {
	out := make([]model.Keeper, len(s.keepers))
	copy(out, s.keepers)
	return out
}

// Summary returns the budget summary of the current selection
func (s *Set) Summary() Summary {
	return Summarize(s.keepers)
}

func (s *Set) indexOf(name string) int {
	for i, k := range s.keepers {
		if k.Name == name {
			return i
		}
	}
	return -1
}
