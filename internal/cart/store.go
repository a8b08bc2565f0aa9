package cart

import (
	"sync"
)

// Store keeps one cart per student for the lifetime of the process. Carts are
// ephemeral session state: created on first add, discarded on checkout or
// explicit clear, never persisted.
type Store struct {
	mu    sync.RWMutex
	carts map[string][]Item
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]Item)}
}

// Items returns a copy of the student's cart in insertion order.
func (s *Store) Items(studentID string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.carts[studentID]
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Add merges by item ID: an existing line gains the quantity, a new line is
// appended so it takes the last discount-allocation slot.
func (s *Store) Add(studentID string, item Item) []Item {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[studentID]
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += item.Quantity
			return s.snapshotLocked(studentID)
		}
	}
	s.carts[studentID] = append(items, item)
	return s.snapshotLocked(studentID)
}

// SetQuantity updates one line; a quantity of zero or less removes it.
// Returns false if the line is not in the cart.
func (s *Store) SetQuantity(studentID, itemID string, quantity int) ([]Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[studentID]
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		if quantity <= 0 {
			s.carts[studentID] = append(items[:i], items[i+1:]...)
		} else {
			items[i].Quantity = quantity
		}
		return s.snapshotLocked(studentID), true
	}
	return s.snapshotLocked(studentID), false
}

func (s *Store) Remove(studentID, itemID string) ([]Item, bool) {
	return s.SetQuantity(studentID, itemID, 0)
}

func (s *Store) Clear(studentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, studentID)
}

func (s *Store) snapshotLocked(studentID string) []Item {
	items := s.carts[studentID]
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
