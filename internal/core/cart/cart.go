package cart

import (
	"sync"

	"github.com/niksmo/smartshop/internal/core/domain"
)

// A Store is the single source of truth for the session cart.
//
// Line items are keyed by product ID and kept in insertion order.
// The store holds process-wide state for the lifetime of the session:
// it starts empty and is reset only by Clear or process end.
//
// Mutations never fail. Invalid requests (non-positive quantity,
// unknown product ID) are silent no-ops: callers are expected to guard
// quantity positivity, the store favors idempotent tolerance over
// raising faults.
type Store struct {
	mu      sync.RWMutex
	items   map[int]domain.CartItem
	order   []int
	subs    map[int]chan struct{}
	nextSub int
}

func NewStore() *Store {
	return &Store{
		items: make(map[int]domain.CartItem),
		subs:  make(map[int]chan struct{}),
	}
}

// Add inserts a new line item, or increments the quantity of the
// existing one. The stored product snapshot is never overwritten.
// quantity below 1 is a no-op.
func (s *Store) Add(p domain.Product, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	if item, ok := s.items[p.ID]; ok {
		item.Quantity += quantity
		s.items[p.ID] = item
	} else {
		s.items[p.ID] = domain.CartItem{Product: p, Quantity: quantity}
		s.order = append(s.order, p.ID)
	}
	s.mu.Unlock()

	s.notify()
}

// UpdateQuantity sets the quantity of the matching line item.
//
// quantity at or below zero is a no-op: the store never auto-removes,
// the quantity control guards the lower bound. Unknown ID is a no-op.
func (s *Store) UpdateQuantity(productID, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	item, ok := s.items[productID]
	if !ok {
		s.mu.Unlock()
		return
	}
	item.Quantity = quantity
	s.items[productID] = item
	s.mu.Unlock()

	s.notify()
}

func (s *Store) Remove(productID int) {
	s.mu.Lock()
	if _, ok := s.items[productID]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.items, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notify()
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.items = make(map[int]domain.CartItem)
	s.order = nil
	s.mu.Unlock()

	s.notify()
}

// Count returns the sum of all line item quantities, not the number
// of distinct line items.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, item := range s.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.CartItem, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.items[id])
	}
	return items
}

// Subscribe registers an observer of cart mutations.
//
// The returned channel receives one coalesced signal per mutation
// batch. The cancel func releases the subscription; it is safe to
// call more than once.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++

	c := make(chan struct{}, 1)
	s.subs[id] = c

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
	return c, cancel
}

func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.subs {
		select {
		case c <- struct{}{}:
		default:
		}
	}
}
