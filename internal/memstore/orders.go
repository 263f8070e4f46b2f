// Package memstore provides the process-wide in-memory stores: the book
// catalog, the order directory, and the user directory. Stores are created
// once at process start and reset only from tests.
package memstore

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/Katharina-R/online-bookstore/internal/domain/order"
)

// Orders maps order id to the completed order. Entries are never removed
// outside tests.
type Orders struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
}

// NewOrders returns an empty order store.
func NewOrders() *Orders {
	return &Orders{orders: make(map[string]*order.Order)}
}

// Save stores o keyed by its id. Saving a duplicate id is an error; order id
// generation is expected to be unique.
func (s *Orders) Save(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; ok {
		return errors.Errorf("order %s already exists", o.ID)
	}
	s.orders[o.ID] = o
	return nil
}

// Get returns the order with the given id.
func (s *Orders) Get(id string) (*order.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

// Len returns the number of stored orders.
func (s *Orders) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// Reset empties the store. Tests only.
func (s *Orders) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = make(map[string]*order.Order)
}
