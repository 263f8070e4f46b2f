// Package cart implements the shopping cart: an insertion-ordered collection
// of line items keyed by book title.
package cart

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Katharina-R/online-bookstore/internal/domain/catalog"
)

// Item is a line item: a book together with a positive quantity.
// Items reference catalog books; they do not own them.
type Item struct {
	Book     catalog.Book
	Quantity int
}

// Total returns price × quantity for this line item.
func (i Item) Total() decimal.Decimal {
	return i.Book.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// InvalidQuantityError rejects non-positive quantities on Add.
type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	// Wording (typo included) is part of the user-facing contract.
	return fmt.Sprintf("Must provide a postivie quantity when adding books to cart. Received %d", e.Quantity)
}

// UnknownBookError signals an update for a title that is not in the cart.
type UnknownBookError struct {
	Title string
}

func (e *UnknownBookError) Error() string {
	return fmt.Sprintf("Cannot update quantity for book '%s' as it is not in cart", e.Title)
}

// Cart holds at most one Item per book title. Iteration order is insertion
// order; removing an item preserves the relative order of the rest.
// Safe for concurrent use: the storefront shares one cart across requests.
type Cart struct {
	mu    sync.Mutex
	items []Item
	index map[string]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: make(map[string]int)}
}

// Add puts quantity copies of book into the cart. An existing line item for
// the same title accumulates; a new title is appended at the end.
func (c *Cart) Add(book catalog.Book, quantity int) error {
	if quantity <= 0 {
		return &InvalidQuantityError{Quantity: quantity}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.index[book.Title]; ok {
		c.items[i].Quantity += quantity
		return nil
	}
	c.index[book.Title] = len(c.items)
	c.items = append(c.items, Item{Book: book, Quantity: quantity})
	return nil
}

// Remove deletes the line item for title. Absent titles are a no-op.
func (c *Cart) Remove(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(title)
}

func (c *Cart) remove(title string) {
	i, ok := c.index[title]
	if !ok {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, title)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].Book.Title] = j
	}
}

// UpdateQuantity overwrites the quantity for title in place. A non-positive
// quantity behaves exactly like Remove; updating an absent title fails with
// UnknownBookError.
func (c *Cart) UpdateQuantity(title string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity <= 0 {
		c.remove(title)
		return nil
	}
	i, ok := c.index[title]
	if !ok {
		return &UnknownBookError{Title: title}
	}
	c.items[i].Quantity = quantity
	return nil
}

// TotalPrice returns the sum of all line item totals, rounded to 2 decimal
// places.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	sum := decimal.Zero
	for _, item := range c.items {
		sum = sum.Add(item.Total())
	}
	return sum.Round(2)
}

// TotalItems returns the total number of copies across all line items.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Items returns a snapshot of the line items in insertion order. Mutating the
// cart afterwards does not affect the returned slice.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Clear removes all line items.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.index = make(map[string]int)
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}
