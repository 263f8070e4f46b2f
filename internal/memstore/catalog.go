package memstore

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Katharina-R/online-bookstore/internal/domain/catalog"
)

// Catalog is the book directory, iterated in seed order.
type Catalog struct {
	mu    sync.RWMutex
	books []catalog.Book
	index map[string]int
}

// NewCatalog returns a catalog holding the given books in order.
func NewCatalog(books ...catalog.Book) *Catalog {
	c := &Catalog{index: make(map[string]int, len(books))}
	for _, b := range books {
		c.Add(b)
	}
	return c
}

// Add appends a book; a duplicate title replaces the existing entry in place.
func (c *Catalog) Add(b catalog.Book) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.index[b.Title]; ok {
		c.books[i] = b
		return
	}
	c.index[b.Title] = len(c.books)
	c.books = append(c.books, b)
}

// Get returns the book with the given title.
func (c *Catalog) Get(title string) (catalog.Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[title]
	if !ok {
		return catalog.Book{}, false
	}
	return c.books[i], true
}

// List returns a snapshot of all books in seed order.
func (c *Catalog) List() []catalog.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]catalog.Book, len(c.books))
	copy(out, c.books)
	return out
}

// SeedCatalog returns the storefront catalog.
func SeedCatalog() *Catalog {
	return NewCatalog(
		catalog.MustNew("The Great Gatsby", "Fiction", decimal.RequireFromString("10.99"), "/images/books/the_great_gatsby.jpg"),
		catalog.MustNew("1984", "Dystopia", decimal.RequireFromString("8.99"), "/images/books/1984.jpg"),
		catalog.MustNew("I Ching", "Traditional", decimal.RequireFromString("18.99"), "/images/books/I-Ching.jpg"),
		catalog.MustNew("Moby Dick", "Adventure", decimal.RequireFromString("12.49"), "/images/books/moby_dick.jpg"),
	)
}
