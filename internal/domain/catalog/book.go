package catalog

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Book is an immutable catalog entry. Equality is by field values; the same
// Book may be referenced from any number of carts and orders.
type Book struct {
	Title    string
	Category string
	Price    decimal.Decimal
	Image    string
}

// New validates the catalog invariants. Violations are programmer-facing
// errors: catalog seeding is expected to provide well-formed data, so these
// are never surfaced to shoppers.
func New(title, category string, price decimal.Decimal, image string) (Book, error) {
	if title == "" {
		return Book{}, errors.New("book title cannot be empty")
	}
	if category == "" {
		return Book{}, errors.New("book category cannot be empty")
	}
	if !price.IsPositive() {
		return Book{}, errors.Errorf("books must have a positive price, received %s", price)
	}
	if image == "" {
		return Book{}, errors.New("book image cannot be empty")
	}
	return Book{
		Title:    title,
		Category: category,
		Price:    price,
		Image:    image,
	}, nil
}

// MustNew is New for static catalog seeding; it panics on invalid input.
func MustNew(title, category string, price decimal.Decimal, image string) Book {
	b, err := New(title, category, price, image)
	if err != nil {
		panic(err)
	}
	return b
}
