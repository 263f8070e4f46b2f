// Package user holds registered shopper accounts and their order history.
package user

import (
	"sort"

	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/Katharina-R/online-bookstore/internal/domain/order"
)

// User is a registered account. The order history is kept sorted ascending
// by order date as orders are appended.
type User struct {
	Email        string
	PasswordHash string
	Name         string
	Address      string

	orders []*order.Order
}

// New creates a User with a bcrypt-hashed password.
func New(email, password, name, address string) (*User, error) {
	u := &User{
		Email:   email,
		Name:    name,
		Address: address,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword replaces the stored password hash.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// AddOrder inserts o into the history keeping it sorted ascending by order
// date. Insertion is a binary search plus shift, not a re-sort; orders with
// equal timestamps keep their relative insertion order.
func (u *User) AddOrder(o *order.Order) {
	i := sort.Search(len(u.orders), func(i int) bool {
		return u.orders[i].OrderDate.After(o.OrderDate)
	})
	u.orders = append(u.orders, nil)
	copy(u.orders[i+1:], u.orders[i:])
	u.orders[i] = o
}

// Orders returns a snapshot of the order history, oldest first.
func (u *User) Orders() []*order.Order {
	out := make([]*order.Order, len(u.orders))
	copy(out, u.orders)
	return out
}
