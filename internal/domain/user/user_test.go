package user

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Katharina-R/online-bookstore/internal/domain/cart"
	"github.com/Katharina-R/online-bookstore/internal/domain/catalog"
	"github.com/Katharina-R/online-bookstore/internal/domain/order"
	"github.com/Katharina-R/online-bookstore/internal/domain/shipping"
)

func testOrder(t *testing.T, id string, date time.Time) *order.Order {
	t.Helper()
	items := []cart.Item{
		{
			Book:     catalog.MustNew("1984", "Dystopia", decimal.RequireFromString("8.99"), "/images/books/1984.jpg"),
			Quantity: 1,
		},
	}
	info, err := shipping.New("Jane Reader", "jane@example.com", "1 Library Lane", "Booktown", "12345")
	require.NoError(t, err)
	o, err := order.New(id, "jane@example.com", items, info, "paypal", "TXN"+id, decimal.RequireFromString("8.99"))
	require.NoError(t, err)
	o.OrderDate = date
	return o
}

func TestPasswords(t *testing.T) {
	u, err := New("jane@example.com", "s3cret", "Jane Reader", "1 Library Lane")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret", u.PasswordHash, "password must be stored hashed")
	assert.True(t, u.CheckPassword("s3cret"))
	assert.False(t, u.CheckPassword("wrong"))

	require.NoError(t, u.SetPassword("n3w-pass"))
	assert.False(t, u.CheckPassword("s3cret"))
	assert.True(t, u.CheckPassword("n3w-pass"))
}

func TestAddOrderKeepsHistorySorted(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	u, err := New("jane@example.com", "s3cret", "Jane Reader", "1 Library Lane")
	require.NoError(t, err)

	// Insert out of order; the history must come back oldest first.
	u.AddOrder(testOrder(t, "second", base.Add(time.Hour)))
	u.AddOrder(testOrder(t, "third", base.Add(2*time.Hour)))
	u.AddOrder(testOrder(t, "first", base))

	orders := u.Orders()
	require.Len(t, orders, 3)
	assert.Equal(t, "first", orders[0].ID)
	assert.Equal(t, "second", orders[1].ID)
	assert.Equal(t, "third", orders[2].ID)
}

func TestAddOrderStableOnEqualDates(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	u, err := New("jane@example.com", "s3cret", "Jane Reader", "1 Library Lane")
	require.NoError(t, err)

	u.AddOrder(testOrder(t, "a", base))
	u.AddOrder(testOrder(t, "b", base))
	u.AddOrder(testOrder(t, "c", base))

	orders := u.Orders()
	require.Len(t, orders, 3)
	assert.Equal(t, "a", orders[0].ID)
	assert.Equal(t, "b", orders[1].ID)
	assert.Equal(t, "c", orders[2].ID)
}

func TestOrdersSnapshot(t *testing.T) {
	u, err := New("jane@example.com", "s3cret", "Jane Reader", "1 Library Lane")
	require.NoError(t, err)
	u.AddOrder(testOrder(t, "a", time.Now()))

	orders := u.Orders()
	u.AddOrder(testOrder(t, "b", time.Now()))
	assert.Len(t, orders, 1)
	assert.Len(t, u.Orders(), 2)
}
