// Package handler exposes the storefront over HTTP: form data in, JSON out.
// Responses mirror the flash-message model of the original storefront: every
// response carries a list of user-facing messages with a category.
package handler

import (
	"net/http"

	"github.com/Katharina-R/online-bookstore/internal/domain/cart"
	"github.com/Katharina-R/online-bookstore/internal/domain/checkout"
	"github.com/Katharina-R/online-bookstore/internal/domain/user"
	"github.com/Katharina-R/online-bookstore/internal/memstore"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// SessionPepper keys the HMAC that signs session cookies.
	SessionPepper string
}

// Handler serves the storefront API. It owns no business logic; cart
// mutation goes through the cart package and checkout through the checkout
// service.
type Handler struct {
	books    *memstore.Catalog
	cart     *cart.Cart
	users    *memstore.Users
	orders   *memstore.Orders
	checkout *checkout.Service
	sessions sessions
}

// New constructs a Handler with the required collaborators.
func New(
	cfg Config,
	books *memstore.Catalog,
	c *cart.Cart,
	users *memstore.Users,
	orders *memstore.Orders,
	checkoutSvc *checkout.Service,
) *Handler {
	return &Handler{
		books:    books,
		cart:     c,
		users:    users,
		orders:   orders,
		checkout: checkoutSvc,
		sessions: sessions{pepper: []byte(cfg.SessionPepper)},
	}
}

// Routes returns the API route table.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/books", h.listBooks)

	mux.HandleFunc("GET /api/cart", h.viewCart)
	mux.HandleFunc("POST /api/cart/add", h.addToCart)
	mux.HandleFunc("POST /api/cart/remove", h.removeFromCart)
	mux.HandleFunc("POST /api/cart/update", h.updateCart)
	mux.HandleFunc("POST /api/cart/clear", h.clearCart)

	mux.HandleFunc("GET /api/checkout", h.checkoutView)
	mux.HandleFunc("POST /api/checkout", h.processCheckout)
	mux.HandleFunc("GET /api/orders/{id}", h.orderConfirmation)

	mux.HandleFunc("POST /api/register", h.register)
	mux.HandleFunc("POST /api/login", h.login)
	mux.HandleFunc("POST /api/logout", h.logout)
	mux.HandleFunc("GET /api/account", h.account)
	mux.HandleFunc("POST /api/account", h.updateProfile)

	return mux
}

// currentUser resolves the logged-in account from the session cookie, or nil.
func (h *Handler) currentUser(r *http.Request) *user.User {
	email, ok := h.sessions.userEmail(r)
	if !ok {
		return nil
	}
	u, ok := h.users.Get(email)
	if !ok {
		return nil
	}
	return u
}
