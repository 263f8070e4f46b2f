package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// parseQuantity reads the optional quantity form field. A missing field
// defaults to 1; a non-numeric value is rejected with the user-facing
// message.
func parseQuantity(r *http.Request) (int, error) {
	raw := r.FormValue("quantity")
	if raw == "" {
		return 1, nil
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Errorf("Received non-numeric quantity %s", raw)
	}
	return qty, nil
}

func (h *Handler) listBooks(w http.ResponseWriter, _ *http.Request) {
	books := h.books.List()
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.FieldStart("books")
		e.ArrStart()
		for _, b := range books {
			e.ObjStart()
			e.FieldStart("title")
			e.Str(b.Title)
			e.FieldStart("category")
			e.Str(b.Category)
			e.FieldStart("price")
			e.Str(b.Price.StringFixed(2))
			e.FieldStart("image")
			e.Str(b.Image)
			e.ObjEnd()
		}
		e.ArrEnd()
	})
}

func (h *Handler) viewCart(w http.ResponseWriter, r *http.Request) {
	items := h.cart.Items()
	total := h.cart.TotalPrice()
	usr := h.currentUser(r)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeCartItems(e, items)
		e.FieldStart("total_price")
		e.Str(total.StringFixed(2))
		e.FieldStart("total_items")
		e.Int(h.cart.TotalItems())
		e.FieldStart("current_user")
		if usr != nil {
			e.Str(usr.Email)
		} else {
			e.Null()
		}
	})
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	book, ok := h.books.Get(title)
	if !ok {
		respond(w, http.StatusNotFound, errorMsg(fmt.Sprintf("Book '%s' not found!", title)))
		return
	}
	qty, err := parseQuantity(r)
	if err != nil {
		respond(w, http.StatusBadRequest, errorMsg(err.Error()))
		return
	}
	if err := h.cart.Add(book, qty); err != nil {
		respond(w, http.StatusBadRequest, errorMsg("Failed to add book to cart: "+err.Error()))
		return
	}
	respond(w, http.StatusOK, successMsg(fmt.Sprintf("Added %d %q to cart!", qty, title)))
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	if title == "" {
		respond(w, http.StatusBadRequest, errorMsg("Cannot remove book with unknown book_title"))
		return
	}
	h.cart.Remove(title)
	respond(w, http.StatusOK, successMsg(fmt.Sprintf("Removed %q from cart!", title)))
}

func (h *Handler) updateCart(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	if title == "" {
		respond(w, http.StatusBadRequest, errorMsg("Cannot update quantity for unknown book_title"))
		return
	}
	qty, err := parseQuantity(r)
	if err != nil {
		respond(w, http.StatusBadRequest, errorMsg(err.Error()))
		return
	}
	if qty <= 0 {
		h.cart.Remove(title)
		respond(w, http.StatusOK, successMsg(fmt.Sprintf("Removed %q from cart!", title)))
		return
	}
	if err := h.cart.UpdateQuantity(title, qty); err != nil {
		// Wording (typo included) is part of the user-facing contract.
		respond(w, http.StatusBadRequest, errorMsg("Failed to udpate quantity: "+err.Error()))
		return
	}
	respond(w, http.StatusOK, successMsg(fmt.Sprintf("Updated %q quantity to %d!", title, qty)))
}

func (h *Handler) clearCart(w http.ResponseWriter, _ *http.Request) {
	h.cart.Clear()
	respond(w, http.StatusOK, successMsg("Cart cleared!"))
}
