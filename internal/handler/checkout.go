package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/Katharina-R/online-bookstore/internal/domain/checkout"
	"github.com/Katharina-R/online-bookstore/internal/domain/discount"
	"github.com/Katharina-R/online-bookstore/internal/domain/payment"
	"github.com/Katharina-R/online-bookstore/internal/domain/shipping"
)

func (h *Handler) checkoutView(w http.ResponseWriter, r *http.Request) {
	if h.cart.IsEmpty() {
		respond(w, http.StatusBadRequest, errorMsg(checkout.ErrEmptyCart.Error()))
		return
	}
	items := h.cart.Items()
	total := h.cart.TotalPrice()
	usr := h.currentUser(r)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeCartItems(e, items)
		e.FieldStart("total_price")
		e.Str(total.StringFixed(2))
		e.FieldStart("current_user")
		if usr != nil {
			e.Str(usr.Email)
		} else {
			e.Null()
		}
	})
}

func (h *Handler) processCheckout(w http.ResponseWriter, r *http.Request) {
	req := checkout.Request{
		Name:          r.FormValue("name"),
		Email:         r.FormValue("email"),
		Address:       r.FormValue("address"),
		City:          r.FormValue("city"),
		ZipCode:       r.FormValue("zip_code"),
		DiscountCode:  r.FormValue("discount_code"),
		PaymentMethod: r.FormValue("payment_method"),
		CardNumber:    r.FormValue("card_number"),
		ExpiryDate:    r.FormValue("expiry_date"),
		CVV:           r.FormValue("cvv"),
		PaypalEmail:   r.FormValue("paypal_email"),
	}

	res, err := h.checkout.Checkout(r.Context(), h.cart, h.currentUser(r), req)

	msgs := make([]message, 0, len(res.Notices)+1)
	for _, n := range res.Notices {
		msgs = append(msgs, successMsg(n))
	}
	if err != nil {
		msgs = append(msgs, errorMsg(err.Error()))
		respond(w, checkoutStatus(err), msgs...)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeMessages(e, msgs)
		e.FieldStart("order_id")
		e.Str(res.OrderID)
	})
}

// checkoutStatus maps flow errors to HTTP statuses. Validation failures are
// client errors; a declined payment is reported as payment required.
func checkoutStatus(err error) int {
	var authErr *checkout.AuthorizationError
	if errors.As(err, &authErr) {
		return http.StatusPaymentRequired
	}
	var shipErr *shipping.ValidationError
	var payErr *payment.ValidationError
	var methodErr *checkout.InvalidPaymentMethodError
	if errors.As(err, &shipErr) || errors.As(err, &payErr) || errors.As(err, &methodErr) {
		return http.StatusBadRequest
	}
	if errors.Is(err, checkout.ErrEmptyCart) || errors.Is(err, discount.ErrInvalidCode) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) orderConfirmation(w http.ResponseWriter, r *http.Request) {
	o, ok := h.orders.Get(r.PathValue("id"))
	if !ok {
		respond(w, http.StatusNotFound, errorMsg("Order not found"))
		return
	}
	usr := h.currentUser(r)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.FieldStart("order")
		encodeOrderRecord(e, o.ToRecord())
		e.FieldStart("current_user")
		if usr != nil {
			e.Str(usr.Email)
		} else {
			e.Null()
		}
	})
}
