package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/Katharina-R/online-bookstore/internal/domain/cart"
	"github.com/Katharina-R/online-bookstore/internal/domain/order"
)

// message mirrors one flash call of the original storefront.
type message struct {
	Text     string
	Category string
}

func errorMsg(text string) message   { return message{Text: text, Category: "error"} }
func successMsg(text string) message { return message{Text: text, Category: "success"} }

// writeJSON encodes a single JSON object whose fields are produced by encode.
func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	e.ObjStart()
	encode(&e)
	e.ObjEnd()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

func encodeMessages(e *jx.Encoder, msgs []message) {
	e.FieldStart("messages")
	e.ArrStart()
	for _, m := range msgs {
		e.ObjStart()
		e.FieldStart("text")
		e.Str(m.Text)
		e.FieldStart("category")
		e.Str(m.Category)
		e.ObjEnd()
	}
	e.ArrEnd()
}

// respond writes only messages.
func respond(w http.ResponseWriter, status int, msgs ...message) {
	writeJSON(w, status, func(e *jx.Encoder) {
		encodeMessages(e, msgs)
	})
}

func encodeCartItems(e *jx.Encoder, items []cart.Item) {
	e.FieldStart("items")
	e.ArrStart()
	for _, item := range items {
		e.ObjStart()
		e.FieldStart("title")
		e.Str(item.Book.Title)
		e.FieldStart("category")
		e.Str(item.Book.Category)
		e.FieldStart("price")
		e.Str(item.Book.Price.StringFixed(2))
		e.FieldStart("quantity")
		e.Int(item.Quantity)
		e.FieldStart("total")
		e.Str(item.Total().StringFixed(2))
		e.ObjEnd()
	}
	e.ArrEnd()
}

// encodeOrderRecord encodes a serialized order as a JSON object.
func encodeOrderRecord(e *jx.Encoder, rec order.Record) {
	e.ObjStart()
	e.FieldStart("order_id")
	e.Str(rec.OrderID)
	e.FieldStart("user_email")
	e.Str(rec.UserEmail)
	e.FieldStart("items")
	e.ArrStart()
	for _, item := range rec.Items {
		e.ObjStart()
		e.FieldStart("title")
		e.Str(item.Title)
		e.FieldStart("quantity")
		e.Int(item.Quantity)
		e.FieldStart("price")
		e.Str(item.Price)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.FieldStart("shipping_info")
	e.ObjStart()
	e.FieldStart("name")
	e.Str(rec.ShippingInfo.Name)
	e.FieldStart("email")
	e.Str(rec.ShippingInfo.Email)
	e.FieldStart("address")
	e.Str(rec.ShippingInfo.Address)
	e.FieldStart("city")
	e.Str(rec.ShippingInfo.City)
	e.FieldStart("zip_code")
	e.Str(rec.ShippingInfo.ZipCode)
	e.ObjEnd()
	e.FieldStart("total_amount")
	e.Str(rec.TotalAmount)
	e.FieldStart("order_date")
	e.Str(rec.OrderDate)
	e.FieldStart("status")
	e.Str(rec.Status)
	e.ObjEnd()
}
