package handler

import (
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/Katharina-R/online-bookstore/internal/memstore"
)

// normalizeEmail canonicalizes an email for use as an account key.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	email := normalizeEmail(r.FormValue("email"))
	password := r.FormValue("password")
	name := r.FormValue("name")
	address := r.FormValue("address")

	if email == "" || password == "" || name == "" || address == "" {
		respond(w, http.StatusBadRequest, errorMsg("Please fill in all required fields"))
		return
	}

	if _, err := h.users.Register(email, password, name, address); err != nil {
		if errors.Is(err, memstore.ErrUserExists) {
			respond(w, http.StatusConflict, errorMsg(err.Error()))
			return
		}
		respond(w, http.StatusInternalServerError, errorMsg("Could not create account"))
		return
	}

	h.sessions.setUserEmail(w, email)
	respond(w, http.StatusOK, successMsg("Account created successfully! You are now logged in."))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	email := normalizeEmail(r.FormValue("email"))
	if email == "" {
		respond(w, http.StatusBadRequest, errorMsg("Please enter an email"))
		return
	}
	if _, ok := h.users.Authenticate(email, r.FormValue("password")); !ok {
		respond(w, http.StatusUnauthorized, errorMsg("Invalid email or password"))
		return
	}
	h.sessions.setUserEmail(w, email)
	respond(w, http.StatusOK, successMsg("Logged in successfully!"))
}

func (h *Handler) logout(w http.ResponseWriter, _ *http.Request) {
	h.sessions.clearUser(w)
	respond(w, http.StatusOK, successMsg("Logged out successfully!"))
}

func (h *Handler) account(w http.ResponseWriter, r *http.Request) {
	usr := h.currentUser(r)
	if usr == nil {
		respond(w, http.StatusUnauthorized, errorMsg("Please log in to access this page."))
		return
	}
	orders := usr.Orders()
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.FieldStart("email")
		e.Str(usr.Email)
		e.FieldStart("name")
		e.Str(usr.Name)
		e.FieldStart("address")
		e.Str(usr.Address)
		e.FieldStart("orders")
		e.ArrStart()
		for _, o := range orders {
			encodeOrderRecord(e, o.ToRecord())
		}
		e.ArrEnd()
	})
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := h.sessions.userEmail(r)
	if !ok {
		respond(w, http.StatusUnauthorized, errorMsg("Please log in to access this page."))
		return
	}
	usr, ok := h.users.Get(email)
	if !ok {
		respond(w, http.StatusBadRequest, errorMsg("Cannot update profile for unknown user"))
		return
	}

	if name := r.FormValue("name"); name != "" {
		usr.Name = name
	}
	if address := r.FormValue("address"); address != "" {
		usr.Address = address
	}
	if password := r.FormValue("password"); password != "" {
		if err := usr.SetPassword(password); err != nil {
			respond(w, http.StatusInternalServerError, errorMsg("Could not update password"))
			return
		}
		respond(w, http.StatusOK, successMsg("Password updated successfully!"))
		return
	}
	respond(w, http.StatusOK, successMsg("Profile updated successfully!"))
}
