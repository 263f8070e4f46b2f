package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
)

const sessionCookie = "bookstore_session"

// sessions signs and verifies cookie values with HMAC-SHA256 keyed by the
// configured pepper. The cookie payload is "<value>.<hex mac>".
type sessions struct {
	pepper []byte
}

func (s sessions) mac(value string) []byte {
	m := hmac.New(sha256.New, s.pepper)
	m.Write([]byte(value))
	return m.Sum(nil)
}

func (s sessions) sign(value string) string {
	return value + "." + hex.EncodeToString(s.mac(value))
}

// verify splits and checks a signed cookie payload in constant time.
func (s sessions) verify(signed string) (string, bool) {
	i := strings.LastIndexByte(signed, '.')
	if i < 0 {
		return "", false
	}
	value, sig := signed[:i], signed[i+1:]
	got, err := hex.DecodeString(sig)
	if err != nil {
		return "", false
	}
	if subtle.ConstantTimeCompare(got, s.mac(value)) != 1 {
		return "", false
	}
	return value, true
}

func (s sessions) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    s.sign(value),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s sessions) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s sessions) cookieValue(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	return s.verify(c.Value)
}

func (s sessions) userEmail(r *http.Request) (string, bool) {
	return s.cookieValue(r, sessionCookie)
}

func (s sessions) setUserEmail(w http.ResponseWriter, email string) {
	s.setCookie(w, sessionCookie, email)
}

func (s sessions) clearUser(w http.ResponseWriter) {
	s.clearCookie(w, sessionCookie)
}
