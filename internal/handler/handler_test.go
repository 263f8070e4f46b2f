package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Katharina-R/online-bookstore/internal/domain/cart"
	"github.com/Katharina-R/online-bookstore/internal/domain/checkout"
	"github.com/Katharina-R/online-bookstore/internal/domain/payment"
	"github.com/Katharina-R/online-bookstore/internal/memstore"
	"github.com/Katharina-R/online-bookstore/internal/notify"
)

type testEnv struct {
	mux     *http.ServeMux
	cart    *cart.Cart
	users   *memstore.Users
	orders  *memstore.Orders
	cookies []*http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		cart:   cart.New(),
		users:  memstore.NewUsers(),
		orders: memstore.NewOrders(),
	}
	svc := checkout.NewService(env.orders, payment.NewMockGateway(), notify.NewConsoleNotifier())
	h := New(
		Config{SessionPepper: "test-pepper"},
		memstore.SeedCatalog(),
		env.cart,
		env.users,
		env.orders,
		svc,
	)
	env.mux = h.Routes()
	return env
}

// do performs a request carrying the session cookies collected so far and
// applies any Set-Cookie headers from the response, including deletions.
func (env *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	for _, c := range env.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		env.setCookie(c)
	}
	return w
}

func (env *testEnv) setCookie(c *http.Cookie) {
	for i, old := range env.cookies {
		if old.Name == c.Name {
			if c.MaxAge < 0 {
				env.cookies = append(env.cookies[:i], env.cookies[i+1:]...)
			} else {
				env.cookies[i] = c
			}
			return
		}
	}
	if c.MaxAge >= 0 {
		env.cookies = append(env.cookies, c)
	}
}

func (env *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return env.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (env *testEnv) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return env.do(t, req)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func messageTexts(t *testing.T, body map[string]any) []string {
	t.Helper()
	raw, ok := body["messages"].([]any)
	require.True(t, ok, "response must carry messages")
	texts := make([]string, len(raw))
	for i, m := range raw {
		texts[i] = m.(map[string]any)["text"].(string)
	}
	return texts
}

func checkoutForm() url.Values {
	return url.Values{
		"name":           {"Jane Reader"},
		"email":          {"jane@example.com"},
		"address":        {"1 Library Lane"},
		"city":           {"Booktown"},
		"zip_code":       {"12345"},
		"payment_method": {"credit_card"},
		"card_number":    {"4242424242424242"},
		"expiry_date":    {"12/25"},
		"cvv":            {"123"},
	}
}

func TestListBooks(t *testing.T) {
	env := newTestEnv(t)
	w := env.get(t, "/api/books")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	books := body["books"].([]any)
	require.Len(t, books, 4)
	first := books[0].(map[string]any)
	assert.Equal(t, "The Great Gatsby", first["title"])
	assert.Equal(t, "10.99", first["price"])
	assert.Equal(t, "/images/books/the_great_gatsby.jpg", first["image"])
}

func TestCartFlow(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm(t, "/api/cart/add", url.Values{"title": {"1984"}, "quantity": {"2"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{`Added 2 "1984" to cart!`}, messageTexts(t, decodeBody(t, w)))

	// Missing quantity defaults to one copy.
	w = env.postForm(t, "/api/cart/add", url.Values{"title": {"Moby Dick"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{`Added 1 "Moby Dick" to cart!`}, messageTexts(t, decodeBody(t, w)))

	w = env.get(t, "/api/cart")
	body := decodeBody(t, w)
	assert.Equal(t, "30.47", body["total_price"])
	assert.Equal(t, float64(3), body["total_items"])
	assert.Nil(t, body["current_user"])

	w = env.postForm(t, "/api/cart/update", url.Values{"title": {"1984"}, "quantity": {"5"}})
	assert.Equal(t, []string{`Updated "1984" quantity to 5!`}, messageTexts(t, decodeBody(t, w)))

	w = env.postForm(t, "/api/cart/remove", url.Values{"title": {"Moby Dick"}})
	assert.Equal(t, []string{`Removed "Moby Dick" from cart!`}, messageTexts(t, decodeBody(t, w)))

	w = env.postForm(t, "/api/cart/clear", nil)
	assert.Equal(t, []string{"Cart cleared!"}, messageTexts(t, decodeBody(t, w)))
	assert.True(t, env.cart.IsEmpty())
}

func TestAddToCartErrors(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm(t, "/api/cart/add", url.Values{"title": {"Finnegans Wake"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, []string{"Book 'Finnegans Wake' not found!"}, messageTexts(t, decodeBody(t, w)))

	w = env.postForm(t, "/api/cart/add", url.Values{"title": {"1984"}, "quantity": {"abc"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Received non-numeric quantity abc"}, messageTexts(t, decodeBody(t, w)))

	w = env.postForm(t, "/api/cart/add", url.Values{"title": {"1984"}, "quantity": {"-1"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{
		"Failed to add book to cart: Must provide a postivie quantity when adding books to cart. Received -1",
	}, messageTexts(t, decodeBody(t, w)))
}

func TestUpdateCartErrors(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm(t, "/api/cart/update", url.Values{"quantity": {"2"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Cannot update quantity for unknown book_title"}, messageTexts(t, decodeBody(t, w)))

	w = env.postForm(t, "/api/cart/update", url.Values{"title": {"1984"}, "quantity": {"2"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{
		"Failed to udpate quantity: Cannot update quantity for book '1984' as it is not in cart",
	}, messageTexts(t, decodeBody(t, w)))

	// Zero quantity means removal, even for a title that is not in the cart.
	w = env.postForm(t, "/api/cart/update", url.Values{"title": {"1984"}, "quantity": {"0"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{`Removed "1984" from cart!`}, messageTexts(t, decodeBody(t, w)))

	w = env.postForm(t, "/api/cart/remove", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Cannot remove book with unknown book_title"}, messageTexts(t, decodeBody(t, w)))
}

func TestCheckoutViewEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	w := env.get(t, "/api/checkout")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Your cart is empty!"}, messageTexts(t, decodeBody(t, w)))
}

func TestCheckoutSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.postForm(t, "/api/cart/add", url.Values{"title": {"The Great Gatsby"}, "quantity": {"7"}})

	form := checkoutForm()
	form.Set("discount_code", "save10")
	w := env.postForm(t, "/api/checkout", form)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, []string{
		"Discount applied! You saved $7.69",
		"Payment successful! Your order has been confirmed.",
	}, messageTexts(t, body))

	orderID, ok := body["order_id"].(string)
	require.True(t, ok)
	assert.Len(t, orderID, 8)
	assert.True(t, env.cart.IsEmpty())

	w = env.get(t, "/api/orders/"+orderID)
	require.Equal(t, http.StatusOK, w.Code)
	o := decodeBody(t, w)["order"].(map[string]any)
	assert.Equal(t, orderID, o["order_id"])
	assert.Equal(t, "69.24", o["total_amount"])
	assert.Equal(t, "Confirmed", o["status"])
	items := o["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "The Great Gatsby", items[0].(map[string]any)["title"])
}

func TestCheckoutDeclinedCard(t *testing.T) {
	env := newTestEnv(t)
	env.postForm(t, "/api/cart/add", url.Values{"title": {"1984"}})

	form := checkoutForm()
	form.Set("card_number", "4111111111111111")
	w := env.postForm(t, "/api/checkout", form)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, []string{"Payment failed: Invalid card number"}, messageTexts(t, decodeBody(t, w)))
	assert.False(t, env.cart.IsEmpty())
	assert.Equal(t, 0, env.orders.Len())
}

func TestCheckoutValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	env.postForm(t, "/api/cart/add", url.Values{"title": {"1984"}})

	form := checkoutForm()
	form.Set("name", "")
	w := env.postForm(t, "/api/checkout", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Name cannot be empty"}, messageTexts(t, decodeBody(t, w)))

	form = checkoutForm()
	form.Set("payment_method", "bitcoin")
	w = env.postForm(t, "/api/checkout", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Received invalid payment method bitcoin"}, messageTexts(t, decodeBody(t, w)))

	form = checkoutForm()
	form.Set("discount_code", "oops")
	w = env.postForm(t, "/api/checkout", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Invalid discount code"}, messageTexts(t, decodeBody(t, w)))
}

func TestOrderNotFound(t *testing.T) {
	env := newTestEnv(t)
	w := env.get(t, "/api/orders/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, []string{"Order not found"}, messageTexts(t, decodeBody(t, w)))
}

func registerForm() url.Values {
	return url.Values{
		"email":    {"jane@example.com"},
		"password": {"s3cret"},
		"name":     {"Jane Reader"},
		"address":  {"1 Library Lane"},
	}
}

func TestRegisterLoginLogout(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm(t, "/api/register", registerForm())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Account created successfully! You are now logged in."}, messageTexts(t, decodeBody(t, w)))

	// Registration logs the shopper in.
	w = env.get(t, "/api/account")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "jane@example.com", body["email"])
	assert.Equal(t, "Jane Reader", body["name"])

	w = env.postForm(t, "/api/logout", nil)
	assert.Equal(t, []string{"Logged out successfully!"}, messageTexts(t, decodeBody(t, w)))

	w = env.get(t, "/api/account")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, []string{"Please log in to access this page."}, messageTexts(t, decodeBody(t, w)))

	w = env.postForm(t, "/api/login", url.Values{"email": {"jane@example.com"}, "password": {"s3cret"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Logged in successfully!"}, messageTexts(t, decodeBody(t, w)))
}

func TestRegisterErrors(t *testing.T) {
	env := newTestEnv(t)

	form := registerForm()
	form.Del("address")
	w := env.postForm(t, "/api/register", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Please fill in all required fields"}, messageTexts(t, decodeBody(t, w)))

	w = env.postForm(t, "/api/register", registerForm())
	require.Equal(t, http.StatusOK, w.Code)
	w = env.postForm(t, "/api/register", registerForm())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, []string{"An account with this email already exists"}, messageTexts(t, decodeBody(t, w)))
}

func TestLoginErrors(t *testing.T) {
	env := newTestEnv(t)
	env.postForm(t, "/api/register", registerForm())
	env.postForm(t, "/api/logout", nil)

	w := env.postForm(t, "/api/login", url.Values{"password": {"s3cret"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Please enter an email"}, messageTexts(t, decodeBody(t, w)))

	w = env.postForm(t, "/api/login", url.Values{"email": {"jane@example.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, []string{"Invalid email or password"}, messageTexts(t, decodeBody(t, w)))
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	env.postForm(t, "/api/register", registerForm())

	w := env.postForm(t, "/api/account", url.Values{"name": {"Jane R."}, "address": {"2 New Street"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Profile updated successfully!"}, messageTexts(t, decodeBody(t, w)))

	u, ok := env.users.Get("jane@example.com")
	require.True(t, ok)
	assert.Equal(t, "Jane R.", u.Name)
	assert.Equal(t, "2 New Street", u.Address)

	w = env.postForm(t, "/api/account", url.Values{"password": {"n3w-pass"}})
	assert.Equal(t, []string{"Password updated successfully!"}, messageTexts(t, decodeBody(t, w)))
	assert.True(t, u.CheckPassword("n3w-pass"))
}

func TestCheckoutRecordedInAccountHistory(t *testing.T) {
	env := newTestEnv(t)
	env.postForm(t, "/api/register", registerForm())
	env.postForm(t, "/api/cart/add", url.Values{"title": {"I Ching"}, "quantity": {"1"}})

	form := checkoutForm()
	form.Set("payment_method", "paypal")
	form.Set("paypal_email", "jane@paypal.example.com")
	w := env.postForm(t, "/api/checkout", form)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.get(t, "/api/account")
	require.Equal(t, http.StatusOK, w.Code)
	orders := decodeBody(t, w)["orders"].([]any)
	require.Len(t, orders, 1)
	o := orders[0].(map[string]any)
	assert.Equal(t, "18.99", o["total_amount"])
	assert.Equal(t, "jane@example.com", o["user_email"])
}

func TestTamperedSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	env.postForm(t, "/api/register", registerForm())

	// Swap the email but keep the genuine signature.
	for i, c := range env.cookies {
		if c.Name == sessionCookie {
			sig := c.Value[strings.LastIndexByte(c.Value, '.')+1:]
			forged := *c
			forged.Value = "mallory@example.com." + sig
			env.cookies[i] = &forged
		}
	}

	w := env.get(t, "/api/account")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
