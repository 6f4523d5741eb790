package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"shopfront/internal/api"
	"shopfront/internal/session"
)

const testToken = "test-token"

var testUser = api.User{ID: "u1", Name: "Test User", Email: "test@example.com"}

// fakeShop is a stand-in for the remote shop API. It keeps one cart in
// memory and counts the hits per endpoint so tests can assert which calls
// were (or were not) issued.
type fakeShop struct {
	mu     sync.Mutex
	cart   api.Cart
	orders []api.Order
	hits   map[string]int
	server *httptest.Server

	lastProfileUpdate map[string]any
}

func newFakeShop(t *testing.T) *fakeShop {
	t.Helper()
	f := &fakeShop{hits: map[string]int{}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.count("get-cart")
		f.writeCart(w)
	}))
	mux.HandleFunc("POST /cart/add", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.count("add")
		var req struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.cart.Items = append(f.cart.Items, api.CartItem{
			Product:  api.Product{ID: req.ProductID, Name: "Added", Price: 1, Stock: 100},
			Quantity: req.Quantity,
		})
		f.recalc()
		f.mu.Unlock()
		json.NewEncoder(w).Encode(gin.H{"message": "added"})
	}))
	mux.HandleFunc("POST /cart/update-quantity", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.count("update")
		var req struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		for i := range f.cart.Items {
			if f.cart.Items[i].Product.ID == req.ProductID {
				f.cart.Items[i].Quantity = req.Quantity
			}
		}
		f.recalc()
		f.mu.Unlock()
		json.NewEncoder(w).Encode(gin.H{"message": "updated"})
	}))
	mux.HandleFunc("POST /cart/remove", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.count("remove")
		var req struct {
			ProductID string `json:"productId"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		kept := f.cart.Items[:0]
		for _, item := range f.cart.Items {
			if item.Product.ID != req.ProductID {
				kept = append(kept, item)
			}
		}
		f.cart.Items = kept
		f.recalc()
		f.mu.Unlock()
		json.NewEncoder(w).Encode(gin.H{"message": "removed"})
	}))
	mux.HandleFunc("POST /cart/clear", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.count("clear")
		f.mu.Lock()
		f.cart = api.Cart{}
		f.mu.Unlock()
		json.NewEncoder(w).Encode(gin.H{"message": "cleared"})
	}))
	mux.HandleFunc("POST /orders", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.count("create-order")
		f.mu.Lock()
		order := api.Order{ID: "o1", TotalPrice: f.cart.TotalPrice, CreatedAt: time.Now()}
		f.orders = append(f.orders, order)
		f.cart = api.Cart{} // order creation empties the cart server-side
		f.mu.Unlock()
		json.NewEncoder(w).Encode(gin.H{"order": order})
	}))
	mux.HandleFunc("GET /orders/user-orders", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.count("user-orders")
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(gin.H{"orders": f.orders})
	}))
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		f.count("products")
		json.NewEncoder(w).Encode(gin.H{"products": []api.Product{
			{ID: "p1", Name: "Widget", Price: 9.99, Stock: 5},
		}})
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.count("product")
		json.NewEncoder(w).Encode(gin.H{"product": api.Product{
			ID: r.PathValue("id"), Name: "Widget", Price: 9.99, Stock: 5,
		}})
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.count("login")
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "correct-horse" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(gin.H{"message": "Invalid email or password"})
			return
		}
		json.NewEncoder(w).Encode(gin.H{"token": testToken, "user": testUser})
	})
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		f.count("register")
		json.NewEncoder(w).Encode(gin.H{"token": testToken, "user": testUser})
	})
	mux.HandleFunc("GET /auth/profile", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.count("get-profile")
		json.NewEncoder(w).Encode(gin.H{"user": testUser})
	}))
	mux.HandleFunc("PUT /auth/profile", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.count("update-profile")
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.lastProfileUpdate = body
		f.mu.Unlock()
		updated := testUser
		if name, ok := body["name"].(string); ok {
			updated.Name = name
		}
		json.NewEncoder(w).Encode(gin.H{"user": updated})
	}))
	mux.HandleFunc("POST /forgot-password", func(w http.ResponseWriter, r *http.Request) {
		f.count("forgot")
		json.NewEncoder(w).Encode(gin.H{"message": "If that email is registered, a reset link has been sent."})
	})
	mux.HandleFunc("POST /reset-password/{token}", func(w http.ResponseWriter, r *http.Request) {
		f.count("reset")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(gin.H{"message": "Reset token is invalid or has expired"})
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeShop) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(gin.H{"message": "unauthorized"})
			return
		}
		next(w, r)
	}
}

func (f *fakeShop) count(endpoint string) {
	f.mu.Lock()
	f.hits[endpoint]++
	f.mu.Unlock()
}

func (f *fakeShop) hitCount(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[endpoint]
}

func (f *fakeShop) recalc() {
	total := 0.0
	for _, item := range f.cart.Items {
		total += item.Product.Price * float64(item.Quantity)
	}
	f.cart.TotalPrice = total
}

func (f *fakeShop) writeCart(w http.ResponseWriter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	json.NewEncoder(w).Encode(gin.H{"cart": f.cart})
}

func (f *fakeShop) seedCart(items ...api.CartItem) {
	f.mu.Lock()
	f.cart.Items = items
	f.recalc()
	f.mu.Unlock()
}

func newTestApp(t *testing.T, upstream string) (*gin.Engine, *session.CookieStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := session.NewCookieStore(time.Hour)
	client := api.New(api.Config{BaseURL: upstream})
	return NewRouter(store, client, "../../templates/**/*"), store
}

func loginCookies(t *testing.T, store *session.CookieStore) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := store.Establish(rec, testUser, testToken); err != nil {
		t.Fatalf("Establish() error = %v", err)
	}
	return rec.Result().Cookies()
}

func doRequest(r *gin.Engine, method, target string, form string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		if c.MaxAge >= 0 {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
