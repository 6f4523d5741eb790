package session

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shopfront/internal/api"
)

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		if c.MaxAge >= 0 {
			r.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	return r
}

func TestEstablishThenLoad(t *testing.T) {
	store := NewCookieStore(time.Hour)
	rec := httptest.NewRecorder()

	user := api.User{ID: "u1", Name: "Test User", Email: "test@example.com"}
	if err := store.Establish(rec, user, "opaque-token"); err != nil {
		t.Fatalf("Establish() error = %v", err)
	}

	sess := store.Load(requestWithCookies(rec.Result().Cookies()))
	if !sess.Authenticated() {
		t.Fatal("session not authenticated after Establish")
	}
	if sess.Token != "opaque-token" {
		t.Errorf("Token = %q, want opaque-token", sess.Token)
	}
	if sess.User.Email != "test@example.com" {
		t.Errorf("User.Email = %q, want test@example.com", sess.User.Email)
	}
}

func TestEstablishRejectsHalfFormedSession(t *testing.T) {
	store := NewCookieStore(time.Hour)

	if err := store.Establish(httptest.NewRecorder(), api.User{ID: "u1"}, ""); err == nil {
		t.Error("Establish with empty token succeeded, want error")
	}
	if err := store.Establish(httptest.NewRecorder(), api.User{}, "token"); err == nil {
		t.Error("Establish with zero identity succeeded, want error")
	}
}

func TestLoadIdentityAndCredentialTogetherOrNotAtAll(t *testing.T) {
	store := NewCookieStore(time.Hour)
	user := base64.RawURLEncoding.EncodeToString([]byte(`{"_id":"u1","name":"T","email":"t@e.com"}`))

	cases := []struct {
		name    string
		cookies []*http.Cookie
	}{
		{"no cookies", nil},
		{"token only", []*http.Cookie{{Name: tokenCookie, Value: "tok"}}},
		{"user only", []*http.Cookie{{Name: userCookie, Value: user}}},
	}
	for _, tc := range cases {
		sess := store.Load(requestWithCookies(tc.cookies))
		if sess.Authenticated() {
			t.Errorf("%s: session authenticated, want absent", tc.name)
		}
		if (sess.User != nil) != (sess.Token != "") {
			t.Errorf("%s: identity and credential not present together", tc.name)
		}
	}
}

func TestLoadUnparsableSnapshotIsAbsentNotFatal(t *testing.T) {
	store := NewCookieStore(time.Hour)
	cookies := []*http.Cookie{
		{Name: tokenCookie, Value: "tok"},
		{Name: userCookie, Value: "%%%not-base64%%%"},
	}
	if store.Load(requestWithCookies(cookies)).Authenticated() {
		t.Error("garbage snapshot loaded as a live session")
	}

	garbageJSON := base64.RawURLEncoding.EncodeToString([]byte("not json at all"))
	cookies[1].Value = garbageJSON
	if store.Load(requestWithCookies(cookies)).Authenticated() {
		t.Error("non-JSON snapshot loaded as a live session")
	}
}

func TestClearRemovesBoth(t *testing.T) {
	store := NewCookieStore(time.Hour)
	rec := httptest.NewRecorder()
	if err := store.Establish(rec, api.User{ID: "u1", Email: "t@e.com"}, "tok"); err != nil {
		t.Fatalf("Establish() error = %v", err)
	}

	clearRec := httptest.NewRecorder()
	store.Clear(clearRec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	expired := 0
	for _, c := range clearRec.Result().Cookies() {
		if c.Name == tokenCookie || c.Name == userCookie {
			if c.MaxAge >= 0 {
				t.Errorf("cookie %s not expired on Clear", c.Name)
			}
			expired++
		}
	}
	if expired != 2 {
		t.Errorf("Clear expired %d cookies, want 2", expired)
	}

	if store.Load(requestWithCookies(clearRec.Result().Cookies())).Authenticated() {
		t.Error("session still authenticated after Clear")
	}
}

func TestExpiredBearerTokenLoadsAsAbsent(t *testing.T) {
	store := NewCookieStore(time.Hour)
	rec := httptest.NewRecorder()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("whatever"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	if err := store.Establish(rec, api.User{ID: "u1", Email: "t@e.com"}, token); err != nil {
		t.Fatalf("Establish() error = %v", err)
	}
	if store.Load(requestWithCookies(rec.Result().Cookies())).Authenticated() {
		t.Error("expired credential loaded as a live session")
	}
}

func TestOpaqueTokenTreatedAsAlive(t *testing.T) {
	if !tokenAlive("not-a-jwt-at-all") {
		t.Error("opaque token treated as dead; only the server may decide that")
	}
}
