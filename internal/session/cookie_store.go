package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"shopfront/internal/api"
)

// Fixed cookie names, read at startup of every request and removed on
// logout.
const (
	tokenCookie = "shop_token"
	userCookie  = "shop_user"
)

// CookieStore persists the credential and an identity snapshot directly in
// the browser, one cookie each.
type CookieStore struct {
	TTL    time.Duration
	Secure bool
}

func NewCookieStore(ttl time.Duration) *CookieStore {
	return &CookieStore{TTL: ttl}
}

func (s *CookieStore) Load(r *http.Request) Session {
	tc, err := r.Cookie(tokenCookie)
	if err != nil || tc.Value == "" {
		return Session{}
	}
	uc, err := r.Cookie(userCookie)
	if err != nil || uc.Value == "" {
		return Session{}
	}

	raw, err := base64.RawURLEncoding.DecodeString(uc.Value)
	if err != nil {
		return Session{}
	}
	var user api.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		return Session{}
	}

	if !tokenAlive(tc.Value) {
		return Session{}
	}
	return Session{User: &user, Token: tc.Value}
}

func (s *CookieStore) Establish(w http.ResponseWriter, user api.User, token string) error {
	if token == "" || user.ID == "" {
		return errors.New("session: identity and credential are required together")
	}
	snapshot, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s.set(w, tokenCookie, token, s.TTL)
	s.set(w, userCookie, base64.RawURLEncoding.EncodeToString(snapshot), s.TTL)
	return nil
}

func (s *CookieStore) Clear(w http.ResponseWriter, _ *http.Request) {
	s.set(w, tokenCookie, "", -time.Hour)
	s.set(w, userCookie, "", -time.Hour)
}

func (s *CookieStore) set(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
