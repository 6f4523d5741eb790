// Package session keeps the client's record of who is logged in and with
// what credential. Identity and credential live and die together: a session
// with only one of the two always loads as absent.
package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shopfront/internal/api"
)

var nowFunc = time.Now

type Session struct {
	User  *api.User
	Token string
}

// Authenticated reports whether this is a live session. By construction the
// stores never hand out a half-formed session, so checking both sides here
// is the whole invariant.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// Store persists the session across page loads. Implementations touch only
// their backing storage; they never call the shop API.
type Store interface {
	// Load reads the persisted session. Anything missing, half-present or
	// unparsable loads as the absent session, never an error.
	Load(r *http.Request) Session
	// Establish persists identity and credential together. An empty token
	// or zero identity is rejected so the invariant cannot be violated.
	Establish(w http.ResponseWriter, user api.User, token string) error
	// Clear removes both. Subsequent requests carry no credential.
	Clear(w http.ResponseWriter, r *http.Request)
}

// tokenAlive reports whether the bearer credential is still usable. The
// client never holds the signing secret, so the expiry claim is read without
// verification; a credential that is not a JWT at all stays opaque and is
// treated as alive until the server rejects it.
func tokenAlive(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return true
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.After(nowFunc())
}
