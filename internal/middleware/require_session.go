package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront/internal/session"
)

// SessionKey is the gin context key the loaded session lives under.
const SessionKey = "session"

// RequireSession loads the persisted session and redirects anonymous
// visitors to the login page. Authenticated requests carry the session in
// the gin context for the handler behind it.
func RequireSession(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := store.Load(c.Request)
		if !sess.Authenticated() {
			log.Println("[AUTH] [INFO] anonymous visit to protected page:", c.Request.URL.Path)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(SessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session placed by RequireSession, or loads it
// from the store for pages that render for anonymous visitors too.
func CurrentSession(c *gin.Context, store session.Store) session.Session {
	if v, ok := c.Get(SessionKey); ok {
		if sess, ok := v.(session.Session); ok {
			return sess
		}
	}
	return store.Load(c.Request)
}
