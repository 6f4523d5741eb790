package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"shopfront/internal/api"
	"shopfront/internal/cart"
	"shopfront/internal/config"
	"shopfront/internal/middleware"
	"shopfront/internal/session"
)

// basePage assembles the data every template needs for the shell: the
// signed-in identity (or nil), the cart badge and the vestigial payment key
// the layout embeds.
func basePage(sess session.Session, title string) gin.H {
	return gin.H{
		"Title":      title,
		"User":       sess.User,
		"CartCount":  0,
		"PaymentKey": config.AppEnv.PaymentPublicKey,
	}
}

// loadBadge re-fetches the cart to compute the header badge. The badge is
// never incremented locally; after any cart mutation the next render lands
// here and picks up the authoritative count. Anonymous visitors and failed
// fetches keep the badge at zero.
func loadBadge(c *gin.Context, client *api.Client, sess session.Session) int {
	if !sess.Authenticated() {
		return 0
	}
	fetched, err := client.WithCredential(sess.Token).Cart(c.Request.Context())
	if err != nil {
		return 0
	}
	return cart.BuildView(fetched).ItemCount
}

// handleUnauthenticated clears a rejected session and sends the visitor to
// the login page. Returns true when it consumed the error.
func handleUnauthenticated(c *gin.Context, store session.Store, err error) bool {
	if !api.IsUnauthenticated(err) {
		return false
	}
	log.Println("[AUTH] [INFO] credential rejected, clearing session")
	store.Clear(c.Writer, c.Request)
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
	return true
}

// formErrors converts validator failures into per-field inline messages.
func formErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			case "email":
				details = append(details, fmt.Sprintf("%s must be a valid email address", field))
			case "min":
				details = append(details, fmt.Sprintf("%s is too short", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		return details
	}
	return []string{"invalid form submission"}
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func currentSession(c *gin.Context, store session.Store) session.Session {
	return middleware.CurrentSession(c, store)
}

func escapeQuery(msg string) string {
	return url.QueryEscape(msg)
}
