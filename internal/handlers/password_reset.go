package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopfront/internal/api"
	"shopfront/internal/session"
)

type forgotPasswordForm struct {
	Email string `form:"email" binding:"required,email"`
}

type resetPasswordForm struct {
	Password        string `form:"password" binding:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" binding:"required"`
}

func ForgotPasswordPage(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := basePage(currentSession(c, store), "Forgot Password")
		data["Email"] = ""
		c.HTML(http.StatusOK, "forgot_password.html", data)
	}
}

// ForgotPassword requests a reset link. The confirmation shown is the
// server's generic message, identical whether or not the address is on
// file. A transport failure gets the retry wording, since the server may
// simply be slow to wake.
func ForgotPassword(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		render := func(email, message, errMsg string, fieldErrs []string) {
			data := basePage(currentSession(c, store), "Forgot Password")
			data["Email"] = email
			data["Message"] = message
			data["Error"] = errMsg
			data["FieldErrors"] = fieldErrs
			c.HTML(http.StatusOK, "forgot_password.html", data)
		}

		var form forgotPasswordForm
		if err := c.ShouldBind(&form); err != nil {
			render(c.PostForm("email"), "", "", formErrors(err))
			return
		}

		message, err := client.ForgotPassword(c.Request.Context(), strings.ToLower(strings.TrimSpace(form.Email)))
		if err != nil {
			log.Println("[AUTH] [ERROR] password reset request failed:", err)
			if api.KindOf(err) == api.KindTransport {
				render(form.Email, "", "Request timed out. The server may be starting up. Please try again.", nil)
				return
			}
			render(form.Email, "", api.Message(err, "Error sending password reset email. Please try again."), nil)
			return
		}

		// Email field is cleared on success, mirroring the fresh form the
		// confirmation screen presents.
		render("", message, "", nil)
	}
}

func ResetPasswordPage(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := basePage(currentSession(c, store), "Reset Password")
		data["Token"] = c.Param("token")
		c.HTML(http.StatusOK, "reset_password.html", data)
	}
}

// ResetPassword completes the flow under the opaque token from the path.
// The token is never validated locally; only the server's rejection moves
// the screen to the invalid-link state, which offers a new request and
// nothing else.
func ResetPassword(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		render := func(message, errMsg string, fieldErrs []string) {
			data := basePage(currentSession(c, store), "Reset Password")
			data["Token"] = token
			data["Message"] = message
			data["Error"] = errMsg
			data["FieldErrors"] = fieldErrs
			c.HTML(http.StatusOK, "reset_password.html", data)
		}

		var form resetPasswordForm
		if err := c.ShouldBind(&form); err != nil {
			render("", "", formErrors(err))
			return
		}
		if form.Password != form.ConfirmPassword {
			render("", "Passwords do not match", nil)
			return
		}

		message, err := client.ResetPassword(c.Request.Context(), token, form.Password)
		if err != nil {
			log.Println("[AUTH] [ERROR] password reset failed:", err)
			if api.KindOf(err) == api.KindInvalidOrExpiredToken {
				data := basePage(currentSession(c, store), "Invalid Reset Link")
				data["Error"] = api.Message(err, "this reset link is invalid or has expired")
				c.HTML(http.StatusOK, "reset_invalid.html", data)
				return
			}
			render("", api.Message(err, "error resetting password"), nil)
			return
		}

		render(message, "", nil)
	}
}
