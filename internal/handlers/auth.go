package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopfront/internal/api"
	"shopfront/internal/session"
)

type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type registerForm struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
}

func LoginPage(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)
		if sess.Authenticated() {
			c.Redirect(http.StatusFound, "/")
			return
		}
		data := basePage(sess, "Login")
		data["Email"] = ""
		c.HTML(http.StatusOK, "login.html", data)
	}
}

// Login exchanges credentials for an identity and a bearer token and
// persists both together.
func Login(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		render := func(email, errMsg string, fieldErrs []string) {
			data := basePage(session.Session{}, "Login")
			data["Email"] = email
			data["Error"] = errMsg
			data["FieldErrors"] = fieldErrs
			c.HTML(http.StatusOK, "login.html", data)
		}

		var form loginForm
		if err := c.ShouldBind(&form); err != nil {
			render(c.PostForm("email"), "", formErrors(err))
			return
		}

		resp, err := client.Login(c.Request.Context(), api.LoginRequest{
			Email:    strings.ToLower(strings.TrimSpace(form.Email)),
			Password: form.Password,
		})
		if err != nil {
			log.Println("[AUTH] [ERROR] login failed:", err)
			render(form.Email, api.Message(err, "error logging in"), nil)
			return
		}

		if err := store.Establish(c.Writer, resp.User, resp.Token); err != nil {
			log.Println("[SESSION] [ERROR] establish failed:", err)
			render(form.Email, "error logging in, please try again", nil)
			return
		}

		log.Println("[AUTH] [INFO] login succeeded:", resp.User.Email)
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func RegisterPage(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)
		if sess.Authenticated() {
			c.Redirect(http.StatusFound, "/")
			return
		}
		data := basePage(sess, "Register")
		data["Name"] = ""
		data["Email"] = ""
		c.HTML(http.StatusOK, "register.html", data)
	}
}

// Register creates the account and signs the visitor straight in with the
// returned identity and token.
func Register(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		render := func(form registerForm, errMsg string, fieldErrs []string) {
			data := basePage(session.Session{}, "Register")
			data["Name"] = form.Name
			data["Email"] = form.Email
			data["Error"] = errMsg
			data["FieldErrors"] = fieldErrs
			c.HTML(http.StatusOK, "register.html", data)
		}

		var form registerForm
		if err := c.ShouldBind(&form); err != nil {
			form.Name = c.PostForm("name")
			form.Email = c.PostForm("email")
			render(form, "", formErrors(err))
			return
		}

		resp, err := client.Register(c.Request.Context(), api.RegisterRequest{
			Name:     strings.TrimSpace(form.Name),
			Email:    strings.ToLower(strings.TrimSpace(form.Email)),
			Password: form.Password,
		})
		if err != nil {
			log.Println("[AUTH] [ERROR] registration failed:", err)
			render(form, api.Message(err, "error registering"), nil)
			return
		}

		if err := store.Establish(c.Writer, resp.User, resp.Token); err != nil {
			log.Println("[SESSION] [ERROR] establish failed:", err)
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		log.Println("[AUTH] [INFO] user registered:", resp.User.Email)
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// Logout destroys the persisted session. Identity and credential go
// together; afterwards every protected route bounces to /login.
func Logout(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.Clear(c.Writer, c.Request)
		log.Println("[AUTH] [INFO] session cleared")
		c.Redirect(http.StatusSeeOther, "/")
	}
}
