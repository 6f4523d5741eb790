package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront/internal/api"
	"shopfront/internal/session"
)

type profileForm struct {
	Name    string `form:"name" binding:"required"`
	Phone   string `form:"phone"`
	Street  string `form:"street"`
	City    string `form:"city"`
	State   string `form:"state"`
	ZipCode string `form:"zipCode"`
	Country string `form:"country"`
}

// ProfilePage shows the account details. The email is rendered read-only:
// it is immutable after registration and the update form never submits it.
func ProfilePage(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)
		shopClient := client.WithCredential(sess.Token)

		data := basePage(sess, "My Profile")
		data["CartCount"] = loadBadge(c, client, sess)

		user, err := shopClient.Profile(c.Request.Context())
		if err != nil {
			if handleUnauthenticated(c, store, err) {
				return
			}
			log.Println("[PROFILE] [ERROR] profile fetch failed:", err)
			data["Error"] = api.Message(err, "error fetching profile")
			c.HTML(http.StatusOK, "profile.html", data)
			return
		}

		data["Profile"] = user
		c.HTML(http.StatusOK, "profile.html", data)
	}
}

// UpdateProfile submits the editable fields and refreshes the persisted
// identity snapshot from the server's answer, so the header greets with the
// new name on the very next render.
func UpdateProfile(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)
		shopClient := client.WithCredential(sess.Token)

		render := func(user api.User, errMsg, success string, fieldErrs []string) {
			data := basePage(sess, "My Profile")
			data["CartCount"] = loadBadge(c, client, sess)
			data["Profile"] = user
			data["Error"] = errMsg
			data["Success"] = success
			data["FieldErrors"] = fieldErrs
			c.HTML(http.StatusOK, "profile.html", data)
		}

		var form profileForm
		if err := c.ShouldBind(&form); err != nil {
			user := api.User{}
			if sess.User != nil {
				user = *sess.User
			}
			render(user, "", "", formErrors(err))
			return
		}

		updated, err := shopClient.UpdateProfile(c.Request.Context(), api.UpdateProfileRequest{
			Name:  form.Name,
			Phone: form.Phone,
			Address: api.Address{
				Street:  form.Street,
				City:    form.City,
				State:   form.State,
				ZipCode: form.ZipCode,
				Country: form.Country,
			},
		})
		if err != nil {
			if handleUnauthenticated(c, store, err) {
				return
			}
			log.Println("[PROFILE] [ERROR] profile update failed:", err)
			user := api.User{}
			if sess.User != nil {
				user = *sess.User
			}
			render(user, api.Message(err, "error updating profile"), "", nil)
			return
		}

		if err := store.Establish(c.Writer, updated, sess.Token); err != nil {
			log.Println("[SESSION] [ERROR] snapshot refresh failed:", err)
		}
		sess.User = &updated

		log.Println("[PROFILE] [INFO] profile updated:", updated.Email)
		render(updated, "", "Profile updated successfully", nil)
	}
}
