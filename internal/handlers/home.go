package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopfront/internal/api"
	"shopfront/internal/session"
)

// Home renders the product grid with optional search and category filters.
// Browsing needs no session; the catalog call goes out anonymous unless a
// credential exists.
func Home(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)

		query := api.ProductQuery{
			Search:   strings.TrimSpace(c.Query("search")),
			Category: strings.TrimSpace(c.Query("category")),
		}

		shopClient := client
		if sess.Authenticated() {
			shopClient = client.WithCredential(sess.Token)
		}

		data := basePage(sess, "Shop")
		data["CartCount"] = loadBadge(c, client, sess)
		data["Search"] = query.Search
		data["Category"] = query.Category
		data["Message"] = c.Query("msg")

		products, err := shopClient.Products(c.Request.Context(), query)
		if err != nil {
			log.Println("[SHOP] [ERROR] product list fetch failed:", err)
			data["Error"] = api.Message(err, "error fetching products")
			c.HTML(http.StatusOK, "home.html", data)
			return
		}

		data["Products"] = products
		c.HTML(http.StatusOK, "home.html", data)
	}
}
