package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront/internal/api"
	"shopfront/internal/session"
)

// OrdersPage lists the visitor's order history, newest first as the server
// returns it. Each order is an immutable priced snapshot from purchase time.
func OrdersPage(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)
		shopClient := client.WithCredential(sess.Token)

		data := basePage(sess, "My Orders")
		data["CartCount"] = loadBadge(c, client, sess)
		data["Message"] = c.Query("msg")

		orders, err := shopClient.UserOrders(c.Request.Context())
		if err != nil {
			if handleUnauthenticated(c, store, err) {
				return
			}
			log.Println("[ORDER] [ERROR] order list fetch failed:", err)
			data["Error"] = api.Message(err, "error fetching orders")
			c.HTML(http.StatusOK, "orders.html", data)
			return
		}

		data["Orders"] = orders
		c.HTML(http.StatusOK, "orders.html", data)
	}
}

// OrderDetailPage renders a single order.
func OrderDetailPage(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)
		shopClient := client.WithCredential(sess.Token)

		data := basePage(sess, "Order")
		data["CartCount"] = loadBadge(c, client, sess)

		order, err := shopClient.OrderByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if handleUnauthenticated(c, store, err) {
				return
			}
			if api.KindOf(err) == api.KindNotFound {
				data["Error"] = "Order not found"
				c.HTML(http.StatusNotFound, "error.html", data)
				return
			}
			data["Error"] = api.Message(err, "error fetching order")
			c.HTML(http.StatusOK, "error.html", data)
			return
		}

		data["Order"] = order
		c.HTML(http.StatusOK, "order.html", data)
	}
}
