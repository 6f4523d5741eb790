package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopfront/internal/api"
	"shopfront/internal/cart"
	"shopfront/internal/session"
)

// CartPage renders the cart from a fresh fetch. Mutating actions redirect
// back here, so the lines, totals and badge the visitor sees come from the
// state the server holds after the mutation, never a local guess.
func CartPage(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)
		shopClient := client.WithCredential(sess.Token)

		fetched, err := shopClient.Cart(c.Request.Context())
		if err != nil {
			if handleUnauthenticated(c, store, err) {
				return
			}
			log.Println("[CART] [ERROR] cart fetch failed:", err)
			data := basePage(sess, "Cart")
			data["Error"] = api.Message(err, "error fetching cart")
			c.HTML(http.StatusOK, "cart.html", data)
			return
		}

		view := cart.BuildView(fetched)
		data := basePage(sess, "Cart")
		data["Cart"] = view
		data["CartCount"] = view.ItemCount
		data["Message"] = c.Query("msg")
		data["Error"] = c.Query("err")
		c.HTML(http.StatusOK, "cart.html", data)
	}
}

// UpdateCartQuantity changes one line's quantity. The request is gated
// against the cart's own product snapshot: below 1 nothing is sent, above
// stock the submission is rejected locally.
func UpdateCartQuantity(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)
		shopClient := client.WithCredential(sess.Token)

		productID := c.PostForm("productId")
		quantity, err := strconv.Atoi(c.PostForm("quantity"))
		if err != nil || productID == "" {
			c.Redirect(http.StatusSeeOther, "/cart")
			return
		}
		if quantity < 1 {
			// Local no-op, nothing is sent.
			c.Redirect(http.StatusSeeOther, "/cart")
			return
		}

		fetched, err := shopClient.Cart(c.Request.Context())
		if err != nil {
			if handleUnauthenticated(c, store, err) {
				return
			}
			c.Redirect(http.StatusSeeOther, "/cart")
			return
		}

		stock := -1
		for _, item := range fetched.Items {
			if item.Product.ID == productID {
				stock = item.Product.Stock
				break
			}
		}
		if stock < 0 {
			c.Redirect(http.StatusSeeOther, "/cart")
			return
		}

		if err := cart.CheckQuantity(quantity, stock); err != nil {
			if errors.Is(err, cart.ErrInsufficientStock) {
				c.Redirect(http.StatusSeeOther, "/cart?err="+escapeQuery("Insufficient stock"))
				return
			}
			c.Redirect(http.StatusSeeOther, "/cart")
			return
		}

		if err := shopClient.UpdateQuantity(c.Request.Context(), productID, quantity); err != nil {
			if handleUnauthenticated(c, store, err) {
				return
			}
			log.Println("[CART] [ERROR] quantity update failed:", err)
			c.Redirect(http.StatusSeeOther, "/cart?err="+escapeQuery(api.Message(err, "error updating quantity")))
			return
		}

		c.Redirect(http.StatusSeeOther, "/cart")
	}
}

func RemoveFromCart(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)
		shopClient := client.WithCredential(sess.Token)

		productID := c.PostForm("productId")
		if productID == "" {
			c.Redirect(http.StatusSeeOther, "/cart")
			return
		}

		if err := shopClient.RemoveFromCart(c.Request.Context(), productID); err != nil {
			if handleUnauthenticated(c, store, err) {
				return
			}
			log.Println("[CART] [ERROR] remove failed:", err)
			c.Redirect(http.StatusSeeOther, "/cart?err="+escapeQuery(api.Message(err, "error removing item")))
			return
		}

		c.Redirect(http.StatusSeeOther, "/cart?msg="+escapeQuery("Item removed from cart"))
	}
}

// ClearCart empties the cart. The confirmation field comes from the confirm
// control on the cart page; without it nothing is issued.
func ClearCart(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)
		shopClient := client.WithCredential(sess.Token)

		if c.PostForm("confirm") != "yes" {
			c.Redirect(http.StatusSeeOther, "/cart")
			return
		}

		if err := shopClient.ClearCart(c.Request.Context()); err != nil {
			if handleUnauthenticated(c, store, err) {
				return
			}
			log.Println("[CART] [ERROR] clear failed:", err)
			c.Redirect(http.StatusSeeOther, "/cart?err="+escapeQuery(api.Message(err, "error clearing cart")))
			return
		}

		log.Println("[CART] [INFO] cart cleared")
		c.Redirect(http.StatusSeeOther, "/cart?msg="+escapeQuery("Cart cleared"))
	}
}
