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

// ProductDetail renders one product with a quantity selector.
func ProductDetail(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)
		data := basePage(sess, "Product")
		data["CartCount"] = loadBadge(c, client, sess)

		product, err := client.ProductByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if api.KindOf(err) == api.KindNotFound {
				data["Error"] = "Product not found"
				c.HTML(http.StatusNotFound, "error.html", data)
				return
			}
			log.Println("[SHOP] [ERROR] product fetch failed:", err)
			data["Error"] = api.Message(err, "error fetching product")
			c.HTML(http.StatusOK, "error.html", data)
			return
		}

		data["Product"] = product
		c.HTML(http.StatusOK, "product.html", data)
	}
}

// AddToCart handles the add form from the home grid (quantity 1) and the
// product page (chosen quantity). The quantity is guarded against the
// product's stock before anything goes over the wire.
func AddToCart(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)
		if !sess.Authenticated() {
			c.Redirect(http.StatusFound, "/login")
			return
		}

		productID := c.PostForm("productId")
		if productID == "" {
			productID = c.Param("id")
		}

		quantity := 1
		if raw := c.PostForm("quantity"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				c.Redirect(http.StatusFound, "/product/"+productID)
				return
			}
			quantity = parsed
		}

		product, err := client.ProductByID(c.Request.Context(), productID)
		if err != nil {
			data := basePage(sess, "Product")
			data["Error"] = api.Message(err, "error fetching product")
			c.HTML(http.StatusOK, "error.html", data)
			return
		}

		if err := cart.CheckQuantity(quantity, product.Stock); err != nil {
			if errors.Is(err, cart.ErrNoChange) {
				// Below 1 is a local no-op, nothing is submitted.
				c.Redirect(http.StatusFound, "/product/"+productID)
				return
			}
			data := basePage(sess, "Product")
			data["CartCount"] = loadBadge(c, client, sess)
			data["Product"] = product
			data["Error"] = "Insufficient stock"
			c.HTML(http.StatusOK, "product.html", data)
			return
		}

		shopClient := client.WithCredential(sess.Token)
		if err := shopClient.AddToCart(c.Request.Context(), productID, quantity); err != nil {
			if handleUnauthenticated(c, store, err) {
				return
			}
			log.Println("[CART] [ERROR] add to cart failed:", err)
			data := basePage(sess, "Product")
			data["CartCount"] = loadBadge(c, client, sess)
			data["Product"] = product
			data["Error"] = api.Message(err, "error adding to cart")
			c.HTML(http.StatusOK, "product.html", data)
			return
		}

		log.Println("[CART] [INFO] product added to cart:", productID)
		c.Redirect(http.StatusSeeOther, "/cart")
	}
}
