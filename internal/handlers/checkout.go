package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront/internal/api"
	"shopfront/internal/cart"
	"shopfront/internal/session"
)

// Cash on delivery is the only payment method the checkout submits.
const paymentMethodCOD = "cod"

type shippingAddressForm struct {
	Street  string `form:"street" binding:"required"`
	City    string `form:"city" binding:"required"`
	State   string `form:"state"`
	ZipCode string `form:"zipCode" binding:"required"`
	Country string `form:"country"`
}

func (f shippingAddressForm) address() api.Address {
	return api.Address{
		Street:  f.Street,
		City:    f.City,
		State:   f.State,
		ZipCode: f.ZipCode,
		Country: f.Country,
	}
}

// CheckoutPage renders the address form next to an order summary built from
// a fresh cart fetch. An empty cart blocks checkout entirely.
func CheckoutPage(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)
		shopClient := client.WithCredential(sess.Token)

		fetched, err := shopClient.Cart(c.Request.Context())
		if err != nil {
			if handleUnauthenticated(c, store, err) {
				return
			}
			data := basePage(sess, "Checkout")
			data["Error"] = api.Message(err, "error fetching cart")
			c.HTML(http.StatusOK, "checkout.html", data)
			return
		}

		view := cart.BuildView(fetched)
		data := basePage(sess, "Checkout")
		data["Cart"] = view
		data["CartCount"] = view.ItemCount
		data["Address"] = shippingAddressForm{}
		if view.Empty() {
			data["Error"] = "Your cart is empty. Please add items before proceeding to checkout."
		}
		c.HTML(http.StatusOK, "checkout.html", data)
	}
}

// PlaceOrder runs the submission: the address is validated before any call
// goes out, and an empty cart never reaches the order endpoint. A rejected
// submission re-renders the form with the entered fields retained so the
// visitor can correct and resubmit.
func PlaceOrder(store session.Store, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store)
		shopClient := client.WithCredential(sess.Token)

		render := func(form shippingAddressForm, view cart.View, errMsg string, fieldErrs []string) {
			data := basePage(sess, "Checkout")
			data["Cart"] = view
			data["CartCount"] = view.ItemCount
			data["Address"] = form
			data["Error"] = errMsg
			data["FieldErrors"] = fieldErrs
			c.HTML(http.StatusOK, "checkout.html", data)
		}

		var form shippingAddressForm
		bindErr := c.ShouldBind(&form)

		fetched, err := shopClient.Cart(c.Request.Context())
		if err != nil {
			if handleUnauthenticated(c, store, err) {
				return
			}
			render(form, cart.View{}, api.Message(err, "error fetching cart"), nil)
			return
		}
		view := cart.BuildView(fetched)

		if view.Empty() {
			render(form, view, "Your cart is empty. Please add items before proceeding to checkout.", nil)
			return
		}

		// Street, city and zip are required before the order call is issued.
		if bindErr != nil {
			render(form, view, "Please fill all address fields", formErrors(bindErr))
			return
		}

		order, err := shopClient.CreateOrder(c.Request.Context(), api.CreateOrderRequest{
			ShippingAddress: form.address(),
			PaymentMethod:   paymentMethodCOD,
		})
		if err != nil {
			if handleUnauthenticated(c, store, err) {
				return
			}
			log.Println("[ORDER] [ERROR] order create failed:", err)
			render(form, view, api.Message(err, "error creating order"), nil)
			return
		}

		// The server empties the cart as part of order creation; the next
		// render re-fetches and sees the empty cart.
		log.Println("[ORDER] [INFO] order placed:", order.ID)
		c.Redirect(http.StatusSeeOther, "/orders?msg="+escapeQuery("Order placed successfully! You will pay cash on delivery."))
	}
}
