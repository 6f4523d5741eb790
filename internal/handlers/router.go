package handlers

import (
	"github.com/gin-gonic/gin"

	"shopfront/internal/api"
	"shopfront/internal/middleware"
	"shopfront/internal/session"
)

// NewRouter wires every screen to its route. The last four route groups of
// the storefront require a live session and bounce to /login without one.
func NewRouter(store session.Store, client *api.Client, templateGlob string) *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(templateGlob)

	r.GET("/", Home(store, client))
	r.GET("/product/:id", ProductDetail(store, client))
	r.POST("/product/:id/add", AddToCart(store, client))
	r.POST("/cart/add", AddToCart(store, client))

	r.GET("/login", LoginPage(store))
	r.POST("/login", Login(store, client))
	r.GET("/register", RegisterPage(store))
	r.POST("/register", Register(store, client))
	r.POST("/logout", Logout(store))

	r.GET("/forgot-password", ForgotPasswordPage(store))
	r.POST("/forgot-password", ForgotPassword(store, client))
	r.GET("/reset-password/:token", ResetPasswordPage(store))
	r.POST("/reset-password/:token", ResetPassword(store, client))

	private := r.Group("/")
	private.Use(middleware.RequireSession(store))
	{
		private.GET("/cart", CartPage(store, client))
		private.POST("/cart/update", UpdateCartQuantity(store, client))
		private.POST("/cart/remove", RemoveFromCart(store, client))
		private.POST("/cart/clear", ClearCart(store, client))

		private.GET("/checkout", CheckoutPage(store, client))
		private.POST("/checkout", PlaceOrder(store, client))

		private.GET("/orders", OrdersPage(store, client))
		private.GET("/orders/:id", OrderDetailPage(store, client))

		private.GET("/profile", ProfilePage(store, client))
		private.POST("/profile", UpdateProfile(store, client))
	}

	return r
}
