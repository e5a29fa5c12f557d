package routes

import (
	"backend/controllers"
	"backend/entity"
	"backend/middlewares"
	"backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth     *controllers.AuthController
	Catalog  *controllers.CatalogController
	Vendor   *controllers.VendorController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Payment  *controllers.PaymentController
	Order    *controllers.OrderController
	Coupon   *controllers.CouponController
	Review   *controllers.ReviewController
	Wishlist *controllers.WishlistController
	Address  *controllers.AddressController
	Admin    *controllers.AdminController
}

func RegisterRoutes(r *gin.Engine, jwtSecret string, ctrl *Controllers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	// public
	api.POST("/auth/register", ctrl.Auth.Register)
	api.POST("/auth/login", ctrl.Auth.Login)
	api.GET("/products", ctrl.Catalog.List)
	api.GET("/products/:id", ctrl.Catalog.Detail)
	api.GET("/products/:id/reviews", ctrl.Catalog.ProductReviews)

	// any authenticated user
	authed := api.Group("", middlewares.AuthMiddleware(jwtSecret))
	{
		authed.GET("/auth/me", ctrl.Auth.Me)
		authed.PATCH("/auth/me", ctrl.Auth.UpdateMe)

		authed.GET("/cart", ctrl.Cart.Get)
		authed.POST("/cart/items", ctrl.Cart.Add)
		authed.PATCH("/cart/items/:itemId", ctrl.Cart.UpdateQty)
		authed.DELETE("/cart/items/:itemId", ctrl.Cart.Remove)
		authed.DELETE("/cart", ctrl.Cart.Clear)

		authed.POST("/checkout", ctrl.Checkout.Create)
		authed.POST("/payments/verify", ctrl.Payment.Verify)
		authed.POST("/coupons/validate", ctrl.Coupon.Validate)

		authed.GET("/orders", ctrl.Order.ListMine)
		authed.GET("/orders/:id", ctrl.Order.Detail)
		authed.POST("/orders/:id/cancel", ctrl.Order.Cancel)
		authed.GET("/orders/:id/invoice", ctrl.Order.Invoice)

		authed.POST("/reviews", ctrl.Review.Create)
		authed.DELETE("/reviews/:id", ctrl.Review.Delete)

		authed.GET("/wishlist", ctrl.Wishlist.Get)
		authed.POST("/wishlist/items", ctrl.Wishlist.Add)
		authed.DELETE("/wishlist/items/:productId", ctrl.Wishlist.Remove)

		authed.GET("/addresses", ctrl.Address.List)
		authed.POST("/addresses", ctrl.Address.Create)
		authed.PATCH("/addresses/:id", ctrl.Address.Update)
		authed.DELETE("/addresses/:id", ctrl.Address.Delete)

		// upgrade path from customer to vendor
		authed.POST("/vendor/register", ctrl.Vendor.Become)
	}

	vendor := api.Group("/vendor", middlewares.AuthMiddleware(jwtSecret, entity.RoleVendor, entity.RoleAdmin))
	{
		vendor.GET("/profile", ctrl.Vendor.Profile)
		vendor.GET("/products", ctrl.Vendor.MyProducts)
		vendor.POST("/products", ctrl.Vendor.CreateProduct)
		vendor.PATCH("/products/:id", ctrl.Vendor.UpdateProduct)
		vendor.PUT("/products/:id/inventory", ctrl.Vendor.SetInventory)
		vendor.PUT("/products/:id/pricing", ctrl.Vendor.SetPricing)

		vendor.GET("/orders", ctrl.Order.ListForVendor)
		vendor.GET("/orders/:id", ctrl.Order.VendorDetail)
		vendor.POST("/orders/:id/pickup", ctrl.Order.MarkPickedUp)
		vendor.POST("/orders/:id/return", ctrl.Order.MarkReturned)
	}

	admin := api.Group("/admin", middlewares.AuthMiddleware(jwtSecret, entity.RoleAdmin))
	{
		admin.GET("/dashboard", ctrl.Admin.Dashboard)
		admin.GET("/users", ctrl.Admin.ListUsers)
		admin.GET("/vendors", ctrl.Admin.ListVendors)
		admin.POST("/coupons", ctrl.Admin.CreateCoupon)
		admin.GET("/coupons", ctrl.Admin.ListCoupons)
		admin.POST("/coupons/:id/deactivate", ctrl.Admin.DeactivateCoupon)
	}
}
