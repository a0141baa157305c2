package handlers

import (
	"curtain_store/internal/models"
	"curtain_store/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the storefront, admin and WhatsApp endpoints.
func RegisterRoutes(
	router *gin.Engine,
	api *APIHandler,
	admin *AdminHandler,
	whatsapp *WhatsAppHandler,
	auth services.AuthService,
) {
	router.GET("/receipt", api.Receipt)

	// WhatsApp webhook
	router.POST("/api/whatsapp/webhook", whatsapp.HandleWebhook)

	store := router.Group("/api")
	{
		store.GET("/products", api.ListProducts)
		store.GET("/products/:id", api.GetProduct)
		store.GET("/category-images", api.ListCategoryImages)
		store.POST("/pricing/quote", api.QuotePrice)

		store.GET("/session", api.GetSession)
		store.POST("/session/navigate", api.Navigate)

		store.POST("/cart/items", api.AddToCart)
		store.POST("/cart/configured", api.AddConfiguredToCart)
		store.PATCH("/cart/items/:id", api.UpdateCartItem)
		store.DELETE("/cart/items/:id", api.RemoveCartItem)

		store.POST("/checkout", api.Checkout)
		store.POST("/quotes", api.RequestQuote)
	}

	router.POST("/api/admin/login", admin.Login)

	staff := router.Group("/api/admin", AdminAuth(auth))
	{
		staff.POST("/logout", admin.Logout)

		staff.GET("/dashboard", admin.Dashboard)
		staff.GET("/reports/revenue", admin.RevenueReport)
		staff.GET("/reports/top-products", admin.TopProducts)

		staff.GET("/orders", admin.ListOrders)
		staff.GET("/orders/stream", admin.StreamOrders)
		staff.GET("/orders/:id", admin.GetOrder)
		staff.PATCH("/orders/:id/status", admin.UpdateOrderStatus)
		staff.POST("/orders/:id/resend-confirmation", whatsapp.ResendConfirmation)

		staff.GET("/products", admin.ListProducts)
		staff.POST("/products", admin.CreateProduct)
		staff.PUT("/products/:id", admin.UpdateProduct)
		staff.DELETE("/products/:id", admin.DeleteProduct)
		staff.POST("/product-images", admin.UploadProductImage)
		staff.DELETE("/product-images", admin.DeleteProductImage)

		staff.GET("/category-images", api.ListCategoryImages)
		staff.POST("/category-images", admin.AddCategoryImage)
		staff.DELETE("/category-images/:id", admin.DeleteCategoryImage)

		staff.GET("/quotes", admin.ListQuotes)
		staff.PATCH("/quotes/:id/status", admin.UpdateQuoteStatus)

		staff.POST("/whatsapp/send-message", whatsapp.SendMessage)
	}

	managers := router.Group("/api/admin/users", AdminAuth(auth), RequireRole(models.SuperAdmin, models.Admin))
	{
		managers.GET("", admin.ListUsers)
		managers.POST("", admin.CreateUser)
		managers.PUT("/:id", admin.UpdateUser)
		managers.DELETE("/:id", admin.DeleteUser)
	}
}
