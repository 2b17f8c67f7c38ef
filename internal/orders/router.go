package orders

import (
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(rg *gin.RouterGroup, controller *Controller, authenticated, adminOnly gin.HandlerFunc) {
	rg.GET("/products", controller.ListProducts) // GET /api/v1/products

	orders := rg.Group("/orders")
	orders.Use(authenticated)
	{
		orders.POST("/checkout", controller.Checkout) // POST /api/v1/orders/checkout
		orders.GET("/:id", controller.GetOrder)       // GET /api/v1/orders/:id
	}

	tourist := rg.Group("/tourist")
	tourist.Use(authenticated)
	{
		tourist.PUT("/:id/orders/:orderId/cancel", controller.CancelOrder) // PUT /api/v1/tourist/:id/orders/:orderId/cancel
	}

	users := rg.Group("/users")
	users.Use(authenticated)
	{
		users.GET("/orders", controller.GetUserOrders) // GET /api/v1/users/orders
	}

	admin := rg.Group("/admin")
	admin.Use(authenticated, adminOnly)
	{
		admin.POST("/products", controller.CreateProduct)        // POST /api/v1/admin/products
		admin.PUT("/orders/:id/status", controller.UpdateStatus) // PUT /api/v1/admin/orders/:id/status
	}
}
