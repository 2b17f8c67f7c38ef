package wallet

import (
	"github.com/gin-gonic/gin"
)

func SetupWalletRoutes(rg *gin.RouterGroup, controller *Controller, authenticated, adminOnly gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(authenticated)
	{
		users.GET("/wallet", controller.GetMyWallet)                    // GET /api/v1/users/wallet
		users.GET("/wallet/transactions", controller.GetMyTransactions) // GET /api/v1/users/wallet/transactions
	}

	admin := rg.Group("/admin/wallets")
	admin.Use(authenticated, adminOnly)
	{
		admin.POST("/:touristId/top-up", controller.TopUp) // POST /api/v1/admin/wallets/:touristId/top-up
	}
}
