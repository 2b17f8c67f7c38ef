package cancellation

import (
	"github.com/gin-gonic/gin"
)

func SetupCancellationRoutes(rg *gin.RouterGroup, controller *Controller, authenticated gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(authenticated)
	{
		users.GET("/cancellations", controller.GetUserCancellations) // GET /api/v1/users/cancellations
	}
}
