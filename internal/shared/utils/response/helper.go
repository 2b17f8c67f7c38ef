package response

import (
	"voyago/internal/shared/apperror"
	"voyago/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError translates a service error into the standard error envelope.
// Internal failures are logged and their details are not exposed.
func RespondError(c *gin.Context, message string, err error) {
	code := apperror.HTTPStatus(err)
	if !apperror.IsBusinessError(err) {
		logger.GetDefault().LogHTTPError(c, err, code)
		RespondJSON(c, "error", code, message, nil, map[string]interface{}{
			"code": apperror.Code(err),
		})
		return
	}

	RespondJSON(c, "error", code, message, nil, map[string]interface{}{
		"code":    apperror.Code(err),
		"details": err.Error(),
	})
}
