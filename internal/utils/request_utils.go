package utils

import (
	"github.com/gin-gonic/gin"

	"commerce-core/internal/schemas"
)

// WriteAndLogResponse writes the response object with the given status code
// and logs the outcome with the request's trace id.
func WriteAndLogResponse(c *gin.Context, response interface{}, statusCode int) {
	LogMessageWithFields(c, "info", "Returning response")
	c.JSON(statusCode, response)
}

// WriteAndLogError logs the underlying error and writes the uniform failure
// envelope with the mapped status code. Nothing is retried; the caller is
// expected to return immediately afterwards.
func WriteAndLogError(c *gin.Context, customErr *schemas.CustomError, statusCode int, err error) {
	LogMessageWithFields(c, "error", "Error occurred: "+err.Error())
	LogMessageWithFields(c, "error", "Returning "+customErr.Code+" / "+customErr.Message)
	c.AbortWithStatusJSON(statusCode, &schemas.ErrorDTO{
		Success: false,
		Code:    customErr.Code,
		Message: customErr.Message,
	})
}
