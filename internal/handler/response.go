package handler

import (
	"net/http"

	"github.com/blues/crowdhub/internal/logic"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// ValidationErrorResponse 422 字段错误
func ValidationErrorResponse(c *gin.Context, verr *logic.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, Response{
		Success: false,
		Message: "The given data was invalid.",
		Errors:  verr.Fields,
	})
}
