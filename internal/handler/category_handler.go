package handler

import (
	"net/http"

	"github.com/blues/crowdhub/internal/logger"
	"github.com/blues/crowdhub/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler 分类接口
type CategoryHandler struct {
	categoryLogic *logic.CategoryLogic
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{
		categoryLogic: logic.NewCategoryLogic(db),
	}
}

// GetCategories 获取全部分类，按名称排序
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryLogic.ListCategories(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list categories: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	SuccessResponse(c, http.StatusOK, "", ToCategoryResponseList(categories))
}
