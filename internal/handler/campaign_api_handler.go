package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blues/crowdhub/internal/auth"
	"github.com/blues/crowdhub/internal/logger"
	"github.com/blues/crowdhub/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CampaignAPIHandler 活动 JSON 接口
type CampaignAPIHandler struct {
	campaignLogic *logic.CampaignLogic
}

func NewCampaignAPIHandler(db *gorm.DB) *CampaignAPIHandler {
	return &CampaignAPIHandler{
		campaignLogic: logic.NewCampaignLogic(db),
	}
}

// campaignPayload JSON 请求体，金额和分类既可以是数字也可以是字符串
type campaignPayload struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Goal        json.Number `json:"goal"`
	EndDate     *string     `json:"end_date"`
	CloseDate   *string     `json:"close_date"`
	CategoryId  json.Number `json:"category_id"`
}

func (p campaignPayload) form() CampaignForm {
	form := CampaignForm{
		Name:        p.Name,
		Description: p.Description,
		Goal:        p.Goal.String(),
		CategoryId:  p.CategoryId.String(),
	}
	if p.EndDate != nil {
		form.EndDate = *p.EndDate
	}
	if p.CloseDate != nil {
		form.CloseDate = *p.CloseDate
	}
	return form
}

// GetCampaigns 获取活动列表
func (h *CampaignAPIHandler) GetCampaigns(c *gin.Context) {
	page, err := h.campaignLogic.ListCampaigns(c.Request.Context(), logic.CampaignFilter{
		Query: c.Query("q"),
		State: c.Query("state"),
		Page:  pageParam(c),
	})
	if err != nil {
		h.internalError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", GetCampaignsResponse{
		Campaigns:  ToCampaignResponseList(page.Items),
		Pagination: ToPagination(page, buildPageLinks(c.Request.URL, page)),
	})
}

// GetCampaign 获取单个活动详情
func (h *CampaignAPIHandler) GetCampaign(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "Campaign not found")
		return
	}

	campaign, err := h.campaignLogic.GetCampaign(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, logic.ErrCampaignNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Campaign not found")
			return
		}
		h.internalError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", ToCampaignDetailResponse(campaign))
}

// CreateCampaign 创建活动
func (h *CampaignAPIHandler) CreateCampaign(c *gin.Context) {
	input, ok := h.bind(c)
	if !ok {
		return
	}

	var creatorId *int64
	if userId, ok := auth.CurrentUserID(c); ok {
		creatorId = &userId
	}

	campaign, err := h.campaignLogic.CreateCampaign(c.Request.Context(), input, creatorId)
	if err != nil {
		if verr, ok := logic.AsValidationError(err); ok {
			ValidationErrorResponse(c, verr)
			return
		}
		h.internalError(c, err)
		return
	}

	c.Header("Location", "/api/v1"+campaignPath(campaign.Id))
	SuccessResponse(c, http.StatusCreated, campaignCreatedMessage, ToCampaignResponse(campaign))
}

// UpdateCampaign 更新活动
func (h *CampaignAPIHandler) UpdateCampaign(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "Campaign not found")
		return
	}

	if _, err := h.campaignLogic.FindCampaign(c.Request.Context(), id); err != nil {
		if errors.Is(err, logic.ErrCampaignNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Campaign not found")
			return
		}
		h.internalError(c, err)
		return
	}

	input, ok := h.bind(c)
	if !ok {
		return
	}

	campaign, err := h.campaignLogic.UpdateCampaign(c.Request.Context(), id, input)
	if err != nil {
		if verr, ok := logic.AsValidationError(err); ok {
			ValidationErrorResponse(c, verr)
			return
		}
		if errors.Is(err, logic.ErrCampaignNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Campaign not found")
			return
		}
		h.internalError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, campaignUpdatedMessage, ToCampaignResponse(campaign))
}

// bind 解析并校验 JSON 请求体，失败时已写出响应
func (h *CampaignAPIHandler) bind(c *gin.Context) (logic.CampaignInput, bool) {
	var payload campaignPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Malformed JSON body")
		return logic.CampaignInput{}, false
	}

	form := payload.form()
	if err := binding.Validator.ValidateStruct(&form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			ValidationErrorResponse(c, translateValidation(verrs))
			return logic.CampaignInput{}, false
		}
		h.internalError(c, err)
		return logic.CampaignInput{}, false
	}

	input, err := form.Input()
	if err != nil {
		h.internalError(c, err)
		return logic.CampaignInput{}, false
	}
	return input, true
}

func (h *CampaignAPIHandler) internalError(c *gin.Context, err error) {
	logger.Error("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
}
