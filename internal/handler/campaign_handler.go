package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/blues/crowdhub/internal/auth"
	"github.com/blues/crowdhub/internal/logger"
	"github.com/blues/crowdhub/internal/logic"
	"github.com/blues/crowdhub/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	campaignCreatedMessage = "Campaign created successfully!"
	campaignUpdatedMessage = "Campaign updated successfully!"
)

// CampaignHandler 活动页面
type CampaignHandler struct {
	campaignLogic *logic.CampaignLogic
	categoryLogic *logic.CategoryLogic
}

func NewCampaignHandler(db *gorm.DB) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic: logic.NewCampaignLogic(db),
		categoryLogic: logic.NewCategoryLogic(db),
	}
}

// campaignFormView 表单页数据
type campaignFormView struct {
	Title      string
	Action     string
	Submit     string
	Campaign   *model.CampaignModel
	Form       CampaignForm
	Errors     *logic.ValidationError
	Categories []model.CategoryModel
}

// Index 活动列表与搜索
func (h *CampaignHandler) Index(c *gin.Context) {
	search := c.Query("q")
	state := c.Query("state")

	page, err := h.campaignLogic.ListCampaigns(c.Request.Context(), logic.CampaignFilter{
		Query: search,
		State: state,
		Page:  pageParam(c),
	})
	if err != nil {
		renderServerError(c, err)
		return
	}

	render(c, http.StatusOK, "campaigns/index.tmpl", gin.H{
		"Title":     "Campaigns",
		"Campaigns": page.Items,
		"Page":      page,
		"Links":     buildPageLinks(c.Request.URL, page),
		"Search":    search,
		"State":     state,
		"States":    model.CampaignStates,
	})
}

// Show 活动详情
func (h *CampaignHandler) Show(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		renderNotFound(c)
		return
	}

	campaign, err := h.campaignLogic.GetCampaign(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, logic.ErrCampaignNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	render(c, http.StatusOK, "campaigns/show.tmpl", gin.H{
		"Title":    campaign.Name,
		"Campaign": campaign,
	})
}

// Create 创建表单
func (h *CampaignHandler) Create(c *gin.Context) {
	h.renderForm(c, http.StatusOK, campaignFormView{
		Title:  "Create campaign",
		Action: "/campaigns",
		Submit: "Create",
	})
}

// Store 提交创建
func (h *CampaignHandler) Store(c *gin.Context) {
	view := campaignFormView{
		Title:  "Create campaign",
		Action: "/campaigns",
		Submit: "Create",
	}

	input, verr, err := bindCampaignForm(c, &view.Form)
	if err != nil {
		renderServerError(c, err)
		return
	}
	if verr != nil {
		view.Errors = verr
		h.renderForm(c, http.StatusUnprocessableEntity, view)
		return
	}

	var creatorId *int64
	if userId, ok := auth.CurrentUserID(c); ok {
		creatorId = &userId
	}

	campaign, err := h.campaignLogic.CreateCampaign(c.Request.Context(), input, creatorId)
	if err != nil {
		if ve, ok := logic.AsValidationError(err); ok {
			view.Errors = ve
			h.renderForm(c, http.StatusUnprocessableEntity, view)
			return
		}
		renderServerError(c, err)
		return
	}

	setFlash(c, campaignCreatedMessage)
	c.Redirect(http.StatusFound, campaignPath(campaign.Id))
}

// Edit 编辑表单
func (h *CampaignHandler) Edit(c *gin.Context) {
	campaign, ok := h.findOr404(c)
	if !ok {
		return
	}

	h.renderForm(c, http.StatusOK, campaignFormView{
		Title:    "Edit campaign",
		Action:   campaignPath(campaign.Id),
		Submit:   "Save",
		Campaign: campaign,
		Form:     campaignFormFrom(campaign),
	})
}

// Update 提交编辑，覆盖可编辑字段
func (h *CampaignHandler) Update(c *gin.Context) {
	campaign, ok := h.findOr404(c)
	if !ok {
		return
	}

	view := campaignFormView{
		Title:    "Edit campaign",
		Action:   campaignPath(campaign.Id),
		Submit:   "Save",
		Campaign: campaign,
	}

	input, verr, err := bindCampaignForm(c, &view.Form)
	if err != nil {
		renderServerError(c, err)
		return
	}
	if verr != nil {
		view.Errors = verr
		h.renderForm(c, http.StatusUnprocessableEntity, view)
		return
	}

	if _, err := h.campaignLogic.UpdateCampaign(c.Request.Context(), campaign.Id, input); err != nil {
		if ve, ok := logic.AsValidationError(err); ok {
			view.Errors = ve
			h.renderForm(c, http.StatusUnprocessableEntity, view)
			return
		}
		if errors.Is(err, logic.ErrCampaignNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	setFlash(c, campaignUpdatedMessage)
	c.Redirect(http.StatusFound, campaignPath(campaign.Id))
}

func (h *CampaignHandler) findOr404(c *gin.Context) (*model.CampaignModel, bool) {
	id, ok := idParam(c)
	if !ok {
		renderNotFound(c)
		return nil, false
	}

	campaign, err := h.campaignLogic.FindCampaign(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, logic.ErrCampaignNotFound) {
			renderNotFound(c)
			return nil, false
		}
		renderServerError(c, err)
		return nil, false
	}
	return campaign, true
}

func (h *CampaignHandler) renderForm(c *gin.Context, status int, view campaignFormView) {
	categories, err := h.categoryLogic.ListCategories(c.Request.Context())
	if err != nil {
		renderServerError(c, err)
		return
	}
	view.Categories = categories

	render(c, status, "campaigns/form.tmpl", gin.H{
		"Title": view.Title,
		"View":  view,
	})
}

// bindCampaignForm 绑定并校验表单。校验失败时返回字段错误
func bindCampaignForm(c *gin.Context, form *CampaignForm) (logic.CampaignInput, *logic.ValidationError, error) {
	if err := c.ShouldBind(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return logic.CampaignInput{}, translateValidation(verrs), nil
		}
		return logic.CampaignInput{}, nil, fmt.Errorf("绑定表单失败: %w", err)
	}

	input, err := form.Input()
	if err != nil {
		return logic.CampaignInput{}, nil, err
	}
	return input, nil, nil
}

func campaignPath(id int64) string {
	return fmt.Sprintf("/campaigns/%d", id)
}

// render 渲染页面，附带会话用户与一次性提示
func render(c *gin.Context, status int, name string, data gin.H) {
	if userId, ok := auth.CurrentUserID(c); ok {
		data["UserID"] = userId
	}
	data["Flash"] = popFlash(c)
	c.HTML(status, name, data)
}

func renderNotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "errors/status.tmpl", gin.H{
		"Title":   "Not Found",
		"Status":  http.StatusNotFound,
		"Message": "The requested page could not be found.",
	})
}

func renderServerError(c *gin.Context, err error) {
	logger.Error("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	render(c, http.StatusInternalServerError, "errors/status.tmpl", gin.H{
		"Title":   "Server Error",
		"Status":  http.StatusInternalServerError,
		"Message": "Something went wrong.",
	})
}
