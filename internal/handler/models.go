package handler

import (
	"time"

	"github.com/blues/crowdhub/internal/logic"
	"github.com/blues/crowdhub/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    interface{}         `json:"data"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// 分页信息结构
type Pagination struct {
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize"`
	Total     int64  `json:"total"`
	TotalPage int    `json:"totalPage"`
	PrevURL   string `json:"prevUrl,omitempty"`
	NextURL   string `json:"nextUrl,omitempty"`
}

// CategoryResponse 分类响应模型
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserResponse 用户响应模型
type UserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CampaignResponse 活动响应模型
type CampaignResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Funded      string            `json:"funded"`
	Goal        string            `json:"goal"`
	StartDate   *time.Time        `json:"startDate"`
	EndDate     *time.Time        `json:"endDate"`
	CloseDate   *time.Time        `json:"closeDate"`
	State       string            `json:"state"`
	CategoryID  int64             `json:"categoryId"`
	Category    *CategoryResponse `json:"category,omitempty"`
}

// CommentResponse 评论响应模型
type CommentResponse struct {
	ID        int64         `json:"id"`
	Content   string        `json:"content"`
	User      *UserResponse `json:"user,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// TransactionResponse 支持记录响应模型
type TransactionResponse struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"userId"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// CampaignUpdateResponse 活动进展响应模型
type CampaignUpdateResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResourceResponse 附件响应模型
type ResourceResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CampaignDetailResponse 活动详情，带全部关联
type CampaignDetailResponse struct {
	CampaignResponse
	Collaborators []UserResponse           `json:"collaborators"`
	Followers     []UserResponse           `json:"followers"`
	Comments      []CommentResponse        `json:"comments"`
	Transactions  []TransactionResponse    `json:"transactions"`
	Updates       []CampaignUpdateResponse `json:"updates"`
	Resources     []ResourceResponse       `json:"resources"`
}

// GetCampaignsResponse 获取活动列表响应
type GetCampaignsResponse struct {
	Campaigns  []CampaignResponse `json:"campaigns"`
	Pagination Pagination         `json:"pagination"`
}

// 转换函数

// ToCategoryResponse 将分类模型转换为响应模型
func ToCategoryResponse(category *model.CategoryModel) CategoryResponse {
	return CategoryResponse{ID: category.Id, Name: category.Name}
}

// ToCategoryResponseList 将分类列表转换为响应模型列表
func ToCategoryResponseList(categories []model.CategoryModel) []CategoryResponse {
	result := make([]CategoryResponse, len(categories))
	for i := range categories {
		result[i] = ToCategoryResponse(&categories[i])
	}
	return result
}

// ToCampaignResponse 将数据库模型转换为响应模型
func ToCampaignResponse(campaign *model.CampaignModel) CampaignResponse {
	resp := CampaignResponse{
		ID:          campaign.Id,
		Name:        campaign.Name,
		Description: campaign.Description,
		Funded:      campaign.Funded.StringFixed(2),
		Goal:        campaign.Goal.StringFixed(2),
		StartDate:   campaign.StartDate,
		EndDate:     campaign.EndDate,
		CloseDate:   campaign.CloseDate,
		State:       string(campaign.State),
		CategoryID:  campaign.CategoryId,
	}
	if campaign.Category != nil {
		category := ToCategoryResponse(campaign.Category)
		resp.Category = &category
	}
	return resp
}

// ToCampaignResponseList 将数据库模型列表转换为响应模型列表
func ToCampaignResponseList(campaigns []model.CampaignModel) []CampaignResponse {
	result := make([]CampaignResponse, len(campaigns))
	for i := range campaigns {
		result[i] = ToCampaignResponse(&campaigns[i])
	}
	return result
}

// ToCampaignDetailResponse 详情页响应
func ToCampaignDetailResponse(campaign *model.CampaignModel) CampaignDetailResponse {
	resp := CampaignDetailResponse{
		CampaignResponse: ToCampaignResponse(campaign),
		Collaborators:    toUserResponseList(campaign.Collaborators),
		Followers:        toUserResponseList(campaign.Followers),
		Comments:         make([]CommentResponse, len(campaign.Comments)),
		Transactions:     make([]TransactionResponse, len(campaign.Transactions)),
		Updates:          make([]CampaignUpdateResponse, len(campaign.Updates)),
		Resources:        make([]ResourceResponse, len(campaign.Resources)),
	}

	for i, comment := range campaign.Comments {
		resp.Comments[i] = CommentResponse{ID: comment.Id, Content: comment.Content, CreatedAt: comment.CreatedAt}
		if comment.User != nil {
			resp.Comments[i].User = &UserResponse{ID: comment.User.Id, Name: comment.User.Name}
		}
	}
	for i, tx := range campaign.Transactions {
		resp.Transactions[i] = TransactionResponse{ID: tx.Id, UserID: tx.UserId, Amount: tx.Amount.StringFixed(2), CreatedAt: tx.CreatedAt}
	}
	for i, update := range campaign.Updates {
		resp.Updates[i] = CampaignUpdateResponse{ID: update.Id, Title: update.Title, Content: update.Content, CreatedAt: update.CreatedAt}
	}
	for i, resource := range campaign.Resources {
		resp.Resources[i] = ResourceResponse{ID: resource.Id, Name: resource.Name, URL: resource.URL}
	}
	return resp
}

func toUserResponseList(users []model.UserModel) []UserResponse {
	result := make([]UserResponse, len(users))
	for i, u := range users {
		result[i] = UserResponse{ID: u.Id, Name: u.Name}
	}
	return result
}

// ToPagination 分页信息
func ToPagination[T any](page *logic.Page[T], links pageLinks) Pagination {
	return Pagination{
		Page:      page.Page,
		PageSize:  page.PerPage,
		Total:     page.Total,
		TotalPage: page.LastPage,
		PrevURL:   links.Prev,
		NextURL:   links.Next,
	}
}
