package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/blues/crowdhub/internal/logger"
	"github.com/blues/crowdhub/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CampaignsPerPage 列表页每页条数
const CampaignsPerPage = 12

// MinGoal 目标金额下限
var MinGoal = decimal.RequireFromString("0.01")

// CampaignFilter 列表查询条件
type CampaignFilter struct {
	Query string // 名称或描述的模糊搜索
	State string // 状态精确匹配
	Page  int
}

// CampaignInput 创建和编辑时可写的字段
type CampaignInput struct {
	Name        string
	Description string
	Goal        decimal.Decimal
	EndDate     *time.Time
	CloseDate   *time.Time
	CategoryId  int64
}

// trimmed 去掉名称和描述首尾空白
func (in CampaignInput) trimmed() CampaignInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

// CampaignLogic 活动业务逻辑
type CampaignLogic struct {
	db  *gorm.DB
	now func() time.Time
}

// NewCampaignLogic 创建活动业务逻辑
func NewCampaignLogic(db *gorm.DB) *CampaignLogic {
	return &CampaignLogic{db: db, now: time.Now}
}

// ListCampaigns 分页查询活动，按开始时间倒序
func (l *CampaignLogic) ListCampaigns(ctx context.Context, filter CampaignFilter) (*Page[model.CampaignModel], error) {
	page := NormalizePage(filter.Page)
	scope := l.filterScope(filter)

	var total int64
	if err := l.db.WithContext(ctx).
		Model(&model.CampaignModel{}).
		Scopes(scope).
		Count(&total).Error; err != nil {
		return nil, fmt.Errorf("统计活动数量失败: %w", err)
	}

	var campaigns []model.CampaignModel
	if err := l.db.WithContext(ctx).
		Scopes(scope).
		Preload("Category").
		Order("start_date DESC").
		Order("id DESC").
		Offset(offset(page, CampaignsPerPage)).
		Limit(CampaignsPerPage).
		Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("获取活动列表失败: %w", err)
	}

	return newPage(campaigns, page, CampaignsPerPage, total), nil
}

// filterScope 搜索词匹配名称或描述（不区分大小写），状态精确匹配
func (l *CampaignLogic) filterScope(filter CampaignFilter) func(*gorm.DB) *gorm.DB {
	search := strings.TrimSpace(filter.Query)
	state := strings.TrimSpace(filter.State)

	return func(db *gorm.DB) *gorm.DB {
		if search != "" {
			pattern := "%" + escapeLike(search) + "%"
			if db.Dialector.Name() == "postgres" {
				db = db.Where(`(name ILIKE ? ESCAPE '\' OR description ILIKE ? ESCAPE '\')`, pattern, pattern)
			} else {
				pattern = strings.ToLower(pattern)
				db = db.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
			}
		}
		if state != "" {
			db = db.Where("state = ?", state)
		}
		return db
	}
}

// GetCampaign 获取活动详情，带全部关联
func (l *CampaignLogic) GetCampaign(ctx context.Context, id int64) (*model.CampaignModel, error) {
	var campaign model.CampaignModel
	err := l.db.WithContext(ctx).
		Preload("Category").
		Preload("Collaborators").
		Preload("Followers").
		Preload("Comments", orderByID).
		Preload("Comments.User").
		Preload("Transactions", orderByID).
		Preload("Updates", orderByID).
		Preload("Resources", orderByID).
		First(&campaign, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("获取活动详情失败: %w", err)
	}

	return &campaign, nil
}

// FindCampaign 只取活动本身，编辑页用
func (l *CampaignLogic) FindCampaign(ctx context.Context, id int64) (*model.CampaignModel, error) {
	var campaign model.CampaignModel
	if err := l.db.WithContext(ctx).First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("获取活动失败: %w", err)
	}
	return &campaign, nil
}

// CreateCampaign 创建活动。creatorId 不为空时把该用户加为协作者
func (l *CampaignLogic) CreateCampaign(ctx context.Context, input CampaignInput, creatorId *int64) (*model.CampaignModel, error) {
	input = input.trimmed()
	if err := l.validateCampaign(ctx, input); err != nil {
		return nil, err
	}

	now := l.now()
	campaign := model.CampaignModel{
		Name:        input.Name,
		Description: input.Description,
		Goal:        input.Goal,
		EndDate:     input.EndDate,
		CloseDate:   input.CloseDate,
		CategoryId:  input.CategoryId,

		// 设置默认值
		Funded:    decimal.Zero,
		StartDate: &now,
		State:     model.CampaignStateUnfunded,
	}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&campaign).Error; err != nil {
			return err
		}

		if creatorId == nil {
			return nil
		}

		var creator model.UserModel
		if err := tx.First(&creator, *creatorId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Session user %d no longer exists, campaign %d created without collaborator", *creatorId, campaign.Id)
				return nil
			}
			return err
		}

		return tx.Model(&campaign).Association("Collaborators").Append(&creator)
	})
	if err != nil {
		return nil, fmt.Errorf("创建活动失败: %w", err)
	}

	logger.Info("Campaign %d created in category %d", campaign.Id, campaign.CategoryId)
	return &campaign, nil
}

// UpdateCampaign 覆盖写可编辑字段，funded/state/start_date 不变
func (l *CampaignLogic) UpdateCampaign(ctx context.Context, id int64, input CampaignInput) (*model.CampaignModel, error) {
	campaign, err := l.FindCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	input = input.trimmed()
	if err := l.validateCampaign(ctx, input); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":        input.Name,
		"description": input.Description,
		"goal":        input.Goal,
		"end_date":    input.EndDate,
		"close_date":  input.CloseDate,
		"category_id": input.CategoryId,
	}

	if err := l.db.WithContext(ctx).Model(campaign).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("更新活动失败: %w", err)
	}

	logger.Info("Campaign %d updated", id)
	return l.FindCampaign(ctx, id)
}

// validateCampaign 验证活动数据
func (l *CampaignLogic) validateCampaign(ctx context.Context, input CampaignInput) error {
	verr := NewValidationError()

	if input.Name == "" {
		verr.Add("name", "The name field is required.")
	} else if utf8.RuneCountInString(input.Name) > 255 {
		verr.Add("name", "The name field must not be greater than 255 characters.")
	}
	if input.Description == "" {
		verr.Add("description", "The description field is required.")
	}
	if input.Goal.LessThan(MinGoal) {
		verr.Add("goal", "The goal field must be at least 0.01.")
	}

	exists, err := categoryExists(l.db.WithContext(ctx), input.CategoryId)
	if err != nil {
		return fmt.Errorf("校验分类失败: %w", err)
	}
	if !exists {
		verr.Add("category_id", "The selected category id is invalid.")
	}

	if !verr.Empty() {
		return verr
	}
	return nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// escapeLike 转义 LIKE 通配符
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
