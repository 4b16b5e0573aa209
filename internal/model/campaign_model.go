package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CampaignModel 众筹活动
type CampaignModel struct {
	Id int64 `json:"id" gorm:"primaryKey"`

	// 基本信息
	Name        string `json:"name" gorm:"size:255;not null"`
	Description string `json:"description" gorm:"type:text;not null"`

	// 众筹信息
	Funded decimal.Decimal `json:"funded" gorm:"type:numeric(12,2);not null;default:0"`
	Goal   decimal.Decimal `json:"goal" gorm:"type:numeric(12,2);not null"`

	// 时间信息
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	CloseDate *time.Time `json:"close_date"`

	// 状态
	State CampaignState `json:"state" gorm:"size:32;not null;default:'unfunded';index"`

	CategoryId int64          `json:"category_id" gorm:"not null;index"`
	Category   *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryId"`

	// 关联
	Collaborators []UserModel           `json:"collaborators,omitempty" gorm:"many2many:campaign_collaborator;joinForeignKey:CampaignId;joinReferences:UserId"`
	Followers     []UserModel           `json:"followers,omitempty" gorm:"many2many:campaign_follower;joinForeignKey:CampaignId;joinReferences:UserId"`
	Comments      []CommentModel        `json:"comments,omitempty" gorm:"foreignKey:CampaignId"`
	Transactions  []TransactionModel    `json:"transactions,omitempty" gorm:"foreignKey:CampaignId"`
	Updates       []CampaignUpdateModel `json:"updates,omitempty" gorm:"foreignKey:CampaignId"`
	Resources     []ResourceModel       `json:"resources,omitempty" gorm:"foreignKey:CampaignId"`
}

// CampaignState 活动状态，只是存储值，没有状态流转
type CampaignState string

const (
	CampaignStateUnfunded CampaignState = "unfunded" // 未达成
	CampaignStateFunded   CampaignState = "funded"   // 已达成
	CampaignStateClosed   CampaignState = "closed"   // 已关闭
)

// CampaignStates 列表页筛选项
var CampaignStates = []CampaignState{
	CampaignStateUnfunded,
	CampaignStateFunded,
	CampaignStateClosed,
}

// TableName 自定义表名
func (CampaignModel) TableName() string {
	return "campaign"
}
