package model

import (
	"time"
)

// CampaignUpdateModel 活动进展
type CampaignUpdateModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CampaignId int64  `json:"campaign_id" gorm:"not null;index"`
	Title      string `json:"title" gorm:"size:255;not null"`
	Content    string `json:"content" gorm:"type:text"`
}

// TableName 自定义表名
func (CampaignUpdateModel) TableName() string {
	return "campaign_update"
}
