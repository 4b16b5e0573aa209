package model

import (
	"time"
)

// CommentModel 活动评论
type CommentModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CampaignId int64      `json:"campaign_id" gorm:"not null;index"`
	UserId     *int64     `json:"user_id"`
	User       *UserModel `json:"user,omitempty" gorm:"foreignKey:UserId"`
	Content    string     `json:"content" gorm:"type:text;not null"`
}

// TableName 自定义表名
func (CommentModel) TableName() string {
	return "comment"
}
