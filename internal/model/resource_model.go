package model

// ResourceModel 活动附件
type ResourceModel struct {
	Id int64 `json:"id" gorm:"primaryKey"`

	CampaignId int64  `json:"campaign_id" gorm:"not null;index"`
	Name       string `json:"name" gorm:"size:255;not null"`
	URL        string `json:"url" gorm:"size:1024;not null"`
}

// TableName 自定义表名
func (ResourceModel) TableName() string {
	return "resource"
}
