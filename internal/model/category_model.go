package model

// CategoryModel 活动分类
type CategoryModel struct {
	Id   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null;uniqueIndex"`

	Campaigns []CampaignModel `json:"campaigns,omitempty" gorm:"foreignKey:CategoryId"`
}

// TableName 自定义表名
func (CategoryModel) TableName() string {
	return "category"
}
