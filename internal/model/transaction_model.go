package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionModel 支持记录
type TransactionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CampaignId int64           `json:"campaign_id" gorm:"not null;index"`
	UserId     *int64          `json:"user_id"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
}

// TableName 自定义表名
func (TransactionModel) TableName() string {
	return "transaction"
}
