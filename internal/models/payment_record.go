package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRecord struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	GrantID   string    `gorm:"column:grant_id;size:100;index:idx_payment_grant" json:"grant_id"`
	Token     string    `gorm:"column:token;size:255" json:"token"`
	Amount    int64     `gorm:"column:amount;not null" json:"amount"`
	Currency  string    `gorm:"column:currency;size:10;not null" json:"currency"`
	UserID    string    `gorm:"column:user_id;size:64" json:"userId,omitempty"`
	Metadata  string    `gorm:"column:metadata;type:text" json:"metadata,omitempty"`
	Status    string    `gorm:"column:status;size:50;default:pending" json:"status"`
	Fee       float64   `gorm:"column:fee;default:0" json:"fee"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}

func (p *PaymentRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
