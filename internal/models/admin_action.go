package models

import (
	"time"
)

// AdminAction is an audit row written on every approve/reject decision.
type AdminAction struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	WithdrawalID string    `gorm:"column:withdrawal_id;size:36;index:idx_action_withdrawal" json:"withdrawal_id"`
	Action       string    `gorm:"column:action;size:20;not null" json:"action"`
	AdminID      string    `gorm:"column:admin_id;size:64" json:"admin_id"`
	Detail       string    `gorm:"column:detail;type:text" json:"detail"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AdminAction) TableName() string {
	return "admin_actions"
}
