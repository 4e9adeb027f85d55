package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Withdrawal request statuses. A request leaves pending exactly once;
// approved, rejected and failed are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusFailed   = "failed"
)

type WithdrawalRequest struct {
	ID                   string     `gorm:"primaryKey;size:36" json:"id"`
	EmailOrPhone         string     `gorm:"column:email_or_phone;size:255;not null" json:"email_or_phone"`
	Currency             string     `gorm:"column:currency;size:10;not null" json:"currency"`
	Amount               int64      `gorm:"column:amount;not null" json:"amount"`
	PaymentMethodID      int        `gorm:"column:payment_method_id;not null" json:"payment_method_id"`
	MoncashAccountNumber string     `gorm:"column:moncash_account_number;size:50" json:"moncash_account_number,omitempty"`
	UserID               string     `gorm:"column:user_id;size:64;index:idx_withdrawal_user" json:"userId,omitempty"`
	UserEmail            string     `gorm:"column:user_email;size:255" json:"userEmail,omitempty"`
	ReceiverInfo         string     `gorm:"column:receiver_info;type:text" json:"receiver_info,omitempty"`
	Status               string     `gorm:"column:status;size:20;default:pending;index:idx_withdrawal_status" json:"status"`
	EzipayResponse       string     `gorm:"column:ezipay_response;type:text" json:"ezipay_response,omitempty"`
	ErrorMessage         string     `gorm:"column:error_message;type:text" json:"error_message,omitempty"`
	RejectionReason      string     `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	ProcessedBy          string     `gorm:"column:processed_by;size:64" json:"processed_by,omitempty"`
	ProcessedAt          *time.Time `gorm:"column:processed_at" json:"processed_at"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}

func (w *WithdrawalRequest) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}
