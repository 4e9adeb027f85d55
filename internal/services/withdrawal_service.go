package services

import (
	"encoding/json"
	"errors"
	"time"

	"payment-relay/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultProcessedBy     = "admin"
	defaultRejectionReason = "Rejected by admin"
	defaultListLimit       = 100
)

// WithdrawalService owns the withdrawal state machine:
// pending -> approved | rejected | failed, one transition only.
type WithdrawalService struct {
	DB      *gorm.DB
	Gateway Gateway
}

func NewWithdrawalService(db *gorm.DB, gateway Gateway) *WithdrawalService {
	return &WithdrawalService{DB: db, Gateway: gateway}
}

type CreateWithdrawalDTO struct {
	EmailOrPhone         string
	Currency             string
	Amount               int64
	PaymentMethodID      int
	MoncashAccountNumber string
	UserID               string
	UserEmail            string
}

// WithdrawalView is the JSON projection of a request, with timestamps
// rendered as RFC3339 strings and stored JSON snapshots decoded.
type WithdrawalView struct {
	ID                   string      `json:"id"`
	EmailOrPhone         string      `json:"email_or_phone"`
	Currency             string      `json:"currency"`
	Amount               int64       `json:"amount"`
	PaymentMethodID      int         `json:"payment_method_id"`
	MoncashAccountNumber string      `json:"moncash_account_number,omitempty"`
	UserID               string      `json:"userId,omitempty"`
	UserEmail            string      `json:"userEmail,omitempty"`
	ReceiverInfo         interface{} `json:"receiver_info,omitempty"`
	Status               string      `json:"status"`
	EzipayResponse       interface{} `json:"ezipay_response,omitempty"`
	ErrorMessage         string      `json:"error_message,omitempty"`
	RejectionReason      string      `json:"rejection_reason,omitempty"`
	ProcessedBy          string      `json:"processed_by,omitempty"`
	ProcessedAt          *string     `json:"processed_at"`
	CreatedAt            string      `json:"created_at"`
}

// Create verifies the receiver with the gateway and persists a pending
// request. Nothing is written when validation or verification fails.
func (s *WithdrawalService) Create(data CreateWithdrawalDTO) (*WithdrawalView, error) {
	if data.EmailOrPhone == "" {
		return nil, &ValidationError{Msg: "email_or_phone is required"}
	}
	if data.Currency == "" {
		return nil, &ValidationError{Msg: "currency is required"}
	}
	if data.Amount <= 0 {
		return nil, &ValidationError{Msg: "amount must be a positive integer"}
	}
	if data.PaymentMethodID <= 0 {
		return nil, &ValidationError{Msg: "payment_method_id must be a positive integer"}
	}

	receiver, err := s.Gateway.VerifyReceiver(data.EmailOrPhone)
	if err != nil {
		return nil, err
	}
	if !receiver.OK() {
		return nil, &InvalidReceiverError{Msg: "receiver could not be verified"}
	}

	snapshot, _ := json.Marshal(receiver.Raw)

	request := models.WithdrawalRequest{
		EmailOrPhone:         data.EmailOrPhone,
		Currency:             data.Currency,
		Amount:               data.Amount,
		PaymentMethodID:      data.PaymentMethodID,
		MoncashAccountNumber: data.MoncashAccountNumber,
		UserID:               data.UserID,
		UserEmail:            data.UserEmail,
		ReceiverInfo:         string(snapshot),
		Status:               models.StatusPending,
	}

	if err := s.DB.Create(&request).Error; err != nil {
		return nil, &StoreError{Op: "create withdrawal", Err: err}
	}

	return renderWithdrawal(&request), nil
}

// List returns requests newest first, optionally filtered to one status.
func (s *WithdrawalService) List(status string, limit int) ([]*WithdrawalView, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := s.DB.Model(&models.WithdrawalRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []models.WithdrawalRequest
	if err := query.Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, &StoreError{Op: "list withdrawals", Err: err}
	}

	views := make([]*WithdrawalView, 0, len(rows))
	for i := range rows {
		views = append(views, renderWithdrawal(&rows[i]))
	}
	return views, nil
}

// Approve moves a pending request to approved by issuing the payout.
// The pending check and the terminal write happen under a row lock so
// concurrent admin actions cannot both pass the guard. When the payout
// call fails the request is marked failed with the error detail; that
// compensating write is best-effort and never masks the gateway error.
func (s *WithdrawalService) Approve(id, adminID string) (*WithdrawalView, error) {
	if adminID == "" {
		adminID = defaultProcessedBy
	}

	var view *WithdrawalView
	var gatewayErr error

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var request models.WithdrawalRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Msg: "withdrawal request not found"}
			}
			return &StoreError{Op: "load withdrawal", Err: err}
		}
		if request.Status != models.StatusPending {
			return &AlreadyProcessedError{Status: request.Status}
		}

		payout := SendMoneyRequest{
			Amount:               request.Amount,
			Currency:             request.Currency,
			PaymentMethodID:      request.PaymentMethodID,
			EmailOrPhone:         request.EmailOrPhone,
			MoncashAccountNumber: request.MoncashAccountNumber,
		}

		now := time.Now().UTC()
		resp, err := s.Gateway.CreateSendMoney(payout)
		if err != nil {
			gatewayErr = err
			updates := map[string]interface{}{
				"status":        models.StatusFailed,
				"processed_at":  now,
				"processed_by":  adminID,
				"error_message": err.Error(),
			}
			if uerr := tx.Model(&request).Updates(updates).Error; uerr != nil {
				log.Error().Err(uerr).Str("withdrawal_id", request.ID).
					Msg("failed to record payout failure")
			}
			return nil
		}

		respJSON, _ := json.Marshal(resp.Raw)
		updates := map[string]interface{}{
			"status":          models.StatusApproved,
			"processed_at":    now,
			"processed_by":    adminID,
			"ezipay_response": string(respJSON),
		}
		if err := tx.Model(&request).Updates(updates).Error; err != nil {
			return &StoreError{Op: "update withdrawal", Err: err}
		}

		request.Status = models.StatusApproved
		request.ProcessedAt = &now
		request.ProcessedBy = adminID
		request.EzipayResponse = string(respJSON)
		view = renderWithdrawal(&request)
		return nil
	})

	if gatewayErr != nil {
		if txErr != nil {
			log.Error().Err(txErr).Str("withdrawal_id", id).
				Msg("failed to persist failed withdrawal state")
		}
		s.logAdminAction(id, "approve", adminID, "payout failed: "+gatewayErr.Error())
		return nil, gatewayErr
	}
	if txErr != nil {
		return nil, txErr
	}

	s.logAdminAction(id, "approve", adminID, "payout approved")
	return view, nil
}

// Reject moves a pending request to rejected. No gateway call involved.
func (s *WithdrawalService) Reject(id, reason, adminID string) (*WithdrawalView, error) {
	if adminID == "" {
		adminID = defaultProcessedBy
	}
	if reason == "" {
		reason = defaultRejectionReason
	}

	var view *WithdrawalView

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var request models.WithdrawalRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Msg: "withdrawal request not found"}
			}
			return &StoreError{Op: "load withdrawal", Err: err}
		}
		if request.Status != models.StatusPending {
			return &AlreadyProcessedError{Status: request.Status}
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":           models.StatusRejected,
			"processed_at":     now,
			"processed_by":     adminID,
			"rejection_reason": reason,
		}
		if err := tx.Model(&request).Updates(updates).Error; err != nil {
			return &StoreError{Op: "update withdrawal", Err: err}
		}

		request.Status = models.StatusRejected
		request.ProcessedAt = &now
		request.ProcessedBy = adminID
		request.RejectionReason = reason
		view = renderWithdrawal(&request)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.logAdminAction(id, "reject", adminID, reason)
	return view, nil
}

// WithdrawalStatusView is the reduced projection served to requesters.
type WithdrawalStatusView struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at"`
}

func (s *WithdrawalService) GetStatus(id string) (*WithdrawalStatusView, error) {
	var request models.WithdrawalRequest
	if err := s.DB.Where("id = ?", id).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "withdrawal request not found"}
		}
		return nil, &StoreError{Op: "load withdrawal", Err: err}
	}

	view := &WithdrawalStatusView{
		ID:        request.ID,
		Status:    request.Status,
		Amount:    request.Amount,
		Currency:  request.Currency,
		CreatedAt: request.CreatedAt.UTC().Format(time.RFC3339),
	}
	if request.ProcessedAt != nil {
		ts := request.ProcessedAt.UTC().Format(time.RFC3339)
		view.ProcessedAt = &ts
	}
	return view, nil
}

type WithdrawalStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Failed   int64 `json:"failed"`
}

// Stats counts requests per status.
func (s *WithdrawalService) Stats() (*WithdrawalStats, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := s.DB.Model(&models.WithdrawalRequest{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, &StoreError{Op: "count withdrawals", Err: err}
	}

	stats := &WithdrawalStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.StatusPending:
			stats.Pending = row.Count
		case models.StatusApproved:
			stats.Approved = row.Count
		case models.StatusRejected:
			stats.Rejected = row.Count
		case models.StatusFailed:
			stats.Failed = row.Count
		}
	}
	return stats, nil
}

func (s *WithdrawalService) logAdminAction(withdrawalID, action, adminID, detail string) {
	entry := models.AdminAction{
		WithdrawalID: withdrawalID,
		Action:       action,
		AdminID:      adminID,
		Detail:       detail,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		log.Error().Err(err).Str("withdrawal_id", withdrawalID).
			Msg("failed to write admin action")
	}
}

func renderWithdrawal(request *models.WithdrawalRequest) *WithdrawalView {
	view := &WithdrawalView{
		ID:                   request.ID,
		EmailOrPhone:         request.EmailOrPhone,
		Currency:             request.Currency,
		Amount:               request.Amount,
		PaymentMethodID:      request.PaymentMethodID,
		MoncashAccountNumber: request.MoncashAccountNumber,
		UserID:               request.UserID,
		UserEmail:            request.UserEmail,
		Status:               request.Status,
		ErrorMessage:         request.ErrorMessage,
		RejectionReason:      request.RejectionReason,
		ProcessedBy:          request.ProcessedBy,
		CreatedAt:            request.CreatedAt.UTC().Format(time.RFC3339),
	}
	if request.ProcessedAt != nil {
		ts := request.ProcessedAt.UTC().Format(time.RFC3339)
		view.ProcessedAt = &ts
	}
	view.ReceiverInfo = decodeSnapshot(request.ReceiverInfo)
	view.EzipayResponse = decodeSnapshot(request.EzipayResponse)
	return view
}

func decodeSnapshot(raw string) interface{} {
	if raw == "" {
		return nil
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return raw
	}
	return decoded
}
