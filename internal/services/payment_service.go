package services

import (
	"encoding/json"
	"strings"

	"payment-relay/internal/models"
	"payment-relay/pkg/common"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PaymentService relays deposit creation and status polling. The local
// record is a best-effort mirror of the gateway's state: a store write
// failing after a successful gateway call is logged, not surfaced.
type PaymentService struct {
	DB      *gorm.DB
	Gateway Gateway
}

func NewPaymentService(db *gorm.DB, gateway Gateway) *PaymentService {
	return &PaymentService{DB: db, Gateway: gateway}
}

type CreatePaymentDTO struct {
	Amount   int64
	Currency string
	UserID   string
	Metadata map[string]interface{}
}

// Create forwards a deposit to the gateway and mirrors it locally.
// The gateway's raw response is returned to the caller either way.
func (s *PaymentService) Create(data CreatePaymentDTO) (map[string]interface{}, error) {
	if data.Amount <= 0 {
		return nil, &ValidationError{Msg: "amount must be a positive integer"}
	}
	if data.Currency == "" {
		return nil, &ValidationError{Msg: "currency is required"}
	}

	req := DepositRequest{
		Amount:    data.Amount,
		Currency:  data.Currency,
		Reference: common.GenerateTrxNo(),
		Metadata:  data.Metadata,
	}

	result, err := s.Gateway.CreateTransaction(req)
	if err != nil {
		return nil, err
	}

	metadata := ""
	if data.Metadata != nil {
		raw, _ := json.Marshal(data.Metadata)
		metadata = string(raw)
	}

	record := models.PaymentRecord{
		GrantID:  result.GrantID,
		Token:    result.Token,
		Amount:   data.Amount,
		Currency: data.Currency,
		UserID:   data.UserID,
		Metadata: metadata,
		Status:   models.StatusPending,
	}
	if err := s.DB.Create(&record).Error; err != nil {
		log.Error().Err(err).Str("grant_id", result.GrantID).
			Msg("failed to persist payment record after gateway success")
	}

	return result.Raw, nil
}

// Status polls the gateway for a transaction and refreshes the matching
// local record when one exists.
func (s *PaymentService) Status(transactionID string) (map[string]interface{}, error) {
	if transactionID == "" {
		return nil, &ValidationError{Msg: "transactionId is required"}
	}

	result, err := s.Gateway.GetTransaction(transactionID)
	if err != nil {
		return nil, err
	}

	var record models.PaymentRecord
	if err := s.DB.Where("grant_id = ?", transactionID).First(&record).Error; err == nil {
		updates := map[string]interface{}{
			"status": strings.ToLower(result.Status),
			"fee":    result.Fee,
		}
		if err := s.DB.Model(&record).Updates(updates).Error; err != nil {
			log.Error().Err(err).Str("grant_id", transactionID).
				Msg("failed to refresh payment record")
		}
	}

	return result.Raw, nil
}
