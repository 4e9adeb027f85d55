package services

import (
	"fmt"
	"net/url"
	"strings"

	"payment-relay/pkg/common"
)

// Gateway is the outbound surface of the EziPay client. Workflow
// services depend on this interface so tests can substitute a fake.
type Gateway interface {
	CreateTransaction(req DepositRequest) (*TransactionResult, error)
	GetTransaction(transactionID string) (*TransactionResult, error)
	VerifyReceiver(identifier string) (*ReceiverResult, error)
	CreateSendMoney(req SendMoneyRequest) (*SendMoneyResult, error)
	ListPaymentMethods(currency string) (*PaymentMethodsResult, error)
}

type DepositRequest struct {
	Amount    int64                  `json:"amount"`
	Currency  string                 `json:"currency"`
	Reference string                 `json:"reference"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type SendMoneyRequest struct {
	Amount               int64  `json:"amount"`
	Currency             string `json:"currency"`
	PaymentMethodID      int    `json:"payment_method_id"`
	EmailOrPhone         string `json:"email_or_phone"`
	MoncashAccountNumber string `json:"moncash_account_number,omitempty"`
}

// TransactionResult is the decoded response of a deposit create/lookup.
type TransactionResult struct {
	GrantID string
	Token   string
	Status  string
	Fee     float64
	Raw     map[string]interface{}
}

// ReceiverResult is the decoded response of a receiver verification.
type ReceiverResult struct {
	Status string
	Name   string
	Raw    map[string]interface{}
}

// OK reports whether the gateway confirmed the receiver.
func (r *ReceiverResult) OK() bool {
	return strings.EqualFold(r.Status, "success")
}

// SendMoneyResult is the decoded response of a payout creation.
type SendMoneyResult struct {
	Status    string
	Reference string
	Raw       map[string]interface{}
}

type PaymentMethodsResult struct {
	Methods []map[string]interface{}
	Raw     map[string]interface{}
}

// EzipayService wraps EziPay's HTTP operations, attaching the cached
// bearer token to every call. Failures propagate immediately; there are
// no retries.
type EzipayService struct {
	BaseURL string
	Tokens  *TokenService
}

func NewEzipayService(baseURL string, tokens *TokenService) *EzipayService {
	return &EzipayService{BaseURL: baseURL, Tokens: tokens}
}

func (s *EzipayService) authHeaders() (map[string]string, error) {
	token, err := s.Tokens.Get()
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"Authorization": "Bearer " + token,
		"Accept":        "application/json",
	}, nil
}

func (s *EzipayService) post(path string, payload interface{}) (map[string]interface{}, error) {
	headers, err := s.authHeaders()
	if err != nil {
		return nil, err
	}

	status, body, err := common.PostJSON(s.BaseURL+path, payload, headers)
	if err != nil {
		return nil, &GatewayError{Err: err}
	}
	if status < 200 || status >= 300 {
		return nil, &GatewayError{StatusCode: status, Body: string(body)}
	}

	return common.DecodeBody(body), nil
}

func (s *EzipayService) get(path string) (map[string]interface{}, error) {
	headers, err := s.authHeaders()
	if err != nil {
		return nil, err
	}

	status, body, err := common.GetJSON(s.BaseURL+path, headers)
	if err != nil {
		return nil, &GatewayError{Err: err}
	}
	if status < 200 || status >= 300 {
		return nil, &GatewayError{StatusCode: status, Body: string(body)}
	}

	return common.DecodeBody(body), nil
}

func (s *EzipayService) CreateTransaction(req DepositRequest) (*TransactionResult, error) {
	raw, err := s.post("/api/v1/transactions", req)
	if err != nil {
		return nil, err
	}
	return transactionFromRaw(raw), nil
}

func (s *EzipayService) GetTransaction(transactionID string) (*TransactionResult, error) {
	raw, err := s.get("/api/v1/transactions/" + url.PathEscape(transactionID))
	if err != nil {
		return nil, err
	}
	return transactionFromRaw(raw), nil
}

func (s *EzipayService) VerifyReceiver(identifier string) (*ReceiverResult, error) {
	raw, err := s.post("/api/v1/send-money/verify-receiver", map[string]string{
		"email_or_phone": identifier,
	})
	if err != nil {
		return nil, err
	}

	result := &ReceiverResult{Raw: raw}
	result.Status, _ = raw["status"].(string)
	result.Name, _ = raw["name"].(string)
	return result, nil
}

func (s *EzipayService) CreateSendMoney(req SendMoneyRequest) (*SendMoneyResult, error) {
	raw, err := s.post("/api/v1/send-money", req)
	if err != nil {
		return nil, err
	}

	result := &SendMoneyResult{Raw: raw}
	result.Status, _ = raw["status"].(string)
	result.Reference, _ = raw["reference"].(string)
	return result, nil
}

func (s *EzipayService) ListPaymentMethods(currency string) (*PaymentMethodsResult, error) {
	raw, err := s.get(fmt.Sprintf("/api/v1/payment-methods?currency=%s", url.QueryEscape(currency)))
	if err != nil {
		return nil, err
	}

	result := &PaymentMethodsResult{Raw: raw}
	if list, ok := raw["payment_methods"].([]interface{}); ok {
		for _, item := range list {
			if m, ok := item.(map[string]interface{}); ok {
				result.Methods = append(result.Methods, m)
			}
		}
	}
	return result, nil
}

func transactionFromRaw(raw map[string]interface{}) *TransactionResult {
	result := &TransactionResult{Raw: raw}
	result.GrantID, _ = raw["grant_id"].(string)
	result.Token, _ = raw["token"].(string)
	result.Status, _ = raw["status"].(string)
	result.Fee, _ = raw["fee"].(float64)
	return result
}
