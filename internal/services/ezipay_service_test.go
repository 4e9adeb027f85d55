package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// newGatewayServer serves the token endpoint plus a single gateway route.
func newGatewayServer(t *testing.T, route string, handler http.HandlerFunc) (*httptest.Server, *EzipayService) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"test-token"}`))
	})
	mux.HandleFunc(route, handler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	tokens := NewTokenService(srv.URL, "client", "secret")
	return srv, NewEzipayService(srv.URL, tokens)
}

func TestVerifyReceiver(t *testing.T) {
	_, svc := newGatewayServer(t, "/api/v1/send-money/verify-receiver", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		assert.Equal(t, "a@b.com", payload["email_or_phone"])

		w.Write([]byte(`{"status":"SUCCESS","name":"John Doe","account_type":"moncash"}`))
	})

	result, err := svc.VerifyReceiver("a@b.com")
	assert.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, "John Doe", result.Name)
	assert.Equal(t, "moncash", result.Raw["account_type"])
}

func TestVerifyReceiverNotFound(t *testing.T) {
	_, svc := newGatewayServer(t, "/api/v1/send-money/verify-receiver", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"NOT_FOUND"}`))
	})

	result, err := svc.VerifyReceiver("nobody@example.com")
	assert.NoError(t, err)
	assert.False(t, result.OK())
}

func TestCreateSendMoney(t *testing.T) {
	_, svc := newGatewayServer(t, "/api/v1/send-money", func(w http.ResponseWriter, r *http.Request) {
		var payload SendMoneyRequest
		json.NewDecoder(r.Body).Decode(&payload)
		assert.Equal(t, int64(500), payload.Amount)
		assert.Equal(t, "HTG", payload.Currency)
		assert.Equal(t, 3, payload.PaymentMethodID)

		w.Write([]byte(`{"status":"SUCCESS","reference":"SM-001"}`))
	})

	result, err := svc.CreateSendMoney(SendMoneyRequest{
		Amount:          500,
		Currency:        "HTG",
		PaymentMethodID: 3,
		EmailOrPhone:    "a@b.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, "SM-001", result.Reference)
}

func TestCreateSendMoneyGatewayError(t *testing.T) {
	_, svc := newGatewayServer(t, "/api/v1/send-money", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":"insufficient merchant balance"}`))
	})

	_, err := svc.CreateSendMoney(SendMoneyRequest{Amount: 500, Currency: "HTG"})

	var gwErr *GatewayError
	assert.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusPaymentRequired, gwErr.StatusCode)
	assert.Contains(t, gwErr.Body, "insufficient merchant balance")
}

func TestGetTransaction(t *testing.T) {
	_, svc := newGatewayServer(t, "/api/v1/transactions/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/transactions/grant-42", r.URL.Path)
		w.Write([]byte(`{"grant_id":"grant-42","status":"COMPLETED","fee":12.5}`))
	})

	result, err := svc.GetTransaction("grant-42")
	assert.NoError(t, err)
	assert.Equal(t, "grant-42", result.GrantID)
	assert.Equal(t, "COMPLETED", result.Status)
	assert.Equal(t, 12.5, result.Fee)
}

func TestListPaymentMethods(t *testing.T) {
	_, svc := newGatewayServer(t, "/api/v1/payment-methods", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "HTG", r.URL.Query().Get("currency"))
		w.Write([]byte(`{"payment_methods":[{"id":1,"name":"Bank"},{"id":3,"name":"MonCash"}]}`))
	})

	result, err := svc.ListPaymentMethods("HTG")
	assert.NoError(t, err)
	assert.Len(t, result.Methods, 2)
	assert.Equal(t, "MonCash", result.Methods[1]["name"])
}

func TestGatewayPropagatesAuthError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := NewTokenService(srv.URL, "client", "secret")
	svc := NewEzipayService(srv.URL, tokens)

	_, err := svc.VerifyReceiver("a@b.com")
	var authErr *GatewayAuthError
	assert.True(t, errors.As(err, &authErr))
}
