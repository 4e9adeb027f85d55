package services

import (
	"encoding/json"
	"sync"
	"time"

	"payment-relay/pkg/common"
)

// Tokens are valid for a fixed window after issuance.
const tokenTTL = 2 * time.Hour

// TokenService caches a single bearer credential issued by EziPay and
// reuses it until expiry. The mutex is held across the refresh so at
// most one token request is in flight at a time.
type TokenService struct {
	BaseURL      string
	ClientID     string
	ClientSecret string

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	now func() time.Time
}

func NewTokenService(baseURL, clientID, clientSecret string) *TokenService {
	return &TokenService{
		BaseURL:      baseURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		now:          time.Now,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Get returns a valid bearer token, refreshing it from the gateway when
// the cached one is missing or expired. On failure the cache is left
// unchanged so the next call retries acquisition.
func (s *TokenService) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.now().Before(s.expiresAt) {
		return s.token, nil
	}

	payload := map[string]string{
		"client_id":     s.ClientID,
		"client_secret": s.ClientSecret,
	}

	status, body, err := common.PostJSON(s.BaseURL+"/api/oauth/token", payload, nil)
	if err != nil {
		return "", &GatewayAuthError{Msg: "token request failed", Err: err}
	}
	if status < 200 || status >= 300 {
		return "", &GatewayAuthError{Msg: "token request rejected: " + string(body)}
	}

	var parsed tokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.AccessToken == "" {
		return "", &GatewayAuthError{Msg: "invalid token response", Err: err}
	}

	s.token = parsed.AccessToken
	s.expiresAt = s.now().Add(tokenTTL)

	return s.token, nil
}

// Invalidate drops the cached token so the next Get re-authenticates.
func (s *TokenService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
}
