package services

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTokenServer(t *testing.T, calls *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/oauth/token" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		n := atomic.AddInt32(calls, 1)
		fmt.Fprintf(w, `{"access_token":"token-%d"}`, n)
	}))
}

func TestTokenGetCachesUntilExpiry(t *testing.T) {
	var calls int32
	srv := newTokenServer(t, &calls)
	defer srv.Close()

	svc := NewTokenService(srv.URL, "client", "secret")

	token, err := svc.Get()
	assert.NoError(t, err)
	assert.Equal(t, "token-1", token)

	// Second call must reuse the cached token without hitting the gateway
	token, err = svc.Get()
	assert.NoError(t, err)
	assert.Equal(t, "token-1", token)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTokenGetRefreshesAfterExpiry(t *testing.T) {
	var calls int32
	srv := newTokenServer(t, &calls)
	defer srv.Close()

	base := time.Now()
	var offset time.Duration

	svc := NewTokenService(srv.URL, "client", "secret")
	svc.now = func() time.Time { return base.Add(offset) }

	token, err := svc.Get()
	assert.NoError(t, err)
	assert.Equal(t, "token-1", token)

	offset = tokenTTL + time.Minute

	token, err = svc.Get()
	assert.NoError(t, err)
	assert.Equal(t, "token-2", token)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestTokenGetAuthFailureLeavesCacheEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	svc := NewTokenService(srv.URL, "client", "wrong")

	_, err := svc.Get()
	var authErr *GatewayAuthError
	assert.True(t, errors.As(err, &authErr))
	assert.Empty(t, svc.token)
}

func TestTokenInvalidate(t *testing.T) {
	var calls int32
	srv := newTokenServer(t, &calls)
	defer srv.Close()

	svc := NewTokenService(srv.URL, "client", "secret")

	_, err := svc.Get()
	assert.NoError(t, err)

	svc.Invalidate()

	token, err := svc.Get()
	assert.NoError(t, err)
	assert.Equal(t, "token-2", token)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestTokenGetSingleFlight(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(20 * time.Millisecond)
		w.Write([]byte(`{"access_token":"shared"}`))
	}))
	defer srv.Close()

	svc := NewTokenService(srv.URL, "client", "secret")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := svc.Get()
			assert.NoError(t, err)
			assert.Equal(t, "shared", token)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
