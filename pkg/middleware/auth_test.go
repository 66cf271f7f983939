package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-secret-token"), bcrypt.MinCost)
	require.NoError(t, err)

	handler := AdminAuth(string(hash), zap.NewNop())(okHandler())

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer super-secret-token", http.StatusOK},
		{"wrong token", "Bearer wrong", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"bad scheme", "Basic super-secret-token", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestCronAuth(t *testing.T) {
	handler := CronAuth("cron-key", zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/cron/reminders", nil)
	req.Header.Set("X-Cron-Key", "cron-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/cron/reminders", nil)
	req.Header.Set("X-Cron-Key", "wrong")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCronAuthRejectsWhenUnconfigured(t *testing.T) {
	handler := CronAuth("", zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/cron/reminders", nil)
	req.Header.Set("X-Cron-Key", "")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
