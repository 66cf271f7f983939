package adaptor

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHandleServiceErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", entity.ErrInvalidToken, http.StatusUnauthorized},
		{"not found", fmt.Errorf("booking x: %w", entity.ErrNotFound), http.StatusNotFound},
		{"service not found", entity.ErrServiceNotFound, http.StatusNotFound},
		{"date unavailable", fmt.Errorf("date 2026-09-01: %w", entity.ErrDateUnavailable), http.StatusConflict},
		{"already paid", entity.ErrAlreadyPaid, http.StatusConflict},
		{"already cancelled", entity.ErrAlreadyCancelled, http.StatusConflict},
		{"booking cancelled", entity.ErrBookingCancelled, http.StatusConflict},
		{"refund failed", fmt.Errorf("%w: stripe down", entity.ErrRefundFailed), http.StatusBadGateway},
		{"validation", errors.New("validation failed: name is required"), http.StatusBadRequest},
		{"bad input", errors.New("invalid date format"), http.StatusBadRequest},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tc.err, "test op")
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
