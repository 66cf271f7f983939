package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/dto/request"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAvailabilityHarness(t *testing.T) (AvailabilityService, *fakeBookingRepo, *fakeBlockedDateRepo) {
	t.Helper()
	bookings := newFakeBookingRepo()
	blocked := newFakeBlockedDateRepo()
	repo := newTestRepository(bookings, newFakeServiceRepo(), blocked)
	return NewAvailabilityService(repo, time.UTC, zap.NewNop()), bookings, blocked
}

func seedActiveBooking(bookings *fakeBookingRepo, date time.Time, status entity.BookingStatus) {
	b := &entity.Booking{
		Base:        entity.Base{ID: uuid.New()},
		BookingDate: utils.DateOnly(date),
		Status:      status,
	}
	bookings.bookings[b.ID] = b
}

func TestListUnavailableMergesSources(t *testing.T) {
	svc, bookings, blocked := newAvailabilityHarness(t)

	seedActiveBooking(bookings, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), entity.BookingStatusPending)
	seedActiveBooking(bookings, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), entity.BookingStatusPaid)
	seedActiveBooking(bookings, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), entity.BookingStatusCancelled)
	blocked.Create(context.Background(), &entity.BlockedDate{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		Date:       time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
	})
	// Blocked and booked on the same date must not duplicate.
	blocked.Create(context.Background(), &entity.BlockedDate{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		Date:       time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
	})

	resp, err := svc.ListUnavailable(context.Background(), "2026-09-01", "2026-09-30", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09-03", "2026-09-05", "2026-09-10"}, resp.Unavailable)
}

func TestListUnavailableExcludesBooking(t *testing.T) {
	svc, bookings, _ := newAvailabilityHarness(t)

	own := &entity.Booking{
		Base:        entity.Base{ID: uuid.New()},
		BookingDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:      entity.BookingStatusPaid,
	}
	bookings.bookings[own.ID] = own

	resp, err := svc.ListUnavailable(context.Background(), "2026-09-01", "2026-09-30", &own.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Unavailable, "a booking's own date stays open for its reschedule")
}

func TestListUnavailableRejectsBadRange(t *testing.T) {
	svc, _, _ := newAvailabilityHarness(t)

	_, err := svc.ListUnavailable(context.Background(), "2026-09-30", "2026-09-01", nil)
	assert.Error(t, err)

	_, err = svc.ListUnavailable(context.Background(), "not-a-date", "2026-09-01", nil)
	assert.Error(t, err)
}

func TestBlockAndUnblockDate(t *testing.T) {
	svc, _, blocked := newAvailabilityHarness(t)

	resp, err := svc.BlockDate(context.Background(), &request.BlockDateRequest{
		Date:   "2026-09-15",
		Reason: "holiday",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", resp.Date)

	isBlocked, err := blocked.IsBlocked(context.Background(), time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, isBlocked)

	require.NoError(t, svc.UnblockDate(context.Background(), resp.ID))

	isBlocked, err = blocked.IsBlocked(context.Background(), time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, isBlocked)
}

func TestIsAvailableBoundaries(t *testing.T) {
	svc, _, _ := newAvailabilityHarness(t)

	yesterday := utils.Today(time.UTC).AddDate(0, 0, -1)
	available, err := svc.IsAvailable(context.Background(), yesterday)
	require.NoError(t, err)
	assert.False(t, available)

	available, err = svc.IsAvailable(context.Background(), utils.Today(time.UTC))
	require.NoError(t, err)
	assert.False(t, available, "same-day booking is out")

	available, err = svc.IsAvailable(context.Background(), tomorrow())
	require.NoError(t, err)
	assert.True(t, available)
}
