package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/dto/request"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/token"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testOperator = "operator@example.com"

type bookingHarness struct {
	svc       BookingService
	bookings  *fakeBookingRepo
	services  *fakeServiceRepo
	blocked   *fakeBlockedDateRepo
	gateway   *fakeGateway
	mail      *fakeMailer
	codec     *token.Codec
	serviceID uuid.UUID
}

func newBookingHarness(t *testing.T) *bookingHarness {
	t.Helper()

	serviceID := uuid.New()
	services := newFakeServiceRepo(&entity.Service{
		Base:   entity.Base{ID: serviceID},
		Name:   "Strategy Session",
		Price:  450,
		Active: true,
	})
	bookings := newFakeBookingRepo()
	blocked := newFakeBlockedDateRepo()
	repo := newTestRepository(bookings, services, blocked)

	gateway := &fakeGateway{}
	mail := &fakeMailer{}
	codec := token.NewCodec("test-secret", time.Hour)
	log := zap.NewNop()

	availability := NewAvailabilityService(repo, time.UTC, log)
	svc := NewBookingService(repo, availability, gateway, mail, codec,
		utils.BookingConfig{
			BaseURL:       "https://example.com",
			OperatorEmail: testOperator,
		}, time.UTC, log)

	return &bookingHarness{
		svc:       svc,
		bookings:  bookings,
		services:  services,
		blocked:   blocked,
		gateway:   gateway,
		mail:      mail,
		codec:     codec,
		serviceID: serviceID,
	}
}

func tomorrow() time.Time {
	return utils.Today(time.UTC).AddDate(0, 0, 1)
}

func (h *bookingHarness) createRequest(date time.Time) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		ServiceID: h.serviceID.String(),
		Date:      date.Format(utils.DateLayout),
		Time:      "14:00",
		Name:      "Aina Rahman",
		Email:     "aina@example.com",
	}
}

// seedBooking places a booking directly into the fake store.
func (h *bookingHarness) seedBooking(status entity.BookingStatus, date time.Time, ref string) *entity.Booking {
	b := &entity.Booking{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		ServiceID:       h.serviceID,
		BookingDate:     utils.DateOnly(date),
		BookingTime:     "14:00",
		CustomerName:    "Aina Rahman",
		CustomerEmail:   "aina@example.com",
		PricePaid:       450,
		Status:          status,
		StripePaymentID: ref,
	}
	h.bookings.bookings[b.ID] = b
	return b
}

func TestCreateBooking(t *testing.T) {
	h := newBookingHarness(t)

	resp, err := h.svc.Create(context.Background(), h.createRequest(tomorrow()))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.BookingID)
	assert.Contains(t, resp.CheckoutURL, resp.BookingID)

	stored := h.bookings.get(uuid.MustParse(resp.BookingID))
	require.NotNil(t, stored)
	assert.Equal(t, entity.BookingStatusPending, stored.Status)
	assert.Equal(t, 450.0, stored.PricePaid)
	assert.Empty(t, h.mail.sent, "no email before payment confirmation")
}

func TestCreateBookingDateTaken(t *testing.T) {
	h := newBookingHarness(t)
	h.seedBooking(entity.BookingStatusPending, tomorrow(), "")

	_, err := h.svc.Create(context.Background(), h.createRequest(tomorrow()))
	assert.ErrorIs(t, err, entity.ErrDateUnavailable)
}

func TestCreateBookingOnCancelledDate(t *testing.T) {
	h := newBookingHarness(t)
	h.seedBooking(entity.BookingStatusCancelled, tomorrow(), "")

	_, err := h.svc.Create(context.Background(), h.createRequest(tomorrow()))
	assert.NoError(t, err, "cancelled booking frees its date")
}

func TestCreateBookingBlockedDate(t *testing.T) {
	h := newBookingHarness(t)
	h.blocked.Create(context.Background(), &entity.BlockedDate{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		Date:       tomorrow(),
	})

	_, err := h.svc.Create(context.Background(), h.createRequest(tomorrow()))
	assert.ErrorIs(t, err, entity.ErrDateUnavailable)
}

func TestCreateBookingSameDay(t *testing.T) {
	h := newBookingHarness(t)

	_, err := h.svc.Create(context.Background(), h.createRequest(utils.Today(time.UTC)))
	assert.ErrorIs(t, err, entity.ErrDateUnavailable)
}

func TestCreateBookingInactiveService(t *testing.T) {
	h := newBookingHarness(t)
	h.services.services[h.serviceID].Active = false

	_, err := h.svc.Create(context.Background(), h.createRequest(tomorrow()))
	assert.ErrorIs(t, err, entity.ErrServiceNotFound)
}

func TestCreateBookingCheckoutFailureFreesDate(t *testing.T) {
	h := newBookingHarness(t)
	h.gateway.checkoutErr = errors.New("stripe is down")

	_, err := h.svc.Create(context.Background(), h.createRequest(tomorrow()))
	require.Error(t, err)

	// The orphaned pending row is cancelled, so it cannot hold the date.
	for _, b := range h.bookings.bookings {
		assert.Equal(t, entity.BookingStatusCancelled, b.Status)
		assert.Contains(t, b.AdminNotes, "checkout session creation failed")
	}

	h.gateway.checkoutErr = nil
	resp, err := h.svc.Create(context.Background(), h.createRequest(tomorrow()))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.CheckoutURL)
}

func TestMarkPaidTransition(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusPending, tomorrow(), "")

	booking, transitioned, err := h.svc.MarkPaid(context.Background(), b.ID, "pi_123")
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.Equal(t, entity.BookingStatusPaid, booking.Status)

	stored := h.bookings.get(b.ID)
	assert.Equal(t, entity.BookingStatusPaid, stored.Status)
	assert.Equal(t, "pi_123", stored.StripePaymentID)
	assert.Contains(t, stored.AdminNotes, "pi_123")

	customerMail := h.mail.sentTo("aina@example.com")
	require.Len(t, customerMail, 1)
	assert.Contains(t, customerMail[0].Body, "/booking/cancel/")
	assert.Contains(t, customerMail[0].Body, "/booking/reschedule/")
	assert.Len(t, h.mail.sentTo(testOperator), 1)
}

func TestMarkPaidRedelivery(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusPending, tomorrow(), "")

	_, _, err := h.svc.MarkPaid(context.Background(), b.ID, "pi_123")
	require.NoError(t, err)
	sentBefore := len(h.mail.sent)

	_, transitioned, err := h.svc.MarkPaid(context.Background(), b.ID, "pi_123")
	require.NoError(t, err)
	assert.False(t, transitioned)
	assert.Len(t, h.mail.sent, sentBefore, "redelivery sends no email")
}

// failingCodec delegates to a real codec but fails Issue on demand.
type failingCodec struct {
	*token.Codec
	issueErr error
}

func (f *failingCodec) Issue(bookingID uuid.UUID, email string) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return f.Codec.Issue(bookingID, email)
}

func TestMarkPaidTokenIssueFailureSkipsCustomerEmail(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusPending, tomorrow(), "")
	h.svc.(*bookingService).codec = &failingCodec{
		Codec:    h.codec,
		issueErr: errors.New("signer unavailable"),
	}

	_, transitioned, err := h.svc.MarkPaid(context.Background(), b.ID, "pi_123")
	require.NoError(t, err)
	assert.True(t, transitioned)

	// No confirmation with dead self-service links; the operator copy
	// still goes out.
	assert.Empty(t, h.mail.sentTo("aina@example.com"))
	assert.Len(t, h.mail.sentTo(testOperator), 1)
}

func TestMarkPaidConflictingReference(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusPaid, tomorrow(), "pi_123")

	_, _, err := h.svc.MarkPaid(context.Background(), b.ID, "pi_other")
	assert.ErrorIs(t, err, entity.ErrAlreadyPaid)
}

func TestMarkPaidCancelledBooking(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusCancelled, tomorrow(), "")

	_, _, err := h.svc.MarkPaid(context.Background(), b.ID, "pi_123")
	assert.ErrorIs(t, err, entity.ErrBookingCancelled)
}

func TestCancelPaidBookingRefunds(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusPaid, tomorrow(), "pi_123")

	resp, err := h.svc.Cancel(context.Background(), b.ID, entity.ActorCustomer, "schedule conflict")
	require.NoError(t, err)
	assert.True(t, resp.Refunded)
	assert.Equal(t, []string{"pi_123"}, h.gateway.refunded)

	stored := h.bookings.get(b.ID)
	assert.Equal(t, entity.BookingStatusCancelled, stored.Status)
	assert.Contains(t, stored.AdminNotes, "schedule conflict")
	assert.Contains(t, stored.AdminNotes, string(entity.ActorCustomer))

	assert.Len(t, h.mail.sentTo("aina@example.com"), 1)
	assert.Len(t, h.mail.sentTo(testOperator), 1)
}

func TestCancelPendingBookingSkipsRefund(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusPending, tomorrow(), "")

	resp, err := h.svc.Cancel(context.Background(), b.ID, entity.ActorAdmin, "no-show risk")
	require.NoError(t, err)
	assert.False(t, resp.Refunded)
	assert.Empty(t, h.gateway.refunded)
	assert.Equal(t, entity.BookingStatusCancelled, h.bookings.get(b.ID).Status)
}

func TestCancelRefundFailureLeavesBookingUntouched(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusPaid, tomorrow(), "pi_123")
	h.gateway.refundErr = errors.New("stripe is down")

	_, err := h.svc.Cancel(context.Background(), b.ID, entity.ActorCustomer, "changed my mind")
	assert.ErrorIs(t, err, entity.ErrRefundFailed)

	stored := h.bookings.get(b.ID)
	assert.Equal(t, entity.BookingStatusPaid, stored.Status, "state unchanged on refund failure")
	assert.Empty(t, stored.AdminNotes, "no audit note on refund failure")
	assert.Empty(t, h.mail.sent)
}

func TestCancelAlreadyCancelled(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusCancelled, tomorrow(), "pi_123")

	_, err := h.svc.Cancel(context.Background(), b.ID, entity.ActorAdmin, "duplicate")
	assert.ErrorIs(t, err, entity.ErrAlreadyCancelled)
	assert.Empty(t, h.gateway.refunded, "no refund for already cancelled booking")
}

func TestReschedule(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusPaid, tomorrow(), "pi_123")
	newDate := tomorrow().AddDate(0, 0, 3)

	resp, err := h.svc.Reschedule(context.Background(), b.ID, &request.RescheduleBookingRequest{
		NewDate: newDate.Format(utils.DateLayout),
		NewTime: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "10:00", resp.NewTime)

	stored := h.bookings.get(b.ID)
	assert.True(t, utils.SameDate(newDate, stored.BookingDate))
	assert.Equal(t, "10:00", stored.BookingTime)
	assert.Contains(t, stored.AdminNotes, "rescheduled from")

	require.Len(t, h.mail.sentTo("aina@example.com"), 1)
	assert.Contains(t, h.mail.sentTo("aina@example.com")[0].Body, tomorrow().Format(utils.DateLayout))
}

func TestRescheduleKeepsTimeWhenOmitted(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusPaid, tomorrow(), "pi_123")
	newDate := tomorrow().AddDate(0, 0, 1)

	resp, err := h.svc.Reschedule(context.Background(), b.ID, &request.RescheduleBookingRequest{
		NewDate: newDate.Format(utils.DateLayout),
	})
	require.NoError(t, err)
	assert.Equal(t, "14:00", resp.NewTime)
}

func TestRescheduleOntoTakenDate(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusPaid, tomorrow(), "pi_123")
	other := h.seedBooking(entity.BookingStatusPending, tomorrow().AddDate(0, 0, 1), "")

	_, err := h.svc.Reschedule(context.Background(), b.ID, &request.RescheduleBookingRequest{
		NewDate: other.BookingDate.Format(utils.DateLayout),
	})
	assert.ErrorIs(t, err, entity.ErrDateUnavailable)
}

func TestRescheduleCancelledBooking(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusCancelled, tomorrow(), "")

	_, err := h.svc.Reschedule(context.Background(), b.ID, &request.RescheduleBookingRequest{
		NewDate: tomorrow().AddDate(0, 0, 2).Format(utils.DateLayout),
	})
	assert.ErrorIs(t, err, entity.ErrBookingCancelled)
}

func TestGetByToken(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusPaid, tomorrow(), "pi_123")

	tok, err := h.codec.Issue(b.ID, b.CustomerEmail)
	require.NoError(t, err)

	resp, err := h.svc.GetByToken(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, b.ID.String(), resp.ID)
	assert.Equal(t, "Strategy Session", resp.ServiceName)
}

func TestGetByTokenEmailMismatch(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusPaid, tomorrow(), "pi_123")

	tok, err := h.codec.Issue(b.ID, "someone-else@example.com")
	require.NoError(t, err)

	_, err = h.svc.GetByToken(context.Background(), tok)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestGetByTokenUnknownBooking(t *testing.T) {
	h := newBookingHarness(t)

	tok, err := h.codec.Issue(uuid.New(), "aina@example.com")
	require.NoError(t, err)

	_, err = h.svc.GetByToken(context.Background(), tok)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestCancelByToken(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusPaid, tomorrow(), "pi_123")

	tok, err := h.codec.Issue(b.ID, b.CustomerEmail)
	require.NoError(t, err)

	resp, err := h.svc.CancelByToken(context.Background(), tok, &request.CancelBookingRequest{
		Reason: "travel plans changed",
	})
	require.NoError(t, err)
	assert.True(t, resp.Refunded)
	assert.Equal(t, entity.BookingStatusCancelled, h.bookings.get(b.ID).Status)
}

func TestUpdateCancelledBookingStatusGuard(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusCancelled, tomorrow(), "")

	paid := string(entity.BookingStatusPaid)
	_, err := h.svc.Update(context.Background(), b.ID.String(), &request.UpdateBookingRequest{
		Status: &paid,
	})
	assert.ErrorIs(t, err, entity.ErrAlreadyCancelled)
}

func TestUpdateMeetingLink(t *testing.T) {
	h := newBookingHarness(t)
	b := h.seedBooking(entity.BookingStatusPaid, tomorrow(), "pi_123")

	link := "https://meet.example.com/abc"
	resp, err := h.svc.Update(context.Background(), b.ID.String(), &request.UpdateBookingRequest{
		MeetingLink: &link,
	})
	require.NoError(t, err)
	assert.Equal(t, link, resp.MeetingLink)
	assert.Equal(t, link, h.bookings.get(b.ID).MeetingLink)
}

func TestAuditNoteFormat(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	note := entity.AuditNote(at, entity.ActorAdmin, "cancelled - test")

	assert.True(t, strings.HasPrefix(note, "[2026-03-14T09:30:00Z] admin: "))
	assert.Contains(t, note, "cancelled - test")
}
