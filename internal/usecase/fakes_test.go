package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/repository"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/mailer"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/payment"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"github.com/google/uuid"
)

// In-memory repository fakes. The booking fake enforces the one-active-
// booking-per-day rule the same way the database index does, so service
// tests exercise the real conflict paths.

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking

	failMarkCancelled error
	failCreate        error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) activeOnDate(date time.Time, exclude *uuid.UUID) *entity.Booking {
	for _, b := range f.bookings {
		if exclude != nil && b.ID == *exclude {
			continue
		}
		if b.Status.IsActive() && utils.SameDate(b.BookingDate, date) {
			return b
		}
	}
	return nil
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return f.failCreate
	}
	if f.activeOnDate(booking.BookingDate, nil) != nil {
		return entity.ErrDateUnavailable
	}
	clone := *booking
	f.bookings[booking.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) List(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeBookingRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) HasActiveOnDate(ctx context.Context, date time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activeOnDate(date, nil) != nil, nil
}

func (f *fakeBookingRepo) FindActiveDates(ctx context.Context, from, to time.Time, exclude *uuid.UUID) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var dates []time.Time
	for _, b := range f.bookings {
		if exclude != nil && b.ID == *exclude {
			continue
		}
		if b.Status.IsActive() && !b.BookingDate.Before(from) && !b.BookingDate.After(to) {
			dates = append(dates, b.BookingDate)
		}
	}
	return dates, nil
}

func (f *fakeBookingRepo) MarkPaid(ctx context.Context, id uuid.UUID, paymentRef string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != entity.BookingStatusPending {
		return false, nil
	}
	b.Status = entity.BookingStatusPaid
	b.StripePaymentID = paymentRef
	return true, nil
}

func (f *fakeBookingRepo) MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMarkCancelled != nil {
		return false, f.failMarkCancelled
	}
	b, ok := f.bookings[id]
	if !ok || b.Status == entity.BookingStatusCancelled {
		return false, nil
	}
	b.Status = entity.BookingStatusCancelled
	return true, nil
}

func (f *fakeBookingRepo) UpdateDate(ctx context.Context, id uuid.UUID, newDate time.Time, newTime string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return entity.ErrNotFound
	}
	if f.activeOnDate(newDate, &id) != nil {
		return entity.ErrDateUnavailable
	}
	b.BookingDate = newDate
	b.BookingTime = newTime
	return nil
}

func (f *fakeBookingRepo) UpdateAdminFields(ctx context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[booking.ID]
	if !ok {
		return entity.ErrNotFound
	}
	b.MeetingLink = booking.MeetingLink
	b.AdminNotes = booking.AdminNotes
	b.BookingTime = booking.BookingTime
	b.Status = booking.Status
	return nil
}

func (f *fakeBookingRepo) AppendAdminNote(ctx context.Context, id uuid.UUID, note string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return entity.ErrNotFound
	}
	if b.AdminNotes == "" {
		b.AdminNotes = note
	} else {
		b.AdminNotes += "\n" + note
	}
	return nil
}

func (f *fakeBookingRepo) FindReminder24hDue(ctx context.Context, date time.Time) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.Status == entity.BookingStatusPaid && utils.SameDate(b.BookingDate, date) && !b.Reminder24hSent {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindReminder1hDue(ctx context.Context, date time.Time) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.Status == entity.BookingStatusPaid && utils.SameDate(b.BookingDate, date) &&
			!b.Reminder1hSent && b.MeetingLink != "" {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) MarkReminder24hSent(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Reminder24hSent {
		return false, nil
	}
	b.Reminder24hSent = true
	return true, nil
}

func (f *fakeBookingRepo) MarkReminder1hSent(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Reminder1hSent {
		return false, nil
	}
	b.Reminder1hSent = true
	return true, nil
}

func (f *fakeBookingRepo) ResetReminder24hSent(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return entity.ErrNotFound
	}
	b.Reminder24hSent = false
	return nil
}

func (f *fakeBookingRepo) ResetReminder1hSent(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return entity.ErrNotFound
	}
	b.Reminder1hSent = false
	return nil
}

func (f *fakeBookingRepo) get(id uuid.UUID) *entity.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookings[id]
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func newFakeServiceRepo(services ...*entity.Service) *fakeServiceRepo {
	f := &fakeServiceRepo{services: make(map[uuid.UUID]*entity.Service)}
	for _, s := range services {
		f.services[s.ID] = s
	}
	return f
}

func (f *fakeServiceRepo) Create(ctx context.Context, service *entity.Service) error {
	f.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	return f.services[id], nil
}

func (f *fakeServiceRepo) FindAllActive(ctx context.Context) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, s := range f.services {
		if s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) FindAll(ctx context.Context) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, s := range f.services {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeServiceRepo) Update(ctx context.Context, service *entity.Service) error {
	f.services[service.ID] = service
	return nil
}

type fakeBlockedDateRepo struct {
	blocked map[string]*entity.BlockedDate
}

func newFakeBlockedDateRepo() *fakeBlockedDateRepo {
	return &fakeBlockedDateRepo{blocked: make(map[string]*entity.BlockedDate)}
}

func (f *fakeBlockedDateRepo) Create(ctx context.Context, blocked *entity.BlockedDate) error {
	f.blocked[blocked.Date.Format(utils.DateLayout)] = blocked
	return nil
}

func (f *fakeBlockedDateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for key, b := range f.blocked {
		if b.ID == id {
			delete(f.blocked, key)
			return nil
		}
	}
	return entity.ErrNotFound
}

func (f *fakeBlockedDateRepo) IsBlocked(ctx context.Context, date time.Time) (bool, error) {
	_, ok := f.blocked[date.Format(utils.DateLayout)]
	return ok, nil
}

func (f *fakeBlockedDateRepo) FindRange(ctx context.Context, from, to time.Time) ([]*entity.BlockedDate, error) {
	var out []*entity.BlockedDate
	for _, b := range f.blocked {
		if !b.Date.Before(from) && !b.Date.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBlockedDateRepo) FindAll(ctx context.Context) ([]*entity.BlockedDate, error) {
	var out []*entity.BlockedDate
	for _, b := range f.blocked {
		out = append(out, b)
	}
	return out, nil
}

// fakeGateway records provider calls and fails on demand.
type fakeGateway struct {
	mu          sync.Mutex
	refunded    []string
	refundErr   error
	checkoutErr error
	event       *payment.Event
	verifyErr   error
}

func (f *fakeGateway) CreateCheckoutSession(ctx context.Context, p payment.CheckoutParams) (*payment.CheckoutSession, error) {
	if f.checkoutErr != nil {
		return nil, f.checkoutErr
	}
	return &payment.CheckoutSession{
		ID:  "cs_test_" + p.BookingID,
		URL: "https://checkout.test/pay/" + p.BookingID,
	}, nil
}

func (f *fakeGateway) VerifyEvent(payload []byte, sigHeader string) (*payment.Event, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.event, nil
}

func (f *fakeGateway) Refund(ctx context.Context, paymentRef string) error {
	if f.refundErr != nil {
		return f.refundErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refunded = append(f.refunded, paymentRef)
	return nil
}

// fakeMailer records every message instead of sending.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []mailer.Message
	sendErr error
	failTo  string // fail only for this recipient when set
}

func (f *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	if f.failTo != "" && msg.To == f.failTo {
		return errors.New("smtp rejected recipient")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) sentTo(addr string) []mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []mailer.Message
	for _, m := range f.sent {
		if m.To == addr {
			out = append(out, m)
		}
	}
	return out
}

func newTestRepository(bookings *fakeBookingRepo, services *fakeServiceRepo, blocked *fakeBlockedDateRepo) *repository.Repository {
	return &repository.Repository{
		Service:     services,
		Booking:     bookings,
		BlockedDate: blocked,
	}
}
