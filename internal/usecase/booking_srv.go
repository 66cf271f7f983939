package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/repository"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/dto/request"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/dto/response"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/mailer"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/payment"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenCodec signs and validates the self-service tokens embedded in
// customer emails. Satisfied by token.Codec.
type TokenCodec interface {
	Issue(bookingID uuid.UUID, email string) (string, error)
	Validate(tok string) (uuid.UUID, string, error)
}

type BookingService interface {
	// Customer-facing flow
	Create(ctx context.Context, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error)

	// MarkPaid flips pending -> paid. Idempotent: a redelivery with the same
	// payment reference reports transitioned=false with no error.
	MarkPaid(ctx context.Context, bookingID uuid.UUID, paymentRef string) (*entity.Booking, bool, error)

	// Cancel refunds first, then persists. A refund failure aborts the whole
	// operation with booking state untouched.
	Cancel(ctx context.Context, bookingID uuid.UUID, actor entity.Actor, reason string) (*response.CancelBookingResponse, error)

	Reschedule(ctx context.Context, bookingID uuid.UUID, req *request.RescheduleBookingRequest) (*response.RescheduleBookingResponse, error)

	// Self-service flows, keyed by signed token
	GetByToken(ctx context.Context, tok string) (*response.SelfServiceBookingResponse, error)
	CancelByToken(ctx context.Context, tok string, req *request.CancelBookingRequest) (*response.CancelBookingResponse, error)
	RescheduleByToken(ctx context.Context, tok string, req *request.RescheduleBookingRequest) (*response.RescheduleBookingResponse, error)

	// Admin
	GetByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	Update(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo         *repository.Repository
	availability AvailabilityService
	gateway      payment.Gateway
	mail         mailer.Mailer
	codec        TokenCodec
	baseURL      string
	operator     string
	loc          *time.Location
	log          *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	availability AvailabilityService,
	gateway payment.Gateway,
	mail mailer.Mailer,
	codec TokenCodec,
	cfg utils.BookingConfig,
	loc *time.Location,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:         repo,
		availability: availability,
		gateway:      gateway,
		mail:         mail,
		codec:        codec,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		operator:     cfg.OperatorEmail,
		loc:          loc,
		log:          log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Create(ctx context.Context, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", req.ServiceID, err)
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", req.Date, err)
	}

	svc, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("look up service: %w", err)
	}
	if svc == nil || !svc.Active {
		return nil, fmt.Errorf("service %s: %w", req.ServiceID, entity.ErrServiceNotFound)
	}

	// Read-time gate. The write below re-checks through the unique index,
	// which is what actually closes the race between two customers.
	available, err := s.availability.IsAvailable(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if !available {
		return nil, fmt.Errorf("date %s: %w", req.Date, entity.ErrDateUnavailable)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ServiceID:     serviceID,
		BookingDate:   utils.DateOnly(date),
		BookingTime:   req.Time,
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		CustomerPhone: req.Phone,
		PricePaid:     svc.Price, // snapshot, never recomputed
		Status:        entity.BookingStatusPending,
		CustomerNotes: req.Notes,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, err
	}

	checkout, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutParams{
		BookingID:     booking.ID.String(),
		ServiceName:   svc.Name,
		Amount:        booking.PricePaid,
		CustomerEmail: booking.CustomerEmail,
	})
	if err != nil {
		s.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()))
		// Without a checkout session the pending row would squat its date
		// with no path to payment. Release the slot before surfacing.
		if _, cancelErr := s.repo.Booking.MarkCancelled(ctx, booking.ID); cancelErr != nil {
			s.log.Error("Failed to release date after checkout failure",
				zap.Error(cancelErr),
				zap.String("booking_id", booking.ID.String()))
		} else {
			note := entity.AuditNote(time.Now(), entity.ActorSystem, "cancelled - checkout session creation failed")
			if noteErr := s.repo.Booking.AppendAdminNote(ctx, booking.ID, note); noteErr != nil {
				s.log.Error("Failed to append checkout failure audit note",
					zap.Error(noteErr),
					zap.String("booking_id", booking.ID.String()))
			}
		}
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("date", req.Date),
		zap.String("service", svc.Name),
		zap.Float64("price", booking.PricePaid))

	return &response.CreateBookingResponse{
		BookingID:   booking.ID.String(),
		CheckoutURL: checkout.URL,
	}, nil
}

func (s *bookingService) MarkPaid(ctx context.Context, bookingID uuid.UUID, paymentRef string) (*entity.Booking, bool, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, false, err
	}
	if booking == nil {
		return nil, false, fmt.Errorf("booking %s: %w", bookingID.String(), entity.ErrNotFound)
	}

	transitioned, err := s.repo.Booking.MarkPaid(ctx, bookingID, paymentRef)
	if err != nil {
		return nil, false, err
	}

	if !transitioned {
		switch {
		case booking.Status == entity.BookingStatusPaid && booking.StripePaymentID == paymentRef:
			// Webhook redelivery: same reference, nothing to do.
			s.log.Info("MarkPaid redelivery ignored",
				zap.String("booking_id", bookingID.String()),
				zap.String("payment_ref", paymentRef))
			return booking, false, nil
		case booking.Status == entity.BookingStatusCancelled:
			return nil, false, fmt.Errorf("booking %s: %w", bookingID.String(), entity.ErrBookingCancelled)
		default:
			s.log.Error("MarkPaid conflict: paid with different reference",
				zap.String("booking_id", bookingID.String()),
				zap.String("existing_ref", booking.StripePaymentID),
				zap.String("new_ref", paymentRef))
			return nil, false, fmt.Errorf("booking %s: %w", bookingID.String(), entity.ErrAlreadyPaid)
		}
	}

	note := entity.AuditNote(time.Now(), entity.ActorSystem, "payment confirmed, ref "+paymentRef)
	if err := s.repo.Booking.AppendAdminNote(ctx, bookingID, note); err != nil {
		s.log.Error("Failed to append payment audit note",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()))
	}

	booking.Status = entity.BookingStatusPaid
	booking.StripePaymentID = paymentRef

	s.log.Info("Booking marked paid",
		zap.String("booking_id", bookingID.String()),
		zap.String("payment_ref", paymentRef))

	// Only the call that performed the transition sends the confirmation
	// pair, so redeliveries never duplicate email.
	s.sendConfirmationEmails(ctx, booking)

	return booking, true, nil
}

func (s *bookingService) Cancel(ctx context.Context, bookingID uuid.UUID, actor entity.Actor, reason string) (*response.CancelBookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID.String(), entity.ErrNotFound)
	}
	if booking.Status == entity.BookingStatusCancelled {
		return nil, fmt.Errorf("booking %s: %w", bookingID.String(), entity.ErrAlreadyCancelled)
	}

	// Refund first. If the provider call fails we abort with state
	// untouched: a cancelled-but-unrefunded booking is the one outcome
	// this flow must never produce.
	refunded := false
	if booking.StripePaymentID != "" {
		if err := s.gateway.Refund(ctx, booking.StripePaymentID); err != nil {
			s.log.Error("Refund failed, cancellation aborted",
				zap.Error(err),
				zap.String("booking_id", bookingID.String()),
				zap.String("payment_ref", booking.StripePaymentID))
			return nil, fmt.Errorf("%w: %v", entity.ErrRefundFailed, err)
		}
		refunded = true
	}

	cancelled, err := s.repo.Booking.MarkCancelled(ctx, bookingID)
	if err != nil {
		if refunded {
			// Refund went through but the state write did not. Flag loudly
			// for manual reconciliation; this is the accepted anomaly.
			s.log.Error("REFUND ISSUED BUT CANCEL PERSIST FAILED - manual reconciliation required",
				zap.Error(err),
				zap.String("booking_id", bookingID.String()),
				zap.String("payment_ref", booking.StripePaymentID))
		}
		return nil, err
	}
	if !cancelled {
		return nil, fmt.Errorf("booking %s: %w", bookingID.String(), entity.ErrAlreadyCancelled)
	}

	note := fmt.Sprintf("cancelled - %s (refunded: %t)", reason, refunded)
	if err := s.repo.Booking.AppendAdminNote(ctx, bookingID, entity.AuditNote(time.Now(), actor, note)); err != nil {
		s.log.Error("Failed to append cancel audit note",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()))
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("actor", string(actor)),
		zap.Bool("refunded", refunded))

	s.sendCancellationEmails(ctx, booking, reason, refunded)

	return &response.CancelBookingResponse{Refunded: refunded}, nil
}

func (s *bookingService) Reschedule(ctx context.Context, bookingID uuid.UUID, req *request.RescheduleBookingRequest) (*response.RescheduleBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID.String(), entity.ErrNotFound)
	}
	if booking.Status == entity.BookingStatusCancelled {
		return nil, fmt.Errorf("booking %s: %w", bookingID.String(), entity.ErrBookingCancelled)
	}

	newDate, err := utils.ParseDate(req.NewDate)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", req.NewDate, err)
	}
	newDate = utils.DateOnly(newDate)

	newTime := req.NewTime
	if newTime == "" {
		newTime = booking.BookingTime
	}

	if !newDate.After(utils.Today(s.loc)) {
		return nil, fmt.Errorf("date %s: %w", req.NewDate, entity.ErrDateUnavailable)
	}

	blocked, err := s.repo.BlockedDate.IsBlocked(ctx, newDate)
	if err != nil {
		return nil, fmt.Errorf("check blocked: %w", err)
	}
	if blocked {
		return nil, fmt.Errorf("date %s: %w", req.NewDate, entity.ErrDateUnavailable)
	}

	// Pre-check excludes this booking so it can land on its own current
	// date; the unique index settles any remaining race at write time.
	taken, err := s.repo.Booking.FindActiveDates(ctx, newDate, newDate, &bookingID)
	if err != nil {
		return nil, fmt.Errorf("check active booking: %w", err)
	}
	if len(taken) > 0 {
		return nil, fmt.Errorf("date %s: %w", req.NewDate, entity.ErrDateUnavailable)
	}

	oldDate := booking.BookingDate.Format(utils.DateLayout)
	oldTime := booking.BookingTime

	if err := s.repo.Booking.UpdateDate(ctx, bookingID, newDate, newTime); err != nil {
		return nil, err
	}

	note := fmt.Sprintf("rescheduled from %s %s to %s %s", oldDate, oldTime, req.NewDate, newTime)
	if err := s.repo.Booking.AppendAdminNote(ctx, bookingID, entity.AuditNote(time.Now(), entity.ActorCustomer, note)); err != nil {
		s.log.Error("Failed to append reschedule audit note",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()))
	}

	s.log.Info("Booking rescheduled",
		zap.String("booking_id", bookingID.String()),
		zap.String("old_date", oldDate),
		zap.String("new_date", req.NewDate))

	booking.BookingDate = newDate
	booking.BookingTime = newTime
	s.sendRescheduleEmail(ctx, booking, oldDate)

	return &response.RescheduleBookingResponse{NewDate: req.NewDate, NewTime: newTime}, nil
}

// ==================== SELF-SERVICE (token) ====================

// resolveToken validates the bearer token and binds it to its booking.
// Any mismatch - unknown booking, email changed - yields the same opaque
// invalid-token outcome as a bad signature.
func (s *bookingService) resolveToken(ctx context.Context, tok string) (*entity.Booking, error) {
	bookingID, email, err := s.codec.Validate(tok)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil || !strings.EqualFold(booking.CustomerEmail, email) {
		s.log.Warn("Token resolved to no booking",
			zap.String("booking_id", bookingID.String()))
		return nil, entity.ErrInvalidToken
	}

	return booking, nil
}

func (s *bookingService) GetByToken(ctx context.Context, tok string) (*response.SelfServiceBookingResponse, error) {
	booking, err := s.resolveToken(ctx, tok)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToSelfService(booking, s.serviceName(ctx, booking.ServiceID))
	return &resp, nil
}

func (s *bookingService) CancelByToken(ctx context.Context, tok string, req *request.CancelBookingRequest) (*response.CancelBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.resolveToken(ctx, tok)
	if err != nil {
		return nil, err
	}

	return s.Cancel(ctx, booking.ID, entity.ActorCustomer, req.Reason)
}

func (s *bookingService) RescheduleByToken(ctx context.Context, tok string, req *request.RescheduleBookingRequest) (*response.RescheduleBookingResponse, error) {
	booking, err := s.resolveToken(ctx, tok)
	if err != nil {
		return nil, err
	}

	return s.Reschedule(ctx, booking.ID, req)
}

// ==================== ADMIN ====================

func (s *bookingService) GetByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, entity.ErrNotFound)
	}

	resp := response.BookingToResponse(booking, s.serviceName(ctx, booking.ServiceID))
	return &resp, nil
}

func (s *bookingService) List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.List(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.Count(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = response.BookingToResponse(b, s.serviceName(ctx, b.ServiceID))
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) Update(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, entity.ErrNotFound)
	}

	// Allow-listed fields only. Date changes go through Reschedule.
	if req.MeetingLink != nil {
		booking.MeetingLink = *req.MeetingLink
	}
	if req.AdminNotes != nil {
		booking.AdminNotes = *req.AdminNotes
	}
	if req.Time != nil {
		booking.BookingTime = *req.Time
	}
	if req.Status != nil {
		newStatus := entity.BookingStatus(*req.Status)
		// Cancelled is terminal, even for the admin path.
		if booking.Status == entity.BookingStatusCancelled && newStatus != entity.BookingStatusCancelled {
			return nil, fmt.Errorf("booking %s: %w", bookingID, entity.ErrAlreadyCancelled)
		}
		booking.Status = newStatus
	}

	if err := s.repo.Booking.UpdateAdminFields(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("Booking updated", zap.String("booking_id", bookingID))

	resp := response.BookingToResponse(booking, s.serviceName(ctx, booking.ServiceID))
	return &resp, nil
}

// ==================== HELPERS ====================

func (s *bookingService) serviceName(ctx context.Context, serviceID uuid.UUID) string {
	svc, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil || svc == nil {
		return ""
	}
	return svc.Name
}

func (s *bookingService) bookingInfo(ctx context.Context, b *entity.Booking) mailer.BookingInfo {
	return mailer.BookingInfo{
		CustomerName: b.CustomerName,
		ServiceName:  s.serviceName(ctx, b.ServiceID),
		Date:         b.BookingDate.Format(utils.DateLayout),
		Time:         b.BookingTime,
		Price:        b.PricePaid,
		MeetingLink:  b.MeetingLink,
	}
}

func (s *bookingService) sendConfirmationEmails(ctx context.Context, b *entity.Booking) {
	info := s.bookingInfo(ctx, b)

	// A confirmation without working self-service links is worse than a
	// late one, so the customer email is skipped when issuing fails.
	tok, err := s.codec.Issue(b.ID, b.CustomerEmail)
	if err != nil {
		s.log.Error("Failed to issue self-service token, confirmation email skipped",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()))
	} else {
		cancelURL := s.baseURL + "/booking/cancel/" + tok
		rescheduleURL := s.baseURL + "/booking/reschedule/" + tok

		subject, body := mailer.ConfirmationEmail(info, cancelURL, rescheduleURL)
		if err := s.mail.Send(ctx, mailer.Message{To: b.CustomerEmail, Subject: subject, Body: body}); err != nil {
			s.log.Error("Failed to send confirmation email",
				zap.Error(err),
				zap.String("booking_id", b.ID.String()))
		}
	}

	subject, body := mailer.OperatorNewBookingEmail(info, b.CustomerEmail)
	if err := s.mail.Send(ctx, mailer.Message{To: s.operator, Subject: subject, Body: body}); err != nil {
		s.log.Error("Failed to send operator notification email",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()))
	}
}

func (s *bookingService) sendCancellationEmails(ctx context.Context, b *entity.Booking, reason string, refunded bool) {
	info := s.bookingInfo(ctx, b)

	subject, body := mailer.CancellationEmail(info, refunded)
	if err := s.mail.Send(ctx, mailer.Message{To: b.CustomerEmail, Subject: subject, Body: body}); err != nil {
		s.log.Error("Failed to send cancellation email",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()))
	}

	subject, body = mailer.OperatorCancellationEmail(info, b.CustomerEmail, reason, refunded)
	if err := s.mail.Send(ctx, mailer.Message{To: s.operator, Subject: subject, Body: body}); err != nil {
		s.log.Error("Failed to send operator cancellation email",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()))
	}
}

func (s *bookingService) sendRescheduleEmail(ctx context.Context, b *entity.Booking, oldDate string) {
	subject, body := mailer.RescheduleEmail(s.bookingInfo(ctx, b), oldDate)
	if err := s.mail.Send(ctx, mailer.Message{To: b.CustomerEmail, Subject: subject, Body: body}); err != nil {
		s.log.Error("Failed to send reschedule email",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()))
	}
}
