package usecase

import (
	"context"
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/repository"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/dto/response"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/mailer"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReminderService interface {
	// RunSweeps executes the 24h and 1h reminder passes. One failing
	// booking never blocks the rest of the batch.
	RunSweeps(ctx context.Context) (*response.SweepResponse, error)
}

type reminderService struct {
	repo *repository.Repository
	mail mailer.Mailer
	loc  *time.Location
	now  func() time.Time
	log  *zap.Logger
}

func NewReminderService(repo *repository.Repository, mail mailer.Mailer, loc *time.Location, log *zap.Logger) ReminderService {
	return &reminderService{
		repo: repo,
		mail: mail,
		loc:  loc,
		now:  time.Now,
		log:  log.With(zap.String("service", "reminder")),
	}
}

func (s *reminderService) RunSweeps(ctx context.Context) (*response.SweepResponse, error) {
	now := s.now().In(s.loc)
	resp := &response.SweepResponse{}

	resp.Reminder24h = s.sweep24h(ctx, now)
	resp.Reminder1h = s.sweep1h(ctx, now)

	s.log.Info("Reminder sweeps completed",
		zap.Int("sent_24h", resp.Reminder24h.Sent),
		zap.Int("errors_24h", resp.Reminder24h.Errors),
		zap.Int("sent_1h", resp.Reminder1h.Sent),
		zap.Int("errors_1h", resp.Reminder1h.Errors))

	return resp, nil
}

func (s *reminderService) sweep24h(ctx context.Context, now time.Time) response.SweepCount {
	var count response.SweepCount

	tomorrow := utils.DateOnly(now).AddDate(0, 0, 1)
	due, err := s.repo.Booking.FindReminder24hDue(ctx, tomorrow)
	if err != nil {
		s.log.Error("24h sweep query failed", zap.Error(err))
		count.Errors++
		return count
	}

	for _, b := range due {
		if s.sendReminder(ctx, b,
			s.repo.Booking.MarkReminder24hSent,
			s.repo.Booking.ResetReminder24hSent,
			mailer.Reminder24hEmail) {
			count.Sent++
		} else {
			count.Errors++
		}
	}

	return count
}

func (s *reminderService) sweep1h(ctx context.Context, now time.Time) response.SweepCount {
	var count response.SweepCount

	// The sweep runs hourly and targets slots starting within the next
	// hour. Deriving the date from that target lets the 23:00 run pick
	// up tomorrow's midnight slot.
	target := now.Add(time.Hour)
	due, err := s.repo.Booking.FindReminder1hDue(ctx, utils.DateOnly(target))
	if err != nil {
		s.log.Error("1h sweep query failed", zap.Error(err))
		count.Errors++
		return count
	}

	for _, b := range due {
		start, err := time.Parse(utils.TimeLayout, b.BookingTime)
		if err != nil {
			s.log.Error("Unparseable booking time",
				zap.String("booking_id", b.ID.String()),
				zap.String("time", b.BookingTime))
			count.Errors++
			continue
		}
		if start.Hour() != target.Hour() {
			continue
		}
		if s.sendReminder(ctx, b,
			s.repo.Booking.MarkReminder1hSent,
			s.repo.Booking.ResetReminder1hSent,
			mailer.Reminder1hEmail) {
			count.Sent++
		} else {
			count.Errors++
		}
	}

	return count
}

// sendReminder claims the sent flag before emailing. A concurrent sweep
// losing the claim skips the booking, which keeps delivery at most once.
// A failed send releases the claim so the next hourly run retries.
func (s *reminderService) sendReminder(
	ctx context.Context,
	b *entity.Booking,
	mark func(context.Context, uuid.UUID) (bool, error),
	release func(context.Context, uuid.UUID) error,
	template func(mailer.BookingInfo) (string, string),
) bool {
	claimed, err := mark(ctx, b.ID)
	if err != nil {
		s.log.Error("Failed to claim reminder flag",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()))
		return false
	}
	if !claimed {
		return true
	}

	info := mailer.BookingInfo{
		CustomerName: b.CustomerName,
		ServiceName:  s.serviceName(ctx, b),
		Date:         b.BookingDate.Format(utils.DateLayout),
		Time:         b.BookingTime,
		Price:        b.PricePaid,
		MeetingLink:  b.MeetingLink,
	}

	subject, body := template(info)
	if err := s.mail.Send(ctx, mailer.Message{To: b.CustomerEmail, Subject: subject, Body: body}); err != nil {
		s.log.Error("Failed to send reminder email",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()))
		if releaseErr := release(ctx, b.ID); releaseErr != nil {
			s.log.Error("Failed to release reminder flag after failed send",
				zap.Error(releaseErr),
				zap.String("booking_id", b.ID.String()))
		}
		return false
	}

	return true
}

func (s *reminderService) serviceName(ctx context.Context, b *entity.Booking) string {
	svc, err := s.repo.Service.FindByID(ctx, b.ServiceID)
	if err != nil || svc == nil {
		return ""
	}
	return svc.Name
}
