package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/repository"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/dto/request"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/dto/response"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// IsAvailable reports whether a date can take a new booking: strictly
	// after today, not admin-blocked, no active booking on it.
	IsAvailable(ctx context.Context, date time.Time) (bool, error)

	// ListUnavailable returns the union of blocked dates and dates holding
	// an active booking, for calendar rendering. exclude removes one
	// booking from consideration so it can be rescheduled onto its own date.
	ListUnavailable(ctx context.Context, fromStr, toStr string, exclude *uuid.UUID) (*response.AvailabilityResponse, error)

	// Admin-managed blocked dates
	BlockDate(ctx context.Context, req *request.BlockDateRequest) (*response.BlockedDateResponse, error)
	UnblockDate(ctx context.Context, id string) error
	ListBlockedDates(ctx context.Context) ([]response.BlockedDateResponse, error)
}

type availabilityService struct {
	repo *repository.Repository
	loc  *time.Location
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, loc *time.Location, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		loc:  loc,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) IsAvailable(ctx context.Context, date time.Time) (bool, error) {
	date = utils.DateOnly(date)

	// Same-day is not bookable; the boundary is strictly after today.
	if !date.After(utils.Today(s.loc)) {
		return false, nil
	}

	blocked, err := s.repo.BlockedDate.IsBlocked(ctx, date)
	if err != nil {
		return false, fmt.Errorf("check blocked: %w", err)
	}
	if blocked {
		return false, nil
	}

	taken, err := s.repo.Booking.HasActiveOnDate(ctx, date)
	if err != nil {
		return false, fmt.Errorf("check active booking: %w", err)
	}

	return !taken, nil
}

func (s *availabilityService) ListUnavailable(ctx context.Context, fromStr, toStr string, exclude *uuid.UUID) (*response.AvailabilityResponse, error) {
	from, err := utils.ParseDate(fromStr)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %s", fromStr)
	}
	to, err := utils.ParseDate(toStr)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %s", toStr)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: to before from")
	}

	seen := make(map[string]bool)

	blocked, err := s.repo.BlockedDate.FindRange(ctx, from, to)
	if err != nil {
		s.log.Error("Failed to load blocked dates", zap.Error(err))
		return nil, fmt.Errorf("load blocked dates: %w", err)
	}
	for _, b := range blocked {
		seen[b.Date.Format(utils.DateLayout)] = true
	}

	active, err := s.repo.Booking.FindActiveDates(ctx, from, to, exclude)
	if err != nil {
		s.log.Error("Failed to load active booking dates", zap.Error(err))
		return nil, fmt.Errorf("load active booking dates: %w", err)
	}
	for _, d := range active {
		seen[d.Format(utils.DateLayout)] = true
	}

	dates := make([]string, 0, len(seen))
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(utils.DateLayout)
		if seen[key] {
			dates = append(dates, key)
		}
	}

	return &response.AvailabilityResponse{Unavailable: dates}, nil
}

func (s *availabilityService) BlockDate(ctx context.Context, req *request.BlockDateRequest) (*response.BlockedDateResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", req.Date, err)
	}

	blocked := &entity.BlockedDate{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Date:   date,
		Reason: req.Reason,
	}

	// Blocking a date does not touch any existing booking on it; that
	// overlap stays visible to the admin for manual resolution.
	if err := s.repo.BlockedDate.Create(ctx, blocked); err != nil {
		return nil, err
	}

	s.log.Info("Date blocked",
		zap.String("date", req.Date),
		zap.String("reason", req.Reason))

	resp := response.BlockedDateToResponse(blocked)
	return &resp, nil
}

func (s *availabilityService) UnblockDate(ctx context.Context, id string) error {
	blockedID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid blocked date ID %s: %w", id, err)
	}

	if err := s.repo.BlockedDate.Delete(ctx, blockedID); err != nil {
		return err
	}

	s.log.Info("Date unblocked", zap.String("blocked_date_id", id))
	return nil
}

func (s *availabilityService) ListBlockedDates(ctx context.Context) ([]response.BlockedDateResponse, error) {
	blocked, err := s.repo.BlockedDate.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]response.BlockedDateResponse, len(blocked))
	for i, b := range blocked {
		responses[i] = response.BlockedDateToResponse(b)
	}

	return responses, nil
}
