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

// CatalogService manages the bookable service offerings.
type CatalogService interface {
	ListActive(ctx context.Context) ([]response.ServiceResponse, error)
	ListAll(ctx context.Context) ([]response.ServiceResponse, error)
	Create(ctx context.Context, req *request.ServiceRequest) (*response.ServiceResponse, error)
	Update(ctx context.Context, serviceID string, req *request.ServiceRequest) (*response.ServiceResponse, error)
}

type catalogService struct {
	repo repository.ServiceRepository
	log  *zap.Logger
}

func NewCatalogService(repo repository.ServiceRepository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListActive(ctx context.Context) ([]response.ServiceResponse, error) {
	services, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	return toServiceResponses(services), nil
}

func (s *catalogService) ListAll(ctx context.Context) ([]response.ServiceResponse, error) {
	services, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toServiceResponses(services), nil
}

func (s *catalogService) Create(ctx context.Context, req *request.ServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	service := &entity.Service{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Price:    req.Price,
		Duration: req.Duration,
		Active:   req.Active,
		Featured: req.Featured,
	}

	if err := s.repo.Create(ctx, service); err != nil {
		return nil, err
	}

	s.log.Info("Service created",
		zap.String("service_id", service.ID.String()),
		zap.String("name", service.Name))

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) Update(ctx context.Context, serviceID string, req *request.ServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", serviceID, err)
	}

	service, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, fmt.Errorf("service %s: %w", serviceID, entity.ErrServiceNotFound)
	}

	// Price changes only affect future bookings; existing rows keep
	// their snapshot.
	service.Name = req.Name
	service.Price = req.Price
	service.Duration = req.Duration
	service.Active = req.Active
	service.Featured = req.Featured

	if err := s.repo.Update(ctx, service); err != nil {
		return nil, err
	}

	s.log.Info("Service updated", zap.String("service_id", serviceID))

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func toServiceResponses(services []*entity.Service) []response.ServiceResponse {
	responses := make([]response.ServiceResponse, len(services))
	for i, svc := range services {
		responses[i] = response.ServiceToResponse(svc)
	}
	return responses
}
