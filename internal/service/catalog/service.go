package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawtrim/booking-service/internal/domain"
	groomerRepo "github.com/pawtrim/booking-service/internal/infra/storage/groomer"
	serviceRepo "github.com/pawtrim/booking-service/internal/infra/storage/service"
	"github.com/pawtrim/booking-service/internal/service/catalog/models"
)

// Service сервис каталога: услуги салона и расписания грумеров
type Service struct {
	serviceRepo ServiceRepository
	groomerRepo GroomerRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, groomerRepo GroomerRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		groomerRepo: groomerRepo,
		logger:      logger,
	}
}

// ListServices возвращает активные услуги салона
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(services), nil
}

// CreateService создает новую услугу. Только для админа.
func (s *Service) CreateService(ctx context.Context, actorRole domain.ActorRole, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: name=%q, duration=%d", req.Name, req.DurationMinutes)

	if actorRole != domain.RoleAdmin {
		s.logger.Warn("CreateService: access denied for role %s", actorRole)
		return nil, ErrAccessDenied
	}
	if err := req.Validate(); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.serviceRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// UpdateService обновляет услугу; Active=false - мягкая деактивация,
// физического удаления услуг нет. Только для админа.
func (s *Service) UpdateService(ctx context.Context, actorRole domain.ActorRole, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: id=%d", id)

	if actorRole != domain.RoleAdmin {
		s.logger.Warn("UpdateService: access denied for role %s", actorRole)
		return nil, ErrAccessDenied
	}
	if err := req.Validate(); err != nil {
		s.logger.Warn("UpdateService: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	current, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	req.ApplyTo(current)

	updated, err := s.serviceRepo.Update(ctx, id, current)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateService: updated service id=%d", id)
	return models.FromDomainService(updated), nil
}

// ListGroomers возвращает активных грумеров для выбора при бронировании
func (s *Service) ListGroomers(ctx context.Context) (*models.GroomerListResponse, error) {
	groomers, err := s.groomerRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListGroomers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListGroomers - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainGroomerList(groomers), nil
}

// CreateGroomer добавляет грумера с начальным расписанием. Только для админа.
func (s *Service) CreateGroomer(ctx context.Context, actorRole domain.ActorRole, req *models.CreateGroomerRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("CreateGroomer: name=%q", req.DisplayName)

	if actorRole != domain.RoleAdmin {
		s.logger.Warn("CreateGroomer: access denied for role %s", actorRole)
		return nil, ErrAccessDenied
	}
	if err := req.Validate(); err != nil {
		s.logger.Warn("CreateGroomer: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	g, err := req.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.groomerRepo.Create(ctx, g)
	if err != nil {
		s.logger.Error("CreateGroomer: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateGroomer - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateGroomer: created groomer id=%d", created.ID)
	return models.FromDomainGroomer(created), nil
}

// GetSchedule возвращает расписание грумера. Грумер видит своё расписание,
// админ - любое.
func (s *Service) GetSchedule(ctx context.Context, actorID int64, actorRole domain.ActorRole, groomerID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: groomer=%d, actor=%d (%s)", groomerID, actorID, actorRole)

	if err := s.checkScheduleAccess(actorID, actorRole, groomerID); err != nil {
		return nil, err
	}

	g, err := s.groomerRepo.GetByID(ctx, groomerID)
	if err != nil {
		if errors.Is(err, groomerRepo.ErrGroomerNotFound) {
			return nil, ErrGroomerNotFound
		}
		s.logger.Error("GetSchedule: repository error for groomer=%d: %v", groomerID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainGroomer(g), nil
}

// UpdateSchedule обновляет расписание, blackout-даты и параметры
// бронирования грумера. Изменение затрагивает только будущие расчёты
// слотов - существующие бронирования не трогаются.
func (s *Service) UpdateSchedule(ctx context.Context, actorID int64, actorRole domain.ActorRole, groomerID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: groomer=%d, actor=%d (%s)", groomerID, actorID, actorRole)

	if err := s.checkScheduleAccess(actorID, actorRole, groomerID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		s.logger.Warn("UpdateSchedule: validation failed for groomer=%d: %v", groomerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	g, err := s.groomerRepo.GetByID(ctx, groomerID)
	if err != nil {
		if errors.Is(err, groomerRepo.ErrGroomerNotFound) {
			return nil, ErrGroomerNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for groomer=%d: %v", groomerID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	if err := req.ApplyTo(g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.groomerRepo.UpdateSchedule(ctx, groomerID, g)
	if err != nil {
		if errors.Is(err, groomerRepo.ErrGroomerNotFound) {
			return nil, ErrGroomerNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for groomer=%d: %v", groomerID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: updated schedule for groomer=%d", groomerID)
	return models.FromDomainGroomer(updated), nil
}

// checkScheduleAccess проверяет права на расписание: грумер - только своё,
// админ - любое
func (s *Service) checkScheduleAccess(actorID int64, actorRole domain.ActorRole, groomerID int64) error {
	switch actorRole {
	case domain.RoleAdmin:
		return nil
	case domain.RoleGroomer:
		if actorID == groomerID {
			return nil
		}
	}
	s.logger.Warn("checkScheduleAccess: access denied for actor=%d (%s) to groomer=%d",
		actorID, actorRole, groomerID)
	return ErrAccessDenied
}
