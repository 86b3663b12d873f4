package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawtrim/booking-service/internal/domain"
	bookingRepo "github.com/pawtrim/booking-service/internal/infra/storage/booking"
	"github.com/pawtrim/booking-service/internal/service/bookings/models"
)

// Service read-side сервис для просмотра бронирований
type Service struct {
	bookingRepo BookingRepository
	location    *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, location *time.Location, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		location:    location,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит только свои бронирования; персонал и админ - любые.
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64, actorRole domain.ActorRole) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d (%s)", id, actorID, actorRole)

	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actorRole.IsStaff() && b.CustomerID != actorID {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(b), nil
}

// GetUserBookings получает историю бронирований клиента.
// Опционально фильтрует по статусу. Клиент видит только свою историю.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	if !req.ActorRole.IsStaff() && req.CustomerID != req.ActorID {
		s.logger.Warn("GetUserBookings: access denied for actor=%d to customer=%d history", req.ActorID, req.CustomerID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetGroomerBookings получает расписание грумера на день.
// Доступно персоналу и админу - это рабочий вид грумера, с клиентскими
// заметками и деталями питомцев.
func (s *Service) GetGroomerBookings(ctx context.Context, req *models.GetGroomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetGroomerBookings: fetching bookings for groomer=%d, date=%s",
		req.GroomerID, req.Date.Format(domain.DateFormat))

	if !req.ActorRole.IsStaff() {
		s.logger.Warn("GetGroomerBookings: access denied for actor=%d (%s)", req.ActorID, req.ActorRole)
		return nil, ErrAccessDenied
	}

	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, s.location)
	bookings, err := s.bookingRepo.GetForGroomerDay(ctx, domain.GroomerDayFilter{
		GroomerID:       req.GroomerID,
		DayStart:        dayStart,
		DayEnd:          dayStart.AddDate(0, 0, 1),
		IncludeCanceled: req.IncludeCanceled,
	})
	if err != nil {
		s.logger.Error("GetGroomerBookings: repository error for groomer=%d: %v", req.GroomerID, err)
		return nil, fmt.Errorf("%w: GetGroomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetGroomerBookings: fetched %d bookings for groomer=%d", len(bookings), req.GroomerID)
	return models.FromDomainBookingList(bookings), nil
}
