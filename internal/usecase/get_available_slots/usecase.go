package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawtrim/booking-service/internal/domain"
	groomerRepo "github.com/pawtrim/booking-service/internal/infra/storage/groomer"
	serviceRepo "github.com/pawtrim/booking-service/internal/infra/storage/service"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	groomerRepo  GroomerRepository
	serviceRepo  ServiceRepository
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	groomerRepo GroomerRepository,
	serviceRepo ServiceRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		groomerRepo:  groomerRepo,
		serviceRepo:  serviceRepo,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Неизвестные или неактивные услуга/грумер и дни без расписания - это
// валидное состояние "нет слотов", а не ошибка: возвращается пустой список.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: groomer=%d, service=%d, date=%s",
		req.GroomerID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	empty := &Response{
		Date:      req.Date,
		GroomerID: req.GroomerID,
		ServiceID: req.ServiceID,
		Slots:     []domain.AvailableSlot{},
	}

	// 2. Получаем услугу (нет или неактивна - пустой результат)
	svc, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return empty, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !svc.IsBookable() {
		uc.logger.Info("GetAvailableSlots: service id=%d is not bookable", req.ServiceID)
		return empty, nil
	}

	// 3. Получаем грумера (нет или неактивен - пустой результат)
	g, err := uc.groomerRepo.GetByID(ctx, req.GroomerID)
	if err != nil {
		if errors.Is(err, groomerRepo.ErrGroomerNotFound) {
			uc.logger.Warn("GetAvailableSlots: groomer id=%d not found", req.GroomerID)
			return empty, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get groomer id=%d: %v", req.GroomerID, err)
		return nil, fmt.Errorf("%w: failed to get groomer: %v", ErrInternal, err)
	}
	if !g.Active {
		uc.logger.Info("GetAvailableSlots: groomer id=%d is inactive", req.GroomerID)
		return empty, nil
	}

	// 4. Blackout-дата или день без рабочих диапазонов - пустой результат
	if g.IsBlackout(req.Date) {
		uc.logger.Info("GetAvailableSlots: groomer id=%d has blackout on %s",
			req.GroomerID, req.Date.Format(domain.DateFormat))
		return empty, nil
	}

	ranges := g.RangesFor(req.Date)
	if len(ranges) == 0 {
		return empty, nil
	}

	// 5. Загружаем бронирования грумера на этот день
	// (все статусы, занимающие время - то есть кроме отменённых)
	dayStart, dayEnd := dayBounds(req.Date, uc.location)
	bookings, err := uc.bookingRepo.GetForGroomerDay(ctx, domain.GroomerDayFilter{
		GroomerID: req.GroomerID,
		DayStart:  dayStart,
		DayEnd:    dayEnd,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Вычисляем слоты по фиксированной 15-минутной сетке.
	// Фильтр "только будущее" отсеивает прошедшие слоты; минимальный lead time
	// грумера здесь не применяется - он проверяется при создании hold.
	now := uc.timeProvider.Now().In(uc.location)
	slots, err := computeSlots(ranges, svc.DurationMinutes, busyIntervals(bookings, g.BufferMin), req.Date, now, uc.location)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d slots for groomer=%d, service=%d, date=%s",
		len(slots), req.GroomerID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		GroomerID: req.GroomerID,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}
