package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawtrim/booking-service/internal/domain"
	bookingRepo "github.com/pawtrim/booking-service/internal/infra/storage/booking"
	groomerRepo "github.com/pawtrim/booking-service/internal/infra/storage/groomer"
	serviceRepo "github.com/pawtrim/booking-service/internal/infra/storage/service"
	"github.com/pawtrim/booking-service/internal/integrations/payments"
)

// Config параметры политики бронирования
type Config struct {
	HoldTTLMinutes        int
	DefaultDepositPercent float64
	DefaultTaxRate        float64
	Location              *time.Location
}

// UseCase use case для создания hold-бронирования с авторизацией депозита
type UseCase struct {
	bookingRepo  BookingRepository
	groomerRepo  GroomerRepository
	serviceRepo  ServiceRepository
	payments     PaymentClient
	txManager    TransactionManager
	timeProvider TimeProvider
	cfg          Config
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	groomerRepo GroomerRepository,
	serviceRepo ServiceRepository,
	payments PaymentClient,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		groomerRepo:  groomerRepo,
		serviceRepo:  serviceRepo,
		payments:     payments,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		cfg:          cfg,
		logger:       logger,
	}
}

// Execute выполняет use case создания hold-бронирования.
//
// Доступность слота перепроверяется внутри сериализуемой транзакции с
// блокировкой бронирований грумера на день (FOR UPDATE) - список слотов,
// который видел клиент, мог устареть. Авторизация депозита выполняется
// после коммита: при отказе провайдера hold сохраняется и либо будет
// оплачен повторной попыткой, либо истечёт по hold_expires_at.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: customer=%d, groomer=%d, service=%d, start=%s",
		req.CustomerID, req.GroomerID, req.ServiceID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	svc, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, req.ServiceID)
		}
		uc.logger.Error("CreateHold: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !svc.IsBookable() {
		return nil, fmt.Errorf("%w: id=%d is inactive", ErrServiceNotFound, req.ServiceID)
	}

	// 3. Получаем грумера
	g, err := uc.groomerRepo.GetByID(ctx, req.GroomerID)
	if err != nil {
		if errors.Is(err, groomerRepo.ErrGroomerNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrGroomerNotFound, req.GroomerID)
		}
		uc.logger.Error("CreateHold: failed to get groomer id=%d: %v", req.GroomerID, err)
		return nil, fmt.Errorf("%w: failed to get groomer: %v", ErrInternal, err)
	}
	if !g.Active {
		return nil, fmt.Errorf("%w: id=%d is inactive", ErrGroomerNotFound, req.GroomerID)
	}

	now := uc.timeProvider.Now().In(uc.cfg.Location)
	startAt := req.StartAt.In(uc.cfg.Location)
	endAt := startAt.Add(time.Duration(svc.DurationMinutes) * time.Minute)

	// 4. Минимальный lead time грумера
	minStart := now.Add(time.Duration(g.MinLeadMin) * time.Minute)
	if startAt.Before(minStart) {
		return nil, fmt.Errorf("%w: start=%s, minimum lead is %d minutes",
			ErrLeadTimeViolation, startAt.Format(time.RFC3339), g.MinLeadMin)
	}

	// 5. Слот должен целиком лежать в рабочем диапазоне и не попадать
	// на blackout-дату
	if err := uc.checkWorkingHours(g, startAt, endAt); err != nil {
		return nil, err
	}

	// 6. Считаем сумму к оплате
	charge := domain.ComputeCharge(svc, uc.cfg.DefaultDepositPercent, uc.cfg.DefaultTaxRate)
	holdExpiresAt := now.Add(time.Duration(uc.cfg.HoldTTLMinutes) * time.Minute)

	booking := &domain.Booking{
		CustomerID:    req.CustomerID,
		GroomerID:     req.GroomerID,
		ServiceID:     req.ServiceID,
		StartAt:       startAt,
		EndAt:         endAt,
		Status:        domain.StatusHold,
		DepositCents:  charge.DepositCents,
		TaxCents:      charge.TaxCents,
		TotalDueCents: charge.AmountDueCents,
		Notes:         req.Notes,
		PetDetails:    req.PetDetails,
		HoldExpiresAt: &holdExpiresAt,
	}

	// 7. Перепроверка занятости и вставка - атомарно, в сериализуемой
	// транзакции. Exclusion-ограничение в БД страхует от гонки, которую
	// транзакция по какой-то причине не поймала.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		dayStart, dayEnd := dayBounds(startAt, uc.cfg.Location)
		existing, err := uc.bookingRepo.GetForGroomerDay(txCtx, domain.GroomerDayFilter{
			GroomerID: req.GroomerID,
			DayStart:  dayStart,
			DayEnd:    dayEnd,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		buffer := time.Duration(g.BufferMin) * time.Minute
		for _, b := range existing {
			if !b.HoldsTime() {
				continue
			}
			if b.StartAt.Before(endAt) && startAt.Before(b.EndAt.Add(buffer)) {
				return fmt.Errorf("%w: overlaps booking id=%d", ErrSlotTaken, b.ID)
			}
		}

		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			uc.logger.Warn("CreateHold: slot taken for groomer=%d at %s",
				req.GroomerID, startAt.Format(time.RFC3339))
			return nil, err
		}
		uc.logger.Error("CreateHold: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateHold: created hold id=%d, amount_due=%d, expires=%s",
		booking.ID, charge.AmountDueCents, holdExpiresAt.Format(time.RFC3339))

	resp := &Response{
		BookingID:      booking.ID,
		Status:         domain.StatusHold,
		StartAt:        startAt,
		EndAt:          endAt,
		DepositCents:   charge.DepositCents,
		TaxCents:       charge.TaxCents,
		AmountDueCents: charge.AmountDueCents,
		HoldExpiresAt:  holdExpiresAt,
	}

	// 8. Авторизуем депозит у платёжного провайдера
	auth, err := uc.payments.Authorize(ctx, payments.AuthorizeRequest{
		BookingID:   booking.ID,
		CustomerID:  req.CustomerID,
		AmountCents: charge.AmountDueCents,
		Description: fmt.Sprintf("Deposit for %s on %s", svc.Name, startAt.Format("2006-01-02 15:04")),
	})
	if err != nil {
		// Hold уже создан и истечёт сам, если оплата так и не пройдёт
		if errors.Is(err, payments.ErrPaymentDeclined) {
			uc.logger.Warn("CreateHold: authorization declined for booking id=%d: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: booking id=%d", ErrPaymentDeclined, booking.ID)
		}
		uc.logger.Error("CreateHold: authorization failed for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: booking id=%d", ErrPaymentUnavailable, booking.ID)
	}

	// 9. Сохраняем платёжный идентификатор - по нему придёт callback
	if err := uc.bookingRepo.SetPaymentRef(ctx, booking.ID, auth.PaymentRef); err != nil {
		uc.logger.Error("CreateHold: failed to set payment_ref for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to set payment ref: %v", ErrInternal, err)
	}

	resp.PaymentRef = auth.PaymentRef
	return resp, nil
}

// checkWorkingHours проверяет, что [startAt, endAt) целиком лежит в одном
// из рабочих диапазонов грумера на эту дату
func (uc *UseCase) checkWorkingHours(g *domain.Groomer, startAt, endAt time.Time) error {
	if g.IsBlackout(startAt) {
		return fmt.Errorf("%w: %s is a blackout date for groomer id=%d",
			ErrSlotUnavailable, startAt.Format(domain.DateFormat), g.ID)
	}

	for _, r := range g.RangesFor(startAt) {
		rangeStart, err := r.Start.OnDate(startAt, uc.cfg.Location)
		if err != nil {
			return fmt.Errorf("%w: bad schedule range for groomer id=%d: %v", ErrInternal, g.ID, err)
		}
		rangeEnd, err := r.End.OnDate(startAt, uc.cfg.Location)
		if err != nil {
			return fmt.Errorf("%w: bad schedule range for groomer id=%d: %v", ErrInternal, g.ID, err)
		}
		if !startAt.Before(rangeStart) && !endAt.After(rangeEnd) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s-%s is outside working hours of groomer id=%d",
		ErrSlotUnavailable, startAt.Format("15:04"), endAt.Format("15:04"), g.ID)
}

// dayBounds возвращает границы календарного дня [полночь, полночь+24ч)
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return dayStart, dayStart.AddDate(0, 0, 1)
}
