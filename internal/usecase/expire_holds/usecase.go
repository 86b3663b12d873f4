package expire_holds

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawtrim/booking-service/internal/domain"
	bookingRepo "github.com/pawtrim/booking-service/internal/infra/storage/booking"
)

// sweepBatchLimit максимальное количество hold-бронирований за один проход
const sweepBatchLimit = 500

// Result итоги одного прохода по истёкшим hold-бронированиям
type Result struct {
	Scanned int // найдено истёкших hold
	Expired int // переведено в canceled
	Skipped int // проиграли гонку (статус уже сменился)
}

// UseCase use case для отмены hold-бронирований с истёкшим сроком оплаты.
// Запускается по расписанию; слот освобождается, незахваченная авторизация
// средств снимается.
type UseCase struct {
	bookingRepo  BookingRepository
	payments     PaymentClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, payments PaymentClient, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		payments:     payments,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет один проход: находит hold с истёкшим hold_expires_at
// и отменяет их. Каждая отмена - compare-and-swap из hold: если платёж
// успел прийти и запись ушла из hold между выборкой и обновлением,
// запись пропускается.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()

	holds, err := uc.bookingRepo.GetExpiredHolds(ctx, now, sweepBatchLimit)
	if err != nil {
		uc.logger.Error("ExpireHolds: failed to get expired holds: %v", err)
		return nil, fmt.Errorf("%w: failed to get expired holds: %v", ErrInternal, err)
	}

	result := &Result{Scanned: len(holds)}
	if len(holds) == 0 {
		return result, nil
	}

	uc.logger.Info("ExpireHolds: found %d expired holds", len(holds))

	for _, b := range holds {
		audit := domain.AuditLine(now, domain.RoleSystem, "hold expired")
		err := uc.bookingRepo.UpdateStatusIf(ctx, b.ID,
			[]domain.BookingStatus{domain.StatusHold}, domain.StatusCanceled, audit)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) || errors.Is(err, bookingRepo.ErrBookingNotFound) {
				// Платёж пришёл между выборкой и отменой - hold уже ушёл дальше
				result.Skipped++
				continue
			}
			uc.logger.Error("ExpireHolds: failed to cancel booking id=%d: %v", b.ID, err)
			return result, fmt.Errorf("%w: failed to cancel booking id=%d: %v", ErrInternal, b.ID, err)
		}

		result.Expired++

		// Снимаем незахваченную авторизацию; ошибка не критична -
		// авторизация истечёт у провайдера сама
		if b.PaymentRef != nil {
			if err := uc.payments.Release(ctx, *b.PaymentRef); err != nil {
				uc.logger.Warn("ExpireHolds: failed to release authorization for booking id=%d: %v", b.ID, err)
			}
		}
	}

	uc.logger.Info("ExpireHolds: expired %d, skipped %d of %d", result.Expired, result.Skipped, result.Scanned)
	return result, nil
}
