package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawtrim/booking-service/internal/domain"
	bookingRepo "github.com/pawtrim/booking-service/internal/infra/storage/booking"
)

// Config параметры политики отмены
type Config struct {
	CancellationWindowHours int
}

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	payments     PaymentClient
	timeProvider TimeProvider
	cfg          Config
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	payments PaymentClient,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		payments:     payments,
		timeProvider: &RealTimeProvider{},
		cfg:          cfg,
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования.
//
// Клиент может отменять только свои записи и только пока до начала визита
// остаётся больше окна отмены; персонал и админ отменяют без ограничений.
// Захваченные средства возвращаются за вычетом уже возвращённого; провал
// возврата НЕ блокирует отмену - запись отменяется, возврат помечается
// как отложенный.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, actor=%d (%s)", req.BookingID, req.ActorID, req.ActorRole)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	b, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, req.BookingID)
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Проверка прав: клиент отменяет только свои записи
	if req.ActorRole == domain.RoleCustomer && b.CustomerID != req.ActorID {
		uc.logger.Warn("CancelBooking: customer id=%d tried to cancel foreign booking id=%d",
			req.ActorID, req.BookingID)
		return nil, fmt.Errorf("%w: booking id=%d belongs to another customer", ErrAccessDenied, req.BookingID)
	}

	// 4. Терминальные статусы отменять нельзя
	if !domain.CanTransition(b.Status, domain.StatusCanceled) {
		return nil, fmt.Errorf("%w: current status is %s", ErrStatusConflict, b.Status)
	}

	// 5. Окно отмены - только для клиентов, персонал не ограничен
	now := uc.timeProvider.Now()
	if req.ActorRole == domain.RoleCustomer {
		window := time.Duration(uc.cfg.CancellationWindowHours) * time.Hour
		if b.StartAt.Sub(now) < window {
			uc.logger.Warn("CancelBooking: booking id=%d inside cancellation window (%dh)",
				req.BookingID, uc.cfg.CancellationWindowHours)
			return nil, fmt.Errorf("%w: less than %d hours before start",
				ErrCancellationWindow, uc.cfg.CancellationWindowHours)
		}
	}

	// 6. Атомарный переход в canceled из фактического статуса -
	// конкурентная отмена или переход поймаются здесь
	reason := req.Reason
	if reason == "" {
		reason = "canceled"
	}
	audit := domain.AuditLine(now, req.ActorRole, reason)

	err = uc.bookingRepo.UpdateStatusIf(ctx, req.BookingID,
		[]domain.BookingStatus{b.Status}, domain.StatusCanceled, audit)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			return nil, fmt.Errorf("%w: status changed concurrently", ErrStatusConflict)
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, req.BookingID)
		}
		uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	resp := &Response{
		BookingID: req.BookingID,
		Status:    domain.StatusCanceled,
	}

	// 7. Деньги. Для неоплаченного hold - снимаем авторизацию, для
	// оплаченного бронирования - возвращаем захваченное за вычетом уже
	// возвращённого.
	if b.PaymentRef == nil {
		uc.logger.Info("CancelBooking: booking id=%d canceled, no payment attached", req.BookingID)
		return resp, nil
	}

	if b.Status == domain.StatusHold {
		if err := uc.payments.Release(ctx, *b.PaymentRef); err != nil {
			// Авторизация истечёт у провайдера сама
			uc.logger.Warn("CancelBooking: failed to release authorization for booking id=%d: %v",
				req.BookingID, err)
		}
		return resp, nil
	}

	toRefund := b.CapturedCents()
	if toRefund <= 0 {
		return resp, nil
	}

	if _, err := uc.payments.Refund(ctx, *b.PaymentRef, toRefund); err != nil {
		uc.logger.Error("CancelBooking: refund of %d failed for booking id=%d: %v",
			toRefund, req.BookingID, err)
		resp.RefundPending = true
		return resp, nil
	}

	if err := uc.bookingRepo.AddRefund(ctx, req.BookingID, toRefund); err != nil {
		uc.logger.Error("CancelBooking: failed to record refund for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to record refund: %v", ErrInternal, err)
	}

	resp.RefundedCents = toRefund
	uc.logger.Info("CancelBooking: booking id=%d canceled, refunded %d", req.BookingID, toRefund)
	return resp, nil
}
