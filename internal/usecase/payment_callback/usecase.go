package payment_callback

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawtrim/booking-service/internal/domain"
	bookingRepo "github.com/pawtrim/booking-service/internal/infra/storage/booking"
)

// UseCase use case для обработки уведомлений платёжного провайдера.
// Провайдер доставляет уведомления "минимум один раз", поэтому обе
// операции идемпотентны: повторное уведомление - безопасный no-op.
type UseCase struct {
	bookingRepo  BookingRepository
	groomerRepo  GroomerRepository
	payments     PaymentClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	groomerRepo GroomerRepository,
	payments PaymentClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		groomerRepo:  groomerRepo,
		payments:     payments,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// OnPaymentCaptured обрабатывает успешный захват средств по бронированию.
// Hold переходит в confirmed либо awaiting_confirmation - в зависимости от
// флага auto_confirm грумера. Если hold уже отменён (истёк до прихода
// уведомления), захваченные средства возвращаются.
func (uc *UseCase) OnPaymentCaptured(ctx context.Context, req *CapturedRequest) (*Response, error) {
	if req == nil || req.PaymentRef == "" {
		return nil, fmt.Errorf("%w: payment_ref is required", ErrInvalidInput)
	}

	uc.logger.Info("OnPaymentCaptured: ref=%s, amount=%d", req.PaymentRef, req.AmountCents)

	b, err := uc.bookingRepo.GetByPaymentRef(ctx, req.PaymentRef)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: ref=%s", ErrBookingNotFound, req.PaymentRef)
		}
		uc.logger.Error("OnPaymentCaptured: failed to get booking by ref=%s: %v", req.PaymentRef, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	switch b.Status {
	case domain.StatusHold:
		// Обычный путь - продвигаем hold дальше по жизненному циклу

	case domain.StatusCanceled:
		// Hold истёк или был отменён до прихода уведомления - деньги
		// захвачены за несуществующую запись, возвращаем их
		uc.logger.Warn("OnPaymentCaptured: booking id=%d already canceled, refunding %d", b.ID, req.AmountCents)
		if _, err := uc.payments.Refund(ctx, req.PaymentRef, req.AmountCents); err != nil {
			uc.logger.Error("OnPaymentCaptured: refund failed for booking id=%d: %v", b.ID, err)
			return nil, fmt.Errorf("%w: refund for canceled booking: %v", ErrInternal, err)
		}
		if err := uc.bookingRepo.AddRefund(ctx, b.ID, req.AmountCents); err != nil {
			uc.logger.Error("OnPaymentCaptured: failed to record refund for booking id=%d: %v", b.ID, err)
			return nil, fmt.Errorf("%w: failed to record refund: %v", ErrInternal, err)
		}
		return &Response{BookingID: b.ID, Status: b.Status}, nil

	default:
		// Повторная доставка уведомления - бронирование уже оплачено
		uc.logger.Info("OnPaymentCaptured: booking id=%d already in status %s, no-op", b.ID, b.Status)
		return &Response{BookingID: b.ID, Status: b.Status}, nil
	}

	target := domain.StatusAwaitingConfirmation
	g, err := uc.groomerRepo.GetByID(ctx, b.GroomerID)
	if err != nil {
		uc.logger.Error("OnPaymentCaptured: failed to get groomer id=%d: %v", b.GroomerID, err)
		return nil, fmt.Errorf("%w: failed to get groomer: %v", ErrInternal, err)
	}
	if g.AutoConfirm {
		target = domain.StatusConfirmed
	}

	audit := domain.AuditLine(uc.timeProvider.Now(), domain.RoleSystem,
		fmt.Sprintf("payment captured (ref=%s, receipt=%s)", req.PaymentRef, req.ReceiptRef))

	err = uc.bookingRepo.UpdateStatusIf(ctx, b.ID, []domain.BookingStatus{domain.StatusHold}, target, audit)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// Кто-то успел перевести статус между чтением и записью -
			// считаем уведомление обработанным
			uc.logger.Info("OnPaymentCaptured: booking id=%d changed status concurrently, no-op", b.ID)
			current, gErr := uc.bookingRepo.GetByPaymentRef(ctx, req.PaymentRef)
			if gErr != nil {
				return nil, fmt.Errorf("%w: failed to re-read booking: %v", ErrInternal, gErr)
			}
			return &Response{BookingID: current.ID, Status: current.Status}, nil
		}
		uc.logger.Error("OnPaymentCaptured: failed to update status for booking id=%d: %v", b.ID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	uc.logger.Info("OnPaymentCaptured: booking id=%d -> %s", b.ID, target)
	return &Response{BookingID: b.ID, Status: target}, nil
}

// OnPaymentFailed обрабатывает неуспешный платёж: hold отменяется, слот
// освобождается сразу, не дожидаясь истечения hold_expires_at.
func (uc *UseCase) OnPaymentFailed(ctx context.Context, req *FailedRequest) (*Response, error) {
	if req == nil || req.PaymentRef == "" {
		return nil, fmt.Errorf("%w: payment_ref is required", ErrInvalidInput)
	}

	uc.logger.Info("OnPaymentFailed: ref=%s, reason=%s", req.PaymentRef, req.Reason)

	b, err := uc.bookingRepo.GetByPaymentRef(ctx, req.PaymentRef)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: ref=%s", ErrBookingNotFound, req.PaymentRef)
		}
		uc.logger.Error("OnPaymentFailed: failed to get booking by ref=%s: %v", req.PaymentRef, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if b.Status != domain.StatusHold {
		// Уведомление о провале после того, как бронирование ушло из hold
		// (повтор или гонка с captured) - ничего не делаем
		uc.logger.Info("OnPaymentFailed: booking id=%d in status %s, no-op", b.ID, b.Status)
		return &Response{BookingID: b.ID, Status: b.Status}, nil
	}

	audit := domain.AuditLine(uc.timeProvider.Now(), domain.RoleSystem,
		fmt.Sprintf("payment failed (%s), hold canceled", req.Reason))

	err = uc.bookingRepo.UpdateStatusIf(ctx, b.ID,
		[]domain.BookingStatus{domain.StatusHold}, domain.StatusCanceled, audit)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			uc.logger.Info("OnPaymentFailed: booking id=%d changed status concurrently, no-op", b.ID)
			current, gErr := uc.bookingRepo.GetByPaymentRef(ctx, req.PaymentRef)
			if gErr != nil {
				return nil, fmt.Errorf("%w: failed to re-read booking: %v", ErrInternal, gErr)
			}
			return &Response{BookingID: current.ID, Status: current.Status}, nil
		}
		uc.logger.Error("OnPaymentFailed: failed to cancel booking id=%d: %v", b.ID, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	// Снимаем авторизацию средств; ошибка здесь не критична - авторизация
	// истечёт у провайдера сама
	if err := uc.payments.Release(ctx, req.PaymentRef); err != nil {
		uc.logger.Warn("OnPaymentFailed: failed to release authorization ref=%s: %v", req.PaymentRef, err)
	}

	uc.logger.Info("OnPaymentFailed: booking id=%d -> %s", b.ID, domain.StatusCanceled)
	return &Response{BookingID: b.ID, Status: domain.StatusCanceled}, nil
}
