package transition_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawtrim/booking-service/internal/domain"
	bookingRepo "github.com/pawtrim/booking-service/internal/infra/storage/booking"
)

// actionTransitions маппит действие персонала на ожидаемый исходный и
// целевой статусы. Каждый переход - compare-and-swap: если запись уже
// не в исходном статусе, действие отклоняется.
var actionTransitions = map[Action]struct {
	from domain.BookingStatus
	to   domain.BookingStatus
}{
	ActionApprove:  {from: domain.StatusAwaitingConfirmation, to: domain.StatusConfirmed},
	ActionComplete: {from: domain.StatusConfirmed, to: domain.StatusCompleted},
	ActionNoShow:   {from: domain.StatusConfirmed, to: domain.StatusNoShow},
}

// UseCase use case для переводов бронирования персоналом
type UseCase struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет действие персонала над бронированием:
// approve, complete (с опциональными чаевыми) или no_show.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionStatus: booking=%d, action=%s, actor=%d (%s)",
		req.BookingID, req.Action, req.ActorID, req.ActorRole)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionStatus: validation failed: %v", err)
		return nil, err
	}

	// 2. Переводы доступны только персоналу
	if !req.ActorRole.IsStaff() {
		return nil, fmt.Errorf("%w: role %s cannot perform %s", ErrAccessDenied, req.ActorRole, req.Action)
	}

	tr := actionTransitions[req.Action]

	// 3. Атомарный compare-and-swap перехода статуса
	audit := domain.AuditLine(uc.timeProvider.Now(), req.ActorRole, string(req.Action))
	err := uc.bookingRepo.UpdateStatusIf(ctx, req.BookingID,
		[]domain.BookingStatus{tr.from}, tr.to, audit)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, req.BookingID)
		}
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			uc.logger.Warn("TransitionStatus: booking id=%d not in %s, %s rejected",
				req.BookingID, tr.from, req.Action)
			return nil, fmt.Errorf("%w: %s requires status %s", ErrStatusConflict, req.Action, tr.from)
		}
		uc.logger.Error("TransitionStatus: failed to update booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	// 4. Чаевые добавляются при завершении визита
	if req.Action == ActionComplete && req.TipCents > 0 {
		if err := uc.bookingRepo.AddTip(ctx, req.BookingID, req.TipCents); err != nil {
			uc.logger.Error("TransitionStatus: failed to add tip for booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: failed to add tip: %v", ErrInternal, err)
		}
		uc.logger.Info("TransitionStatus: booking id=%d tip added: %d", req.BookingID, req.TipCents)
	}

	uc.logger.Info("TransitionStatus: booking id=%d -> %s", req.BookingID, tr.to)
	return &Response{BookingID: req.BookingID, Status: tr.to}, nil
}
