package cancel_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawtrim/booking-service/internal/domain"
	bookingRepo "github.com/pawtrim/booking-service/internal/infra/storage/booking"
	"github.com/pawtrim/booking-service/internal/integrations/payments"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	getErr  error

	updatedTo *domain.BookingStatus
	auditLine string
	updateErr error

	refundedAmount int64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) UpdateStatusIf(_ context.Context, _ int64, _ []domain.BookingStatus, to domain.BookingStatus, audit string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedTo = &to
	f.auditLine = audit
	return nil
}

func (f *fakeBookingRepo) AddRefund(_ context.Context, _ int64, amountCents int64) error {
	f.refundedAmount = amountCents
	return nil
}

type fakePayments struct {
	releasedRefs []string
	refundedRefs []string
	refundErr    error
}

func (f *fakePayments) Release(_ context.Context, ref string) error {
	f.releasedRefs = append(f.releasedRefs, ref)
	return nil
}

func (f *fakePayments) Refund(_ context.Context, ref string, amountCents int64) (*payments.RefundResult, error) {
	if f.refundErr != nil {
		return nil, f.refundErr
	}
	f.refundedRefs = append(f.refundedRefs, ref)
	return &payments.RefundResult{RefundRef: "re_1", AmountCents: amountCents}, nil
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func ref(s string) *string { return &s }

func confirmedBooking(startIn time.Duration) *domain.Booking {
	return &domain.Booking{
		ID:           42,
		CustomerID:   100,
		Status:       domain.StatusConfirmed,
		StartAt:      testNow.Add(startIn),
		EndAt:        testNow.Add(startIn + time.Hour),
		DepositCents: 2000,
		TaxCents:     160,
		PaymentRef:   ref("pi_test_1"),
	}
}

func newTestUseCase(repo *fakeBookingRepo, pay *fakePayments) *UseCase {
	uc := NewUseCase(repo, pay, Config{CancellationWindowHours: 24}, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func TestExecute_CustomerCancelsOutsideWindow(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking(25 * time.Hour)}
	pay := &fakePayments{}
	uc := newTestUseCase(repo, pay)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		ActorID:   100,
		ActorRole: domain.RoleCustomer,
		Reason:    "schedule conflict",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCanceled, resp.Status)
	require.NotNil(t, repo.updatedTo)
	assert.Equal(t, domain.StatusCanceled, *repo.updatedTo)
	assert.Contains(t, repo.auditLine, "schedule conflict")

	// Возвращается всё захваченное: депозит + налог
	assert.Equal(t, []string{"pi_test_1"}, pay.refundedRefs)
	assert.Equal(t, int64(2160), resp.RefundedCents)
	assert.Equal(t, int64(2160), repo.refundedAmount)
	assert.False(t, resp.RefundPending)
}

func TestExecute_CustomerInsideWindowIsRejected(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking(23 * time.Hour)}
	uc := newTestUseCase(repo, &fakePayments{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		ActorID:   100,
		ActorRole: domain.RoleCustomer,
	})
	require.ErrorIs(t, err, ErrCancellationWindow)
	assert.Nil(t, repo.updatedTo)
}

func TestExecute_StaffIgnoresWindow(t *testing.T) {
	// Грумер отменяет за минуту до начала - окно на персонал не действует
	repo := &fakeBookingRepo{booking: confirmedBooking(time.Minute)}
	pay := &fakePayments{}
	uc := newTestUseCase(repo, pay)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		ActorID:   7,
		ActorRole: domain.RoleGroomer,
		Reason:    "groomer sick",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, resp.Status)
	assert.Equal(t, int64(2160), resp.RefundedCents)
}

func TestExecute_CustomerCannotCancelForeignBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking(48 * time.Hour)}
	uc := newTestUseCase(repo, &fakePayments{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		ActorID:   200, // чужая запись
		ActorRole: domain.RoleCustomer,
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_TerminalStatusConflict(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusCompleted, domain.StatusNoShow, domain.StatusCanceled,
	} {
		b := confirmedBooking(48 * time.Hour)
		b.Status = status
		repo := &fakeBookingRepo{booking: b}
		uc := newTestUseCase(repo, &fakePayments{})

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 42,
			ActorID:   1,
			ActorRole: domain.RoleAdmin,
		})
		assert.ErrorIs(t, err, ErrStatusConflict, "status %s", status)
	}
}

func TestExecute_ConcurrentCancelMapsToConflict(t *testing.T) {
	repo := &fakeBookingRepo{
		booking:   confirmedBooking(48 * time.Hour),
		updateErr: bookingRepo.ErrStatusConflict,
	}
	uc := newTestUseCase(repo, &fakePayments{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		ActorID:   1,
		ActorRole: domain.RoleAdmin,
	})
	require.ErrorIs(t, err, ErrStatusConflict)
}

func TestExecute_UnpaidHoldReleasesAuthorization(t *testing.T) {
	b := confirmedBooking(48 * time.Hour)
	b.Status = domain.StatusHold
	repo := &fakeBookingRepo{booking: b}
	pay := &fakePayments{}
	uc := newTestUseCase(repo, pay)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		ActorID:   100,
		ActorRole: domain.RoleCustomer,
	})
	require.NoError(t, err)

	// Деньги не захвачены - снимается авторизация, возврата нет
	assert.Equal(t, []string{"pi_test_1"}, pay.releasedRefs)
	assert.Empty(t, pay.refundedRefs)
	assert.Zero(t, resp.RefundedCents)
}

func TestExecute_NoPaymentAttached(t *testing.T) {
	b := confirmedBooking(48 * time.Hour)
	b.PaymentRef = nil
	repo := &fakeBookingRepo{booking: b}
	pay := &fakePayments{}
	uc := newTestUseCase(repo, pay)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		ActorID:   100,
		ActorRole: domain.RoleCustomer,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, resp.Status)
	assert.Empty(t, pay.releasedRefs)
	assert.Empty(t, pay.refundedRefs)
}

func TestExecute_RefundFailureDoesNotBlockCancellation(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking(48 * time.Hour)}
	pay := &fakePayments{refundErr: errors.New("stripe is down")}
	uc := newTestUseCase(repo, pay)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		ActorID:   100,
		ActorRole: domain.RoleCustomer,
	})
	require.NoError(t, err, "cancellation must succeed even when refund fails")

	assert.Equal(t, domain.StatusCanceled, resp.Status)
	assert.True(t, resp.RefundPending)
	assert.Zero(t, resp.RefundedCents)
}

func TestExecute_RefundAccountsForPriorRefunds(t *testing.T) {
	b := confirmedBooking(48 * time.Hour)
	b.RefundedCents = 160 // часть уже вернули раньше
	repo := &fakeBookingRepo{booking: b}
	pay := &fakePayments{}
	uc := newTestUseCase(repo, pay)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		ActorID:   100,
		ActorRole: domain.RoleCustomer,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), resp.RefundedCents)
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := newTestUseCase(repo, &fakePayments{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 404,
		ActorID:   1,
		ActorRole: domain.RoleAdmin,
	})
	require.ErrorIs(t, err, ErrBookingNotFound)
}
