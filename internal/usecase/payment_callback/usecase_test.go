package payment_callback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawtrim/booking-service/internal/domain"
	bookingRepo "github.com/pawtrim/booking-service/internal/infra/storage/booking"
	"github.com/pawtrim/booking-service/internal/integrations/payments"
	"github.com/pawtrim/booking-service/pkg/ptr"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	getErr  error

	updatedTo   *domain.BookingStatus
	updatedFrom []domain.BookingStatus
	auditLine   string
	updateErr   error

	refundedID     int64
	refundedAmount int64
}

func (f *fakeBookingRepo) GetByPaymentRef(_ context.Context, _ string) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) UpdateStatusIf(_ context.Context, _ int64, from []domain.BookingStatus, to domain.BookingStatus, audit string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedFrom = from
	f.updatedTo = &to
	f.auditLine = audit
	f.booking.Status = to
	return nil
}

func (f *fakeBookingRepo) AddRefund(_ context.Context, id int64, amountCents int64) error {
	f.refundedID = id
	f.refundedAmount = amountCents
	return nil
}

type fakeGroomerRepo struct {
	groomer *domain.Groomer
}

func (f *fakeGroomerRepo) GetByID(_ context.Context, _ int64) (*domain.Groomer, error) {
	return f.groomer, nil
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

func holdBooking() *domain.Booking {
	return &domain.Booking{
		ID:         42,
		GroomerID:  7,
		Status:     domain.StatusHold,
		PaymentRef: ptr.Ptr("pi_test_1"),
	}
}

func newTestUseCase(b *fakeBookingRepo, g *fakeGroomerRepo, p *fakePayments) *UseCase {
	uc := NewUseCase(b, g, p, nopLogger{})
	uc.timeProvider = &fixedTime{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestOnPaymentCaptured_HoldBecomesAwaitingConfirmation(t *testing.T) {
	repo := &fakeBookingRepo{booking: holdBooking()}
	groomers := &fakeGroomerRepo{groomer: &domain.Groomer{ID: 7, AutoConfirm: false}}
	uc := newTestUseCase(repo, groomers, &fakePayments{})

	resp, err := uc.OnPaymentCaptured(context.Background(), &CapturedRequest{
		PaymentRef:  "pi_test_1",
		AmountCents: 2160,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAwaitingConfirmation, resp.Status)
	require.NotNil(t, repo.updatedTo)
	assert.Equal(t, domain.StatusAwaitingConfirmation, *repo.updatedTo)
	assert.Equal(t, []domain.BookingStatus{domain.StatusHold}, repo.updatedFrom)
	assert.Contains(t, repo.auditLine, "payment captured")
}

func TestOnPaymentCaptured_AutoConfirmSkipsReview(t *testing.T) {
	repo := &fakeBookingRepo{booking: holdBooking()}
	groomers := &fakeGroomerRepo{groomer: &domain.Groomer{ID: 7, AutoConfirm: true}}
	uc := newTestUseCase(repo, groomers, &fakePayments{})

	resp, err := uc.OnPaymentCaptured(context.Background(), &CapturedRequest{PaymentRef: "pi_test_1"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
}

func TestOnPaymentCaptured_RepeatDeliveryIsNoOp(t *testing.T) {
	b := holdBooking()
	b.Status = domain.StatusAwaitingConfirmation
	repo := &fakeBookingRepo{booking: b}
	uc := newTestUseCase(repo, &fakeGroomerRepo{}, &fakePayments{})

	resp, err := uc.OnPaymentCaptured(context.Background(), &CapturedRequest{PaymentRef: "pi_test_1"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAwaitingConfirmation, resp.Status)
	assert.Nil(t, repo.updatedTo, "repeat delivery must not touch the booking")
}

func TestOnPaymentCaptured_CanceledHoldGetsRefund(t *testing.T) {
	// Hold истёк до прихода уведомления - деньги нужно вернуть
	b := holdBooking()
	b.Status = domain.StatusCanceled
	repo := &fakeBookingRepo{booking: b}
	pay := &fakePayments{}
	uc := newTestUseCase(repo, &fakeGroomerRepo{}, pay)

	resp, err := uc.OnPaymentCaptured(context.Background(), &CapturedRequest{
		PaymentRef:  "pi_test_1",
		AmountCents: 2160,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCanceled, resp.Status)
	assert.Equal(t, []string{"pi_test_1"}, pay.refundedRefs)
	assert.Equal(t, int64(42), repo.refundedID)
	assert.Equal(t, int64(2160), repo.refundedAmount)
}

func TestOnPaymentCaptured_StatusRace(t *testing.T) {
	// Между чтением и CAS кто-то перевёл статус - уведомление считается
	// обработанным, возвращается актуальный статус
	repo := &fakeBookingRepo{booking: holdBooking(), updateErr: bookingRepo.ErrStatusConflict}
	groomers := &fakeGroomerRepo{groomer: &domain.Groomer{ID: 7}}
	uc := newTestUseCase(repo, groomers, &fakePayments{})

	resp, err := uc.OnPaymentCaptured(context.Background(), &CapturedRequest{PaymentRef: "pi_test_1"})
	require.NoError(t, err)
	assert.Equal(t, repo.booking.Status, resp.Status)
}

func TestOnPaymentCaptured_UnknownRef(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := newTestUseCase(repo, &fakeGroomerRepo{}, &fakePayments{})

	_, err := uc.OnPaymentCaptured(context.Background(), &CapturedRequest{PaymentRef: "pi_unknown"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestOnPaymentCaptured_RequiresPaymentRef(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeGroomerRepo{}, &fakePayments{})

	_, err := uc.OnPaymentCaptured(context.Background(), &CapturedRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.OnPaymentCaptured(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOnPaymentFailed_CancelsHoldAndReleasesAuth(t *testing.T) {
	repo := &fakeBookingRepo{booking: holdBooking()}
	pay := &fakePayments{}
	uc := newTestUseCase(repo, &fakeGroomerRepo{}, pay)

	resp, err := uc.OnPaymentFailed(context.Background(), &FailedRequest{
		PaymentRef: "pi_test_1",
		Reason:     "card_declined",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCanceled, resp.Status)
	require.NotNil(t, repo.updatedTo)
	assert.Equal(t, domain.StatusCanceled, *repo.updatedTo)
	assert.Contains(t, repo.auditLine, "payment failed")
	assert.Equal(t, []string{"pi_test_1"}, pay.releasedRefs)
}

func TestOnPaymentFailed_NonHoldIsNoOp(t *testing.T) {
	b := holdBooking()
	b.Status = domain.StatusConfirmed
	repo := &fakeBookingRepo{booking: b}
	pay := &fakePayments{}
	uc := newTestUseCase(repo, &fakeGroomerRepo{}, pay)

	resp, err := uc.OnPaymentFailed(context.Background(), &FailedRequest{PaymentRef: "pi_test_1"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Nil(t, repo.updatedTo)
	assert.Empty(t, pay.releasedRefs)
}
