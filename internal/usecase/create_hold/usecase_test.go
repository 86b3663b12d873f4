package create_hold

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawtrim/booking-service/internal/domain"
	groomerRepo "github.com/pawtrim/booking-service/internal/infra/storage/groomer"
	serviceRepo "github.com/pawtrim/booking-service/internal/infra/storage/service"
	"github.com/pawtrim/booking-service/internal/integrations/payments"
	"github.com/pawtrim/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	existing []*domain.Booking

	created      *domain.Booking
	createErr    error
	paymentRefID int64
	paymentRef   string
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b.ID = 42
	f.created = b
	return b, nil
}

func (f *fakeBookingRepo) GetForGroomerDay(_ context.Context, _ domain.GroomerDayFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

func (f *fakeBookingRepo) SetPaymentRef(_ context.Context, id int64, ref string) error {
	f.paymentRefID = id
	f.paymentRef = ref
	return nil
}

type fakeGroomerRepo struct {
	groomer *domain.Groomer
	err     error
}

func (f *fakeGroomerRepo) GetByID(_ context.Context, _ int64) (*domain.Groomer, error) {
	return f.groomer, f.err
}

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return f.service, f.err
}

type fakePayments struct {
	auth     *payments.Authorization
	err      error
	requests []payments.AuthorizeRequest
}

func (f *fakePayments) Authorize(_ context.Context, req payments.AuthorizeRequest) (*payments.Authorization, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.auth, nil
}

type inlineTxManager struct{ calls int }

func (m *inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pct(v float64) *float64 { return &v }

func mustRange(t *testing.T, start, end string) domain.TimeRange {
	t.Helper()
	s, err := types.NewTimeStringFromString(start)
	require.NoError(t, err)
	e, err := types.NewTimeStringFromString(end)
	require.NoError(t, err)
	return domain.TimeRange{Start: s, End: e}
}

type fixture struct {
	bookings *fakeBookingRepo
	groomers *fakeGroomerRepo
	services *fakeServiceRepo
	payments *fakePayments
	tx       *inlineTxManager
	uc       *UseCase
}

// 2026-03-10 - вторник; "сейчас" - утро того же дня
var (
	testNow   = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	testStart = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		bookings: &fakeBookingRepo{},
		groomers: &fakeGroomerRepo{groomer: &domain.Groomer{
			ID:         7,
			Active:     true,
			MinLeadMin: 60,
			BufferMin:  10,
			WeeklyHours: domain.WeeklyHours{
				"tuesday": {mustRange(t, "09:00", "18:00")},
			},
		}},
		services: &fakeServiceRepo{service: &domain.Service{
			ID:              1,
			Name:            "Full Groom",
			Active:          true,
			DurationMinutes: 60,
			BasePriceCents:  10000,
			DepositPercent:  pct(0.2),
			TaxRate:         pct(0.08),
		}},
		payments: &fakePayments{auth: &payments.Authorization{PaymentRef: "pi_test_1", Status: "requires_capture"}},
		tx:       &inlineTxManager{},
	}

	cfg := Config{
		HoldTTLMinutes:        30,
		DefaultDepositPercent: 0.2,
		DefaultTaxRate:        0.08,
		Location:              time.UTC,
	}

	f.uc = NewUseCase(f.bookings, f.groomers, f.services, f.payments, f.tx, cfg, nopLogger{})
	f.uc.timeProvider = &fixedTime{now: testNow}
	return f
}

func validRequest() *Request {
	return &Request{
		CustomerID: 100,
		GroomerID:  7,
		ServiceID:  1,
		StartAt:    testStart,
	}
}

func TestExecute_CreatesHoldAndAuthorizesDeposit(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, f.tx.calls, "create must run inside a transaction")
	require.NotNil(t, f.bookings.created)
	assert.Equal(t, domain.StatusHold, f.bookings.created.Status)
	assert.Equal(t, testStart, f.bookings.created.StartAt)
	assert.Equal(t, testStart.Add(time.Hour), f.bookings.created.EndAt)

	// 20% от 10000 = 2000, налог 8% от депозита = 160
	assert.Equal(t, int64(2000), resp.DepositCents)
	assert.Equal(t, int64(160), resp.TaxCents)
	assert.Equal(t, int64(2160), resp.AmountDueCents)
	assert.Equal(t, testNow.Add(30*time.Minute), resp.HoldExpiresAt)

	require.Len(t, f.payments.requests, 1)
	assert.Equal(t, int64(2160), f.payments.requests[0].AmountCents)
	assert.Equal(t, "pi_test_1", resp.PaymentRef)
	assert.Equal(t, int64(42), f.bookings.paymentRefID)
	assert.Equal(t, "pi_test_1", f.bookings.paymentRef)
}

func TestExecute_SlotTakenInsideTransaction(t *testing.T) {
	f := newFixture(t)
	f.bookings.existing = []*domain.Booking{{
		ID:      5,
		Status:  domain.StatusConfirmed,
		StartAt: testStart.Add(-30 * time.Minute),
		EndAt:   testStart.Add(30 * time.Minute),
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, f.bookings.created)
	assert.Empty(t, f.payments.requests, "no authorization when slot is taken")
}

func TestExecute_BufferMakesAdjacentSlotTaken(t *testing.T) {
	f := newFixture(t)
	// Запись встык кончается ровно в 10:00, но буфер 10 минут её продлевает
	f.bookings.existing = []*domain.Booking{{
		ID:      5,
		Status:  domain.StatusConfirmed,
		StartAt: testStart.Add(-time.Hour),
		EndAt:   testStart,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_CanceledBookingDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.bookings.existing = []*domain.Booking{{
		ID:      5,
		Status:  domain.StatusCanceled,
		StartAt: testStart,
		EndAt:   testStart.Add(time.Hour),
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_LeadTimeViolation(t *testing.T) {
	f := newFixture(t)
	f.groomers.groomer.MinLeadMin = 180 // до 10:00 осталось только 2 часа

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrLeadTimeViolation)
	assert.Nil(t, f.bookings.created)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	f := newFixture(t)

	// Услуга кончалась бы в 18:30, рабочий день - до 18:00
	req := validRequest()
	req.StartAt = time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_BlackoutDate(t *testing.T) {
	f := newFixture(t)
	f.groomers.groomer.BlackoutDates = []string{"2026-03-10"}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_UnknownServiceOrGroomer(t *testing.T) {
	f := newFixture(t)
	f.services.service = nil
	f.services.err = serviceRepo.ErrServiceNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrServiceNotFound)

	f = newFixture(t)
	f.groomers.groomer = nil
	f.groomers.err = groomerRepo.ErrGroomerNotFound

	_, err = f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrGroomerNotFound)
}

func TestExecute_PaymentDeclinedKeepsHold(t *testing.T) {
	f := newFixture(t)
	f.payments.auth = nil
	f.payments.err = payments.ErrPaymentDeclined

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrPaymentDeclined)

	// Hold создан и останется до истечения срока
	require.NotNil(t, f.bookings.created)
	assert.Equal(t, domain.StatusHold, f.bookings.created.Status)
	assert.Empty(t, f.bookings.paymentRef)
}

func TestExecute_PaymentProviderDown(t *testing.T) {
	f := newFixture(t)
	f.payments.auth = nil
	f.payments.err = payments.ErrUnavailable

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrPaymentUnavailable)
	require.NotNil(t, f.bookings.created)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name string
		mut  func(r *Request)
	}{
		{"zero customer", func(r *Request) { r.CustomerID = 0 }},
		{"zero groomer", func(r *Request) { r.GroomerID = 0 }},
		{"negative service", func(r *Request) { r.ServiceID = -1 }},
		{"zero start", func(r *Request) { r.StartAt = time.Time{} }},
		{"off-grid start", func(r *Request) {
			r.StartAt = time.Date(2026, 3, 10, 10, 7, 0, 0, time.UTC)
		}},
		{"non-zero seconds", func(r *Request) {
			r.StartAt = time.Date(2026, 3, 10, 10, 0, 30, 0, time.UTC)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mut(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}

	assert.NoError(t, validateRequest(validRequest()))
}
