package expire_holds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawtrim/booking-service/internal/domain"
	bookingRepo "github.com/pawtrim/booking-service/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	holds   []*domain.Booking
	getErr  error
	gotNow  time.Time
	gotLim  uint64

	canceledIDs []int64
	conflictIDs map[int64]bool
}

func (f *fakeBookingRepo) GetExpiredHolds(_ context.Context, now time.Time, limit uint64) ([]*domain.Booking, error) {
	f.gotNow = now
	f.gotLim = limit
	return f.holds, f.getErr
}

func (f *fakeBookingRepo) UpdateStatusIf(_ context.Context, id int64, _ []domain.BookingStatus, _ domain.BookingStatus, _ string) error {
	if f.conflictIDs[id] {
		return bookingRepo.ErrStatusConflict
	}
	f.canceledIDs = append(f.canceledIDs, id)
	return nil
}

type fakePayments struct {
	releasedRefs []string
	releaseErr   error
}

func (f *fakePayments) Release(_ context.Context, ref string) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.releasedRefs = append(f.releasedRefs, ref)
	return nil
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func ref(s string) *string { return &s }

func newTestUseCase(repo *fakeBookingRepo, pay *fakePayments) *UseCase {
	uc := NewUseCase(repo, pay, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func TestExecute_CancelsExpiredHolds(t *testing.T) {
	repo := &fakeBookingRepo{holds: []*domain.Booking{
		{ID: 1, Status: domain.StatusHold, PaymentRef: ref("pi_1")},
		{ID: 2, Status: domain.StatusHold}, // авторизация так и не прошла
		{ID: 3, Status: domain.StatusHold, PaymentRef: ref("pi_3")},
	}}
	pay := &fakePayments{}
	uc := newTestUseCase(repo, pay)

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Scanned)
	assert.Equal(t, 3, result.Expired)
	assert.Zero(t, result.Skipped)
	assert.Equal(t, []int64{1, 2, 3}, repo.canceledIDs)

	// Авторизация снимается только там, где она есть
	assert.Equal(t, []string{"pi_1", "pi_3"}, pay.releasedRefs)

	assert.Equal(t, testNow, repo.gotNow)
	assert.Equal(t, uint64(sweepBatchLimit), repo.gotLim)
}

func TestExecute_SkipsHoldsThatLostTheRace(t *testing.T) {
	// Платёж по id=2 пришёл между выборкой и отменой
	repo := &fakeBookingRepo{
		holds: []*domain.Booking{
			{ID: 1, Status: domain.StatusHold},
			{ID: 2, Status: domain.StatusHold, PaymentRef: ref("pi_2")},
		},
		conflictIDs: map[int64]bool{2: true},
	}
	pay := &fakePayments{}
	uc := newTestUseCase(repo, pay)

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 1, result.Expired)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []int64{1}, repo.canceledIDs)
	assert.Empty(t, pay.releasedRefs, "no release for the hold that got paid")
}

func TestExecute_NothingToExpire(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakePayments{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Scanned)
	assert.Zero(t, result.Expired)
}

func TestExecute_ReleaseFailureIsNotFatal(t *testing.T) {
	repo := &fakeBookingRepo{holds: []*domain.Booking{
		{ID: 1, Status: domain.StatusHold, PaymentRef: ref("pi_1")},
	}}
	pay := &fakePayments{releaseErr: errors.New("stripe is down")}
	uc := newTestUseCase(repo, pay)

	result, err := uc.Execute(context.Background())
	require.NoError(t, err, "release failure must not fail the sweep")
	assert.Equal(t, 1, result.Expired)
}

func TestExecute_RepoFailure(t *testing.T) {
	repo := &fakeBookingRepo{getErr: errors.New("connection refused")}
	uc := newTestUseCase(repo, &fakePayments{})

	_, err := uc.Execute(context.Background())
	require.ErrorIs(t, err, ErrInternal)
}
