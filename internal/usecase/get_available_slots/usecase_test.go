package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawtrim/booking-service/internal/domain"
	groomerRepo "github.com/pawtrim/booking-service/internal/infra/storage/groomer"
	serviceRepo "github.com/pawtrim/booking-service/internal/infra/storage/service"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetForGroomerDay(_ context.Context, _ domain.GroomerDayFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
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

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeService() *domain.Service {
	return &domain.Service{
		ID:              1,
		Name:            "Full Groom",
		Active:          true,
		DurationMinutes: 60,
		BasePriceCents:  10000,
	}
}

func activeGroomer(t *testing.T) *domain.Groomer {
	t.Helper()
	return &domain.Groomer{
		ID:     7,
		Active: true,
		WeeklyHours: domain.WeeklyHours{
			"tuesday": {mustRange(t, "09:00", "12:00")},
		},
	}
}

func newTestUseCase(b BookingRepository, g GroomerRepository, s ServiceRepository, now time.Time) *UseCase {
	uc := NewUseCase(b, g, s, time.UTC, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestExecute_ReturnsSlots(t *testing.T) {
	// 2026-03-10 - вторник
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := date.Add(-24 * time.Hour)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeGroomerRepo{groomer: activeGroomer(t)},
		&fakeServiceRepo{service: activeService()},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{GroomerID: 7, ServiceID: 1, Date: date})
	require.NoError(t, err)

	// 60-минутная услуга в 09:00-12:00: старты 09:00..11:00
	require.Len(t, resp.Slots, 9)
	assert.Equal(t, at(date, 9, 0), resp.Slots[0].StartAt)
	assert.Equal(t, at(date, 11, 0), resp.Slots[8].StartAt)
}

func TestExecute_UnknownServiceGivesEmptyResponse(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeGroomerRepo{groomer: activeGroomer(t)},
		&fakeServiceRepo{err: serviceRepo.ErrServiceNotFound},
		date,
	)

	resp, err := uc.Execute(context.Background(), &Request{GroomerID: 7, ServiceID: 99, Date: date})
	require.NoError(t, err, "unknown service is an empty result, not an error")
	assert.Empty(t, resp.Slots)
}

func TestExecute_UnknownGroomerGivesEmptyResponse(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeGroomerRepo{err: groomerRepo.ErrGroomerNotFound},
		&fakeServiceRepo{service: activeService()},
		date,
	)

	resp, err := uc.Execute(context.Background(), &Request{GroomerID: 99, ServiceID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_InactiveServiceOrGroomerGivesEmptyResponse(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	inactiveSvc := activeService()
	inactiveSvc.Active = false

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeGroomerRepo{groomer: activeGroomer(t)},
		&fakeServiceRepo{service: inactiveSvc},
		date,
	)
	resp, err := uc.Execute(context.Background(), &Request{GroomerID: 7, ServiceID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)

	inactiveGroomer := activeGroomer(t)
	inactiveGroomer.Active = false

	uc = newTestUseCase(
		&fakeBookingRepo{},
		&fakeGroomerRepo{groomer: inactiveGroomer},
		&fakeServiceRepo{service: activeService()},
		date,
	)
	resp, err = uc.Execute(context.Background(), &Request{GroomerID: 7, ServiceID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BlackoutDateGivesEmptyResponse(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	g := activeGroomer(t)
	g.BlackoutDates = []string{"2026-03-10"}

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeGroomerRepo{groomer: g},
		&fakeServiceRepo{service: activeService()},
		date,
	)

	resp, err := uc.Execute(context.Background(), &Request{GroomerID: 7, ServiceID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DayOffGivesEmptyResponse(t *testing.T) {
	// 2026-03-11 - среда, расписание задано только на вторник
	date := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeGroomerRepo{groomer: activeGroomer(t)},
		&fakeServiceRepo{service: activeService()},
		date,
	)

	resp, err := uc.Execute(context.Background(), &Request{GroomerID: 7, ServiceID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BookingsExcludeSlots(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := date.Add(-24 * time.Hour)

	bookings := []*domain.Booking{
		{Status: domain.StatusConfirmed, StartAt: at(date, 9, 0), EndAt: at(date, 10, 0)},
	}

	uc := newTestUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeGroomerRepo{groomer: activeGroomer(t)},
		&fakeServiceRepo{service: activeService()},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{GroomerID: 7, ServiceID: 1, Date: date})
	require.NoError(t, err)

	// Занято 09:00-10:00, услуга 60 минут: остаются 10:00, 10:15, ..., 11:00
	require.Len(t, resp.Slots, 5)
	assert.Equal(t, at(date, 10, 0), resp.Slots[0].StartAt)
}

func TestExecute_ValidatesInput(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeGroomerRepo{groomer: activeGroomer(t)},
		&fakeServiceRepo{service: activeService()},
		date,
	)

	_, err := uc.Execute(context.Background(), &Request{GroomerID: 0, ServiceID: 1, Date: date})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{GroomerID: 7, ServiceID: -1, Date: date})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{GroomerID: 7, ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
