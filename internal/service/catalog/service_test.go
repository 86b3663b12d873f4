package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawtrim/booking-service/internal/domain"
	"github.com/pawtrim/booking-service/internal/service/catalog/models"
)

type fakeServiceRepo struct {
	services []*domain.Service
}

func (f *fakeServiceRepo) Create(_ context.Context, s *domain.Service) (*domain.Service, error) {
	s.ID = 1
	f.services = append(f.services, s)
	return s, nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return f.services[0], nil
}

func (f *fakeServiceRepo) ListActive(_ context.Context) ([]*domain.Service, error) {
	return f.services, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, _ int64, s *domain.Service) (*domain.Service, error) {
	return s, nil
}

type fakeGroomerRepo struct {
	groomers []*domain.Groomer
	created  *domain.Groomer
}

func (f *fakeGroomerRepo) Create(_ context.Context, g *domain.Groomer) (*domain.Groomer, error) {
	g.ID = 7
	f.created = g
	return g, nil
}

func (f *fakeGroomerRepo) GetByID(_ context.Context, _ int64) (*domain.Groomer, error) {
	return f.groomers[0], nil
}

func (f *fakeGroomerRepo) ListActive(_ context.Context) ([]*domain.Groomer, error) {
	return f.groomers, nil
}

func (f *fakeGroomerRepo) UpdateSchedule(_ context.Context, id int64, g *domain.Groomer) (*domain.Groomer, error) {
	g.ID = id
	return g, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(sr *fakeServiceRepo, gr *fakeGroomerRepo) *Service {
	return NewService(sr, gr, nopLogger{})
}

func TestCreateGroomer(t *testing.T) {
	gr := &fakeGroomerRepo{}
	svc := newTestService(&fakeServiceRepo{}, gr)

	req := &models.CreateGroomerRequest{
		DisplayName: "Anna",
		AutoConfirm: true,
		MinLeadMin:  120,
		BufferMin:   15,
		WeeklyHours: map[string][]models.TimeRangeDTO{
			"monday": {{Start: "09:00", End: "17:00"}},
		},
	}

	resp, err := svc.CreateGroomer(context.Background(), domain.RoleAdmin, req)
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.GroomerID)
	assert.Equal(t, "Anna", resp.DisplayName)
	assert.True(t, resp.Active)
	require.NotNil(t, gr.created)
	assert.True(t, gr.created.AutoConfirm)
	assert.Equal(t, 15, gr.created.BufferMin)
}

func TestCreateGroomer_AdminOnly(t *testing.T) {
	svc := newTestService(&fakeServiceRepo{}, &fakeGroomerRepo{})

	req := &models.CreateGroomerRequest{DisplayName: "Anna"}

	for _, role := range []domain.ActorRole{domain.RoleCustomer, domain.RoleGroomer} {
		_, err := svc.CreateGroomer(context.Background(), role, req)
		assert.ErrorIs(t, err, ErrAccessDenied, "role %s", role)
	}
}

func TestCreateGroomer_RejectsOffGridSchedule(t *testing.T) {
	gr := &fakeGroomerRepo{}
	svc := newTestService(&fakeServiceRepo{}, gr)

	req := &models.CreateGroomerRequest{
		DisplayName: "Anna",
		WeeklyHours: map[string][]models.TimeRangeDTO{
			"monday": {{Start: "09:10", End: "17:00"}},
		},
	}

	_, err := svc.CreateGroomer(context.Background(), domain.RoleAdmin, req)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, gr.created)
}

func TestListGroomers(t *testing.T) {
	gr := &fakeGroomerRepo{groomers: []*domain.Groomer{
		{ID: 7, DisplayName: "Anna", Active: true, AutoConfirm: true},
		{ID: 8, DisplayName: "Boris", Active: true},
	}}
	svc := newTestService(&fakeServiceRepo{}, gr)

	resp, err := svc.ListGroomers(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Groomers, 2)
	assert.Equal(t, int64(7), resp.Groomers[0].GroomerID)
	assert.Equal(t, "Anna", resp.Groomers[0].DisplayName)
	assert.True(t, resp.Groomers[0].AutoConfirm)
	assert.False(t, resp.Groomers[1].AutoConfirm)
}
