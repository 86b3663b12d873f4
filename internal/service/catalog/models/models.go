package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/pawtrim/booking-service/internal/domain"
	"github.com/pawtrim/booking-service/pkg/types"
)

var (
	// ErrInvalidSchedule возвращается при некорректном расписании
	ErrInvalidSchedule = errors.New("invalid schedule")
)

// weekdays допустимые ключи недельного расписания
var weekdays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	BasePriceCents  int64    `json:"basePriceCents"`
	DepositPercent  *float64 `json:"depositPercent,omitempty"`
	TaxRate         *float64 `json:"taxRate,omitempty"`
}

// Validate проверяет корректность запроса на создание услуги
func (r *CreateServiceRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.DurationMinutes <= 0 {
		return fmt.Errorf("durationMinutes must be positive, got %d", r.DurationMinutes)
	}
	if r.DurationMinutes%domain.SlotGranularityMinutes != 0 {
		return fmt.Errorf("durationMinutes must be a multiple of %d", domain.SlotGranularityMinutes)
	}
	if r.BasePriceCents <= 0 {
		return fmt.Errorf("basePriceCents must be positive, got %d", r.BasePriceCents)
	}
	if r.DepositPercent != nil && (*r.DepositPercent < 0 || *r.DepositPercent > 1) {
		return errors.New("depositPercent must be within [0, 1]")
	}
	if r.TaxRate != nil && (*r.TaxRate < 0 || *r.TaxRate > 1) {
		return errors.New("taxRate must be within [0, 1]")
	}
	return nil
}

// ToDomain конвертирует запрос в domain модель
func (r *CreateServiceRequest) ToDomain() *domain.Service {
	return &domain.Service{
		Name:            r.Name,
		Active:          true,
		DurationMinutes: r.DurationMinutes,
		BasePriceCents:  r.BasePriceCents,
		DepositPercent:  r.DepositPercent,
		TaxRate:         r.TaxRate,
	}
}

// UpdateServiceRequest запрос на обновление услуги.
// nil-поля не меняются; Active=false - мягкая деактивация.
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Active          *bool    `json:"active,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	BasePriceCents  *int64   `json:"basePriceCents,omitempty"`
	DepositPercent  *float64 `json:"depositPercent,omitempty"`
	TaxRate         *float64 `json:"taxRate,omitempty"`
}

// Validate проверяет корректность запроса на обновление услуги
func (r *UpdateServiceRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return errors.New("name must not be empty")
	}
	if r.DurationMinutes != nil {
		if *r.DurationMinutes <= 0 || *r.DurationMinutes%domain.SlotGranularityMinutes != 0 {
			return fmt.Errorf("durationMinutes must be a positive multiple of %d", domain.SlotGranularityMinutes)
		}
	}
	if r.BasePriceCents != nil && *r.BasePriceCents <= 0 {
		return errors.New("basePriceCents must be positive")
	}
	if r.DepositPercent != nil && (*r.DepositPercent < 0 || *r.DepositPercent > 1) {
		return errors.New("depositPercent must be within [0, 1]")
	}
	if r.TaxRate != nil && (*r.TaxRate < 0 || *r.TaxRate > 1) {
		return errors.New("taxRate must be within [0, 1]")
	}
	return nil
}

// ApplyTo накладывает изменения на существующую услугу
func (r *UpdateServiceRequest) ApplyTo(s *domain.Service) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Active != nil {
		s.Active = *r.Active
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = *r.DurationMinutes
	}
	if r.BasePriceCents != nil {
		s.BasePriceCents = *r.BasePriceCents
	}
	if r.DepositPercent != nil {
		s.DepositPercent = r.DepositPercent
	}
	if r.TaxRate != nil {
		s.TaxRate = r.TaxRate
	}
}

// TimeRangeDTO рабочий диапазон в расписании
type TimeRangeDTO struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`
}

// CreateGroomerRequest запрос на добавление грумера
type CreateGroomerRequest struct {
	DisplayName   string                    `json:"displayName"`
	AutoConfirm   bool                      `json:"autoConfirm"`
	MinLeadMin    int                       `json:"minLeadMinutes"`
	BufferMin     int                       `json:"bufferMinutes"`
	WeeklyHours   map[string][]TimeRangeDTO `json:"weeklyHours,omitempty"`
	BlackoutDates []string                  `json:"blackoutDates,omitempty"`
}

// Validate проверяет корректность запроса на добавление грумера
func (r *CreateGroomerRequest) Validate() error {
	if r.DisplayName == "" {
		return errors.New("displayName is required")
	}
	if r.MinLeadMin < 0 {
		return fmt.Errorf("minLeadMinutes must not be negative, got %d", r.MinLeadMin)
	}
	if r.BufferMin < 0 {
		return fmt.Errorf("bufferMinutes must not be negative, got %d", r.BufferMin)
	}
	if err := validateWeeklyHours(r.WeeklyHours); err != nil {
		return err
	}
	return validateBlackoutDates(r.BlackoutDates)
}

// ToDomain конвертирует запрос в domain модель
func (r *CreateGroomerRequest) ToDomain() (*domain.Groomer, error) {
	wh := make(domain.WeeklyHours, len(r.WeeklyHours))
	for day, ranges := range r.WeeklyHours {
		drs := make([]domain.TimeRange, 0, len(ranges))
		for _, tr := range ranges {
			dr, err := tr.ToDomain()
			if err != nil {
				return nil, err
			}
			drs = append(drs, dr)
		}
		wh[day] = drs
	}
	return &domain.Groomer{
		DisplayName:   r.DisplayName,
		Active:        true,
		AutoConfirm:   r.AutoConfirm,
		MinLeadMin:    r.MinLeadMin,
		BufferMin:     r.BufferMin,
		WeeklyHours:   wh,
		BlackoutDates: r.BlackoutDates,
	}, nil
}

// UpdateScheduleRequest запрос на обновление расписания грумера.
// nil-поля не меняются.
type UpdateScheduleRequest struct {
	WeeklyHours   map[string][]TimeRangeDTO `json:"weeklyHours,omitempty"`
	BlackoutDates *[]string                 `json:"blackoutDates,omitempty"`
	AutoConfirm   *bool                     `json:"autoConfirm,omitempty"`
	MinLeadMin    *int                      `json:"minLeadMinutes,omitempty"`
	BufferMin     *int                      `json:"bufferMinutes,omitempty"`
}

// Validate проверяет корректность запроса на обновление расписания:
// известные дни недели, валидные диапазоны HH:MM со start < end на сетке
// слотов, даты blackout в формате YYYY-MM-DD.
func (r *UpdateScheduleRequest) Validate() error {
	if err := validateWeeklyHours(r.WeeklyHours); err != nil {
		return err
	}
	if r.BlackoutDates != nil {
		if err := validateBlackoutDates(*r.BlackoutDates); err != nil {
			return err
		}
	}
	if r.MinLeadMin != nil && *r.MinLeadMin < 0 {
		return fmt.Errorf("%w: minLeadMinutes must not be negative", ErrInvalidSchedule)
	}
	if r.BufferMin != nil && *r.BufferMin < 0 {
		return fmt.Errorf("%w: bufferMinutes must not be negative", ErrInvalidSchedule)
	}
	return nil
}

// validateWeeklyHours проверяет дни недели и рабочие диапазоны
func validateWeeklyHours(wh map[string][]TimeRangeDTO) error {
	for day, ranges := range wh {
		if !weekdays[day] {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidSchedule, day)
		}
		for _, tr := range ranges {
			dr, err := tr.ToDomain()
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidSchedule, day, err)
			}
			if !dr.Start.IsBefore(dr.End) {
				return fmt.Errorf("%w: %s: range %s-%s is empty or inverted",
					ErrInvalidSchedule, day, tr.Start, tr.End)
			}
			if err := checkGridAligned(dr); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidSchedule, day, err)
			}
		}
	}
	return nil
}

// validateBlackoutDates проверяет формат дат YYYY-MM-DD
func validateBlackoutDates(dates []string) error {
	for _, d := range dates {
		if _, err := time.Parse(domain.DateFormat, d); err != nil {
			return fmt.Errorf("%w: bad blackout date %q", ErrInvalidSchedule, d)
		}
	}
	return nil
}

// ApplyTo накладывает изменения на существующего грумера
func (r *UpdateScheduleRequest) ApplyTo(g *domain.Groomer) error {
	if r.WeeklyHours != nil {
		wh := make(domain.WeeklyHours, len(r.WeeklyHours))
		for day, ranges := range r.WeeklyHours {
			drs := make([]domain.TimeRange, 0, len(ranges))
			for _, tr := range ranges {
				dr, err := tr.ToDomain()
				if err != nil {
					return err
				}
				drs = append(drs, dr)
			}
			wh[day] = drs
		}
		g.WeeklyHours = wh
	}
	if r.BlackoutDates != nil {
		g.BlackoutDates = *r.BlackoutDates
	}
	if r.AutoConfirm != nil {
		g.AutoConfirm = *r.AutoConfirm
	}
	if r.MinLeadMin != nil {
		g.MinLeadMin = *r.MinLeadMin
	}
	if r.BufferMin != nil {
		g.BufferMin = *r.BufferMin
	}
	return nil
}

// checkGridAligned проверяет, что границы диапазона лежат на сетке слотов.
// Расчёт слотов начинает отсчёт от начала диапазона: несовпадающая с сеткой
// граница породила бы слоты, которые создание hold затем отвергнет.
func checkGridAligned(dr domain.TimeRange) error {
	startMin, err := dr.Start.Minutes()
	if err != nil {
		return err
	}
	endMin, err := dr.End.Minutes()
	if err != nil {
		return err
	}
	if startMin%domain.SlotGranularityMinutes != 0 || endMin%domain.SlotGranularityMinutes != 0 {
		return fmt.Errorf("range %s-%s is not aligned to the %d-minute slot grid",
			dr.Start, dr.End, domain.SlotGranularityMinutes)
	}
	return nil
}

// ToDomain конвертирует диапазон в domain модель
func (tr TimeRangeDTO) ToDomain() (domain.TimeRange, error) {
	start, err := types.NewTimeStringFromString(tr.Start)
	if err != nil {
		return domain.TimeRange{}, err
	}
	end, err := types.NewTimeStringFromString(tr.End)
	if err != nil {
		return domain.TimeRange{}, err
	}
	return domain.TimeRange{Start: start, End: end}, nil
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Active          bool     `json:"active"`
	DurationMinutes int      `json:"durationMinutes"`
	BasePriceCents  int64    `json:"basePriceCents"`
	DepositPercent  *float64 `json:"depositPercent,omitempty"`
	TaxRate         *float64 `json:"taxRate,omitempty"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// GroomerSummary краткая карточка грумера для публичного списка
type GroomerSummary struct {
	GroomerID   int64  `json:"groomerId"`
	DisplayName string `json:"displayName"`
	AutoConfirm bool   `json:"autoConfirm"`
}

// GroomerListResponse ответ со списком активных грумеров
type GroomerListResponse struct {
	Groomers []GroomerSummary `json:"groomers"`
}

// ScheduleResponse ответ с расписанием грумера
type ScheduleResponse struct {
	GroomerID     int64                     `json:"groomerId"`
	DisplayName   string                    `json:"displayName"`
	Active        bool                      `json:"active"`
	AutoConfirm   bool                      `json:"autoConfirm"`
	MinLeadMin    int                       `json:"minLeadMinutes"`
	BufferMin     int                       `json:"bufferMinutes"`
	WeeklyHours   map[string][]TimeRangeDTO `json:"weeklyHours"`
	BlackoutDates []string                  `json:"blackoutDates"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель услуги в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Active:          s.Active,
		DurationMinutes: s.DurationMinutes,
		BasePriceCents:  s.BasePriceCents,
		DepositPercent:  s.DepositPercent,
		TaxRate:         s.TaxRate,
	}
}

// FromDomainServiceList конвертирует список услуг в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	return resp
}

// FromDomainGroomerList конвертирует список грумеров в DTO
func FromDomainGroomerList(groomers []*domain.Groomer) *GroomerListResponse {
	resp := &GroomerListResponse{
		Groomers: make([]GroomerSummary, 0, len(groomers)),
	}
	for _, g := range groomers {
		resp.Groomers = append(resp.Groomers, GroomerSummary{
			GroomerID:   g.ID,
			DisplayName: g.DisplayName,
			AutoConfirm: g.AutoConfirm,
		})
	}
	return resp
}

// FromDomainGroomer конвертирует domain модель грумера в DTO расписания
func FromDomainGroomer(g *domain.Groomer) *ScheduleResponse {
	if g == nil {
		return nil
	}

	wh := make(map[string][]TimeRangeDTO, len(g.WeeklyHours))
	for day, ranges := range g.WeeklyHours {
		drs := make([]TimeRangeDTO, 0, len(ranges))
		for _, r := range ranges {
			drs = append(drs, TimeRangeDTO{Start: r.Start.String(), End: r.End.String()})
		}
		wh[day] = drs
	}

	blackouts := g.BlackoutDates
	if blackouts == nil {
		blackouts = []string{}
	}

	return &ScheduleResponse{
		GroomerID:     g.ID,
		DisplayName:   g.DisplayName,
		Active:        g.Active,
		AutoConfirm:   g.AutoConfirm,
		MinLeadMin:    g.MinLeadMin,
		BufferMin:     g.BufferMin,
		WeeklyHours:   wh,
		BlackoutDates: blackouts,
	}
}
