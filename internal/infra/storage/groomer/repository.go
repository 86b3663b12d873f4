package groomer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/pawtrim/booking-service/internal/domain"
	"github.com/pawtrim/booking-service/pkg/dbmetrics"
	"github.com/pawtrim/booking-service/pkg/psqlbuilder"
)

var groomerColumns = []string{
	"id",
	"display_name",
	"active",
	"auto_confirm",
	"min_lead_minutes",
	"buffer_minutes",
	"weekly_hours",
	"blackout_dates",
	"created_at",
	"updated_at",
}

// Repository репозиторий расписаний грумеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория грумеров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает грумера с расписанием
func (r *Repository) Create(ctx context.Context, g *domain.Groomer) (*domain.Groomer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weeklyHours, blackouts, err := encodeSchedule(g)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("groomers").
		Columns(
			"display_name",
			"active",
			"auto_confirm",
			"min_lead_minutes",
			"buffer_minutes",
			"weekly_hours",
			"blackout_dates",
		).
		Values(
			g.DisplayName,
			g.Active,
			g.AutoConfirm,
			g.MinLeadMin,
			g.BufferMin,
			weeklyHours,
			blackouts,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&g.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	g.CreatedAt = createdAt.Time
	g.UpdatedAt = updatedAt.Time

	return g, nil
}

// GetByID получает грумера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Groomer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(groomerColumns...).
		From("groomers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanGroomer(executor.QueryRowContext(ctx, query, args...))
}

// ListActive получает всех активных грумеров
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Groomer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(groomerColumns...).
		From("groomers").
		Where(squirrel.Eq{"active": true}).
		OrderBy("display_name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	groomers := make([]*domain.Groomer, 0)
	for rows.Next() {
		g, err := r.scanGroomerRow(rows)
		if err != nil {
			return nil, err
		}
		groomers = append(groomers, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return groomers, nil
}

// UpdateSchedule обновляет расписание и настройки бронирования грумера
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, g *domain.Groomer) (*domain.Groomer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weeklyHours, blackouts, err := encodeSchedule(g)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update("groomers").
		Set("auto_confirm", g.AutoConfirm).
		Set("min_lead_minutes", g.MinLeadMin).
		Set("buffer_minutes", g.BufferMin).
		Set("weekly_hours", weeklyHours).
		Set("blackout_dates", blackouts).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrGroomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	g.ID = id
	g.CreatedAt = createdAt.Time
	g.UpdatedAt = updatedAt.Time

	return g, nil
}

// Deactivate мягко деактивирует грумера (история бронирований сохраняется)
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("groomers").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrGroomerNotFound
	}

	return nil
}

func (r *Repository) scanGroomer(row *sql.Row) (*domain.Groomer, error) {
	var (
		g             domain.Groomer
		weeklyHours   []byte
		blackouts     []byte
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
	)

	err := row.Scan(
		&g.ID,
		&g.DisplayName,
		&g.Active,
		&g.AutoConfirm,
		&g.MinLeadMin,
		&g.BufferMin,
		&weeklyHours,
		&blackouts,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrGroomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanGroomer - scan row: %v", ErrScanRow, err)
	}

	if err := decodeSchedule(&g, weeklyHours, blackouts); err != nil {
		return nil, err
	}

	g.CreatedAt = createdAt.Time
	g.UpdatedAt = updatedAt.Time

	return &g, nil
}

func (r *Repository) scanGroomerRow(rows *sql.Rows) (*domain.Groomer, error) {
	var (
		g           domain.Groomer
		weeklyHours []byte
		blackouts   []byte
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	)

	err := rows.Scan(
		&g.ID,
		&g.DisplayName,
		&g.Active,
		&g.AutoConfirm,
		&g.MinLeadMin,
		&g.BufferMin,
		&weeklyHours,
		&blackouts,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scanGroomerRow - scan row: %v", ErrScanRow, err)
	}

	if err := decodeSchedule(&g, weeklyHours, blackouts); err != nil {
		return nil, err
	}

	g.CreatedAt = createdAt.Time
	g.UpdatedAt = updatedAt.Time

	return &g, nil
}

func encodeSchedule(g *domain.Groomer) ([]byte, []byte, error) {
	hours := g.WeeklyHours
	if hours == nil {
		hours = domain.WeeklyHours{}
	}
	weeklyHours, err := json.Marshal(hours)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: weekly hours: %v", ErrEncodeSchedule, err)
	}

	dates := g.BlackoutDates
	if dates == nil {
		dates = []string{}
	}
	blackouts, err := json.Marshal(dates)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: blackout dates: %v", ErrEncodeSchedule, err)
	}

	return weeklyHours, blackouts, nil
}

func decodeSchedule(g *domain.Groomer, weeklyHours, blackouts []byte) error {
	if len(weeklyHours) > 0 {
		if err := json.Unmarshal(weeklyHours, &g.WeeklyHours); err != nil {
			return fmt.Errorf("%w: weekly hours: %v", ErrDecodeSchedule, err)
		}
	}
	if len(blackouts) > 0 {
		if err := json.Unmarshal(blackouts, &g.BlackoutDates); err != nil {
			return fmt.Errorf("%w: blackout dates: %v", ErrDecodeSchedule, err)
		}
	}
	return nil
}
