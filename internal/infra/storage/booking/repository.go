package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/pawtrim/booking-service/internal/domain"
	"github.com/pawtrim/booking-service/pkg/dbmetrics"
	"github.com/pawtrim/booking-service/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"customer_id",
	"groomer_id",
	"service_id",
	"start_at",
	"end_at",
	"status",
	"deposit_cents",
	"tax_cents",
	"tip_cents",
	"total_due_cents",
	"refunded_cents",
	"payment_ref",
	"notes",
	"pet_details",
	"hold_expires_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Нарушение exclusion-ограничения на интервалы грумера (конкурентное
// бронирование того же слота) маппится в ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"groomer_id",
			"service_id",
			"start_at",
			"end_at",
			"status",
			"deposit_cents",
			"tax_cents",
			"tip_cents",
			"total_due_cents",
			"refunded_cents",
			"payment_ref",
			"notes",
			"pet_details",
			"hold_expires_at",
		).
		Values(
			b.CustomerID,
			b.GroomerID,
			b.ServiceID,
			b.StartAt,
			b.EndAt,
			b.Status,
			b.DepositCents,
			b.TaxCents,
			b.TipCents,
			b.TotalDueCents,
			b.RefundedCents,
			b.PaymentRef,
			b.Notes,
			[]byte(b.PetDetails),
			b.HoldExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isOverlapViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByPaymentRef получает бронирование по внешнему платёжному идентификатору
func (r *Repository) GetByPaymentRef(ctx context.Context, paymentRef string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"payment_ref": paymentRef}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentRef - build select query: %v", ErrBuildQuery, err)
	}

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentRef - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByCustomerID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("start_at DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetForGroomerDay получает бронирования грумера, начинающиеся в указанный
// календарный день [DayStart, DayEnd).
// По умолчанию отменённые бронирования исключаются - они не занимают время.
// Внутри транзакции добавляет FOR UPDATE: используется в usecase создания
// hold для защиты от конкурентного двойного бронирования.
func (r *Repository) GetForGroomerDay(ctx context.Context, filter domain.GroomerDayFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"groomer_id": filter.GroomerID}).
		Where(squirrel.GtOrEq{"start_at": filter.DayStart}).
		Where(squirrel.Lt{"start_at": filter.DayEnd}).
		OrderBy("start_at ASC")

	if !filter.IncludeCanceled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.TimeHoldingStatuses})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForGroomerDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForGroomerDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetExpiredHolds получает hold-бронирования с истёкшим сроком оплаты
func (r *Repository) GetExpiredHolds(ctx context.Context, now time.Time, limit uint64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusHold}).
		Where(squirrel.Lt{"hold_expires_at": now}).
		OrderBy("hold_expires_at ASC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExpiredHolds - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExpiredHolds - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatusIf атомарно переводит бронирование из одного из ожидаемых
// статусов в новый и дописывает строку аудита в notes.
// Если текущий статус не входит в from, возвращает ErrStatusConflict -
// это защита от двойной отмены и переходов из терминальных статусов.
func (r *Repository) UpdateStatusIf(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus, auditLine string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fromStrings := make([]string, len(from))
	for i, s := range from {
		fromStrings[i] = string(s)
	}

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": fromStrings})

	if auditLine != "" {
		updateBuilder = updateBuilder.Set("notes", squirrel.Expr("notes || ?", auditLine))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем "не найдено" и "статус уже другой"
		if _, err := r.GetByID(ctx, id); err != nil {
			return ErrBookingNotFound
		}
		return ErrStatusConflict
	}

	return nil
}

// SetPaymentRef сохраняет идентификатор платежа у платёжного провайдера
func (r *Repository) SetPaymentRef(ctx context.Context, id int64, paymentRef string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_ref", paymentRef).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentRef - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaymentRef - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentRef - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// AddTip добавляет чаевые к бронированию (собираются при завершении визита)
func (r *Repository) AddTip(ctx context.Context, id int64, tipCents int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("tip_cents", squirrel.Expr("tip_cents + ?", tipCents)).
		Set("total_due_cents", squirrel.Expr("total_due_cents + ?", tipCents)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddTip - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AddTip - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AddTip - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// AddRefund увеличивает сумму возвращённых средств
func (r *Repository) AddRefund(ctx context.Context, id int64, amountCents int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("refunded_cents", squirrel.Expr("refunded_cents + ?", amountCents)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddRefund - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AddRefund - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AddRefund - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку в бронирование
func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var (
		b             domain.Booking
		petDetails    []byte
		holdExpiresAt sql.NullTime
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.CustomerID,
		&b.GroomerID,
		&b.ServiceID,
		&b.StartAt,
		&b.EndAt,
		&b.Status,
		&b.DepositCents,
		&b.TaxCents,
		&b.TipCents,
		&b.TotalDueCents,
		&b.RefundedCents,
		&b.PaymentRef,
		&b.Notes,
		&petDetails,
		&holdExpiresAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.PetDetails = petDetails
	if holdExpiresAt.Valid {
		b.HoldExpiresAt = &holdExpiresAt.Time
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var (
			b             domain.Booking
			petDetails    []byte
			holdExpiresAt sql.NullTime
			createdAt     sql.NullTime
			updatedAt     sql.NullTime
		)

		err := rows.Scan(
			&b.ID,
			&b.CustomerID,
			&b.GroomerID,
			&b.ServiceID,
			&b.StartAt,
			&b.EndAt,
			&b.Status,
			&b.DepositCents,
			&b.TaxCents,
			&b.TipCents,
			&b.TotalDueCents,
			&b.RefundedCents,
			&b.PaymentRef,
			&b.Notes,
			&petDetails,
			&holdExpiresAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		b.PetDetails = petDetails
		if holdExpiresAt.Valid {
			b.HoldExpiresAt = &holdExpiresAt.Time
		}
		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// isOverlapViolation распознаёт нарушение exclusion-ограничения на интервалы
// (23P01) и уникальные конфликты (23505) как занятый слот
func isOverlapViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23P01" || pqErr.Code == "23505"
	}
	return false
}
