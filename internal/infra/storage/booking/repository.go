package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
	"github.com/motozapp/MotoZapp-BookingService/pkg/dbmetrics"
	"github.com/motozapp/MotoZapp-BookingService/pkg/psqlbuilder"
)

// bookingColumns колонки таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"customer_id",
	"shop_id",
	"service_type",
	"booking_date",
	"start_time",
	"notes",
	"vehicle_brand",
	"vehicle_model",
	"vehicle_year",
	"status",
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

// Create создает новое бронирование в статусе pending
// updated_at остается NULL до первого перехода статуса
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"shop_id",
			"service_type",
			"booking_date",
			"start_time",
			"notes",
			"vehicle_brand",
			"vehicle_model",
			"vehicle_year",
			"status",
		).
		Values(
			booking.CustomerID,
			booking.ShopID,
			booking.ServiceType,
			booking.BookingDate,
			booking.StartTime,
			booking.Notes,
			booking.Vehicle.Brand,
			booking.Vehicle.Model,
			booking.Vehicle.Year,
			booking.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.UpdatedAt = nil

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// В транзакции блокируем строку: перед переходом статуса
	// бронирование читается с FOR UPDATE
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCounterparty получает бронирования, где сторона сделки - клиент или мастерская
// Порядок сортировки зависит от запрошенного статуса:
//   - confirmed: ближайшие визиты первыми (booking_date ASC, start_time ASC)
//   - completed/cancelled: недавно обновленные первыми (updated_at DESC)
//   - pending и выборка без статуса: недавно созданные первыми (created_at DESC)
func (r *Repository) GetByCounterparty(ctx context.Context, filter domain.CounterpartyFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := counterpartySelect(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCounterparty - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCounterparty - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// counterpartySelect собирает запрос выборки бронирований по стороне сделки
func counterpartySelect(filter domain.CounterpartyFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	switch filter.Role {
	case domain.RoleShop:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"shop_id": filter.ID})
	default:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": filter.ID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	switch {
	case filter.Status != nil && *filter.Status == domain.StatusConfirmed:
		selectBuilder = selectBuilder.OrderBy("booking_date ASC", "start_time ASC")
	case filter.Status != nil && (*filter.Status == domain.StatusCompleted || *filter.Status == domain.StatusCancelled):
		selectBuilder = selectBuilder.OrderBy("updated_at DESC")
	default:
		selectBuilder = selectBuilder.OrderBy("created_at DESC")
	}

	return selectBuilder
}

// UpdateStatus переводит бронирование из статуса from в статус to
// Условие WHERE status = from делает повторную доставку того же перехода
// no-op'ом: конкурентное изменение статуса возвращает ErrStatusConflict.
// updated_at выставляется на каждом переходе и только на переходах
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		Suffix("RETURNING " + joinColumns(bookingColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		// Либо бронирования нет, либо статус уже изменился - различаем
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, ErrBookingNotFound
		}
		return nil, ErrStatusConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrScanRow, err)
	}

	return booking, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ShopID,
		&booking.ServiceType,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.Notes,
		&booking.Vehicle.Brand,
		&booking.Vehicle.Model,
		&booking.Vehicle.Year,
		&booking.Status,
		&booking.CreatedAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		booking.UpdatedAt = &updatedAt.Time
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// joinColumns собирает список колонок для RETURNING
func joinColumns(columns []string) string {
	result := ""
	for i, col := range columns {
		if i > 0 {
			result += ", "
		}
		result += col
	}
	return result
}
