package notification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
	"github.com/motozapp/MotoZapp-BookingService/pkg/dbmetrics"
	"github.com/motozapp/MotoZapp-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// notificationColumns колонки таблицы notifications в порядке сканирования
var notificationColumns = []string{
	"id",
	"user_id",
	"title",
	"message",
	"type",
	"read",
	"created_at",
}

// Repository репозиторий для работы с уведомлениями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает уведомление идемпотентно по ID
// Одно и то же событие может прийти дважды (оптимистичная локальная запись
// и доставка из push-канала): ON CONFLICT DO NOTHING превращает дубль в no-op.
// Возвращает created=false, если запись с таким ID уже существовала
func (r *Repository) Create(ctx context.Context, n *domain.Notification) (created bool, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns(
			"id",
			"user_id",
			"title",
			"message",
			"type",
			"read",
			"created_at",
		).
		Values(
			n.ID,
			n.UserID,
			n.Title,
			n.Message,
			n.Type,
			n.Read,
			n.CreatedAt,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Create - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// GetByID получает уведомление по ID в рамках видимости владельца
func (r *Repository) GetByID(ctx context.Context, id string, userID int64) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var n domain.Notification
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Message,
		&n.Type,
		&n.Read,
		&n.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan notification: %v", ErrScanRow, err)
	}

	return &n, nil
}

// GetByUserID получает ленту уведомлений пользователя
// Сортировка всегда по created_at DESC, ID служит стабильным tiebreak'ом
func (r *Repository) GetByUserID(ctx context.Context, userID int64, filter domain.NotificationFilter) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")

	if filter == domain.FilterUnread {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"read": false})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Message,
			&n.Type,
			&n.Read,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan row: %v", ErrScanRow, err)
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows error: %v", ErrScanRow, err)
	}

	return notifications, nil
}

// MarkRead помечает уведомление прочитанным
// Условие read = FALSE не трогает уже прочитанные строки; нулевой
// rowsAffected различаем через GetByID: повторная пометка уже
// прочитанного - no-op, ErrNotificationNotFound - только для неизвестного ID
func (r *Repository) MarkRead(ctx context.Context, id string, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := markReadUpdate(id, userID).ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRead - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, getErr := r.GetByID(ctx, id, userID); getErr != nil {
			return getErr
		}
		// Уведомление существует и уже прочитано
		return nil
	}

	return nil
}

// markReadUpdate собирает запрос пометки: обновляются только непрочитанные строки
func markReadUpdate(id string, userID int64) squirrel.UpdateBuilder {
	return psqlbuilder.Update("notifications").
		Set("read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID, "read": false})
}

// MarkAllRead помечает прочитанными все уведомления пользователя
// Один UPDATE - операция атомарна относительно конкурентных Create:
// уведомление, пришедшее во время выполнения, не теряется и не дублируется
func (r *Repository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("read", true).
		Where(squirrel.Eq{"user_id": userID, "read": false}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkAllRead - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkAllRead - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkAllRead - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// UnreadCount возвращает количество непрочитанных уведомлений пользователя
func (r *Repository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID, "read": false}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: UnreadCount - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: UnreadCount - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}
