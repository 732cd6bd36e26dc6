package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DonorService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

const uniqueViolationCode = "23505"

var scheduleColumns = []string{
	"id",
	"monday_enabled", "monday_capacity",
	"tuesday_enabled", "tuesday_capacity",
	"wednesday_enabled", "wednesday_capacity",
	"thursday_enabled", "thursday_capacity",
	"friday_enabled", "friday_capacity",
	"saturday_enabled", "saturday_capacity",
	"sunday_enabled", "sunday_capacity",
	"created_at", "updated_at",
}

// Repository репозиторий для работы с расписанием донаций и исключёнными датами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает единственную строку расписания
func (r *Repository) Get(ctx context.Context) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("donation_schedule").
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Schedule
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Monday.Enabled, &s.Monday.Capacity,
		&s.Tuesday.Enabled, &s.Tuesday.Capacity,
		&s.Wednesday.Enabled, &s.Wednesday.Capacity,
		&s.Thursday.Enabled, &s.Thursday.Capacity,
		&s.Friday.Enabled, &s.Friday.Capacity,
		&s.Saturday.Enabled, &s.Saturday.Capacity,
		&s.Sunday.Enabled, &s.Sunday.Capacity,
		&createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan schedule: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Update перезаписывает настройки расписания целиком
func (r *Repository) Update(ctx context.Context, s *domain.Schedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("donation_schedule").
		Set("monday_enabled", s.Monday.Enabled).
		Set("monday_capacity", s.Monday.Capacity).
		Set("tuesday_enabled", s.Tuesday.Enabled).
		Set("tuesday_capacity", s.Tuesday.Capacity).
		Set("wednesday_enabled", s.Wednesday.Enabled).
		Set("wednesday_capacity", s.Wednesday.Capacity).
		Set("thursday_enabled", s.Thursday.Enabled).
		Set("thursday_capacity", s.Thursday.Capacity).
		Set("friday_enabled", s.Friday.Enabled).
		Set("friday_capacity", s.Friday.Capacity).
		Set("saturday_enabled", s.Saturday.Enabled).
		Set("saturday_capacity", s.Saturday.Capacity).
		Set("sunday_enabled", s.Sunday.Enabled).
		Set("sunday_capacity", s.Sunday.Capacity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// EnsureDefault создает строку расписания, если её ещё нет
// Вызывается при старте сервиса
func (r *Repository) EnsureDefault(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Вставляем строку только при пустой таблице
	query := "INSERT INTO donation_schedule (monday_enabled) SELECT $1 WHERE NOT EXISTS (SELECT 1 FROM donation_schedule)"

	if _, err := executor.ExecContext(ctx, query, false); err != nil {
		return fmt.Errorf("%w: EnsureDefault - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListExcluded получает все исключённые даты по возрастанию
func (r *Repository) ListExcluded(ctx context.Context) ([]*domain.ExcludedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "day", "reason", "created_at").
		From("excluded_dates").
		OrderBy("day ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExcluded - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExcluded - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]*domain.ExcludedDate, 0)
	for rows.Next() {
		var d domain.ExcludedDate
		var day types.Date
		var createdAt sql.NullTime

		if err := rows.Scan(&d.ID, &day, &d.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListExcluded - scan row: %v", ErrScanRow, err)
		}

		d.Day = day
		d.CreatedAt = createdAt.Time
		dates = append(dates, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExcluded - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// AddExcluded добавляет исключённую дату
func (r *Repository) AddExcluded(ctx context.Context, excluded *domain.ExcludedDate) (*domain.ExcludedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("excluded_dates").
		Columns("day", "reason").
		Values(excluded.Day, excluded.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddExcluded - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&excluded.ID, &createdAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateExcludedDate
		}
		return nil, fmt.Errorf("%w: AddExcluded - execute insert: %v", ErrExecQuery, err)
	}

	excluded.CreatedAt = createdAt.Time

	return excluded, nil
}

// RemoveExcluded удаляет исключённую дату по ID
func (r *Repository) RemoveExcluded(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("excluded_dates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveExcluded - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveExcluded - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveExcluded - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrExcludedDateNotFound
	}

	return nil
}

// IsExcluded проверяет, исключена ли дата
func (r *Repository) IsExcluded(ctx context.Context, day types.Date) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("excluded_dates").
		Where(squirrel.Eq{"day": day}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsExcluded - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: IsExcluded - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}
