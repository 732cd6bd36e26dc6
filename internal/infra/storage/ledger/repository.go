package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DonorService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DonorService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Repository счётчик подтверждённых записей по датам.
// Резервирование выполняется одним атомарным запросом, поэтому две
// конкурентные попытки занять последнее место не проходят обе.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория счётчиков занятости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Reserve атомарно занимает одно место на дату при условии, что счётчик
// не достиг capacity. Возвращает ErrCapacityExceeded, если мест нет.
func (r *Repository) Reserve(ctx context.Context, day types.Date, capacity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Условное приращение: UPDATE внутри ON CONFLICT не срабатывает,
	// когда reserved уже достиг вместимости, и RowsAffected остаётся 0
	query, args, err := psqlbuilder.Insert("date_reservations").
		Columns("day", "reserved").
		Values(day, 1).
		Suffix(
			"ON CONFLICT (day) DO UPDATE SET reserved = date_reservations.reserved + 1, updated_at = NOW() WHERE date_reservations.reserved < ?",
			capacity,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reserve - build upsert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reserve - execute upsert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reserve - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrCapacityExceeded
	}

	return nil
}

// Release освобождает одно место на дату
// Счётчик не уходит ниже нуля
func (r *Repository) Release(ctx context.Context, day types.Date) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("date_reservations").
		Set("reserved", squirrel.Expr("reserved - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"day": day}).
		Where(squirrel.Gt{"reserved": 0}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// Reserved возвращает текущее число занятых мест на дату
func (r *Repository) Reserved(ctx context.Context, day types.Date) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("reserved").
		From("date_reservations").
		Where(squirrel.Eq{"day": day}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: Reserved - build select query: %v", ErrBuildQuery, err)
	}

	var reserved int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&reserved)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Reserved - scan reserved: %v", ErrScanRow, err)
	}

	return reserved, nil
}

// Rebuild пересобирает счётчики из подтверждённых записей
// Вызывается при старте сервиса для восстановления согласованности
func (r *Repository) Rebuild(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "DELETE FROM date_reservations"); err != nil {
		return fmt.Errorf("%w: Rebuild - clear reservations: %v", ErrExecQuery, err)
	}

	query := `
		INSERT INTO date_reservations (day, reserved)
		SELECT confirmed_date, COUNT(*)
		FROM appointments
		WHERE status = 'confirmed' AND confirmed_date IS NOT NULL
		GROUP BY confirmed_date`

	if _, err := executor.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%w: Rebuild - fold confirmed appointments: %v", ErrExecQuery, err)
	}

	return nil
}
