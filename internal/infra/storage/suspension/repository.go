package suspension

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DonorService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

var suspensionColumns = []string{
	"id",
	"donor_id",
	"start_date",
	"duration_months",
	"end_date",
	"reason",
	"is_active",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с отстранениями доноров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отстранений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое отстранение
func (r *Repository) Create(ctx context.Context, suspension *domain.Suspension) (*domain.Suspension, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("suspensions").
		Columns(
			"donor_id",
			"start_date",
			"duration_months",
			"end_date",
			"reason",
			"is_active",
			"created_by",
		).
		Values(
			suspension.DonorID,
			suspension.StartDate,
			suspension.DurationMonths,
			suspension.EndDate,
			suspension.Reason,
			suspension.IsActive,
			suspension.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&suspension.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	suspension.CreatedAt = createdAt.Time
	suspension.UpdatedAt = updatedAt.Time

	return suspension, nil
}

// GetByID получает отстранение по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Suspension, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(suspensionColumns...).
		From("suspensions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	suspension, err := scanSuspensionRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrSuspensionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan suspension: %v", ErrScanRow, err)
	}

	return suspension, nil
}

// List получает отстранения, опционально фильтруя по донору
func (r *Repository) List(ctx context.Context, donorID *int64) ([]*domain.Suspension, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(suspensionColumns...).
		From("suspensions").
		OrderBy("created_at DESC, id DESC")

	if donorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"donor_id": *donorID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSuspensions(rows)
}

// GetActiveByDonor получает активные отстранения донора, поздние первыми
func (r *Repository) GetActiveByDonor(ctx context.Context, donorID int64) ([]*domain.Suspension, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(suspensionColumns...).
		From("suspensions").
		Where(squirrel.Eq{"donor_id": donorID}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("end_date DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDonor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDonor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSuspensions(rows)
}

// End досрочно завершает отстранение
func (r *Repository) End(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("suspensions").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: End - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: End - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: End - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSuspensionNotFound
	}

	return nil
}

// HasActive проверяет, есть ли у донора активное отстранение
func (r *Repository) HasActive(ctx context.Context, donorID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("suspensions").
		Where(squirrel.Eq{"donor_id": donorID}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasActive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasActive - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSuspensionRow(row rowScanner) (*domain.Suspension, error) {
	var suspension domain.Suspension
	var startDate, endDate types.Date
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&suspension.ID,
		&suspension.DonorID,
		&startDate,
		&suspension.DurationMonths,
		&endDate,
		&suspension.Reason,
		&suspension.IsActive,
		&suspension.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	suspension.StartDate = startDate
	suspension.EndDate = endDate
	suspension.CreatedAt = createdAt.Time
	suspension.UpdatedAt = updatedAt.Time

	return &suspension, nil
}

func scanSuspensions(rows *sql.Rows) ([]*domain.Suspension, error) {
	suspensions := make([]*domain.Suspension, 0)

	for rows.Next() {
		suspension, err := scanSuspensionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSuspensions - scan row: %v", ErrScanRow, err)
		}
		suspensions = append(suspensions, suspension)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSuspensions - rows error: %v", ErrScanRow, err)
	}

	return suspensions, nil
}
