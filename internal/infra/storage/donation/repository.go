package donation

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

var donationColumns = []string{
	"id",
	"donor_id",
	"donation_date",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с историей донаций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория донаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет донацию в историю
func (r *Repository) Create(ctx context.Context, donation *domain.Donation) (*domain.Donation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("donations").
		Columns("donor_id", "donation_date", "notes").
		Values(donation.DonorID, donation.DonationDate, donation.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&donation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	donation.CreatedAt = createdAt.Time
	donation.UpdatedAt = updatedAt.Time

	return donation, nil
}

// GetByID получает донацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Donation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(donationColumns...).
		From("donations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	donation, err := scanDonationRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrDonationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan donation: %v", ErrScanRow, err)
	}

	return donation, nil
}

// List получает донации по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.DonationsFilter) ([]*domain.Donation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(donationColumns...).
		From("donations").
		OrderBy("donation_date DESC, id DESC")

	if filter.DonorID != nil {
		builder = builder.Where(squirrel.Eq{"donor_id": *filter.DonorID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDonations(rows)
}

// GetByDonorID получает историю донаций донора, новые первыми
func (r *Repository) GetByDonorID(ctx context.Context, donorID int64) ([]*domain.Donation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(donationColumns...).
		From("donations").
		Where(squirrel.Eq{"donor_id": donorID}).
		OrderBy("donation_date DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDonorID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDonorID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDonations(rows)
}

// GetLatestByDonorID получает последнюю донацию донора
func (r *Repository) GetLatestByDonorID(ctx context.Context, donorID int64) (*domain.Donation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(donationColumns...).
		From("donations").
		Where(squirrel.Eq{"donor_id": donorID}).
		OrderBy("donation_date DESC, id DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByDonorID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	donation, err := scanDonationRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrDonationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByDonorID - scan donation: %v", ErrScanRow, err)
	}

	return donation, nil
}

// CountByDonorID считает донации донора
func (r *Repository) CountByDonorID(ctx context.Context, donorID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("donations").
		Where(squirrel.Eq{"donor_id": donorID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByDonorID - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByDonorID - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateNotes обновляет примечания к донации
// Дата и донор неизменяемы, история append-only
func (r *Repository) UpdateNotes(ctx context.Context, id int64, notes string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("donations").
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrDonationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDonationRow(row rowScanner) (*domain.Donation, error) {
	var donation domain.Donation
	var donationDate types.Date
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&donation.ID,
		&donation.DonorID,
		&donationDate,
		&donation.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	donation.DonationDate = donationDate
	donation.CreatedAt = createdAt.Time
	donation.UpdatedAt = updatedAt.Time

	return &donation, nil
}

func scanDonations(rows *sql.Rows) ([]*domain.Donation, error) {
	donations := make([]*domain.Donation, 0)

	for rows.Next() {
		donation, err := scanDonationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDonations - scan row: %v", ErrScanRow, err)
		}
		donations = append(donations, donation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDonations - rows error: %v", ErrScanRow, err)
	}

	return donations, nil
}
