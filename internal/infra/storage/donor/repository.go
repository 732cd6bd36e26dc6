package donor

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

var donorColumns = []string{
	"id",
	"email",
	"external_id",
	"first_name",
	"last_name",
	"phone",
	"sex",
	"blood_type",
	"birth_date",
	"is_admin",
	"is_active",
	"is_suspended",
	"last_donation_date",
	"total_donations",
	"next_due_date",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с донорами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доноров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового донора
func (r *Repository) Create(ctx context.Context, donor *domain.Donor) (*domain.Donor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("donors").
		Columns(
			"email",
			"external_id",
			"first_name",
			"last_name",
			"phone",
			"sex",
			"blood_type",
			"birth_date",
			"is_admin",
			"is_active",
			"is_suspended",
			"last_donation_date",
			"total_donations",
			"next_due_date",
		).
		Values(
			donor.Email,
			donor.ExternalID,
			donor.FirstName,
			donor.LastName,
			donor.Phone,
			donor.Sex,
			donor.BloodType,
			types.FromDatePtr(donor.BirthDate),
			donor.IsAdmin,
			donor.IsActive,
			donor.IsSuspended,
			types.FromDatePtr(donor.LastDonationDate),
			donor.TotalDonations,
			types.FromDatePtr(donor.NextDueDate),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&donor.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateDonor
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	donor.CreatedAt = createdAt.Time
	donor.UpdatedAt = updatedAt.Time

	return donor, nil
}

// GetByID получает донора по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Donor, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByEmail получает донора по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Donor, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email}, "GetByEmail")
}

// GetByExternalID получает донора по внешнему идентификатору
func (r *Repository) GetByExternalID(ctx context.Context, externalID string) (*domain.Donor, error) {
	return r.getOne(ctx, squirrel.Eq{"external_id": externalID}, "GetByExternalID")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.Donor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(donorColumns...).
		From("donors").
		Where(where)

	// Внутри транзакции блокируем строку донора
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	donor, err := scanDonorRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrDonorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan donor: %v", ErrScanRow, method, err)
	}

	return donor, nil
}

// List получает список доноров с фильтрацией
func (r *Repository) List(ctx context.Context, filter domain.DonorsFilter) ([]*domain.Donor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(donorColumns...).
		From("donors").
		OrderBy("last_name ASC, first_name ASC, id ASC")

	if filter.IsActive != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}
	if filter.IsAdmin != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_admin": *filter.IsAdmin})
	}
	if filter.IsSuspended != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_suspended": *filter.IsSuspended})
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

	return scanDonors(rows)
}

// ListExpiring получает активных, не отстранённых доноров, у которых срок
// следующей донации истекает до указанной даты. Доноры из excludeIDs
// (уже имеющие назначенную запись) не включаются. Сортировка по сроку.
func (r *Repository) ListExpiring(ctx context.Context, before types.Date, excludeIDs []int64) ([]*domain.Donor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(donorColumns...).
		From("donors").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Eq{"is_suspended": false}).
		Where(squirrel.NotEq{"next_due_date": nil}).
		Where(squirrel.Lt{"next_due_date": before}).
		OrderBy("next_due_date ASC, id ASC")

	if len(excludeIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeIDs})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiring - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiring - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDonors(rows)
}

// Update обновляет профиль донора
func (r *Repository) Update(ctx context.Context, donor *domain.Donor) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("donors").
		Set("email", donor.Email).
		Set("first_name", donor.FirstName).
		Set("last_name", donor.LastName).
		Set("phone", donor.Phone).
		Set("sex", donor.Sex).
		Set("blood_type", donor.BloodType).
		Set("birth_date", types.FromDatePtr(donor.BirthDate)).
		Set("is_admin", donor.IsAdmin).
		Set("is_active", donor.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": donor.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolationCode {
			return ErrDuplicateDonor
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// SetSuspended выставляет флаг отстранения донора
func (r *Repository) SetSuspended(ctx context.Context, id int64, suspended bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("donors").
		Set("is_suspended", suspended).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetSuspended - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetSuspended - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "SetSuspended")
}

// RefreshDonationStats обновляет денормализованную историю донаций донора
func (r *Repository) RefreshDonationStats(ctx context.Context, id int64, lastDonation *types.Date, total int, nextDue types.Date) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("donors").
		Set("last_donation_date", types.FromDatePtr(lastDonation)).
		Set("total_donations", total).
		Set("next_due_date", nextDue).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RefreshDonationStats - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RefreshDonationStats - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "RefreshDonationStats")
}

// BindExternalID привязывает внешнюю учётную запись к донору
func (r *Repository) BindExternalID(ctx context.Context, id int64, externalID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("donors").
		Set("external_id", externalID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: BindExternalID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolationCode {
			return ErrDuplicateDonor
		}
		return fmt.Errorf("%w: BindExternalID - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "BindExternalID")
}

// Deactivate мягко удаляет донора, сохраняя историю донаций
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("donors").
		Set("is_active", false).
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

	return checkAffected(result, "Deactivate")
}

// Delete физически удаляет донора (только при отсутствии истории донаций)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("donors").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Delete")
}

func checkAffected(result sql.Result, method string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrDonorNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDonorRow(row rowScanner) (*domain.Donor, error) {
	var donor domain.Donor
	var externalID sql.NullString
	var birthDate, lastDonation, nextDue types.NullDate
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&donor.ID,
		&donor.Email,
		&externalID,
		&donor.FirstName,
		&donor.LastName,
		&donor.Phone,
		&donor.Sex,
		&donor.BloodType,
		&birthDate,
		&donor.IsAdmin,
		&donor.IsActive,
		&donor.IsSuspended,
		&lastDonation,
		&donor.TotalDonations,
		&nextDue,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if externalID.Valid {
		donor.ExternalID = &externalID.String
	}
	donor.BirthDate = birthDate.Ptr()
	donor.LastDonationDate = lastDonation.Ptr()
	donor.NextDueDate = nextDue.Ptr()
	donor.CreatedAt = createdAt.Time
	donor.UpdatedAt = updatedAt.Time

	return &donor, nil
}

func scanDonors(rows *sql.Rows) ([]*domain.Donor, error) {
	donors := make([]*domain.Donor, 0)

	for rows.Next() {
		donor, err := scanDonorRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDonors - scan row: %v", ErrScanRow, err)
		}
		donors = append(donors, donor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDonors - rows error: %v", ErrScanRow, err)
	}

	return donors, nil
}
