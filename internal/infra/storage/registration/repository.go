package registration

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

var requestColumns = []string{
	"id",
	"email",
	"external_id",
	"first_name",
	"last_name",
	"phone",
	"sex",
	"birth_date",
	"status",
	"associated_donor_id",
	"processed_by",
	"processed_at",
	"rejection_note",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками на регистрацию
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку на регистрацию.
// Частичный уникальный индекс гарантирует не более одной ожидающей
// заявки на внешнюю учётную запись.
func (r *Repository) Create(ctx context.Context, request *domain.RegistrationRequest) (*domain.RegistrationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("registration_requests").
		Columns(
			"email",
			"external_id",
			"first_name",
			"last_name",
			"phone",
			"sex",
			"birth_date",
			"status",
		).
		Values(
			request.Email,
			request.ExternalID,
			request.FirstName,
			request.LastName,
			request.Phone,
			request.Sex,
			types.FromDatePtr(request.BirthDate),
			request.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&request.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolationCode {
			return nil, ErrPendingExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	return request, nil
}

// GetByID получает заявку по ID
// Внутри транзакции блокирует строку заявки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RegistrationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("registration_requests").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	request, err := scanRequestRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// GetPendingByExternalID получает ожидающую заявку по внешней учётной записи
func (r *Repository) GetPendingByExternalID(ctx context.Context, externalID string) (*domain.RegistrationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("registration_requests").
		Where(squirrel.Eq{"external_id": externalID}).
		Where(squirrel.Eq{"status": domain.RequestStatusPending}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByExternalID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	request, err := scanRequestRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByExternalID - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// List получает заявки, опционально фильтруя по статусу
func (r *Repository) List(ctx context.Context, status *domain.RegistrationRequestStatus) ([]*domain.RegistrationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("registration_requests").
		OrderBy("created_at DESC, id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
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

	return scanRequests(rows)
}

// CountPending считает ожидающие заявки
// Используется для значка на панели администратора
func (r *Repository) CountPending(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("registration_requests").
		Where(squirrel.Eq{"status": domain.RequestStatusPending}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountPending - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountPending - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateProcessed фиксирует решение администратора по заявке
func (r *Repository) UpdateProcessed(ctx context.Context, request *domain.RegistrationRequest) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("registration_requests").
		Set("status", request.Status).
		Set("associated_donor_id", request.AssociatedDonorID).
		Set("processed_by", request.ProcessedBy).
		Set("processed_at", request.ProcessedAt).
		Set("rejection_note", request.RejectionNote).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": request.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateProcessed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateProcessed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateProcessed - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// Delete физически удаляет заявку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("registration_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequestRow(row rowScanner) (*domain.RegistrationRequest, error) {
	var request domain.RegistrationRequest
	var birthDate types.NullDate
	var associatedDonorID, processedBy sql.NullInt64
	var processedAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&request.ID,
		&request.Email,
		&request.ExternalID,
		&request.FirstName,
		&request.LastName,
		&request.Phone,
		&request.Sex,
		&birthDate,
		&request.Status,
		&associatedDonorID,
		&processedBy,
		&processedAt,
		&request.RejectionNote,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	request.BirthDate = birthDate.Ptr()
	if associatedDonorID.Valid {
		request.AssociatedDonorID = &associatedDonorID.Int64
	}
	if processedBy.Valid {
		request.ProcessedBy = &processedBy.Int64
	}
	if processedAt.Valid {
		request.ProcessedAt = &processedAt.Time
	}
	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	return &request, nil
}

func scanRequests(rows *sql.Rows) ([]*domain.RegistrationRequest, error) {
	requests := make([]*domain.RegistrationRequest, 0)

	for rows.Next() {
		request, err := scanRequestRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}
