package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DonorService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

const uniqueViolationCode = "23505"

var appointmentColumns = []string{
	"id",
	"donor_id",
	"proposed_date_1",
	"proposed_date_2",
	"proposed_date_3",
	"confirmed_date",
	"status",
	"admin_modified",
	"modified_by",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на донацию
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись с тремя предложенными датами.
// Частичный уникальный индекс в БД гарантирует не более одной
// ожидающей записи на донора даже при конкурентных запросах.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"donor_id",
			"proposed_date_1",
			"proposed_date_2",
			"proposed_date_3",
			"status",
			"notes",
		).
		Values(
			appointment.DonorID,
			appointment.ProposedDate1,
			appointment.ProposedDate2,
			appointment.ProposedDate3,
			appointment.Status,
			appointment.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolationCode {
			return nil, ErrPendingExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает запись по ID
// Внутри транзакции блокирует строку записи
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	appointment, err := scanAppointmentRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// GetPendingByDonor получает ожидающую запись донора, если она есть
func (r *Repository) GetPendingByDonor(ctx context.Context, donorID int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"donor_id": donorID}).
		Where(squirrel.Eq{"status": domain.StatusPending})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByDonor - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	appointment, err := scanAppointmentRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByDonor - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// List получает список записей с фильтрацией по донору и статусу
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		OrderBy("created_at DESC, id DESC")

	if filter.DonorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"donor_id": *filter.DonorID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
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

	return scanAppointments(rows)
}

// ListCompletable получает подтверждённые записи с датой в прошлом
// Используется для автоматического перевода записей в completed
func (r *Repository) ListCompletable(ctx context.Context, before types.Date) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"confirmed_date": before}).
		OrderBy("confirmed_date ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCompletable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCompletable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListScheduledDonorIDs получает ID доноров с ожидающей записью либо
// подтверждённой записью на дату не раньше указанной
// Используется для исключения из выборки доноров с истекающим сроком
func (r *Repository) ListScheduledDonorIDs(ctx context.Context, from types.Date) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT donor_id").
		From("appointments").
		Where(squirrel.Or{
			squirrel.Eq{"status": domain.StatusPending},
			squirrel.And{
				squirrel.Eq{"status": domain.StatusConfirmed},
				squirrel.GtOrEq{"confirmed_date": from},
			},
		}).
		OrderBy("donor_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduledDonorIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduledDonorIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	donorIDs := make([]int64, 0)
	for rows.Next() {
		var donorID int64
		if err := rows.Scan(&donorID); err != nil {
			return nil, fmt.Errorf("%w: ListScheduledDonorIDs - scan donor_id: %v", ErrScanRow, err)
		}
		donorIDs = append(donorIDs, donorID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListScheduledDonorIDs - rows error: %v", ErrScanRow, err)
	}

	return donorIDs, nil
}

// CountConfirmedOnDate считает подтверждённые записи на дату
// Используется при пересборке счётчиков занятости
func (r *Repository) CountConfirmedOnDate(ctx context.Context, day types.Date) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Eq{"confirmed_date": day}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedOnDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedOnDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Confirm подтверждает запись на выбранную дату
// Возвращает время обновления строки после подтверждения
func (r *Repository) Confirm(ctx context.Context, id int64, date types.Date, adminModified bool, modifiedBy *int64) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusConfirmed).
		Set("confirmed_date", date).
		Set("admin_modified", adminModified).
		Set("modified_by", modifiedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, ErrAppointmentNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Confirm - execute update: %v", ErrExecQuery, err)
	}

	return updatedAt, nil
}

// SetStatus обновляет статус записи
func (r *Repository) SetStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetStatus - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "SetStatus")
}

// UpdateNotes обновляет примечания к записи
func (r *Repository) UpdateNotes(ctx context.Context, id int64, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
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

	return checkAffected(result, "UpdateNotes")
}

// Delete физически удаляет запись
// Используется только для завершённых и отменённых записей
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
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
		return ErrAppointmentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointmentRow(row rowScanner) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var confirmedDate types.NullDate
	var modifiedBy sql.NullInt64
	var notes sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.DonorID,
		&appointment.ProposedDate1,
		&appointment.ProposedDate2,
		&appointment.ProposedDate3,
		&confirmedDate,
		&appointment.Status,
		&appointment.AdminModified,
		&modifiedBy,
		&notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.ConfirmedDate = confirmedDate.Ptr()
	if modifiedBy.Valid {
		appointment.ModifiedBy = &modifiedBy.Int64
	}
	if notes.Valid {
		appointment.Notes = &notes.String
	}
	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appointment, err := scanAppointmentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
