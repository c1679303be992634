package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/geoface_attendance/internal/models"
	"github.com/shenikar/geoface_attendance/internal/service"
)

// ErrNotFound - запись не найдена
var ErrNotFound = models.ErrNotFound

type AttendanceRepository struct {
	db *pgxpool.Pool
}

func NewAttendanceRepository(db *pgxpool.Pool) service.AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceColumns = `
	id,
	student_id,
	student_name,
	check_in_time,
	latitude,
	longitude,
	accuracy,
	captured_at,
	selfie_image,
	verification_status,
	verification_note,
	created_at`

// attendanceListColumns - те же колонки без байтов селфи. Список отдает только ссылку на фото,
// само селфи читается по одной записи через GetByID.
const attendanceListColumns = `
	id,
	student_id,
	student_name,
	check_in_time,
	latitude,
	longitude,
	accuracy,
	captured_at,
	NULL::bytea AS selfie_image,
	verification_status,
	verification_note,
	created_at`

// Append сохраняет новую запись посещаемости
func (r *AttendanceRepository) Append(ctx context.Context, record *models.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (
			id, student_id, student_name, check_in_time,
			latitude, longitude, accuracy, captured_at,
			selfie_image, verification_status, verification_note
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING created_at;
	`
	err := r.db.QueryRow(ctx, query,
		record.ID,
		record.StudentID,
		record.StudentName,
		record.CheckInTime,
		record.Location.Latitude,
		record.Location.Longitude,
		record.Location.Accuracy,
		nullTime(record.Location.CapturedAt),
		record.SelfieImage,
		record.VerificationStatus,
		record.VerificationNote,
	).Scan(&record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append attendance record: %w", err)
	}
	return nil
}

// GetByID возвращает запись по идентификатору
func (r *AttendanceRepository) GetByID(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	query := `SELECT` + attendanceColumns + `
		FROM attendance_records
		WHERE id = $1;
	`
	record, err := scanRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("attendance record %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get attendance record by id: %w", err)
	}
	return record, nil
}

// UpdateStatus меняет статус проверки. Пустой note оставляет прежнее пояснение.
func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id string, status models.VerificationStatus, note *string) error {
	query := `
		UPDATE attendance_records SET
			verification_status = $1,
			verification_note = COALESCE($2, verification_note)
		WHERE id = $3;
	`
	cmdTag, err := r.db.Exec(ctx, query, status, note, id)
	if err != nil {
		return fmt.Errorf("failed to update attendance status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("attendance record %s for update: %w", id, ErrNotFound)
	}
	return nil
}

// ListAll возвращает все записи без селфи, новые первыми
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]*models.AttendanceRecord, error) {
	query := `SELECT` + attendanceListColumns + `
		FROM attendance_records
		ORDER BY check_in_time DESC, created_at DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records := make([]*models.AttendanceRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return records, nil
}

// Clear удаляет все записи и возвращает их число
func (r *AttendanceRepository) Clear(ctx context.Context) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM attendance_records;`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear attendance records: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

func scanRecord(row pgx.Row) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{}
	var capturedAt *time.Time
	err := row.Scan(
		&record.ID,
		&record.StudentID,
		&record.StudentName,
		&record.CheckInTime,
		&record.Location.Latitude,
		&record.Location.Longitude,
		&record.Location.Accuracy,
		&capturedAt,
		&record.SelfieImage,
		&record.VerificationStatus,
		&record.VerificationNote,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if capturedAt != nil {
		record.Location.CapturedAt = *capturedAt
	}
	return record, nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
