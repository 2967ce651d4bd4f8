package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/repository"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
)

type attendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) repository.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *model.Attendance) error {
	query := `
		INSERT INTO attendances (
			id, patient_id, user_id, history, diagnosis, treatment,
			medications, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	attendance.CreatedAt = time.Now()
	attendance.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		attendance.ID,
		attendance.PatientID,
		attendance.UserID,
		attendance.History,
		attendance.Diagnosis,
		attendance.Treatment,
		attendance.Medications,
		attendance.Notes,
		attendance.CreatedAt,
		attendance.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create attendance: %w", err)
	}
	return nil
}

func (r *attendanceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Attendance, error) {
	query := `SELECT * FROM attendances WHERE id = $1`
	var attendance model.Attendance
	err := r.db.GetContext(ctx, &attendance, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("attendance", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return &attendance, nil
}

// Update only touches the clinical text fields. The patient and author
// linkage never changes after creation.
func (r *attendanceRepository) Update(ctx context.Context, attendance *model.Attendance) error {
	query := `
		UPDATE attendances
		SET history = $1, diagnosis = $2, treatment = $3, medications = $4,
			notes = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.db.ExecContext(ctx, query,
		attendance.History,
		attendance.Diagnosis,
		attendance.Treatment,
		attendance.Medications,
		attendance.Notes,
		time.Now(),
		attendance.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NotFound("attendance", nil)
	}
	return nil
}

func (r *attendanceRepository) List(ctx context.Context, filter *model.AttendanceFilter) ([]*model.Attendance, error) {
	query := `SELECT * FROM attendances WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter != nil && filter.PatientID != nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argPos)
		args = append(args, *filter.PatientID)
		argPos++
	}
	if filter != nil && filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argPos)
		args = append(args, *filter.UserID)
		argPos++
	}
	query += " ORDER BY created_at DESC"

	var attendances []*model.Attendance
	if err := r.db.SelectContext(ctx, &attendances, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	return attendances, nil
}
