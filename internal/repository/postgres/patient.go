package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/repository"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
)

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	if err := marshalPatientFields(patient); err != nil {
		return err
	}

	query := `
		INSERT INTO patients (
			id, created_by, name, birth_date, document_id, phone, address,
			notes, gender, photo_url, thumbnail_url, care_sheet_summaries,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.CreatedBy,
		patient.Name,
		patient.BirthDate,
		patient.DocumentID,
		patient.Phone,
		patient.Address,
		patient.Notes,
		patient.Gender,
		patient.PhotoURL,
		patient.ThumbnailURL,
		patient.SummariesJSON,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("patient", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if err := unmarshalPatientFields(&patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, birth_date = $2, document_id = $3, phone = $4,
			address = $5, notes = $6, gender = $7, photo_url = $8,
			thumbnail_url = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := r.db.ExecContext(ctx, query,
		patient.Name,
		patient.BirthDate,
		patient.DocumentID,
		patient.Phone,
		patient.Address,
		patient.Notes,
		patient.Gender,
		patient.PhotoURL,
		patient.ThumbnailURL,
		time.Now(),
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

// Delete removes the patient and every care sheet attached to it. Both
// deletes commit or roll back together.
func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM care_sheets WHERE patient_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete patient care sheets: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete patient: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return apperrors.NotFound("patient", nil)
		}
		return nil
	})
}

func (r *patientRepository) List(ctx context.Context, filter *model.PatientFilter) ([]*model.Patient, error) {
	query := `SELECT * FROM patients WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter != nil && filter.CreatedBy != nil {
		query += fmt.Sprintf(" AND created_by = $%d", argPos)
		args = append(args, *filter.CreatedBy)
		argPos++
	}
	if filter != nil && filter.SearchTerm != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argPos)
		args = append(args, "%"+filter.SearchTerm+"%")
		argPos++
	}
	query += " ORDER BY name ASC"

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	for _, p := range patients {
		if err := unmarshalPatientFields(p); err != nil {
			return nil, err
		}
	}
	return patients, nil
}

func marshalPatientFields(patient *model.Patient) error {
	if patient.CareSheetSummaries == nil {
		patient.CareSheetSummaries = []model.CareSheetSummary{}
	}
	data, err := json.Marshal(patient.CareSheetSummaries)
	if err != nil {
		return fmt.Errorf("failed to marshal care sheet summaries: %w", err)
	}
	patient.SummariesJSON = data
	return nil
}

func unmarshalPatientFields(patient *model.Patient) error {
	patient.CareSheetSummaries = []model.CareSheetSummary{}
	if len(patient.SummariesJSON) == 0 {
		return nil
	}
	if err := json.Unmarshal(patient.SummariesJSON, &patient.CareSheetSummaries); err != nil {
		return fmt.Errorf("failed to unmarshal care sheet summaries: %w", err)
	}
	return nil
}
