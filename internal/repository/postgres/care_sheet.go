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

type careSheetRepository struct {
	BaseRepository
}

func NewCareSheetRepository(db *sqlx.DB) repository.CareSheetRepository {
	return &careSheetRepository{BaseRepository: NewBaseRepository(db)}
}

// Create inserts the sheet and appends its summary to the owning patient's
// index. Both writes commit or roll back together.
func (r *careSheetRepository) Create(ctx context.Context, sheet *model.CareSheet) error {
	answers, err := json.Marshal(sheet.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	sheet.AnswersJSON = answers
	sheet.CreatedAt = time.Now()

	summary, err := json.Marshal(sheet.Summary())
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO care_sheets (id, patient_id, version, answers, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err := tx.ExecContext(ctx, query,
			sheet.ID,
			sheet.PatientID,
			sheet.Version,
			sheet.AnswersJSON,
			sheet.CreatedBy,
			sheet.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create care sheet: %w", err)
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE patients SET care_sheet_summaries = care_sheet_summaries || $1::jsonb, updated_at = $2 WHERE id = $3`,
			summary, time.Now(), sheet.PatientID,
		)
		if err != nil {
			return fmt.Errorf("failed to append care sheet summary: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return apperrors.NotFound("patient", nil)
		}
		return nil
	})
}

func (r *careSheetRepository) Get(ctx context.Context, id uuid.UUID) (*model.CareSheet, error) {
	query := `SELECT * FROM care_sheets WHERE id = $1`
	var sheet model.CareSheet
	err := r.db.GetContext(ctx, &sheet, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("care sheet", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get care sheet: %w", err)
	}
	if err := unmarshalCareSheetFields(&sheet); err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *careSheetRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.CareSheet, error) {
	query := `SELECT * FROM care_sheets WHERE patient_id = $1 ORDER BY created_at DESC`
	var sheets []*model.CareSheet
	if err := r.db.SelectContext(ctx, &sheets, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list care sheets: %w", err)
	}
	for _, s := range sheets {
		if err := unmarshalCareSheetFields(s); err != nil {
			return nil, err
		}
	}
	return sheets, nil
}

// Delete removes the sheet and filters its entry out of the patient's
// summary index. Other entries are untouched.
func (r *careSheetRepository) Delete(ctx context.Context, patientID, sheetID uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM care_sheets WHERE id = $1 AND patient_id = $2`,
			sheetID, patientID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete care sheet: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return apperrors.NotFound("care sheet", nil)
		}

		query := `
			UPDATE patients
			SET care_sheet_summaries = (
				SELECT COALESCE(jsonb_agg(entry), '[]'::jsonb)
				FROM jsonb_array_elements(care_sheet_summaries) AS entry
				WHERE entry->>'id' <> $1
			), updated_at = $2
			WHERE id = $3
		`
		if _, err := tx.ExecContext(ctx, query, sheetID.String(), time.Now(), patientID); err != nil {
			return fmt.Errorf("failed to remove care sheet summary: %w", err)
		}
		return nil
	})
}

func unmarshalCareSheetFields(sheet *model.CareSheet) error {
	if len(sheet.AnswersJSON) == 0 {
		return nil
	}
	if err := json.Unmarshal(sheet.AnswersJSON, &sheet.Answers); err != nil {
		return fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	return nil
}
