package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/fsfcare/care-api/internal/questionnaire"
)

// CareSheet is an immutable questionnaire snapshot attached to a patient.
// There is no update path, only create and delete.
type CareSheet struct {
	ID          uuid.UUID                `json:"id" db:"id"`
	PatientID   uuid.UUID                `json:"patient_id" db:"patient_id"`
	Version     string                   `json:"version" db:"version"`
	Answers     questionnaire.AnswerSet  `json:"answers" db:"-"`
	AnswersJSON []byte                   `json:"-" db:"answers"`
	CreatedBy   *uuid.UUID               `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time                `json:"created_at" db:"created_at"`
}

// Summary returns the denormalized index entry for this sheet.
func (s *CareSheet) Summary() CareSheetSummary {
	return CareSheetSummary{ID: s.ID, Version: s.Version, CreatedAt: s.CreatedAt}
}

// SaveCareSheetRequest represents care sheet creation parameters
type SaveCareSheetRequest struct {
	Version string                  `json:"version" binding:"required"`
	Answers questionnaire.AnswerSet `json:"answers" binding:"required"`
}
