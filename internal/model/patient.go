package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a registered patient. CareSheetSummaries is a
// denormalized index of the patient's care sheets, maintained in the same
// transaction as care-sheet creation and deletion.
type Patient struct {
	Base
	CreatedBy          uuid.UUID          `json:"created_by" db:"created_by"`
	Name               string             `json:"name" db:"name"`
	BirthDate          *time.Time         `json:"birth_date,omitempty" db:"birth_date"`
	DocumentID         string             `json:"document_id,omitempty" db:"document_id"`
	Phone              string             `json:"phone,omitempty" db:"phone"`
	Address            string             `json:"address,omitempty" db:"address"`
	Notes              string             `json:"notes,omitempty" db:"notes"`
	Gender             *string            `json:"gender,omitempty" db:"gender"`
	PhotoURL           string             `json:"photo_url,omitempty" db:"photo_url"`
	ThumbnailURL       string             `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	CareSheetSummaries []CareSheetSummary `json:"care_sheet_summaries" db:"-"`
	SummariesJSON      []byte             `json:"-" db:"care_sheet_summaries"`
}

// CareSheetSummary is the lightweight index entry stored on the patient.
type CareSheetSummary struct {
	ID        uuid.UUID `json:"id"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// PatientFilter represents patient search parameters
type PatientFilter struct {
	CreatedBy  *uuid.UUID `json:"created_by" form:"created_by"`
	SearchTerm string     `json:"search_term" form:"search_term"`
}

// CreatePatientRequest represents patient creation parameters
type CreatePatientRequest struct {
	Name       string     `json:"name" binding:"required"`
	BirthDate  *time.Time `json:"birth_date"`
	DocumentID string     `json:"document_id"`
	Phone      string     `json:"phone"`
	Address    string     `json:"address"`
	Notes      string     `json:"notes"`
	Gender     *string    `json:"gender" binding:"omitempty,oneof=female male other"`
}

// UpdatePatientRequest represents patient update parameters; nil fields are
// left untouched.
type UpdatePatientRequest struct {
	Name       *string    `json:"name"`
	BirthDate  *time.Time `json:"birth_date"`
	DocumentID *string    `json:"document_id"`
	Phone      *string    `json:"phone"`
	Address    *string    `json:"address"`
	Notes      *string    `json:"notes"`
	Gender     *string    `json:"gender" binding:"omitempty,oneof=female male other"`
}
