package model

import (
	"github.com/google/uuid"
)

// Attendance records a single clinical interaction between a volunteer
// professional and a patient. PatientID and UserID are fixed at creation.
type Attendance struct {
	Base
	PatientID   uuid.UUID `json:"patient_id" db:"patient_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	History     string    `json:"history,omitempty" db:"history"`
	Diagnosis   string    `json:"diagnosis,omitempty" db:"diagnosis"`
	Treatment   string    `json:"treatment,omitempty" db:"treatment"`
	Medications string    `json:"medications,omitempty" db:"medications"`
	Notes       string    `json:"notes,omitempty" db:"notes"`
}

// AttendanceFilter represents attendance search parameters
type AttendanceFilter struct {
	PatientID *uuid.UUID `json:"patient_id" form:"patient_id"`
	UserID    *uuid.UUID `json:"user_id" form:"user_id"`
}

// CreateAttendanceRequest represents attendance creation parameters
type CreateAttendanceRequest struct {
	PatientID   string `json:"patient_id" binding:"required,uuid"`
	History     string `json:"history"`
	Diagnosis   string `json:"diagnosis"`
	Treatment   string `json:"treatment"`
	Medications string `json:"medications"`
	Notes       string `json:"notes"`
}

// UpdateAttendanceRequest represents attendance update parameters. The
// patient and author linkage is immutable after creation.
type UpdateAttendanceRequest struct {
	History     *string `json:"history"`
	Diagnosis   *string `json:"diagnosis"`
	Treatment   *string `json:"treatment"`
	Medications *string `json:"medications"`
	Notes       *string `json:"notes"`
}
