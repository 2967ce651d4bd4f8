package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fsfcare/care-api/internal/model"
)

// All repository interfaces in one file
type (
	// UserRepository handles user account operations
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		UpdateProfile(ctx context.Context, id uuid.UUID, profile *model.Profile) error
	}

	// AccessCodeRepository handles access-code storage and redemption.
	AccessCodeRepository interface {
		Create(ctx context.Context, code *model.AccessCode) error
		Get(ctx context.Context, id uuid.UUID) (*model.AccessCode, error)
		GetByCode(ctx context.Context, code string) (*model.AccessCode, error)
		CodeExists(ctx context.Context, code string) (bool, error)
		List(ctx context.Context) ([]*model.AccessCode, error)
		// Redeem appends userID to the code's used_by and promotes the user,
		// re-validating the code's limits inside a single transaction. A nil
		// expiresAt leaves the user's prior expiration untouched.
		Redeem(ctx context.Context, codeID, userID uuid.UUID, role string, expiresAt *time.Time) error
		DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		// Delete removes the patient and its care sheets in one transaction.
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.PatientFilter) ([]*model.Patient, error)
	}

	AttendanceRepository interface {
		Create(ctx context.Context, attendance *model.Attendance) error
		Get(ctx context.Context, id uuid.UUID) (*model.Attendance, error)
		Update(ctx context.Context, attendance *model.Attendance) error
		// List returns attendances ordered by creation time, newest first.
		List(ctx context.Context, filter *model.AttendanceFilter) ([]*model.Attendance, error)
	}

	// CareSheetRepository persists questionnaire snapshots together with the
	// owning patient's denormalized summary index.
	CareSheetRepository interface {
		// Create inserts the sheet and appends its summary to the patient in
		// one transaction.
		Create(ctx context.Context, sheet *model.CareSheet) error
		Get(ctx context.Context, id uuid.UUID) (*model.CareSheet, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.CareSheet, error)
		// Delete removes the sheet and its summary entry in one transaction,
		// leaving other summaries untouched.
		Delete(ctx context.Context, patientID, sheetID uuid.UUID) error
	}

	AuditRepository interface {
		Create(ctx context.Context, log *model.AuditLog) error
		List(ctx context.Context, entityType string, entityID uuid.UUID) ([]*model.AuditLog, error)
		Cleanup(ctx context.Context, before time.Time) (int64, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMessage *string) error
	}
)
