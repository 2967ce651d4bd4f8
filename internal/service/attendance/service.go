package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/repository"
	"github.com/fsfcare/care-api/internal/service/audit"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
	"github.com/fsfcare/care-api/pkg/logger"
)

type Service struct {
	repo        repository.AttendanceRepository
	patientRepo repository.PatientRepository
	outbox      repository.OutboxRepository
	auditor     *audit.Service
	logger      *logger.Logger
}

func NewService(repo repository.AttendanceRepository, patientRepo repository.PatientRepository, outbox repository.OutboxRepository, auditor *audit.Service, logger *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		outbox:      outbox,
		auditor:     auditor,
		logger:      logger,
	}
}

// Create records a clinical interaction. The patient must exist and the
// authoring user is taken from the actor, never from the request.
func (s *Service) Create(ctx context.Context, actor *model.User, req *model.CreateAttendanceRequest) (*model.Attendance, error) {
	if err := requireActiveRole(actor); err != nil {
		return nil, err
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid patient id", err)
	}

	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, err
	}

	attendance := &model.Attendance{
		Base: model.Base{
			ID: uuid.New(),
		},
		PatientID:   patientID,
		UserID:      actor.ID,
		History:     req.History,
		Diagnosis:   req.Diagnosis,
		Treatment:   req.Treatment,
		Medications: req.Medications,
		Notes:       req.Notes,
	}

	if err := s.repo.Create(ctx, attendance); err != nil {
		return nil, fmt.Errorf("failed to create attendance: %w", err)
	}

	s.auditor.Log(ctx, actor.ID, "create", "attendance", attendance.ID, &audit.LogOptions{Changes: attendance})
	s.emitEvent(ctx, "attendance.created", attendance)

	return attendance, nil
}

func (s *Service) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Attendance, error) {
	if err := requireActiveRole(actor); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Update edits the clinical text of an attendance. The patient and author
// linkage cannot change.
func (s *Service) Update(ctx context.Context, actor *model.User, id uuid.UUID, req *model.UpdateAttendanceRequest) (*model.Attendance, error) {
	if err := requireActiveRole(actor); err != nil {
		return nil, err
	}

	attendance, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.History != nil {
		attendance.History = *req.History
	}
	if req.Diagnosis != nil {
		attendance.Diagnosis = *req.Diagnosis
	}
	if req.Treatment != nil {
		attendance.Treatment = *req.Treatment
	}
	if req.Medications != nil {
		attendance.Medications = *req.Medications
	}
	if req.Notes != nil {
		attendance.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, attendance); err != nil {
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}

	s.auditor.Log(ctx, actor.ID, "update", "attendance", attendance.ID, &audit.LogOptions{Changes: req})
	s.emitEvent(ctx, "attendance.updated", attendance)

	return attendance, nil
}

// List returns attendances newest first.
func (s *Service) List(ctx context.Context, actor *model.User, filter *model.AttendanceFilter) ([]*model.Attendance, error) {
	if err := requireActiveRole(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

func requireActiveRole(actor *model.User) error {
	if actor.NeedsAccessCode(time.Now()) {
		return apperrors.AccessCodeRequired()
	}
	return nil
}

func (s *Service) emitEvent(ctx context.Context, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error(err, "Failed to marshal outbox payload", "event_type", eventType)
		return
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{EventType: eventType, Payload: data}); err != nil {
		s.logger.Error(err, "Failed to create outbox event", "event_type", eventType)
	}
}
