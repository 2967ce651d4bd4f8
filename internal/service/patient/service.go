package patient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/repository"
	"github.com/fsfcare/care-api/internal/service/audit"
	"github.com/fsfcare/care-api/internal/storage"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
	"github.com/fsfcare/care-api/pkg/logger"
)

type Service struct {
	repo    repository.PatientRepository
	outbox  repository.OutboxRepository
	store   storage.BlobStore
	auditor *audit.Service
	logger  *logger.Logger
}

func NewService(repo repository.PatientRepository, outbox repository.OutboxRepository, store storage.BlobStore, auditor *audit.Service, logger *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		outbox:  outbox,
		store:   store,
		auditor: auditor,
		logger:  logger,
	}
}

func (s *Service) Create(ctx context.Context, actor *model.User, req *model.CreatePatientRequest) (*model.Patient, error) {
	if err := requireActiveRole(actor); err != nil {
		return nil, err
	}

	patient := &model.Patient{
		Base: model.Base{
			ID: uuid.New(),
		},
		CreatedBy:          actor.ID,
		Name:               req.Name,
		BirthDate:          req.BirthDate,
		DocumentID:         req.DocumentID,
		Phone:              req.Phone,
		Address:            req.Address,
		Notes:              req.Notes,
		Gender:             req.Gender,
		CareSheetSummaries: []model.CareSheetSummary{},
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.auditor.Log(ctx, actor.ID, "create", "patient", patient.ID, &audit.LogOptions{Changes: patient})
	s.emitEvent(ctx, "patient.created", patient)

	return patient, nil
}

func (s *Service) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Patient, error) {
	if err := requireActiveRole(actor); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, actor *model.User, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	if err := requireActiveRole(actor); err != nil {
		return nil, err
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.BirthDate != nil {
		patient.BirthDate = req.BirthDate
	}
	if req.DocumentID != nil {
		patient.DocumentID = *req.DocumentID
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.Notes != nil {
		patient.Notes = *req.Notes
	}
	if req.Gender != nil {
		patient.Gender = req.Gender
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	s.auditor.Log(ctx, actor.ID, "update", "patient", patient.ID, &audit.LogOptions{Changes: req})
	s.emitEvent(ctx, "patient.updated", patient)

	return patient, nil
}

// Delete removes the patient together with its care sheets. The repository
// runs both deletes in one transaction.
func (s *Service) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if err := requireActiveRole(actor); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditor.Log(ctx, actor.ID, "delete", "patient", id, nil)
	s.emitEvent(ctx, "patient.deleted", map[string]interface{}{"patient_id": id})

	return nil
}

func (s *Service) List(ctx context.Context, actor *model.User, filter *model.PatientFilter) ([]*model.Patient, error) {
	if err := requireActiveRole(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

// UploadPhoto stores the patient's photo and records its public URL.
func (s *Service) UploadPhoto(ctx context.Context, actor *model.User, id uuid.UUID, data []byte, contentType string) (*model.Patient, error) {
	if err := requireActiveRole(actor); err != nil {
		return nil, err
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("patients/%s/photo", id)
	url, err := s.store.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	patient.PhotoURL = url
	patient.ThumbnailURL = url
	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to save photo URL: %w", err)
	}

	s.auditor.Log(ctx, actor.ID, "upload_photo", "patient", id, nil)

	return patient, nil
}

// requireActiveRole gates every patient operation on a live role. Expired or
// inactive accounts must redeem an access code first.
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
