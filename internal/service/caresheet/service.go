package caresheet

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/questionnaire"
	"github.com/fsfcare/care-api/internal/repository"
	"github.com/fsfcare/care-api/internal/service/audit"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
	"github.com/fsfcare/care-api/pkg/logger"
	"github.com/fsfcare/care-api/pkg/metrics"
)

type Service struct {
	repo        repository.CareSheetRepository
	patientRepo repository.PatientRepository
	drafts      *DraftStore
	outbox      repository.OutboxRepository
	auditor     *audit.Service
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

func NewService(
	repo repository.CareSheetRepository,
	patientRepo repository.PatientRepository,
	drafts *DraftStore,
	outbox repository.OutboxRepository,
	auditor *audit.Service,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		drafts:      drafts,
		outbox:      outbox,
		auditor:     auditor,
		logger:      logger,
		metrics:     metrics,
	}
}

// Save validates and persists a completed questionnaire for a patient. The
// sheet insert and the patient's summary update commit together.
func (s *Service) Save(ctx context.Context, actor *model.User, patientID uuid.UUID, req *model.SaveCareSheetRequest) (*model.CareSheet, error) {
	if err := requireActiveRole(actor); err != nil {
		return nil, err
	}
	if patientID == uuid.Nil {
		return nil, apperrors.MissingPatientID()
	}

	set, err := questionnaire.GetSet(req.Version)
	if err != nil {
		return nil, apperrors.BadRequest("unknown questionnaire version", err)
	}
	if err := req.Answers.Normalize(set); err != nil {
		return nil, apperrors.BadRequest("invalid answers", err)
	}

	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, err
	}

	actorID := actor.ID
	sheet := &model.CareSheet{
		ID:        uuid.New(),
		PatientID: patientID,
		Version:   req.Version,
		Answers:   req.Answers,
		CreatedBy: &actorID,
	}

	if err := s.repo.Create(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to save care sheet: %w", err)
	}

	s.metrics.CareSheetsSaved.Inc()
	s.auditor.Log(ctx, actor.ID, "create", "care_sheet", sheet.ID, &audit.LogOptions{
		Metadata: map[string]interface{}{"patient_id": patientID, "version": sheet.Version},
	})
	s.emitEvent(ctx, "care_sheet.created", sheet.Summary())

	return sheet, nil
}

func (s *Service) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.CareSheet, error) {
	if err := requireActiveRole(actor); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, actor *model.User, patientID uuid.UUID) ([]*model.CareSheet, error) {
	if err := requireActiveRole(actor); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

// Delete removes a sheet and its summary entry, leaving the patient's other
// sheets intact.
func (s *Service) Delete(ctx context.Context, actor *model.User, patientID, sheetID uuid.UUID) error {
	if err := requireActiveRole(actor); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, patientID, sheetID); err != nil {
		return err
	}

	s.auditor.Log(ctx, actor.ID, "delete", "care_sheet", sheetID, nil)
	s.emitEvent(ctx, "care_sheet.deleted", map[string]interface{}{
		"patient_id": patientID,
		"sheet_id":   sheetID,
	})

	return nil
}

// StartDraft opens a stepwise questionnaire session for a patient.
func (s *Service) StartDraft(ctx context.Context, actor *model.User, patientID uuid.UUID, version string) (*questionnaire.Draft, error) {
	if err := requireActiveRole(actor); err != nil {
		return nil, err
	}
	if patientID == uuid.Nil {
		return nil, apperrors.MissingPatientID()
	}
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, err
	}

	draft, err := questionnaire.NewDraft(patientID, actor.ID, version)
	if err != nil {
		return nil, apperrors.BadRequest("unknown questionnaire version", err)
	}
	s.drafts.Put(draft)
	return draft, nil
}

func (s *Service) GetDraft(ctx context.Context, actor *model.User, draftID string) (*questionnaire.Draft, error) {
	if err := requireActiveRole(actor); err != nil {
		return nil, err
	}
	return s.drafts.Get(draftID)
}

// AnswerDraft applies an answer to the draft's current question.
func (s *Service) AnswerDraft(ctx context.Context, actor *model.User, draftID string, input questionnaire.AnswerInput) (*questionnaire.Draft, error) {
	draft, err := s.GetDraft(ctx, actor, draftID)
	if err != nil {
		return nil, err
	}
	if err := draft.Apply(input); err != nil {
		return nil, apperrors.BadRequest("invalid answer", err)
	}
	s.drafts.Touch(draft)
	return draft, nil
}

func (s *Service) AdvanceDraft(ctx context.Context, actor *model.User, draftID string) (*questionnaire.Draft, error) {
	draft, err := s.GetDraft(ctx, actor, draftID)
	if err != nil {
		return nil, err
	}
	draft.Next()
	s.drafts.Touch(draft)
	return draft, nil
}

func (s *Service) RewindDraft(ctx context.Context, actor *model.User, draftID string) (*questionnaire.Draft, error) {
	draft, err := s.GetDraft(ctx, actor, draftID)
	if err != nil {
		return nil, err
	}
	draft.Previous()
	s.drafts.Touch(draft)
	return draft, nil
}

// SaveDraft persists the draft as a care sheet. Only a draft positioned on
// its last question can be saved, matching the stepwise entry flow.
func (s *Service) SaveDraft(ctx context.Context, actor *model.User, draftID string) (*model.CareSheet, error) {
	draft, err := s.GetDraft(ctx, actor, draftID)
	if err != nil {
		return nil, err
	}
	if !draft.AtEnd() {
		return nil, apperrors.BadRequest("draft is not on the final question", nil)
	}

	sheet, err := s.Save(ctx, actor, draft.PatientID, &model.SaveCareSheetRequest{
		Version: draft.Version,
		Answers: draft.Answers(),
	})
	if err != nil {
		return nil, err
	}

	s.drafts.Delete(draftID)
	return sheet, nil
}

func (s *Service) DiscardDraft(ctx context.Context, actor *model.User, draftID string) error {
	if err := requireActiveRole(actor); err != nil {
		return err
	}
	s.drafts.Delete(draftID)
	return nil
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
