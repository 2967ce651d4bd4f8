package caresheet

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/questionnaire"
	"github.com/fsfcare/care-api/internal/service/audit"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
	"github.com/fsfcare/care-api/pkg/logger"
	"github.com/fsfcare/care-api/pkg/metrics"
)

// promauto registers against the default registry, one instance per binary
var testMetrics = metrics.NewMetrics("care_test")

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{}}
}

func (r *fakePatientRepo) Create(ctx context.Context, patient *model.Patient) error {
	r.patients[patient.ID] = patient
	return nil
}

func (r *fakePatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	return patient, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, patient *model.Patient) error {
	r.patients[patient.ID] = patient
	return nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) List(ctx context.Context, filter *model.PatientFilter) ([]*model.Patient, error) {
	out := make([]*model.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, p)
	}
	return out, nil
}

// fakeSheetRepo mirrors the transactional contract: creating a sheet appends
// its summary to the patient, deleting removes both.
type fakeSheetRepo struct {
	sheets   map[uuid.UUID]*model.CareSheet
	patients *fakePatientRepo
}

func newFakeSheetRepo(patients *fakePatientRepo) *fakeSheetRepo {
	return &fakeSheetRepo{sheets: map[uuid.UUID]*model.CareSheet{}, patients: patients}
}

func (r *fakeSheetRepo) Create(ctx context.Context, sheet *model.CareSheet) error {
	patient, ok := r.patients.patients[sheet.PatientID]
	if !ok {
		return apperrors.NotFound("patient", nil)
	}
	sheet.CreatedAt = time.Now()
	r.sheets[sheet.ID] = sheet
	patient.CareSheetSummaries = append(patient.CareSheetSummaries, sheet.Summary())
	return nil
}

func (r *fakeSheetRepo) Get(ctx context.Context, id uuid.UUID) (*model.CareSheet, error) {
	sheet, ok := r.sheets[id]
	if !ok {
		return nil, apperrors.NotFound("care sheet", nil)
	}
	return sheet, nil
}

func (r *fakeSheetRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.CareSheet, error) {
	var out []*model.CareSheet
	for _, s := range r.sheets {
		if s.PatientID == patientID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSheetRepo) Delete(ctx context.Context, patientID, sheetID uuid.UUID) error {
	sheet, ok := r.sheets[sheetID]
	if !ok || sheet.PatientID != patientID {
		return apperrors.NotFound("care sheet", nil)
	}
	delete(r.sheets, sheetID)

	patient := r.patients.patients[patientID]
	kept := patient.CareSheetSummaries[:0]
	for _, s := range patient.CareSheetSummaries {
		if s.ID != sheetID {
			kept = append(kept, s)
		}
	}
	patient.CareSheetSummaries = kept
	return nil
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (r *fakeOutboxRepo) Create(ctx context.Context, event *model.OutboxEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *fakeOutboxRepo) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	return r.events, nil
}

func (r *fakeOutboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMessage *string) error {
	return nil
}

type fakeAuditRepo struct{}

func (r *fakeAuditRepo) Create(ctx context.Context, log *model.AuditLog) error { return nil }
func (r *fakeAuditRepo) List(ctx context.Context, entityType string, entityID uuid.UUID) ([]*model.AuditLog, error) {
	return nil, nil
}
func (r *fakeAuditRepo) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type testEnv struct {
	svc      *Service
	patients *fakePatientRepo
	sheets   *fakeSheetRepo
	outbox   *fakeOutboxRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	patients := newFakePatientRepo()
	sheets := newFakeSheetRepo(patients)
	outbox := &fakeOutboxRepo{}
	svc := NewService(
		sheets,
		patients,
		NewDraftStore(time.Hour),
		outbox,
		audit.NewService(&fakeAuditRepo{}),
		logger.NewLogger(nil),
		testMetrics,
	)
	return &testEnv{svc: svc, patients: patients, sheets: sheets, outbox: outbox}
}

func activeDoctor() *model.User {
	role := model.RoleDoctor
	return &model.User{
		Base:   model.Base{ID: uuid.New()},
		Email:  "doctor@example.org",
		Role:   &role,
		Active: true,
	}
}

func seedPatient(env *testEnv) *model.Patient {
	patient := &model.Patient{
		Base:               model.Base{ID: uuid.New()},
		Name:               "Amara",
		CareSheetSummaries: []model.CareSheetSummary{},
	}
	env.patients.patients[patient.ID] = patient
	return patient
}

func strPtr(s string) *string { return &s }

func TestSaveRequiresActiveRole(t *testing.T) {
	env := newTestEnv(t)
	inactive := &model.User{Base: model.Base{ID: uuid.New()}}

	_, err := env.svc.Save(context.Background(), inactive, uuid.New(), &model.SaveCareSheetRequest{
		Version: questionnaire.VersionV1,
		Answers: questionnaire.AnswerSet{},
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrAccessCodeRequired))
}

func TestSaveRequiresPatientID(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Save(context.Background(), activeDoctor(), uuid.Nil, &model.SaveCareSheetRequest{
		Version: questionnaire.VersionV1,
		Answers: questionnaire.AnswerSet{},
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrMissingPatientID))
}

func TestSave(t *testing.T) {
	env := newTestEnv(t)
	actor := activeDoctor()
	patient := seedPatient(env)

	var answers questionnaire.AnswerSet
	require.NoError(t, json.Unmarshal([]byte(`{
		"5": "Sim",
		"6": "epilepsy",
		"12": ["Alimentar", "Ambiental"],
		"1": {"Nome(s)": "Maria", "Telefone": "123"}
	}`), &answers))

	sheet, err := env.svc.Save(context.Background(), actor, patient.ID, &model.SaveCareSheetRequest{
		Version: questionnaire.VersionV1,
		Answers: answers,
	})
	require.NoError(t, err)

	assert.Equal(t, patient.ID, sheet.PatientID)
	require.NotNil(t, sheet.CreatedBy)
	assert.Equal(t, actor.ID, *sheet.CreatedBy)
	assert.Equal(t, questionnaire.KindChoice, sheet.Answers["5"].Kind)
	assert.Equal(t, questionnaire.KindMulti, sheet.Answers["12"].Kind)
	assert.Equal(t, questionnaire.KindGroup, sheet.Answers["1"].Kind)

	require.Len(t, patient.CareSheetSummaries, 1)
	assert.Equal(t, sheet.ID, patient.CareSheetSummaries[0].ID)
	assert.Equal(t, questionnaire.VersionV1, patient.CareSheetSummaries[0].Version)

	require.Len(t, env.outbox.events, 1)
	assert.Equal(t, "care_sheet.created", env.outbox.events[0].EventType)
}

func TestSaveRejectsUnknownVersion(t *testing.T) {
	env := newTestEnv(t)
	patient := seedPatient(env)

	_, err := env.svc.Save(context.Background(), activeDoctor(), patient.ID, &model.SaveCareSheetRequest{
		Version: "v999",
		Answers: questionnaire.AnswerSet{},
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestSaveRejectsShapeMismatch(t *testing.T) {
	env := newTestEnv(t)
	patient := seedPatient(env)

	// question 12 is multi-select, a scalar answer must be rejected
	_, err := env.svc.Save(context.Background(), activeDoctor(), patient.ID, &model.SaveCareSheetRequest{
		Version: questionnaire.VersionV1,
		Answers: questionnaire.AnswerSet{"12": questionnaire.TextAnswer("Alimentar")},
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestSaveUnknownPatient(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Save(context.Background(), activeDoctor(), uuid.New(), &model.SaveCareSheetRequest{
		Version: questionnaire.VersionV1,
		Answers: questionnaire.AnswerSet{},
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestDeleteRemovesSheetAndSummary(t *testing.T) {
	env := newTestEnv(t)
	actor := activeDoctor()
	patient := seedPatient(env)

	first, err := env.svc.Save(context.Background(), actor, patient.ID, &model.SaveCareSheetRequest{
		Version: questionnaire.VersionV1,
		Answers: questionnaire.AnswerSet{},
	})
	require.NoError(t, err)
	second, err := env.svc.Save(context.Background(), actor, patient.ID, &model.SaveCareSheetRequest{
		Version: questionnaire.VersionV1,
		Answers: questionnaire.AnswerSet{},
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(context.Background(), actor, patient.ID, first.ID))

	_, err = env.svc.Get(context.Background(), actor, first.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	require.Len(t, patient.CareSheetSummaries, 1)
	assert.Equal(t, second.ID, patient.CareSheetSummaries[0].ID)
}

func TestDraftFlow(t *testing.T) {
	env := newTestEnv(t)
	actor := activeDoctor()
	patient := seedPatient(env)
	ctx := context.Background()

	draft, err := env.svc.StartDraft(ctx, actor, patient.ID, questionnaire.VersionV1)
	require.NoError(t, err)
	assert.Equal(t, 0, draft.Index())

	id := draft.ID.String()

	_, err = env.svc.AnswerDraft(ctx, actor, id, questionnaire.AnswerInput{
		Fields: map[string]string{"Nome(s)": "Maria"},
	})
	require.NoError(t, err)

	_, err = env.svc.AdvanceDraft(ctx, actor, id)
	require.NoError(t, err)
	assert.Equal(t, 1, draft.Index())

	_, err = env.svc.RewindDraft(ctx, actor, id)
	require.NoError(t, err)
	assert.Equal(t, 0, draft.Index())

	// saving before the final question is rejected
	_, err = env.svc.SaveDraft(ctx, actor, id)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))

	set, err := questionnaire.GetSet(questionnaire.VersionV1)
	require.NoError(t, err)
	for i := 0; i < set.Len(); i++ {
		_, err = env.svc.AdvanceDraft(ctx, actor, id)
		require.NoError(t, err)
	}

	sheet, err := env.svc.SaveDraft(ctx, actor, id)
	require.NoError(t, err)
	assert.Equal(t, patient.ID, sheet.PatientID)
	assert.Equal(t, "Maria", sheet.Answers["1"].Fields["Nome(s)"])

	// the draft is gone once saved
	_, err = env.svc.GetDraft(ctx, actor, id)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestStartDraftUnknownPatient(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.StartDraft(context.Background(), activeDoctor(), uuid.New(), questionnaire.VersionV1)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestStartDraftUnknownVersion(t *testing.T) {
	env := newTestEnv(t)
	patient := seedPatient(env)

	_, err := env.svc.StartDraft(context.Background(), activeDoctor(), patient.ID, "v999")
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestAnswerDraftBadInput(t *testing.T) {
	env := newTestEnv(t)
	actor := activeDoctor()
	patient := seedPatient(env)
	ctx := context.Background()

	draft, err := env.svc.StartDraft(ctx, actor, patient.ID, questionnaire.VersionV1)
	require.NoError(t, err)

	// question 1 is a group, a bare label does not apply
	_, err = env.svc.AnswerDraft(ctx, actor, draft.ID.String(), questionnaire.AnswerInput{
		Label: strPtr("Sim"),
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestDiscardDraft(t *testing.T) {
	env := newTestEnv(t)
	actor := activeDoctor()
	patient := seedPatient(env)
	ctx := context.Background()

	draft, err := env.svc.StartDraft(ctx, actor, patient.ID, questionnaire.VersionV1)
	require.NoError(t, err)

	require.NoError(t, env.svc.DiscardDraft(ctx, actor, draft.ID.String()))
	_, err = env.svc.GetDraft(ctx, actor, draft.ID.String())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestExpiredRoleBlocksClinicalOps(t *testing.T) {
	env := newTestEnv(t)
	role := model.RoleDoctor
	expired := time.Now().Add(-time.Hour)
	actor := &model.User{
		Base:      model.Base{ID: uuid.New()},
		Role:      &role,
		Active:    true,
		ExpiresAt: &expired,
	}

	_, err := env.svc.ListByPatient(context.Background(), actor, uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrAccessCodeRequired))
}
