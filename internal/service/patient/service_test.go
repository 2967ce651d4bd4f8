package patient

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/service/audit"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
	"github.com/fsfcare/care-api/pkg/logger"
)

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
	sheets   map[uuid.UUID]uuid.UUID // sheet id -> patient id
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{
		patients: map[uuid.UUID]*model.Patient{},
		sheets:   map[uuid.UUID]uuid.UUID{},
	}
}

func (r *fakePatientRepo) Create(ctx context.Context, patient *model.Patient) error {
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt
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
	if _, ok := r.patients[patient.ID]; !ok {
		return apperrors.NotFound("patient", nil)
	}
	patient.UpdatedAt = time.Now()
	r.patients[patient.ID] = patient
	return nil
}

// Delete mirrors the transactional cascade: the patient's sheets go with it.
func (r *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.patients[id]; !ok {
		return apperrors.NotFound("patient", nil)
	}
	for sheetID, patientID := range r.sheets {
		if patientID == id {
			delete(r.sheets, sheetID)
		}
	}
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) List(ctx context.Context, filter *model.PatientFilter) ([]*model.Patient, error) {
	var out []*model.Patient
	for _, p := range r.patients {
		if filter != nil && filter.CreatedBy != nil && p.CreatedBy != *filter.CreatedBy {
			continue
		}
		out = append(out, p)
	}
	return out, nil
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

type fakeBlobStore struct {
	uploads map[string][]byte
}

func (s *fakeBlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if s.uploads == nil {
		s.uploads = map[string][]byte{}
	}
	s.uploads[key] = data
	return "https://cdn.example.org/" + key, nil
}

func (s *fakeBlobStore) Delete(ctx context.Context, key string) error {
	delete(s.uploads, key)
	return nil
}

type testEnv struct {
	svc    *Service
	repo   *fakePatientRepo
	outbox *fakeOutboxRepo
	blobs  *fakeBlobStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := newFakePatientRepo()
	outbox := &fakeOutboxRepo{}
	blobs := &fakeBlobStore{}
	svc := NewService(repo, outbox, blobs, audit.NewService(&fakeAuditRepo{}), logger.NewLogger(nil))
	return &testEnv{svc: svc, repo: repo, outbox: outbox, blobs: blobs}
}

func activeUser(role string) *model.User {
	return &model.User{
		Base:   model.Base{ID: uuid.New()},
		Email:  "volunteer@example.org",
		Role:   &role,
		Active: true,
	}
}

func strPtr(s string) *string { return &s }

func TestCreateRequiresActiveRole(t *testing.T) {
	env := newTestEnv(t)
	pending := &model.User{Base: model.Base{ID: uuid.New()}}

	_, err := env.svc.Create(context.Background(), pending, &model.CreatePatientRequest{Name: "Amara"})
	assert.True(t, apperrors.Is(err, apperrors.ErrAccessCodeRequired))
}

func TestCreate(t *testing.T) {
	env := newTestEnv(t)
	actor := activeUser(model.RoleGeneral)

	patient, err := env.svc.Create(context.Background(), actor, &model.CreatePatientRequest{
		Name:  "Amara",
		Phone: "+265 000 000",
	})
	require.NoError(t, err)

	assert.Equal(t, actor.ID, patient.CreatedBy)
	assert.Equal(t, "Amara", patient.Name)
	assert.NotNil(t, patient.CareSheetSummaries)
	assert.Empty(t, patient.CareSheetSummaries)

	require.Len(t, env.outbox.events, 1)
	assert.Equal(t, "patient.created", env.outbox.events[0].EventType)
}

func TestUpdateMergesOnlyGivenFields(t *testing.T) {
	env := newTestEnv(t)
	actor := activeUser(model.RoleDoctor)

	patient, err := env.svc.Create(context.Background(), actor, &model.CreatePatientRequest{
		Name:  "Amara",
		Phone: "+265 000 000",
		Notes: "initial notes",
	})
	require.NoError(t, err)

	updated, err := env.svc.Update(context.Background(), actor, patient.ID, &model.UpdatePatientRequest{
		Phone: strPtr("+265 111 111"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Amara", updated.Name)
	assert.Equal(t, "+265 111 111", updated.Phone)
	assert.Equal(t, "initial notes", updated.Notes)
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	actor := activeUser(model.RoleDoctor)

	patient, err := env.svc.Create(context.Background(), actor, &model.CreatePatientRequest{Name: "Amara"})
	require.NoError(t, err)
	sheetID := uuid.New()
	env.repo.sheets[sheetID] = patient.ID

	require.NoError(t, env.svc.Delete(context.Background(), actor, patient.ID))

	_, err = env.svc.Get(context.Background(), actor, patient.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.Empty(t, env.repo.sheets)

	err = env.svc.Delete(context.Background(), actor, patient.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestListFiltersByCreator(t *testing.T) {
	env := newTestEnv(t)
	first := activeUser(model.RoleGeneral)
	second := activeUser(model.RoleGeneral)

	_, err := env.svc.Create(context.Background(), first, &model.CreatePatientRequest{Name: "Amara"})
	require.NoError(t, err)
	_, err = env.svc.Create(context.Background(), second, &model.CreatePatientRequest{Name: "Biko"})
	require.NoError(t, err)

	patients, err := env.svc.List(context.Background(), first, &model.PatientFilter{CreatedBy: &first.ID})
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "Amara", patients[0].Name)
}

func TestUploadPhoto(t *testing.T) {
	env := newTestEnv(t)
	actor := activeUser(model.RoleGeneral)

	patient, err := env.svc.Create(context.Background(), actor, &model.CreatePatientRequest{Name: "Amara"})
	require.NoError(t, err)

	updated, err := env.svc.UploadPhoto(context.Background(), actor, patient.ID, []byte("jpeg bytes"), "image/jpeg")
	require.NoError(t, err)

	key := fmt.Sprintf("patients/%s/photo", patient.ID)
	assert.Equal(t, []byte("jpeg bytes"), env.blobs.uploads[key])
	assert.Equal(t, "https://cdn.example.org/"+key, updated.PhotoURL)
	assert.Equal(t, updated.PhotoURL, updated.ThumbnailURL)
}
