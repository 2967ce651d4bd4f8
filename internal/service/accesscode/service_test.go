package accesscode

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/service/audit"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
	"github.com/fsfcare/care-api/pkg/logger"
	"github.com/fsfcare/care-api/pkg/metrics"
)

// promauto registers against the default registry, one instance per binary
var testMetrics = metrics.NewMetrics("care_test")

type fakeCodeRepo struct {
	codes        map[uuid.UUID]*model.AccessCode
	users        *fakeUserRepo
	redeems      int
	collideFirst bool
	firstTaken   string
}

func newFakeCodeRepo(users *fakeUserRepo) *fakeCodeRepo {
	return &fakeCodeRepo{codes: map[uuid.UUID]*model.AccessCode{}, users: users}
}

func (r *fakeCodeRepo) Create(ctx context.Context, code *model.AccessCode) error {
	code.CreatedAt = time.Now()
	r.codes[code.ID] = code
	return nil
}

func (r *fakeCodeRepo) Get(ctx context.Context, id uuid.UUID) (*model.AccessCode, error) {
	code, ok := r.codes[id]
	if !ok {
		return nil, apperrors.NotFound("access code", nil)
	}
	return code, nil
}

func (r *fakeCodeRepo) GetByCode(ctx context.Context, raw string) (*model.AccessCode, error) {
	for _, code := range r.codes {
		if code.Code == raw {
			return code, nil
		}
	}
	return nil, apperrors.InvalidCode()
}

func (r *fakeCodeRepo) CodeExists(ctx context.Context, raw string) (bool, error) {
	// collideFirst reports the first drawn code as taken, forcing a retry
	if r.collideFirst && r.firstTaken == "" {
		r.firstTaken = raw
		return true, nil
	}
	if r.firstTaken != "" && raw == r.firstTaken {
		return true, nil
	}
	for _, code := range r.codes {
		if code.Code == raw {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCodeRepo) List(ctx context.Context) ([]*model.AccessCode, error) {
	out := make([]*model.AccessCode, 0, len(r.codes))
	for _, c := range r.codes {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCodeRepo) Redeem(ctx context.Context, codeID, userID uuid.UUID, role string, expiresAt *time.Time) error {
	r.redeems++
	code, ok := r.codes[codeID]
	if !ok {
		return apperrors.InvalidCode()
	}
	code.UsedBy = append(code.UsedBy, userID.String())

	user, ok := r.users.users[userID]
	if !ok {
		return apperrors.NotFound("user", nil)
	}
	user.Role = &role
	user.Active = true
	if expiresAt != nil {
		user.ExpiresAt = expiresAt
	}
	return nil
}

func (r *fakeCodeRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, c := range r.codes {
		if c.ExpiresAt.Before(cutoff) {
			delete(r.codes, id)
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, profile *model.Profile) error {
	user, ok := r.users[id]
	if !ok {
		return apperrors.NotFound("user", nil)
	}
	user.Profile = profile
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

type fakeAuditRepo struct {
	logs []*model.AuditLog
}

func (r *fakeAuditRepo) Create(ctx context.Context, log *model.AuditLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, entityType string, entityID uuid.UUID) ([]*model.AuditLog, error) {
	return r.logs, nil
}

func (r *fakeAuditRepo) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type fakeEmail struct {
	sentTo   string
	sentCode string
	fail     bool
}

func (e *fakeEmail) SendAccessCode(ctx context.Context, to, code, role string) error {
	if e.fail {
		return assert.AnError
	}
	e.sentTo = to
	e.sentCode = code
	return nil
}

func (e *fakeEmail) SendWelcome(ctx context.Context, to, name string) error { return nil }

type testEnv struct {
	svc      *Service
	codeRepo *fakeCodeRepo
	userRepo *fakeUserRepo
	outbox   *fakeOutboxRepo
	email    *fakeEmail
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := newFakeUserRepo()
	codes := newFakeCodeRepo(users)
	outbox := &fakeOutboxRepo{}
	mail := &fakeEmail{}
	svc := NewService(codes, users, outbox, mail, audit.NewService(&fakeAuditRepo{}), logger.NewLogger(nil), testMetrics)
	return &testEnv{svc: svc, codeRepo: codes, userRepo: users, outbox: outbox, email: mail}
}

func adminUser() *model.User {
	role := model.RoleAdmin
	return &model.User{
		Base:   model.Base{ID: uuid.New()},
		Email:  "admin@example.org",
		Role:   &role,
		Active: true,
	}
}

func pendingUser(env *testEnv) *model.User {
	user := &model.User{
		Base:  model.Base{ID: uuid.New()},
		Email: "volunteer@example.org",
	}
	env.userRepo.users[user.ID] = user
	return user
}

func seedCode(env *testEnv, mutate func(*model.AccessCode)) *model.AccessCode {
	code := &model.AccessCode{
		ID:        uuid.New(),
		Code:      "ABC123",
		Role:      model.RoleDoctor,
		UsedBy:    pq.StringArray{},
		MaxUses:   1,
		ExpiresAt: time.Now().AddDate(0, 0, 7),
		CreatedBy: uuid.New(),
	}
	if mutate != nil {
		mutate(code)
	}
	env.codeRepo.codes[code.ID] = code
	return code
}

func TestGenerateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	role := model.RoleDoctor
	actor := &model.User{Base: model.Base{ID: uuid.New()}, Role: &role, Active: true}

	_, err := env.svc.Generate(context.Background(), actor, &model.GenerateAccessCodeRequest{
		Role:    model.RoleGeneral,
		MaxUses: 1,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}

func TestGenerateRejectsUnknownRole(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Generate(context.Background(), adminUser(), &model.GenerateAccessCodeRequest{
		Role:    "superuser",
		MaxUses: 1,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestGenerate(t *testing.T) {
	env := newTestEnv(t)
	admin := adminUser()

	days := 30
	code, err := env.svc.Generate(context.Background(), admin, &model.GenerateAccessCodeRequest{
		Role:         model.RolePsychosocial,
		MaxUses:      5,
		DurationDays: &days,
	})
	require.NoError(t, err)

	assert.Len(t, code.Code, model.AccessCodeLength)
	assert.Equal(t, model.RolePsychosocial, code.Role)
	assert.Equal(t, 5, code.MaxUses)
	assert.Empty(t, code.UsedBy)
	assert.Equal(t, admin.ID, code.CreatedBy)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, defaultCodeTTLDays), code.ExpiresAt, time.Minute)

	require.Len(t, env.outbox.events, 1)
	assert.Equal(t, "access_code.created", env.outbox.events[0].EventType)
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	env := newTestEnv(t)
	env.codeRepo.collideFirst = true

	code, err := env.svc.Generate(context.Background(), adminUser(), &model.GenerateAccessCodeRequest{
		Role:    model.RoleGeneral,
		MaxUses: 1,
	})
	require.NoError(t, err)
	assert.NotEqual(t, env.codeRepo.firstTaken, code.Code)
}

func TestGenerateSendsNotification(t *testing.T) {
	env := newTestEnv(t)

	code, err := env.svc.Generate(context.Background(), adminUser(), &model.GenerateAccessCodeRequest{
		Role:        model.RoleGeneral,
		MaxUses:     1,
		NotifyEmail: "new@example.org",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.org", env.email.sentTo)
	assert.Equal(t, code.Code, env.email.sentCode)
}

func TestGenerateSurvivesEmailFailure(t *testing.T) {
	env := newTestEnv(t)
	env.email.fail = true

	_, err := env.svc.Generate(context.Background(), adminUser(), &model.GenerateAccessCodeRequest{
		Role:        model.RoleGeneral,
		MaxUses:     1,
		NotifyEmail: "new@example.org",
	})
	assert.NoError(t, err)
}

func TestRedeem(t *testing.T) {
	env := newTestEnv(t)
	user := pendingUser(env)
	days := 30
	code := seedCode(env, func(c *model.AccessCode) { c.DurationDays = &days })

	redeemed, err := env.svc.Redeem(context.Background(), user.ID, code.Code)
	require.NoError(t, err)

	require.NotNil(t, redeemed.Role)
	assert.Equal(t, model.RoleDoctor, *redeemed.Role)
	assert.True(t, redeemed.Active)
	require.NotNil(t, redeemed.ExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, days), *redeemed.ExpiresAt, time.Minute)
	assert.True(t, code.RedeemedBy(user.ID))
}

func TestRedeemWithoutDurationKeepsExpiration(t *testing.T) {
	env := newTestEnv(t)
	user := pendingUser(env)
	prior := time.Now().AddDate(0, 0, 90)
	user.ExpiresAt = &prior
	code := seedCode(env, nil)

	redeemed, err := env.svc.Redeem(context.Background(), user.ID, code.Code)
	require.NoError(t, err)
	require.NotNil(t, redeemed.ExpiresAt)
	assert.Equal(t, prior, *redeemed.ExpiresAt)
}

func TestRedeemCheckOrder(t *testing.T) {
	env := newTestEnv(t)
	user := pendingUser(env)

	_, err := env.svc.Redeem(context.Background(), user.ID, "NOPE99")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCode))

	// an expired code reports expiry even when also exhausted
	expired := seedCode(env, func(c *model.AccessCode) {
		c.Code = "EXP001"
		c.ExpiresAt = time.Now().Add(-time.Hour)
		c.UsedBy = pq.StringArray{uuid.NewString()}
	})
	_, err = env.svc.Redeem(context.Background(), user.ID, expired.Code)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeExpired))

	exhausted := seedCode(env, func(c *model.AccessCode) {
		c.Code = "FULL01"
		c.UsedBy = pq.StringArray{uuid.NewString()}
	})
	_, err = env.svc.Redeem(context.Background(), user.ID, exhausted.Code)
	assert.True(t, apperrors.Is(err, apperrors.ErrUsageLimitReached))

	repeat := seedCode(env, func(c *model.AccessCode) {
		c.Code = "DUP001"
		c.MaxUses = 5
		c.UsedBy = pq.StringArray{user.ID.String()}
	})
	_, err = env.svc.Redeem(context.Background(), user.ID, repeat.Code)
	assert.True(t, apperrors.Is(err, apperrors.ErrAlreadyRedeemed))
}

func TestRedeemFailureWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	user := pendingUser(env)
	seedCode(env, func(c *model.AccessCode) {
		c.Code = "EXP001"
		c.ExpiresAt = time.Now().Add(-time.Hour)
	})

	_, err := env.svc.Redeem(context.Background(), user.ID, "EXP001")
	require.Error(t, err)

	assert.Zero(t, env.codeRepo.redeems)
	assert.False(t, user.Active)
	assert.Nil(t, user.Role)
	assert.Empty(t, env.outbox.events)
}

func TestGetAndListRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	role := model.RoleGeneral
	actor := &model.User{Base: model.Base{ID: uuid.New()}, Role: &role, Active: true}

	_, err := env.svc.Get(context.Background(), actor, uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	_, err = env.svc.List(context.Background(), actor)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}

func TestRandomCodeAlphabet(t *testing.T) {
	code, err := randomCode(model.AccessCodeLength)
	require.NoError(t, err)
	require.Len(t, code, model.AccessCodeLength)
	for _, c := range code {
		assert.Contains(t, codeAlphabet, string(c))
	}
}
