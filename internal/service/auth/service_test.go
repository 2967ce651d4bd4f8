package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/service/audit"
	pkgauth "github.com/fsfcare/care-api/pkg/auth"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
	"github.com/fsfcare/care-api/pkg/security"
)

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

type fakeAuditRepo struct{}

func (r *fakeAuditRepo) Create(ctx context.Context, log *model.AuditLog) error { return nil }
func (r *fakeAuditRepo) List(ctx context.Context, entityType string, entityID uuid.UUID) ([]*model.AuditLog, error) {
	return nil, nil
}
func (r *fakeAuditRepo) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	svc := NewService(repo, jwtSvc, security.NewBcryptHasher(4), audit.NewService(&fakeAuditRepo{}))
	return svc, repo
}

func TestRegister(t *testing.T) {
	svc, repo := newTestService(t)

	tokens, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "new@example.org",
		Password: "password123",
		Name:     "New Volunteer",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	user, err := repo.GetByEmail(context.Background(), "new@example.org")
	require.NoError(t, err)
	assert.False(t, user.Active)
	assert.Nil(t, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "dup@example.org",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "dup@example.org",
		Password: "password456",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "login@example.org",
		Password: "password123",
	})
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), "login@example.org", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, int64(3600), tokens.ExpiresIn)

	_, err = svc.Login(context.Background(), "login@example.org", "wrong")
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	_, err = svc.Login(context.Background(), "nobody@example.org", "password123")
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestTokenRoundTrip(t *testing.T) {
	svc, repo := newTestService(t)

	tokens, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "token@example.org",
		Password: "password123",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "token@example.org", claims.Email)
	_, ok := repo.users[claims.UserID]
	assert.True(t, ok)

	// a refresh token is not a valid access token
	_, err = svc.ValidateToken(context.Background(), tokens.RefreshToken)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	refreshed, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestSession(t *testing.T) {
	svc, repo := newTestService(t)

	tokens, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "session@example.org",
		Password: "password123",
	})
	require.NoError(t, err)

	session, err := svc.Session(context.Background(), tokens.User.ID)
	require.NoError(t, err)
	assert.True(t, session.NeedsAccessCode)

	role := model.RoleGeneral
	user := repo.users[tokens.User.ID]
	user.Role = &role
	user.Active = true

	session, err = svc.Session(context.Background(), tokens.User.ID)
	require.NoError(t, err)
	assert.False(t, session.NeedsAccessCode)
}
