package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/repository"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := marshalUserFields(user); err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, email, name, password_hash, role, active, expires_at, profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.Role,
		user.Active,
		user.ExpiresAt,
		user.ProfileJSON,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT * FROM users WHERE id = $1`
	var user model.User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("user", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := unmarshalUserFields(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM users WHERE email = $1`
	var user model.User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("user", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if err := unmarshalUserFields(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	if err := marshalUserFields(user); err != nil {
		return err
	}

	query := `
		UPDATE users
		SET name = $1, role = $2, active = $3, expires_at = $4, profile = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Role,
		user.Active,
		user.ExpiresAt,
		user.ProfileJSON,
		time.Now(),
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NotFound("user", nil)
	}
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, profile *model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := `UPDATE users SET name = $1, profile = $2, updated_at = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, profile.Name, data, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NotFound("user", nil)
	}
	return nil
}

func marshalUserFields(user *model.User) error {
	if user.Profile == nil {
		user.ProfileJSON = nil
		return nil
	}
	data, err := json.Marshal(user.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	user.ProfileJSON = data
	return nil
}

func unmarshalUserFields(user *model.User) error {
	if len(user.ProfileJSON) == 0 {
		return nil
	}
	var profile model.Profile
	if err := json.Unmarshal(user.ProfileJSON, &profile); err != nil {
		return fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	user.Profile = &profile
	return nil
}
