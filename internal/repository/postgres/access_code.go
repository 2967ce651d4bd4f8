package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/repository"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
)

type accessCodeRepository struct {
	BaseRepository
}

func NewAccessCodeRepository(db *sqlx.DB) repository.AccessCodeRepository {
	return &accessCodeRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *accessCodeRepository) Create(ctx context.Context, code *model.AccessCode) error {
	query := `
		INSERT INTO access_codes (
			id, code, role, used_by, max_uses, expires_at, duration_days,
			created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	code.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		code.ID,
		code.Code,
		code.Role,
		code.UsedBy,
		code.MaxUses,
		code.ExpiresAt,
		code.DurationDays,
		code.CreatedBy,
		code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create access code: %w", err)
	}
	return nil
}

func (r *accessCodeRepository) Get(ctx context.Context, id uuid.UUID) (*model.AccessCode, error) {
	query := `SELECT * FROM access_codes WHERE id = $1`
	var code model.AccessCode
	err := r.db.GetContext(ctx, &code, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("access code", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get access code: %w", err)
	}
	return &code, nil
}

func (r *accessCodeRepository) GetByCode(ctx context.Context, code string) (*model.AccessCode, error) {
	query := `SELECT * FROM access_codes WHERE code = $1`
	var ac model.AccessCode
	err := r.db.GetContext(ctx, &ac, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.InvalidCode()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get access code: %w", err)
	}
	return &ac, nil
}

func (r *accessCodeRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM access_codes WHERE code = $1)`
	if err := r.db.GetContext(ctx, &exists, query, code); err != nil {
		return false, fmt.Errorf("failed to check access code: %w", err)
	}
	return exists, nil
}

func (r *accessCodeRepository) List(ctx context.Context) ([]*model.AccessCode, error) {
	query := `SELECT * FROM access_codes ORDER BY created_at DESC`
	var codes []*model.AccessCode
	if err := r.db.SelectContext(ctx, &codes, query); err != nil {
		return nil, fmt.Errorf("failed to list access codes: %w", err)
	}
	return codes, nil
}

// Redeem records the redemption and promotes the user in one transaction.
// The code row is locked and its limits re-checked under the lock, so two
// concurrent redemptions of a single-use code cannot both succeed. A nil
// expiresAt preserves whatever expiration the user already had.
func (r *accessCodeRepository) Redeem(ctx context.Context, codeID, userID uuid.UUID, role string, expiresAt *time.Time) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var code model.AccessCode
		err := tx.GetContext(ctx, &code, `SELECT * FROM access_codes WHERE id = $1 FOR UPDATE`, codeID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.InvalidCode()
		}
		if err != nil {
			return fmt.Errorf("failed to lock access code: %w", err)
		}

		now := time.Now()
		switch {
		case code.ExpiresAt.Before(now):
			return apperrors.CodeExpired()
		case code.Exhausted():
			return apperrors.UsageLimitReached()
		case code.RedeemedBy(userID):
			return apperrors.AlreadyRedeemed()
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE access_codes SET used_by = array_append(used_by, $1) WHERE id = $2`,
			userID.String(), codeID,
		)
		if err != nil {
			return fmt.Errorf("failed to record redemption: %w", err)
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE users SET role = $1, active = true, expires_at = COALESCE($2, expires_at), updated_at = $3 WHERE id = $4`,
			role, expiresAt, now, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to promote user: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return apperrors.NotFound("user", nil)
		}
		return nil
	})
}

func (r *accessCodeRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM access_codes WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired access codes: %w", err)
	}
	return result.RowsAffected()
}
