package accesscode

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/fsfcare/care-api/internal/email"
	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/repository"
	"github.com/fsfcare/care-api/internal/service/audit"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
	"github.com/fsfcare/care-api/pkg/logger"
	"github.com/fsfcare/care-api/pkg/metrics"
)

const (
	codeAlphabet        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	defaultCodeTTLDays  = 30
	maxGenerateAttempts = 10
)

type Service struct {
	codeRepo repository.AccessCodeRepository
	userRepo repository.UserRepository
	outbox   repository.OutboxRepository
	emailSvc email.Service
	auditor  *audit.Service
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewService(
	codeRepo repository.AccessCodeRepository,
	userRepo repository.UserRepository,
	outbox repository.OutboxRepository,
	emailSvc email.Service,
	auditor *audit.Service,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Service {
	return &Service{
		codeRepo: codeRepo,
		userRepo: userRepo,
		outbox:   outbox,
		emailSvc: emailSvc,
		auditor:  auditor,
		logger:   logger,
		metrics:  metrics,
	}
}

// Generate creates a new access code. Only admins may generate codes. The
// code is retried on collision so every stored code is unique.
func (s *Service) Generate(ctx context.Context, actor *model.User, req *model.GenerateAccessCodeRequest) (*model.AccessCode, error) {
	if !actor.HasRole(model.RoleAdmin) {
		return nil, apperrors.Forbidden("only admins may generate access codes")
	}
	if !model.ValidRole(req.Role) {
		return nil, apperrors.BadRequest("unknown role", nil)
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	ttlDays := req.CodeExpiresInDays
	if ttlDays <= 0 {
		ttlDays = defaultCodeTTLDays
	}

	ac := &model.AccessCode{
		ID:           uuid.New(),
		Code:         code,
		Role:         req.Role,
		UsedBy:       pq.StringArray{},
		MaxUses:      req.MaxUses,
		ExpiresAt:    time.Now().AddDate(0, 0, ttlDays),
		DurationDays: req.DurationDays,
		CreatedBy:    actor.ID,
	}

	if err := s.codeRepo.Create(ctx, ac); err != nil {
		return nil, fmt.Errorf("failed to create access code: %w", err)
	}

	s.auditor.Log(ctx, actor.ID, "generate", "access_code", ac.ID, &audit.LogOptions{
		Metadata: map[string]interface{}{"role": ac.Role, "max_uses": ac.MaxUses},
	})
	s.emitEvent(ctx, "access_code.created", ac)

	if req.NotifyEmail != "" {
		if err := s.emailSvc.SendAccessCode(ctx, req.NotifyEmail, ac.Code, ac.Role); err != nil {
			s.logger.Error(err, "Failed to send access code email", "code_id", ac.ID.String())
		}
	}

	return ac, nil
}

// Redeem activates the caller's account with the code's role. Checks run in
// a fixed order so the client always gets the most specific failure: unknown
// code, then expired, then exhausted, then already redeemed. The final write
// re-validates inside the repository transaction.
func (s *Service) Redeem(ctx context.Context, userID uuid.UUID, rawCode string) (*model.User, error) {
	code, err := s.codeRepo.GetByCode(ctx, rawCode)
	if err != nil {
		s.metrics.AccessCodeRedemptions.WithLabelValues("invalid_code").Inc()
		return nil, err
	}

	now := time.Now()
	switch {
	case code.ExpiresAt.Before(now):
		s.metrics.AccessCodeRedemptions.WithLabelValues("expired").Inc()
		return nil, apperrors.CodeExpired()
	case code.Exhausted():
		s.metrics.AccessCodeRedemptions.WithLabelValues("exhausted").Inc()
		return nil, apperrors.UsageLimitReached()
	case code.RedeemedBy(userID):
		s.metrics.AccessCodeRedemptions.WithLabelValues("already_redeemed").Inc()
		return nil, apperrors.AlreadyRedeemed()
	}

	var expiresAt *time.Time
	if code.DurationDays != nil {
		t := now.AddDate(0, 0, *code.DurationDays)
		expiresAt = &t
	}

	if err := s.codeRepo.Redeem(ctx, code.ID, userID, code.Role, expiresAt); err != nil {
		return nil, err
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.metrics.AccessCodeRedemptions.WithLabelValues("success").Inc()
	s.auditor.Log(ctx, userID, "redeem", "access_code", code.ID, &audit.LogOptions{
		Metadata: map[string]interface{}{"role": code.Role},
	})
	s.emitEvent(ctx, "access_code.redeemed", map[string]interface{}{
		"code_id": code.ID,
		"user_id": userID,
		"role":    code.Role,
	})

	return user, nil
}

func (s *Service) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.AccessCode, error) {
	if !actor.HasRole(model.RoleAdmin) {
		return nil, apperrors.Forbidden("only admins may view access codes")
	}
	return s.codeRepo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, actor *model.User) ([]*model.AccessCode, error) {
	if !actor.HasRole(model.RoleAdmin) {
		return nil, apperrors.Forbidden("only admins may list access codes")
	}
	return s.codeRepo.List(ctx)
}

// uniqueCode draws random codes until one is free of collisions.
func (s *Service) uniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code, err := randomCode(model.AccessCodeLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}

		exists, err := s.codeRepo.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", apperrors.Internal(fmt.Errorf("could not generate a unique code after %d attempts", maxGenerateAttempts))
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

func (s *Service) emitEvent(ctx context.Context, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error(err, "Failed to marshal outbox payload", "event_type", eventType)
		return
	}
	event := &model.OutboxEvent{
		EventType: eventType,
		Payload:   data,
	}
	if err := s.outbox.Create(ctx, event); err != nil {
		s.logger.Error(err, "Failed to create outbox event", "event_type", eventType)
	}
}
