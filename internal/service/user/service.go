package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/internal/repository"
	"github.com/fsfcare/care-api/internal/service/audit"
	"github.com/fsfcare/care-api/internal/storage"
)

type Service struct {
	repo    repository.UserRepository
	store   storage.BlobStore
	auditor *audit.Service
}

func NewService(repo repository.UserRepository, store storage.BlobStore, auditor *audit.Service) *Service {
	return &Service{repo: repo, store: store, auditor: auditor}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

// UpdateProfile replaces the caller's profile document and keeps the
// top-level display name in sync with it.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		Name:           req.Name,
		BirthDate:      req.BirthDate,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		LicenseID:      req.LicenseID,
		Gender:         req.Gender,
	}
	if user.Profile != nil {
		profile.PhotoURL = user.Profile.PhotoURL
		profile.ThumbnailURL = user.Profile.ThumbnailURL
	}

	if err := s.repo.UpdateProfile(ctx, userID, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.auditor.Log(ctx, userID, "update", "profile", userID, &audit.LogOptions{Changes: req})

	return s.repo.Get(ctx, userID)
}

// UploadPhoto stores the caller's profile photo and records its URL.
func (s *Service) UploadPhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*model.User, error) {
	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("users/%s/photo", userID)
	url, err := s.store.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	profile := user.Profile
	if profile == nil {
		name := ""
		if user.Name != nil {
			name = *user.Name
		}
		profile = &model.Profile{Name: name}
	}
	profile.PhotoURL = url
	profile.ThumbnailURL = url

	if err := s.repo.UpdateProfile(ctx, userID, profile); err != nil {
		return nil, fmt.Errorf("failed to save photo URL: %w", err)
	}

	s.auditor.Log(ctx, userID, "upload_photo", "profile", userID, nil)

	return s.repo.Get(ctx, userID)
}
