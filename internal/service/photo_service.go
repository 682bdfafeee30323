package service

import (
	"context"
	"fmt"

	"pulse-backend/internal/model"
	"pulse-backend/internal/repository"
	"pulse-backend/pkg/storage"
)

// Profile photo slots run 1 through 4.
const (
	minPhotoSlot = 1
	maxPhotoSlot = 4
)

// PhotoService manages profile photo slots and presigned media uploads.
type PhotoService struct {
	photos *repository.PhotoRepository
	store  *storage.S3Store
}

func NewPhotoService(photos *repository.PhotoRepository, store *storage.S3Store) *PhotoService {
	return &PhotoService{photos: photos, store: store}
}

// Upsert places an image in one of the caller's slots, replacing whatever
// occupied it. The bool reports whether a new slot was filled.
func (s *PhotoService) Upsert(userID uint, slot int, imageURL string) (*model.ProfilePhoto, bool, error) {
	if slot < minPhotoSlot || slot > maxPhotoSlot {
		return nil, false, fmt.Errorf("%w: order must be between 1 and 4", ErrInvalidInput)
	}
	if imageURL == "" {
		return nil, false, fmt.Errorf("%w: image is required", ErrInvalidInput)
	}
	return s.photos.Upsert(userID, slot, imageURL)
}

// Delete removes one of the caller's photos. Other users' photos are
// reported as missing, not forbidden, so ids can't be probed.
func (s *PhotoService) Delete(userID, photoID uint) error {
	photo, err := s.photos.GetByID(photoID)
	if err != nil || photo.UserID != userID {
		return fmt.Errorf("photo %w", ErrNotFound)
	}
	return s.photos.Delete(photoID)
}

// List returns the caller's photos ordered by slot.
func (s *PhotoService) List(userID uint) ([]model.ProfilePhoto, error) {
	return s.photos.ListByUser(userID)
}

// PresignUpload grants a direct-to-S3 upload for a media object.
func (s *PhotoService) PresignUpload(ctx context.Context, prefix, filename, contentType string) (*storage.Upload, error) {
	if filename == "" || contentType == "" {
		return nil, fmt.Errorf("%w: filename and content_type are required", ErrInvalidInput)
	}
	return s.store.PresignUpload(ctx, prefix, filename, contentType)
}
