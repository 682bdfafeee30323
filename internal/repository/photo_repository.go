package repository

import (
	"errors"

	"pulse-backend/internal/model"

	"gorm.io/gorm"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Upsert stores the image in the user's slot, replacing whatever occupied
// it. Returns whether a new row was created.
func (r *PhotoRepository) Upsert(userID uint, slot int, imageURL string) (*model.ProfilePhoto, bool, error) {
	var photo model.ProfilePhoto
	err := r.db.Where("user_id = ? AND slot = ?", userID, slot).First(&photo).Error
	switch {
	case err == nil:
		photo.ImageURL = imageURL
		if err := r.db.Save(&photo).Error; err != nil {
			return nil, false, err
		}
		return &photo, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		photo = model.ProfilePhoto{UserID: userID, Slot: slot, ImageURL: imageURL}
		if err := r.db.Create(&photo).Error; err != nil {
			return nil, false, err
		}
		return &photo, true, nil
	default:
		return nil, false, err
	}
}

func (r *PhotoRepository) GetByID(id uint) (*model.ProfilePhoto, error) {
	var photo model.ProfilePhoto
	if err := r.db.First(&photo, id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// ListByUser returns the user's photos ordered by slot.
func (r *PhotoRepository) ListByUser(userID uint) ([]model.ProfilePhoto, error) {
	var photos []model.ProfilePhoto
	err := r.db.Where("user_id = ?", userID).Order("slot ASC").Find(&photos).Error
	return photos, err
}

func (r *PhotoRepository) Delete(id uint) error {
	return r.db.Delete(&model.ProfilePhoto{}, id).Error
}
