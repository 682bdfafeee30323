package repository

import (
	"strings"

	"pulse-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var u model.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByIDWithPhotos loads a user with profile photos ordered by slot.
func (r *UserRepository) GetByIDWithPhotos(id uint) (*model.User, error) {
	var u model.User
	err := r.db.Preload("Photos", func(db *gorm.DB) *gorm.DB {
		return db.Order("slot ASC")
	}).First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var u model.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Save persists profile changes.
func (r *UserRepository) Save(user *model.User) error {
	return r.db.Save(user).Error
}

// UpdateFCMToken stores the device push token.
func (r *UserRepository) UpdateFCMToken(userID uint, token string) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("fcm_token", token).Error
}

// Search matches username as a case-insensitive substring or invite code as
// a case-insensitive exact value, excluding the caller. Photos come
// preloaded for the public view.
func (r *UserRepository) Search(query string, excludeID uint) ([]model.User, error) {
	q := strings.ToLower(query)
	var users []model.User
	err := r.db.
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("slot ASC")
		}).
		Where("(LOWER(username) LIKE ? OR LOWER(invite_code) = ?) AND id <> ?",
			"%"+q+"%", q, excludeID).
		Order("username ASC").
		Find(&users).Error
	return users, err
}
