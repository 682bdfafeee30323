package service

import (
	"errors"
	"fmt"
	"strings"

	"pulse-backend/internal/model"
	"pulse-backend/internal/notify"
	"pulse-backend/internal/repository"
	"pulse-backend/pkg/jwt"
	"pulse-backend/pkg/password"
)

// ErrInvalidCredentials is returned on login mismatch; handlers map it to
// 401 without disclosing which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService handles signup, login, profile maintenance and user search.
type UserService struct {
	repo       *repository.UserRepository
	jwtService *jwt.JWTService
	notifier   notify.Notifier
}

func NewUserService(repo *repository.UserRepository, jwtService *jwt.JWTService, notifier notify.Notifier) *UserService {
	return &UserService{repo: repo, jwtService: jwtService, notifier: notifier}
}

// TokenPair carries the session credentials issued at signup and login.
type TokenPair struct {
	Access  string
	Refresh string
}

// Signup creates an account, issues tokens and sends the welcome email
// best-effort. Uniqueness of username/email is enforced by the store.
func (s *UserService) Signup(username, email, plainPassword, avatarEmoji string) (*model.User, *TokenPair, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || plainPassword == "" {
		return nil, nil, fmt.Errorf("%w: username, email and password are required", ErrInvalidInput)
	}
	if avatarEmoji == "" {
		avatarEmoji = "😊"
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		AvatarEmoji:  avatarEmoji,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, nil, err
	}

	s.notifier.Welcome(user)

	access, refresh, err := s.jwtService.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		return nil, nil, err
	}
	return user, &TokenPair{Access: access, Refresh: refresh}, nil
}

// Login checks the email/password pair and issues fresh tokens.
func (s *UserService) Login(email, plainPassword string) (*model.User, *TokenPair, error) {
	email = strings.TrimSpace(email)
	if email == "" || plainPassword == "" {
		return nil, nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !password.Verify(plainPassword, u.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	access, refresh, err := s.jwtService.GenerateTokenPair(u.ID, u.Username)
	if err != nil {
		return nil, nil, err
	}
	return u, &TokenPair{Access: access, Refresh: refresh}, nil
}

// Profile returns the caller's own account.
func (s *UserService) Profile(userID uint) (*model.User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}
	return u, nil
}

// UpdateProfile changes the mutable profile fields. Empty arguments leave
// the current value in place.
func (s *UserService) UpdateProfile(userID uint, email, avatarEmoji string) (*model.User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}

	if email = strings.TrimSpace(email); email != "" {
		u.Email = email
	}
	if avatarEmoji != "" {
		u.AvatarEmoji = avatarEmoji
	}
	if err := s.repo.Save(u); err != nil {
		return nil, err
	}
	return u, nil
}

// RegisterPushToken stores the device's FCM token.
func (s *UserService) RegisterPushToken(userID uint, token string) error {
	if token == "" {
		return fmt.Errorf("%w: fcm_token is required", ErrInvalidInput)
	}
	return s.repo.UpdateFCMToken(userID, token)
}

// PublicProfile loads another user with photos for the public view.
func (s *UserService) PublicProfile(userID uint) (*model.User, error) {
	u, err := s.repo.GetByIDWithPhotos(userID)
	if err != nil {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}
	return u, nil
}

// Search finds users by username substring or exact invite code, both
// case-insensitive, excluding the caller. An empty query matches nobody.
func (s *UserService) Search(callerID uint, query string) ([]model.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.User{}, nil
	}
	return s.repo.Search(query, callerID)
}
