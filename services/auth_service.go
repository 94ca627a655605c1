package services

import (
	"BabyTracker/models"
	"BabyTracker/repositories"
	"BabyTracker/utils"
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthResult is returned by register and login.
type AuthResult struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

type AuthService struct {
	UserRepo repositories.UserRepository
	Tokens   *utils.TokenManager

	now func() time.Time
}

func NewAuthService(userRepo repositories.UserRepository, tokens *utils.TokenManager) *AuthService {
	return &AuthService{UserRepo: userRepo, Tokens: tokens, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*AuthResult, error) {
	email := normalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := s.now()
	user := &models.User{
		Email:              email,
		PasswordHash:       string(hashedPassword),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Locale:             req.Locale,
		Timezone:           req.Timezone,
		EmailNotifications: true,
		LastLoginAt:        &now,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*AuthResult, error) {
	user, err := s.UserRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, Unauthorized("Invalid email or password")
	}

	now := s.now()
	user.LastLoginAt = &now
	if err := s.UserRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound("User not found")
	}
	return user, err
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Locale != nil {
		user.Locale = *req.Locale
	}
	if req.Timezone != nil {
		user.Timezone = *req.Timezone
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.EmailNotifications != nil {
		user.EmailNotifications = *req.EmailNotifications
	}

	if err := s.UserRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req models.ChangePasswordRequest) error {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return Unauthorized("Current password is incorrect")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashed)
	return s.UserRepo.Save(ctx, user)
}

// RegisterDeviceToken stores the push token; an empty token unregisters.
func (s *AuthService) RegisterDeviceToken(ctx context.Context, userID uint, token string) error {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	user.DeviceToken = strings.TrimSpace(token)
	return s.UserRepo.Save(ctx, user)
}

func (s *AuthService) ensureEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.UserRepo.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return Conflict("Email is already registered")
	}
	return nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
