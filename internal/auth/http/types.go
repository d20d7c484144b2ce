package http

import (
	"context"

	"go.uber.org/zap"

	authservice "github.com/eleccycle/eleccycle-backend/internal/auth/service"
	recdomain "github.com/eleccycle/eleccycle-backend/internal/recycling/domain"
)

// ProfileRegistrar is the slice of the profile service the auth handlers
// need: the zero-counter profile written at registration and the email
// mirror on address changes.
type ProfileRegistrar interface {
	CreateProfile(ctx context.Context, userID, name, email string) (*recdomain.UserProfile, error)
	SyncEmail(ctx context.Context, userID, email string) error
}

type Handler struct {
	authService *authservice.AuthService
	profiles    ProfileRegistrar
	logger      *zap.Logger
}

func New(authService *authservice.AuthService, profiles ProfileRegistrar, logger *zap.Logger) *Handler {
	return &Handler{
		authService: authService,
		profiles:    profiles,
		logger:      logger,
	}
}

type signUpRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type changeEmailRequest struct {
	NewEmail        string `json:"newEmail"`
	CurrentPassword string `json:"currentPassword"`
}

type changePasswordRequest struct {
	NewPassword     string `json:"newPassword"`
	CurrentPassword string `json:"currentPassword"`
}

type reauthenticateRequest struct {
	Password string `json:"password"`
}
