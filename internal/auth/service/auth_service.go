package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"github.com/eleccycle/eleccycle-backend/internal/auth/domain"
	"github.com/eleccycle/eleccycle-backend/internal/auth/identitytoolkit"
)

// MinPasswordLen matches the Firebase Auth minimum.
const MinPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserManager is the slice of the Firebase Admin Auth client this service
// uses. *auth.Client satisfies it.
type UserManager interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	PasswordResetLink(ctx context.Context, email string) (string, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// PasswordChecker verifies an email/password pair against the identity
// provider. Satisfied by *identitytoolkit.Client.
type PasswordChecker interface {
	SignInWithPassword(ctx context.Context, email, password string) (*identitytoolkit.Session, error)
}

// AuthService fronts the Firebase identity collaborator: account creation,
// password sign-in, credential changes, and reset links. Validation failures
// are caught here before any network call.
type AuthService struct {
	users  UserManager
	checks PasswordChecker
	logger *zap.Logger
}

func NewAuthService(users UserManager, checks PasswordChecker, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		checks: checks,
		logger: logger,
	}
}

// SignUp creates a Firebase user for the given credentials.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*auth.UserRecord, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(name)

	record, err := s.users.CreateUser(ctx, params)
	if err != nil {
		return nil, mapAdminError(err)
	}

	s.logger.Info("user account created", zap.String("uid", record.UID))
	return record, nil
}

// SignIn exchanges email/password for a session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*identitytoolkit.Session, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, domain.ErrInvalidCredential
	}
	return s.checks.SignInWithPassword(ctx, email, password)
}

// SignOut revokes the user's refresh tokens, ending all sessions.
func (s *AuthService) SignOut(ctx context.Context, uid string) error {
	if err := s.users.RevokeRefreshTokens(ctx, uid); err != nil {
		return mapAdminError(err)
	}
	return nil
}

// SendPasswordReset generates a password reset link for the account.
func (s *AuthService) SendPasswordReset(ctx context.Context, email string) (string, error) {
	if err := ValidateEmail(email); err != nil {
		return "", err
	}

	link, err := s.users.PasswordResetLink(ctx, email)
	if err != nil {
		return "", mapAdminError(err)
	}
	return link, nil
}

// ChangeEmail updates the account email after reauthenticating with the
// current password. A missing current password is a recent-login failure,
// not a validation failure.
func (s *AuthService) ChangeEmail(ctx context.Context, uid, currentEmail, currentPassword, newEmail string) error {
	if err := ValidateEmail(newEmail); err != nil {
		return err
	}
	if err := s.Reauthenticate(ctx, currentEmail, currentPassword); err != nil {
		return err
	}

	if _, err := s.users.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Email(newEmail)); err != nil {
		return mapAdminError(err)
	}

	s.logger.Info("account email changed", zap.String("uid", uid))
	return nil
}

// ChangePassword updates the account password after reauthentication.
func (s *AuthService) ChangePassword(ctx context.Context, uid, currentEmail, currentPassword, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	if err := s.Reauthenticate(ctx, currentEmail, currentPassword); err != nil {
		return err
	}

	if _, err := s.users.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Password(newPassword)); err != nil {
		return mapAdminError(err)
	}

	s.logger.Info("account password changed", zap.String("uid", uid))
	return nil
}

// Reauthenticate confirms the caller's current password. Credential
// mismatches surface as ErrWrongPassword; an empty password means the
// caller never supplied recent credentials at all.
func (s *AuthService) Reauthenticate(ctx context.Context, email, password string) error {
	if password == "" {
		return domain.ErrRequiresRecentLogin
	}

	_, err := s.checks.SignInWithPassword(ctx, email, password)
	if errors.Is(err, domain.ErrInvalidCredential) || errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrWrongPassword
	}
	return err
}

// ValidateEmail rejects malformed addresses before any network call.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return domain.ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the minimum length locally.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return domain.ErrWeakPassword
	}
	return nil
}

// mapAdminError translates Firebase Admin SDK errors into sentinel errors.
func mapAdminError(err error) error {
	switch {
	case auth.IsEmailAlreadyExists(err):
		return domain.ErrEmailInUse
	case auth.IsUserNotFound(err):
		return domain.ErrUserNotFound
	default:
		return fmt.Errorf("auth collaborator: %w", err)
	}
}
