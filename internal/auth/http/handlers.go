package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eleccycle/eleccycle-backend/internal/auth"
	"github.com/eleccycle/eleccycle-backend/internal/auth/domain"
)

// SignUp creates the Firebase account and the zero-counter profile document.
// If the account exists but the profile write fails, the response says so
// explicitly — the client must not treat registration as complete.
func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
		return
	}

	record, err := h.authService.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	profile, err := h.profiles.CreateProfile(c.Request.Context(), record.UID, req.Name, req.Email)
	if err != nil {
		h.logger.Error("profile creation failed after account creation",
			zap.String("uid", record.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "account created but profile setup failed, sign in to retry",
			"uid":   record.UID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

// SignIn exchanges email/password for a session token pair.
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SignOut revokes the caller's refresh tokens.
func (h *Handler) SignOut(c *gin.Context) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), identity.UID); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SendPasswordReset issues a password reset for the given email.
func (h *Handler) SendPasswordReset(c *gin.Context) {
	var req passwordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if _, err := h.authService.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ChangeEmail updates the auth email after reauthentication, then mirrors
// the change onto the profile document.
func (h *Handler) ChangeEmail(c *gin.Context) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req changeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.authService.ChangeEmail(c.Request.Context(), identity.UID, identity.Email, req.CurrentPassword, req.NewEmail)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := h.profiles.SyncEmail(c.Request.Context(), identity.UID, req.NewEmail); err != nil {
		h.logger.Error("profile email sync failed after auth change",
			zap.String("uid", identity.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "email changed but profile sync failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ChangePassword updates the account password after reauthentication.
func (h *Handler) ChangePassword(c *gin.Context) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), identity.UID, identity.Email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Reauthenticate confirms the caller's password without issuing a session.
func (h *Handler) Reauthenticate(c *gin.Context) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req reauthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.authService.Reauthenticate(c.Request.Context(), identity.Email, req.Password); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// respondAuthError maps sentinel auth errors to HTTP statuses. Anything
// unmapped is a transient collaborator failure and retryable.
func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail), errors.Is(err, domain.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredential), errors.Is(err, domain.ErrWrongPassword),
		errors.Is(err, domain.ErrRequiresRecentLogin):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUserDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "auth service unavailable, retry", "retryable": true})
	}
}
