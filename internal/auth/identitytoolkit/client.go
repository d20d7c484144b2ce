package identitytoolkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eleccycle/eleccycle-backend/internal/auth/domain"
)

const defaultBaseURL = "https://identitytoolkit.googleapis.com"

// Client calls the Identity Toolkit REST API. The Admin SDK cannot check a
// password, so password sign-in and reauthentication go through this
// endpoint with the project's web API key.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithBaseURL overrides the endpoint; used against the emulator and in tests.
func NewWithBaseURL(apiKey, baseURL string) *Client {
	c := New(apiKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// Session is the result of a successful password sign-in.
type Session struct {
	UID          string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword exchanges email/password for an ID token. API error
// codes are mapped to the auth domain's sentinel errors.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, fmt.Errorf("marshal sign-in request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/accounts:signInWithPassword?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sign-in request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return nil, fmt.Errorf("sign-in failed with status %d", resp.StatusCode)
		}
		return nil, mapAPIError(apiErr.Error.Message)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode sign-in response: %w", err)
	}

	return &session, nil
}

// mapAPIError translates Identity Toolkit error codes into sentinel errors.
// Messages sometimes carry a suffix ("WEAK_PASSWORD : ..."), so match on
// the leading code.
func mapAPIError(message string) error {
	code := message
	if i := strings.IndexAny(message, " :"); i > 0 {
		code = message[:i]
	}

	switch code {
	case "EMAIL_NOT_FOUND":
		return domain.ErrUserNotFound
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return domain.ErrInvalidCredential
	case "USER_DISABLED":
		return domain.ErrUserDisabled
	case "INVALID_EMAIL":
		return domain.ErrInvalidEmail
	case "EMAIL_EXISTS":
		return domain.ErrEmailInUse
	case "WEAK_PASSWORD":
		return domain.ErrWeakPassword
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return domain.ErrTooManyAttempts
	default:
		return fmt.Errorf("identity toolkit error: %s", message)
	}
}
