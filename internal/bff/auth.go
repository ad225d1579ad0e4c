package bff

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"backoffice/pkg/domain"
)

// AuthAPI covers login, token verification and logout against the BFF's auth
// endpoints. Its operations resolve to structured results instead of
// returning errors, so callers (the session guard in particular) can branch
// without error handling.
type AuthAPI struct {
	c *Client
}

// LoginData is the payload of a successful login.
type LoginData struct {
	User         *domain.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

// LoginResult is the outcome of a login attempt.
type LoginResult struct {
	Success bool      `json:"success"`
	Data    LoginData `json:"data"`
	Message string    `json:"message,omitempty"`
}

// VerifyResult is the outcome of a token verification.
type VerifyResult struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// LogoutResult is the outcome of a logout.
type LogoutResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// backendUser is the user record as the auth service behind the BFF returns
// it. It differs from the console's User shape in almost every field.
type backendUser struct {
	MongoID     string   `json:"_id"`
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Roles       []string `json:"roles"`
	IsActive    bool     `json:"isActive"`
	CreatedAt   string   `json:"createdAt"`
	LastLoginAt string   `json:"lastLoginAt"`
}

type loginResponse struct {
	JWT          string       `json:"jwt"`
	RefreshToken string       `json:"refreshToken"`
	User         *backendUser `json:"user"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// mapBackendUser translates the auth service's user record into the
// console's shape: first and last name join into one display name, _id wins
// over id, isActive collapses to active/inactive, and the primary role is
// computed from the role set.
func mapBackendUser(b *backendUser) *domain.User {
	id := b.MongoID
	if id == "" {
		id = b.ID
	}

	roles := make([]domain.Role, 0, len(b.Roles))
	for _, r := range b.Roles {
		roles = append(roles, domain.Role(r))
	}

	status := domain.UserStatusInactive
	if b.IsActive {
		status = domain.UserStatusActive
	}

	now := time.Now().UTC().Format(time.RFC3339)
	createdAt := b.CreatedAt
	if createdAt == "" {
		createdAt = now
	}
	lastLogin := b.LastLoginAt
	if lastLogin == "" {
		lastLogin = now
	}

	return &domain.User{
		ID:        id,
		Name:      b.FirstName + " " + b.LastName,
		Email:     b.Email,
		Role:      domain.PrimaryRole(roles),
		Roles:     roles,
		Status:    status,
		CreatedAt: createdAt,
		LastLogin: lastLogin,
	}
}

// Login authenticates against the BFF and translates the backend payload
// into the console's session shape. It never returns an error: transport
// failures, rejections and malformed payloads all surface as a failed
// result with a message.
func (a *AuthAPI) Login(ctx context.Context, email, password string) LoginResult {
	body := map[string]string{"email": email, "password": password}

	var resp loginResponse
	if err := a.c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &resp, "Login failed"); err != nil {
		a.c.log.AuthError("login", err, nil)
		return LoginResult{Success: false, Message: err.Error()}
	}

	if resp.JWT == "" || resp.User == nil {
		msg := "Invalid login response from server"
		if resp.Error != nil && resp.Error.Message != "" {
			msg = resp.Error.Message
		}
		return LoginResult{Success: false, Message: msg}
	}

	return LoginResult{
		Success: true,
		Data: LoginData{
			User:         mapBackendUser(resp.User),
			Token:        resp.JWT,
			RefreshToken: resp.RefreshToken,
		},
	}
}

// Verify asks the BFF whether the stored token is still good. A non-200 is
// reported through the result, not an error, so the guard can branch
// directly.
func (a *AuthAPI) Verify(ctx context.Context) VerifyResult {
	var data json.RawMessage
	if err := a.c.do(ctx, http.MethodGet, "/api/auth/verify", nil, nil, &data, "Token verification failed"); err != nil {
		return VerifyResult{Success: false, Message: err.Error()}
	}
	return VerifyResult{Success: true, Data: data}
}

// Logout revokes the stored refresh token server-side. The local session is
// the caller's to clear; logout only reports what the server said.
func (a *AuthAPI) Logout(ctx context.Context) LogoutResult {
	refreshToken := ""
	if s, err := a.c.store.Get(ctx); err == nil && s != nil {
		refreshToken = s.RefreshToken
	}

	var resp struct {
		Message string `json:"message"`
	}
	body := map[string]string{"refreshToken": refreshToken}
	if err := a.c.do(ctx, http.MethodPost, "/api/auth/logout", nil, body, &resp, "Logout failed"); err != nil {
		return LogoutResult{Success: false, Message: err.Error()}
	}

	msg := resp.Message
	if msg == "" {
		msg = "Logged out successfully"
	}
	return LogoutResult{Success: true, Message: msg}
}
