package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// AuthUser is the provider's view of an identity.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session holds the token pair minted by a successful login.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         AuthUser `json:"user"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp registers a new identity with the auth provider. Depending on the
// project's email-confirmation setting the response is either the user object
// itself or a session wrapping it; both shapes are handled.
func (c *Client) SignUp(ctx context.Context, email, password string) (*AuthUser, error) {
	body, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("marshal signup body: %w", err)
	}

	data, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/v1/signup",
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		AuthUser
		User *AuthUser `json:"user"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode signup response: %w", err)
	}
	if resp.User != nil && resp.User.ID != "" {
		return resp.User, nil
	}
	if resp.ID == "" {
		return nil, &APIError{Status: http.StatusBadRequest, Message: "signup returned no user"}
	}
	return &resp.AuthUser, nil
}

// SignInWithPassword exchanges email/password credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("marshal login body: %w", err)
	}

	data, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/v1/token",
		query:       url.Values{"grant_type": {"password"}},
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if session.AccessToken == "" {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: "login returned no session"}
	}
	return &session, nil
}

// GetUser asks the provider to introspect an access token. The provider
// checks signature, expiry, and revocation; an inactive token comes back
// as an *APIError with a 4xx status.
func (c *Client) GetUser(ctx context.Context, token string) (*AuthUser, error) {
	data, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/auth/v1/user",
		bearer: token,
	})
	if err != nil {
		return nil, err
	}

	var user AuthUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if user.ID == "" {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: "no user for token"}
	}
	return &user, nil
}

// AdminListUsers lists all identities. Requires the service-role key; the
// provider's pagination defaults are forwarded as-is.
func (c *Client) AdminListUsers(ctx context.Context) ([]AuthUser, error) {
	data, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/auth/v1/admin/users",
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Users []AuthUser `json:"users"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode user list: %w", err)
	}
	return resp.Users, nil
}
