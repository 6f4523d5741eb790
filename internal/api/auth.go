package api

import (
	"context"
	"errors"
	"net/http"
)

func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return AuthResponse{}, err
	}
	return resp, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return AuthResponse{}, asInvalidCredentials(err)
	}
	return resp, nil
}

func (c *Client) Profile(ctx context.Context) (User, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &resp); err != nil {
		return User{}, err
	}
	return resp.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (User, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodPut, "/auth/profile", nil, req, &resp); err != nil {
		return User{}, err
	}
	return resp.User, nil
}

// ForgotPassword returns the server's confirmation message. The server
// answers with the same generic message whether or not the address is on
// file, so a caller can never learn which emails exist.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	req := struct {
		Email string `json:"email"`
	}{Email: email}
	if err := c.do(ctx, http.MethodPost, "/forgot-password", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ResetPassword submits a new password under an opaque reset token taken
// straight from the navigation path. The token's validity is only ever
// decided here, by the server's answer.
func (c *Client) ResetPassword(ctx context.Context, token, password string) (string, error) {
	var resp messageResponse
	req := struct {
		Password string `json:"password"`
	}{Password: password}
	if err := c.do(ctx, http.MethodPost, "/reset-password/"+token, nil, req, &resp); err != nil {
		return "", asInvalidToken(err)
	}
	return resp.Message, nil
}

// A 401 on login means the credentials were wrong, not that a session is
// missing.
func asInvalidCredentials(err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindUnauthenticated {
		return &Error{Kind: KindInvalidCredentials, Status: apiErr.Status, Message: "invalid email or password"}
	}
	return err
}

// Any 4xx rejection of a reset submission means the token is stale or
// already consumed.
func asInvalidToken(err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case KindValidation, KindUnauthenticated, KindNotFound:
			msg := apiErr.Message
			if msg == "" {
				msg = "this reset link is invalid or has expired"
			}
			return &Error{Kind: KindInvalidOrExpiredToken, Status: apiErr.Status, Message: msg}
		}
	}
	return err
}
