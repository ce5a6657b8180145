package api

import (
	"context"
	"net/http"

	"github.com/adilkhann/dayrep/internal/models"
)

// loginRequest is shared by the login and register endpoints.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MessageResponse is the payload of the password-reset endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a token and the user identity.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var res models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Register creates an account. Same contract as Login.
func (c *Client) Register(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var res models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, loginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ForgotPassword asks the server to mail a reset link for the address.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	var res MessageResponse
	body := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ResetPassword redeems a reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (*MessageResponse, error) {
	var res MessageResponse
	body := map[string]string{"token": token, "newPassword": newPassword}
	if err := c.do(ctx, http.MethodPost, "/auth/reset-password", nil, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
