package client

import (
	"context"
	"net/http"

	"github.com/saferide/saferide/internal/session"
	"github.com/saferide/saferide/pkg/errors"
	"github.com/saferide/saferide/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

// Login authenticates and initializes the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if email == "" {
		return errors.Validation("email", "email is required")
	}
	if password == "" {
		return errors.Validation("password", "password is required")
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp, false); err != nil {
		return err
	}

	c.session.Init(resp.Token, resp.User)
	c.log.Info("signed in", logger.String("user_id", resp.User.ID), logger.String("role", resp.User.Role))
	return nil
}

// Register creates an account and initializes the session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if req.Email == "" {
		return errors.Validation("email", "email is required")
	}
	if req.Password == "" {
		return errors.Validation("password", "password is required")
	}
	if req.Name == "" {
		return errors.Validation("name", "name is required")
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp, false); err != nil {
		return err
	}

	c.session.Init(resp.Token, resp.User)
	c.log.Info("registered", logger.String("user_id", resp.User.ID), logger.String("role", resp.User.Role))
	return nil
}

// Logout clears the session. Tokens are opaque; there is no server call.
func (c *Client) Logout() {
	c.session.Clear()
}
