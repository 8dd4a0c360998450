package client

import (
	"context"
	"net/http"

	"github.com/forkful/forkful-backend/internal/models"
)

// Session is the result of a successful login or registration.
type Session struct {
	AccessToken string      `json:"access_token"`
	User        models.User `json:"user"`
}

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and installs the returned token on the client.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	var session Session
	err := c.mutate(ctx, http.MethodPost, "/api/v1/auth/register",
		credentials{Name: name, Email: email, Password: password}, &session)
	if err != nil {
		return nil, err
	}
	c.token = session.AccessToken
	return &session, nil
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	err := c.mutate(ctx, http.MethodPost, "/api/v1/auth/login",
		credentials{Email: email, Password: password}, &session)
	if err != nil {
		return nil, err
	}
	c.token = session.AccessToken
	return &session, nil
}
