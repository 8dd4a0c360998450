package client

import (
	"context"
	"net/http"

	"github.com/forkful/forkful-backend/internal/models"
	"github.com/forkful/forkful-backend/internal/service"
)

const profilePath = "/api/v1/users/profile"

// Profile returns the authenticated user's profile. Cached.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.query(ctx, profilePath, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile patches name, email or password.
func (c *Client) UpdateProfile(ctx context.Context, patch *service.ProfileUpdate) (*models.User, error) {
	var user models.User
	err := c.mutate(ctx, http.MethodPatch, profilePath, patch, &user, profilePath)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePreferences merges preference fields onto the stored set.
func (c *Client) UpdatePreferences(ctx context.Context, patch *service.PreferencesUpdate) (*models.User, error) {
	var user models.User
	err := c.mutate(ctx, http.MethodPatch, profilePath+"/preferences", patch, &user, profilePath)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
