package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"solvo/models"
)

// Register creates a user account.
func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	return c.postJSON(ctx, nil, "/register/", reg, nil)
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.TokenPair, error) {
	var out models.TokenPair
	if err := c.postJSON(ctx, nil, "/login/", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendContactMessage posts a contact-page submission.
func (c *Client) SendContactMessage(ctx context.Context, msg models.ContactMessage) error {
	return c.postJSON(ctx, nil, "/contact/", msg, nil)
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context, auth Auth) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := c.getJSON(ctx, auth, "/user_profile/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile pushes profile changes. A profile image forces the multipart
// encoding; otherwise the same fields go up as JSON.
func (c *Client) UpdateProfile(ctx context.Context, auth Auth, update models.ProfileUpdate) (*models.UserProfile, error) {
	var (
		body        []byte
		contentType string
		err         error
	)
	if update.Image != nil {
		body, contentType, err = encodeMultipart(update, map[string]*models.FileUpload{"image": update.Image})
		if err != nil {
			return nil, err
		}
	} else {
		body, err = json.Marshal(update)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal profile update: %w", err)
		}
		contentType = "application/json"
	}

	respBody, err := c.do(ctx, auth, http.MethodPut, "/user_profile/", contentType, body)
	if err != nil {
		return nil, err
	}
	var profile models.UserProfile
	if err := json.Unmarshal(respBody, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}
	return &profile, nil
}
