package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/propkeeper/internal/client/models"
	"github.com/dmitrijs2005/propkeeper/internal/common"
)

// Login exchanges credentials for a bearer token and stores it. The backend
// expects a form-encoded body. A 400 or 401 maps to ErrInvalidCredentials.
func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	status, body, err := c.send(ctx, &call{method: http.MethodPost, path: "/login", form: form, noAuth: true}, "")
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrInvalidCredentials, serverError(body))
	case status < 200 || status >= 300:
		return fmt.Errorf("login failed with status %d: %s", status, serverError(body))
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("decoding login response: %w", err)
	}
	if payload.Token == "" {
		return fmt.Errorf("login response contains no token")
	}

	return c.store.Set(ctx, payload.Token)
}

// Logout tells the server the session is over and clears the local token.
// The server call is best-effort: the local token is cleared even when the
// request fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	token, err := c.store.Get(ctx)
	if err == nil && token != "" {
		status, _, sendErr := c.send(ctx, &call{method: http.MethodPost, path: "/logout"}, token)
		if sendErr != nil {
			c.log.Warn(ctx, "logout request failed", "error", sendErr)
		} else if status < 200 || status >= 300 {
			c.log.Warn(ctx, "logout rejected", "status", status)
		}
	}
	return c.store.Clear(ctx)
}

// Signup creates a new account. No authentication required; the server
// defaults the role to buyer when the draft leaves it empty.
func (c *HTTPClient) Signup(ctx context.Context, draft models.UserDraft) (models.User, error) {
	var user models.User
	err := c.do(ctx, &call{method: http.MethodPost, path: "/users", jsonBody: draft, noAuth: true}, &user)
	return user, err
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var payload struct {
		Users []models.User `json:"users"`
	}
	if err := c.do(ctx, &call{method: http.MethodGet, path: "/users"}, &payload); err != nil {
		return nil, err
	}
	return payload.Users, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := c.do(ctx, &call{method: http.MethodGet, path: fmt.Sprintf("/users/%d", id)}, &user)
	return user, err
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, update UserUpdate) error {
	return c.do(ctx, &call{method: http.MethodPut, path: fmt.Sprintf("/users/%d", id), jsonBody: update}, nil)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, &call{method: http.MethodDelete, path: fmt.Sprintf("/users/%d", id)}, nil)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, id int64, newPassword string) error {
	payload := map[string]string{"new_password": newPassword}
	return c.do(ctx, &call{method: http.MethodPut, path: fmt.Sprintf("/users/%d/password", id), jsonBody: payload}, nil)
}

func (c *HTTPClient) ListProperties(ctx context.Context) ([]models.Property, error) {
	var payload struct {
		Properties []models.Property `json:"properties"`
	}
	if err := c.do(ctx, &call{method: http.MethodGet, path: "/properties"}, &payload); err != nil {
		return nil, err
	}
	return payload.Properties, nil
}

func (c *HTTPClient) GetProperty(ctx context.Context, id int64) (models.Property, error) {
	var property models.Property
	err := c.do(ctx, &call{method: http.MethodGet, path: fmt.Sprintf("/properties/%d", id)}, &property)
	return property, err
}

func (c *HTTPClient) CreateProperty(ctx context.Context, draft models.PropertyDraft) (models.Property, error) {
	var property models.Property
	err := c.do(ctx, &call{method: http.MethodPost, path: "/properties", jsonBody: draft}, &property)
	return property, err
}

func (c *HTTPClient) UpdateProperty(ctx context.Context, id int64, draft models.PropertyDraft) (models.Property, error) {
	var property models.Property
	err := c.do(ctx, &call{method: http.MethodPut, path: fmt.Sprintf("/properties/%d", id), jsonBody: draft}, &property)
	return property, err
}

// VerifyProperty marks a listing as verified. The backend reuses the
// generic edit endpoint for this; only admins get a non-403 answer.
func (c *HTTPClient) VerifyProperty(ctx context.Context, id int64) (models.Property, error) {
	var property models.Property
	payload := map[string]bool{"verified": true}
	err := c.do(ctx, &call{method: http.MethodPut, path: fmt.Sprintf("/properties/%d", id), jsonBody: payload}, &property)
	return property, err
}

func (c *HTTPClient) DeleteProperty(ctx context.Context, id int64) error {
	return c.do(ctx, &call{method: http.MethodDelete, path: fmt.Sprintf("/properties/%d", id)}, nil)
}
