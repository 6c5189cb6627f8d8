package api

import (
	"context"

	"github.com/dmitrijs2005/propkeeper/internal/client/models"
)

// UserUpdate carries the mutable account fields for PUT /users/{id}.
// Zero-valued fields are omitted from the request.
type UserUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Client is the API contract against the property-listing backend.
type Client interface {
	Close() error

	// Session.
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error

	// Accounts.
	Signup(ctx context.Context, draft models.UserDraft) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	UpdateUser(ctx context.Context, id int64, update UserUpdate) error
	DeleteUser(ctx context.Context, id int64) error
	ChangePassword(ctx context.Context, id int64, newPassword string) error

	// Properties.
	ListProperties(ctx context.Context) ([]models.Property, error)
	GetProperty(ctx context.Context, id int64) (models.Property, error)
	CreateProperty(ctx context.Context, draft models.PropertyDraft) (models.Property, error)
	UpdateProperty(ctx context.Context, id int64, draft models.PropertyDraft) (models.Property, error)
	VerifyProperty(ctx context.Context, id int64) (models.Property, error)
	DeleteProperty(ctx context.Context, id int64) error
}
