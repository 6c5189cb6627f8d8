package models

// User mirrors an account record as returned by the /users endpoints.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UserDraft is the signup / user-creation payload. The server defaults the
// role to "buyer" when it is omitted.
type UserDraft struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin seller buyer"`
}
