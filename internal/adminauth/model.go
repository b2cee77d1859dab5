package adminauth

import "strings"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
	SetupKey string `json:"setupKey" validate:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

type PasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Status string `json:"status"`
}

func normalizeIdentity(username, email string) (string, string) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if strings.Contains(username, "@") {
		username = strings.ToLower(username)
	}
	email = strings.ToLower(email)
	return username, email
}
