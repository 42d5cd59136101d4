package dto

import "time"

// RegisterRequest entrada para registro: email, password, nombre y rol.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     string  `json:"name" validate:"required,max=200"`
	Role     string  `json:"role" validate:"omitempty"`
	StoreID  *string `json:"store_id,omitempty"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida del login. El token de sesión viaja también en cookie HTTP-only.
type LoginResponse struct {
	User               UserResponse `json:"user"`
	CSRFToken          string       `json:"csrf_token"`
	CSRFTokenExpiresAt time.Time    `json:"csrf_token_expires_at"`
	ExpiresAt          time.Time    `json:"expires_at"`
}

// CSRFResponse token CSRF rotado.
type CSRFResponse struct {
	CSRFToken          string    `json:"csrf_token"`
	CSRFTokenExpiresAt time.Time `json:"csrf_token_expires_at"`
}
