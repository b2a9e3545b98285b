package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles
const (
	RoleAdmin  = "admin"
	RolePadrao = "padrao"
)

// Usuario is an operator account. The password hash never leaves the service.
type Usuario struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email string             `bson:"email" json:"email"`
	Senha string             `bson:"senha" json:"-"`
	Role  string             `bson:"role" json:"role"`
}

// RegistroRequest is the body for creating an account
type RegistroRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,min=6"`
	Role  string `json:"role" validate:"omitempty,oneof=admin padrao"`
}

// LoginRequest is the body for logging in. Older clients send the secret as senha.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
	Senha    string `json:"senha"`
}

// Secret returns whichever password field was sent
func (r LoginRequest) Secret() string {
	if r.Password != "" {
		return r.Password
	}
	return r.Senha
}

// AtualizarUsuarioRequest is the body for updating an account; absent fields are kept
type AtualizarUsuarioRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
	Senha *string `json:"senha" validate:"omitempty,min=6"`
	Role  *string `json:"role" validate:"omitempty,oneof=admin padrao"`
}

// TokenResponse carries a signed access token
type TokenResponse struct {
	Token string `json:"token"`
}

// UsuarioResponse wraps an account with a status message
type UsuarioResponse struct {
	Message string   `json:"message"`
	Usuario *Usuario `json:"usuario"`
}
