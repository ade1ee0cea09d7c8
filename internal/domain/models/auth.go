package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SupabaseClaims are the JWT claims issued by the Supabase auth layer.
// Subject carries the user ID; Role must be "authenticated".
type SupabaseClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}
