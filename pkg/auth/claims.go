package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	EmployeeID uuid.UUID
	Name       string
	Role       enums.EmployeeRole
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued to register clients.
// Role is authoritative; nothing is ever inferred from the email address.
type AccessTokenClaims struct {
	EmployeeID uuid.UUID          `json:"employee_id"`
	Name       string             `json:"name"`
	Role       enums.EmployeeRole `json:"role"`
	jwt.RegisteredClaims
}
