package usecase

import (
	"shop-backend/internal/domain/admin"
	"shop-backend/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, admin.Username, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, admin.Username, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, admin.Username{}, err
	}

	username, err := admin.NewUsername(claims.Username)
	if err != nil {
		return uuid.Nil, admin.Username{}, err
	}

	return claims.AdminID, username, nil
}
