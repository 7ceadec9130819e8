//go:build unit || e2e

package builder

import (
	reqdto "shop-backend/internal/handler/dto/request"
)

const DefaultPassword = "password123"

type AuthBuilder struct {
	Username string
	Password string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Username: "shopkeeper",
		Password: DefaultPassword,
	}
}

func (a *AuthBuilder) WithUsername(username string) *AuthBuilder {
	a.Username = username
	return a
}

func (a *AuthBuilder) WithPassword(password string) *AuthBuilder {
	a.Password = password
	return a
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Username: a.Username,
		Password: a.Password,
	}
}
