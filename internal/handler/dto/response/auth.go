package response

import (
	"time"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	AdminID     uuid.UUID `json:"adminId"`
	Username    string    `json:"username"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
