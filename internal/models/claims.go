package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims - структура клеймов JWT, выдаваемых внешним identity-провайдером.
// Сервис только проверяет подпись и срок действия; аккаунт ищется по email.
type Claims struct {
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
	jwt.RegisteredClaims
}
