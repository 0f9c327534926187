package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"quest-server/internal/models"
)

const (
	contextKeyEmail     = "email"
	contextKeyAccountID = "account_id"
)

// verifyToken parses and validates the session JWT issued by the identity
// provider. Only HS256 is accepted.
func (h *QuestHandler) verifyToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, models.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, models.ErrTokenMalformed
		default:
			return nil, models.ErrTokenInvalid
		}
	}
	if !token.Valid || claims.Email == "" {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

// AuthMiddleware требует валидный Bearer-токен и кладёт email сессии в
// контекст. Аккаунт по email ищет уже сервисный слой.
func (h *QuestHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := h.claimsFromHeader(c)
		if err != nil {
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, err)
			return
		}

		tokenVerificationsTotal.WithLabelValues("success").Inc()
		c.Set(contextKeyEmail, claims.Email)
		c.Set(contextKeyAccountID, claims.AccountID)
		c.Next()
	}
}

// OptionalAuthMiddleware does the same, but an absent or invalid token
// degrades the request to anonymous instead of rejecting it. Used by the
// public match listing, where a session only adds the isMine flag.
func (h *QuestHandler) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		claims, err := h.claimsFromHeader(c)
		if err != nil {
			zap.L().Debug("Ignoring invalid token on anonymous endpoint", zap.Error(err))
			c.Next()
			return
		}
		c.Set(contextKeyEmail, claims.Email)
		c.Set(contextKeyAccountID, claims.AccountID)
		c.Next()
	}
}

func (h *QuestHandler) claimsFromHeader(c *gin.Context) (*models.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, models.ErrUnauthorized
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		zap.L().Warn("Invalid Authorization header format")
		return nil, models.ErrTokenMalformed
	}
	return h.verifyToken(parts[1])
}

// emailFromContext returns the session email set by AuthMiddleware. Empty
// string means an anonymous request.
func emailFromContext(c *gin.Context) string {
	return c.GetString(contextKeyEmail)
}

// GenerateSessionToken signs a session JWT the way the identity provider
// does. Used by integration tests and local tooling.
func GenerateSessionToken(secret string, accountID string, email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"account_id": accountID,
		"email":      email,
		"exp":        time.Now().Add(ttl).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
