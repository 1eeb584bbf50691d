package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/quizpang-api/pkg/auth"
)

// Ключи контекста gin и заголовки идентификации
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextAuthVia  = "auth_via"

	HeaderUserID = "X-User-Id"
)

// TokenParser проверяет токен доступа
type TokenParser interface {
	ParseToken(tokenString string) (*auth.JWTCustomClaims, error)
}

// AuthMiddleware определяет пользователя запроса
type AuthMiddleware struct {
	tokens TokenParser
	logger *zap.Logger
}

// NewAuthMiddleware создает middleware аутентификации
func NewAuthMiddleware(tokens TokenParser, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, logger: logger.Named("AuthMiddleware")}
}

// bearerToken достаёт токен из заголовка Authorization.
// ok=false, если заголовка нет; err, если формат неверный.
func bearerToken(c *gin.Context) (token string, ok bool, err error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false, nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", true, errors.New("authorization header format must be Bearer {token}")
	}
	return strings.TrimSpace(parts[1]), true, nil
}

func (m *AuthMiddleware) abortInvalidToken(c *gin.Context, err error) {
	errorType := "token_invalid"
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		errorType = "token_expired"
	case errors.Is(err, auth.ErrTokenMalformed):
		errorType = "token_format"
	}
	m.logger.Debug("Токен отклонён", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": errorType})
}

// authenticate проверяет Bearer-токен. Возвращает false, если запрос уже прерван.
func (m *AuthMiddleware) authenticate(c *gin.Context, token string) bool {
	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		m.abortInvalidToken(c, err)
		return false
	}
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextAuthVia, "jwt")
	return true
}

// RequireAuth пропускает только запросы с действующим токеном
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok, err := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required", "error_type": "token_missing"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "error_type": "token_format"})
			return
		}
		if !m.authenticate(c, token) {
			return
		}
		c.Next()
	}
}

// OptionalAuth определяет пользователя по токену или по заголовку X-User-Id.
// Неверный токен отклоняется; запрос без идентификации проходит анонимно.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok, err := bearerToken(c)
		if ok {
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "error_type": "token_format"})
				return
			}
			if !m.authenticate(c, token) {
				return
			}
			c.Next()
			return
		}

		if userID := strings.TrimSpace(c.GetHeader(HeaderUserID)); userID != "" {
			c.Set(ContextUserID, userID)
			c.Set(ContextAuthVia, "header")
		}
		c.Next()
	}
}

// UserID возвращает идентификатор пользователя запроса или пустую строку
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
