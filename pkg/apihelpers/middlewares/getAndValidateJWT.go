package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/guild-framework/guild-backend/pkg/jwt-handling"
)

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("no Authorization header found")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("Authorization header format must be 'Bearer <token>'")
	}
	return parts[1], nil
}

// GetAndValidateRespondentJWT extracts the respondent JWT from the request and
// validates it; the parsed claims are stored on the context under
// "validatedToken".
func GetAndValidateRespondentJWT(tokenSignKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			slog.Warn("no Authorization token found")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		parsedToken, ok, err := jwthandling.ValidateRespondentToken(token, tokenSignKey)
		if err != nil || !ok {
			slog.Warn("token validation failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "error during token validation"})
			c.Abort()
			return
		}
		c.Set("token", token)
		c.Set("validatedToken", parsedToken)
	}
}
