// Package auth issues and validates the identity tokens of the backend.
//
// The rest of the backend only ever sees the owner ID that the middleware
// extracts from a valid token, the cryptographic mechanics stay in here.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("no bearer token was provided in the Authorization header")
	ErrTokenInvalid = errors.New("the authentication token is invalid or expired")
)

// contextUserID is the gin context key under which the middleware stores the
// authenticated owner ID.
const contextUserID = "auth-user-id"

// Claims are the token claims of the backend.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// GenerateToken issues a signed token for the user.
func GenerateToken(secret []byte, userID uint64, username string, lifetime time.Duration) (string, error) {
	now := time.Now().In(time.UTC)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
		Username: username,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken validates a token and returns its claims.
func ParseToken(secret []byte, token string) (Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}

	return claims, nil
}

// Middleware validates the bearer token of a request and stores the owner ID
// in the context. Requests without a valid token are aborted with 401.
func Middleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrNoToken.Error()})
			return
		}

		claims, err := ParseToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrTokenInvalid.Error()})
			return
		}

		c.Set(contextUserID, userID)
		c.Next()
	}
}

// UserID returns the owner ID of the authenticated request. It is only valid
// on routes behind the Middleware.
func UserID(c *gin.Context) uint64 {
	return c.GetUint64(contextUserID)
}
