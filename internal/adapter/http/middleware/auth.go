package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"servicios_locales/internal/config"
	"servicios_locales/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const callerIDKey = "caller_id"

var errUnauthenticated = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing or invalid bearer token", http.StatusUnauthorized)

// Claims are issued by the identity provider. The subject is the numeric user id.
type Claims struct {
	jwt.RegisteredClaims
}

// Auth validates an HS256 bearer token and stores the caller id in the gin context.
func Auth(cfg config.AuthConfig) gin.HandlerFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})}
	if cfg.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.JWTIssuer))
	}
	parser := jwt.NewParser(opts...)
	secret := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}

		claims := &Claims{}
		token, err := parser.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(*jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}

		callerID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil || callerID <= 0 {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}

		c.Set(callerIDKey, callerID)
		c.Next()
	}
}

// CallerID returns the authenticated user id set by Auth.
func CallerID(c *gin.Context) (int64, error) {
	v, ok := c.Get(callerIDKey)
	if !ok {
		return 0, errors.New("caller id not set")
	}
	id, ok := v.(int64)
	if !ok {
		return 0, errors.New("caller id has unexpected type")
	}
	return id, nil
}

// SetCallerID is used by handler tests to skip token parsing.
func SetCallerID(c *gin.Context, id int64) {
	c.Set(callerIDKey, id)
}
