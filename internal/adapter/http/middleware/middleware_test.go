package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"servicios_locales/internal/config"
	"servicios_locales/internal/infrastructure/logging"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func authRouter(cfg config.AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(cfg), func(c *gin.Context) {
		id, err := CallerID(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, strconv.FormatInt(id, 10))
	})
	return r
}

func TestAuth(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: testSecret, JWTIssuer: "servicios-locales"}
	valid := jwt.RegisteredClaims{
		Subject:   "10",
		Issuer:    "servicios-locales",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid token",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), valid),
			wantStatus: http.StatusOK,
			wantBody:   "10",
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), valid),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
				Subject: "10", Issuer: "servicios-locales", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong issuer",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
				Subject: "10", Issuer: "someone-else",
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "non numeric subject",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
				Subject: "ana", Issuer: "servicios-locales",
			}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	router := authRouter(cfg)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Fatalf("expected body %q, got %q", tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, logging.RequestIDFromContext(c.Request.Context()))
	})

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Header().Get(HeaderRequestID) != "abc-123" || w.Body.String() != "abc-123" {
			t.Fatalf("expected incoming id propagated, got header=%q body=%q", w.Header().Get(HeaderRequestID), w.Body.String())
		}
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get(HeaderRequestID)
		if len(id) != 36 || w.Body.String() != id {
			t.Fatalf("expected generated uuid, got header=%q body=%q", id, w.Body.String())
		}
	})
}
