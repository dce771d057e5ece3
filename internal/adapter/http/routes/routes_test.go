package routes

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"servicios_locales/internal/adapter/http/handlers/mocks"
	"servicios_locales/internal/config"
	"servicios_locales/internal/domain/entities"
	"servicios_locales/internal/domain/lifecycle"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/mock/gomock"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: 8080, Environment: config.EnvDevelopment},
		Storage: config.StorageConfig{Driver: config.StorageSQLite, SQLitePath: filepath.Join(t.TempDir(), "api.db")},
		Auth:    config.AuthConfig{JWTSecret: "secret", JWTIssuer: "servicios-locales"},
		Phone:   config.PhoneConfig{DefaultRegion: "AR"},
	}
}

func bearer(t *testing.T, cfg *config.Config, sub string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		Issuer:    cfg.Auth.JWTIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(cfg.Auth.JWTSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + token
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRouter(t *testing.T) {
	cfg := testConfig(t)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIReservationUseCase(ctrl)
	router := NewRouter(cfg, discardLogger(), uc)

	t.Run("ping is public", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
		if w.Code != http.StatusOK || w.Header().Get("X-Request-Id") == "" {
			t.Fatalf("expected 200 with request id, got %d", w.Code)
		}
	})

	t.Run("reservations require a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/reservas/1", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("token subject becomes the caller", func(t *testing.T) {
		uc.EXPECT().Transition(gomock.Any(), int64(4), lifecycle.Command{Action: lifecycle.ActionFinish, CallerID: 20}).
			Return(entities.ReservationDetail{Reservation: entities.Reservation{ID: 4, Status: entities.ReservationStatusFinalizado}}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/reservas/4/finalizar", nil)
		req.Header.Set("Authorization", bearer(t, cfg, "20"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("static list route wins over id", func(t *testing.T) {
		uc.EXPECT().ListForProfessional(gomock.Any(), int64(20), "done").Return([]entities.ReservationDetail{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/reservas/profesional?tab=done", nil)
		req.Header.Set("Authorization", bearer(t, cfg, "20"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestBuildDependencies_SQLite(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	deps, err := buildDependencies(ctx, cfg, discardLogger())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer deps.close()

	router := NewRouter(cfg, discardLogger(), deps.reservations)
	req := httptest.NewRequest(http.MethodGet, "/v1/reservas/cliente", nil)
	req.Header.Set("Authorization", bearer(t, cfg, "10"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
	}
	var body []interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body) != 0 {
		t.Fatalf("expected empty list, got %s", w.Body.String())
	}
}
