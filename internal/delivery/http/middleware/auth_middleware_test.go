package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dental-clinic-api/config"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/service"
	"dental-clinic-api/pkg/jwt"

	"github.com/google/uuid"
)

type memoryTokenStore struct {
	keys map[string]bool
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{keys: make(map[string]bool)}
}

func (s *memoryTokenStore) Save(_ context.Context, key string, _ time.Duration) error {
	s.keys[key] = true
	return nil
}

func (s *memoryTokenStore) Exists(_ context.Context, key string) (bool, error) {
	return s.keys[key], nil
}

func (s *memoryTokenStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.keys, key)
	}
	return nil
}

func (s *memoryTokenStore) DeleteByPattern(context.Context, string) error {
	s.keys = make(map[string]bool)
	return nil
}

func newTestJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func issueToken(t *testing.T, svc *jwt.JWTService, store service.TokenStore, userID uuid.UUID, role entity.Role) string {
	t.Helper()
	token, tokenID, err := svc.GenerateAccessToken(userID, role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if err := store.Save(context.Background(), service.AccessTokenKey(userID, tokenID), time.Minute); err != nil {
		t.Fatalf("store token: %v", err)
	}
	return token
}

func TestAuthenticate(t *testing.T) {
	jwtService := newTestJWTService()
	store := newMemoryTokenStore()
	mw := NewAuthMiddleware(jwtService, store)

	userID := uuid.New()
	validToken := issueToken(t, jwtService, store, userID, entity.RolePatient)

	// Never saved to the store, so it reads as revoked
	revokedToken, _, err := jwtService.GenerateAccessToken(uuid.New(), entity.RolePatient)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	refreshToken, _, err := jwtService.GenerateRefreshToken(userID, entity.RolePatient)
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	var gotPrincipal entity.Principal
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotPrincipal, _ = GetPrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", wantStatus: http.StatusUnauthorized},
		{name: "bearer without token", header: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.jwt", wantStatus: http.StatusForbidden},
		{name: "refresh token instead of access", header: "Bearer " + refreshToken, wantStatus: http.StatusForbidden},
		{name: "revoked token", header: "Bearer " + revokedToken, wantStatus: http.StatusForbidden},
		{name: "valid token", header: "Bearer " + validToken, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest(http.MethodGet, "/api/v1/citas", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			mw.Authenticate(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if !called {
					t.Fatal("next handler was not called")
				}
				if gotPrincipal.ID != userID {
					t.Errorf("principal ID = %s, want %s", gotPrincipal.ID, userID)
				}
				if gotPrincipal.Role != entity.RolePatient {
					t.Errorf("principal role = %q, want %q", gotPrincipal.Role, entity.RolePatient)
				}
			} else if called {
				t.Error("next handler should not run on rejected requests")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		principal  *entity.Principal
		allowed    []entity.Role
		wantStatus int
	}{
		{
			name:       "role allowed",
			principal:  &entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin},
			allowed:    []entity.Role{entity.RoleAdmin},
			wantStatus: http.StatusOK,
		},
		{
			name:       "one of several allowed",
			principal:  &entity.Principal{ID: uuid.New(), Role: entity.RolePatient},
			allowed:    []entity.Role{entity.RolePatient, entity.RoleAdmin},
			wantStatus: http.StatusOK,
		},
		{
			name:       "role denied",
			principal:  &entity.Principal{ID: uuid.New(), Role: entity.RoleDentist},
			allowed:    []entity.Role{entity.RolePatient, entity.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown role denied",
			principal:  &entity.Principal{ID: uuid.New(), Role: entity.Role("ghost")},
			allowed:    []entity.Role{entity.RolePatient, entity.RoleAdmin, entity.RoleDentist},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no principal in context",
			principal:  nil,
			allowed:    []entity.Role{entity.RoleAdmin},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.principal != nil {
				ctx := context.WithValue(req.Context(), PrincipalKey, *tt.principal)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			RequireRole(tt.allowed...)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
