package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "github.com/example/task-tracker/domain/user"
	"github.com/gofiber/fiber/v2"
)

// fakeAuthPort implements auth.AuthPort for middleware tests.
type fakeAuthPort struct {
	claims *domain.Claims
	err    error
}

func (f *fakeAuthPort) ValidateToken(_ context.Context, _ string) (*domain.Claims, error) {
	return f.claims, f.err
}

func (f *fakeAuthPort) GetUser(_ context.Context, _ string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func TestAuthMiddleware(t *testing.T) {
	validClaims := &domain.Claims{UserID: "user-123", Email: "alice@example.com"}

	tests := []struct {
		name           string
		authHeader     string
		port           *fakeAuthPort
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			port:           &fakeAuthPort{err: errors.New("should not be called")},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Authorization header is required"`,
		},
		{
			name:           "non-bearer scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			port:           &fakeAuthPort{err: errors.New("should not be called")},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `Invalid authorization header format`,
		},
		{
			// Fiber trims trailing spaces, so "Bearer " fails the prefix
			// check rather than the empty-token check.
			name:           "bearer without token",
			authHeader:     "Bearer ",
			port:           &fakeAuthPort{err: errors.New("should not be called")},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
		{
			name:           "rejected token",
			authHeader:     "Bearer expired-token",
			port:           &fakeAuthPort{err: errors.New("token expired")},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Invalid or expired token"`,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			port:           &fakeAuthPort{claims: validClaims},
			expectedStatus: http.StatusOK,
			expectedBody:   `"authenticated"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(AuthMiddleware(tt.port))
			app.Get("/test", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{"status": "authenticated"})
			})

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.expectedStatus)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("io.ReadAll() error = %v", err)
			}
			if !strings.Contains(string(body), tt.expectedBody) {
				t.Errorf("body = %v, want to contain %v", string(body), tt.expectedBody)
			}
		})
	}
}

func TestAuthMiddleware_ClaimsReachHandlers(t *testing.T) {
	port := &fakeAuthPort{
		claims: &domain.Claims{UserID: "user-456", Email: "bob@example.com"},
	}

	app := fiber.New()
	app.Use(AuthMiddleware(port))

	var captured *domain.Claims
	app.Get("/test", func(c *fiber.Ctx) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		captured = claims
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
	if captured == nil {
		t.Fatal("claims not set in context")
	}
	if captured.UserID != "user-456" {
		t.Errorf("claims.UserID = %v, want user-456", captured.UserID)
	}
	if captured.Email != "bob@example.com" {
		t.Errorf("claims.Email = %v, want bob@example.com", captured.Email)
	}
}
