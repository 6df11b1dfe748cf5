package auth

import (
	"testing"
	"time"

	"awards-api/internal/config"

	"golang.org/x/crypto/bcrypt"
)

func testService(t *testing.T, password string) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			Expiration: 24 * time.Hour,
		},
		Admin: config.AdminConfig{
			Email:        "admin@example.com",
			PasswordHash: string(hash),
		},
	}
	return NewService(cfg)
}

func TestLogin(t *testing.T) {
	svc := testService(t, "correct-password")

	token, err := svc.Login("admin@example.com", "correct-password")
	if err != nil {
		t.Fatalf("Login with valid credentials failed: %v", err)
	}
	if token == "" {
		t.Error("Token should not be empty")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := testService(t, "correct-password")

	if _, err := svc.Login("admin@example.com", "wrong-password"); err != ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := testService(t, "correct-password")

	if _, err := svc.Login("someone@example.com", "correct-password"); err != ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateToken(t *testing.T) {
	svc := testService(t, "correct-password")

	token, err := svc.Login("admin@example.com", "correct-password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("Expected email admin@example.com, got %s", claims.Email)
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	svc := testService(t, "correct-password")

	if _, err := svc.ValidateToken("not-a-token"); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := testService(t, "correct-password")
	other := testService(t, "correct-password")
	other.secret = []byte("different-secret")

	token, err := other.generateToken("admin@example.com")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := svc.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for wrong secret, got %v", err)
	}
}
