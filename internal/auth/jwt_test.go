package auth

import (
	"testing"
	"time"

	"tunedeck.org/tunedeck/internal/config"
	"tunedeck.org/tunedeck/models"
)

func testConfig(expiration time.Duration) *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			AuthEnabled:   true,
			JWTSecret:     "test-secret",
			JWTExpiration: expiration,
		},
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(testConfig(time.Hour))

	token, err := svc.GenerateToken("bench-1", models.RoleOperator)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Name != "bench-1" {
		t.Errorf("Name = %q, want %q", claims.Name, "bench-1")
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != models.RoleOperator {
		t.Errorf("Roles = %v, want [operator]", claims.Roles)
	}
}

func TestGenerateTokenRejectsBadInput(t *testing.T) {
	svc := NewJWTService(testConfig(time.Hour))

	if _, err := svc.GenerateToken(""); err == nil {
		t.Error("expected error for empty subject")
	}
	if _, err := svc.GenerateToken("bench-1", models.Role("superuser")); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewJWTService(testConfig(time.Hour))

	token, err := svc.GenerateToken("bench-1", models.RoleViewer)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := NewJWTService(&config.Config{
		Security: config.SecurityConfig{
			JWTSecret:     "different-secret",
			JWTExpiration: time.Hour,
		},
	})

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected validation failure with wrong secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService(testConfig(-time.Minute))

	token, err := svc.GenerateToken("bench-1", models.RoleViewer)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := svc.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateGarbageToken(t *testing.T) {
	svc := NewJWTService(testConfig(time.Hour))

	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestGenerateAPIKey(t *testing.T) {
	key, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}
	if len(key) < 10 {
		t.Errorf("key too short: %q", key)
	}
	if key[:4] != "tdk_" {
		t.Errorf("key missing prefix: %q", key)
	}

	other, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}
	if key == other {
		t.Error("two generated keys must differ")
	}
}
