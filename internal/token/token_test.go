package token

import (
	"testing"

	"github.com/atinyakov/PayLedger/internal/models"
)

func TestGenerateAndParse(t *testing.T) {
	user := &models.User{ID: "u1", Email: "alice@example.com", Name: "Alice"}

	signed, err := Generate("secret", user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := Parse("secret", signed)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "alice@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	signed, err := Generate("secret", &models.User{ID: "u1"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := Parse("other", signed); err == nil {
		t.Fatal("expected error for wrong secret, got nil")
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := Parse("secret", "not-a-token"); err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
}
