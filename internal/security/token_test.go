package security

import (
	"testing"
	"time"
)

func TestUnlockTokenRoundTrip(t *testing.T) {
	key := []byte("test-signing-key")

	tokenString, err := GenerateUnlockToken(key, "parent", 5*time.Minute)
	if err != nil {
		t.Fatalf("GenerateUnlockToken: %v", err)
	}

	subject, err := ValidateUnlockToken(key, tokenString)
	if err != nil {
		t.Fatalf("ValidateUnlockToken: %v", err)
	}
	if subject != "parent" {
		t.Errorf("subject = %q, want %q", subject, "parent")
	}
}

func TestUnlockTokenRejectsWrongKey(t *testing.T) {
	tokenString, err := GenerateUnlockToken([]byte("key-one"), "parent", 5*time.Minute)
	if err != nil {
		t.Fatalf("GenerateUnlockToken: %v", err)
	}

	if _, err := ValidateUnlockToken([]byte("key-two"), tokenString); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for wrong key, got %v", err)
	}
}

func TestUnlockTokenRejectsExpired(t *testing.T) {
	key := []byte("test-signing-key")

	tokenString, err := GenerateUnlockToken(key, "parent", -1*time.Minute)
	if err != nil {
		t.Fatalf("GenerateUnlockToken: %v", err)
	}

	if _, err := ValidateUnlockToken(key, tokenString); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !CheckPassword("correct horse", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPassword("wrong horse", hash) {
		t.Error("expected mismatched password to fail")
	}
}
