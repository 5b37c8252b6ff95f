package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerifyToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.IssueToken("sam@example.com")

	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := m.VerifyToken(token)

	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if claims.Email != "sam@example.com" {
		t.Fatalf("got email %q, want sam@example.com", claims.Email)
	}

	// expiry should be about an hour out
	exp := claims.ExpiresAt.Time
	if d := time.Until(exp); d < 55*time.Minute || d > 65*time.Minute {
		t.Fatalf("unexpected expiry distance: %v", d)
	}
}

func TestIssueToken_EmptyClaim(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	if _, err := m.IssueToken(""); err == nil {
		t.Fatalf("expected error for empty identity claim")
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)

	token, err := m.IssueToken("sam@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := other.VerifyToken(token); err == nil {
		t.Fatalf("expected verification failure with wrong secret")
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	// negative TTL falls back to the 1h default, so build an expired manager directly
	m.accessTTL = -time.Minute

	token, err := m.IssueToken("sam@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := m.VerifyToken(token); err == nil {
		t.Fatalf("expected expired token to fail verification")
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	if _, err := m.VerifyToken("not-a-token"); err == nil {
		t.Fatalf("expected garbage token to fail verification")
	}
}
