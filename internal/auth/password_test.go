package auth

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("vault123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "vault123" {
		t.Fatal("hash must not equal the raw password")
	}

	if !VerifyPassword(hash, "vault123") {
		t.Error("expected hash to verify against original password")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("expected mismatch for wrong password")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (per-hash salt)")
	}
}
