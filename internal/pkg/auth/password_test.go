package auth

import "testing"

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(4)
	hash, err := hasher.Hash("hortifruti")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hortifruti" {
		t.Fatal("hash must not equal password")
	}
	if err := hasher.Compare(hash, "hortifruti"); err != nil {
		t.Fatalf("expected match: %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestNewBcryptHasherDefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(0)
	if hasher.cost == 0 {
		t.Fatal("expected default cost to be applied")
	}
}
