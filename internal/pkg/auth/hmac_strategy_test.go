package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func TestNewHMACStrategyDefaultTTL(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if strategy == nil {
		t.Fatal("expected strategy instance")
	}
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestHMACStrategyIssueAndParse(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(Claims{UserID: 42, Staff: true})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user 42, got %d", claims.UserID)
	}
	if !claims.Staff {
		t.Fatal("expected staff claim to survive round trip")
	}
}

func TestHMACStrategyNonStaffClaim(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(Claims{UserID: 7})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	claims, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Staff {
		t.Fatal("did not expect staff claim")
	}
}

func TestHMACStrategyRejectsGarbage(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})

	cases := []string{
		"",
		"not-base64!!",
		base64.StdEncoding.EncodeToString([]byte("too:few")),
		base64.StdEncoding.EncodeToString([]byte("1:0:9999999999:badsig")),
	}
	for _, tc := range cases {
		if _, err := strategy.ParseToken(tc); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", tc, err)
		}
	}
}

func TestHMACStrategyRejectsTamperedSecret(t *testing.T) {
	issued, err := NewHMACStrategy("secret-a", Options{TTL: time.Minute}).IssueToken(Claims{UserID: 1})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := NewHMACStrategy("secret-b", Options{TTL: time.Minute}).ParseToken(issued); err != ErrInvalidToken {
		t.Fatalf("expected signature mismatch, got %v", err)
	}
}

func TestHMACStrategyRejectsExpired(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: -time.Minute})
	token, err := strategy.IssueToken(Claims{UserID: 1})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := strategy.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected expired token rejection, got %v", err)
	}
	if !strings.Contains(strategy.Name(), "hmac") {
		t.Fatalf("unexpected strategy name %q", strategy.Name())
	}
}
