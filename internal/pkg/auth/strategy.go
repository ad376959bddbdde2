package auth

import "time"

// Claims identify the authenticated account carried by a token.
type Claims struct {
	UserID int64
	Staff  bool
}

// Strategy issues and verifies auth tokens.
type Strategy interface {
	IssueToken(claims Claims) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
