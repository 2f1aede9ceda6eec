package config

import (
	"strconv"
	"time"
)

type SecurityConfig interface {
	GetTokenSecret() string
	GetTokenTTL() time.Duration
	GetBcryptCost() int
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetTokenSecret() string {
	return GetEnv("JWT_SECRET", "dev-only-insecure-secret")
}

// GetTokenTTL returns how long issued session tokens stay valid.
// Tokens are stateless and cannot be revoked before this elapses.
func (Security) GetTokenTTL() time.Duration {
	seconds, err := strconv.Atoi(GetEnv("TOKEN_TTL_SECONDS", "36000"))
	if err != nil || seconds <= 0 {
		seconds = 36000
	}
	return time.Duration(seconds) * time.Second
}

func (Security) GetBcryptCost() int {
	return 10
}
