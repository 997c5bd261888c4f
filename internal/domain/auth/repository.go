package auth

import (
	"context"
	"time"
)

// CredentialRepository stores password hashes keyed by login email.
type CredentialRepository interface {
	GetByEmail(ctx context.Context, email string) (Credential, error)
	Create(ctx context.Context, credential Credential) error
	Delete(ctx context.Context, email string) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, email string, token string, expiresAt time.Time) error
	// IsRevoked returns the token's owner and whether it can no longer be used.
	IsRevoked(ctx context.Context, token string) (email string, revoked bool, err error)
	Revoke(ctx context.Context, token string) error
}
