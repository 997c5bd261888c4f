package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid name or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrCredentialNotFound  = errors.New("credential not found")
	ErrEmailExists         = errors.New("login email already registered")
	ErrAdminPrivilege      = errors.New("admin privilege required")
)
