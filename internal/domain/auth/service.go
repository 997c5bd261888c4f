package auth

import "context"

type AuthService interface {
	// Login looks the name up across branches, checks the password and issues tokens.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	// Me resolves the caller's role afresh.
	Me(ctx context.Context, email string) (SessionResponse, error)
	// ListNames returns every staff name for the login picker.
	ListNames(ctx context.Context) ([]string, error)
	// OnSessionChange calls fn for each session event of email until stop is called.
	OnSessionChange(email string, fn func(SessionEvent)) (stop func())
}
