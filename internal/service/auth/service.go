package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sodeng/branchops-backend-go/internal/domain/auth"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/sodeng/branchops-backend-go/internal/pkg/database"
	"github.com/sodeng/branchops-backend-go/internal/pkg/jwt"
	"github.com/sodeng/branchops-backend-go/internal/pkg/sse"
	"golang.org/x/crypto/bcrypt"
)

const sessionEventName = "session"

type AuthServiceImpl struct {
	access      *AccessResolver
	staffRepo   staff.StaffRepository
	credentials auth.CredentialRepository
	tokens      auth.RefreshTokenRepository
	jwtService  jwt.Service
	hub         *sse.Hub
}

func NewAuthService(
	access *AccessResolver,
	staffRepo staff.StaffRepository,
	credentials auth.CredentialRepository,
	tokens auth.RefreshTokenRepository,
	jwtService jwt.Service,
	hub *sse.Hub,
) auth.AuthService {
	return &AuthServiceImpl{
		access:      access,
		staffRepo:   staffRepo,
		credentials: credentials,
		tokens:      tokens,
		jwtService:  jwtService,
		hub:         hub,
	}
}

// Authenticate checks password against the stored hash for email and
// resolves the session it grants.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, email string, password string) (auth.Session, error) {
	credential, err := a.credentials.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, auth.ErrCredentialNotFound) {
			return auth.Session{}, auth.ErrInvalidCredentials
		}
		return auth.Session{}, fmt.Errorf("failed to get credential: %w: %w", database.ErrStorageUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return auth.Session{}, auth.ErrInvalidCredentials
	}

	return a.access.Resolve(ctx, email)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	member, err := a.access.FindByCredentialName(ctx, strings.ToUpper(strings.TrimSpace(req.Name)))
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	session, err := a.Authenticate(ctx, member.Email, req.Password)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	var tokenResponse auth.TokenResponse
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwtService.GenerateAccessToken(session)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwtService.GenerateRefreshToken(session.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.tokens.Create(ctx, session.Email, tokenResponse.RefreshToken, time.Unix(tokenResponse.RefreshTokenExpiresIn, 0)); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token: %w: %w", database.ErrStorageUnavailable, err)
	}

	tokenResponse.Session = auth.ToSessionResponse(session)
	a.publish(auth.SessionLogin, session)

	slog.Info("User logged in", "email", session.Email, "branch", session.Branch, "is_admin", session.IsAdmin)
	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	email, err := a.refreshTokenOwner(refreshToken)
	if err != nil {
		return err
	}

	if err := a.tokens.Revoke(ctx, refreshToken); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return err
		}
		return fmt.Errorf("failed to revoke refresh token: %w: %w", database.ErrStorageUnavailable, err)
	}

	a.publish(auth.SessionLogout, auth.Session{Email: email})
	return nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	if _, err := a.refreshTokenOwner(req.RefreshToken); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	email, revoked, err := a.tokens.IsRevoked(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return auth.AccessTokenResponse{}, err
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w: %w", database.ErrStorageUnavailable, err)
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	session, err := a.access.Resolve(ctx, email)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(session)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	a.publish(auth.SessionRefresh, session)
	return auth.AccessTokenResponse{AccessToken: accessToken, AccessTokenExpiresIn: expiresAt}, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, email string) (auth.SessionResponse, error) {
	session, err := a.access.Resolve(ctx, email)
	if err != nil {
		return auth.SessionResponse{}, err
	}
	return auth.ToSessionResponse(session), nil
}

// ListNames implements auth.AuthService.
func (a *AuthServiceImpl) ListNames(ctx context.Context) ([]string, error) {
	names, err := a.staffRepo.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff names: %w: %w", database.ErrStorageUnavailable, err)
	}
	return names, nil
}

// OnSessionChange implements auth.AuthService.
func (a *AuthServiceImpl) OnSessionChange(email string, fn func(auth.SessionEvent)) (stop func()) {
	return a.hub.Listen(email, func(ev sse.Event) {
		if sessionEvent, ok := ev.Data.(auth.SessionEvent); ok {
			fn(sessionEvent)
		}
	})
}

func (a *AuthServiceImpl) publish(eventType auth.SessionEventType, session auth.Session) {
	a.hub.Publish(session.Email, sse.Event{
		Name: sessionEventName,
		Data: auth.SessionEvent{
			Type:    eventType,
			Session: auth.ToSessionResponse(session),
			At:      time.Now().UTC(),
		},
	})
}

func (a *AuthServiceImpl) refreshTokenOwner(refreshToken string) (string, error) {
	token, err := jwtauth.VerifyToken(a.jwtService.JWTAuth(), refreshToken)
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != jwt.TypeRefresh {
		return "", auth.ErrInvalidToken
	}

	email, ok := token.Get("email")
	if !ok {
		return "", auth.ErrInvalidToken
	}
	emailStr, ok := email.(string)
	if !ok || emailStr == "" {
		return "", auth.ErrInvalidToken
	}
	return emailStr, nil
}
