package auth

import (
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/sodeng/branchops-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	if validator.IsEmpty(r.RefreshToken) {
		return validator.ValidationErrors{{
			Field:   "refresh_token",
			Message: "refresh_token is required",
		}}
	}
	return nil
}

type TokenResponse struct {
	AccessToken           string          `json:"access_token"`
	AccessTokenExpiresIn  int64           `json:"access_token_expires_in"`
	RefreshToken          string          `json:"refresh_token"`
	RefreshTokenExpiresIn int64           `json:"refresh_token_expires_in"`
	Session               SessionResponse `json:"session"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}

type SessionResponse struct {
	Email   string     `json:"email"`
	StaffID string     `json:"staff_id,omitempty"`
	Name    string     `json:"name,omitempty"`
	Branch  string     `json:"branch,omitempty"`
	Role    staff.Role `json:"role,omitempty"`
	IsAdmin bool       `json:"is_admin"`
}

func ToSessionResponse(s Session) SessionResponse {
	return SessionResponse{
		Email:   s.Email,
		StaffID: s.StaffID,
		Name:    s.Name,
		Branch:  s.Branch,
		Role:    s.Role,
		IsAdmin: s.IsAdmin,
	}
}
