package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sodeng/branchops-backend-go/internal/domain/auth"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/sodeng/branchops-backend-go/internal/pkg/database"
)

// AccessResolver maps a login identity to a staff record by scanning the
// configured branches in order. The first branch holding a match wins.
type AccessResolver struct {
	branches  []string
	staffRepo staff.StaffRepository
}

func NewAccessResolver(branches []string, staffRepo staff.StaffRepository) *AccessResolver {
	return &AccessResolver{branches: branches, staffRepo: staffRepo}
}

// Resolve returns the session for email. An identity with no staff record
// in any branch gets a session without privileges.
func (r *AccessResolver) Resolve(ctx context.Context, email string) (auth.Session, error) {
	session := auth.Session{Email: email}

	for _, branch := range r.branches {
		member, err := r.staffRepo.FindByEmail(ctx, branch, email)
		if errors.Is(err, staff.ErrStaffNotFound) {
			continue
		}
		if err != nil {
			return auth.Session{}, fmt.Errorf("failed to resolve access in %s: %w: %w", branch, database.ErrStorageUnavailable, err)
		}

		session.StaffID = member.ID
		session.Name = member.Name
		session.Branch = member.Branch
		session.Role = member.Role
		session.IsAdmin = member.Role == staff.RoleAdmin
		return session, nil
	}

	return session, nil
}

// FindByCredentialName locates the staff member a login name belongs to.
func (r *AccessResolver) FindByCredentialName(ctx context.Context, name string) (staff.Member, error) {
	for _, branch := range r.branches {
		member, err := r.staffRepo.FindByName(ctx, branch, name)
		if errors.Is(err, staff.ErrStaffNotFound) {
			continue
		}
		if err != nil {
			return staff.Member{}, fmt.Errorf("failed to look up %q in %s: %w: %w", name, branch, database.ErrStorageUnavailable, err)
		}
		return member, nil
	}
	return staff.Member{}, staff.ErrStaffNotFound
}
