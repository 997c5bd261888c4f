package staff

import "context"

type StaffRepository interface {
	// ListByBranches returns the non-admin members of the given branches ordered by role rank.
	ListByBranches(ctx context.Context, branches []string) ([]Member, error)
	GetInBranch(ctx context.Context, branch string, id string) (Member, error)
	FindByName(ctx context.Context, branch string, name string) (Member, error)
	FindByEmail(ctx context.Context, branch string, email string) (Member, error)
	ListNames(ctx context.Context) ([]string, error)
	Create(ctx context.Context, member Member) (Member, error)
	Update(ctx context.Context, member Member) error
	Delete(ctx context.Context, branch string, id string) error
}
