package staff

import "context"

// StaffService maintains staff records and their login credentials.
type StaffService interface {
	List(ctx context.Context, branch string) ([]StaffResponse, error)
	Get(ctx context.Context, branch string, id string) (StaffResponse, error)
	Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)
	Update(ctx context.Context, req UpdateStaffRequest) (StaffResponse, error)
	Delete(ctx context.Context, branch string, id string) error
}
