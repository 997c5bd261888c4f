package staff

import "errors"

var (
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrStaffNameExists    = errors.New("staff name already registered")
	ErrUnknownBranch      = errors.New("unknown branch")
	ErrInvalidRole        = errors.New("invalid staff role")
	ErrAdminNotRosterable = errors.New("admin accounts have no shifts")
)
