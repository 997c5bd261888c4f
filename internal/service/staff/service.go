package staff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/domain/auth"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/sodeng/branchops-backend-go/internal/pkg/database"
	"github.com/sodeng/branchops-backend-go/internal/pkg/validator"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
	"golang.org/x/crypto/bcrypt"
)

type StaffServiceImpl struct {
	branches    []string
	tx          database.Transactor
	staffRepo   staff.StaffRepository
	credentials auth.CredentialRepository
	hashCost    int
}

func NewStaffService(branches []string, tx database.Transactor, staffRepo staff.StaffRepository, credentials auth.CredentialRepository) staff.StaffService {
	return &StaffServiceImpl{
		branches:    branches,
		tx:          tx,
		staffRepo:   staffRepo,
		credentials: credentials,
		hashCost:    bcrypt.DefaultCost,
	}
}

// LoginEmail derives the login identity for a staff name.
func LoginEmail(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "")) + auth.EmailDomain
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}

func (s *StaffServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *StaffServiceImpl) checkBranch(branch string) error {
	if !slices.Contains(s.branches, branch) {
		return staff.ErrUnknownBranch
	}
	return nil
}

// nameTaken reports whether any branch already has a member called name,
// other than the member with id exceptID.
func (s *StaffServiceImpl) nameTaken(ctx context.Context, name string, exceptID string) (bool, error) {
	for _, branch := range s.branches {
		m, err := s.staffRepo.FindByName(ctx, branch, name)
		if errors.Is(err, staff.ErrStaffNotFound) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("failed to check staff name: %w: %w", database.ErrStorageUnavailable, err)
		}
		if m.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

// List implements staff.StaffService.
func (s *StaffServiceImpl) List(ctx context.Context, branch string) ([]staff.StaffResponse, error) {
	if err := s.checkBranch(branch); err != nil {
		return nil, err
	}

	members, err := s.staffRepo.ListByBranches(ctx, []string{branch})
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w: %w", database.ErrStorageUnavailable, err)
	}

	responses := make([]staff.StaffResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, staff.ToResponse(m))
	}
	return responses, nil
}

// Get implements staff.StaffService.
func (s *StaffServiceImpl) Get(ctx context.Context, branch string, id string) (staff.StaffResponse, error) {
	m, err := s.get(ctx, branch, id)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.ToResponse(m), nil
}

func (s *StaffServiceImpl) get(ctx context.Context, branch string, id string) (staff.Member, error) {
	if err := s.checkBranch(branch); err != nil {
		return staff.Member{}, err
	}

	m, err := s.staffRepo.GetInBranch(ctx, branch, id)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return staff.Member{}, err
		}
		return staff.Member{}, fmt.Errorf("failed to get staff: %w: %w", database.ErrStorageUnavailable, err)
	}
	return m, nil
}

// Create implements staff.StaffService. The member and their login
// credential are written in one transaction.
func (s *StaffServiceImpl) Create(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}
	if err := s.checkBranch(req.Branch); err != nil {
		return staff.StaffResponse{}, err
	}

	name := normalizeName(req.Name)
	email := LoginEmail(name)
	if !validator.IsValidEmail(email) {
		return staff.StaffResponse{}, validator.ValidationErrors{{
			Field:   "name",
			Message: "name does not form a valid login",
		}}
	}

	taken, err := s.nameTaken(ctx, name, "")
	if err != nil {
		return staff.StaffResponse{}, err
	}
	if taken {
		return staff.StaffResponse{}, staff.ErrStaffNameExists
	}

	hours, err := worktime.ElapsedHours(req.DefaultStart, req.DefaultEnd)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	passwordHash, err := s.hashPassword(req.Password)
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	member := staff.Member{
		ID:             uuid.New().String(),
		Name:           name,
		Role:           req.Role,
		Branch:         req.Branch,
		Email:          email,
		DefaultStart:   req.DefaultStart,
		DefaultEnd:     req.DefaultEnd,
		ScheduledHours: hours,
		Compensation:   staff.NewCompensation(req.Role, req.NominalSalary, req.ActualSalary, req.WorkingDaysPerWeek, req.HourlyRate),
	}

	var created staff.Member
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.credentials.Create(ctx, auth.Credential{Email: email, PasswordHash: passwordHash, StaffID: member.ID}); err != nil {
			if errors.Is(err, auth.ErrEmailExists) {
				return staff.ErrStaffNameExists
			}
			return fmt.Errorf("failed to create credential: %w: %w", database.ErrStorageUnavailable, err)
		}

		created, err = s.staffRepo.Create(ctx, member)
		if err != nil {
			if errors.Is(err, staff.ErrStaffNameExists) {
				return err
			}
			return fmt.Errorf("failed to create staff: %w: %w", database.ErrStorageUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return staff.StaffResponse{}, err
	}

	slog.Info("Staff member created", "staff_id", created.ID, "branch", created.Branch, "role", created.Role)
	return staff.ToResponse(created), nil
}

// Update implements staff.StaffService. Moving a member to another branch
// removes them from the old branch and recreates them in the new one.
func (s *StaffServiceImpl) Update(ctx context.Context, req staff.UpdateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}

	current, err := s.get(ctx, req.CurrentBranch, req.ID)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	updated := current
	if req.Name != nil {
		updated.Name = normalizeName(*req.Name)
		if updated.Name != current.Name {
			taken, err := s.nameTaken(ctx, updated.Name, current.ID)
			if err != nil {
				return staff.StaffResponse{}, err
			}
			if taken {
				return staff.StaffResponse{}, staff.ErrStaffNameExists
			}
		}
	}
	if req.Role != nil {
		updated.Role = *req.Role
	}
	if req.Branch != nil {
		if err := s.checkBranch(*req.Branch); err != nil {
			return staff.StaffResponse{}, err
		}
		updated.Branch = *req.Branch
	}
	if req.DefaultStart != nil {
		updated.DefaultStart = *req.DefaultStart
	}
	if req.DefaultEnd != nil {
		updated.DefaultEnd = *req.DefaultEnd
	}

	updated.ScheduledHours, err = worktime.ElapsedHours(updated.DefaultStart, updated.DefaultEnd)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	compensation, err := mergeCompensation(current.Compensation, updated.Role, req)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	updated.Compensation = compensation

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if updated.Branch == current.Branch {
			return s.staffRepo.Update(ctx, updated)
		}
		if err := s.staffRepo.Delete(ctx, current.Branch, current.ID); err != nil {
			return err
		}
		created, err := s.staffRepo.Create(ctx, updated)
		updated = created
		return err
	})
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) || errors.Is(err, staff.ErrStaffNameExists) {
			return staff.StaffResponse{}, err
		}
		return staff.StaffResponse{}, fmt.Errorf("failed to update staff: %w: %w", database.ErrStorageUnavailable, err)
	}

	slog.Info("Staff member updated", "staff_id", updated.ID, "branch", updated.Branch, "moved", updated.Branch != current.Branch)
	return staff.ToResponse(updated), nil
}

// mergeCompensation overlays the request's compensation fields on the
// stored profile and validates the result for role.
func mergeCompensation(current staff.Compensation, role staff.Role, req staff.UpdateStaffRequest) (staff.Compensation, error) {
	var (
		nominal, actual, hourly *decimal.Decimal
		days                    *int
	)
	switch c := current.(type) {
	case staff.Salaried:
		nominal, actual, days = &c.NominalSalary, &c.ActualSalary, &c.WorkingDaysPerWeek
	case staff.Hourly:
		hourly = &c.HourlyRate
	}
	if req.NominalSalary != nil {
		nominal = req.NominalSalary
	}
	if req.ActualSalary != nil {
		actual = req.ActualSalary
	}
	if req.WorkingDaysPerWeek != nil {
		days = req.WorkingDaysPerWeek
	}
	if req.HourlyRate != nil {
		hourly = req.HourlyRate
	}

	if errs := staff.ValidateCompensation(role, nominal, actual, days, hourly); len(errs) > 0 {
		return nil, errs
	}
	return staff.NewCompensation(role, nominal, actual, days, hourly), nil
}

// Delete implements staff.StaffService. The login credential goes with the member.
func (s *StaffServiceImpl) Delete(ctx context.Context, branch string, id string) error {
	member, err := s.get(ctx, branch, id)
	if err != nil {
		return err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.staffRepo.Delete(ctx, branch, id); err != nil {
			return err
		}
		if err := s.credentials.Delete(ctx, member.Email); err != nil && !errors.Is(err, auth.ErrCredentialNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete staff: %w: %w", database.ErrStorageUnavailable, err)
	}

	slog.Info("Staff member deleted", "staff_id", id, "branch", branch)
	return nil
}
