package attendance

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShiftNotFound       = errors.New("shift record not found")
	ErrShiftConfirmed      = errors.New("shift is confirmed")
	ErrShiftOff            = errors.New("shift is off duty")
	ErrAdminRequired       = errors.New("only admins can switch duty")
	ErrUnknownAction       = errors.New("unknown shift action")
	ErrPartialWriteFailure = errors.New("some writes failed")
)

// RowError flags one staff row that could not be reconciled or edited.
// Date is set for roster cells.
type RowError struct {
	StaffID string
	Date    string
	Err     error
}

func (e *RowError) Error() string {
	if e.Date != "" {
		return fmt.Sprintf("staff %s on %s: %v", e.StaffID, e.Date, e.Err)
	}
	return fmt.Sprintf("staff %s: %v", e.StaffID, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// WriteFailure names one sub-write of a save that failed.
type WriteFailure struct {
	Target string
	Err    error
}

// PartialWriteError reports the sub-writes of a save that failed. The
// successful ones stay committed.
type PartialWriteError struct {
	Failures []WriteFailure
}

func (e *PartialWriteError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Target+": "+f.Err.Error())
	}
	return fmt.Sprintf("%s (%d): %s", ErrPartialWriteFailure, len(e.Failures), strings.Join(parts, "; "))
}

func (e *PartialWriteError) Is(target error) bool {
	return target == ErrPartialWriteFailure
}

func (e *PartialWriteError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Targets lists the failed sub-writes.
func (e *PartialWriteError) Targets() []string {
	targets := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		targets = append(targets, f.Target)
	}
	return targets
}
