package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("resource state conflict")

// ErrStateTransition indicates a lifecycle transition the state machine does not allow.
var ErrStateTransition = errors.New("invalid state transition")

// ErrNotEditable indicates an update attempted while the resource is not editable.
var ErrNotEditable = errors.New("resource is not editable in its current state")

// ErrQuotaOverflow indicates that aggregate ownership quotas exceed 100% of a building.
var ErrQuotaOverflow = errors.New("ownership quotas exceed 100%")

// ErrForbidden indicates the user is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Journal entry construction failures. All unwrap to ErrValidation so callers can
// match either the precise rule or the broad kind.
var (
	ErrEmptyEntry         = fmt.Errorf("%w: journal entry must contain at least one line", ErrValidation)
	ErrInvalidLine        = fmt.Errorf("%w: invalid journal line", ErrValidation)
	ErrUnbalancedEntry    = fmt.Errorf("%w: journal entry debits and credits do not balance", ErrValidation)
	ErrInvalidJournalType = fmt.Errorf("%w: invalid journal type", ErrValidation)
)
