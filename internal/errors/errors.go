package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "in tenant"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// ConflictError represents a state conflict that the caller may retry
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// DependencyError represents a transient failure of a collaborator the
// caller depends on (e.g. the user/task store backing the directory)
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// Entity Not Found Errors
var (
	ErrTenantNotFound          = &NotFoundError{Entity: "tenant"}
	ErrUserNotFound            = &NotFoundError{Entity: "user"}
	ErrStudentNotFound         = &NotFoundError{Entity: "student"}
	ErrLeadNotFound            = &NotFoundError{Entity: "lead"}
	ErrTaskNotFound            = &NotFoundError{Entity: "task"}
	ErrCampaignNotFound        = &NotFoundError{Entity: "campaign"}
	ErrInvoiceNotFound         = &NotFoundError{Entity: "invoice"}
	ErrAssignmentGroupNotFound = &NotFoundError{Entity: "assignment group"}
	ErrAssignmentNotFound      = &NotFoundError{Entity: "assignment"}
)

// Already Exists Errors
var (
	ErrTenantExists          = &AlreadyExistsError{Entity: "tenant", Context: "with this subdomain"}
	ErrUserExists            = &AlreadyExistsError{Entity: "user", Context: "with this email in the tenant"}
	ErrCampaignExists        = &AlreadyExistsError{Entity: "campaign", Context: "with this name in the tenant"}
	ErrInvoiceExists         = &AlreadyExistsError{Entity: "invoice", Context: "with this number in the tenant"}
	ErrAssignmentGroupExists = &AlreadyExistsError{Entity: "assignment group", Context: "with this name in the tenant"}
)

// Allocation Errors
var (
	ErrGroupInactive      = errors.New("assignment group is inactive")
	ErrNoEligibleMember   = errors.New("no eligible member available for assignment")
	ErrAssignmentConflict = &ConflictError{Message: "assignment cursor was updated concurrently, retries exhausted"}
)

// Business Logic Errors
var (
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidStrategy         = errors.New("invalid assignment strategy")
	ErrDuplicateMember         = errors.New("member order contains duplicate members")
	ErrMemberNotInTenant       = errors.New("member does not belong to the tenant")
	ErrInvalidPaginationParams = errors.New("invalid pagination parameters")
	ErrTenantMismatch          = errors.New("entity does not belong to the tenant")
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// IsDependency checks if an error is a DependencyError
func IsDependency(err error) bool {
	var depErr *DependencyError
	return errors.As(err, &depErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewDependencyError wraps a collaborator failure
func NewDependencyError(dependency string, err error) error {
	return &DependencyError{Dependency: dependency, Err: err}
}
