package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &NotFoundError{Entity: "student"}
		assert.Equal(t, "student not found", err.Error())
	})

	t.Run("errors.Is comparison with same entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "student"}
		err2 := &NotFoundError{Entity: "student"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is comparison with different entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "student"}
		err2 := &NotFoundError{Entity: "lead"}
		assert.False(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is with predefined errors", func(t *testing.T) {
		assert.True(t, errors.Is(ErrAssignmentGroupNotFound, ErrAssignmentGroupNotFound))
		assert.False(t, errors.Is(ErrAssignmentGroupNotFound, ErrTenantNotFound))
	})

	t.Run("IsNotFound helper", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrAssignmentGroupNotFound))
		assert.False(t, IsNotFound(ErrGroupInactive))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	t.Run("Error message with context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "user", Context: "with this email in the tenant"}
		assert.Equal(t, "user already exists with this email in the tenant", err.Error())
	})

	t.Run("Error message without context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "user"}
		assert.Equal(t, "user already exists", err.Error())
	})

	t.Run("errors.Is comparison", func(t *testing.T) {
		err1 := &AlreadyExistsError{Entity: "campaign", Context: "in tenant"}
		err2 := &AlreadyExistsError{Entity: "campaign", Context: "in tenant"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("IsAlreadyExists helper", func(t *testing.T) {
		assert.True(t, IsAlreadyExists(ErrAssignmentGroupExists))
		assert.False(t, IsAlreadyExists(ErrAssignmentGroupNotFound))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with field", func(t *testing.T) {
		err := &ValidationError{Field: "member_order", Message: "duplicate member"}
		assert.Equal(t, "validation error: member_order - duplicate member", err.Error())
	})

	t.Run("Error message without field", func(t *testing.T) {
		err := &ValidationError{Message: "invalid format"}
		assert.Equal(t, "validation error: invalid format", err.Error())
	})

	t.Run("IsValidation helper", func(t *testing.T) {
		err := NewValidationError("email", "invalid")
		assert.True(t, IsValidation(err))
		assert.False(t, IsValidation(ErrTenantNotFound))
	})
}

func TestConflictError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &ConflictError{Message: "cursor moved"}
		assert.Equal(t, "cursor moved", err.Error())
	})

	t.Run("IsConflict helper", func(t *testing.T) {
		assert.True(t, IsConflict(ErrAssignmentConflict))
		assert.False(t, IsConflict(ErrNoEligibleMember))
	})

	t.Run("IsConflict sees through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("assign: %w", ErrAssignmentConflict)
		assert.True(t, IsConflict(wrapped))
		assert.True(t, errors.Is(wrapped, ErrAssignmentConflict))
	})
}

func TestDependencyError(t *testing.T) {
	t.Run("Error message and unwrap", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewDependencyError("directory", cause)
		assert.Equal(t, "directory unavailable: connection refused", err.Error())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("IsDependency helper", func(t *testing.T) {
		assert.True(t, IsDependency(NewDependencyError("directory", errors.New("boom"))))
		assert.False(t, IsDependency(ErrAssignmentConflict))
	})
}

func TestHelperFunctions(t *testing.T) {
	t.Run("NewNotFoundError", func(t *testing.T) {
		err := NewNotFoundError("custom entity")
		assert.Equal(t, "custom entity not found", err.Error())
		assert.True(t, IsNotFound(err))
	})

	t.Run("NewValidationError", func(t *testing.T) {
		err := NewValidationError("field", "message")
		assert.Equal(t, "validation error: field - message", err.Error())
		assert.True(t, IsValidation(err))
	})
}

func TestAllocationErrors(t *testing.T) {
	t.Run("Allocation errors", func(t *testing.T) {
		assert.Error(t, ErrGroupInactive)
		assert.Error(t, ErrNoEligibleMember)
		assert.Error(t, ErrAssignmentConflict)
	})

	t.Run("Business logic errors", func(t *testing.T) {
		assert.Error(t, ErrInvalidStatus)
		assert.Error(t, ErrInvalidStrategy)
		assert.Error(t, ErrDuplicateMember)
		assert.Error(t, ErrMemberNotInTenant)
		assert.Error(t, ErrTenantMismatch)
	})
}
