package service

import (
	"errors"

	apperrors "github.com/mycampushub/consulting-sub007/internal/errors"
	"github.com/mycampushub/consulting-sub007/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Directory answers eligibility and workload questions about users. The
// allocator never touches user or task tables directly; everything it knows
// about a candidate comes through here.
type Directory interface {
	IsAvailable(tenantID, userID uuid.UUID) (bool, error)
	OpenTaskCount(tenantID, userID uuid.UUID) (int64, error)
}

// DirectoryService implements Directory on top of the tenant's user and
// task repositories
type DirectoryService struct {
	userRepo repository.UserRepositoryInterface
	taskRepo repository.TaskRepositoryInterface
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(userRepo repository.UserRepositoryInterface, taskRepo repository.TaskRepositoryInterface) *DirectoryService {
	return &DirectoryService{
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
}

// IsAvailable reports whether the user exists in the tenant, is active and
// is currently accepting work. A user from another tenant is simply not
// available here.
func (s *DirectoryService) IsAvailable(tenantID, userID uuid.UUID) (bool, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperrors.NewDependencyError("directory", err)
	}
	if user.TenantID != tenantID {
		return false, nil
	}
	return user.IsActive && user.IsAvailable, nil
}

// OpenTaskCount returns the user's current open-task workload within the tenant
func (s *DirectoryService) OpenTaskCount(tenantID, userID uuid.UUID) (int64, error) {
	count, err := s.taskRepo.CountOpenByAssignee(tenantID, userID)
	if err != nil {
		return 0, apperrors.NewDependencyError("directory", err)
	}
	return count, nil
}
