package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mycampushub/consulting-sub007/internal/database/models"
	apperrors "github.com/mycampushub/consulting-sub007/internal/errors"
	"github.com/mycampushub/consulting-sub007/internal/logger"
	"github.com/mycampushub/consulting-sub007/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultAssignMaxRetries bounds the compare-and-swap retry loop in AssignNext
const DefaultAssignMaxRetries = 5

// AllocatorService selects the next assignee for a group according to its
// configured strategy and advances the rotation cursor. Cursor updates go
// through the store's compare-and-swap, so two concurrent AssignNext calls
// for the same group can never both commit the same position: the loser
// re-reads and reselects from scratch.
type AllocatorService struct {
	groupRepo      repository.AssignmentGroupRepositoryInterface
	assignmentRepo repository.AssignmentRepositoryInterface
	tenantRepo     repository.TenantRepositoryInterface
	directory      Directory
	maxRetries     int
	log            *logger.Logger
}

// NewAllocatorService creates a new allocator service. maxRetries <= 0 falls
// back to DefaultAssignMaxRetries.
func NewAllocatorService(
	groupRepo repository.AssignmentGroupRepositoryInterface,
	assignmentRepo repository.AssignmentRepositoryInterface,
	tenantRepo repository.TenantRepositoryInterface,
	directory Directory,
	maxRetries int,
) *AllocatorService {
	if maxRetries <= 0 {
		maxRetries = DefaultAssignMaxRetries
	}
	return &AllocatorService{
		groupRepo:      groupRepo,
		assignmentRepo: assignmentRepo,
		tenantRepo:     tenantRepo,
		directory:      directory,
		maxRetries:     maxRetries,
		log:            logger.New(),
	}
}

// AssignmentResult reports one allocation decision
type AssignmentResult struct {
	GroupID     uuid.UUID                 `json:"group_id"`
	TaskID      uuid.UUID                 `json:"task_id"`
	AssigneeID  uuid.UUID                 `json:"assignee_id"`
	Position    int                       `json:"position"`
	NewPosition int                       `json:"new_position"`
	Strategy    models.AssignmentStrategy `json:"strategy"`
	AssignedAt  time.Time                 `json:"assigned_at"`
}

// AssignNext picks exactly one eligible member of the group to receive the
// task and advances the cursor past the chosen member. On any failure the
// group state is left untouched.
func (s *AllocatorService) AssignNext(tenantID, groupID, taskID uuid.UUID) (*AssignmentResult, error) {
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		group, err := s.getTenantGroup(tenantID, groupID)
		if err != nil {
			return nil, err
		}
		if !group.IsActive {
			return nil, apperrors.ErrGroupInactive
		}
		memberCount := len(group.MemberOrder)
		if memberCount == 0 {
			return nil, apperrors.ErrNoEligibleMember
		}

		// Start position: stored cursor, defensively clamped, then the lazy
		// daily reset if the last assignment happened on an earlier
		// tenant-local day.
		start := group.CurrentPosition
		if start < 0 || start >= memberCount {
			start = ((start % memberCount) + memberCount) % memberCount
		}
		if group.ResetDaily && s.dayRolledOver(group) {
			start = 0
		}

		selected, err := s.selectCandidate(group, start)
		if err != nil {
			return nil, err
		}

		newPosition := (selected + 1) % memberCount
		assignedAt := time.Now().UTC()

		err = s.groupRepo.CompareAndSwapCursor(group.ID, group.LockVersion, newPosition, &assignedAt)
		if errors.Is(err, apperrors.ErrAssignmentConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to advance assignment cursor: %w", err)
		}

		result := &AssignmentResult{
			GroupID:     group.ID,
			TaskID:      taskID,
			AssigneeID:  group.MemberOrder[selected],
			Position:    selected,
			NewPosition: newPosition,
			Strategy:    group.Strategy,
			AssignedAt:  assignedAt,
		}

		// The cursor advance already committed; a failed audit insert must
		// not turn a successful assignment into an error.
		if err := s.assignmentRepo.Create(&models.Assignment{
			TenantID:                  group.TenantID,
			GroupID:                   group.ID,
			AssigneeID:                result.AssigneeID,
			TaskID:                    taskID,
			Strategy:                  group.Strategy,
			OrderPositionAtAssignment: selected,
			AssignedAt:                assignedAt,
		}); err != nil {
			s.log.WithField("group_id", group.ID).Warnf("failed to record assignment audit entry: %v", err)
		}

		return result, nil
	}

	return nil, apperrors.ErrAssignmentConflict
}

// ResetGroup rewinds the rotation to the first member and clears the last
// assignment timestamp. Idempotent.
func (s *AllocatorService) ResetGroup(tenantID, groupID uuid.UUID) error {
	if _, err := s.getTenantGroup(tenantID, groupID); err != nil {
		return err
	}
	err := s.groupRepo.Update(groupID, map[string]interface{}{
		"current_position": 0,
		"last_assigned_at": nil,
	})
	if err != nil {
		return fmt.Errorf("failed to reset assignment group: %w", err)
	}
	return nil
}

// getTenantGroup loads the group and hides groups of other tenants behind
// the same not-found error
func (s *AllocatorService) getTenantGroup(tenantID, groupID uuid.UUID) (*models.AssignmentGroup, error) {
	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssignmentGroupNotFound
		}
		return nil, fmt.Errorf("failed to get assignment group: %w", err)
	}
	if group.TenantID != tenantID {
		return nil, apperrors.ErrAssignmentGroupNotFound
	}
	return group, nil
}

// dayRolledOver reports whether the group's last assignment happened before
// the current tenant-local day. No scheduler exists; the daily reset is
// evaluated here, at first use of the day.
func (s *AllocatorService) dayRolledOver(group *models.AssignmentGroup) bool {
	if group.LastAssignedAt == nil {
		return false
	}
	loc := time.UTC
	if tenant, err := s.tenantRepo.GetByID(group.TenantID); err == nil && tenant.Timezone != "" {
		if l, err := time.LoadLocation(tenant.Timezone); err == nil {
			loc = l
		}
	}
	now := time.Now().In(loc)
	last := group.LastAssignedAt.In(loc)
	return last.Year() != now.Year() || last.YearDay() != now.YearDay()
}

// selectCandidate walks the cyclic permutation of the member order starting
// at start and returns the index (into MemberOrder) of the chosen member
func (s *AllocatorService) selectCandidate(group *models.AssignmentGroup, start int) (int, error) {
	n := len(group.MemberOrder)

	if group.Strategy == models.StrategyLoadBalanced {
		return s.selectLoadBalanced(group, start)
	}

	// Sequential without skipping takes the member at the cursor
	// unconditionally; availability is the caller's problem by configuration.
	if !group.SkipUnavailable {
		return start, nil
	}

	for i := 0; i < n; i++ {
		idx := (start + i) % n
		available, err := s.directory.IsAvailable(group.TenantID, group.MemberOrder[idx])
		if err != nil {
			return 0, err
		}
		if available {
			return idx, nil
		}
	}
	return 0, apperrors.ErrNoEligibleMember
}

// selectLoadBalanced picks the available member with the fewest open tasks.
// Ties go to whoever comes first in rotation order from the cursor, so equal
// workloads still rotate instead of starving later members.
func (s *AllocatorService) selectLoadBalanced(group *models.AssignmentGroup, start int) (int, error) {
	n := len(group.MemberOrder)

	type candidate struct {
		idx       int
		available bool
		count     int64
		err       error
	}

	// Directory lookups for distinct members have no ordering dependency,
	// only the cursor write does.
	candidates := make([]candidate, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(order int) {
			defer wg.Done()
			idx := (start + order) % n
			memberID := group.MemberOrder[idx]
			c := candidate{idx: idx}
			c.available, c.err = s.directory.IsAvailable(group.TenantID, memberID)
			if c.err == nil && c.available {
				c.count, c.err = s.directory.OpenTaskCount(group.TenantID, memberID)
			}
			candidates[order] = c
		}(i)
	}
	wg.Wait()

	best := -1
	var bestCount int64
	for _, c := range candidates {
		if c.err != nil {
			return 0, c.err
		}
		if !c.available {
			continue
		}
		if best == -1 || c.count < bestCount {
			best = c.idx
			bestCount = c.count
		}
	}
	if best == -1 {
		return 0, apperrors.ErrNoEligibleMember
	}
	return best, nil
}
