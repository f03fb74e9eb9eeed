package service_test

import (
	"sync"
	"testing"
	"time"

	"github.com/mycampushub/consulting-sub007/internal/database/models"
	apperrors "github.com/mycampushub/consulting-sub007/internal/errors"
	"github.com/mycampushub/consulting-sub007/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// memGroupStore is an in-memory AssignmentGroupRepositoryInterface with real
// compare-and-swap semantics, so rotation and concurrency behavior can be
// exercised without a database.
type memGroupStore struct {
	mu     sync.Mutex
	groups map[uuid.UUID]*models.AssignmentGroup

	// casConflicts forces the next n CompareAndSwapCursor calls to fail
	casConflicts int
}

func newMemGroupStore(groups ...*models.AssignmentGroup) *memGroupStore {
	s := &memGroupStore{groups: make(map[uuid.UUID]*models.AssignmentGroup)}
	for _, g := range groups {
		s.groups[g.ID] = g
	}
	return s
}

func (s *memGroupStore) Create(group *models.AssignmentGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[group.ID] = group
	return nil
}

func (s *memGroupStore) GetByID(id uuid.UUID) (*models.AssignmentGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	group, ok := s.groups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *group
	copied.MemberOrder = append(models.UUIDSlice(nil), group.MemberOrder...)
	return &copied, nil
}

func (s *memGroupStore) GetByName(tenantID uuid.UUID, name string) (*models.AssignmentGroup, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *memGroupStore) GetByTenantID(tenantID uuid.UUID, limit, offset int) ([]models.AssignmentGroup, int64, error) {
	return nil, 0, nil
}

func (s *memGroupStore) CompareAndSwapCursor(id uuid.UUID, expectedVersion int64, newPosition int, lastAssignedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.casConflicts > 0 {
		s.casConflicts--
		return apperrors.ErrAssignmentConflict
	}
	group, ok := s.groups[id]
	if !ok || group.LockVersion != expectedVersion {
		return apperrors.ErrAssignmentConflict
	}
	group.CurrentPosition = newPosition
	group.LastAssignedAt = lastAssignedAt
	group.LockVersion++
	return nil
}

func (s *memGroupStore) Update(id uuid.UUID, updates map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	group, ok := s.groups[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if pos, ok := updates["current_position"]; ok {
		group.CurrentPosition = pos.(int)
	}
	if _, ok := updates["last_assigned_at"]; ok {
		group.LastAssignedAt = nil
	}
	group.LockVersion++
	return nil
}

func (s *memGroupStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.groups, id)
	return nil
}

// memAssignmentStore records audit rows
type memAssignmentStore struct {
	mu   sync.Mutex
	rows []models.Assignment
}

func (s *memAssignmentStore) Create(assignment *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, *assignment)
	return nil
}

func (s *memAssignmentStore) GetByGroupID(groupID uuid.UUID, limit, offset int) ([]models.Assignment, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Assignment(nil), s.rows...), int64(len(s.rows)), nil
}

func (s *memAssignmentStore) GetByAssigneeID(tenantID, assigneeID uuid.UUID, limit, offset int) ([]models.Assignment, int64, error) {
	return nil, 0, nil
}

// memTenantStore serves a single tenant
type memTenantStore struct {
	tenant *models.Tenant
}

func (s *memTenantStore) Create(tenant *models.Tenant) error { return nil }
func (s *memTenantStore) GetByID(id uuid.UUID) (*models.Tenant, error) {
	if s.tenant != nil && s.tenant.ID == id {
		return s.tenant, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *memTenantStore) GetBySubdomain(subdomain string) (*models.Tenant, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *memTenantStore) GetAll(limit, offset int) ([]models.Tenant, int64, error) {
	return nil, 0, nil
}
func (s *memTenantStore) Update(id uuid.UUID, updates map[string]interface{}) error { return nil }
func (s *memTenantStore) Delete(id uuid.UUID) error                                 { return nil }

// fakeDirectory answers availability and workload from fixed maps and counts
// how often it was consulted
type fakeDirectory struct {
	mu          sync.Mutex
	unavailable map[uuid.UUID]bool
	openTasks   map[uuid.UUID]int64
	calls       int
}

func (d *fakeDirectory) IsAvailable(tenantID, userID uuid.UUID) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	return !d.unavailable[userID], nil
}

func (d *fakeDirectory) OpenTaskCount(tenantID, userID uuid.UUID) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.openTasks[userID], nil
}

func (d *fakeDirectory) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// AllocatorServiceTestSuite defines the test suite for AllocatorService
type AllocatorServiceTestSuite struct {
	suite.Suite
	tenant    *models.Tenant
	members   []uuid.UUID
	group     *models.AssignmentGroup
	store     *memGroupStore
	audit     *memAssignmentStore
	directory *fakeDirectory
	allocator *service.AllocatorService
}

func (s *AllocatorServiceTestSuite) SetupTest() {
	s.tenant = &models.Tenant{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Test Agency",
		Subdomain: "test",
		Timezone:  "UTC",
		IsActive:  true,
	}
	s.members = []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	s.group = &models.AssignmentGroup{
		BaseModel:   models.BaseModel{ID: uuid.New()},
		TenantID:    s.tenant.ID,
		Name:        "intake",
		Strategy:    models.StrategySequential,
		MemberOrder: models.UUIDSlice(s.members),
		IsActive:    true,
	}
	s.store = newMemGroupStore(s.group)
	s.audit = &memAssignmentStore{}
	s.directory = &fakeDirectory{
		unavailable: make(map[uuid.UUID]bool),
		openTasks:   make(map[uuid.UUID]int64),
	}
	s.allocator = service.NewAllocatorService(s.store, s.audit, &memTenantStore{tenant: s.tenant}, s.directory, 5)
}

func (s *AllocatorServiceTestSuite) assign() (*service.AssignmentResult, error) {
	return s.allocator.AssignNext(s.tenant.ID, s.group.ID, uuid.New())
}

func (s *AllocatorServiceTestSuite) TestSequentialCyclesThroughAllMembers() {
	var got []uuid.UUID
	for i := 0; i < 6; i++ {
		result, err := s.assign()
		s.Require().NoError(err)
		got = append(got, result.AssigneeID)
	}

	expected := []uuid.UUID{
		s.members[0], s.members[1], s.members[2],
		s.members[0], s.members[1], s.members[2],
	}
	s.Equal(expected, got)
}

func (s *AllocatorServiceTestSuite) TestSequentialWithoutSkipNeverConsultsDirectory() {
	s.directory.unavailable[s.members[0]] = true

	result, err := s.assign()
	s.Require().NoError(err)

	// Unavailability is ignored when skipping is off, and no availability
	// lookup happens at all.
	s.Equal(s.members[0], result.AssigneeID)
	s.Equal(0, s.directory.callCount())
}

func (s *AllocatorServiceTestSuite) TestSequentialSkipsUnavailableMembers() {
	s.group.SkipUnavailable = true
	s.directory.unavailable[s.members[0]] = true

	result, err := s.assign()
	s.Require().NoError(err)

	s.Equal(s.members[1], result.AssigneeID)
	s.Equal(1, result.Position)
	// Cursor advances past the selected member, not past the skipped one only.
	s.Equal(2, result.NewPosition)
}

func (s *AllocatorServiceTestSuite) TestAllMembersUnavailable() {
	s.group.SkipUnavailable = true
	for _, m := range s.members {
		s.directory.unavailable[m] = true
	}

	before, err := s.store.GetByID(s.group.ID)
	s.Require().NoError(err)

	_, err = s.assign()
	s.Require().ErrorIs(err, apperrors.ErrNoEligibleMember)

	// No partial mutation: cursor and version are untouched.
	after, err := s.store.GetByID(s.group.ID)
	s.Require().NoError(err)
	s.Equal(before.CurrentPosition, after.CurrentPosition)
	s.Equal(before.LockVersion, after.LockVersion)
	s.Empty(s.audit.rows)
}

func (s *AllocatorServiceTestSuite) TestEmptyMemberOrder() {
	s.group.MemberOrder = models.UUIDSlice{}

	_, err := s.assign()
	s.Require().ErrorIs(err, apperrors.ErrNoEligibleMember)
}

func (s *AllocatorServiceTestSuite) TestInactiveGroup() {
	s.group.IsActive = false

	_, err := s.assign()
	s.Require().ErrorIs(err, apperrors.ErrGroupInactive)
}

func (s *AllocatorServiceTestSuite) TestGroupOfAnotherTenantIsHidden() {
	_, err := s.allocator.AssignNext(uuid.New(), s.group.ID, uuid.New())
	s.Require().ErrorIs(err, apperrors.ErrAssignmentGroupNotFound)
}

func (s *AllocatorServiceTestSuite) TestLoadBalancedPicksLeastLoaded() {
	s.group.Strategy = models.StrategyLoadBalanced
	s.directory.openTasks[s.members[0]] = 2
	s.directory.openTasks[s.members[1]] = 0
	s.directory.openTasks[s.members[2]] = 1

	result, err := s.assign()
	s.Require().NoError(err)
	s.Equal(s.members[1], result.AssigneeID)

	// B now has one task too; C is the least loaded of the remainder.
	s.directory.openTasks[s.members[1]] = 1
	result, err = s.assign()
	s.Require().NoError(err)
	s.Equal(s.members[2], result.AssigneeID)
}

func (s *AllocatorServiceTestSuite) TestLoadBalancedTieBreaksInRotationOrder() {
	s.group.Strategy = models.StrategyLoadBalanced
	s.group.CurrentPosition = 1
	// Equal workloads: rotation order from the cursor decides.
	result, err := s.assign()
	s.Require().NoError(err)
	s.Equal(s.members[1], result.AssigneeID)
}

func (s *AllocatorServiceTestSuite) TestLoadBalancedSkipsUnavailable() {
	s.group.Strategy = models.StrategyLoadBalanced
	s.directory.unavailable[s.members[0]] = true
	s.directory.openTasks[s.members[0]] = 0
	s.directory.openTasks[s.members[1]] = 5
	s.directory.openTasks[s.members[2]] = 7

	result, err := s.assign()
	s.Require().NoError(err)
	s.Equal(s.members[1], result.AssigneeID)
}

func (s *AllocatorServiceTestSuite) TestDailyResetRewindsCursor() {
	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	s.group.ResetDaily = true
	s.group.CurrentPosition = 2
	s.group.LastAssignedAt = &yesterday

	result, err := s.assign()
	s.Require().NoError(err)

	s.Equal(s.members[0], result.AssigneeID)
	s.Equal(0, result.Position)
	s.Equal(1, result.NewPosition)
}

func (s *AllocatorServiceTestSuite) TestDailyResetIgnoredSameDay() {
	now := time.Now().UTC()
	s.group.ResetDaily = true
	s.group.CurrentPosition = 2
	s.group.LastAssignedAt = &now

	result, err := s.assign()
	s.Require().NoError(err)
	s.Equal(s.members[2], result.AssigneeID)
}

func (s *AllocatorServiceTestSuite) TestOutOfRangeCursorIsClamped() {
	// A member list that shrank from 8 to 3 can leave a stale cursor behind.
	s.group.CurrentPosition = 7

	result, err := s.assign()
	s.Require().NoError(err)
	s.Equal(s.members[1], result.AssigneeID) // 7 mod 3
}

func (s *AllocatorServiceTestSuite) TestRetriesAfterCursorConflict() {
	s.store.casConflicts = 2

	result, err := s.assign()
	s.Require().NoError(err)
	s.Equal(s.members[0], result.AssigneeID)
}

func (s *AllocatorServiceTestSuite) TestConflictRetriesExhausted() {
	s.store.casConflicts = 5

	_, err := s.assign()
	s.Require().ErrorIs(err, apperrors.ErrAssignmentConflict)
	s.Empty(s.audit.rows)
}

func (s *AllocatorServiceTestSuite) TestAuditRowRecordsDecision() {
	result, err := s.assign()
	s.Require().NoError(err)

	s.Require().Len(s.audit.rows, 1)
	row := s.audit.rows[0]
	s.Equal(s.group.ID, row.GroupID)
	s.Equal(result.AssigneeID, row.AssigneeID)
	s.Equal(result.TaskID, row.TaskID)
	s.Equal(result.Position, row.OrderPositionAtAssignment)
	s.Equal(models.StrategySequential, row.Strategy)
}

func (s *AllocatorServiceTestSuite) TestConcurrentAssignmentsNeverDoubleCommit() {
	const workers = 50

	var wg sync.WaitGroup
	results := make([]*service.AssignmentResult, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results[n], errs[n] = s.assign()
		}(i)
	}
	wg.Wait()

	// Each successful assignment consumed a distinct cursor version, so the
	// sequence of committed positions must round-robin with no duplicates at
	// the same version. Count successes per member: with a fair rotation the
	// spread can differ by at most one.
	counts := make(map[uuid.UUID]int)
	succeeded := 0
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			s.Require().ErrorIs(errs[i], apperrors.ErrAssignmentConflict)
			continue
		}
		succeeded++
		counts[results[i].AssigneeID]++
	}
	s.Positive(succeeded)
	s.Equal(succeeded, len(s.audit.rows))

	min, max := workers, 0
	for _, m := range s.members {
		c := counts[m]
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	s.LessOrEqual(max-min, 1)
}

func (s *AllocatorServiceTestSuite) TestResetGroup() {
	_, err := s.assign()
	s.Require().NoError(err)

	err = s.allocator.ResetGroup(s.tenant.ID, s.group.ID)
	s.Require().NoError(err)

	group, err := s.store.GetByID(s.group.ID)
	s.Require().NoError(err)
	s.Equal(0, group.CurrentPosition)
	s.Nil(group.LastAssignedAt)

	result, err := s.assign()
	s.Require().NoError(err)
	s.Equal(s.members[0], result.AssigneeID)
}

func (s *AllocatorServiceTestSuite) TestResetGroupUnknownGroup() {
	err := s.allocator.ResetGroup(s.tenant.ID, uuid.New())
	assert.ErrorIs(s.T(), err, apperrors.ErrAssignmentGroupNotFound)
}

func TestAllocatorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AllocatorServiceTestSuite))
}
