package repository

import (
	"testing"
	"time"

	"github.com/mycampushub/consulting-sub007/internal/database/models"
	apperrors "github.com/mycampushub/consulting-sub007/internal/errors"
	"github.com/mycampushub/consulting-sub007/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// AssignmentGroupRepositoryTestSuite tests the AssignmentGroupRepository
type AssignmentGroupRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *AssignmentGroupRepository
	tenantFactory *testutils.TenantFactory
	groupFactory  *testutils.AssignmentGroupFactory
}

// SetupSuite runs before all tests in the suite
func (suite *AssignmentGroupRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewAssignmentGroupRepository(suite.baseTestSuite.DB)
	suite.tenantFactory = testutils.NewTenantFactory()
	suite.groupFactory = testutils.NewAssignmentGroupFactory()
}

// TearDownSuite runs after all tests in the suite
func (suite *AssignmentGroupRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *AssignmentGroupRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *AssignmentGroupRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// helper to create and persist a tenant
func (suite *AssignmentGroupRepositoryTestSuite) createTenant() *models.Tenant {
	tenant := suite.tenantFactory.Create()
	tenantRepo := NewTenantRepository(suite.baseTestSuite.DB)
	err := tenantRepo.Create(tenant)
	suite.NoError(err)
	return tenant
}

// helper to create and persist a group for the tenant
func (suite *AssignmentGroupRepositoryTestSuite) createGroup(tenantID uuid.UUID) *models.AssignmentGroup {
	group := suite.groupFactory.Create(tenantID, uuid.New(), uuid.New(), uuid.New())
	err := suite.repo.Create(group)
	suite.NoError(err)
	return group
}

// TestCreate tests creating a new assignment group
func (suite *AssignmentGroupRepositoryTestSuite) TestCreate() {
	tenant := suite.createTenant()

	group := suite.groupFactory.Create(tenant.ID, uuid.New(), uuid.New())
	err := suite.repo.Create(group)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, group.ID)
	suite.NotZero(group.CreatedAt)
	suite.Equal(int64(0), group.LockVersion)
}

// TestGetByID tests retrieving an assignment group by ID
func (suite *AssignmentGroupRepositoryTestSuite) TestGetByID() {
	tenant := suite.createTenant()
	group := suite.createGroup(tenant.ID)

	found, err := suite.repo.GetByID(group.ID)

	suite.NoError(err)
	suite.Equal(group.ID, found.ID)
	suite.Equal(group.Name, found.Name)
	// The jsonb member order round-trips in order
	suite.Equal(group.MemberOrder, found.MemberOrder)
}

// TestGetByIDNotFound tests retrieving a non-existent group
func (suite *AssignmentGroupRepositoryTestSuite) TestGetByIDNotFound() {
	found, err := suite.repo.GetByID(uuid.New())

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	suite.Nil(found)
}

// TestGetByName tests the tenant-scoped name lookup
func (suite *AssignmentGroupRepositoryTestSuite) TestGetByName() {
	tenant := suite.createTenant()
	other := suite.createTenant()
	group := suite.createGroup(tenant.ID)

	found, err := suite.repo.GetByName(tenant.ID, group.Name)
	suite.NoError(err)
	suite.Equal(group.ID, found.ID)

	// Same name under another tenant is a different namespace
	_, err = suite.repo.GetByName(other.ID, group.Name)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetByTenantID tests listing groups with pagination
func (suite *AssignmentGroupRepositoryTestSuite) TestGetByTenantID() {
	tenant := suite.createTenant()
	other := suite.createTenant()
	for i := 0; i < 3; i++ {
		suite.createGroup(tenant.ID)
	}
	suite.createGroup(other.ID)

	groups, total, err := suite.repo.GetByTenantID(tenant.ID, 2, 0)

	suite.NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(groups, 2)

	groups, total, err = suite.repo.GetByTenantID(tenant.ID, 2, 2)
	suite.NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(groups, 1)
}

// TestCompareAndSwapCursor tests a successful cursor advance
func (suite *AssignmentGroupRepositoryTestSuite) TestCompareAndSwapCursor() {
	tenant := suite.createTenant()
	group := suite.createGroup(tenant.ID)
	assignedAt := time.Now().UTC()

	err := suite.repo.CompareAndSwapCursor(group.ID, group.LockVersion, 1, &assignedAt)
	suite.NoError(err)

	reloaded, err := suite.repo.GetByID(group.ID)
	suite.NoError(err)
	suite.Equal(1, reloaded.CurrentPosition)
	suite.Equal(group.LockVersion+1, reloaded.LockVersion)
	suite.NotNil(reloaded.LastAssignedAt)
	suite.WithinDuration(assignedAt, *reloaded.LastAssignedAt, time.Second)
}

// TestCompareAndSwapCursorStaleVersion tests that a stale version leaves the
// row untouched and reports a conflict
func (suite *AssignmentGroupRepositoryTestSuite) TestCompareAndSwapCursorStaleVersion() {
	tenant := suite.createTenant()
	group := suite.createGroup(tenant.ID)
	assignedAt := time.Now().UTC()

	// First writer wins
	err := suite.repo.CompareAndSwapCursor(group.ID, group.LockVersion, 1, &assignedAt)
	suite.NoError(err)

	// Second writer still holds the old version
	err = suite.repo.CompareAndSwapCursor(group.ID, group.LockVersion, 2, &assignedAt)
	suite.ErrorIs(err, apperrors.ErrAssignmentConflict)

	reloaded, err := suite.repo.GetByID(group.ID)
	suite.NoError(err)
	suite.Equal(1, reloaded.CurrentPosition)
	suite.Equal(group.LockVersion+1, reloaded.LockVersion)
}

// TestCompareAndSwapCursorUnknownGroup tests CAS against a missing row
func (suite *AssignmentGroupRepositoryTestSuite) TestCompareAndSwapCursorUnknownGroup() {
	assignedAt := time.Now().UTC()
	err := suite.repo.CompareAndSwapCursor(uuid.New(), 0, 1, &assignedAt)
	suite.ErrorIs(err, apperrors.ErrAssignmentConflict)
}

// TestUpdateBumpsLockVersion tests that config updates invalidate in-flight
// cursor writes
func (suite *AssignmentGroupRepositoryTestSuite) TestUpdateBumpsLockVersion() {
	tenant := suite.createTenant()
	group := suite.createGroup(tenant.ID)

	err := suite.repo.Update(group.ID, map[string]interface{}{
		"member_order": models.UUIDSlice{uuid.New()},
	})
	suite.NoError(err)

	reloaded, err := suite.repo.GetByID(group.ID)
	suite.NoError(err)
	suite.Equal(group.LockVersion+1, reloaded.LockVersion)

	// A CAS computed before the update must now lose
	assignedAt := time.Now().UTC()
	err = suite.repo.CompareAndSwapCursor(group.ID, group.LockVersion, 1, &assignedAt)
	suite.ErrorIs(err, apperrors.ErrAssignmentConflict)
}

// TestDelete tests deleting an assignment group
func (suite *AssignmentGroupRepositoryTestSuite) TestDelete() {
	tenant := suite.createTenant()
	group := suite.createGroup(tenant.ID)

	err := suite.repo.Delete(group.ID)
	suite.NoError(err)

	_, err = suite.repo.GetByID(group.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestDeletePreservesAssignmentHistory tests that audit rows outlive the group
func (suite *AssignmentGroupRepositoryTestSuite) TestDeletePreservesAssignmentHistory() {
	tenant := suite.createTenant()
	group := suite.createGroup(tenant.ID)
	assignmentRepo := NewAssignmentRepository(suite.baseTestSuite.DB)

	assignment := &models.Assignment{
		TenantID:   tenant.ID,
		GroupID:    group.ID,
		AssigneeID: group.MemberOrder[0],
		TaskID:     uuid.New(),
		Strategy:   group.Strategy,
		AssignedAt: time.Now().UTC(),
	}
	suite.NoError(assignmentRepo.Create(assignment))

	suite.NoError(suite.repo.Delete(group.ID))

	rows, total, err := assignmentRepo.GetByGroupID(group.ID, 10, 0)
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Len(rows, 1)
}

// TestAssignmentGroupRepositoryTestSuite runs the test suite
func TestAssignmentGroupRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentGroupRepositoryTestSuite))
}
