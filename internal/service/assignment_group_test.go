package service_test

import (
	"testing"

	"github.com/mycampushub/consulting-sub007/internal/database/models"
	apperrors "github.com/mycampushub/consulting-sub007/internal/errors"
	"github.com/mycampushub/consulting-sub007/internal/mocks"
	"github.com/mycampushub/consulting-sub007/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// AssignmentGroupServiceTestSuite defines the test suite for AssignmentGroupService
type AssignmentGroupServiceTestSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockGroupRepo      *mocks.MockAssignmentGroupRepositoryInterface
	mockUserRepo       *mocks.MockUserRepositoryInterface
	mockAssignmentRepo *mocks.MockAssignmentRepositoryInterface
	groupService       *service.AssignmentGroupService
	validator          *validator.Validate
	tenantID           uuid.UUID
}

// SetupTest sets up the test suite
func (suite *AssignmentGroupServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockGroupRepo = mocks.NewMockAssignmentGroupRepositoryInterface(suite.ctrl)
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockAssignmentRepo = mocks.NewMockAssignmentRepositoryInterface(suite.ctrl)
	suite.validator = validator.New()
	suite.tenantID = uuid.New()

	suite.groupService = service.NewAssignmentGroupService(
		suite.mockGroupRepo,
		suite.mockUserRepo,
		suite.mockAssignmentRepo,
		suite.validator,
	)
}

// TearDownTest cleans up after each test
func (suite *AssignmentGroupServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AssignmentGroupServiceTestSuite) tenantUsers(ids ...uuid.UUID) []models.User {
	users := make([]models.User, len(ids))
	for i, id := range ids {
		users[i] = models.User{
			BaseModel: models.BaseModel{ID: id},
			TenantID:  suite.tenantID,
			IsActive:  true,
		}
	}
	return users
}

// TestCreateAssignmentGroup tests creating an assignment group
func (suite *AssignmentGroupServiceTestSuite) TestCreateAssignmentGroup() {
	members := []uuid.UUID{uuid.New(), uuid.New()}
	req := &service.CreateAssignmentGroupRequest{
		Name:        "intake-rotation",
		Description: "Incoming lead rotation",
		MemberOrder: members,
	}

	suite.mockUserRepo.EXPECT().
		GetByIDs(suite.tenantID, members).
		Return(suite.tenantUsers(members...), nil).
		Times(1)

	suite.mockGroupRepo.EXPECT().
		GetByName(suite.tenantID, req.Name).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	suite.mockGroupRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(group *models.AssignmentGroup) error {
			group.ID = uuid.New()
			return nil
		}).
		Times(1)

	response, err := suite.groupService.Create(suite.tenantID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), req.Name, response.Name)
	// Strategy defaults to sequential when omitted
	assert.Equal(suite.T(), models.StrategySequential, response.Strategy)
	assert.Equal(suite.T(), 0, response.CurrentPosition)
	assert.True(suite.T(), response.IsActive)
}

// TestCreateAssignmentGroupInvalidStrategy tests rejecting an unknown strategy
func (suite *AssignmentGroupServiceTestSuite) TestCreateAssignmentGroupInvalidStrategy() {
	req := &service.CreateAssignmentGroupRequest{
		Name:     "intake-rotation",
		Strategy: models.AssignmentStrategy("random"),
	}

	response, err := suite.groupService.Create(suite.tenantID, req)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidStrategy)
}

// TestCreateAssignmentGroupDuplicateName tests name uniqueness within a tenant
func (suite *AssignmentGroupServiceTestSuite) TestCreateAssignmentGroupDuplicateName() {
	req := &service.CreateAssignmentGroupRequest{Name: "intake-rotation"}

	suite.mockGroupRepo.EXPECT().
		GetByName(suite.tenantID, req.Name).
		Return(&models.AssignmentGroup{TenantID: suite.tenantID, Name: req.Name}, nil).
		Times(1)

	response, err := suite.groupService.Create(suite.tenantID, req)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAssignmentGroupExists)
}

// TestCreateAssignmentGroupDuplicateMember tests rejecting a member listed twice
func (suite *AssignmentGroupServiceTestSuite) TestCreateAssignmentGroupDuplicateMember() {
	member := uuid.New()
	req := &service.CreateAssignmentGroupRequest{
		Name:        "intake-rotation",
		MemberOrder: []uuid.UUID{member, member},
	}

	response, err := suite.groupService.Create(suite.tenantID, req)

	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestCreateAssignmentGroupForeignMember tests rejecting a member of another tenant
func (suite *AssignmentGroupServiceTestSuite) TestCreateAssignmentGroupForeignMember() {
	ours := uuid.New()
	foreign := uuid.New()
	req := &service.CreateAssignmentGroupRequest{
		Name:        "intake-rotation",
		MemberOrder: []uuid.UUID{ours, foreign},
	}

	// The tenant-scoped lookup only resolves the member that belongs to us
	suite.mockUserRepo.EXPECT().
		GetByIDs(suite.tenantID, req.MemberOrder).
		Return(suite.tenantUsers(ours), nil).
		Times(1)

	response, err := suite.groupService.Create(suite.tenantID, req)

	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
	assert.Contains(suite.T(), err.Error(), foreign.String())
}

// TestGetAssignmentGroupByID tests retrieving an assignment group
func (suite *AssignmentGroupServiceTestSuite) TestGetAssignmentGroupByID() {
	groupID := uuid.New()
	group := &models.AssignmentGroup{
		BaseModel: models.BaseModel{ID: groupID},
		TenantID:  suite.tenantID,
		Name:      "intake-rotation",
		Strategy:  models.StrategySequential,
		IsActive:  true,
	}

	suite.mockGroupRepo.EXPECT().
		GetByID(groupID).
		Return(group, nil).
		Times(1)

	response, err := suite.groupService.GetByID(suite.tenantID, groupID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), groupID, response.ID)
	assert.Equal(suite.T(), "intake-rotation", response.Name)
}

// TestGetAssignmentGroupOfAnotherTenant tests that foreign groups stay hidden
func (suite *AssignmentGroupServiceTestSuite) TestGetAssignmentGroupOfAnotherTenant() {
	groupID := uuid.New()
	group := &models.AssignmentGroup{
		BaseModel: models.BaseModel{ID: groupID},
		TenantID:  uuid.New(),
		Name:      "someone-elses",
	}

	suite.mockGroupRepo.EXPECT().
		GetByID(groupID).
		Return(group, nil).
		Times(1)

	response, err := suite.groupService.GetByID(suite.tenantID, groupID)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAssignmentGroupNotFound)
}

// TestGetAssignmentGroupNotFound tests retrieving a non-existent group
func (suite *AssignmentGroupServiceTestSuite) TestGetAssignmentGroupNotFound() {
	groupID := uuid.New()

	suite.mockGroupRepo.EXPECT().
		GetByID(groupID).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.groupService.GetByID(suite.tenantID, groupID)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAssignmentGroupNotFound)
}

// TestUpdateAssignmentGroupShrinkClampsCursor tests that a shorter member list
// pulls an out-of-range cursor back into bounds
func (suite *AssignmentGroupServiceTestSuite) TestUpdateAssignmentGroupShrinkClampsCursor() {
	groupID := uuid.New()
	remaining := []uuid.UUID{uuid.New(), uuid.New()}
	group := &models.AssignmentGroup{
		BaseModel:       models.BaseModel{ID: groupID},
		TenantID:        suite.tenantID,
		Name:            "intake-rotation",
		Strategy:        models.StrategySequential,
		MemberOrder:     models.UUIDSlice{uuid.New(), uuid.New(), uuid.New(), remaining[0], remaining[1]},
		CurrentPosition: 3,
		IsActive:        true,
	}

	suite.mockGroupRepo.EXPECT().
		GetByID(groupID).
		Return(group, nil).
		Times(1)

	suite.mockUserRepo.EXPECT().
		GetByIDs(suite.tenantID, remaining).
		Return(suite.tenantUsers(remaining...), nil).
		Times(1)

	suite.mockGroupRepo.EXPECT().
		Update(groupID, gomock.Any()).
		DoAndReturn(func(id uuid.UUID, updates map[string]interface{}) error {
			assert.Equal(suite.T(), models.UUIDSlice(remaining), updates["member_order"])
			assert.Equal(suite.T(), 1, updates["current_position"]) // 3 mod 2
			return nil
		}).
		Times(1)

	updated := *group
	updated.MemberOrder = models.UUIDSlice(remaining)
	updated.CurrentPosition = 1
	suite.mockGroupRepo.EXPECT().
		GetByID(groupID).
		Return(&updated, nil).
		Times(1)

	req := &service.UpdateAssignmentGroupRequest{
		MemberOrder: &remaining,
	}
	response, err := suite.groupService.Update(suite.tenantID, groupID, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, response.CurrentPosition)
	assert.Len(suite.T(), response.MemberOrder, 2)
}

// TestUpdateAssignmentGroupClearMembers tests that an emptied member list
// resets the cursor to zero
func (suite *AssignmentGroupServiceTestSuite) TestUpdateAssignmentGroupClearMembers() {
	groupID := uuid.New()
	group := &models.AssignmentGroup{
		BaseModel:       models.BaseModel{ID: groupID},
		TenantID:        suite.tenantID,
		Name:            "intake-rotation",
		MemberOrder:     models.UUIDSlice{uuid.New(), uuid.New()},
		CurrentPosition: 1,
		IsActive:        true,
	}

	suite.mockGroupRepo.EXPECT().
		GetByID(groupID).
		Return(group, nil).
		Times(1)

	suite.mockGroupRepo.EXPECT().
		Update(groupID, gomock.Any()).
		DoAndReturn(func(id uuid.UUID, updates map[string]interface{}) error {
			assert.Equal(suite.T(), 0, updates["current_position"])
			return nil
		}).
		Times(1)

	updated := *group
	updated.MemberOrder = models.UUIDSlice{}
	updated.CurrentPosition = 0
	suite.mockGroupRepo.EXPECT().
		GetByID(groupID).
		Return(&updated, nil).
		Times(1)

	empty := []uuid.UUID{}
	req := &service.UpdateAssignmentGroupRequest{MemberOrder: &empty}
	response, err := suite.groupService.Update(suite.tenantID, groupID, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, response.CurrentPosition)
	assert.Empty(suite.T(), response.MemberOrder)
}

// TestUpdateAssignmentGroupRename tests renaming with the uniqueness check
func (suite *AssignmentGroupServiceTestSuite) TestUpdateAssignmentGroupRename() {
	groupID := uuid.New()
	group := &models.AssignmentGroup{
		BaseModel: models.BaseModel{ID: groupID},
		TenantID:  suite.tenantID,
		Name:      "old-name",
		IsActive:  true,
	}

	suite.mockGroupRepo.EXPECT().
		GetByID(groupID).
		Return(group, nil).
		Times(1)

	suite.mockGroupRepo.EXPECT().
		GetByName(suite.tenantID, "new-name").
		Return(&models.AssignmentGroup{TenantID: suite.tenantID, Name: "new-name"}, nil).
		Times(1)

	name := "new-name"
	req := &service.UpdateAssignmentGroupRequest{Name: &name}
	response, err := suite.groupService.Update(suite.tenantID, groupID, req)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAssignmentGroupExists)
}

// TestDeleteAssignmentGroup tests deleting an assignment group
func (suite *AssignmentGroupServiceTestSuite) TestDeleteAssignmentGroup() {
	groupID := uuid.New()
	group := &models.AssignmentGroup{
		BaseModel: models.BaseModel{ID: groupID},
		TenantID:  suite.tenantID,
	}

	suite.mockGroupRepo.EXPECT().
		GetByID(groupID).
		Return(group, nil).
		Times(1)

	suite.mockGroupRepo.EXPECT().
		Delete(groupID).
		Return(nil).
		Times(1)

	err := suite.groupService.Delete(suite.tenantID, groupID)

	assert.NoError(suite.T(), err)
}

// TestHistory tests retrieving the assignment audit trail
func (suite *AssignmentGroupServiceTestSuite) TestHistory() {
	groupID := uuid.New()
	group := &models.AssignmentGroup{
		BaseModel: models.BaseModel{ID: groupID},
		TenantID:  suite.tenantID,
	}
	rows := []models.Assignment{
		{GroupID: groupID, AssigneeID: uuid.New(), OrderPositionAtAssignment: 0},
		{GroupID: groupID, AssigneeID: uuid.New(), OrderPositionAtAssignment: 1},
	}

	suite.mockGroupRepo.EXPECT().
		GetByID(groupID).
		Return(group, nil).
		Times(1)

	suite.mockAssignmentRepo.EXPECT().
		GetByGroupID(groupID, 20, 0).
		Return(rows, int64(2), nil).
		Times(1)

	response, err := suite.groupService.History(suite.tenantID, groupID, 1, 20)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), response.Total)
	assert.Len(suite.T(), response.Assignments, 2)
}

// TestHistoryPaginationDefaults tests that out-of-range paging falls back to defaults
func (suite *AssignmentGroupServiceTestSuite) TestHistoryPaginationDefaults() {
	groupID := uuid.New()
	group := &models.AssignmentGroup{
		BaseModel: models.BaseModel{ID: groupID},
		TenantID:  suite.tenantID,
	}

	suite.mockGroupRepo.EXPECT().
		GetByID(groupID).
		Return(group, nil).
		Times(1)

	suite.mockAssignmentRepo.EXPECT().
		GetByGroupID(groupID, 20, 0).
		Return([]models.Assignment{}, int64(0), nil).
		Times(1)

	response, err := suite.groupService.History(suite.tenantID, groupID, 0, 500)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, response.Page)
	assert.Equal(suite.T(), 20, response.PageSize)
}

// TestAssignmentGroupServiceTestSuite runs the test suite
func TestAssignmentGroupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentGroupServiceTestSuite))
}
