package service_test

import (
	"testing"
	"time"

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

// LeadServiceTestSuite defines the test suite for LeadService
type LeadServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockLeadRepo  *mocks.MockLeadRepositoryInterface
	mockTaskRepo  *mocks.MockTaskRepositoryInterface
	mockAllocator *mocks.MockAllocatorServiceInterface
	leadService   *service.LeadService
	validator     *validator.Validate
	tenantID      uuid.UUID
}

// SetupTest sets up the test suite
func (suite *LeadServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockLeadRepo = mocks.NewMockLeadRepositoryInterface(suite.ctrl)
	suite.mockTaskRepo = mocks.NewMockTaskRepositoryInterface(suite.ctrl)
	suite.mockAllocator = mocks.NewMockAllocatorServiceInterface(suite.ctrl)
	suite.validator = validator.New()
	suite.tenantID = uuid.New()

	suite.leadService = service.NewLeadService(
		suite.mockLeadRepo,
		suite.mockTaskRepo,
		suite.mockAllocator,
		suite.validator,
	)
}

// TearDownTest cleans up after each test
func (suite *LeadServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *LeadServiceTestSuite) newLead() *models.Lead {
	return &models.Lead{
		BaseModel: models.BaseModel{ID: uuid.New()},
		TenantID:  suite.tenantID,
		FirstName: "Ana",
		LastName:  "Silva",
		Email:     "ana@example.com",
		Status:    models.LeadStatusNew,
	}
}

// TestCreateLead tests creating a lead
func (suite *LeadServiceTestSuite) TestCreateLead() {
	req := &service.CreateLeadRequest{
		FirstName: "Ana",
		LastName:  "Silva",
		Email:     "ana@example.com",
		Source:    "website",
	}

	suite.mockLeadRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(lead *models.Lead) error {
			lead.ID = uuid.New()
			return nil
		}).
		Times(1)

	response, err := suite.leadService.Create(suite.tenantID, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Ana", response.FirstName)
	// New leads always start at the top of the pipeline
	assert.Equal(suite.T(), models.LeadStatusNew, response.Status)
	assert.Nil(suite.T(), response.AssigneeID)
}

// TestCreateLeadValidationError tests creating a lead without a first name
func (suite *LeadServiceTestSuite) TestCreateLeadValidationError() {
	req := &service.CreateLeadRequest{LastName: "Silva"}

	response, err := suite.leadService.Create(suite.tenantID, req)

	assert.Nil(suite.T(), response)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "FirstName")
}

// TestGetLeadsByInvalidStatus tests listing with an unknown status filter
func (suite *LeadServiceTestSuite) TestGetLeadsByInvalidStatus() {
	response, err := suite.leadService.GetByTenant(suite.tenantID, "bogus", 1, 20)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidStatus)
}

// TestGetLeadsByStatus tests listing filtered by status
func (suite *LeadServiceTestSuite) TestGetLeadsByStatus() {
	lead := suite.newLead()

	suite.mockLeadRepo.EXPECT().
		GetByStatus(suite.tenantID, models.LeadStatusNew, 20, 0).
		Return([]models.Lead{*lead}, int64(1), nil).
		Times(1)

	response, err := suite.leadService.GetByTenant(suite.tenantID, "new", 1, 20)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), response.Total)
	assert.Len(suite.T(), response.Leads, 1)
}

// TestDistributeLead tests routing a lead's follow-up work through the allocator
func (suite *LeadServiceTestSuite) TestDistributeLead() {
	lead := suite.newLead()
	groupID := uuid.New()
	assigneeID := uuid.New()

	suite.mockLeadRepo.EXPECT().
		GetByID(lead.ID).
		Return(lead, nil).
		Times(1)

	var mintedTaskID uuid.UUID
	suite.mockAllocator.EXPECT().
		AssignNext(suite.tenantID, groupID, gomock.Any()).
		DoAndReturn(func(tenantID, gID, taskID uuid.UUID) (*service.AssignmentResult, error) {
			mintedTaskID = taskID
			return &service.AssignmentResult{
				GroupID:     gID,
				TaskID:      taskID,
				AssigneeID:  assigneeID,
				Position:    0,
				NewPosition: 1,
				Strategy:    models.StrategySequential,
				AssignedAt:  time.Now().UTC(),
			}, nil
		}).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(task *models.Task) error {
			// The follow-up task carries the allocator's pick and the minted id
			assert.Equal(suite.T(), mintedTaskID, task.ID)
			assert.Equal(suite.T(), suite.tenantID, task.TenantID)
			assert.Equal(suite.T(), models.TaskStatusOpen, task.Status)
			assert.Equal(suite.T(), assigneeID, *task.AssigneeID)
			assert.Equal(suite.T(), lead.ID, *task.LeadID)
			return nil
		}).
		Times(1)

	suite.mockLeadRepo.EXPECT().
		Update(lead.ID, gomock.Any()).
		DoAndReturn(func(id uuid.UUID, updates map[string]interface{}) error {
			assert.Equal(suite.T(), assigneeID, updates["assignee_id"])
			// A fresh lead moves to contacted once an agent owns it
			assert.Equal(suite.T(), models.LeadStatusContacted, updates["status"])
			return nil
		}).
		Times(1)

	distributed := *lead
	distributed.Status = models.LeadStatusContacted
	distributed.AssigneeID = &assigneeID
	suite.mockLeadRepo.EXPECT().
		GetByID(lead.ID).
		Return(&distributed, nil).
		Times(1)

	response, err := suite.leadService.Distribute(suite.tenantID, lead.ID, &service.DistributeLeadRequest{GroupID: groupID})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), assigneeID, *response.Lead.AssigneeID)
	assert.Equal(suite.T(), models.LeadStatusContacted, response.Lead.Status)
	assert.Equal(suite.T(), assigneeID, response.Assignment.AssigneeID)
}

// TestDistributeLeadKeepsQualifiedStatus tests that distribution does not
// rewind a lead already further down the pipeline
func (suite *LeadServiceTestSuite) TestDistributeLeadKeepsQualifiedStatus() {
	lead := suite.newLead()
	lead.Status = models.LeadStatusQualified
	groupID := uuid.New()
	assigneeID := uuid.New()

	suite.mockLeadRepo.EXPECT().
		GetByID(lead.ID).
		Return(lead, nil).
		Times(1)

	suite.mockAllocator.EXPECT().
		AssignNext(suite.tenantID, groupID, gomock.Any()).
		Return(&service.AssignmentResult{AssigneeID: assigneeID}, nil).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		Create(gomock.Any()).
		Return(nil).
		Times(1)

	suite.mockLeadRepo.EXPECT().
		Update(lead.ID, gomock.Any()).
		DoAndReturn(func(id uuid.UUID, updates map[string]interface{}) error {
			assert.Equal(suite.T(), assigneeID, updates["assignee_id"])
			_, touched := updates["status"]
			assert.False(suite.T(), touched)
			return nil
		}).
		Times(1)

	suite.mockLeadRepo.EXPECT().
		GetByID(lead.ID).
		Return(lead, nil).
		Times(1)

	_, err := suite.leadService.Distribute(suite.tenantID, lead.ID, &service.DistributeLeadRequest{GroupID: groupID})

	assert.NoError(suite.T(), err)
}

// TestDistributeLeadAllocatorFailure tests that allocator errors leave the
// lead and task stores untouched
func (suite *LeadServiceTestSuite) TestDistributeLeadAllocatorFailure() {
	lead := suite.newLead()
	groupID := uuid.New()

	suite.mockLeadRepo.EXPECT().
		GetByID(lead.ID).
		Return(lead, nil).
		Times(1)

	suite.mockAllocator.EXPECT().
		AssignNext(suite.tenantID, groupID, gomock.Any()).
		Return(nil, apperrors.ErrNoEligibleMember).
		Times(1)

	response, err := suite.leadService.Distribute(suite.tenantID, lead.ID, &service.DistributeLeadRequest{GroupID: groupID})

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNoEligibleMember)
}

// TestDistributeLeadOfAnotherTenant tests that foreign leads stay hidden
func (suite *LeadServiceTestSuite) TestDistributeLeadOfAnotherTenant() {
	lead := suite.newLead()
	lead.TenantID = uuid.New()

	suite.mockLeadRepo.EXPECT().
		GetByID(lead.ID).
		Return(lead, nil).
		Times(1)

	response, err := suite.leadService.Distribute(suite.tenantID, lead.ID, &service.DistributeLeadRequest{GroupID: uuid.New()})

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrLeadNotFound)
}

// TestUpdateLeadInvalidStatus tests rejecting an unknown pipeline status
func (suite *LeadServiceTestSuite) TestUpdateLeadInvalidStatus() {
	lead := suite.newLead()

	suite.mockLeadRepo.EXPECT().
		GetByID(lead.ID).
		Return(lead, nil).
		Times(1)

	bogus := models.LeadStatus("bogus")
	response, err := suite.leadService.Update(suite.tenantID, lead.ID, &service.UpdateLeadRequest{Status: &bogus})

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidStatus)
}

// TestDeleteLeadNotFound tests deleting a non-existent lead
func (suite *LeadServiceTestSuite) TestDeleteLeadNotFound() {
	leadID := uuid.New()

	suite.mockLeadRepo.EXPECT().
		GetByID(leadID).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	err := suite.leadService.Delete(suite.tenantID, leadID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrLeadNotFound)
}

// TestLeadServiceTestSuite runs the test suite
func TestLeadServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LeadServiceTestSuite))
}
