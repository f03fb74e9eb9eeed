package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/mycampushub/consulting-sub007/internal/api/handlers"
	"github.com/mycampushub/consulting-sub007/internal/database/models"
	apperrors "github.com/mycampushub/consulting-sub007/internal/errors"
	"github.com/mycampushub/consulting-sub007/internal/mocks"
	"github.com/mycampushub/consulting-sub007/internal/service"
	"github.com/mycampushub/consulting-sub007/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// AssignmentGroupHandlerTestSuite defines the test suite for AssignmentGroupHandler
type AssignmentGroupHandlerTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockGroupSvc  *mocks.MockAssignmentGroupServiceInterface
	mockAllocator *mocks.MockAllocatorServiceInterface
	handler       *handlers.AssignmentGroupHandler
	httpSuite     *testutils.HTTPTestSuite
	tenantID      uuid.UUID
}

// SetupTest sets up the test suite
func (suite *AssignmentGroupHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockGroupSvc = mocks.NewMockAssignmentGroupServiceInterface(suite.ctrl)
	suite.mockAllocator = mocks.NewMockAllocatorServiceInterface(suite.ctrl)
	suite.tenantID = uuid.New()

	// Create handler with mock services
	suite.handler = handlers.NewAssignmentGroupHandler(suite.mockGroupSvc, suite.mockAllocator)

	// Setup HTTP test suite with a resolved tenant in context
	suite.httpSuite = testutils.SetupHTTPTest()
	suite.httpSuite.Router.Use(testutils.TenantContext(suite.tenantID))

	// Register routes
	v1 := suite.httpSuite.Router.Group("/api/v1")
	groups := v1.Group("/assignment-groups")
	{
		groups.POST("", suite.handler.CreateAssignmentGroup)
		groups.GET("", suite.handler.ListAssignmentGroups)
		groups.GET("/:id", suite.handler.GetAssignmentGroup)
		groups.PUT("/:id", suite.handler.UpdateAssignmentGroup)
		groups.DELETE("/:id", suite.handler.DeleteAssignmentGroup)
		groups.POST("/:id/assign", suite.handler.Assign)
		groups.POST("/:id/reset", suite.handler.Reset)
		groups.GET("/:id/history", suite.handler.History)
	}
}

// TearDownTest cleans up after each test
func (suite *AssignmentGroupHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateAssignmentGroup tests the CreateAssignmentGroup handler
func (suite *AssignmentGroupHandlerTestSuite) TestCreateAssignmentGroup() {
	suite.T().Run("Success", func(t *testing.T) {
		members := []uuid.UUID{uuid.New(), uuid.New()}
		requestBody := map[string]interface{}{
			"name":         "intake-rotation",
			"strategy":     "sequential",
			"member_order": []string{members[0].String(), members[1].String()},
		}

		expectedResponse := &service.AssignmentGroupResponse{
			ID:          uuid.New(),
			TenantID:    suite.tenantID,
			Name:        "intake-rotation",
			Strategy:    models.StrategySequential,
			MemberOrder: members,
			IsActive:    true,
		}

		suite.mockGroupSvc.EXPECT().
			Create(suite.tenantID, gomock.Any()).
			Return(expectedResponse, nil).
			Times(1)

		recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/assignment-groups", requestBody)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response service.AssignmentGroupResponse
		testutils.ParseJSONResponse(t, recorder, &response)
		assert.Equal(t, expectedResponse.Name, response.Name)
		assert.Equal(t, expectedResponse.Strategy, response.Strategy)
	})

	suite.T().Run("Duplicate name", func(t *testing.T) {
		requestBody := map[string]interface{}{"name": "intake-rotation"}

		suite.mockGroupSvc.EXPECT().
			Create(suite.tenantID, gomock.Any()).
			Return(nil, apperrors.ErrAssignmentGroupExists).
			Times(1)

		recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/assignment-groups", requestBody)

		testutils.AssertErrorResponse(t, recorder, http.StatusConflict, "already exists")
	})

	suite.T().Run("Invalid strategy", func(t *testing.T) {
		requestBody := map[string]interface{}{"name": "x", "strategy": "random"}

		suite.mockGroupSvc.EXPECT().
			Create(suite.tenantID, gomock.Any()).
			Return(nil, apperrors.ErrInvalidStrategy).
			Times(1)

		recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/assignment-groups", requestBody)

		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "strategy")
	})
}

// TestGetAssignmentGroup tests the GetAssignmentGroup handler
func (suite *AssignmentGroupHandlerTestSuite) TestGetAssignmentGroup() {
	suite.T().Run("Success", func(t *testing.T) {
		groupID := uuid.New()
		expectedResponse := &service.AssignmentGroupResponse{
			ID:       groupID,
			TenantID: suite.tenantID,
			Name:     "intake-rotation",
		}

		suite.mockGroupSvc.EXPECT().
			GetByID(suite.tenantID, groupID).
			Return(expectedResponse, nil).
			Times(1)

		recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/assignment-groups/"+groupID.String(), nil)

		var response service.AssignmentGroupResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusOK, &response)
		assert.Equal(t, groupID, response.ID)
	})

	suite.T().Run("Not found", func(t *testing.T) {
		groupID := uuid.New()

		suite.mockGroupSvc.EXPECT().
			GetByID(suite.tenantID, groupID).
			Return(nil, apperrors.ErrAssignmentGroupNotFound).
			Times(1)

		recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/assignment-groups/"+groupID.String(), nil)

		testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "not found")
	})

	suite.T().Run("Invalid UUID", func(t *testing.T) {
		recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/assignment-groups/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

// TestListAssignmentGroups tests the ListAssignmentGroups handler
func (suite *AssignmentGroupHandlerTestSuite) TestListAssignmentGroups() {
	expectedResponse := &service.AssignmentGroupListResponse{
		Groups: []service.AssignmentGroupResponse{
			{ID: uuid.New(), TenantID: suite.tenantID, Name: "intake"},
			{ID: uuid.New(), TenantID: suite.tenantID, Name: "follow-up"},
		},
		Total:    2,
		Page:     1,
		PageSize: 20,
	}

	suite.mockGroupSvc.EXPECT().
		GetByTenant(suite.tenantID, 1, 20).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/assignment-groups", nil)

	var response service.AssignmentGroupListResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	assert.Equal(suite.T(), int64(2), response.Total)
	assert.Len(suite.T(), response.Groups, 2)
}

// TestUpdateAssignmentGroup tests the UpdateAssignmentGroup handler
func (suite *AssignmentGroupHandlerTestSuite) TestUpdateAssignmentGroup() {
	groupID := uuid.New()
	requestBody := map[string]interface{}{"is_active": false}

	expectedResponse := &service.AssignmentGroupResponse{
		ID:       groupID,
		TenantID: suite.tenantID,
		Name:     "intake-rotation",
		IsActive: false,
	}

	suite.mockGroupSvc.EXPECT().
		Update(suite.tenantID, groupID, gomock.Any()).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("PUT", "/api/v1/assignment-groups/"+groupID.String(), requestBody)

	var response service.AssignmentGroupResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	assert.False(suite.T(), response.IsActive)
}

// TestDeleteAssignmentGroup tests the DeleteAssignmentGroup handler
func (suite *AssignmentGroupHandlerTestSuite) TestDeleteAssignmentGroup() {
	groupID := uuid.New()

	suite.mockGroupSvc.EXPECT().
		Delete(suite.tenantID, groupID).
		Return(nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("DELETE", "/api/v1/assignment-groups/"+groupID.String(), nil)

	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
}

// TestAssign tests the Assign handler
func (suite *AssignmentGroupHandlerTestSuite) TestAssign() {
	suite.T().Run("Success", func(t *testing.T) {
		groupID := uuid.New()
		taskID := uuid.New()
		assigneeID := uuid.New()

		expectedResult := &service.AssignmentResult{
			GroupID:     groupID,
			TaskID:      taskID,
			AssigneeID:  assigneeID,
			Position:    0,
			NewPosition: 1,
			Strategy:    models.StrategySequential,
			AssignedAt:  time.Now().UTC(),
		}

		suite.mockAllocator.EXPECT().
			AssignNext(suite.tenantID, groupID, taskID).
			Return(expectedResult, nil).
			Times(1)

		requestBody := map[string]interface{}{"task_id": taskID.String()}
		recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/assignment-groups/"+groupID.String()+"/assign", requestBody)

		var result service.AssignmentResult
		testutils.AssertJSONResponse(t, recorder, http.StatusOK, &result)
		assert.Equal(t, assigneeID, result.AssigneeID)
		assert.Equal(t, 1, result.NewPosition)
	})

	suite.T().Run("Missing task_id", func(t *testing.T) {
		groupID := uuid.New()
		recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/assignment-groups/"+groupID.String()+"/assign", map[string]interface{}{})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	suite.T().Run("Group inactive", func(t *testing.T) {
		groupID := uuid.New()
		taskID := uuid.New()

		suite.mockAllocator.EXPECT().
			AssignNext(suite.tenantID, groupID, taskID).
			Return(nil, apperrors.ErrGroupInactive).
			Times(1)

		requestBody := map[string]interface{}{"task_id": taskID.String()}
		recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/assignment-groups/"+groupID.String()+"/assign", requestBody)

		testutils.AssertErrorResponse(t, recorder, http.StatusUnprocessableEntity, "inactive")
	})

	suite.T().Run("No eligible member", func(t *testing.T) {
		groupID := uuid.New()
		taskID := uuid.New()

		suite.mockAllocator.EXPECT().
			AssignNext(suite.tenantID, groupID, taskID).
			Return(nil, apperrors.ErrNoEligibleMember).
			Times(1)

		requestBody := map[string]interface{}{"task_id": taskID.String()}
		recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/assignment-groups/"+groupID.String()+"/assign", requestBody)

		testutils.AssertErrorResponse(t, recorder, http.StatusUnprocessableEntity, "eligible")
	})

	suite.T().Run("Retries exhausted", func(t *testing.T) {
		groupID := uuid.New()
		taskID := uuid.New()

		suite.mockAllocator.EXPECT().
			AssignNext(suite.tenantID, groupID, taskID).
			Return(nil, apperrors.ErrAssignmentConflict).
			Times(1)

		requestBody := map[string]interface{}{"task_id": taskID.String()}
		recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/assignment-groups/"+groupID.String()+"/assign", requestBody)

		testutils.AssertErrorResponse(t, recorder, http.StatusConflict, "concurrently")
	})
}

// TestReset tests the Reset handler
func (suite *AssignmentGroupHandlerTestSuite) TestReset() {
	groupID := uuid.New()

	suite.mockAllocator.EXPECT().
		ResetGroup(suite.tenantID, groupID).
		Return(nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/assignment-groups/"+groupID.String()+"/reset", nil)

	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
}

// TestHistory tests the History handler
func (suite *AssignmentGroupHandlerTestSuite) TestHistory() {
	groupID := uuid.New()
	expectedResponse := &service.AssignmentHistoryResponse{
		Assignments: []models.Assignment{
			{GroupID: groupID, AssigneeID: uuid.New(), OrderPositionAtAssignment: 0},
		},
		Total:    1,
		Page:     2,
		PageSize: 10,
	}

	suite.mockGroupSvc.EXPECT().
		History(suite.tenantID, groupID, 2, 10).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/assignment-groups/"+groupID.String()+"/history?page=2&page_size=10", nil)

	var response service.AssignmentHistoryResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	assert.Equal(suite.T(), int64(1), response.Total)
	assert.Equal(suite.T(), 2, response.Page)
}

// TestAssignmentGroupHandlerTestSuite runs the test suite
func TestAssignmentGroupHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentGroupHandlerTestSuite))
}
