package service_test

import (
	"errors"
	"testing"

	"github.com/mycampushub/consulting-sub007/internal/database/models"
	apperrors "github.com/mycampushub/consulting-sub007/internal/errors"
	"github.com/mycampushub/consulting-sub007/internal/mocks"
	"github.com/mycampushub/consulting-sub007/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// DirectoryServiceTestSuite defines the test suite for DirectoryService
type DirectoryServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockUserRepo *mocks.MockUserRepositoryInterface
	mockTaskRepo *mocks.MockTaskRepositoryInterface
	directory    *service.DirectoryService
	tenantID     uuid.UUID
}

// SetupTest sets up the test suite
func (suite *DirectoryServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockTaskRepo = mocks.NewMockTaskRepositoryInterface(suite.ctrl)
	suite.directory = service.NewDirectoryService(suite.mockUserRepo, suite.mockTaskRepo)
	suite.tenantID = uuid.New()
}

// TearDownTest cleans up after each test
func (suite *DirectoryServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *DirectoryServiceTestSuite) user(active, available bool) *models.User {
	return &models.User{
		BaseModel:   models.BaseModel{ID: uuid.New()},
		TenantID:    suite.tenantID,
		IsActive:    active,
		IsAvailable: available,
	}
}

// TestIsAvailable tests availability of an active, accepting user
func (suite *DirectoryServiceTestSuite) TestIsAvailable() {
	user := suite.user(true, true)

	suite.mockUserRepo.EXPECT().
		GetByID(user.ID).
		Return(user, nil).
		Times(1)

	available, err := suite.directory.IsAvailable(suite.tenantID, user.ID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), available)
}

// TestIsAvailablePausedUser tests that a paused user is not available
func (suite *DirectoryServiceTestSuite) TestIsAvailablePausedUser() {
	user := suite.user(true, false)

	suite.mockUserRepo.EXPECT().
		GetByID(user.ID).
		Return(user, nil).
		Times(1)

	available, err := suite.directory.IsAvailable(suite.tenantID, user.ID)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), available)
}

// TestIsAvailableDeactivatedUser tests that a deactivated user is not available
func (suite *DirectoryServiceTestSuite) TestIsAvailableDeactivatedUser() {
	user := suite.user(false, true)

	suite.mockUserRepo.EXPECT().
		GetByID(user.ID).
		Return(user, nil).
		Times(1)

	available, err := suite.directory.IsAvailable(suite.tenantID, user.ID)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), available)
}

// TestIsAvailableUnknownUser tests that a missing user is simply unavailable,
// not an error
func (suite *DirectoryServiceTestSuite) TestIsAvailableUnknownUser() {
	userID := uuid.New()

	suite.mockUserRepo.EXPECT().
		GetByID(userID).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	available, err := suite.directory.IsAvailable(suite.tenantID, userID)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), available)
}

// TestIsAvailableForeignUser tests that a user of another tenant is unavailable here
func (suite *DirectoryServiceTestSuite) TestIsAvailableForeignUser() {
	user := suite.user(true, true)
	user.TenantID = uuid.New()

	suite.mockUserRepo.EXPECT().
		GetByID(user.ID).
		Return(user, nil).
		Times(1)

	available, err := suite.directory.IsAvailable(suite.tenantID, user.ID)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), available)
}

// TestIsAvailableStoreFailure tests that infrastructure failures surface as
// dependency errors
func (suite *DirectoryServiceTestSuite) TestIsAvailableStoreFailure() {
	userID := uuid.New()

	suite.mockUserRepo.EXPECT().
		GetByID(userID).
		Return(nil, errors.New("connection refused")).
		Times(1)

	available, err := suite.directory.IsAvailable(suite.tenantID, userID)

	assert.False(suite.T(), available)
	assert.True(suite.T(), apperrors.IsDependency(err))
}

// TestOpenTaskCount tests reading a user's open workload
func (suite *DirectoryServiceTestSuite) TestOpenTaskCount() {
	userID := uuid.New()

	suite.mockTaskRepo.EXPECT().
		CountOpenByAssignee(suite.tenantID, userID).
		Return(int64(3), nil).
		Times(1)

	count, err := suite.directory.OpenTaskCount(suite.tenantID, userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), count)
}

// TestOpenTaskCountStoreFailure tests dependency error translation
func (suite *DirectoryServiceTestSuite) TestOpenTaskCountStoreFailure() {
	userID := uuid.New()

	suite.mockTaskRepo.EXPECT().
		CountOpenByAssignee(suite.tenantID, userID).
		Return(int64(0), errors.New("connection refused")).
		Times(1)

	count, err := suite.directory.OpenTaskCount(suite.tenantID, userID)

	assert.Zero(suite.T(), count)
	assert.True(suite.T(), apperrors.IsDependency(err))
}

// TestDirectoryServiceTestSuite runs the test suite
func TestDirectoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DirectoryServiceTestSuite))
}
