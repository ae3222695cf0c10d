package services

import (
	"context"
	"errors"
	"testing"

	"homestock/internal/common"
	"homestock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserSyncServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  UserSyncService
	ctx      context.Context
}

func (suite *UserSyncServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockUserRepository{}
	suite.service = NewUserSyncService(suite.mockRepo)
	suite.ctx = context.Background()

	suite.mockRepo.Test(suite.T())
}

func (suite *UserSyncServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestUserSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserSyncServiceTestSuite))
}

func (suite *UserSyncServiceTestSuite) TestEnsureUserExists_ExistingUserReturnedUnchanged() {
	userID := uuid.New()
	existing := &models.User{ID: userID, Email: "old@example.com", Name: "Old Name"}

	suite.mockRepo.On("GetByID", suite.ctx, userID).Return(existing, nil)

	// Claims carry drifted email and name; the stored row wins.
	user, err := suite.service.EnsureUserExists(suite.ctx, userID.String(), "new@example.com", "New Name")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), existing, user)
	assert.Equal(suite.T(), "old@example.com", user.Email)
}

func (suite *UserSyncServiceTestSuite) TestEnsureUserExists_CreatesOnFirstSight() {
	userID := uuid.New()

	suite.mockRepo.On("GetByID", suite.ctx, userID).Return(nil, pgx.ErrNoRows)
	suite.mockRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.User")).Return(nil).Run(func(args mock.Arguments) {
		user := args.Get(1).(*models.User)
		assert.Equal(suite.T(), userID, user.ID)
		assert.Equal(suite.T(), "jane@example.com", user.Email)
		assert.Equal(suite.T(), "Jane", user.Name)
	})

	user, err := suite.service.EnsureUserExists(suite.ctx, userID.String(), "jane@example.com", "Jane")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Jane", user.Name)
}

func (suite *UserSyncServiceTestSuite) TestEnsureUserExists_NameDefaultsToEmailLocalPart() {
	userID := uuid.New()

	suite.mockRepo.On("GetByID", suite.ctx, userID).Return(nil, pgx.ErrNoRows)
	suite.mockRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := suite.service.EnsureUserExists(suite.ctx, userID.String(), "jane.doe@example.com", "")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "jane.doe", user.Name)
}

func (suite *UserSyncServiceTestSuite) TestEnsureUserExists_InvalidID() {
	user, err := suite.service.EnsureUserExists(suite.ctx, "not-a-uuid", "jane@example.com", "Jane")
	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, common.ErrInvalidIdentity)
}

func (suite *UserSyncServiceTestSuite) TestEnsureUserExists_ConcurrentFirstSightRecovered() {
	userID := uuid.New()
	winner := &models.User{ID: userID, Email: "jane@example.com", Name: "Jane"}

	// First fetch misses, the insert loses the race, the re-fetch returns
	// the row the concurrent request stored.
	suite.mockRepo.On("GetByID", suite.ctx, userID).Return(nil, pgx.ErrNoRows).Once()
	suite.mockRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.User")).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"})
	suite.mockRepo.On("GetByID", suite.ctx, userID).Return(winner, nil).Once()

	user, err := suite.service.EnsureUserExists(suite.ctx, userID.String(), "jane@example.com", "Jane")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), winner, user)
}

func (suite *UserSyncServiceTestSuite) TestEnsureUserExists_OtherInsertErrorSurfaces() {
	userID := uuid.New()

	suite.mockRepo.On("GetByID", suite.ctx, userID).Return(nil, pgx.ErrNoRows)
	suite.mockRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.User")).
		Return(errors.New("connection refused"))

	user, err := suite.service.EnsureUserExists(suite.ctx, userID.String(), "jane@example.com", "Jane")
	assert.Nil(suite.T(), user)
	assert.Error(suite.T(), err)
}
