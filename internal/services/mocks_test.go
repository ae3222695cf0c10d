package services

import (
	"context"
	"io"
	"time"

	"homestock/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockHouseholdRepository struct {
	mock.Mock
}

func (m *MockHouseholdRepository) CreateWithOwner(ctx context.Context, household *models.Household, ownerID uuid.UUID) error {
	args := m.Called(ctx, household, ownerID)
	return args.Error(0)
}

func (m *MockHouseholdRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Household, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Household), args.Error(1)
}

func (m *MockHouseholdRepository) GetForUser(ctx context.Context, id, userID uuid.UUID) (*models.Household, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Household), args.Error(1)
}

func (m *MockHouseholdRepository) GetByInviteCode(ctx context.Context, code string) (*models.Household, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Household), args.Error(1)
}

func (m *MockHouseholdRepository) IsMember(ctx context.Context, householdID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, householdID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockHouseholdRepository) AddMember(ctx context.Context, member *models.HouseholdMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockHouseholdRepository) MembersOf(ctx context.Context, householdIDs []uuid.UUID) ([]*models.HouseholdMember, error) {
	args := m.Called(ctx, householdIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.HouseholdMember), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetScoped(ctx context.Context, id, userID uuid.UUID) (*models.InventoryItem, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) ListScoped(ctx context.Context, userID uuid.UUID, householdID *uuid.UUID) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, userID, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteScoped(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) SetPhotoURL(ctx context.Context, id uuid.UUID, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

func (m *MockItemRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetHouseholdByInvite(ctx context.Context, code string) (*models.Household, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Household), args.Error(1)
}

func (m *MockCacheService) SetHouseholdByInvite(ctx context.Context, code string, household *models.Household, ttl time.Duration) error {
	args := m.Called(ctx, code, household, ttl)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *MockMinioService) ObjectURL(bucketName, objectName string) string {
	args := m.Called(bucketName, objectName)
	return args.String(0)
}

func (m *MockMinioService) ListObjectKeys(ctx context.Context, bucketName, prefix string) ([]string, error) {
	args := m.Called(ctx, bucketName, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMinioService) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func stringPtr(s string) *string    { return &s }
func floatPtr(f float64) *float64   { return &f }
func uuidPtr(u uuid.UUID) *uuid.UUID { return &u }
