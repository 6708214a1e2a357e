package lifecycle_test

import (
	"samadhan/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock over the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByPhone(phone string) (*models.User, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) InsertGrievance(g *models.Grievance) error {
	args := m.Called(g)
	return args.Error(0)
}

func (m *MockStorage) GetGrievanceByID(id string) (*models.Grievance, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Grievance), args.Error(1)
}

func (m *MockStorage) UpdateGrievanceStatus(id string, status models.Status) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockStorage) ListAllGrievances() ([]models.Grievance, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Grievance), args.Error(1)
}

func (m *MockStorage) ListGrievancesByUser(userID string) ([]models.Grievance, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Grievance), args.Error(1)
}

func (m *MockStorage) SaveDraft(draft *models.Draft) error {
	args := m.Called(draft)
	return args.Error(0)
}

func (m *MockStorage) GetDraft(userID string) (*models.Draft, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Draft), args.Error(1)
}

func (m *MockStorage) DeleteDraft(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockNotifier records status change signals.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) StatusChanged(g *models.Grievance, previous models.Status) {
	m.Called(g, previous)
}
