package complaint_test

import (
	"time"

	"roadwatch/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockStorage) UpdateComplaintStatus(complaintID, status string) error {
	args := m.Called(complaintID, status)
	return args.Error(0)
}

func (m *MockStorage) GetAllComplaints() ([]models.Complaint, error) {
	args := m.Called()
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) SaveSession(token string, ttl time.Duration) error {
	args := m.Called(token, ttl)
	return args.Error(0)
}

func (m *MockStorage) SessionExists(token string) (bool, error) {
	args := m.Called(token)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) DeleteSession(token string) error {
	args := m.Called(token)
	return args.Error(0)
}
