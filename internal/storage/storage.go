package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"roadwatch/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrComplaintNotFound is returned by UpdateComplaintStatus when no row
// matches the given complaint ID.
var ErrComplaintNotFound = errors.New("complaint not found")

// Storage is the persistence boundary of the service. Complaint rows live
// in PostgreSQL; admin sessions live in Redis.
type Storage interface {
	SaveComplaint(complaint *models.Complaint) error
	UpdateComplaintStatus(complaintID, status string) error
	GetAllComplaints() ([]models.Complaint, error)

	SaveSession(token string, ttl time.Duration) error
	SessionExists(token string) (bool, error)
	DeleteSession(token string) error
}

// Service implements Storage on top of GORM and go-redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveComplaint inserts a single complaint row. The status defaults to
// open when the caller left it empty.
func (s *Service) SaveComplaint(complaint *models.Complaint) error {
	if complaint.Status == "" {
		complaint.Status = models.StatusOpen
	}

	if err := s.DB.Create(complaint).Error; err != nil {
		log.Printf("ERROR: Failed to save complaint %s: %v", complaint.ComplaintID, err)
		return err
	}

	return nil
}

// UpdateComplaintStatus replaces the status of one complaint in a single
// statement. Returns ErrComplaintNotFound when no row was affected.
func (s *Service) UpdateComplaintStatus(complaintID, status string) error {
	result := s.DB.Model(&models.Complaint{}).
		Where("complaint_id = ?", complaintID).
		Update("status", status)

	if result.Error != nil {
		log.Printf("ERROR: Failed to update status for complaint %s: %v", complaintID, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrComplaintNotFound
	}
	return nil
}

// GetAllComplaints returns every complaint, newest first.
func (s *Service) GetAllComplaints() ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Order("created_at DESC").Find(&complaints).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return complaints, nil
		}
		log.Printf("ERROR: Failed to list complaints: %v", err)
		return nil, err
	}
	return complaints, nil
}

const sessionKeyPrefix = "session:"

// SaveSession registers an admin session token in Redis with the given TTL.
func (s *Service) SaveSession(token string, ttl time.Duration) error {
	return s.Redis.Set(s.Ctx, sessionKeyPrefix+token, "1", ttl).Err()
}

// SessionExists reports whether the session token is still registered.
func (s *Service) SessionExists(token string) (bool, error) {
	_, err := s.Redis.Get(s.Ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteSession revokes a session token (logout).
func (s *Service) DeleteSession(token string) error {
	return s.Redis.Del(s.Ctx, sessionKeyPrefix+token).Err()
}
