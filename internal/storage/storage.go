package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"samadhan/backend/internal/config"
	"samadhan/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Storage interface {
	SaveUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByPhone(phone string) (*models.User, error)

	InsertGrievance(g *models.Grievance) error
	GetGrievanceByID(id string) (*models.Grievance, error)
	UpdateGrievanceStatus(id string, status models.Status) error
	ListAllGrievances() ([]models.Grievance, error)
	ListGrievancesByUser(userID string) ([]models.Grievance, error)

	SaveDraft(draft *models.Draft) error
	GetDraft(userID string) (*models.Draft, error)
	DeleteDraft(userID string) error
}

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

// SaveUser creates or updates a user record in PostgreSQL.
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// GetUserByID fetches a user by primary key.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByPhone fetches a user by login phone number.
func (s *Service) GetUserByPhone(phone string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("phone = ?", phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// InsertGrievance persists a new grievance. The ID and CreatedAt are
// assigned here, never by the caller. Required fields are checked before
// the write so an incomplete payload never reaches PostgreSQL.
func (s *Service) InsertGrievance(g *models.Grievance) error {
	if !g.Category.IsValid() {
		return errors.New("insert rejected: unrecognized category")
	}
	if g.UserID == "" {
		return errors.New("insert rejected: missing user id")
	}
	if !g.Status.IsValid() {
		return errors.New("insert rejected: invalid status")
	}
	if g.Priority == "" {
		return errors.New("insert rejected: missing priority")
	}

	if err := s.DB.Create(g).Error; err != nil {
		log.Printf("ERROR: Failed to insert grievance for user %s: %v", g.UserID, err)
		return err
	}
	s.invalidateSnapshot()
	return nil
}

// GetGrievanceByID fetches a grievance by primary key.
func (s *Service) GetGrievanceByID(id string) (*models.Grievance, error) {
	var g models.Grievance
	err := s.DB.First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get grievance %s: %v", id, err)
		return nil, err
	}
	return &g, nil
}

// UpdateGrievanceStatus applies a status patch and refreshes UpdatedAt.
// An unknown id yields ErrNotFound, never a silent success.
func (s *Service) UpdateGrievanceStatus(id string, status models.Status) error {
	result := s.DB.Model(&models.Grievance{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		log.Printf("ERROR: Failed to update status of grievance %s: %v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.invalidateSnapshot()
	return nil
}

// ListAllGrievances returns the full collection ordered by creation time
// descending. The result is served from the Redis snapshot when one is
// present; writes invalidate it, so a listing after a write refetches.
func (s *Service) ListAllGrievances() ([]models.Grievance, error) {
	if cached, ok := s.snapshot(); ok {
		return cached, nil
	}

	var all []models.Grievance
	if err := s.DB.Order("created_at desc").Find(&all).Error; err != nil {
		log.Printf("ERROR: Failed to list grievances: %v", err)
		return nil, err
	}
	s.storeSnapshot(all)
	return all, nil
}

// ListGrievancesByUser returns one citizen's grievances, newest first.
func (s *Service) ListGrievancesByUser(userID string) ([]models.Grievance, error) {
	var all []models.Grievance
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&all).Error
	if err != nil {
		log.Printf("ERROR: Failed to list grievances for user %s: %v", userID, err)
		return nil, err
	}
	return all, nil
}

func (s *Service) snapshot() ([]models.Grievance, bool) {
	if s.Redis == nil {
		return nil, false
	}
	raw, err := s.Redis.Get(s.Ctx, config.SnapshotKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		// Cache trouble falls through to PostgreSQL.
		return nil, false
	}
	var all []models.Grievance
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil, false
	}
	return all, true
}

func (s *Service) storeSnapshot(all []models.Grievance) {
	if s.Redis == nil {
		return
	}
	raw, err := json.Marshal(all)
	if err != nil {
		return
	}
	if err := s.Redis.Set(s.Ctx, config.SnapshotKey, raw, config.SnapshotTTL).Err(); err != nil {
		log.Printf("WARN: Failed to cache grievance snapshot: %v", err)
	}
}

func (s *Service) invalidateSnapshot() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(s.Ctx, config.SnapshotKey).Err(); err != nil {
		log.Printf("WARN: Failed to invalidate grievance snapshot: %v", err)
	}
}
