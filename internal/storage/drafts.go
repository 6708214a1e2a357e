package storage

import (
	"encoding/json"
	"errors"
	"log"

	"samadhan/backend/internal/config"
	"samadhan/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

func draftKey(userID string) string {
	return "draft:" + userID
}

// SaveDraft stores the wizard draft in Redis under the user's key.
// One draft per user; saving replaces the previous state.
func (s *Service) SaveDraft(draft *models.Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	if err := s.Redis.Set(s.Ctx, draftKey(draft.UserID), raw, config.DraftTTL).Err(); err != nil {
		log.Printf("ERROR: Failed to save draft for user %s: %v", draft.UserID, err)
		return err
	}
	return nil
}

// GetDraft loads the user's wizard draft. A missing draft returns
// (nil, nil) so callers can start a fresh one.
func (s *Service) GetDraft(userID string) (*models.Draft, error) {
	raw, err := s.Redis.Get(s.Ctx, draftKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to load draft for user %s: %v", userID, err)
		return nil, err
	}
	var draft models.Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// DeleteDraft discards the user's wizard draft.
func (s *Service) DeleteDraft(userID string) error {
	return s.Redis.Del(s.Ctx, draftKey(userID)).Err()
}
