// storage/gorm.go
package storage

import (
	"errors"
	"fmt"
	"strings"

	"grindspace-cafe/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKV persists key/value entries in the kv_entries table. One row per key,
// upserted on write so Set stays a single statement.
type GormKV struct {
	DB *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{DB: db}
}

func (s *GormKV) Get(key string) (string, error) {
	var entry models.KVEntry
	if err := s.DB.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("kv get %q: %w", key, err)
	}
	return entry.Value, nil
}

func (s *GormKV) Set(key, value string) error {
	entry := models.KVEntry{Key: key, Value: value}
	if err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error; err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func (s *GormKV) Delete(key string) error {
	if err := s.DB.Delete(&models.KVEntry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// ListPrefix returns every entry whose key starts with prefix, keyed by the
// full key. Used by the leaderboard rebuild job.
func (s *GormKV) ListPrefix(prefix string) (map[string]string, error) {
	var entries []models.KVEntry
	pattern := strings.ReplaceAll(strings.ReplaceAll(prefix, "%", `\%`), "_", `\_`) + "%"
	if err := s.DB.Where(`key LIKE ? ESCAPE '\'`, pattern).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("kv list %q: %w", prefix, err)
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Value
	}
	return out, nil
}
