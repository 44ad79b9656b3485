package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/popcorn/internal/models"
	"github.com/desertthunder/popcorn/internal/shared"
)

// WatchedKey is the storage key holding the JSON-serialized watched list.
const WatchedKey = "watched"

// WatchedRepository persists the watched list as a single JSON array in a [KVStore].
//
// Every save rewrites the whole list; the last write wins.
type WatchedRepository struct {
	kv     *KVStore
	logger *log.Logger
}

// NewWatchedRepository creates a new WatchedRepository over kv.
func NewWatchedRepository(kv *KVStore, logger *log.Logger) *WatchedRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &WatchedRepository{kv: kv, logger: shared.WithLogger(logger, "component", "watched")}
}

// Load returns the stored list, or an empty list when the key is absent, unreadable or malformed.
func (r *WatchedRepository) Load() []models.WatchedMovie {
	raw, ok, err := r.kv.Get(WatchedKey)
	if err != nil {
		r.logger.Warn("failed to read watched list, starting empty", "error", err)
		return []models.WatchedMovie{}
	}
	if !ok {
		return []models.WatchedMovie{}
	}

	var list []models.WatchedMovie
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		r.logger.Warn("malformed watched list, starting empty", "error", err)
		return []models.WatchedMovie{}
	}
	if list == nil {
		return []models.WatchedMovie{}
	}
	return list
}

// Save serializes list and overwrites the stored value.
func (r *WatchedRepository) Save(list []models.WatchedMovie) error {
	if list == nil {
		list = []models.WatchedMovie{}
	}

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode watched list: %w", err)
	}

	if err := r.kv.Set(WatchedKey, string(data)); err != nil {
		return err
	}

	r.logger.Debug("watched list saved", "count", len(list))
	return nil
}

// Add loads the list, inserts movie unless its imdbID is present, and saves.
func (r *WatchedRepository) Add(movie models.WatchedMovie) ([]models.WatchedMovie, error) {
	list := models.AddWatched(r.Load(), movie)
	if err := r.Save(list); err != nil {
		return nil, err
	}
	return list, nil
}

// Remove loads the list, drops imdbID, and saves.
func (r *WatchedRepository) Remove(imdbID string) ([]models.WatchedMovie, error) {
	list := models.RemoveWatched(r.Load(), imdbID)
	if err := r.Save(list); err != nil {
		return nil, err
	}
	return list, nil
}
