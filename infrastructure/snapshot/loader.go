// Package snapshot loads the embedded static dataset into an immutable
// catalog.Snapshot at process start.
package snapshot

import (
	"embed"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/yarchiT/analogue-memory-backend/domain/catalog"
)

//go:embed data/*.json
var dataFS embed.FS

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Load decodes the embedded fixture files and assembles the snapshot. It is
// called exactly once, before the server starts accepting requests.
func Load(logger *zap.Logger) (*catalog.Snapshot, error) {
	var categories []catalog.Category
	if err := decode("data/categories.json", &categories); err != nil {
		return nil, err
	}

	var videoGames []catalog.MemoryItem
	if err := decode("data/video-games.json", &videoGames); err != nil {
		return nil, err
	}

	var toys []catalog.MemoryItem
	if err := decode("data/toys.json", &toys); err != nil {
		return nil, err
	}

	var users []catalog.UserProfile
	if err := decode("data/users.json", &users); err != nil {
		return nil, err
	}

	snap := catalog.NewSnapshot(categories, videoGames, toys, users)

	warnDanglingReferences(logger, snap)

	logger.Info("Snapshot loaded",
		zap.Int("categories", len(categories)),
		zap.Int("items", len(snap.AllItems())),
		zap.Int("users", len(users)),
	)

	return snap, nil
}

func decode(name string, v interface{}) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// warnDanglingReferences reports items whose category id resolves to no known
// category. Dangling references are not an error: queries against them simply
// return empty results.
func warnDanglingReferences(logger *zap.Logger, snap *catalog.Snapshot) {
	for _, item := range snap.AllItems() {
		if _, ok := snap.CategoryByID(item.Category); !ok {
			logger.Warn("Item references unknown category",
				zap.String("itemId", item.ID),
				zap.String("category", item.Category),
			)
		}
	}
}
