// Package seed loads the startup post data and provides fake-data factories
// for development tooling.
package seed

import (
	"encoding/json"
	"log/slog"
	"os"

	"masterblog/internal/models"
)

// LoadPosts reads a JSON array of posts from path. A missing or malformed
// file is not fatal: the error is logged and an empty slice is returned, so
// the service starts with an empty store.
func LoadPosts(path string) []*models.Post {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("seed file not readable, starting with empty store",
			slog.String("path", path), slog.String("error", err.Error()))
		return nil
	}

	var posts []*models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		slog.Warn("seed file is not valid JSON, starting with empty store",
			slog.String("path", path), slog.String("error", err.Error()))
		return nil
	}

	slog.Info("seed data loaded", slog.String("path", path), slog.Int("posts", len(posts)))
	return posts
}
