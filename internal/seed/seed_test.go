package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPosts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posts_data.json")
	data := `[{"id": 1, "title": "t", "author": "a", "date": "2024-01-01", "content": "c", "comments": []}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	posts := LoadPosts(path)
	require.Len(t, posts, 1)
	assert.Equal(t, 1, posts[0].ID)
	assert.Equal(t, "t", posts[0].Title)
}

func TestLoadPostsMissingFileIsNotFatal(t *testing.T) {
	posts := LoadPosts(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Empty(t, posts)
}

func TestLoadPostsMalformedJSONIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	posts := LoadPosts(path)
	assert.Empty(t, posts)
}

func TestFactoryBuildsValidSeedPosts(t *testing.T) {
	posts := NewFactory().BuildPosts(10)
	require.Len(t, posts, 10)

	for i, p := range posts {
		assert.Equal(t, i+1, p.ID)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Author)
		assert.NotEmpty(t, p.Date)
		assert.NotEmpty(t, p.Content)
		assert.NotNil(t, p.Comments)
	}
}
