package seed

import (
	"time"

	"masterblog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory builds fake posts for demo seed files and tests.
type Factory struct {
	nextID int
}

// NewFactory creates a Factory with gofakeit seeded for varied content.
func NewFactory() *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{nextID: 1}
}

// BuildPost constructs a single fake post. Ids are assigned sequentially so
// generated seed files satisfy the repository's unique-id expectation.
func (f *Factory) BuildPost() *models.Post {
	post := &models.Post{
		ID:       f.nextID,
		Title:    gofakeit.Sentence(4),
		Author:   gofakeit.Name(),
		Date:     gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()).Format("2006-01-02"),
		Content:  gofakeit.Paragraph(1, 3, 8, " "),
		Comments: []string{},
	}
	f.nextID++
	return post
}

// BuildPosts constructs n fake posts.
func (f *Factory) BuildPosts(n int) []*models.Post {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, f.BuildPost())
	}
	return posts
}
