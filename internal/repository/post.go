// Package repository owns the application's authoritative in-memory state:
// the post collection and the user credential store.
package repository

import (
	"sort"
	"strings"
	"sync"

	"masterblog/internal/models"
)

// Sort fields accepted by List.
const (
	SortTitle   = "title"
	SortContent = "content"
	SortAuthor  = "author"
	SortDate    = "date"
)

// Sort directions accepted by List.
const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// PostRepository is the single source of truth for posts. It keeps posts in
// insertion order and maintains an id index for O(1) lookup and delete.
//
// All mutating operations serialize behind the write lock so that id
// assignment stays unique and monotonic under concurrent callers; reads share
// the read lock.
type PostRepository struct {
	mu     sync.RWMutex
	posts  []*models.Post
	byID   map[int]*models.Post
	lastID int
}

// NewPostRepository creates a repository seeded with the given posts. The id
// counter starts above the highest seed id, so ids handed out later never
// collide with seeded ones.
func NewPostRepository(seed []*models.Post) *PostRepository {
	r := &PostRepository{
		byID: make(map[int]*models.Post, len(seed)),
	}
	for _, p := range seed {
		if p.Comments == nil {
			p.Comments = []string{}
		}
		r.posts = append(r.posts, p)
		r.byID[p.ID] = p
		if p.ID > r.lastID {
			r.lastID = p.ID
		}
	}
	return r
}

// Create validates and appends a new post. Every missing field is reported,
// not just the first one. Ids are assigned from a monotonic counter and are
// never reused, even after deletes.
func (r *PostRepository) Create(title, author, date, content string) (*models.Post, error) {
	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if content == "" {
		missing = append(missing, "content")
	}
	if author == "" {
		missing = append(missing, "author")
	}
	if date == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return nil, models.NewValidationError("Missing fields: " + strings.Join(missing, ", "))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	post := &models.Post{
		ID:       r.lastID,
		Title:    title,
		Author:   author,
		Date:     date,
		Content:  content,
		Comments: []string{},
	}
	r.posts = append(r.posts, post)
	r.byID[post.ID] = post

	return post.Clone(), nil
}

// FindByID returns the post with the given id.
func (r *PostRepository) FindByID(id int) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("Post not found")
	}
	return post.Clone(), nil
}

// Delete removes the post with the given id and returns the removed record
// for confirmation.
func (r *PostRepository) Delete(id int) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("Post not found")
	}

	delete(r.byID, id)
	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			break
		}
	}
	return post.Clone(), nil
}

// Update overwrites only the fields supplied in the partial update. An empty
// field means "not supplied", so a field cannot be cleared to the empty
// string here; that behavior is intentional and covered by tests.
func (r *PostRepository) Update(id int, update models.PostUpdate) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("Post not found")
	}
	if update.Empty() {
		return nil, models.NewValidationError("No data provided to update")
	}

	if update.Title != "" {
		post.Title = update.Title
	}
	if update.Author != "" {
		post.Author = update.Author
	}
	if update.Date != "" {
		post.Date = update.Date
	}
	if update.Content != "" {
		post.Content = update.Content
	}
	return post.Clone(), nil
}

// Search returns posts matching every supplied query as a case-insensitive
// substring; omitted queries match everything. Results keep storage order.
func (r *PostRepository) Search(title, content, author, date string) []*models.Post {
	title = strings.ToLower(title)
	content = strings.ToLower(content)
	author = strings.ToLower(author)
	date = strings.ToLower(date)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := []*models.Post{}
	for _, p := range r.posts {
		if title != "" && !strings.Contains(strings.ToLower(p.Title), title) {
			continue
		}
		if content != "" && !strings.Contains(strings.ToLower(p.Content), content) {
			continue
		}
		if author != "" && !strings.Contains(strings.ToLower(p.Author), author) {
			continue
		}
		if date != "" && !strings.Contains(strings.ToLower(p.Date), date) {
			continue
		}
		matches = append(matches, p.Clone())
	}
	return matches
}

// List returns one page of posts, optionally sorted. Text fields sort
// case-insensitively; date sorts by its raw lexicographic value. The sort is
// stable, so equal keys keep their original relative order. An out-of-range
// page yields an empty posts list, not an error.
func (r *PostRepository) List(sortField, direction string, page, perPage int) (*models.PostPage, error) {
	if sortField != "" &&
		sortField != SortTitle && sortField != SortContent &&
		sortField != SortAuthor && sortField != SortDate {
		return nil, models.NewValidationError("Invalid sort field")
	}
	if direction != DirectionAsc && direction != DirectionDesc {
		return nil, models.NewValidationError("Invalid sort direction")
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	r.mu.RLock()
	sorted := make([]*models.Post, len(r.posts))
	for i, p := range r.posts {
		sorted[i] = p.Clone()
	}
	r.mu.RUnlock()

	if sortField != "" {
		key := sortKey(sortField)
		desc := direction == DirectionDesc
		sort.SliceStable(sorted, func(i, j int) bool {
			if desc {
				return key(sorted[i]) > key(sorted[j])
			}
			return key(sorted[i]) < key(sorted[j])
		})
	}

	total := len(sorted)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &models.PostPage{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		Posts:      sorted[start:end],
	}, nil
}

func sortKey(field string) func(*models.Post) string {
	switch field {
	case SortTitle:
		return func(p *models.Post) string { return strings.ToLower(p.Title) }
	case SortContent:
		return func(p *models.Post) string { return strings.ToLower(p.Content) }
	case SortAuthor:
		return func(p *models.Post) string { return strings.ToLower(p.Author) }
	default:
		// date compares by raw value, not lowercased or parsed
		return func(p *models.Post) string { return p.Date }
	}
}

// AddComment appends a comment to the post's comment sequence and returns
// the updated post.
func (r *PostRepository) AddComment(id int, text string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("Post not found")
	}
	if text == "" {
		return nil, models.NewValidationError("Comment is required")
	}
	post.Comments = append(post.Comments, text)
	return post.Clone(), nil
}

// Like increments the post's like counter. Each call adds one; there is no
// toggle semantics.
func (r *PostRepository) Like(id int) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("Post not found")
	}
	post.Likes++
	return post.Clone(), nil
}

// Len reports how many posts the repository currently holds.
func (r *PostRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.posts)
}
