// Package models contains data structures for the application's domain models.
package models

// Post represents a blog post in the Masterblog application.
//
// Date is an opaque caller-supplied string; the repository orders it by raw
// lexicographic value and never parses it as a calendar date. Likes is omitted
// from JSON until the post receives its first like, matching the wire shape
// clients already depend on.
type Post struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Date     string   `json:"date"`
	Content  string   `json:"content"`
	Comments []string `json:"comments"`
	Likes    int      `json:"likes,omitempty"`
}

// Clone returns a copy of the post with its own comments slice, so callers
// can hold the result outside the repository lock.
func (p *Post) Clone() *Post {
	out := *p
	out.Comments = make([]string, len(p.Comments))
	copy(out.Comments, p.Comments)
	return &out
}

// PostUpdate carries a partial update for a post. Empty fields mean
// "not supplied": a field cannot be cleared to the empty string through an
// update, it can only be overwritten with a new value.
type PostUpdate struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// Empty reports whether the update supplies no fields at all.
func (u PostUpdate) Empty() bool {
	return u.Title == "" && u.Author == "" && u.Date == "" && u.Content == ""
}

// PostPage is the payload returned by the paginated listing endpoint.
type PostPage struct {
	Page       int     `json:"page"`
	PerPage    int     `json:"per_page"`
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Posts      []*Post `json:"posts"`
}
