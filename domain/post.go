package domain

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 6
)

type Post struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Image       string  `json:"image"`
	CategoryID  int64   `json:"category_id"`
	Description *string `json:"description"`
	Content     string  `json:"content"`
	StatusID    int64   `json:"status_id"`
}

// PostInput is the body accepted by create and update. Zero values of the
// required fields are treated as missing.
type PostInput struct {
	Title       string  `json:"title" validate:"required"`
	Image       string  `json:"image" validate:"required"`
	CategoryID  int64   `json:"category_id" validate:"required"`
	Description *string `json:"description"`
	Content     string  `json:"content" validate:"required"`
	StatusID    int64   `json:"status_id" validate:"required"`
}

type ListQuery struct {
	Page       int
	Limit      int
	CategoryID *int64
	Keyword    string
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type Page struct {
	TotalPosts  int64  `json:"totalPosts"`
	TotalPages  int64  `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	Limit       int    `json:"limit"`
	Posts       []Post `json:"posts"`
	NextPage    *int   `json:"nextPage"`
}

// NewPage computes the paging fields for one fetched page of posts out of
// total matching rows.
func NewPage(q ListQuery, posts []Post, total int64) Page {
	if posts == nil {
		posts = []Post{}
	}
	totalPages := int64(math.Ceil(float64(total) / float64(q.Limit)))
	p := Page{
		TotalPosts:  total,
		TotalPages:  totalPages,
		CurrentPage: q.Page,
		Limit:       q.Limit,
		Posts:       posts,
	}
	if int64(q.Page) < totalPages {
		next := q.Page + 1
		p.NextPage = &next
	}
	return p
}
