package model

import "time"

// Post is a community feed entry. AuthorName is a snapshot taken at write
// time so the feed does not need a join against users. Likes is a set of
// phone numbers; a user appears at most once.
type Post struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"` // author's phone
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	Likes      []string  `json:"likes"`
	CreatedAt  time.Time `json:"created_at"`
}

// LikedBy reports whether phone is in the post's like set.
func (p *Post) LikedBy(phone string) bool {
	for _, l := range p.Likes {
		if l == phone {
			return true
		}
	}
	return false
}

// CreatePostRequest is the body for publishing a new post.
type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}
