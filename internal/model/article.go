package model

import "time"

// Article categories map to the app's advice sections.
const (
	ArticleCategorySkin    = "skin"
	ArticleCategoryFamily  = "family"
	ArticleCategoryFitness = "fitness"
)

// ValidArticleCategory reports whether c names a known article section.
func ValidArticleCategory(c string) bool {
	switch c {
	case ArticleCategorySkin, ArticleCategoryFamily, ArticleCategoryFitness:
		return true
	}
	return false
}

// Article is editorial content, created and edited only by administrators.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateArticleRequest is the admin body for publishing an article.
type CreateArticleRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"required,oneof=skin family fitness"`
	ImageURL string `json:"image_url"`
}
