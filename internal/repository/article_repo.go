package repository

import (
	"context"
	"errors"
	"fmt"

	"nestgirl/internal/model"

	"github.com/jackc/pgx/v5"
)

// ArticleRepository defines operations for editorial articles.
type ArticleRepository interface {
	Create(ctx context.Context, a *model.Article) error
	FindByID(ctx context.Context, id string) (*model.Article, error)
	// FindByCategory returns all articles, or only one category when
	// category is non-empty. Newest first.
	FindByCategory(ctx context.Context, category string) ([]model.Article, error)
	Update(ctx context.Context, a *model.Article) error
	Delete(ctx context.Context, id string) error
}

type articleRepository struct {
	db DB
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(db DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, a *model.Article) error {
	sql := `INSERT INTO articles (id, title, content, category, image_url)
            VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	err := r.db.QueryRow(ctx, sql, a.ID, a.Title, a.Content, a.Category, a.ImageURL).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

func (r *articleRepository) FindByID(ctx context.Context, id string) (*model.Article, error) {
	a := &model.Article{}
	sql := `SELECT id, title, content, category, image_url, created_at FROM articles WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&a.ID, &a.Title, &a.Content, &a.Category, &a.ImageURL, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find article by ID: %w", err)
	}
	return a, nil
}

func (r *articleRepository) FindByCategory(ctx context.Context, category string) ([]model.Article, error) {
	sql := `SELECT id, title, content, category, image_url, created_at FROM articles`
	args := []any{}
	if category != "" {
		sql += ` WHERE category = $1`
		args = append(args, category)
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		var a model.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Category, &a.ImageURL, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}
	return articles, nil
}

func (r *articleRepository) Update(ctx context.Context, a *model.Article) error {
	sql := `UPDATE articles SET title = $1, content = $2, category = $3, image_url = $4 WHERE id = $5`
	tag, err := r.db.Exec(ctx, sql, a.Title, a.Content, a.Category, a.ImageURL, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("article not found for update")
	}
	return nil
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	sql := `DELETE FROM articles WHERE id = $1`
	tag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("article not found for deletion")
	}
	return nil
}
