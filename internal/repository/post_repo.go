package repository

import (
	"context"
	"errors"
	"fmt"

	"nestgirl/internal/model"

	"github.com/jackc/pgx/v5"
)

// PostRepository defines operations for community posts.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	FindAll(ctx context.Context) ([]model.Post, error)
	ToggleLike(ctx context.Context, id, phone string) ([]string, error)
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	db DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post with an empty like set.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	sql := `INSERT INTO posts (id, author_id, author_name, content, likes)
            VALUES ($1, $2, $3, $4, '{}') RETURNING created_at`
	err := r.db.QueryRow(ctx, sql, post.ID, post.AuthorID, post.AuthorName, post.Content).Scan(&post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	post.Likes = []string{}
	return nil
}

// FindByID retrieves a single post. Not found returns (nil, nil).
func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	post := &model.Post{}
	sql := `SELECT id, author_id, author_name, content, likes, created_at FROM posts WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&post.ID, &post.AuthorID, &post.AuthorName, &post.Content, &post.Likes, &post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find post by ID: %w", err)
	}
	return post, nil
}

// FindAll retrieves the full feed, newest first. Ordering is done by the
// store, never recomputed by callers.
func (r *postRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	sql := `SELECT id, author_id, author_name, content, likes, created_at FROM posts ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Content, &p.Likes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}
	return posts, nil
}

// ToggleLike atomically adds phone to the post's like set if absent and
// removes it if present, returning the resulting set. The single statement
// makes concurrent likes by different users commute and a double toggle by
// the same user idempotent at the membership level.
func (r *postRepository) ToggleLike(ctx context.Context, id, phone string) ([]string, error) {
	sql := `UPDATE posts
            SET likes = CASE WHEN $2 = ANY(likes) THEN array_remove(likes, $2) ELSE array_append(likes, $2) END
            WHERE id = $1 RETURNING likes`
	var likes []string
	err := r.db.QueryRow(ctx, sql, id, phone).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("post not found for like toggle")
		}
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}
	return likes, nil
}

// Delete removes a post. Admin-only at the service layer.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	sql := `DELETE FROM posts WHERE id = $1`
	tag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("post not found for deletion")
	}
	return nil
}
