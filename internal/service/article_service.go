package service

import (
	"context"
	"errors"
	"fmt"

	"nestgirl/internal/feed"
	"nestgirl/internal/model"
	"nestgirl/internal/repository"

	"github.com/google/uuid"
)

var ErrArticleNotFound = errors.New("article not found")

// ArticleService covers editorial content for the advice sections.
type ArticleService interface {
	// List returns articles, optionally restricted to one category
	// (skin, family or fitness).
	List(ctx context.Context, category string) ([]model.Article, error)
	Create(ctx context.Context, req model.CreateArticleRequest) (*model.Article, error)
	Update(ctx context.Context, id string, req model.CreateArticleRequest) (*model.Article, error)
	Delete(ctx context.Context, id string) error
}

type articleService struct {
	articles repository.ArticleRepository
	hub      *feed.Hub
}

// NewArticleService creates a new ArticleService
func NewArticleService(articles repository.ArticleRepository, hub *feed.Hub) ArticleService {
	return &articleService{articles: articles, hub: hub}
}

func (s *articleService) List(ctx context.Context, category string) ([]model.Article, error) {
	articles, err := s.articles.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to load articles: %w", err)
	}
	return articles, nil
}

func (s *articleService) Create(ctx context.Context, req model.CreateArticleRequest) (*model.Article, error) {
	article := &model.Article{
		ID:       uuid.NewString(),
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		ImageURL: req.ImageURL,
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	s.hub.Notify(feed.CollectionArticles)
	return article, nil
}

// Update replaces every editable field of an article. Editing reuses the
// create body since the admin form always submits the full article.
func (s *articleService) Update(ctx context.Context, id string, req model.CreateArticleRequest) (*model.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find article for update: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	article.Title = req.Title
	article.Content = req.Content
	article.Category = req.Category
	article.ImageURL = req.ImageURL
	if err := s.articles.Update(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	s.hub.Notify(feed.CollectionArticles)
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, id string) error {
	existing, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find article for deletion: %w", err)
	}
	if existing == nil {
		return ErrArticleNotFound
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	s.hub.Notify(feed.CollectionArticles)
	return nil
}
