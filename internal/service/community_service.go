package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nestgirl/internal/feed"
	"nestgirl/internal/model"
	"nestgirl/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrEmptyPost    = errors.New("post content must not be empty")
)

// CommunityService covers the community feed: publish, like, delete.
type CommunityService interface {
	Feed(ctx context.Context) ([]model.Post, error)
	Publish(ctx context.Context, author *model.Profile, content string) (*model.Post, error)
	// ToggleLike flips the author's membership in the post's like set and
	// returns the resulting set.
	ToggleLike(ctx context.Context, postID, phone string) ([]string, error)
	// Delete removes a post. Admin-only; handlers gate on role.
	Delete(ctx context.Context, postID string) error
}

type communityService struct {
	posts repository.PostRepository
	hub   *feed.Hub
	log   *zap.SugaredLogger
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(posts repository.PostRepository, hub *feed.Hub, log *zap.SugaredLogger) CommunityService {
	return &communityService{posts: posts, hub: hub, log: log}
}

func (s *communityService) Feed(ctx context.Context) ([]model.Post, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	return posts, nil
}

func (s *communityService) Publish(ctx context.Context, author *model.Profile, content string) (*model.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyPost
	}
	post := &model.Post{
		ID:         uuid.NewString(),
		AuthorID:   author.Phone,
		AuthorName: author.Name,
		Content:    content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to publish post: %w", err)
	}
	s.hub.Notify(feed.CollectionPosts)
	return post, nil
}

func (s *communityService) ToggleLike(ctx context.Context, postID, phone string) ([]string, error) {
	existing, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to find post for like toggle: %w", err)
	}
	if existing == nil {
		return nil, ErrPostNotFound
	}
	likes, err := s.posts.ToggleLike(ctx, postID, phone)
	if err != nil {
		return nil, err
	}
	s.hub.Notify(feed.CollectionPosts)
	return likes, nil
}

func (s *communityService) Delete(ctx context.Context, postID string) error {
	existing, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to find post for deletion: %w", err)
	}
	if existing == nil {
		return ErrPostNotFound
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	s.log.Infow("post removed by admin", "post_id", postID, "author", existing.AuthorID)
	s.hub.Notify(feed.CollectionPosts)
	return nil
}
