package service

import (
	"context"
	"testing"

	"nestgirl/internal/feed"
	"nestgirl/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memPostRepo mirrors the store's set semantics for likes: membership
// toggles are idempotent and commute across users.
type memPostRepo struct {
	posts map[string]*model.Post
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[string]*model.Post)}
}

func (m *memPostRepo) Create(_ context.Context, p *model.Post) error {
	cp := *p
	cp.Likes = []string{}
	m.posts[p.ID] = &cp
	p.Likes = []string{}
	return nil
}

func (m *memPostRepo) FindByID(_ context.Context, id string) (*model.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memPostRepo) FindAll(_ context.Context) ([]model.Post, error) {
	var out []model.Post
	for _, p := range m.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memPostRepo) ToggleLike(_ context.Context, id, phone string) ([]string, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	for i, l := range p.Likes {
		if l == phone {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return append([]string{}, p.Likes...), nil
		}
	}
	p.Likes = append(p.Likes, phone)
	return append([]string{}, p.Likes...), nil
}

func (m *memPostRepo) Delete(_ context.Context, id string) error {
	delete(m.posts, id)
	return nil
}

func newCommunityFixture() (CommunityService, *memPostRepo) {
	posts := newMemPostRepo()
	return NewCommunityService(posts, feed.NewHub(), zap.NewNop().Sugar()), posts
}

func author(phone, name string) *model.Profile {
	return &model.Profile{Phone: phone, Name: name, Status: model.StatusMarried}
}

func TestCommunityService_PublishSnapshotsAuthorName(t *testing.T) {
	svc, _ := newCommunityFixture()

	post, err := svc.Publish(context.Background(), author("0791111111", "Lina"), "hello everyone")
	require.NoError(t, err)
	assert.Equal(t, "0791111111", post.AuthorID)
	assert.Equal(t, "Lina", post.AuthorName)
	assert.Empty(t, post.Likes)
}

func TestCommunityService_PublishRejectsEmpty(t *testing.T) {
	svc, _ := newCommunityFixture()

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.Publish(context.Background(), author("0791111111", "Lina"), content)
		assert.ErrorIs(t, err, ErrEmptyPost)
	}
}

func TestCommunityService_ToggleLikeIdempotentPerUser(t *testing.T) {
	svc, _ := newCommunityFixture()
	ctx := context.Background()

	post, err := svc.Publish(ctx, author("0791111111", "Lina"), "hello")
	require.NoError(t, err)

	likes, err := svc.ToggleLike(ctx, post.ID, "0792222222")
	require.NoError(t, err)
	assert.Equal(t, []string{"0792222222"}, likes)

	// Toggling twice lands back where it started.
	likes, err = svc.ToggleLike(ctx, post.ID, "0792222222")
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestCommunityService_LikesFromDifferentUsersCommute(t *testing.T) {
	svc, _ := newCommunityFixture()
	ctx := context.Background()

	post, err := svc.Publish(ctx, author("0791111111", "Lina"), "hello")
	require.NoError(t, err)

	_, err = svc.ToggleLike(ctx, post.ID, "0792222222")
	require.NoError(t, err)
	likes, err := svc.ToggleLike(ctx, post.ID, "0793333333")
	require.NoError(t, err)

	// Final set is the union of the individually-applied toggles.
	assert.ElementsMatch(t, []string{"0792222222", "0793333333"}, likes)
}

func TestCommunityService_DeleteMissingPost(t *testing.T) {
	svc, _ := newCommunityFixture()
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), ErrPostNotFound)
}
