package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"nestgirl/internal/model"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postCols = []string{"id", "author_id", "author_name", "content", "likes", "created_at"}

func TestPostRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPostRepository(mock)

	post := &model.Post{
		ID:         "p1",
		AuthorID:   "0791234567",
		AuthorName: "Lina",
		Content:    "hello",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts`)).
		WithArgs(post.ID, post.AuthorID, post.AuthorName, post.Content).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	err := repo.Create(context.Background(), post)
	require.NoError(t, err)
	assert.NotNil(t, post.Likes)
	assert.Empty(t, post.Likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_FindAll_NewestFirst(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPostRepository(mock)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC`)).
		WillReturnRows(pgxmock.NewRows(postCols).
			AddRow("p2", "0792222222", "Rana", "newer", []string{"0791111111"}, now).
			AddRow("p1", "0791111111", "Lina", "older", []string{}, now.Add(-time.Hour)))

	posts, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].ID)
	assert.True(t, posts[0].LikedBy("0791111111"))
	assert.False(t, posts[1].LikedBy("0791111111"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ToggleLike(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPostRepository(mock)

	// First toggle adds the phone.
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE posts`)).
		WithArgs("p1", "0791234567").
		WillReturnRows(pgxmock.NewRows([]string{"likes"}).AddRow([]string{"0791234567"}))
	likes, err := repo.ToggleLike(context.Background(), "p1", "0791234567")
	require.NoError(t, err)
	assert.Equal(t, []string{"0791234567"}, likes)

	// Second toggle removes it again.
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE posts`)).
		WithArgs("p1", "0791234567").
		WillReturnRows(pgxmock.NewRows([]string{"likes"}).AddRow([]string{}))
	likes, err = repo.ToggleLike(context.Background(), "p1", "0791234567")
	require.NoError(t, err)
	assert.Empty(t, likes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete_Missing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPostRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts`)).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
