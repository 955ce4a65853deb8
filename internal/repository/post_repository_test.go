package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogapp/internal/model"
	"blogapp/internal/repository"
	"blogapp/internal/storage"
)

func seedPost(t *testing.T, db *gorm.DB, authorID int, title string) *model.Post {
	t.Helper()
	cat := &model.Category{Name: "general-" + title}
	require.NoError(t, db.Create(cat).Error)
	p := &model.Post{
		UserID:     authorID,
		CategoryID: cat.ID,
		Title:      title,
		Content:    "content of " + title,
		IsDraft:    true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestPostRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := storage.NewTestDB(t)
	repo := repository.NewPostRepository(db)

	author := seedUser(t, db, &model.User{FirstName: "Author", LastName: "X"})
	post := seedPost(t, db, author.ID, "Hello World")

	t.Run("find preloads author", func(t *testing.T) {
		got, err := repo.FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello World", got.Title)
		require.NotNil(t, got.User)
		assert.Equal(t, author.ID, got.User.ID)
	})

	t.Run("approve clears draft flag", func(t *testing.T) {
		require.NoError(t, repo.SetDraft(ctx, post.ID, false))

		got, err := repo.FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.False(t, got.IsDraft)
		assert.NotNil(t, got.UpdatedAt)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		err = repo.SetDraft(ctx, 9999, true)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("delete removes row", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, post.ID))

		_, err := repo.FindByID(ctx, post.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
