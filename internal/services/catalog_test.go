package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdirectory/internal/domain"
)

func TestCatalogService_CreateCategory(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{UserID: "admin-1", IsAdmin: true}

	t.Run("admin creates with generated slug", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		svc := NewCatalogService(repo, testTimeout)
		created, err := svc.CreateCategory(ctx, admin, &domain.Category{Name: "Live Music"})
		require.NoError(t, err)
		assert.Equal(t, "live-music", created.Slug)
	})

	t.Run("name collision gets a suffix", func(t *testing.T) {
		repo := newFakeCategoryRepo(&domain.Category{ID: "cat-1", Name: "Theatre", Slug: "theatre"})
		svc := NewCatalogService(repo, testTimeout)
		created, err := svc.CreateCategory(ctx, admin, &domain.Category{Name: "Theatre"})
		require.NoError(t, err)
		assert.Equal(t, "theatre-1", created.Slug)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		svc := NewCatalogService(repo, testTimeout)
		_, err := svc.CreateCategory(ctx, domain.Actor{UserID: "user-1"}, &domain.Category{Name: "Nope"})
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, repo.byID)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		svc := NewCatalogService(newFakeCategoryRepo(), testTimeout)
		_, err := svc.CreateCategory(ctx, admin, &domain.Category{Name: " "})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCatalogService_GetCategory(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCategoryRepo(&domain.Category{ID: "cat-1", Name: "Sports", Slug: "sports"})
	svc := NewCatalogService(repo, testTimeout)

	got, err := svc.GetCategory(ctx, "sports")
	require.NoError(t, err)
	assert.Equal(t, "cat-1", got.ID)

	_, err = svc.GetCategory(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogService_UpdateCategory(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{UserID: "admin-1", IsAdmin: true}
	repo := newFakeCategoryRepo(&domain.Category{ID: "cat-1", Name: "Sports", Slug: "sports"})
	svc := NewCatalogService(repo, testTimeout)

	t.Run("slug is immutable", func(t *testing.T) {
		updated, err := svc.UpdateCategory(ctx, admin, &domain.Category{ID: "cat-1", Name: "Sport & Fitness", Slug: "renamed"})
		require.NoError(t, err)
		assert.Equal(t, "Sport & Fitness", updated.Name)
		assert.Equal(t, "sports", updated.Slug)
	})

	t.Run("blank name keeps existing", func(t *testing.T) {
		updated, err := svc.UpdateCategory(ctx, admin, &domain.Category{ID: "cat-1"})
		require.NoError(t, err)
		assert.Equal(t, "Sport & Fitness", updated.Name)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		_, err := svc.UpdateCategory(ctx, domain.Actor{UserID: "user-1"}, &domain.Category{ID: "cat-1", Name: "x"})
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.UpdateCategory(ctx, admin, &domain.Category{ID: "cat-404", Name: "x"})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCatalogService_DeleteCategory(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{UserID: "admin-1", IsAdmin: true}
	repo := newFakeCategoryRepo(&domain.Category{ID: "cat-1", Name: "Sports", Slug: "sports"})
	svc := NewCatalogService(repo, testTimeout)

	require.ErrorIs(t, svc.DeleteCategory(ctx, domain.Actor{UserID: "user-1"}, "cat-1"), domain.ErrForbidden)
	require.NoError(t, svc.DeleteCategory(ctx, admin, "cat-1"))
	require.ErrorIs(t, svc.DeleteCategory(ctx, admin, "cat-1"), domain.ErrNotFound)
}
