package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdirectory/internal/domain"
)

// fakeBlogPostRepo is an in-memory BlogPostRepository for tests.
type fakeBlogPostRepo struct {
	byID   map[string]*domain.BlogPost
	nextID int
}

func newFakeBlogPostRepo() *fakeBlogPostRepo {
	return &fakeBlogPostRepo{byID: make(map[string]*domain.BlogPost), nextID: 1}
}

func (f *fakeBlogPostRepo) Create(ctx context.Context, p *domain.BlogPost) error {
	for _, existing := range f.byID {
		if existing.Slug == p.Slug {
			return fmt.Errorf("%w: slug %q already taken", domain.ErrConflict, p.Slug)
		}
	}
	p.ID = fmt.Sprintf("post-%d", f.nextID)
	f.nextID++
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeBlogPostRepo) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	if p, ok := f.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBlogPostRepo) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	for _, p := range f.byID {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBlogPostRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, p := range f.byID {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBlogPostRepo) ListPublished(ctx context.Context, params domain.PaginationParams) ([]*domain.BlogPost, int, error) {
	var out []*domain.BlogPost
	for _, p := range f.byID {
		if p.Published {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (f *fakeBlogPostRepo) Update(ctx context.Context, p *domain.BlogPost) error {
	if _, ok := f.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeBlogPostRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeNewsFlashRepo is an in-memory NewsFlashRepository for tests.
type fakeNewsFlashRepo struct {
	byID   map[string]*domain.NewsFlash
	nextID int
}

func newFakeNewsFlashRepo() *fakeNewsFlashRepo {
	return &fakeNewsFlashRepo{byID: make(map[string]*domain.NewsFlash), nextID: 1}
}

func (f *fakeNewsFlashRepo) Create(ctx context.Context, n *domain.NewsFlash) error {
	n.ID = fmt.Sprintf("flash-%d", f.nextID)
	f.nextID++
	cp := *n
	f.byID[n.ID] = &cp
	return nil
}

func (f *fakeNewsFlashRepo) GetByID(ctx context.Context, id string) (*domain.NewsFlash, error) {
	if n, ok := f.byID[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeNewsFlashRepo) ListPublished(ctx context.Context) ([]*domain.NewsFlash, error) {
	var out []*domain.NewsFlash
	for _, n := range f.byID {
		if n.Published {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeNewsFlashRepo) Update(ctx context.Context, n *domain.NewsFlash) error {
	if _, ok := f.byID[n.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *n
	f.byID[n.ID] = &cp
	return nil
}

func (f *fakeNewsFlashRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func newContentServiceForTest() (domain.ContentService, *fakeBlogPostRepo, *fakeNewsFlashRepo) {
	posts := newFakeBlogPostRepo()
	flashes := newFakeNewsFlashRepo()
	return NewContentService(posts, flashes, testTimeout), posts, flashes
}

func TestContentService_CreatePost(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{UserID: "admin-1", IsAdmin: true}

	t.Run("admin creates post with slug and author", func(t *testing.T) {
		svc, _, _ := newContentServiceForTest()
		post, err := svc.CreatePost(ctx, admin, &domain.BlogPost{Title: "Opening Night Recap", Body: "..."})
		require.NoError(t, err)
		assert.Equal(t, "opening-night-recap", post.Slug)
		assert.Equal(t, "admin-1", post.AuthorID)
	})

	t.Run("title collision gets a suffix", func(t *testing.T) {
		svc, _, _ := newContentServiceForTest()
		_, err := svc.CreatePost(ctx, admin, &domain.BlogPost{Title: "Weekly Digest"})
		require.NoError(t, err)
		second, err := svc.CreatePost(ctx, admin, &domain.BlogPost{Title: "Weekly Digest"})
		require.NoError(t, err)
		assert.Equal(t, "weekly-digest-1", second.Slug)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		svc, posts, _ := newContentServiceForTest()
		_, err := svc.CreatePost(ctx, domain.Actor{UserID: "user-1"}, &domain.BlogPost{Title: "Sneaky"})
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, posts.byID)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		svc, _, _ := newContentServiceForTest()
		_, err := svc.CreatePost(ctx, admin, &domain.BlogPost{Title: "   "})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestContentService_UpdatePost(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{UserID: "admin-1", IsAdmin: true}
	svc, _, _ := newContentServiceForTest()

	created, err := svc.CreatePost(ctx, admin, &domain.BlogPost{Title: "Original Title"})
	require.NoError(t, err)

	t.Run("slug and author survive updates", func(t *testing.T) {
		updated, err := svc.UpdatePost(ctx, admin, &domain.BlogPost{
			ID:        created.ID,
			Title:     "Renamed Title",
			Published: true,
			AuthorID:  "someone-else",
		})
		require.NoError(t, err)
		assert.Equal(t, "original-title", updated.Slug)
		assert.Equal(t, "admin-1", updated.AuthorID)
		assert.True(t, updated.Published)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, domain.Actor{UserID: "user-1"}, &domain.BlogPost{ID: created.ID})
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, admin, &domain.BlogPost{ID: "post-404"})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestContentService_PostReads(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{UserID: "admin-1", IsAdmin: true}
	svc, _, _ := newContentServiceForTest()

	draft, err := svc.CreatePost(ctx, admin, &domain.BlogPost{Title: "Draft Piece"})
	require.NoError(t, err)
	published, err := svc.CreatePost(ctx, admin, &domain.BlogPost{Title: "Live Piece", Published: true})
	require.NoError(t, err)

	got, err := svc.GetPostByIDOrSlug(ctx, "live-piece")
	require.NoError(t, err)
	assert.Equal(t, published.ID, got.ID)

	posts, total, err := svc.ListPublishedPosts(ctx, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, posts, 1)
	assert.NotEqual(t, draft.ID, posts[0].ID)
}

func TestContentService_NewsFlashes(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{UserID: "admin-1", IsAdmin: true}

	t.Run("lifecycle", func(t *testing.T) {
		svc, _, flashes := newContentServiceForTest()
		created, err := svc.CreateNewsFlash(ctx, admin, &domain.NewsFlash{Title: "Box office open", Published: true})
		require.NoError(t, err)

		listed, err := svc.ListPublishedNewsFlashes(ctx)
		require.NoError(t, err)
		require.Len(t, listed, 1)

		created.Published = false
		_, err = svc.UpdateNewsFlash(ctx, admin, created)
		require.NoError(t, err)
		listed, err = svc.ListPublishedNewsFlashes(ctx)
		require.NoError(t, err)
		assert.Empty(t, listed)

		require.NoError(t, svc.DeleteNewsFlash(ctx, admin, created.ID))
		assert.Empty(t, flashes.byID)
	})

	t.Run("mutations require admin", func(t *testing.T) {
		svc, _, _ := newContentServiceForTest()
		member := domain.Actor{UserID: "user-1"}
		_, err := svc.CreateNewsFlash(ctx, member, &domain.NewsFlash{Title: "Nope"})
		require.ErrorIs(t, err, domain.ErrForbidden)
		require.ErrorIs(t, svc.DeleteNewsFlash(ctx, member, "flash-1"), domain.ErrForbidden)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		svc, _, _ := newContentServiceForTest()
		_, err := svc.CreateNewsFlash(ctx, admin, &domain.NewsFlash{})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
