package domain

import (
	"context"
	"time"
)

// NewsFlash is a short announcement shown on the homepage ticker
// swagger:model NewsFlash
type NewsFlash struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogPost is a long-form article
// swagger:model BlogPost
type BlogPost struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Body       string    `json:"body"`
	CoverImage string    `json:"cover_image"`
	Published  bool      `json:"published"`
	AuthorID   string    `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewsFlashRepository defines the interface for news flash storage
type NewsFlashRepository interface {
	Create(ctx context.Context, n *NewsFlash) error
	GetByID(ctx context.Context, id string) (*NewsFlash, error)
	ListPublished(ctx context.Context) ([]*NewsFlash, error)
	Update(ctx context.Context, n *NewsFlash) error
	Delete(ctx context.Context, id string) error
}

// BlogPostRepository defines the interface for blog post storage
type BlogPostRepository interface {
	Create(ctx context.Context, p *BlogPost) error
	GetByID(ctx context.Context, id string) (*BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*BlogPost, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListPublished(ctx context.Context, params PaginationParams) ([]*BlogPost, int, error)
	Update(ctx context.Context, p *BlogPost) error
	Delete(ctx context.Context, id string) error
}

// ContentService defines the business logic for blog posts and news flashes.
type ContentService interface {
	CreatePost(ctx context.Context, actor Actor, post *BlogPost) (*BlogPost, error)
	GetPostByIDOrSlug(ctx context.Context, idOrSlug string) (*BlogPost, error)
	ListPublishedPosts(ctx context.Context, params PaginationParams) ([]*BlogPost, int, error)
	UpdatePost(ctx context.Context, actor Actor, post *BlogPost) (*BlogPost, error)
	DeletePost(ctx context.Context, actor Actor, id string) error

	CreateNewsFlash(ctx context.Context, actor Actor, n *NewsFlash) (*NewsFlash, error)
	ListPublishedNewsFlashes(ctx context.Context) ([]*NewsFlash, error)
	UpdateNewsFlash(ctx context.Context, actor Actor, n *NewsFlash) (*NewsFlash, error)
	DeleteNewsFlash(ctx context.Context, actor Actor, id string) error
}
