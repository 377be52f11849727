package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"marketdirectory/internal/domain"
)

const blogPostColumns = `id, title, slug, body, cover_image, published, author_id, created_at, updated_at`

type blogPostRepository struct {
	DB *sql.DB
}

func NewBlogPostRepository(db *sql.DB) domain.BlogPostRepository {
	return &blogPostRepository{DB: db}
}

func (r *blogPostRepository) Create(ctx context.Context, p *domain.BlogPost) error {
	query := `
		INSERT INTO blog_posts (title, slug, body, cover_image, published, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.Body, p.CoverImage, p.Published, p.AuthorID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: slug %q already taken", domain.ErrConflict, p.Slug)
		}
		return err
	}
	return nil
}

func scanBlogPost(row rowScanner) (*domain.BlogPost, error) {
	p := &domain.BlogPost{}
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Body, &p.CoverImage, &p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *blogPostRepository) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE id = $1`
	p, err := scanBlogPost(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *blogPostRepository) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE slug = $1`
	p, err := scanBlogPost(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *blogPostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *blogPostRepository) ListPublished(ctx context.Context, params domain.PaginationParams) ([]*domain.BlogPost, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM blog_posts WHERE published = TRUE`
	if err := r.DB.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + blogPostColumns + ` FROM blog_posts
		WHERE published = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	posts := make([]*domain.BlogPost, 0)
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}

func (r *blogPostRepository) Update(ctx context.Context, p *domain.BlogPost) error {
	query := `
		UPDATE blog_posts
		SET title = $1, body = $2, cover_image = $3, published = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, p.Title, p.Body, p.CoverImage, p.Published, p.ID).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *blogPostRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM blog_posts WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		if isInvalidID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const newsFlashColumns = `id, title, body, published, created_at, updated_at`

type newsFlashRepository struct {
	DB *sql.DB
}

func NewNewsFlashRepository(db *sql.DB) domain.NewsFlashRepository {
	return &newsFlashRepository{DB: db}
}

func (r *newsFlashRepository) Create(ctx context.Context, n *domain.NewsFlash) error {
	query := `
		INSERT INTO news_flashes (title, body, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, n.Title, n.Body, n.Published, n.CreatedAt, n.UpdatedAt).Scan(&n.ID)
}

func scanNewsFlash(row rowScanner) (*domain.NewsFlash, error) {
	n := &domain.NewsFlash{}
	err := row.Scan(&n.ID, &n.Title, &n.Body, &n.Published, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *newsFlashRepository) GetByID(ctx context.Context, id string) (*domain.NewsFlash, error) {
	query := `SELECT ` + newsFlashColumns + ` FROM news_flashes WHERE id = $1`
	n, err := scanNewsFlash(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func (r *newsFlashRepository) ListPublished(ctx context.Context) ([]*domain.NewsFlash, error) {
	query := `SELECT ` + newsFlashColumns + ` FROM news_flashes WHERE published = TRUE ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	flashes := make([]*domain.NewsFlash, 0)
	for rows.Next() {
		n, err := scanNewsFlash(rows)
		if err != nil {
			return nil, err
		}
		flashes = append(flashes, n)
	}
	return flashes, rows.Err()
}

func (r *newsFlashRepository) Update(ctx context.Context, n *domain.NewsFlash) error {
	query := `
		UPDATE news_flashes
		SET title = $1, body = $2, published = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, n.Title, n.Body, n.Published, n.ID).Scan(&n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *newsFlashRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM news_flashes WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		if isInvalidID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
