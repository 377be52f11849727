package postgres

import (
	"context"
	"database/sql"
	"errors"

	"marketdirectory/internal/domain"
)

const reviewColumns = `id, professional_id, author_id, author_name, rating, comment,
	approved, verified, created_at, updated_at`

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepository(db *sql.DB) domain.ReviewRepository {
	return &reviewRepository{
		DB: db,
	}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `
		INSERT INTO reviews (professional_id, author_id, author_name, rating, comment,
			approved, verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		rv.ProfessionalID, rv.AuthorID, rv.AuthorName, rv.Rating, rv.Comment,
		rv.Approved, rv.Verified, rv.CreatedAt, rv.UpdatedAt,
	).Scan(&rv.ID)
}

func scanReview(row rowScanner) (*domain.Review, error) {
	rv := &domain.Review{}
	err := row.Scan(
		&rv.ID, &rv.ProfessionalID, &rv.AuthorID, &rv.AuthorName, &rv.Rating, &rv.Comment,
		&rv.Approved, &rv.Verified, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	rv, err := scanReview(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (r *reviewRepository) ListByProfessionalID(ctx context.Context, professionalID string, approvedOnly bool) ([]*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE professional_id = $1`
	if approvedOnly {
		query += ` AND approved = TRUE`
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, professionalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) ListPending(ctx context.Context, params domain.PaginationParams) ([]*domain.Review, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM reviews WHERE approved = FALSE`
	if err := r.DB.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + reviewColumns + ` FROM reviews
		WHERE approved = FALSE
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, total, rows.Err()
}

func (r *reviewRepository) SetModeration(ctx context.Context, id string, approved, verified bool) (*domain.Review, error) {
	query := `
		UPDATE reviews SET approved = $1, verified = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + reviewColumns
	rv, err := scanReview(r.DB.QueryRowContext(ctx, query, approved, verified, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reviews WHERE id = $1`
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

func (r *reviewRepository) ApprovedStats(ctx context.Context, professionalID string) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE professional_id = $1 AND approved = TRUE
	`
	var avg float64
	var count int
	if err := r.DB.QueryRowContext(ctx, query, professionalID).Scan(&avg, &count); err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}
