package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"marketdirectory/internal/domain"
)

const professionalColumns = `id, name, slug, category_id, description, email, phone, website,
	city, address, images, featured, active, priority, rating, review_count,
	owner_id, created_at, updated_at`

type professionalRepository struct {
	DB *sql.DB
}

func NewProfessionalRepository(db *sql.DB) domain.ProfessionalRepository {
	return &professionalRepository{
		DB: db,
	}
}

func (r *professionalRepository) Create(ctx context.Context, p *domain.Professional) error {
	query := `
		INSERT INTO professionals (name, slug, category_id, description, email, phone, website,
			city, address, images, featured, active, priority, rating, review_count,
			owner_id, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.Name, p.Slug, p.CategoryID, p.Description, p.Email, p.Phone, p.Website,
		p.City, p.Address, pq.Array(p.Images), p.Featured, p.Active, p.Priority,
		p.Rating, p.ReviewCount, p.OwnerID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: slug %q already taken", domain.ErrConflict, p.Slug)
		}
		return err
	}
	return nil
}

func scanProfessional(row rowScanner) (*domain.Professional, error) {
	p := &domain.Professional{}
	var categoryNull sql.NullString
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &categoryNull, &p.Description, &p.Email, &p.Phone, &p.Website,
		&p.City, &p.Address, pq.Array(&p.Images), &p.Featured, &p.Active, &p.Priority,
		&p.Rating, &p.ReviewCount, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryNull.Valid {
		p.CategoryID = categoryNull.String
	}
	return p, nil
}

func (r *professionalRepository) GetByID(ctx context.Context, id string) (*domain.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM professionals WHERE id = $1`
	p, err := scanProfessional(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *professionalRepository) GetBySlug(ctx context.Context, slug string) (*domain.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM professionals WHERE slug = $1`
	p, err := scanProfessional(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *professionalRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM professionals WHERE slug = $1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *professionalRepository) ListActive(ctx context.Context, filter domain.ProfessionalFilter, params domain.PaginationParams) ([]*domain.Professional, int, error) {
	where := []string{"active = TRUE"}
	args := []any{}
	n := 1
	if filter.CategoryID != "" {
		where = append(where, fmt.Sprintf("category_id = $%d", n))
		args = append(args, filter.CategoryID)
		n++
	}
	if filter.City != "" {
		where = append(where, fmt.Sprintf("city = $%d", n))
		args = append(args, filter.City)
		n++
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM professionals WHERE ` + whereClause
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM professionals
		WHERE %s
		ORDER BY featured DESC, priority DESC, rating DESC, name ASC
		LIMIT $%d OFFSET $%d
	`, professionalColumns, whereClause, n, n+1)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	professionals := make([]*domain.Professional, 0)
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, 0, err
		}
		professionals = append(professionals, p)
	}
	return professionals, total, rows.Err()
}

func (r *professionalRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM professionals WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	professionals := make([]*domain.Professional, 0)
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, err
		}
		professionals = append(professionals, p)
	}
	return professionals, rows.Err()
}

func (r *professionalRepository) Update(ctx context.Context, id string, upd domain.ProfessionalUpdate) (*domain.Professional, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.CategoryID != nil {
		add("category_id", *upd.CategoryID)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Website != nil {
		add("website", *upd.Website)
	}
	if upd.City != nil {
		add("city", *upd.City)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.Images != nil {
		add("images", pq.Array(*upd.Images))
	}
	if upd.Featured != nil {
		add("featured", *upd.Featured)
	}
	if upd.Active != nil {
		add("active", *upd.Active)
	}
	if upd.Priority != nil {
		add("priority", *upd.Priority)
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE professionals SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, professionalColumns)
	p, err := scanProfessional(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *professionalRepository) SetRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	query := `UPDATE professionals SET rating = $1, review_count = $2, updated_at = NOW() WHERE id = $3`
	result, err := r.DB.ExecContext(ctx, query, rating, reviewCount, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *professionalRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM professionals WHERE id = $1`
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
