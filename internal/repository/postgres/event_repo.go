package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"marketdirectory/internal/domain"
)

const eventColumns = `id, title, slug, description, category_id, start_date, start_time, end_time,
	venue, city, address, poster_image, images, media, ticketing, capacity,
	organizer_name, organizer_email, organizer_phone, published, featured,
	promotion_tier, promotion_start_date, promotion_expiry_date, priority,
	owner_id, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	media, err := json.Marshal(e.Media)
	if err != nil {
		return fmt.Errorf("marshal media: %w", err)
	}
	ticketing, err := json.Marshal(e.Ticketing)
	if err != nil {
		return fmt.Errorf("marshal ticketing: %w", err)
	}
	query := `
		INSERT INTO events (title, slug, description, category_id, start_date, start_time, end_time,
			venue, city, address, poster_image, images, media, ticketing, capacity,
			organizer_name, organizer_email, organizer_phone, published, featured,
			promotion_tier, promotion_start_date, promotion_expiry_date, priority,
			owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
		RETURNING id
	`
	err = r.DB.QueryRowContext(ctx, query,
		e.Title, e.Slug, e.Description, e.CategoryID, e.StartDate, e.StartTime, e.EndTime,
		e.Location.Venue, e.Location.City, e.Location.Address, e.PosterImage,
		pq.Array(e.Images), media, ticketing, e.Capacity,
		e.Organizer.Name, e.Organizer.Email, e.Organizer.Phone, e.Published, e.Featured,
		string(e.PromotionTier), e.PromotionStartDate, e.PromotionExpiry, e.Priority,
		e.OwnerID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: slug %q already taken", domain.ErrConflict, e.Slug)
		}
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var categoryNull sql.NullString
	var promoStart, promoExpiry sql.NullTime
	var media, ticketing []byte
	var tier string
	err := row.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &categoryNull, &e.StartDate, &e.StartTime, &e.EndTime,
		&e.Location.Venue, &e.Location.City, &e.Location.Address, &e.PosterImage,
		pq.Array(&e.Images), &media, &ticketing, &e.Capacity,
		&e.Organizer.Name, &e.Organizer.Email, &e.Organizer.Phone, &e.Published, &e.Featured,
		&tier, &promoStart, &promoExpiry, &e.Priority,
		&e.OwnerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryNull.Valid {
		e.CategoryID = categoryNull.String
	}
	if promoStart.Valid {
		e.PromotionStartDate = &promoStart.Time
	}
	if promoExpiry.Valid {
		e.PromotionExpiry = &promoExpiry.Time
	}
	e.PromotionTier = domain.PromotionTier(tier)
	if len(media) > 0 {
		if err := json.Unmarshal(media, &e.Media); err != nil {
			return nil, fmt.Errorf("unmarshal media: %w", err)
		}
	}
	if len(ticketing) > 0 {
		if err := json.Unmarshal(ticketing, &e.Ticketing); err != nil {
			return nil, fmt.Errorf("unmarshal ticketing: %w", err)
		}
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM events WHERE slug = $1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *eventRepository) ListPublished(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	where := []string{"published = TRUE"}
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
	countQuery := `SELECT COUNT(*) FROM events WHERE ` + whereClause
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE %s
		ORDER BY featured DESC, priority DESC, start_date ASC
		LIMIT $%d OFFSET $%d
	`, eventColumns, whereClause, n, n+1)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.StartDate != nil {
		add("start_date", *upd.StartDate)
	}
	if upd.StartTime != nil {
		add("start_time", *upd.StartTime)
	}
	if upd.EndTime != nil {
		add("end_time", *upd.EndTime)
	}
	if upd.Location != nil {
		add("venue", upd.Location.Venue)
		add("city", upd.Location.City)
		add("address", upd.Location.Address)
	}
	if upd.PosterImage != nil {
		add("poster_image", *upd.PosterImage)
	}
	if upd.Ticketing != nil {
		ticketing, err := json.Marshal(*upd.Ticketing)
		if err != nil {
			return nil, fmt.Errorf("marshal ticketing: %w", err)
		}
		add("ticketing", ticketing)
	}
	if upd.Capacity != nil {
		add("capacity", *upd.Capacity)
	}
	if upd.Organizer != nil {
		add("organizer_name", upd.Organizer.Name)
		add("organizer_email", upd.Organizer.Email)
		add("organizer_phone", upd.Organizer.Phone)
	}
	if upd.Published != nil {
		add("published", *upd.Published)
	}
	if upd.Featured != nil {
		add("featured", *upd.Featured)
	}
	if upd.PromotionTier != nil {
		add("promotion_tier", string(*upd.PromotionTier))
	}
	if upd.Priority != nil {
		add("priority", *upd.Priority)
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
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
