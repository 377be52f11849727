package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"marketdirectory/internal/domain"
)

const subscriberColumns = `id, email, unsubscribe_token, subscribed_at, unsubscribed_at`

type subscriberRepository struct {
	DB *sql.DB
}

func NewSubscriberRepository(db *sql.DB) domain.SubscriberRepository {
	return &subscriberRepository{
		DB: db,
	}
}

func (r *subscriberRepository) Create(ctx context.Context, s *domain.Subscriber) error {
	query := `
		INSERT INTO subscribers (email, unsubscribe_token, subscribed_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, s.Email, s.UnsubscribeToken, s.SubscribedAt).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrAlreadySubscribed, s.Email)
		}
		return err
	}
	return nil
}

func scanSubscriber(row rowScanner) (*domain.Subscriber, error) {
	s := &domain.Subscriber{}
	var unsubscribed sql.NullTime
	err := row.Scan(&s.ID, &s.Email, &s.UnsubscribeToken, &s.SubscribedAt, &unsubscribed)
	if err != nil {
		return nil, err
	}
	if unsubscribed.Valid {
		s.UnsubscribedAt = &unsubscribed.Time
	}
	return s, nil
}

func (r *subscriberRepository) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE email = $1`
	s, err := scanSubscriber(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *subscriberRepository) GetByToken(ctx context.Context, token string) (*domain.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE unsubscribe_token = $1`
	s, err := scanSubscriber(r.DB.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *subscriberRepository) Resubscribe(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE subscribers SET subscribed_at = $1, unsubscribed_at = NULL WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, at, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *subscriberRepository) Unsubscribe(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE subscribers SET unsubscribed_at = $1 WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, at, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *subscriberRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Subscriber, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM subscribers WHERE unsubscribed_at IS NULL`
	if err := r.DB.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + subscriberColumns + ` FROM subscribers
		WHERE unsubscribed_at IS NULL
		ORDER BY subscribed_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	subscribers := make([]*domain.Subscriber, 0)
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, 0, err
		}
		subscribers = append(subscribers, s)
	}
	return subscribers, total, rows.Err()
}
