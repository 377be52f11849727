package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdirectory/internal/domain"
)

// fakeSubscriberRepo is an in-memory SubscriberRepository for tests.
type fakeSubscriberRepo struct {
	byID   map[string]*domain.Subscriber
	nextID int
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{byID: make(map[string]*domain.Subscriber), nextID: 1}
}

func (f *fakeSubscriberRepo) Create(ctx context.Context, s *domain.Subscriber) error {
	for _, existing := range f.byID {
		if existing.Email == s.Email {
			return fmt.Errorf("%w: %s", domain.ErrConflict, s.Email)
		}
	}
	s.ID = fmt.Sprintf("sub-%d", f.nextID)
	f.nextID++
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSubscriberRepo) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	for _, s := range f.byID {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSubscriberRepo) GetByToken(ctx context.Context, token string) (*domain.Subscriber, error) {
	for _, s := range f.byID {
		if s.UnsubscribeToken == token {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSubscriberRepo) Resubscribe(ctx context.Context, id string, at time.Time) error {
	s, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.SubscribedAt = at
	s.UnsubscribedAt = nil
	return nil
}

func (f *fakeSubscriberRepo) Unsubscribe(ctx context.Context, id string, at time.Time) error {
	s, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.UnsubscribedAt = &at
	return nil
}

func (f *fakeSubscriberRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Subscriber, int, error) {
	var out []*domain.Subscriber
	for _, s := range f.byID {
		if s.UnsubscribedAt != nil {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, len(out), nil
}

// fakeEmailService records welcome mails instead of sending them.
type fakeEmailService struct {
	sent    []*domain.SubscriberWelcomeEmailData
	sendErr error
}

func (f *fakeEmailService) SendSubscriberWelcome(ctx context.Context, data *domain.SubscriberWelcomeEmailData) error {
	f.sent = append(f.sent, data)
	return f.sendErr
}

func TestNewsletterService_Subscribe(t *testing.T) {
	ctx := context.Background()
	const base = "https://example.com/api/newsletter/unsubscribe"

	t.Run("success sends welcome mail with unsubscribe link", func(t *testing.T) {
		repo := newFakeSubscriberRepo()
		mail := &fakeEmailService{}
		svc := NewNewsletterService(repo, mail, base, testTimeout)

		sub, err := svc.Subscribe(ctx, "Dana@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", sub.Email)
		require.NotEmpty(t, sub.UnsubscribeToken)

		require.Len(t, mail.sent, 1)
		assert.Equal(t, "dana@example.com", mail.sent[0].Email)
		assert.Equal(t, base+"/"+sub.UnsubscribeToken, mail.sent[0].UnsubscribeURL)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc := NewNewsletterService(newFakeSubscriberRepo(), &fakeEmailService{}, base, testTimeout)
		_, err := svc.Subscribe(ctx, "not-an-email")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("duplicate active subscriber", func(t *testing.T) {
		svc := NewNewsletterService(newFakeSubscriberRepo(), &fakeEmailService{}, base, testTimeout)
		_, err := svc.Subscribe(ctx, "dana@example.com")
		require.NoError(t, err)
		_, err = svc.Subscribe(ctx, "dana@example.com")
		require.ErrorIs(t, err, domain.ErrAlreadySubscribed)
	})

	t.Run("resubscribe after unsubscribe", func(t *testing.T) {
		repo := newFakeSubscriberRepo()
		svc := NewNewsletterService(repo, &fakeEmailService{}, base, testTimeout)
		sub, err := svc.Subscribe(ctx, "dana@example.com")
		require.NoError(t, err)
		require.NoError(t, svc.Unsubscribe(ctx, sub.UnsubscribeToken))

		again, err := svc.Subscribe(ctx, "dana@example.com")
		require.NoError(t, err)
		assert.Equal(t, sub.ID, again.ID)
		assert.Nil(t, again.UnsubscribedAt)
	})

	t.Run("welcome mail failure does not undo the signup", func(t *testing.T) {
		repo := newFakeSubscriberRepo()
		svc := NewNewsletterService(repo, &fakeEmailService{sendErr: errors.New("ses down")}, base, testTimeout)
		sub, err := svc.Subscribe(ctx, "dana@example.com")
		require.NoError(t, err)
		_, err = repo.GetByEmail(ctx, sub.Email)
		require.NoError(t, err)
	})

	t.Run("trailing slash on base is trimmed", func(t *testing.T) {
		mail := &fakeEmailService{}
		svc := NewNewsletterService(newFakeSubscriberRepo(), mail, base+"/", testTimeout)
		sub, err := svc.Subscribe(ctx, "dana@example.com")
		require.NoError(t, err)
		require.Len(t, mail.sent, 1)
		assert.False(t, strings.Contains(mail.sent[0].UnsubscribeURL, "//"+sub.UnsubscribeToken))
	})
}

func TestNewsletterService_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSubscriberRepo()
	svc := NewNewsletterService(repo, &fakeEmailService{}, "https://example.com/u", testTimeout)

	sub, err := svc.Subscribe(ctx, "dana@example.com")
	require.NoError(t, err)

	t.Run("unknown token", func(t *testing.T) {
		require.ErrorIs(t, svc.Unsubscribe(ctx, "no-such-token"), domain.ErrNotFound)
	})

	t.Run("unsubscribes and is idempotent", func(t *testing.T) {
		require.NoError(t, svc.Unsubscribe(ctx, sub.UnsubscribeToken))
		stored, err := repo.GetByEmail(ctx, sub.Email)
		require.NoError(t, err)
		require.NotNil(t, stored.UnsubscribedAt)

		require.NoError(t, svc.Unsubscribe(ctx, sub.UnsubscribeToken))
	})
}

func TestNewsletterService_ListSubscribers(t *testing.T) {
	ctx := context.Background()
	svc := NewNewsletterService(newFakeSubscriberRepo(), &fakeEmailService{}, "https://example.com/u", testTimeout)

	_, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, "b@example.com")
	require.NoError(t, err)

	t.Run("requires admin", func(t *testing.T) {
		_, _, err := svc.ListSubscribers(ctx, domain.Actor{UserID: "u1"}, domain.PaginationParams{Page: 1, PageSize: 20})
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin lists active subscribers", func(t *testing.T) {
		subs, total, err := svc.ListSubscribers(ctx, domain.Actor{UserID: "admin", IsAdmin: true}, domain.PaginationParams{Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, subs, 2)
	})
}
