package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdirectory/internal/domain"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Summer Jazz Festival", "summer-jazz-festival"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Rock & Roll!!!", "rock-roll"},
		{"CAFÉ 2026", "caf-2026"},
		{"---", ""},
		{"", ""},
		{"already-a-slug", "already-a-slug"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.in))
		})
	}
}

func TestLooksLikeID(t *testing.T) {
	assert.True(t, looksLikeID("6f1c1b2a-9d4e-4f3a-8b2c-1a2b3c4d5e6f"))
	assert.False(t, looksLikeID("summer-jazz-festival"))
	assert.False(t, looksLikeID("6f1c1b2a-9d4e"))
	assert.False(t, looksLikeID(""))
}

func TestInsertWithUniqueSlug(t *testing.T) {
	ctx := context.Background()

	t.Run("base slug free on first attempt", func(t *testing.T) {
		taken := map[string]bool{}
		var inserted string
		slug, err := insertWithUniqueSlug(ctx, "my-event",
			func(ctx context.Context, s string) (bool, error) { return taken[s], nil },
			func(s string) error { inserted = s; return nil },
		)
		require.NoError(t, err)
		assert.Equal(t, "my-event", slug)
		assert.Equal(t, "my-event", inserted)
	})

	t.Run("taken slugs get numeric suffixes", func(t *testing.T) {
		taken := map[string]bool{"my-event": true, "my-event-1": true}
		slug, err := insertWithUniqueSlug(ctx, "my-event",
			func(ctx context.Context, s string) (bool, error) { return taken[s], nil },
			func(s string) error { return nil },
		)
		require.NoError(t, err)
		assert.Equal(t, "my-event-2", slug)
	})

	t.Run("insert conflict moves to next suffix", func(t *testing.T) {
		// Existence check sees nothing, but the first insert loses a race
		// against a concurrent writer and reports a conflict.
		var attempts []string
		slug, err := insertWithUniqueSlug(ctx, "my-event",
			func(ctx context.Context, s string) (bool, error) { return false, nil },
			func(s string) error {
				attempts = append(attempts, s)
				if len(attempts) == 1 {
					return fmt.Errorf("%w: slug taken", domain.ErrConflict)
				}
				return nil
			},
		)
		require.NoError(t, err)
		assert.Equal(t, "my-event-1", slug)
		assert.Equal(t, []string{"my-event", "my-event-1"}, attempts)
	})

	t.Run("empty base falls back to untitled", func(t *testing.T) {
		slug, err := insertWithUniqueSlug(ctx, "",
			func(ctx context.Context, s string) (bool, error) { return false, nil },
			func(s string) error { return nil },
		)
		require.NoError(t, err)
		assert.Equal(t, "untitled", slug)
	})

	t.Run("exhaustion after the attempt ceiling", func(t *testing.T) {
		calls := 0
		_, err := insertWithUniqueSlug(ctx, "busy",
			func(ctx context.Context, s string) (bool, error) { calls++; return true, nil },
			func(s string) error { t.Fatal("insert should not be called"); return nil },
		)
		require.ErrorIs(t, err, ErrSlugExhausted)
		assert.Equal(t, maxSlugAttempts, calls)
	})

	t.Run("existence check error is fatal", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := insertWithUniqueSlug(ctx, "my-event",
			func(ctx context.Context, s string) (bool, error) { return false, boom },
			func(s string) error { return nil },
		)
		require.ErrorIs(t, err, boom)
	})

	t.Run("non conflict insert error is fatal", func(t *testing.T) {
		boom := errors.New("constraint violation")
		_, err := insertWithUniqueSlug(ctx, "my-event",
			func(ctx context.Context, s string) (bool, error) { return false, nil },
			func(s string) error { return boom },
		)
		require.ErrorIs(t, err, boom)
	})
}
