package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"marketdirectory/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// looksLikeID reports whether s has the shape of a row id rather than a slug.
func looksLikeID(s string) bool {
	return uuidRegex.MatchString(s)
}

// maxSlugAttempts bounds the numeric-suffix search for a free slug.
const maxSlugAttempts = 50

// ErrSlugExhausted is returned when no free slug was found within the attempt
// ceiling. This is fatal for the operation; callers surface it without retrying.
var ErrSlugExhausted = errors.New("could not generate unique slug")

// slugify derives a URL-safe identifier from a title: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens, leading and
// trailing hyphens trimmed.
func slugify(title string) string {
	var b strings.Builder
	prevHyphen := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevHyphen = false
			continue
		}
		if !prevHyphen && b.Len() > 0 {
			b.WriteByte('-')
			prevHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// slugExistsFunc checks whether a slug is already taken in the target collection.
type slugExistsFunc func(ctx context.Context, slug string) (bool, error)

// insertWithUniqueSlug tries base, base-1, base-2, ... until insert succeeds or
// the attempt ceiling is hit. The existence check narrows the search; the
// insert itself is guarded by the table's unique slug index, and a conflict
// from a concurrent insert moves on to the next suffix instead of failing.
func insertWithUniqueSlug(ctx context.Context, base string, exists slugExistsFunc, insert func(slug string) error) (string, error) {
	if base == "" {
		base = "untitled"
	}
	for i := 0; i < maxSlugAttempts; i++ {
		slug := base
		if i > 0 {
			slug = fmt.Sprintf("%s-%d", base, i)
		}
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if taken {
			continue
		}
		err = insert(slug)
		if errors.Is(err, domain.ErrConflict) {
			// Lost the race to a concurrent insert; try the next suffix.
			continue
		}
		if err != nil {
			return "", err
		}
		return slug, nil
	}
	return "", ErrSlugExhausted
}
