package domain

import "time"

// PromotionTier is a named pricing level governing feature limits for a promoted event.
type PromotionTier string

const (
	TierFree     PromotionTier = "free"
	TierFeatured PromotionTier = "featured"
	TierBoost    PromotionTier = "boost"
)

// TierLimits holds the per-tier media allowances.
type TierLimits struct {
	Images int
	Videos int
}

var tierLimits = map[PromotionTier]TierLimits{
	TierFree:     {Images: 1, Videos: 0},
	TierFeatured: {Images: 5, Videos: 1},
	TierBoost:    {Images: 10, Videos: 3},
}

// NormalizeTier maps an arbitrary tier name to a known tier.
// Unrecognized names are treated as the free tier.
func NormalizeTier(name string) PromotionTier {
	switch PromotionTier(name) {
	case TierFeatured:
		return TierFeatured
	case TierBoost:
		return TierBoost
	default:
		return TierFree
	}
}

// Limits returns the image and video allowances for the tier.
func (t PromotionTier) Limits() TierLimits {
	if l, ok := tierLimits[t]; ok {
		return l
	}
	return tierLimits[TierFree]
}

// IsFeatured reports whether the tier elevates the event to featured listings.
func (t PromotionTier) IsFeatured() bool {
	return t == TierFeatured || t == TierBoost
}

// Duration returns the promotion lifetime for the tier. ok is false for the
// free tier, which never expires.
func (t PromotionTier) Duration() (d time.Duration, ok bool) {
	switch t {
	case TierFeatured:
		return 7 * 24 * time.Hour, true
	case TierBoost:
		return 30 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// VideoEmbed is a user-pasted video URL resolved to a normalized
// platform/content-id/embed-URL triple.
type VideoEmbed struct {
	Platform  string `json:"platform"`
	ContentID string `json:"content_id"`
	EmbedURL  string `json:"embed_url"`
	SourceURL string `json:"source_url"`
}
