package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"marketdirectory/internal/domain"
)

// Promotion is the validated, normalized promotion block of an event
// submission, ready for storage.
type Promotion struct {
	Tier      domain.PromotionTier
	Featured  bool
	Media     []domain.VideoEmbed
	StartDate time.Time
	Expiry    *time.Time
}

// ValidatePromotion checks a submitted event's images and media against the
// chosen pricing tier. Unrecognized tier names fall back to free. It does not
// persist anything; on success it returns the derived promotion block.
func ValidatePromotion(tierName string, images, mediaURLs []string, now time.Time) (*Promotion, error) {
	tier := domain.NormalizeTier(tierName)
	limits := tier.Limits()

	if len(images) > limits.Images {
		return nil, fmt.Errorf("%w: tier %q allows at most %d image(s), got %d",
			domain.ErrInvalidInput, tier, limits.Images, len(images))
	}
	if len(mediaURLs) > limits.Videos {
		return nil, fmt.Errorf("%w: tier %q allows at most %d video(s), got %d",
			domain.ErrInvalidInput, tier, limits.Videos, len(mediaURLs))
	}

	media := make([]domain.VideoEmbed, 0, len(mediaURLs))
	for _, raw := range mediaURLs {
		embed, err := ResolveVideoEmbed(raw)
		if err != nil {
			return nil, err
		}
		media = append(media, embed)
	}

	p := &Promotion{
		Tier:      tier,
		Featured:  tier.IsFeatured(),
		Media:     media,
		StartDate: now,
	}
	if d, ok := tier.Duration(); ok {
		expiry := now.Add(d)
		p.Expiry = &expiry
	}
	return p, nil
}

var (
	youtubeIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
	vimeoIDRegex   = regexp.MustCompile(`^\d+$`)
	fbVideoRegex   = regexp.MustCompile(`/videos/(\d+)`)
	fbWatchIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// ResolveVideoEmbed converts a user-pasted video URL into a normalized
// platform/content-id/embed-URL triple. Only YouTube, Facebook, and Vimeo are
// recognized; anything else is rejected with the offending URL named.
func ResolveVideoEmbed(raw string) (domain.VideoEmbed, error) {
	trimmed := strings.TrimSpace(raw)
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return domain.VideoEmbed{}, fmt.Errorf("%w: unrecognized video URL %q", domain.ErrInvalidInput, raw)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	switch {
	case host == "youtube.com" || host == "m.youtube.com" || host == "youtu.be":
		id := youtubeContentID(u, host)
		if id == "" || !youtubeIDRegex.MatchString(id) {
			return domain.VideoEmbed{}, fmt.Errorf("%w: unrecognized video URL %q", domain.ErrInvalidInput, raw)
		}
		return domain.VideoEmbed{
			Platform:  "youtube",
			ContentID: id,
			EmbedURL:  "https://www.youtube.com/embed/" + id,
			SourceURL: trimmed,
		}, nil

	case host == "vimeo.com" || host == "player.vimeo.com":
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		id := segments[len(segments)-1]
		if !vimeoIDRegex.MatchString(id) {
			return domain.VideoEmbed{}, fmt.Errorf("%w: unrecognized video URL %q", domain.ErrInvalidInput, raw)
		}
		return domain.VideoEmbed{
			Platform:  "vimeo",
			ContentID: id,
			EmbedURL:  "https://player.vimeo.com/video/" + id,
			SourceURL: trimmed,
		}, nil

	case host == "facebook.com" || host == "fb.watch":
		id := ""
		if m := fbVideoRegex.FindStringSubmatch(u.Path); m != nil {
			id = m[1]
		} else if host == "fb.watch" {
			if short := strings.Trim(u.Path, "/"); fbWatchIDRegex.MatchString(short) {
				id = short
			}
		}
		if id == "" {
			return domain.VideoEmbed{}, fmt.Errorf("%w: unrecognized video URL %q", domain.ErrInvalidInput, raw)
		}
		return domain.VideoEmbed{
			Platform:  "facebook",
			ContentID: id,
			EmbedURL:  "https://www.facebook.com/plugins/video.php?href=" + url.QueryEscape(trimmed),
			SourceURL: trimmed,
		}, nil
	}
	return domain.VideoEmbed{}, fmt.Errorf("%w: unrecognized video URL %q", domain.ErrInvalidInput, raw)
}

// youtubeContentID extracts the video id from the various YouTube URL shapes:
// watch?v=ID, youtu.be/ID, /embed/ID, /shorts/ID.
func youtubeContentID(u *url.URL, host string) string {
	if host == "youtu.be" {
		return strings.Trim(u.Path, "/")
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	for _, prefix := range []string{"/embed/", "/shorts/"} {
		if strings.HasPrefix(u.Path, prefix) {
			rest := strings.TrimPrefix(u.Path, prefix)
			if i := strings.Index(rest, "/"); i >= 0 {
				rest = rest[:i]
			}
			return rest
		}
	}
	return ""
}
