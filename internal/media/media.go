// Package media holds the deduplication and classification rules applied to
// every media item before it joins a post record, regardless of which
// extraction tier discovered it.
package media

import (
	"strings"

	"threadsfetcher/internal/domain"
)

// Avatar thumbnails share the same metadata tags as content images and must
// not be presented as post media.
var (
	avatarURLTokens = []string{"profile_pic", "profile_media", "avatar"}
	avatarAltTokens = []string{"profile picture", "頭像", "大頭照"}
)

// t51.2885-19 is the Instagram/Threads CDN bucket for profile pictures.
const avatarCDNSegment = "/t51.2885-19/"

// MimeFor infers a MIME type from the URL extension when derivable.
func MimeFor(rawURL string) string {
	u := strings.ToLower(rawURL)
	switch {
	case strings.HasSuffix(u, ".m3u8"):
		return "application/vnd.apple.mpegurl"
	case strings.HasSuffix(u, ".mp4"):
		return "video/mp4"
	}
	return ""
}

// IsLikelyAvatar reports whether an image item is a profile picture rather
// than post content.
func IsLikelyAvatar(item domain.MediaItem) bool {
	if item.Kind != domain.MediaImage {
		return false
	}

	u := strings.ToLower(item.URL)
	for _, token := range avatarURLTokens {
		if strings.Contains(u, token) {
			return true
		}
	}
	if strings.Contains(u, avatarCDNSegment) {
		return true
	}

	alt := strings.ToLower(item.Alt)
	if alt != "" {
		for _, token := range avatarAltTokens {
			if strings.Contains(alt, token) {
				return true
			}
		}
	}
	return false
}

// AppendUnique appends item to list unless its URL is empty, already present,
// or classified as an avatar. Discovery order is preserved and repeated
// application with the same inputs is idempotent.
func AppendUnique(list []domain.MediaItem, item domain.MediaItem) []domain.MediaItem {
	if item.URL == "" {
		return list
	}
	if IsLikelyAvatar(item) {
		return list
	}
	for _, existing := range list {
		if existing.URL == item.URL {
			return list
		}
	}
	return append(list, item)
}
