// Package threadsurl validates and canonicalizes Threads post URLs.
//
// Threads serves the same post from two mirror domains (threads.net and
// threads.com) and renders noticeably different markup depending on the hl
// locale hint, so the canonical form is only a preference: Candidates
// enumerates every equivalent host/query combination worth trying.
package threadsurl

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	apperrors "threadsfetcher/pkg/errors"
)

const (
	CanonicalHost = "threads.net"
	MirrorHost    = "threads.com"

	langQuery = "hl=en"
)

// ErrInvalidFormat is the only failure that ever crosses the pipeline's
// outer boundary.
var ErrInvalidFormat = apperrors.New("not a Threads post URL")

var postRe = regexp.MustCompile(
	`(?i)^https?://(www\.)?threads\.(net|com)/@[^/]+/post/[A-Za-z0-9_-]+/?(\?.*)?$`,
)

// Valid reports whether raw looks like a Threads post URL.
func Valid(raw string) bool {
	return postRe.MatchString(raw)
}

// Normalize returns the canonical form of a post URL: https scheme, the
// canonical host, no trailing slash, and the English locale hint appended
// (it makes the served metadata noticeably more complete).
// Normalize is idempotent.
func Normalize(raw string) (string, error) {
	u, err := parsePostURL(raw)
	if err != nil {
		return "", err
	}
	u.Scheme = "https"
	u.Host = CanonicalHost
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = langQuery
	u.Fragment = ""
	return u.String(), nil
}

// Candidates returns every equivalent URL variant to attempt, in fixed
// priority order: canonical host before mirror, unqualified query before the
// locale hint. The list is deduplicated and preserves order.
func Candidates(raw string) ([]string, error) {
	u, err := parsePostURL(raw)
	if err != nil {
		return nil, err
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		scheme = "https"
	}
	path := strings.TrimRight(u.Path, "/")

	var out []string
	seen := make(map[string]struct{})
	for _, host := range []string{CanonicalHost, MirrorHost} {
		for _, query := range []string{"", langQuery} {
			v := url.URL{Scheme: scheme, Host: host, Path: path, RawQuery: query}
			s := v.String()
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out, nil
}

// Username derives the author handle from the path segment following the @
// marker, or "" when the URL does not carry one.
func Username(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) > 0 && strings.HasPrefix(segs[0], "@") {
		return strings.TrimPrefix(segs[0], "@")
	}
	return ""
}

func parsePostURL(raw string) (*url.URL, error) {
	if !postRe.MatchString(raw) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, raw)
	}
	return u, nil
}
