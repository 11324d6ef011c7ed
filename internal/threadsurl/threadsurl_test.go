package threadsurl_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"threadsfetcher/internal/threadsurl"
)

func TestNormalize(t *testing.T) {
	got, err := threadsurl.Normalize("https://www.threads.net/@acct/post/XYZ/")
	require.NoError(t, err)
	require.Equal(t, "https://threads.net/@acct/post/XYZ?hl=en", got)
}

func TestNormalizeMirrorHost(t *testing.T) {
	got, err := threadsurl.Normalize("http://threads.com/@acct/post/C8abc_-123")
	require.NoError(t, err)
	require.Equal(t, "https://threads.net/@acct/post/C8abc_-123?hl=en", got)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	first, err := threadsurl.Normalize("https://www.threads.net/@acct/post/XYZ/")
	require.NoError(t, err)
	second, err := threadsurl.Normalize(first)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestNormalizeRejectsNonPostURLs(t *testing.T) {
	for _, raw := range []string{
		"https://example.com/not-a-post",
		"https://threads.net/@acct",
		"https://threads.net/post/XYZ",
		"ftp://threads.net/@acct/post/XYZ",
		"not a url",
		"",
	} {
		_, err := threadsurl.Normalize(raw)
		require.ErrorIs(t, err, threadsurl.ErrInvalidFormat, "input: %q", raw)
	}
}

func TestCandidates(t *testing.T) {
	got, err := threadsurl.Candidates("https://www.threads.net/@acct/post/XYZ/")
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://threads.net/@acct/post/XYZ",
		"https://threads.net/@acct/post/XYZ?hl=en",
		"https://threads.com/@acct/post/XYZ",
		"https://threads.com/@acct/post/XYZ?hl=en",
	}, got)

	seen := make(map[string]struct{})
	for _, u := range got {
		_, dup := seen[u]
		require.False(t, dup, "duplicate candidate %q", u)
		seen[u] = struct{}{}
	}
}

func TestCandidatesRejectsNonPostURLs(t *testing.T) {
	_, err := threadsurl.Candidates("https://example.com/not-a-post")
	require.ErrorIs(t, err, threadsurl.ErrInvalidFormat)
}

func TestUsername(t *testing.T) {
	require.Equal(t, "acct", threadsurl.Username("https://threads.net/@acct/post/XYZ?hl=en"))
	require.Equal(t, "", threadsurl.Username("https://threads.net/post/XYZ"))
	require.Equal(t, "", threadsurl.Username("://bad"))
}

func TestValid(t *testing.T) {
	require.True(t, threadsurl.Valid("https://threads.net/@acct/post/XYZ"))
	require.True(t, threadsurl.Valid("HTTPS://WWW.THREADS.COM/@acct/post/XYZ/"))
	require.False(t, threadsurl.Valid("https://threads.net/@acct/reply/XYZ"))
}
