package parserimpl

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/fx"

	"threadsfetcher/internal/domain"
	"threadsfetcher/internal/media"
	"threadsfetcher/internal/parser"
	"threadsfetcher/internal/threadsurl"
	"threadsfetcher/pkg/formatter"
	"threadsfetcher/pkg/logger"
)

type Opts struct {
	fx.In

	Logger logger.Logger
}

type ParserImpl struct {
	Logger logger.Logger
}

func New(opts Opts) *ParserImpl {
	return &ParserImpl{
		Logger: opts.Logger,
	}
}

var _ parser.Client = (*ParserImpl)(nil)

// Parse walks the three embedded data sources in descending trust order:
// JSON-LD blocks, the client bootstrap blob, then page-level meta tags.
// Lower-trust sources only fill fields still empty; media is additive and
// deduplicated across all of them.
func (p *ParserImpl) Parse(markup string, sourceURL string) *domain.PostRecord {
	post := domain.NewPostRecord(sourceURL)
	post.AuthorUsername = threadsurl.Username(sourceURL)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		p.Logger.Debug("markup did not parse as HTML", "url", sourceURL, "error", err)
		return post
	}

	p.applyLinkedData(doc, post)
	p.applyBootstrapData(doc, post)
	p.applyMetaTags(doc, post)

	post.Text = formatter.CleanText(post.Text)
	return post
}

// captionRe is a best-effort grab of the caption field inside the bootstrap
// blob. Its shape is not a stable contract; used only when JSON-LD gave no
// text.
var captionRe = regexp.MustCompile(`"(caption|text|body|content)"\s*:\s*"(.+?)"`)

func (p *ParserImpl) applyBootstrapData(doc *goquery.Document, post *domain.PostRecord) {
	if post.Text != "" {
		return
	}
	raw := doc.Find("script#__NEXT_DATA__").First().Text()
	if raw == "" {
		return
	}
	if m := captionRe.FindStringSubmatch(raw); m != nil {
		post.Text = html.UnescapeString(m[2])
	}
}

func (p *ParserImpl) applyMetaTags(doc *goquery.Document, post *domain.PostRecord) {
	if post.Text == "" {
		post.Text = formatter.FirstNonEmpty(
			metaValues(doc, "og:description", "description", "twitter:description")...,
		)
	}
	if post.AuthorName == "" {
		post.AuthorName = formatter.FirstNonEmpty(
			metaValues(doc, "og:site_name", "twitter:creator")...,
		)
	}

	imageKeys := []string{"og:image", "og:image:url", "og:image:secure_url", "twitter:image", "twitter:image:src"}
	for _, key := range imageKeys {
		for _, u := range metaValues(doc, key) {
			post.Media = media.AppendUnique(post.Media, domain.MediaItem{
				Kind: domain.MediaImage,
				URL:  u,
			})
		}
	}

	videoKeys := []string{"og:video", "og:video:url", "og:video:secure_url", "twitter:player:stream"}
	for _, key := range videoKeys {
		for _, u := range metaValues(doc, key) {
			post.Media = media.AppendUnique(post.Media, domain.MediaItem{
				Kind: domain.MediaVideo,
				URL:  u,
				Mime: media.MimeFor(u),
			})
		}
	}
}

// metaValues collects content attributes for each key across both the
// property= and name= tag families, deduplicated in document order.
func metaValues(doc *goquery.Document, keys ...string) []string {
	var vals []string
	collect := func(_ int, s *goquery.Selection) {
		if c, ok := s.Attr("content"); ok {
			vals = append(vals, c)
		}
	}
	for _, key := range keys {
		doc.Find(fmt.Sprintf(`meta[property=%q]`, key)).Each(collect)
		doc.Find(fmt.Sprintf(`meta[name=%q]`, key)).Each(collect)
	}

	out := make([]string, 0, len(vals))
	seen := make(map[string]struct{})
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
