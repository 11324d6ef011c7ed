package parserimpl

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"threadsfetcher/internal/domain"
	"threadsfetcher/internal/media"
	"threadsfetcher/pkg/formatter"
)

// JSON-LD @type labels that describe a post-like document. Substring match,
// so NewsArticle and BlogPosting variants qualify too.
var postTypeTokens = []string{"socialmediaposting", "creativework", "article", "blogposting"}

// ldNode covers the handful of JSON-LD shapes Threads emits. Polymorphic
// fields (author, image, video can each be a string, an object, or a list)
// stay as RawMessage and are narrowed by the helpers below.
type ldNode struct {
	Type          json.RawMessage `json:"@type"`
	ArticleBody   string          `json:"articleBody"`
	Text          string          `json:"text"`
	Description   string          `json:"description"`
	DatePublished string          `json:"datePublished"`
	DateCreated   string          `json:"dateCreated"`
	Author        json.RawMessage `json:"author"`
	Creator       json.RawMessage `json:"creator"`
	Image         json.RawMessage `json:"image"`
	Video         json.RawMessage `json:"video"`
}

type ldActor struct {
	Name   string          `json:"name"`
	URL    string          `json:"url"`
	SameAs json.RawMessage `json:"sameAs"`
}

type ldMediaObject struct {
	URL          string          `json:"url"`
	ContentURL   string          `json:"contentUrl"`
	EmbedURL     string          `json:"embedUrl"`
	ThumbnailURL string          `json:"thumbnailUrl"`
	Width        json.RawMessage `json:"width"`
	Height       json.RawMessage `json:"height"`
	Caption      string          `json:"caption"`
	Name         string          `json:"name"`
}

func (p *ParserImpl) applyLinkedData(doc *goquery.Document, post *domain.PostRecord) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		for _, node := range decodeLinkedData(s.Text()) {
			if !node.describesPost() {
				continue
			}
			post.Text = formatter.FirstNonEmpty(post.Text, node.ArticleBody, node.Text, node.Description)
			post.CreatedAt = formatter.FirstNonEmpty(post.CreatedAt, node.DatePublished, node.DateCreated)
			applyActor(node, post)

			for _, item := range mediaItems(node.Image, domain.MediaImage) {
				post.Media = media.AppendUnique(post.Media, item)
			}
			for _, item := range mediaItems(node.Video, domain.MediaVideo) {
				post.Media = media.AppendUnique(post.Media, item)
			}
		}
	})
}

func decodeLinkedData(raw string) []ldNode {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var many []ldNode
		if err := json.Unmarshal([]byte(trimmed), &many); err != nil {
			return nil
		}
		return many
	}
	var one ldNode
	if err := json.Unmarshal([]byte(trimmed), &one); err != nil {
		return nil
	}
	return []ldNode{one}
}

func (n ldNode) describesPost() bool {
	label := strings.ToLower(n.typeLabel())
	for _, token := range postTypeTokens {
		if strings.Contains(label, token) {
			return true
		}
	}
	return false
}

func (n ldNode) typeLabel() string {
	var single string
	if json.Unmarshal(n.Type, &single) == nil {
		return single
	}
	var many []string
	if json.Unmarshal(n.Type, &many) == nil {
		return strings.Join(many, ",")
	}
	return ""
}

// applyActor fills author name and username from the author node, falling
// back to creator. The username comes from the profile link (sameAs or url)
// when it carries an /@handle segment.
func applyActor(node ldNode, post *domain.PostRecord) {
	for _, raw := range []json.RawMessage{node.Author, node.Creator} {
		if len(raw) == 0 {
			continue
		}
		var actor ldActor
		if err := json.Unmarshal(raw, &actor); err != nil {
			continue
		}
		post.AuthorName = formatter.FirstNonEmpty(post.AuthorName, actor.Name)

		link := actorLink(actor)
		if idx := strings.LastIndex(link, "/@"); idx >= 0 {
			handle := link[idx+2:]
			if slash := strings.IndexByte(handle, '/'); slash >= 0 {
				handle = handle[:slash]
			}
			post.AuthorUsername = formatter.FirstNonEmpty(post.AuthorUsername, handle)
		}
	}
}

func actorLink(actor ldActor) string {
	var single string
	if json.Unmarshal(actor.SameAs, &single) == nil && single != "" {
		return single
	}
	var many []string
	if json.Unmarshal(actor.SameAs, &many) == nil && len(many) > 0 {
		return many[0]
	}
	return actor.URL
}

// mediaItems narrows a polymorphic image/video field into concrete items.
// Accepted shapes: a bare URL string, a media object, or a list of either.
func mediaItems(raw json.RawMessage, kind domain.MediaKind) []domain.MediaItem {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	var nodes []json.RawMessage
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &nodes); err != nil {
			return nil
		}
	} else {
		nodes = []json.RawMessage{trimmed}
	}

	var out []domain.MediaItem
	for _, n := range nodes {
		n = bytes.TrimSpace(n)
		if len(n) == 0 {
			continue
		}
		if n[0] == '"' {
			var u string
			if json.Unmarshal(n, &u) == nil && u != "" {
				out = append(out, domain.MediaItem{Kind: kind, URL: u, Mime: mimeFor(kind, u)})
			}
			continue
		}

		var obj ldMediaObject
		if err := json.Unmarshal(n, &obj); err != nil {
			continue
		}
		var u string
		if kind == domain.MediaVideo {
			u = formatter.FirstNonEmpty(obj.ContentURL, obj.EmbedURL, obj.URL)
		} else {
			u = formatter.FirstNonEmpty(obj.URL, obj.ContentURL, obj.ThumbnailURL)
		}
		if u == "" {
			continue
		}
		item := domain.MediaItem{
			Kind:   kind,
			URL:    u,
			Width:  toInt(obj.Width),
			Height: toInt(obj.Height),
			Mime:   mimeFor(kind, u),
		}
		if kind == domain.MediaImage {
			item.Alt = formatter.FirstNonEmpty(obj.Caption, obj.Name)
		}
		out = append(out, item)
	}
	return out
}

func mimeFor(kind domain.MediaKind, url string) string {
	if kind != domain.MediaVideo {
		return ""
	}
	return media.MimeFor(url)
}

// toInt accepts both numeric and quoted dimensions; JSON-LD emitters use
// either.
func toInt(raw json.RawMessage) int {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0
		}
		n = json.Number(s)
	}
	v, err := n.Int64()
	if err != nil {
		return 0
	}
	return int(v)
}
