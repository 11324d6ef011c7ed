package domain

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaItem is a single image or video attached to a post.
type MediaItem struct {
	Kind   MediaKind `json:"kind"`
	URL    string    `json:"url"`
	Width  int       `json:"width,omitempty"`
	Height int       `json:"height,omitempty"`
	Alt    string    `json:"alt,omitempty"`
	Mime   string    `json:"mime,omitempty"`
}

// PostRecord is the extraction result for one Threads post. Fields are filled
// by descending-trust sources: once set, a lower-trust source may only fill
// fields that are still empty. Media stays unique by URL in discovery order.
type PostRecord struct {
	URL            string            `json:"url"`
	AuthorUsername string            `json:"author_username,omitempty"`
	AuthorName     string            `json:"author_name,omitempty"`
	Text           string            `json:"text,omitempty"`
	CreatedAt      string            `json:"created_at,omitempty"`
	Media          []MediaItem       `json:"media"`
	EmbedMarkup    string            `json:"embed_markup,omitempty"`
	Diagnostics    map[string]string `json:"diagnostics,omitempty"`
}

func NewPostRecord(url string) *PostRecord {
	return &PostRecord{URL: url}
}

// HasContent reports whether extraction produced anything worth returning.
func (p *PostRecord) HasContent() bool {
	return p.Text != "" || len(p.Media) > 0
}

func (p *PostRecord) AddDiagnostic(key, value string) {
	if p.Diagnostics == nil {
		p.Diagnostics = make(map[string]string)
	}
	p.Diagnostics[key] = value
}

// MergeDiagnostics copies entries from other without overwriting keys that
// are already present.
func (p *PostRecord) MergeDiagnostics(other map[string]string) {
	for k, v := range other {
		if p.Diagnostics == nil {
			p.Diagnostics = make(map[string]string)
		}
		if _, ok := p.Diagnostics[k]; !ok {
			p.Diagnostics[k] = v
		}
	}
}
