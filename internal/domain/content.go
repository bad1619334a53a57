package domain

import (
	"strings"
	"time"
)

type ContentKind string

const (
	ContentKindArticle ContentKind = "article"
	ContentKindBlog    ContentKind = "blog"
)

// UnknownAuthor is attributed to upstream items that carry no author.
const UnknownAuthor = "Unknown"

// ParseContentKind accepts the kinds used by the news listing ("news" is an article).
func ParseContentKind(raw string) (ContentKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "article", "news":
		return ContentKindArticle, nil
	case "blog":
		return ContentKindBlog, nil
	default:
		return "", ErrInvalidInput
	}
}

// ContentItem is the calculator's input unit. Items are immutable snapshots
// delivered by a content source for one computation.
type ContentItem struct {
	ID        string      `json:"id"`
	AuthorID  string      `json:"authorId"`
	Kind      ContentKind `json:"kind"`
	CreatedAt time.Time   `json:"createdAt"`
}

func (c ContentItem) Validate() error {
	if strings.TrimSpace(c.AuthorID) == "" {
		return ErrInvalidInput
	}
	if c.Kind != ContentKindArticle && c.Kind != ContentKindBlog {
		return ErrInvalidInput
	}
	return nil
}

// Article is a news listing entry as shown to visitors.
type Article struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Author      string      `json:"author"`
	Kind        ContentKind `json:"type"`
	Content     string      `json:"content"`
	Description string      `json:"description"`
	SourceID    string      `json:"sourceId,omitempty"`
	SourceName  string      `json:"sourceName"`
	URL         string      `json:"url"`
	ImageURL    string      `json:"urlToImage,omitempty"`
	PublishedAt time.Time   `json:"publishedAt"`
}

// ContentItem projects the article onto the calculator input, keyed by author.
func (a Article) ContentItem() ContentItem {
	author := strings.TrimSpace(a.Author)
	if author == "" {
		author = UnknownAuthor
	}
	kind := a.Kind
	if kind == "" {
		kind = ContentKindArticle
	}
	return ContentItem{
		ID:        a.ID,
		AuthorID:  author,
		Kind:      kind,
		CreatedAt: a.PublishedAt,
	}
}

// ArticleFilter narrows a fetched batch. Zero values disable a criterion.
type ArticleFilter struct {
	Author string
	Kind   ContentKind
	From   time.Time
	To     time.Time
	Search string
}

func (f ArticleFilter) Match(a Article) bool {
	if f.Author != "" && !strings.EqualFold(strings.TrimSpace(a.Author), strings.TrimSpace(f.Author)) {
		return false
	}
	if f.Kind != "" && a.Kind != f.Kind {
		return false
	}
	if !f.From.IsZero() && a.PublishedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && a.PublishedAt.After(f.To) {
		return false
	}
	if needle := strings.ToLower(strings.TrimSpace(f.Search)); needle != "" {
		haystack := strings.ToLower(a.Title + " " + a.Content + " " + a.Description)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func (f ArticleFilter) Apply(articles []Article) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// ContentItems projects a batch of articles in order.
func ContentItems(articles []Article) []ContentItem {
	items := make([]ContentItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, a.ContentItem())
	}
	return items
}
