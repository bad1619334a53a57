package news

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

// Feed is one configured RSS or Atom listing.
type Feed struct {
	Name string             `yaml:"name" toml:"name"`
	URL  string             `yaml:"url" toml:"url"`
	Kind domain.ContentKind `yaml:"kind" toml:"kind"`
}

// RSSSource merges several sports feeds into one newest-first listing.
type RSSSource struct {
	feeds  []Feed
	client *http.Client
}

func NewRSSSource(feeds []Feed, client *http.Client) *RSSSource {
	if client == nil {
		client = NewHTTPClient(DefaultClientConfig())
	}
	return &RSSSource{feeds: feeds, client: client}
}

func (s *RSSSource) Fetch(ctx context.Context, query ports.NewsQuery) (ports.NewsPage, error) {
	if len(s.feeds) == 0 {
		return ports.NewsPage{}, fmt.Errorf("%w: no rss feeds configured", domain.ErrUpstreamUnavailable)
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		articles []domain.Article
		failures []error
	)
	for _, feed := range s.feeds {
		wg.Add(1)
		go func(f Feed) {
			defer wg.Done()
			items, err := s.fetchFeed(ctx, f)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			articles = append(articles, items...)
		}(feed)
	}
	wg.Wait()

	if len(failures) == len(s.feeds) {
		return ports.NewsPage{}, fmt.Errorf("%w: all feeds failed: %v", domain.ErrUpstreamUnavailable, failures[0])
	}
	for _, err := range failures {
		slog.Default().WarnContext(ctx, "rss feed skipped",
			"module", "news",
			"layer", "adapter",
			"operation", "fetch_rss",
			"outcome", "degraded",
			"error", err,
		)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	matched := filterByQuery(articles, query.Query)
	return ports.NewsPage{
		Articles:     paginate(matched, query.Page, query.PageSize),
		TotalResults: len(matched),
	}, nil
}

func (s *RSSSource) fetchFeed(ctx context.Context, f Feed) ([]domain.Article, error) {
	parser := gofeed.NewParser()
	parser.Client = s.client
	parsed, err := parser.ParseURLWithContext(f.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", f.Name, err)
	}

	kind := f.Kind
	if kind == "" {
		kind = domain.ContentKindArticle
	}
	sourceName := f.Name
	if sourceName == "" {
		sourceName = parsed.Title
	}

	now := time.Now().UTC()
	out := make([]domain.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		published := now
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			published = item.UpdatedParsed.UTC()
		}

		description := truncate(stripHTML(item.Description), 300)
		content := stripHTML(item.Content)
		if content == "" {
			content = description
		}
		image := ""
		if item.Image != nil {
			image = item.Image.URL
		}

		out = append(out, domain.Article{
			ID:          articleID(item.Link, item.GUID),
			Title:       item.Title,
			Author:      itemAuthor(item),
			Kind:        kind,
			Content:     content,
			Description: description,
			SourceName:  sourceName,
			URL:         item.Link,
			ImageURL:    image,
			PublishedAt: published,
		})
	}
	return out, nil
}

func itemAuthor(item *gofeed.Item) string {
	if item.Author != nil && strings.TrimSpace(item.Author.Name) != "" {
		return strings.TrimSpace(item.Author.Name)
	}
	for _, person := range item.Authors {
		if person != nil && strings.TrimSpace(person.Name) != "" {
			return strings.TrimSpace(person.Name)
		}
	}
	return domain.UnknownAuthor
}

func articleID(link, guid string) string {
	key := link
	if key == "" {
		key = guid
	}
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", h[:16])
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
