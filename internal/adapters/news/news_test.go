package news_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arceusss10/sports-news-dashboard/internal/adapters/news"
	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

const newsAPIBody = `{
  "status": "ok",
  "totalResults": 42,
  "articles": [
    {
      "source": {"id": "espn", "name": "ESPN"},
      "author": "Jane Doe",
      "title": "Cup final recap",
      "description": "Short recap",
      "url": "https://example.com/a",
      "urlToImage": "https://example.com/a.png",
      "publishedAt": "2024-03-12T10:00:00Z",
      "content": "Full recap"
    },
    {
      "source": {"id": null, "name": "Local Paper"},
      "author": null,
      "title": "Derby preview",
      "description": "Preview only",
      "url": "https://example.com/b",
      "urlToImage": null,
      "publishedAt": "2024-03-11T09:30:00Z",
      "content": ""
    }
  ]
}`

func TestNewsAPISourceMapsListing(t *testing.T) {
	t.Parallel()

	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/everything", r.URL.Path)
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(newsAPIBody))
	}))
	t.Cleanup(srv.Close)

	source := news.NewNewsAPISource(srv.URL, "secret", srv.Client())
	page, err := source.Fetch(context.Background(), ports.NewsQuery{Query: "cricket sports", Page: 2, PageSize: 5})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"q":        "cricket sports",
		"apiKey":   "secret",
		"page":     "2",
		"pageSize": "5",
		"language": "en",
		"sortBy":   "publishedAt",
	}, gotQuery)

	require.Equal(t, 42, page.TotalResults)
	require.Len(t, page.Articles, 2)

	first := page.Articles[0]
	assert.True(t, strings.HasPrefix(first.ID, "espn-"))
	assert.True(t, strings.HasSuffix(first.ID, "-0"))
	assert.Equal(t, "Jane Doe", first.Author)
	assert.Equal(t, "Full recap", first.Content)
	assert.Equal(t, domain.ContentKindArticle, first.Kind)
	assert.Equal(t, time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC), first.PublishedAt)

	second := page.Articles[1]
	assert.True(t, strings.HasPrefix(second.ID, "news-"))
	assert.True(t, strings.HasSuffix(second.ID, "-1"))
	assert.Equal(t, domain.UnknownAuthor, second.Author)
	assert.Equal(t, "Preview only", second.Content)
	assert.Empty(t, second.ImageURL)
}

func TestNewsAPISourceFailures(t *testing.T) {
	t.Parallel()

	_, err := news.NewNewsAPISource("http://127.0.0.1:1", "", nil).Fetch(context.Background(), ports.NewsQuery{Query: "sports", Page: 1, PageSize: 10})
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"status":"error","code":"rateLimited"}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	_, err = news.NewNewsAPISource(srv.URL, "secret", srv.Client()).Fetch(context.Background(), ports.NewsQuery{Query: "sports", Page: 1, PageSize: 10})
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	require.Contains(t, err.Error(), "429")
}

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Sports Blog</title>
    <link>https://blog.example.com</link>
    <description>Sports writing</description>
    <item>
      <title>Tennis racket science</title>
      <link>https://blog.example.com/tennis</link>
      <description>&lt;p&gt;Strings and &lt;b&gt;frames&lt;/b&gt;&lt;/p&gt;</description>
      <dc:creator>Sarah Johnson</dc:creator>
      <pubDate>Mon, 11 Mar 2024 08:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Cricket in spring</title>
      <link>https://blog.example.com/cricket</link>
      <description>Early season nets</description>
      <pubDate>Tue, 12 Mar 2024 08:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestRSSSourceMergesAndFilters(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssBody))
	}))
	t.Cleanup(srv.Close)

	source := news.NewRSSSource([]news.Feed{
		{Name: "blog", URL: srv.URL + "/feed", Kind: domain.ContentKindBlog},
		{Name: "down", URL: srv.URL + "/broken"},
	}, srv.Client())

	page, err := source.Fetch(context.Background(), ports.NewsQuery{Query: "sports", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, 2, page.TotalResults)
	require.Len(t, page.Articles, 2)
	assert.Equal(t, "Cricket in spring", page.Articles[0].Title)
	assert.Equal(t, domain.UnknownAuthor, page.Articles[0].Author)
	assert.Equal(t, "Sarah Johnson", page.Articles[1].Author)
	assert.Equal(t, "Strings and frames", page.Articles[1].Description)
	assert.Equal(t, domain.ContentKindBlog, page.Articles[1].Kind)

	filtered, err := source.Fetch(context.Background(), ports.NewsQuery{Query: "tennis sports", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, filtered.Articles, 1)
	assert.Equal(t, "Tennis racket science", filtered.Articles[0].Title)
}

func TestRSSSourceAllFeedsDown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := news.NewRSSSource([]news.Feed{{Name: "down", URL: srv.URL}}, srv.Client()).
		Fetch(context.Background(), ports.NewsQuery{Query: "sports", Page: 1, PageSize: 10})
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestFixtureSourcePaginates(t *testing.T) {
	t.Parallel()

	source := news.NewFixtureSource(nil)
	ctx := context.Background()

	page, err := source.Fetch(ctx, ports.NewsQuery{Query: "sports", Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 5, page.TotalResults)
	require.Len(t, page.Articles, 2)
	assert.Equal(t, "3", page.Articles[0].ID)

	beyond, err := source.Fetch(ctx, ports.NewsQuery{Query: "sports", Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond.Articles)

	cricket, err := source.Fetch(ctx, ports.NewsQuery{Query: "cricket sports", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, cricket.Articles, 1)
	assert.Equal(t, "John Smith", cricket.Articles[0].Author)
}
