package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

const DefaultNewsAPIBaseURL = "https://newsapi.org/v2"

// NewsAPISource reads the newsapi.org "everything" listing, newest first.
type NewsAPISource struct {
	baseURL string
	apiKey  string
	client  *http.Client
	nowFn   func() time.Time
}

func NewNewsAPISource(baseURL, apiKey string, client *http.Client) *NewsAPISource {
	if baseURL == "" {
		baseURL = DefaultNewsAPIBaseURL
	}
	if client == nil {
		client = NewHTTPClient(DefaultClientConfig())
	}
	return &NewsAPISource{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
		nowFn:   time.Now,
	}
}

type newsAPIResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		ID   *string `json:"id"`
		Name string  `json:"name"`
	} `json:"source"`
	Author      *string `json:"author"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	URLToImage  *string `json:"urlToImage"`
	PublishedAt string  `json:"publishedAt"`
	Content     string  `json:"content"`
}

func (s *NewsAPISource) Fetch(ctx context.Context, query ports.NewsQuery) (ports.NewsPage, error) {
	if s.apiKey == "" {
		return ports.NewsPage{}, fmt.Errorf("%w: news api key is not configured", domain.ErrUpstreamUnavailable)
	}

	params := url.Values{}
	params.Set("q", query.Query)
	params.Set("apiKey", s.apiKey)
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("pageSize", strconv.Itoa(query.PageSize))
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		return ports.NewsPage{}, fmt.Errorf("%w: build request: %v", domain.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return ports.NewsPage{}, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return ports.NewsPage{}, fmt.Errorf("%w: news api responded with status: %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var body newsAPIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 8<<20)).Decode(&body); err != nil {
		return ports.NewsPage{}, fmt.Errorf("%w: decode response: %v", domain.ErrUpstreamUnavailable, err)
	}
	if body.Status == "error" {
		return ports.NewsPage{}, fmt.Errorf("%w: %s: %s", domain.ErrUpstreamUnavailable, body.Code, body.Message)
	}

	stamp := s.nowFn().UnixMilli()
	articles := make([]domain.Article, 0, len(body.Articles))
	for i, item := range body.Articles {
		articles = append(articles, item.toDomain(stamp, i))
	}
	return ports.NewsPage{Articles: articles, TotalResults: body.TotalResults}, nil
}

func (a newsAPIArticle) toDomain(stamp int64, index int) domain.Article {
	sourceID := ""
	if a.Source.ID != nil {
		sourceID = *a.Source.ID
	}
	idPrefix := sourceID
	if idPrefix == "" {
		idPrefix = "news"
	}
	author := domain.UnknownAuthor
	if a.Author != nil && strings.TrimSpace(*a.Author) != "" {
		author = *a.Author
	}
	content := a.Content
	if content == "" {
		content = a.Description
	}
	image := ""
	if a.URLToImage != nil {
		image = *a.URLToImage
	}
	published, _ := time.Parse(time.RFC3339, a.PublishedAt)

	return domain.Article{
		ID:          fmt.Sprintf("%s-%d-%d", idPrefix, stamp, index),
		Title:       a.Title,
		Author:      author,
		Kind:        domain.ContentKindArticle,
		Content:     content,
		Description: a.Description,
		SourceID:    sourceID,
		SourceName:  a.Source.Name,
		URL:         a.URL,
		ImageURL:    image,
		PublishedAt: published.UTC(),
	}
}
