package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.HTTPPort)
	require.Equal(t, NewsSourceFixture, cfg.NewsSource)
	require.Equal(t, "random", cfg.RatesSeed)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Len(t, cfg.Users, 2)
	require.Empty(t, cfg.DatabaseURL)
}

func TestLoadConfigYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service:
  http_port: 8181
news:
  source: rss
  feeds:
    - name: BBC Sport
      url: https://feeds.bbci.co.uk/sport/rss.xml
      kind: news
rates:
  seed: fixed
  article_rate: 4000
  blog_rate: 9000
auth:
  users:
    - username: editor
      password: secret
      role: admin
`), 0o600))

	t.Setenv("HTTP_PORT", "9191")
	t.Setenv("RATES_SEED_BLOG", "9500.5")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 9191, cfg.HTTPPort)
	require.Equal(t, NewsSourceRSS, cfg.NewsSource)
	require.Len(t, cfg.RSSFeeds, 1)
	require.Equal(t, domain.ContentKindArticle, cfg.RSSFeeds[0].Kind)
	require.Equal(t, "fixed", cfg.RatesSeed)
	require.Equal(t, 4000.0, cfg.SeedArticleRate)
	require.Equal(t, 9500.5, cfg.SeedBlogRate)
	require.Len(t, cfg.Users, 1)
	require.Equal(t, "editor", cfg.Users[0].Username)
}

func TestLoadConfigTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[service]
grpc_port = 9393

[rates]
scope = "desk-a"
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 9393, cfg.GRPCPort)
	require.Equal(t, "desk-a", cfg.RatesScope)
}

func TestLoadConfigNewsAPIKeySelectsSource(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "k")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, NewsSourceNewsAPI, cfg.NewsSource)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown source":     {"NEWS_SOURCE": "twitter"},
		"rss without feeds":  {"NEWS_SOURCE": "rss"},
		"bad seed mode":      {"RATES_SEED": "zero"},
		"negative seed rate": {"RATES_SEED_ARTICLE": "-1"},
		"jwt without key":    {"JWT_ALLOW_EPHEMERAL": "false"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig("")
			require.Error(t, err)
		})
	}
}

func TestParseFeeds(t *testing.T) {
	feeds := parseFeeds([]string{
		"ESPN=https://www.espn.com/espn/rss/news",
		"Blog=https://example.com/feed?x=1=blog",
	})
	require.Len(t, feeds, 2)
	require.Equal(t, "ESPN", feeds[0].Name)
	require.Equal(t, "https://www.espn.com/espn/rss/news", feeds[0].URL)
	require.Equal(t, "https://example.com/feed?x=1", feeds[1].URL)
	require.Equal(t, domain.ContentKindBlog, feeds[1].Kind)
}
