package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/arceusss10/sports-news-dashboard/internal/adapters/news"
	"github.com/arceusss10/sports-news-dashboard/internal/adapters/security"
	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

const (
	NewsSourceNewsAPI = "newsapi"
	NewsSourceRSS     = "rss"
	NewsSourceFixture = "fixture"
)

// Config is the resolved runtime configuration.
type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	// DatabaseURL is a postgres URL or sqlite://path. Empty keeps rates in memory.
	DatabaseURL string
	MaxDBConns  int32
	RedisURL    string
	RedisTTL    time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	JWTPrivateKeyPEM  string
	JWTKeyID          string
	AllowEphemeralJWT bool
	BcryptCost        int
	TokenTTL          time.Duration
	Users             []security.UserEntry

	NewsSource       string
	NewsAPIKey       string
	NewsAPIBaseURL   string
	RSSFeeds         []news.Feed
	NewsTimeout      time.Duration
	DefaultNewsQuery string
	DefaultPageSize  int
	MaxPageSize      int

	RatesScope       string
	RatesSeed        string
	SeedArticleRate  float64
	SeedBlogRate     float64
	PDFFontPath      string
	PDFCompression   bool
	RequestTimeout   time.Duration
	SessionPerMinute float64
	SessionBurst     int
	ExportPerMinute  float64
	ExportBurst      int
	MetricsPrefix    string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxClaimTTL     time.Duration
	OutboxMaxRetries   int

	LogLevel string
	LogFile  string
}

// configFile mirrors configs/default.yaml; the TOML form uses the same keys.
type configFile struct {
	Service struct {
		ID       string `yaml:"id" toml:"id"`
		HTTPPort int    `yaml:"http_port" toml:"http_port"`
		GRPCPort int    `yaml:"grpc_port" toml:"grpc_port"`
	} `yaml:"service" toml:"service"`
	Dependencies struct {
		DatabaseURL  string   `yaml:"database_url" toml:"database_url"`
		RedisURL     string   `yaml:"redis_url" toml:"redis_url"`
		KafkaBrokers []string `yaml:"kafka_brokers" toml:"kafka_brokers"`
		KafkaTopic   string   `yaml:"kafka_topic" toml:"kafka_topic"`
	} `yaml:"dependencies" toml:"dependencies"`
	Auth struct {
		JWTKeyID   string               `yaml:"jwt_key_id" toml:"jwt_key_id"`
		TokenHours int                  `yaml:"token_hours" toml:"token_hours"`
		Users      []security.UserEntry `yaml:"users" toml:"users"`
	} `yaml:"auth" toml:"auth"`
	News struct {
		Source       string      `yaml:"source" toml:"source"`
		BaseURL      string      `yaml:"base_url" toml:"base_url"`
		DefaultQuery string      `yaml:"default_query" toml:"default_query"`
		PageSize     int         `yaml:"page_size" toml:"page_size"`
		MaxPageSize  int         `yaml:"max_page_size" toml:"max_page_size"`
		Feeds        []news.Feed `yaml:"feeds" toml:"feeds"`
	} `yaml:"news" toml:"news"`
	Rates struct {
		Scope       string  `yaml:"scope" toml:"scope"`
		Seed        string  `yaml:"seed" toml:"seed"`
		ArticleRate float64 `yaml:"article_rate" toml:"article_rate"`
		BlogRate    float64 `yaml:"blog_rate" toml:"blog_rate"`
	} `yaml:"rates" toml:"rates"`
	Exports struct {
		PDFFontPath string `yaml:"pdf_font_path" toml:"pdf_font_path"`
	} `yaml:"exports" toml:"exports"`
	Logging struct {
		Level string `yaml:"level" toml:"level"`
		File  string `yaml:"file" toml:"file"`
	} `yaml:"logging" toml:"logging"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:          "sports-news-dashboard",
		HTTPPort:           8080,
		GRPCPort:           9090,
		MaxDBConns:         10,
		KafkaTopic:         "payout.rates.updated",
		JWTKeyID:           "dashboard-key-1",
		AllowEphemeralJWT:  true,
		BcryptCost:         10,
		TokenTTL:           24 * time.Hour,
		NewsAPIBaseURL:     news.DefaultNewsAPIBaseURL,
		NewsTimeout:        15 * time.Second,
		DefaultNewsQuery:   "sports",
		DefaultPageSize:    10,
		MaxPageSize:        100,
		RatesScope:         "default",
		RatesSeed:          "random",
		SeedArticleRate:    domain.DefaultArticleRate,
		SeedBlogRate:       domain.DefaultBlogRate,
		RequestTimeout:     30 * time.Second,
		SessionPerMinute:   10,
		SessionBurst:       5,
		ExportPerMinute:    30,
		ExportBurst:        10,
		MetricsPrefix:      "dashboard",
		OutboxPollInterval: 2 * time.Second,
		OutboxBatchSize:    50,
		OutboxClaimTTL:     30 * time.Second,
		OutboxMaxRetries:   5,
		LogLevel:           "info",
	}

	if path != "" {
		f, err := readConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		if f != nil {
			applyFile(&cfg, f)
		}
	}
	applyEnv(&cfg)

	if cfg.NewsSource == "" {
		cfg.NewsSource = NewsSourceFixture
		if cfg.NewsAPIKey != "" {
			cfg.NewsSource = NewsSourceNewsAPI
		}
	}
	if len(cfg.Users) == 0 {
		cfg.Users = security.DevUsers()
	}
	for i, feed := range cfg.RSSFeeds {
		if kind, err := domain.ParseContentKind(string(feed.Kind)); err == nil {
			cfg.RSSFeeds[i].Kind = kind
		} else {
			cfg.RSSFeeds[i].Kind = domain.ContentKindArticle
		}
	}
	return cfg, cfg.validate()
}

func readConfigFile(path string) (*configFile, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var f configFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(raw), &f); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	return &f, nil
}

func applyFile(cfg *Config, f *configFile) {
	setString(&cfg.ServiceID, f.Service.ID)
	setInt(&cfg.HTTPPort, f.Service.HTTPPort)
	setInt(&cfg.GRPCPort, f.Service.GRPCPort)

	setString(&cfg.DatabaseURL, f.Dependencies.DatabaseURL)
	setString(&cfg.RedisURL, f.Dependencies.RedisURL)
	if len(f.Dependencies.KafkaBrokers) > 0 {
		cfg.KafkaBrokers = f.Dependencies.KafkaBrokers
	}
	setString(&cfg.KafkaTopic, f.Dependencies.KafkaTopic)

	setString(&cfg.JWTKeyID, f.Auth.JWTKeyID)
	if f.Auth.TokenHours > 0 {
		cfg.TokenTTL = time.Duration(f.Auth.TokenHours) * time.Hour
	}
	if len(f.Auth.Users) > 0 {
		cfg.Users = f.Auth.Users
	}

	setString(&cfg.NewsSource, f.News.Source)
	setString(&cfg.NewsAPIBaseURL, f.News.BaseURL)
	setString(&cfg.DefaultNewsQuery, f.News.DefaultQuery)
	setInt(&cfg.DefaultPageSize, f.News.PageSize)
	setInt(&cfg.MaxPageSize, f.News.MaxPageSize)
	if len(f.News.Feeds) > 0 {
		cfg.RSSFeeds = f.News.Feeds
	}

	setString(&cfg.RatesScope, f.Rates.Scope)
	setString(&cfg.RatesSeed, f.Rates.Seed)
	if f.Rates.ArticleRate > 0 {
		cfg.SeedArticleRate = f.Rates.ArticleRate
	}
	if f.Rates.BlogRate > 0 {
		cfg.SeedBlogRate = f.Rates.BlogRate
	}
	setString(&cfg.PDFFontPath, f.Exports.PDFFontPath)
	setString(&cfg.LogLevel, f.Logging.Level)
	setString(&cfg.LogFile, f.Logging.File)
}

func applyEnv(cfg *Config) {
	cfg.ServiceID = envOrDefault("SERVICE_ID", cfg.ServiceID)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.RedisTTL = time.Duration(envInt("REDIS_TTL_SECONDS", int(cfg.RedisTTL.Seconds()))) * time.Second
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopic = envOrDefault("KAFKA_TOPIC", cfg.KafkaTopic)

	cfg.JWTPrivateKeyPEM = envOrDefault("JWT_PRIVATE_KEY_PEM", cfg.JWTPrivateKeyPEM)
	cfg.JWTKeyID = envOrDefault("JWT_KEY_ID", cfg.JWTKeyID)
	cfg.AllowEphemeralJWT = envBool("JWT_ALLOW_EPHEMERAL", cfg.AllowEphemeralJWT)
	cfg.BcryptCost = envInt("BCRYPT_ROUNDS", cfg.BcryptCost)
	cfg.TokenTTL = time.Duration(envInt("TOKEN_EXPIRY_HOURS", int(cfg.TokenTTL.Hours()))) * time.Hour

	cfg.NewsSource = strings.ToLower(strings.TrimSpace(envOrDefault("NEWS_SOURCE", cfg.NewsSource)))
	cfg.NewsAPIKey = envOrDefault("NEWS_API_KEY", cfg.NewsAPIKey)
	cfg.NewsAPIBaseURL = envOrDefault("NEWS_API_BASE_URL", cfg.NewsAPIBaseURL)
	cfg.NewsTimeout = time.Duration(envInt("NEWS_TIMEOUT_SECONDS", int(cfg.NewsTimeout.Seconds()))) * time.Second
	cfg.DefaultNewsQuery = envOrDefault("NEWS_DEFAULT_QUERY", cfg.DefaultNewsQuery)
	if feeds := envCSV("RSS_FEEDS", nil); len(feeds) > 0 {
		cfg.RSSFeeds = parseFeeds(feeds)
	}

	cfg.RatesScope = envOrDefault("RATES_SCOPE", cfg.RatesScope)
	cfg.RatesSeed = strings.ToLower(strings.TrimSpace(envOrDefault("RATES_SEED", cfg.RatesSeed)))
	cfg.SeedArticleRate = envFloat("RATES_SEED_ARTICLE", cfg.SeedArticleRate)
	cfg.SeedBlogRate = envFloat("RATES_SEED_BLOG", cfg.SeedBlogRate)

	cfg.PDFFontPath = envOrDefault("PDF_FONT_PATH", cfg.PDFFontPath)
	cfg.PDFCompression = envBool("PDF_COMPRESSION", cfg.PDFCompression)
	cfg.RequestTimeout = time.Duration(envInt("REQUEST_TIMEOUT_SECONDS", int(cfg.RequestTimeout.Seconds()))) * time.Second
	cfg.SessionPerMinute = envFloat("SESSION_RATE_LIMIT_PER_MINUTE", cfg.SessionPerMinute)
	cfg.SessionBurst = envInt("SESSION_RATE_LIMIT_BURST", cfg.SessionBurst)
	cfg.ExportPerMinute = envFloat("EXPORT_RATE_LIMIT_PER_MINUTE", cfg.ExportPerMinute)
	cfg.ExportBurst = envInt("EXPORT_RATE_LIMIT_BURST", cfg.ExportBurst)
	cfg.MetricsPrefix = envOrDefault("METRICS_PREFIX", cfg.MetricsPrefix)

	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)
	cfg.OutboxClaimTTL = time.Duration(envInt("OUTBOX_CLAIM_TTL_SECONDS", int(cfg.OutboxClaimTTL.Seconds()))) * time.Second
	cfg.OutboxMaxRetries = envInt("OUTBOX_MAX_RETRIES", cfg.OutboxMaxRetries)

	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = envOrDefault("LOG_FILE", cfg.LogFile)
}

func (c Config) validate() error {
	switch c.NewsSource {
	case NewsSourceNewsAPI, NewsSourceRSS, NewsSourceFixture:
	default:
		return fmt.Errorf("unknown NEWS_SOURCE %q", c.NewsSource)
	}
	if c.NewsSource == NewsSourceRSS && len(c.RSSFeeds) == 0 {
		return fmt.Errorf("NEWS_SOURCE=rss requires RSS_FEEDS")
	}
	if c.RatesSeed != "random" && c.RatesSeed != "fixed" {
		return fmt.Errorf("RATES_SEED must be random or fixed, got %q", c.RatesSeed)
	}
	if err := (domain.RateTable{ArticleRate: c.SeedArticleRate, BlogRate: c.SeedBlogRate}).Validate(); err != nil {
		return fmt.Errorf("seed rates: %w", err)
	}
	if c.JWTPrivateKeyPEM == "" && !c.AllowEphemeralJWT {
		return fmt.Errorf("missing JWT_PRIVATE_KEY_PEM")
	}
	return nil
}

// parseFeeds reads RSS_FEEDS entries of the form name=url or name=url=kind.
func parseFeeds(entries []string) []news.Feed {
	feeds := make([]news.Feed, 0, len(entries))
	for _, entry := range entries {
		name, rest, ok := strings.Cut(entry, "=")
		if !ok {
			feeds = append(feeds, news.Feed{Name: entry, URL: entry})
			continue
		}
		feed := news.Feed{Name: strings.TrimSpace(name), URL: strings.TrimSpace(rest)}
		if idx := strings.LastIndex(rest, "="); idx > 0 {
			if kind, err := domain.ParseContentKind(rest[idx+1:]); err == nil {
				feed.URL = strings.TrimSpace(rest[:idx])
				feed.Kind = kind
			}
		}
		feeds = append(feeds, feed)
	}
	return feeds
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envFloat(name string, fallback float64) float64 {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return fallback
	}
}

// envCSV parses comma-separated env vars and removes empty segments.
func envCSV(name string, fallback []string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return fallback
	}
	return parts
}
