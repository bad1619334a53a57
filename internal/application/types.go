package application

import (
	"math/rand"
	"strings"
	"time"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

const (
	SeedModeRandom = "random"
	SeedModeFixed  = "fixed"
)

type Config struct {
	ServiceName      string
	RatesScope       string
	SeedMode         string
	SeedRates        domain.RateTable
	TokenTTL         time.Duration
	DefaultNewsQuery string
	DefaultPageSize  int
	MaxPageSize      int
}

type RatesView struct {
	Rates   domain.RateTable
	Scope   string
	CanEdit bool
}

type NewsInput struct {
	Query    string
	Page     int
	PageSize int
	Filter   domain.ArticleFilter
}

type NewsOutput struct {
	Articles     []domain.Article
	TotalResults int
	Page         int
	PageSize     int
}

type LedgerOutput struct {
	Lines       []domain.PayoutLine
	Rates       domain.RateTable
	ItemCount   int
	TotalPayout float64
}

type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	Role        domain.Role
}

type Service struct {
	cfg         Config
	rates       *RateStore
	content     ports.ContentSource
	encoders    map[domain.ExportFormat]ports.ReportEncoder
	credentials ports.CredentialStore
	hasher      ports.PasswordHasher
	tokenSigner ports.TokenSigner
	nowFn       func() time.Time
}

type Dependencies struct {
	Config      Config
	Rates       ports.RateRepository
	RateCache   ports.RateCache
	Outbox      ports.OutboxRepository
	Content     ports.ContentSource
	Encoders    []ports.ReportEncoder
	Credentials ports.CredentialStore
	Hasher      ports.PasswordHasher
	TokenSigner ports.TokenSigner
	RandFn      func() float64
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "sports-news-dashboard"
	}
	if strings.TrimSpace(cfg.RatesScope) == "" {
		cfg.RatesScope = "default"
	}
	if cfg.SeedMode != SeedModeFixed {
		cfg.SeedMode = SeedModeRandom
	}
	if cfg.SeedRates == (domain.RateTable{}) || cfg.SeedRates.Validate() != nil {
		cfg.SeedRates = domain.DefaultRateTable()
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.DefaultNewsQuery == "" {
		cfg.DefaultNewsQuery = "sports"
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	randFn := deps.RandFn
	if randFn == nil {
		randFn = rand.Float64
	}
	nowFn := func() time.Time { return time.Now().UTC() }

	encoders := make(map[domain.ExportFormat]ports.ReportEncoder, len(deps.Encoders))
	for _, enc := range deps.Encoders {
		encoders[enc.Format()] = enc
	}

	return &Service{
		cfg: cfg,
		rates: NewRateStore(RateStoreDependencies{
			Config: RateStoreConfig{
				ServiceName: cfg.ServiceName,
				Scope:       cfg.RatesScope,
				SeedMode:    cfg.SeedMode,
				SeedRates:   cfg.SeedRates,
			},
			Repository: deps.Rates,
			Cache:      deps.RateCache,
			Outbox:     deps.Outbox,
			RandFn:     randFn,
			NowFn:      nowFn,
		}),
		content:     deps.Content,
		encoders:    encoders,
		credentials: deps.Credentials,
		hasher:      deps.Hasher,
		tokenSigner: deps.TokenSigner,
		nowFn:       nowFn,
	}
}

// RateStore exposes the owned rate store, e.g. for startup loading.
func (s *Service) RateStore() *RateStore {
	return s.rates
}
