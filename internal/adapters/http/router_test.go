package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/arceusss10/sports-news-dashboard/internal/adapters/export"
	httpadapter "github.com/arceusss10/sports-news-dashboard/internal/adapters/http"
	"github.com/arceusss10/sports-news-dashboard/internal/adapters/news"
	"github.com/arceusss10/sports-news-dashboard/internal/adapters/postgres"
	"github.com/arceusss10/sports-news-dashboard/internal/adapters/security"
	"github.com/arceusss10/sports-news-dashboard/internal/application"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newRouter(t *testing.T, opts httpadapter.Options) http.Handler {
	t.Helper()

	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	creds, err := security.NewStaticCredentialStore(security.DevUsers(), hasher)
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	signer, err := security.NewEphemeralJWTSigner("test")
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	repos := postgres.NewMemoryRepositories()
	svc := application.NewService(application.Dependencies{
		Config:      application.Config{SeedMode: application.SeedModeFixed},
		Rates:       repos.Rates,
		Outbox:      repos.Outbox,
		Content:     news.NewFixtureSource(nil),
		Encoders:    export.NewEncoders(export.Config{}),
		Credentials: creds,
		Hasher:      hasher,
		TokenSigner: signer,
	})
	if err := svc.RateStore().Load(context.Background()); err != nil {
		t.Fatalf("load rates: %v", err)
	}
	return httpadapter.NewRouter(httpadapter.NewHandler(svc, opts))
}

func do(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var out envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, rr.Body.String())
	}
	if data != nil {
		if err := json.Unmarshal(out.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return out
}

func login(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()
	rr := do(t, router, http.MethodPost, "/v1/session", "", `{"username":"`+username+`","password":"`+password+`"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("login failed: status=%d body=%s", rr.Code, rr.Body.String())
	}
	var session struct {
		AccessToken string `json:"access_token"`
		Role        string `json:"role"`
	}
	decode(t, rr, &session)
	if session.AccessToken == "" || session.Role != username {
		t.Fatalf("unexpected session: %+v", session)
	}
	return session.AccessToken
}

func TestAnonymousCanBrowseNewsButNotCalculator(t *testing.T) {
	t.Parallel()
	router := newRouter(t, httpadapter.Options{})

	rr := do(t, router, http.MethodGet, "/v1/news?type=blog", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("news failed: status=%d body=%s", rr.Code, rr.Body.String())
	}
	var page struct {
		Articles []struct {
			Author string `json:"author"`
			Type   string `json:"type"`
		} `json:"articles"`
		TotalResults int `json:"totalResults"`
	}
	decode(t, rr, &page)
	if page.TotalResults != 5 || len(page.Articles) != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
	for _, a := range page.Articles {
		if a.Type != "blog" || a.Author != "Sarah Johnson" {
			t.Fatalf("filter leaked article: %+v", a)
		}
	}

	rr = do(t, router, http.MethodGet, "/v1/rates", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous rates: got=%d want=%d", rr.Code, http.StatusUnauthorized)
	}
	rr = do(t, router, http.MethodPost, "/v1/payouts/total", "", `{"articles":1,"blogs":1}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous total: got=%d want=%d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAdminSetsRatesAndUserComputesTotal(t *testing.T) {
	t.Parallel()
	router := newRouter(t, httpadapter.Options{})
	admin := login(t, router, "admin", "admin123")
	user := login(t, router, "user", "user123")

	rr := do(t, router, http.MethodPut, "/v1/rates", admin, `{"articleRate":4000,"blogRate":9000}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("set rates failed: status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(t, router, http.MethodPut, "/v1/rates", user, `{"articleRate":1}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("user set rates: got=%d want=%d", rr.Code, http.StatusForbidden)
	}
	if env := decode(t, rr, nil); env.Code != "FORBIDDEN" {
		t.Fatalf("unexpected error code: %+v", env)
	}

	rr = do(t, router, http.MethodGet, "/v1/rates", user, "")
	var rates struct {
		ArticleRate float64 `json:"articleRate"`
		BlogRate    float64 `json:"blogRate"`
		CanEdit     bool    `json:"canEdit"`
	}
	decode(t, rr, &rates)
	if rates.ArticleRate != 4000 || rates.BlogRate != 9000 || rates.CanEdit {
		t.Fatalf("rejected write changed state or wrong canEdit: %+v", rates)
	}

	rr = do(t, router, http.MethodPut, "/v1/rates", admin, `{"articleRate":5264.03,"blogRate":8638.28}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("reset rates failed: status=%d", rr.Code)
	}
	rr = do(t, router, http.MethodPost, "/v1/payouts/total", user, `{"articles":5,"blogs":3}`)
	var total struct {
		TotalPayout string `json:"totalPayout"`
		Display     string `json:"display"`
	}
	decode(t, rr, &total)
	if total.TotalPayout != "52234.99" || total.Display != "₹52234.99" {
		t.Fatalf("unexpected total: %+v", total)
	}
}

func TestPartialRateUpdateKeepsOtherRate(t *testing.T) {
	t.Parallel()
	router := newRouter(t, httpadapter.Options{})
	admin := login(t, router, "admin", "admin123")

	rr := do(t, router, http.MethodPut, "/v1/rates", admin, `{"articleRate":4000,"blogRate":9000}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("set rates failed: status=%d body=%s", rr.Code, rr.Body.String())
	}
	rr = do(t, router, http.MethodPut, "/v1/rates", admin, `{"blogRate":9500}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("partial update failed: status=%d body=%s", rr.Code, rr.Body.String())
	}
	var rates struct {
		ArticleRate float64 `json:"articleRate"`
		BlogRate    float64 `json:"blogRate"`
	}
	decode(t, rr, &rates)
	if rates.ArticleRate != 4000 || rates.BlogRate != 9500 {
		t.Fatalf("unexpected rates after partial update: %+v", rates)
	}

	rr = do(t, router, http.MethodPut, "/v1/rates", admin, `{"articleRate":-1}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("negative partial update: got=%d want=%d", rr.Code, http.StatusBadRequest)
	}
}

func TestTotalCoercesInvalidCounts(t *testing.T) {
	t.Parallel()
	router := newRouter(t, httpadapter.Options{})
	user := login(t, router, "user", "user123")

	rr := do(t, router, http.MethodPost, "/v1/payouts/total", user, `{"articles":"abc","blogs":-2}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("coerced total failed: status=%d body=%s", rr.Code, rr.Body.String())
	}
	var total struct {
		Articles    int    `json:"articles"`
		Blogs       int    `json:"blogs"`
		TotalPayout string `json:"totalPayout"`
	}
	decode(t, rr, &total)
	if total.Articles != 0 || total.Blogs != 0 || total.TotalPayout != "0.00" {
		t.Fatalf("unexpected coerced total: %+v", total)
	}
}

func TestPerAuthorAndExport(t *testing.T) {
	t.Parallel()
	router := newRouter(t, httpadapter.Options{})
	user := login(t, router, "user", "user123")
	body := `{"items":[{"id":"1","authorId":"A1","kind":"article"},{"id":"2","authorId":"A1","kind":"article"},{"id":"3","authorId":"A1","kind":"article"}]}`

	rr := do(t, router, http.MethodPost, "/v1/payouts/authors", user, body)
	var lines []struct {
		AuthorID     string `json:"authorId"`
		ArticleCount int    `json:"articleCount"`
		TotalPayout  string `json:"totalPayout"`
	}
	decode(t, rr, &lines)
	if len(lines) != 1 || lines[0].AuthorID != "A1" || lines[0].ArticleCount != 3 || lines[0].TotalPayout != "15792.09" {
		t.Fatalf("unexpected lines: %+v", lines)
	}

	rr = do(t, router, http.MethodPost, "/v1/exports/authors/csv", user, body)
	if rr.Code != http.StatusOK {
		t.Fatalf("export failed: status=%d body=%s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Disposition"); got != `attachment; filename="payout-report.csv"` {
		t.Fatalf("unexpected disposition: %s", got)
	}
	if got := rr.Body.String(); got != "authorId,articleCount,totalPayout\nA1,3,15792.09\n" {
		t.Fatalf("unexpected csv: %q", got)
	}

	rr = do(t, router, http.MethodPost, "/v1/exports/authors/docx", user, body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unsupported format: got=%d want=%d", rr.Code, http.StatusBadRequest)
	}

	rr = do(t, router, http.MethodPost, "/v1/exports/authors/csv", "", body)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous export: got=%d want=%d", rr.Code, http.StatusUnauthorized)
	}

	rr = do(t, router, http.MethodGet, "/metrics", "", "")
	if !strings.Contains(rr.Body.String(), `dashboard_payout_exports_total{format="csv",variant="authors"} 1`) {
		t.Fatalf("export counter missing from metrics")
	}
}

func TestLedgerPricesFixtureNews(t *testing.T) {
	t.Parallel()
	router := newRouter(t, httpadapter.Options{})
	admin := login(t, router, "admin", "admin123")

	rr := do(t, router, http.MethodPost, "/v1/payouts/ledger", admin, `{"query":"sports"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("ledger failed: status=%d body=%s", rr.Code, rr.Body.String())
	}
	var ledger struct {
		Lines []struct {
			AuthorID     string `json:"authorId"`
			ArticleCount int    `json:"articleCount"`
			BlogCount    int    `json:"blogCount"`
		} `json:"lines"`
		ItemCount int `json:"itemCount"`
	}
	decode(t, rr, &ledger)
	if ledger.ItemCount != 5 || len(ledger.Lines) != 3 {
		t.Fatalf("unexpected ledger: %+v", ledger)
	}
	if ledger.Lines[0].AuthorID != "John Smith" || ledger.Lines[0].ArticleCount != 2 {
		t.Fatalf("unexpected first line: %+v", ledger.Lines[0])
	}
	if ledger.Lines[1].AuthorID != "Sarah Johnson" || ledger.Lines[1].BlogCount != 2 {
		t.Fatalf("unexpected second line: %+v", ledger.Lines[1])
	}
}

func TestAuthFailures(t *testing.T) {
	t.Parallel()
	router := newRouter(t, httpadapter.Options{})

	rr := do(t, router, http.MethodPost, "/v1/session", "", `{"username":"admin","password":"wrong"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: got=%d want=%d", rr.Code, http.StatusUnauthorized)
	}
	rr = do(t, router, http.MethodGet, "/v1/news", "garbage", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: got=%d want=%d", rr.Code, http.StatusUnauthorized)
	}
	if env := decode(t, rr, nil); env.Status != "error" || env.Code != "UNAUTHORIZED" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestSessionRateLimit(t *testing.T) {
	t.Parallel()
	router := newRouter(t, httpadapter.Options{
		RateLimits: map[string]httpadapter.RateLimit{"session": {RequestsPerMinute: 1, Burst: 1}},
	})

	first := do(t, router, http.MethodPost, "/v1/session", "", `{"username":"user","password":"user123"}`)
	if first.Code != http.StatusCreated {
		t.Fatalf("first login: got=%d", first.Code)
	}
	second := do(t, router, http.MethodPost, "/v1/session", "", `{"username":"user","password":"user123"}`)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second login: got=%d want=%d", second.Code, http.StatusTooManyRequests)
	}
}
