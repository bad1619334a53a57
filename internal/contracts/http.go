package contracts

import (
	"time"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

type RatesRequest struct {
	ArticleRate *float64 `json:"articleRate"`
	BlogRate    *float64 `json:"blogRate"`
}

type RatesResponse struct {
	ArticleRate float64 `json:"articleRate"`
	BlogRate    float64 `json:"blogRate"`
	Scope       string  `json:"scope"`
	CanEdit     bool    `json:"canEdit"`
}

// TotalRequest carries raw counts; unparsable or negative values are coerced to 0
// at the HTTP edge so the calculator always renders.
type TotalRequest struct {
	Articles any `json:"articles"`
	Blogs    any `json:"blogs"`
}

type TotalResponse struct {
	Articles     int     `json:"articles"`
	ArticleRate  float64 `json:"articleRate"`
	ArticleTotal string  `json:"articleTotal"`
	Blogs        int     `json:"blogs"`
	BlogRate     float64 `json:"blogRate"`
	BlogTotal    string  `json:"blogTotal"`
	TotalPayout  string  `json:"totalPayout"`
	Display      string  `json:"display"`
}

type ContentItemRequest struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthorsRequest struct {
	Items []ContentItemRequest `json:"items"`
}

type PayoutLineResponse struct {
	AuthorID     string `json:"authorId"`
	ArticleCount int    `json:"articleCount"`
	BlogCount    int    `json:"blogCount"`
	TotalPayout  string `json:"totalPayout"`
	Display      string `json:"display"`
}

type LedgerRequest struct {
	Query    string `json:"query"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type SessionRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        string    `json:"role"`
}

type NewsPageResponse struct {
	Articles     []domain.Article `json:"articles"`
	TotalResults int              `json:"totalResults"`
	Page         int              `json:"page"`
	PageSize     int              `json:"pageSize"`
}

type LedgerResponse struct {
	Lines       []PayoutLineResponse `json:"lines"`
	ArticleRate float64              `json:"articleRate"`
	BlogRate    float64              `json:"blogRate"`
	ItemCount   int                  `json:"itemCount"`
	TotalPayout string               `json:"totalPayout"`
	Display     string               `json:"display"`
}
