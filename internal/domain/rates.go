package domain

import (
	"math"
	"strconv"
	"strings"
)

// RatesStorageKey is the persistence key the rate table is saved under.
const RatesStorageKey = "payoutRates"

const (
	MinRandomArticleRate = 3000.0
	MaxRandomArticleRate = 7000.0
	MinRandomBlogRate    = 5000.0
	MaxRandomBlogRate    = 15000.0

	DefaultArticleRate = 5264.03
	DefaultBlogRate    = 8638.28

	CurrencySymbol = "₹"
)

// RateTable holds the per-content-kind payout rates.
type RateTable struct {
	ArticleRate float64 `json:"articleRate"`
	BlogRate    float64 `json:"blogRate"`
}

func DefaultRateTable() RateTable {
	return RateTable{ArticleRate: DefaultArticleRate, BlogRate: DefaultBlogRate}
}

// Validate enforces two non-negative finite rates.
func (r RateTable) Validate() error {
	for _, rate := range []float64{r.ArticleRate, r.BlogRate} {
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
			return ErrInvalidInput
		}
	}
	return nil
}

// RateFor returns the rate applied to one item of the given kind.
func (r RateTable) RateFor(kind ContentKind) float64 {
	if kind == ContentKindBlog {
		return r.BlogRate
	}
	return r.ArticleRate
}

// RandomRateTable draws both rates uniformly inside their bounds and rounds them
// to two decimals. next must return values in [0, 1).
func RandomRateTable(next func() float64) RateTable {
	return RateTable{
		ArticleRate: RoundCurrency(MinRandomArticleRate + next()*(MaxRandomArticleRate-MinRandomArticleRate)),
		BlogRate:    RoundCurrency(MinRandomBlogRate + next()*(MaxRandomBlogRate-MinRandomBlogRate)),
	}
}

// RoundCurrency rounds half away from zero to two decimal places. It rounds
// the shortest decimal form of v, so 1.005 becomes 1.01 even though the
// nearest float64 sits just below it.
func RoundCurrency(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	whole, frac, _ := strings.Cut(strconv.FormatFloat(math.Abs(v), 'f', -1, 64), ".")
	frac += "000"
	cents, err := strconv.ParseInt(whole+frac[:2], 10, 64)
	if err != nil {
		return math.Round(v*100) / 100
	}
	if frac[2] >= '5' {
		cents++
	}
	if cents == 0 {
		return 0
	}
	rounded := float64(cents) / 100
	if v < 0 {
		return -rounded
	}
	return rounded
}

// FormatAmount renders a currency value with exactly two decimals and no symbol.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(RoundCurrency(v), 'f', 2, 64)
}

// FormatCurrency renders a currency value for display, e.g. ₹15792.09.
func FormatCurrency(v float64) string {
	return CurrencySymbol + FormatAmount(v)
}
