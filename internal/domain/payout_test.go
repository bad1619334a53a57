package domain_test

import (
	"errors"
	"testing"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

func TestComputeTotalScenario(t *testing.T) {
	t.Parallel()

	rates := domain.RateTable{ArticleRate: 5264.03, BlogRate: 8638.28}
	total, err := domain.ComputeTotal(domain.Counts{Articles: 5, Blogs: 3}, rates)
	if err != nil {
		t.Fatalf("compute total: %v", err)
	}
	if got := domain.RoundCurrency(total); got != 52234.99 {
		t.Fatalf("expected 52234.99, got %v", got)
	}
	if got := domain.FormatCurrency(total); got != "₹52234.99" {
		t.Fatalf("expected ₹52234.99, got %s", got)
	}
}

func TestComputeTotalMatchesFormula(t *testing.T) {
	t.Parallel()

	rateTables := []domain.RateTable{
		{ArticleRate: 0, BlogRate: 0},
		{ArticleRate: 100, BlogRate: 150},
		{ArticleRate: 5264.03, BlogRate: 8638.28},
		{ArticleRate: 3000.01, BlogRate: 14999.99},
	}
	for _, rates := range rateTables {
		for a := 0; a <= 25; a++ {
			for b := 0; b <= 25; b++ {
				got, err := domain.ComputeTotal(domain.Counts{Articles: a, Blogs: b}, rates)
				if err != nil {
					t.Fatalf("compute total(%d,%d): %v", a, b, err)
				}
				want := float64(a)*rates.ArticleRate + float64(b)*rates.BlogRate
				if got != want {
					t.Fatalf("compute total(%d,%d,%+v) = %v, want %v", a, b, rates, got, want)
				}
			}
		}
	}
}

func TestComputeTotalRejectsNegativeCounts(t *testing.T) {
	t.Parallel()

	cases := []domain.Counts{
		{Articles: -1, Blogs: 0},
		{Articles: 0, Blogs: -1},
		{Articles: -3, Blogs: -2},
	}
	for _, tc := range cases {
		tc := tc
		if _, err := domain.ComputeTotal(tc, domain.DefaultRateTable()); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %+v, got %v", tc, err)
		}
	}
}

func TestComputeBreakdownSubtotals(t *testing.T) {
	t.Parallel()

	b, err := domain.ComputeBreakdown(domain.Counts{Articles: 5, Blogs: 3}, domain.DefaultRateTable())
	if err != nil {
		t.Fatalf("compute breakdown: %v", err)
	}
	if domain.FormatAmount(b.ArticleTotal) != "26320.15" {
		t.Fatalf("unexpected article total %v", b.ArticleTotal)
	}
	if domain.FormatAmount(b.BlogTotal) != "25914.84" {
		t.Fatalf("unexpected blog total %v", b.BlogTotal)
	}
	if b.TotalPayout != b.ArticleTotal+b.BlogTotal {
		t.Fatalf("total %v does not equal subtotals", b.TotalPayout)
	}
}

func TestComputePerAuthorKeepsFirstAppearanceOrder(t *testing.T) {
	t.Parallel()

	items := []domain.ContentItem{
		{ID: "1", AuthorID: "zoe", Kind: domain.ContentKindArticle},
		{ID: "2", AuthorID: "adam", Kind: domain.ContentKindBlog},
		{ID: "3", AuthorID: "zoe", Kind: domain.ContentKindBlog},
		{ID: "4", AuthorID: "mia", Kind: domain.ContentKindArticle},
		{ID: "5", AuthorID: "zoe", Kind: domain.ContentKindArticle},
	}
	rates := domain.RateTable{ArticleRate: 100, BlogRate: 150}

	lines, err := domain.ComputePerAuthor(items, rates)
	if err != nil {
		t.Fatalf("compute per author: %v", err)
	}
	want := []domain.PayoutLine{
		{AuthorID: "zoe", ArticleCount: 2, BlogCount: 1, TotalPayout: 350},
		{AuthorID: "adam", ArticleCount: 0, BlogCount: 1, TotalPayout: 150},
		{AuthorID: "mia", ArticleCount: 1, BlogCount: 0, TotalPayout: 100},
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %+v, got %+v", i, want[i], lines[i])
		}
	}
}

func TestComputePerAuthorEmptyAndInvalid(t *testing.T) {
	t.Parallel()

	lines, err := domain.ComputePerAuthor(nil, domain.DefaultRateTable())
	if err != nil {
		t.Fatalf("empty items: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(lines))
	}

	_, err = domain.ComputePerAuthor([]domain.ContentItem{{ID: "x", AuthorID: " ", Kind: domain.ContentKindArticle}}, domain.DefaultRateTable())
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank author, got %v", err)
	}
}
