package domain_test

import (
	"testing"
	"time"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

func TestPerAuthorReportSharesCells(t *testing.T) {
	t.Parallel()

	report := domain.NewPerAuthorReport([]domain.PayoutLine{
		{AuthorID: "A1", ArticleCount: 3, TotalPayout: 3 * 5264.03},
	})
	if report.Title != "Payout Report" {
		t.Fatalf("unexpected title %q", report.Title)
	}
	if got := report.Document.Rows[0][2].Display(); got != "₹15792.09" {
		t.Fatalf("unexpected document total %s", got)
	}
	if got := report.Records.Rows[0][2].Plain(); got != "15792.09" {
		t.Fatalf("unexpected record total %s", got)
	}
	if got, ok := report.Records.Rows[0][2].Value().(float64); !ok || got != 15792.09 {
		t.Fatalf("unexpected spreadsheet total %v", report.Records.Rows[0][2].Value())
	}
}

func TestSingleTotalReportNotes(t *testing.T) {
	t.Parallel()

	b, err := domain.ComputeBreakdown(domain.Counts{Articles: 5, Blogs: 3}, domain.DefaultRateTable())
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	report := domain.NewSingleTotalReport(b)
	if len(report.Records.Headers) != 7 || report.Records.Headers[6] != "Total Payout" {
		t.Fatalf("unexpected headers %v", report.Records.Headers)
	}
	want := []string{
		"5 × ₹5264.03 = ₹26320.15",
		"3 × ₹8638.28 = ₹25914.84",
		"Total: ₹52234.99",
	}
	for i, note := range want {
		if report.Notes[i] != note {
			t.Fatalf("note %d: expected %q, got %q", i, note, report.Notes[i])
		}
	}

	empty := domain.NewSingleTotalReport()
	if len(empty.Records.Rows) != 0 || len(empty.Notes) != 0 {
		t.Fatalf("expected empty report, got %+v", empty)
	}
}

func TestParseExportFormat(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]string{"PDF": "payout-report.pdf", "xlsx": "payout-report.xlsx", "excel": "payout-report.xlsx", " csv ": "payout-report.csv"} {
		format, err := domain.ParseExportFormat(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if format.Filename() != want {
			t.Fatalf("filename for %q: %s", raw, format.Filename())
		}
	}
	if _, err := domain.ParseExportFormat("docx"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestArticleFilter(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	articles := []domain.Article{
		{ID: "1", Title: "The Future of Cricket", Author: "John Smith", Kind: domain.ContentKindArticle, PublishedAt: day(12)},
		{ID: "2", Title: "Top 10 Football Transfers", Author: "Sarah Johnson", Kind: domain.ContentKindBlog, PublishedAt: day(11)},
		{ID: "3", Title: "NBA Playoff Race", Author: "Mike Brown", Kind: domain.ContentKindArticle, PublishedAt: day(10)},
		{ID: "4", Title: "Tennis Equipment", Author: "sarah johnson", Kind: domain.ContentKindBlog, PublishedAt: day(9)},
	}

	cases := []struct {
		name   string
		filter domain.ArticleFilter
		want   []string
	}{
		{name: "none", filter: domain.ArticleFilter{}, want: []string{"1", "2", "3", "4"}},
		{name: "author", filter: domain.ArticleFilter{Author: "Sarah Johnson"}, want: []string{"2", "4"}},
		{name: "kind", filter: domain.ArticleFilter{Kind: domain.ContentKindArticle}, want: []string{"1", "3"}},
		{name: "range", filter: domain.ArticleFilter{From: day(10), To: day(11)}, want: []string{"2", "3"}},
		{name: "search", filter: domain.ArticleFilter{Search: "cricket"}, want: []string{"1"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := tc.filter.Apply(articles)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %d articles", tc.want, len(got))
			}
			for i := range got {
				if got[i].ID != tc.want[i] {
					t.Fatalf("expected %v, got id %s at %d", tc.want, got[i].ID, i)
				}
			}
		})
	}
}

func TestArticleContentItemFallsBackToUnknownAuthor(t *testing.T) {
	t.Parallel()

	item := domain.Article{ID: "n-1", Kind: ""}.ContentItem()
	if item.AuthorID != domain.UnknownAuthor || item.Kind != domain.ContentKindArticle {
		t.Fatalf("unexpected item %+v", item)
	}
}
