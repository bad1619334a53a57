package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

func printTotal(w io.Writer, b domain.Breakdown, format string) error {
	switch format {
	case "json":
		return encodeJSON(w, map[string]any{
			"articles":       b.Articles,
			"blogs":          b.Blogs,
			"articleRate":    domain.FormatAmount(b.ArticleRate),
			"blogRate":       domain.FormatAmount(b.BlogRate),
			"articleTotal":   domain.FormatAmount(b.ArticleTotal),
			"blogTotal":      domain.FormatAmount(b.BlogTotal),
			"totalPayout":    domain.FormatAmount(b.TotalPayout),
			"displayedTotal": domain.FormatCurrency(b.TotalPayout),
		})
	case "pretty", "":
		fmt.Fprintf(w, "Articles:   %d x %s = %s\n", b.Articles, domain.FormatCurrency(b.ArticleRate), domain.FormatCurrency(b.ArticleTotal))
		fmt.Fprintf(w, "Blogs:      %d x %s = %s\n", b.Blogs, domain.FormatCurrency(b.BlogRate), domain.FormatCurrency(b.BlogTotal))
		fmt.Fprintf(w, "Total:      %s\n", domain.FormatCurrency(b.TotalPayout))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printLines(w io.Writer, lines []domain.PayoutLine, format string) error {
	switch format {
	case "json":
		out := make([]map[string]any, 0, len(lines))
		for _, l := range lines {
			out = append(out, map[string]any{
				"authorId": l.AuthorID,
				"articles": l.ArticleCount,
				"blogs":    l.BlogCount,
				"payout":   domain.FormatAmount(l.TotalPayout),
			})
		}
		return encodeJSON(w, out)
	case "pretty", "":
		var total float64
		for _, l := range lines {
			fmt.Fprintf(w, "- %s: %d article(s), %d blog(s) => %s\n", l.AuthorID, l.ArticleCount, l.BlogCount, domain.FormatCurrency(l.TotalPayout))
			total += l.TotalPayout
		}
		fmt.Fprintf(w, "Total:      %s\n", domain.FormatCurrency(domain.RoundCurrency(total)))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
