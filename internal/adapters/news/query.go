package news

import (
	"strings"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

// filterByQuery keeps articles whose title, description or content contain
// every query term. Local catalogues only carry sports content, so the
// generic "sports" term matches everything.
func filterByQuery(articles []domain.Article, query string) []domain.Article {
	var terms []string
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if term == "sports" || term == "sport" {
			continue
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return articles
	}

	out := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		haystack := strings.ToLower(a.Title + " " + a.Description + " " + a.Content)
		keep := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, a)
		}
	}
	return out
}

// paginate returns the 1-based page of size pageSize.
func paginate(articles []domain.Article, page, pageSize int) []domain.Article {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		return []domain.Article{}
	}
	start := (page - 1) * pageSize
	if start >= len(articles) {
		return []domain.Article{}
	}
	end := min(start+pageSize, len(articles))
	return articles[start:end]
}
