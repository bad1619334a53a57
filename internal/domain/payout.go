package domain

// Counts is the calculator input for a single aggregate total.
type Counts struct {
	Articles int `json:"articles"`
	Blogs    int `json:"blogs"`
}

func (c Counts) Validate() error {
	if c.Articles < 0 || c.Blogs < 0 {
		return ErrInvalidInput
	}
	return nil
}

// PayoutLine is a derived per-author summary. It is never stored.
type PayoutLine struct {
	AuthorID     string  `json:"authorId"`
	ArticleCount int     `json:"articleCount"`
	BlogCount    int     `json:"blogCount"`
	TotalPayout  float64 `json:"totalPayout"`
}

// Breakdown is the single-total view with its per-kind subtotals.
type Breakdown struct {
	Articles     int     `json:"articles"`
	ArticleRate  float64 `json:"articleRate"`
	ArticleTotal float64 `json:"articleTotal"`
	Blogs        int     `json:"blogs"`
	BlogRate     float64 `json:"blogRate"`
	BlogTotal    float64 `json:"blogTotal"`
	TotalPayout  float64 `json:"totalPayout"`
}

// ComputeTotal returns articles*articleRate + blogs*blogRate without rounding.
func ComputeTotal(counts Counts, rates RateTable) (float64, error) {
	if err := counts.Validate(); err != nil {
		return 0, err
	}
	return float64(counts.Articles)*rates.ArticleRate + float64(counts.Blogs)*rates.BlogRate, nil
}

func ComputeBreakdown(counts Counts, rates RateTable) (Breakdown, error) {
	total, err := ComputeTotal(counts, rates)
	if err != nil {
		return Breakdown{}, err
	}
	return Breakdown{
		Articles:     counts.Articles,
		ArticleRate:  rates.ArticleRate,
		ArticleTotal: float64(counts.Articles) * rates.ArticleRate,
		Blogs:        counts.Blogs,
		BlogRate:     rates.BlogRate,
		BlogTotal:    float64(counts.Blogs) * rates.BlogRate,
		TotalPayout:  total,
	}, nil
}

// ComputePerAuthor groups items by author and prices each group. Lines come out
// in the order each author first appears in items.
func ComputePerAuthor(items []ContentItem, rates RateTable) ([]PayoutLine, error) {
	index := make(map[string]int)
	lines := make([]PayoutLine, 0)
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		pos, ok := index[item.AuthorID]
		if !ok {
			pos = len(lines)
			index[item.AuthorID] = pos
			lines = append(lines, PayoutLine{AuthorID: item.AuthorID})
		}
		switch item.Kind {
		case ContentKindBlog:
			lines[pos].BlogCount++
		default:
			lines[pos].ArticleCount++
		}
	}
	for i := range lines {
		total, err := ComputeTotal(Counts{Articles: lines[i].ArticleCount, Blogs: lines[i].BlogCount}, rates)
		if err != nil {
			return nil, err
		}
		lines[i].TotalPayout = total
	}
	return lines, nil
}
