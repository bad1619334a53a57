package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/arceusss10/sports-news-dashboard/internal/adapters/export"
	"github.com/arceusss10/sports-news-dashboard/internal/adapters/postgres"
	"github.com/arceusss10/sports-news-dashboard/internal/application"
	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

// localActor is the identity used for offline computations.
var localActor = domain.Actor{ID: "payoutctl", Role: domain.RoleAdmin}

type rateFlags struct {
	article float64
	blog    float64
}

func (f *rateFlags) register(c *cobra.Command) {
	c.Flags().Float64Var(&f.article, "article-rate", domain.DefaultArticleRate, "Payout per article")
	c.Flags().Float64Var(&f.blog, "blog-rate", domain.DefaultBlogRate, "Payout per blog post")
}

type outputFlags struct {
	format string
	export string
	out    string
	font   string
}

func (f *outputFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.format, "format", "pretty", "Output format: pretty|json")
	c.Flags().StringVar(&f.export, "export", "", "Also write a report file: pdf|xlsx|csv")
	c.Flags().StringVarP(&f.out, "out", "o", "", "Report directory (defaults to the user's Downloads folder)")
	c.Flags().StringVar(&f.font, "pdf-font", "", "UTF-8 TrueType font for PDF reports")
}

func totalCmd() *cobra.Command {
	var counts domain.Counts
	var rates rateFlags
	var output outputFlags

	c := &cobra.Command{
		Use:   "total",
		Short: "Compute the payout for article and blog counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newOfflineService(cmd.Context(), rates, output.font)
			if err != nil {
				return err
			}
			breakdown, err := svc.ComputeTotal(cmd.Context(), localActor, counts)
			if err != nil {
				return fmt.Errorf("compute total: %w", err)
			}
			if err := printTotal(cmd.OutOrStdout(), breakdown, output.format); err != nil {
				return err
			}
			if output.export == "" {
				return nil
			}
			format, err := domain.ParseExportFormat(output.export)
			if err != nil {
				return fmt.Errorf("unsupported export format %q (expected pdf|xlsx|csv)", output.export)
			}
			artifact, err := svc.ExportTotal(cmd.Context(), localActor, format, counts)
			if err != nil {
				return err
			}
			return writeArtifact(cmd.OutOrStdout(), output.out, artifact)
		},
	}

	c.Flags().IntVar(&counts.Articles, "articles", 0, "Number of articles")
	c.Flags().IntVar(&counts.Blogs, "blogs", 0, "Number of blog posts")
	rates.register(c)
	output.register(c)
	return c
}

func authorsCmd() *cobra.Command {
	var input string
	var rates rateFlags
	var output outputFlags

	c := &cobra.Command{
		Use:   "authors",
		Short: "Compute per-author payouts from a JSON list of content items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := readItems(input)
			if err != nil {
				return err
			}
			svc, err := newOfflineService(cmd.Context(), rates, output.font)
			if err != nil {
				return err
			}
			lines, err := svc.ComputePerAuthor(cmd.Context(), localActor, items)
			if err != nil {
				return fmt.Errorf("compute per-author payouts: %w", err)
			}
			if err := printLines(cmd.OutOrStdout(), lines, output.format); err != nil {
				return err
			}
			if output.export == "" {
				return nil
			}
			format, err := domain.ParseExportFormat(output.export)
			if err != nil {
				return fmt.Errorf("unsupported export format %q (expected pdf|xlsx|csv)", output.export)
			}
			artifact, err := svc.ExportPerAuthor(cmd.Context(), localActor, format, items)
			if err != nil {
				return err
			}
			return writeArtifact(cmd.OutOrStdout(), output.out, artifact)
		},
	}

	c.Flags().StringVarP(&input, "input", "i", "", "JSON file with [{\"id\",\"authorId\",\"kind\"}] items (required)")
	rates.register(c)
	output.register(c)
	_ = c.MarkFlagRequired("input")
	return c
}

func newOfflineService(ctx context.Context, rates rateFlags, fontPath string) (*application.Service, error) {
	table := domain.RateTable{ArticleRate: rates.article, BlogRate: rates.blog}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("rates must be non-negative numbers")
	}
	repos := postgres.NewMemoryRepositories()
	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName: "payoutctl",
			SeedMode:    application.SeedModeFixed,
			SeedRates:   table,
		},
		Rates:    repos.Rates,
		Outbox:   repos.Outbox,
		Encoders: export.NewEncoders(export.Config{PDFFontPath: fontPath}),
	})
	if err := svc.RateStore().Load(ctx); err != nil {
		return nil, err
	}
	// The seed ignores a zero table; set explicitly so --article-rate 0 holds.
	if _, err := svc.SetRates(ctx, localActor, table); err != nil {
		return nil, err
	}
	return svc, nil
}

type itemInput struct {
	ID       string `json:"id"`
	AuthorID string `json:"authorId"`
	Kind     string `json:"kind"`
}

func readItems(path string) ([]domain.ContentItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	var inputs []itemInput
	if err := json.Unmarshal(raw, &inputs); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	items := make([]domain.ContentItem, 0, len(inputs))
	for i, in := range inputs {
		kind, err := domain.ParseContentKind(in.Kind)
		if err != nil {
			return nil, fmt.Errorf("item %d: unknown kind %q", i, in.Kind)
		}
		items = append(items, domain.ContentItem{ID: in.ID, AuthorID: in.AuthorID, Kind: kind})
	}
	return items, nil
}

func writeArtifact(w io.Writer, dir string, artifact ports.Artifact) error {
	if dir == "" {
		dir = xdg.UserDirs.Download
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Body, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(w, "Report:     %s\n", path)
	return nil
}
