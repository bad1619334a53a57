package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

func (s *Service) ExportTotal(ctx context.Context, actor domain.Actor, format domain.ExportFormat, counts domain.Counts) (ports.Artifact, error) {
	breakdown, err := s.ComputeTotal(ctx, actor, counts)
	if err != nil {
		return ports.Artifact{}, err
	}
	return s.encode(ctx, format, domain.NewSingleTotalReport(breakdown))
}

func (s *Service) ExportPerAuthor(ctx context.Context, actor domain.Actor, format domain.ExportFormat, items []domain.ContentItem) (ports.Artifact, error) {
	lines, err := s.ComputePerAuthor(ctx, actor, items)
	if err != nil {
		return ports.Artifact{}, err
	}
	return s.encode(ctx, format, domain.NewPerAuthorReport(lines))
}

func (s *Service) encode(ctx context.Context, format domain.ExportFormat, report domain.Report) (ports.Artifact, error) {
	encoder, ok := s.encoders[format]
	if !ok {
		return ports.Artifact{}, domain.ErrUnsupportedFormat
	}
	artifact, err := encoder.Encode(report)
	if err != nil {
		return ports.Artifact{}, fmt.Errorf("encode %s report: %w", format, err)
	}
	slog.Default().InfoContext(ctx, "payout report exported",
		"module", "application",
		"layer", "application",
		"operation", "export_report",
		"outcome", "success",
		"format", string(format),
		"variant", string(report.Variant),
		"records", len(report.Records.Rows),
		"bytes", len(artifact.Body),
	)
	return artifact, nil
}
