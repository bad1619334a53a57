package ports

import "github.com/arceusss10/sports-news-dashboard/internal/domain"

// Artifact is a downloadable export.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportEncoder renders one report into one file format.
type ReportEncoder interface {
	Format() domain.ExportFormat
	Encode(report domain.Report) (Artifact, error)
}
