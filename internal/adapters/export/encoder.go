package export

import (
	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

type Config struct {
	// PDFFontPath points at a UTF-8 TrueType font. Without it the PDF uses a
	// core font and prints the rupee sign as "Rs.".
	PDFFontPath    string
	PDFCompression bool
	SheetName      string
}

// NewEncoders returns one encoder per supported format.
func NewEncoders(cfg Config) []ports.ReportEncoder {
	return []ports.ReportEncoder{
		NewPDFEncoder(cfg.PDFFontPath, cfg.PDFCompression),
		NewXLSXEncoder(cfg.SheetName),
		NewCSVEncoder(),
	}
}

func artifact(format domain.ExportFormat, contentType string, body []byte) ports.Artifact {
	return ports.Artifact{
		Filename:    format.Filename(),
		ContentType: contentType,
		Body:        body,
	}
}
