package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

// CSVEncoder writes the record table with a header row. Amounts are bare
// two-decimal numbers.
type CSVEncoder struct{}

func NewCSVEncoder() *CSVEncoder { return &CSVEncoder{} }

func (e *CSVEncoder) Format() domain.ExportFormat { return domain.ExportFormatCSV }

func (e *CSVEncoder) Encode(report domain.Report) (ports.Artifact, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(report.Records.Headers); err != nil {
		return ports.Artifact{}, fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range report.Records.Rows {
		record := make([]string, len(row))
		for j, cell := range row {
			record[j] = cell.Plain()
		}
		if err := w.Write(record); err != nil {
			return ports.Artifact{}, fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return ports.Artifact{}, fmt.Errorf("flush csv: %w", err)
	}
	return artifact(domain.ExportFormatCSV, ContentTypeCSV, buf.Bytes()), nil
}
