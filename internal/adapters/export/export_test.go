package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/arceusss10/sports-news-dashboard/internal/adapters/export"
	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

func encodersByFormat(t *testing.T) map[domain.ExportFormat]ports.ReportEncoder {
	t.Helper()
	out := map[domain.ExportFormat]ports.ReportEncoder{}
	for _, enc := range export.NewEncoders(export.Config{}) {
		out[enc.Format()] = enc
	}
	require.Len(t, out, 3)
	return out
}

func readSheet(t *testing.T, body []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	rows, err := f.GetRows(export.DefaultSheetName)
	require.NoError(t, err)
	return rows
}

func readCSV(t *testing.T, body []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestFormatsAgreeOnPerAuthorReport(t *testing.T) {
	t.Parallel()

	report := domain.NewPerAuthorReport([]domain.PayoutLine{
		{AuthorID: "A1", ArticleCount: 3, TotalPayout: 15792.09},
	})
	encoders := encodersByFormat(t)

	csvArt, err := encoders[domain.ExportFormatCSV].Encode(report)
	require.NoError(t, err)
	assert.Equal(t, "payout-report.csv", csvArt.Filename)
	assert.Equal(t, export.ContentTypeCSV, csvArt.ContentType)
	assert.Equal(t, [][]string{
		{"authorId", "articleCount", "totalPayout"},
		{"A1", "3", "15792.09"},
	}, readCSV(t, csvArt.Body))

	xlsxArt, err := encoders[domain.ExportFormatXLSX].Encode(report)
	require.NoError(t, err)
	assert.Equal(t, "payout-report.xlsx", xlsxArt.Filename)
	assert.Equal(t, [][]string{
		{"authorId", "articleCount", "totalPayout"},
		{"A1", "3", "15792.09"},
	}, readSheet(t, xlsxArt.Body))

	pdfArt, err := encoders[domain.ExportFormatPDF].Encode(report)
	require.NoError(t, err)
	assert.Equal(t, "payout-report.pdf", pdfArt.Filename)
	assert.True(t, bytes.HasPrefix(pdfArt.Body, []byte("%PDF-")))
	body := string(pdfArt.Body)
	for _, want := range []string{"Payout Report", "Author", "Total Payout", "A1", "15792.09"} {
		assert.Contains(t, body, want)
	}
}

func TestEmptyReportsCarryOnlyHeaders(t *testing.T) {
	t.Parallel()

	encoders := encodersByFormat(t)
	report := domain.NewPerAuthorReport(nil)

	csvArt, err := encoders[domain.ExportFormatCSV].Encode(report)
	require.NoError(t, err)
	assert.Equal(t, "authorId,articleCount,totalPayout\n", string(csvArt.Body))

	xlsxArt, err := encoders[domain.ExportFormatXLSX].Encode(report)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"authorId", "articleCount", "totalPayout"}}, readSheet(t, xlsxArt.Body))

	pdfArt, err := encoders[domain.ExportFormatPDF].Encode(report)
	require.NoError(t, err)
	assert.Contains(t, string(pdfArt.Body), "Author")
}

func TestSingleTotalReportNotes(t *testing.T) {
	t.Parallel()

	breakdown, err := domain.ComputeBreakdown(domain.Counts{Articles: 5, Blogs: 3}, domain.DefaultRateTable())
	require.NoError(t, err)
	report := domain.NewSingleTotalReport(breakdown)
	encoders := encodersByFormat(t)

	csvArt, err := encoders[domain.ExportFormatCSV].Encode(report)
	require.NoError(t, err)
	records := readCSV(t, csvArt.Body)
	require.Len(t, records, 2)
	assert.Equal(t, "Total Payout", records[0][6])
	assert.Equal(t, "52234.99", records[1][6])

	pdfArt, err := encoders[domain.ExportFormatPDF].Encode(report)
	require.NoError(t, err)
	body := string(pdfArt.Body)
	assert.Contains(t, body, "26320.15")
	assert.Contains(t, body, "25914.84")
	assert.Contains(t, body, "52234.99")
	assert.True(t, strings.Contains(body, "Total: Rs."), "rupee sign falls back to Rs. with core fonts")
}
