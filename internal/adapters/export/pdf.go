package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

const (
	pdfMargin     = 10.0
	pdfPageWidth  = 210.0
	pdfRowHeight  = 8.0
	pdfUTF8Family = "ReportSans"
)

// PDFEncoder prints the document table under the report title, followed by
// any breakdown notes.
type PDFEncoder struct {
	fontPath    string
	compression bool
}

func NewPDFEncoder(fontPath string, compression bool) *PDFEncoder {
	return &PDFEncoder{fontPath: fontPath, compression: compression}
}

func (e *PDFEncoder) Format() domain.ExportFormat { return domain.ExportFormatPDF }

func (e *PDFEncoder) Encode(report domain.Report) (ports.Artifact, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(e.compression)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetTitle(report.Title, true)

	family, text := e.fonts(pdf)
	pdf.AddPage()

	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(0, 12, text(report.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	table := report.Document
	if cols := len(table.Headers); cols > 0 {
		width := (pdfPageWidth - 2*pdfMargin) / float64(cols)

		pdf.SetFont(family, "B", 11)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range table.Headers {
			pdf.CellFormat(width, pdfRowHeight, text(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont(family, "", 11)
		for _, row := range table.Rows {
			for _, cell := range row {
				align := "L"
				if cell.Kind != domain.CellText {
					align = "R"
				}
				pdf.CellFormat(width, pdfRowHeight, text(cell.Display()), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if len(report.Notes) > 0 {
		pdf.Ln(4)
		pdf.SetFont(family, "", 11)
		for _, note := range report.Notes {
			pdf.CellFormat(0, 6, text(note), "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.Error(); err != nil {
		return ports.Artifact{}, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return ports.Artifact{}, fmt.Errorf("write pdf: %w", err)
	}
	return artifact(domain.ExportFormatPDF, ContentTypePDF, buf.Bytes()), nil
}

// fonts picks the font family and the text transform matching it. Core fonts
// are cp1252 only, which has no rupee sign.
func (e *PDFEncoder) fonts(pdf *fpdf.Fpdf) (string, func(string) string) {
	if e.fontPath != "" {
		pdf.AddUTF8Font(pdfUTF8Family, "", e.fontPath)
		pdf.AddUTF8Font(pdfUTF8Family, "B", e.fontPath)
		if pdf.Ok() {
			return pdfUTF8Family, func(s string) string { return s }
		}
		pdf.ClearError()
	}
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	return "Helvetica", func(s string) string {
		return translate(strings.ReplaceAll(s, domain.CurrencySymbol, "Rs. "))
	}
}
