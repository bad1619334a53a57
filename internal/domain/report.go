package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type ExportFormat string

const (
	ExportFormatPDF  ExportFormat = "pdf"
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatCSV  ExportFormat = "csv"
)

const ReportFilenameBase = "payout-report"

func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case ExportFormatPDF:
		return ExportFormatPDF, nil
	case ExportFormatXLSX, "excel":
		return ExportFormatXLSX, nil
	case ExportFormatCSV:
		return ExportFormatCSV, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Filename is the fixed download name for the format, e.g. payout-report.csv.
func (f ExportFormat) Filename() string {
	return ReportFilenameBase + "." + string(f)
}

type ReportVariant string

const (
	ReportVariantPerAuthor   ReportVariant = "authors"
	ReportVariantSingleTotal ReportVariant = "total"
)

const ReportTitle = "Payout Report"

type CellKind int

const (
	CellText CellKind = iota
	CellCount
	CellCurrency
)

// Cell is one report value. Every encoder renders from the same cell so the
// formats cannot disagree on a number.
type Cell struct {
	Kind   CellKind
	Text   string
	Count  int
	Amount float64
}

func TextCell(v string) Cell { return Cell{Kind: CellText, Text: v} }
func CountCell(v int) Cell { return Cell{Kind: CellCount, Count: v} }
func CurrencyCell(v float64) Cell { return Cell{Kind: CellCurrency, Amount: RoundCurrency(v)} }

// Display is the document rendering: currency carries the ₹ prefix.
func (c Cell) Display() string {
	if c.Kind == CellCurrency {
		return FormatCurrency(c.Amount)
	}
	return c.Plain()
}

// Plain is the delimited-text rendering: currency as a bare two-decimal number.
func (c Cell) Plain() string {
	switch c.Kind {
	case CellCount:
		return strconv.Itoa(c.Count)
	case CellCurrency:
		return FormatAmount(c.Amount)
	default:
		return c.Text
	}
}

// Value is the typed spreadsheet rendering.
func (c Cell) Value() any {
	switch c.Kind {
	case CellCount:
		return c.Count
	case CellCurrency:
		return c.Amount
	default:
		return c.Text
	}
}

type Table struct {
	Headers []string
	Rows    [][]Cell
}

// Report is the in-memory record set behind every export. Document is what the
// tabular document prints; Records is what the spreadsheet and delimited text carry.
type Report struct {
	Title    string
	Variant  ReportVariant
	Document Table
	Records  Table
	Notes    []string
}

var (
	perAuthorDocumentHeaders   = []string{"Author", "Articles", "Total Payout"}
	perAuthorRecordHeaders     = []string{"authorId", "articleCount", "totalPayout"}
	singleTotalDocumentHeaders = []string{"Articles", "Blogs", "Total Payout"}
	singleTotalRecordHeaders   = []string{"Articles", "Article Rate", "Article Total", "Blogs", "Blog Rate", "Blog Total", "Total Payout"}
)

func NewPerAuthorReport(lines []PayoutLine) Report {
	report := Report{
		Title:    ReportTitle,
		Variant:  ReportVariantPerAuthor,
		Document: Table{Headers: perAuthorDocumentHeaders, Rows: make([][]Cell, 0, len(lines))},
		Records:  Table{Headers: perAuthorRecordHeaders, Rows: make([][]Cell, 0, len(lines))},
	}
	for _, line := range lines {
		author := TextCell(line.AuthorID)
		articles := CountCell(line.ArticleCount)
		total := CurrencyCell(line.TotalPayout)
		report.Document.Rows = append(report.Document.Rows, []Cell{author, articles, total})
		report.Records.Rows = append(report.Records.Rows, []Cell{author, articles, total})
	}
	return report
}

func NewSingleTotalReport(breakdowns ...Breakdown) Report {
	report := Report{
		Title:    ReportTitle,
		Variant:  ReportVariantSingleTotal,
		Document: Table{Headers: singleTotalDocumentHeaders, Rows: make([][]Cell, 0, len(breakdowns))},
		Records:  Table{Headers: singleTotalRecordHeaders, Rows: make([][]Cell, 0, len(breakdowns))},
	}
	for _, b := range breakdowns {
		articles := CountCell(b.Articles)
		blogs := CountCell(b.Blogs)
		total := CurrencyCell(b.TotalPayout)
		report.Document.Rows = append(report.Document.Rows, []Cell{articles, blogs, total})
		report.Records.Rows = append(report.Records.Rows, []Cell{
			articles,
			CurrencyCell(b.ArticleRate),
			CurrencyCell(b.ArticleTotal),
			blogs,
			CurrencyCell(b.BlogRate),
			CurrencyCell(b.BlogTotal),
			total,
		})
	}
	if len(breakdowns) == 1 {
		b := breakdowns[0]
		report.Notes = []string{
			fmt.Sprintf("%d × %s = %s", b.Articles, FormatCurrency(b.ArticleRate), FormatCurrency(b.ArticleTotal)),
			fmt.Sprintf("%d × %s = %s", b.Blogs, FormatCurrency(b.BlogRate), FormatCurrency(b.BlogTotal)),
			"Total: " + FormatCurrency(b.TotalPayout),
		}
	}
	return report
}
