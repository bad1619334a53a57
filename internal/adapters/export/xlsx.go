package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

const DefaultSheetName = "Payouts"

// XLSXEncoder writes the record table to a single sheet with typed cells.
type XLSXEncoder struct {
	sheet string
}

func NewXLSXEncoder(sheet string) *XLSXEncoder {
	if sheet == "" {
		sheet = DefaultSheetName
	}
	return &XLSXEncoder{sheet: sheet}
}

func (e *XLSXEncoder) Format() domain.ExportFormat { return domain.ExportFormatXLSX }

func (e *XLSXEncoder) Encode(report domain.Report) (ports.Artifact, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", e.sheet); err != nil {
		return ports.Artifact{}, fmt.Errorf("name sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return ports.Artifact{}, err
	}
	// Built-in number format 2 is "0.00".
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return ports.Artifact{}, err
	}

	header := make([]any, len(report.Records.Headers))
	for i, h := range report.Records.Headers {
		header[i] = h
	}
	if err := e.writeRow(f, 1, header); err != nil {
		return ports.Artifact{}, err
	}
	if len(header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		if err := f.SetCellStyle(e.sheet, "A1", last, headerStyle); err != nil {
			return ports.Artifact{}, err
		}
	}

	for i, row := range report.Records.Rows {
		rowNum := i + 2
		values := make([]any, len(row))
		for j, cell := range row {
			values[j] = cell.Value()
		}
		if err := e.writeRow(f, rowNum, values); err != nil {
			return ports.Artifact{}, err
		}
		for j, cell := range row {
			if cell.Kind != domain.CellCurrency {
				continue
			}
			name, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			if err := f.SetCellStyle(e.sheet, name, name, amountStyle); err != nil {
				return ports.Artifact{}, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ports.Artifact{}, fmt.Errorf("write workbook: %w", err)
	}
	return artifact(domain.ExportFormatXLSX, ContentTypeXLSX, buf.Bytes()), nil
}

func (e *XLSXEncoder) writeRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(e.sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
