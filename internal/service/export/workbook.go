// Package export writes dashboard views as XLSX workbooks.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
)

const summarySheet = "Summary"

// ContentType is the MIME type of the written workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filename names the export of a view.
func Filename(view *models.View) string {
	return fmt.Sprintf("anjo-%s.xlsx", view.Domain)
}

// Workbook renders view into a new workbook: a Summary sheet with the metrics
// and one sheet holding every group, each under a bold title row.
func Workbook(view *models.View) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeSummary(f, view, bold); err != nil {
		return nil, err
	}

	sheet := sheetTitle(view.Domain)
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("create %s sheet: %w", sheet, err)
	}
	if err := writeGroups(f, sheet, view.Groups, bold); err != nil {
		return nil, err
	}

	return f, nil
}

// Write renders view straight to w.
func Write(w io.Writer, view *models.View) error {
	f, err := Workbook(view)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, view *models.View, bold int) error {
	if err := setRow(f, summarySheet, 1, []interface{}{"Metric", "Value"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", bold); err != nil {
		return fmt.Errorf("style summary header: %w", err)
	}

	for i, m := range view.Metrics {
		if err := setRow(f, summarySheet, i+2, []interface{}{m.Label, m.Value}); err != nil {
			return err
		}
	}

	if len(view.Filters) > 0 {
		row := len(view.Metrics) + 3
		if err := setRow(f, summarySheet, row, []interface{}{"Filters"}); err != nil {
			return err
		}
		for i, name := range view.Filters.Names() {
			values := strings.Join(view.Filters[name], ", ")
			if err := setRow(f, summarySheet, row+i+1, []interface{}{string(name), values}); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeGroups(f *excelize.File, sheet string, groups []models.GroupView, bold int) error {
	row := 1
	for _, g := range groups {
		if err := setRow(f, sheet, row, []interface{}{g.Title}); err != nil {
			return err
		}
		if err := styleRow(f, sheet, row, 1, bold); err != nil {
			return err
		}
		row++

		header := make([]interface{}, 0, len(g.Columns)+1)
		header = append(header, "#")
		for _, c := range g.Columns {
			header = append(header, c)
		}
		if err := setRow(f, sheet, row, header); err != nil {
			return err
		}
		if err := styleRow(f, sheet, row, len(header), bold); err != nil {
			return err
		}
		row++

		for _, r := range g.Rows {
			cells := make([]interface{}, 0, len(r.Cells)+1)
			cells = append(cells, r.Index)
			for _, c := range r.Cells {
				cells = append(cells, c)
			}
			if err := setRow(f, sheet, row, cells); err != nil {
				return err
			}
			row++
		}
		row++
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, width, style int) error {
	from, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("address row %d: %w", row, err)
	}
	to, err := excelize.CoordinatesToCellName(max(width, 1), row)
	if err != nil {
		return fmt.Errorf("address row %d: %w", row, err)
	}
	if err := f.SetCellStyle(sheet, from, to, style); err != nil {
		return fmt.Errorf("style %s row %d: %w", sheet, row, err)
	}
	return nil
}

func sheetTitle(d models.Domain) string {
	s := string(d)
	if s == "" {
		return "Records"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
