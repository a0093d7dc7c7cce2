package rerolltable

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const (
	TableSheet  = "RerollTable"
	RoutesSheet = "Routes"
)

var routeHeader = []string{"回数", "武器_属性", "組み合わせ", "スキル", "完全一致"}

// ExportXLSX writes the table and the given routes to a workbook at path.
func ExportXLSX(t *Table, path string, routes []Route) error {
	t.order.Sort(t.columns)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TableSheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	if _, err := f.NewSheet(RoutesSheet); err != nil {
		return errors.Wrap(err, "create routes sheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return errors.Wrap(err, "header style")
	}

	// table sheet
	header := t.Header()
	if err := setRow(f, TableSheet, 1, toCells(header)); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(TableSheet, "A1", last, headerStyle); err != nil {
		return errors.Wrap(err, "style table header")
	}
	for i, count := range t.Rows() {
		cells := make([]any, len(header))
		cells[0] = count
		for j, column := range t.columns {
			if v, ok := t.rows[count][column]; ok {
				cells[j+1] = v
			}
		}
		if err := setRow(f, TableSheet, i+2, cells); err != nil {
			return err
		}
	}
	if err := f.SetPanes(TableSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return errors.Wrap(err, "freeze header")
	}

	// routes sheet
	if err := setRow(f, RoutesSheet, 1, toCells(routeHeader)); err != nil {
		return err
	}
	last, _ = excelize.CoordinatesToCellName(len(routeHeader), 1)
	if err := f.SetCellStyle(RoutesSheet, "A1", last, headerStyle); err != nil {
		return errors.Wrap(err, "style routes header")
	}
	for i, r := range routes {
		mark := ""
		if r.IsExactMatch {
			mark = "○"
		}
		cells := []any{r.Count, r.WeaponElement, r.MatchedCombo.String(), r.RawSkills, mark}
		if err := setRow(f, RoutesSheet, i+2, cells); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create export dir for %s", path)
	}
	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "save workbook %s", path)
	}
	log.Info().Str("path", path).Int("rows", t.Len()).Int("routes", len(routes)).Msg("<RerollTable> exported workbook")
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrapf(err, "row %d", row)
	}
	return errors.Wrapf(f.SetSheetRow(sheet, cell, &cells), "write %s row %d", sheet, row)
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
