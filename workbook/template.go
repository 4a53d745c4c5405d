package workbook

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"smrload/rockprops"
)

// ROCKPROPS Excel upload template, conforming to
// Measure_Section-Samples-downhole intervals-rockprops_2023.10
type Template struct {
	file *excelize.File
	// Next free row of each sheet (1-based)
	next map[string]int
}

// Opens the template and checks that it has all the sheets used to load SMR data
func Open(path string) (*Template, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	for _, sheet := range rockprops.SHEET_NAMES {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			f.Close()
			return nil, fmt.Errorf("%s: template is missing the '%s' sheet", path, sheet)
		}
	}

	return &Template{file: f, next: make(map[string]int)}, nil
}

func (t *Template) Close() error {
	return t.file.Close()
}

// Every template sheet comes with hints below the header region.
// Deletes all rows after the first headerRows in each sheet used to load SMR data
func (t *Template) RemoveHints(headerRows int) error {
	for _, sheet := range rockprops.SHEET_NAMES {
		rows, err := t.file.GetRows(sheet)
		if err != nil {
			return err
		}

		// Bottom-up, so row numbers don't shift while deleting
		for row := len(rows); row > headerRows; row-- {
			if err := t.file.RemoveRow(sheet, row); err != nil {
				return err
			}
		}

		t.next[sheet] = min(len(rows), headerRows) + 1
	}
	return nil
}

// Appends rows after the last row of the sheet
func (t *Template) Append(sheet string, rows [][]any) error {
	next, ok := t.next[sheet]
	if !ok {
		existing, err := t.file.GetRows(sheet)
		if err != nil {
			return err
		}
		next = len(existing) + 1
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, next)
		if err != nil {
			return err
		}
		if err := t.file.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("%s row %v: %w", sheet, next, err)
		}
		next++
	}

	t.next[sheet] = next
	return nil
}

// Appends the rows of every populated sheet
func (t *Template) Write(sheets *rockprops.Sheets) error {
	for _, sheet := range rockprops.SHEET_NAMES {
		rows := sheets.Rows(sheet)
		if err := t.Append(sheet, rows); err != nil {
			return err
		}
		slog.Info(fmt.Sprintf("%s current row count: %v", sheet, t.next[sheet]-1))
	}
	return nil
}

// Saves the workbook, replacing any existing file at path
func (t *Template) SaveAs(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		slog.Info("Deleting existing SMR ROCKPROPS loading workbook " + path)
		if err := os.Remove(path); err != nil {
			return err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	slog.Info("Saving SMR ROCKPROPS loading workbook to " + path)
	return t.file.SaveAs(path)
}

// Writes the populated sheets into a fresh copy of the template
func Populate(templatePath, outputPath string, headerRows int, sheets *rockprops.Sheets) error {
	template, err := Open(templatePath)
	if err != nil {
		return err
	}
	defer template.Close()

	if err := template.RemoveHints(headerRows); err != nil {
		return err
	}
	if err := template.Write(sheets); err != nil {
		return err
	}
	return template.SaveAs(outputPath)
}
