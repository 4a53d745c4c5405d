package workbook

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"smrload/rockprops"
)

const headerRows = 5

var acquired = time.Date(2023, 5, 17, 0, 0, 0, 0, time.UTC)

// Builds a template with headerRows of headers and a few hint rows in each sheet
func writeTemplate(t *testing.T, sheets []string, hints int) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheets[0]); err != nil {
		t.Fatal(err)
	}
	for _, sheet := range sheets[1:] {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatal(err)
		}
	}

	for _, sheet := range sheets {
		for row := 1; row <= headerRows+hints; row++ {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			value := "header"
			if row > headerRows {
				value = "hint"
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "template.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func testSheets() *rockprops.Sheets {
	return &rockprops.Sheets{
		Collections: []rockprops.Collection{{Eno: 1001, SectionName: "Site A", Name: "Site A water content profile"}},
		Intervals: []rockprops.Interval{
			{CollectionName: "Site A water content profile", ID: "Site A_0-1m", DepthFrom: 0, DepthTo: 1.5},
			{CollectionName: "Site A water content profile", ID: "Site A_1-3m", DepthFrom: 1.5, DepthTo: 3},
		},
		Samples: []rockprops.Sample{
			{ID: "Site A_L1", IntervalID: "Site A_0-1m", AcquisitionDate: acquired},
			{ID: "Site A_L2", IntervalID: "Site A_1-3m", AcquisitionDate: acquired},
		},
		ScalarProperties: []rockprops.ScalarProperty{
			{SampleID: "Site A_L1", Band: rockprops.Low, Value: 0.1},
			{SampleID: "Site A_L1", Band: rockprops.Median, Value: 0.2},
			{SampleID: "Site A_L1", Band: rockprops.High, Value: -99999},
		},
	}
}

func TestPopulate(t *testing.T) {
	template := writeTemplate(t, rockprops.SHEET_NAMES, 3)
	output := filepath.Join(t.TempDir(), "Outputs", "loader.xlsx")

	// Existing outputs get replaced
	if err := os.MkdirAll(filepath.Dir(output), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(output, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Populate(template, output, headerRows, testSheets()); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	type testCase struct {
		sheet string
		rows  int
		first string
	}

	cases := []testCase{
		{rockprops.COLLECTION_SHEET, 1, "1001"},
		{rockprops.INTERVALS_SHEET, 2, ""},
		{rockprops.SAMPLES_SHEET, 2, "0"},
		{rockprops.SCALAR_SHEET, 3, "Site A_L1"},
	}

	for _, c := range cases {
		rows, err := f.GetRows(c.sheet)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != headerRows+c.rows {
			t.Errorf("%s: got %v rows, wanted %v", c.sheet, len(rows), headerRows+c.rows)
			continue
		}
		for i, row := range rows[headerRows:] {
			if len(row) > 0 && row[0] == "hint" {
				t.Errorf("%s: hint left in row %v", c.sheet, headerRows+i+1)
			}
		}
		if first := cellOrEmpty(rows[headerRows], 0); first != c.first {
			t.Errorf("%s: got %q in the first data cell, wanted %q", c.sheet, first, c.first)
		}
	}

	intervalID, _ := f.GetCellValue(rockprops.INTERVALS_SHEET, "D7")
	if intervalID != "Site A_1-3m" {
		t.Errorf("Got %q, wanted 'Site A_1-3m'", intervalID)
	}
	value, _ := f.GetCellValue(rockprops.SCALAR_SHEET, "N8")
	if value != "-99999" {
		t.Errorf("Got %q, wanted -99999", value)
	}
}

func cellOrEmpty(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func TestOpenMissingSheet(t *testing.T) {
	template := writeTemplate(t, rockprops.SHEET_NAMES[:3], 0)
	if _, err := Open(template); err == nil {
		t.Error("Wanted an error for a template without the SCALAR PROPERTIES sheet")
	}
}

func TestAppendAfterShortHeader(t *testing.T) {
	path := writeTemplate(t, rockprops.SHEET_NAMES, 0)

	template, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer template.Close()

	// Header region larger than the sheet: rows go right after the last one
	if err := template.RemoveHints(headerRows + 2); err != nil {
		t.Fatal(err)
	}
	if err := template.Append(rockprops.SAMPLES_SHEET, [][]any{{"a"}, {"b"}}); err != nil {
		t.Fatal(err)
	}

	value, _ := template.file.GetCellValue(rockprops.SAMPLES_SHEET, "A7")
	if value != "b" {
		t.Errorf("Got %q, wanted 'b' in A7", value)
	}
}
