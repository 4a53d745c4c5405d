package smr

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Column names of the load configuration sheet
const (
	SECTION_NAME_COL = "Measured section name"
	ENO_COL          = "ENO"
	DEP_REF_COL      = "Dep ref point"
	ACQ_DATE_COL     = "Acq_date"
)

// Measured section details, which must already exist in ROCKPROPS
type Site struct {
	// Name of the SMR site
	Name string
	// Measured section "entity number"
	Eno int
	// Primary key of the measured section's depth reference point
	DepthRefPoint int
	// Date the SMR dataset was collected in the field
	AcquisitionDate time.Time
}

// Day first, like the load configuration sheets are filled in
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	time.DateOnly,
	time.DateTime,
	"02/01/2006 15:04:05",
	"2/1/2006 15:04",
	time.RFC3339,
}

// Reads the site metadata from the load configuration file. XLSX workbooks
// (first sheet, unless sheet is set) and CSV files are supported.
func LoadSites(path, sheet string) ([]Site, error) {
	var rows []map[string]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbookTable(path, sheet)
	case ".csv":
		rows, err = readCSVTable(path)
	default:
		err = errors.New("unsupported site metadata format, expected .xlsx or .csv")
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	sites := make([]Site, 0, len(rows))
	for i, row := range rows {
		site, err := parseSite(row)
		if err != nil {
			return nil, fmt.Errorf("%s: row %v: %w", path, i+2, err)
		}
		sites = append(sites, site)
	}

	slog.Info(fmt.Sprintf("Read metadata of %v sites from %s", len(sites), path))
	return sites, nil
}

func readCSVTable(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readTable(file)
}

func readWorkbookTable(path, sheet string) ([]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	// Raw values, so dates come back as serial numbers instead of whatever
	// number format the cell happens to use
	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("sheet '%s' is empty", sheet)
	}

	header := cells[0]
	var rows []map[string]string
	for _, line := range cells[1:] {
		if isBlank(line) {
			continue
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if i < len(line) {
				row[name] = line[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseSite(row map[string]string) (Site, error) {
	if err := requireColumns(row, SECTION_NAME_COL, ENO_COL, DEP_REF_COL, ACQ_DATE_COL); err != nil {
		return Site{}, err
	}

	site := Site{Name: strings.TrimSpace(row[SECTION_NAME_COL])}
	if site.Name == "" {
		return site, fmt.Errorf("empty '%s'", SECTION_NAME_COL)
	}

	var err error
	if site.Eno, err = parseInt(row[ENO_COL]); err != nil {
		return site, fmt.Errorf("%s: %w", ENO_COL, err)
	}
	if site.DepthRefPoint, err = parseInt(row[DEP_REF_COL]); err != nil {
		return site, fmt.Errorf("%s: %w", DEP_REF_COL, err)
	}
	if site.AcquisitionDate, err = ParseDate(row[ACQ_DATE_COL]); err != nil {
		return site, fmt.Errorf("%s: %w", ACQ_DATE_COL, err)
	}
	return site, nil
}

// Integer cells read from workbooks can come back as "1234.0"
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("expected an integer, got %q", s)
	}
	return int(f), nil
}

// Parses a day-first date or an Excel serial day number
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("missing date")
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return excelize.ExcelDateToTime(serial, false)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q, expected a day-first date like 17/05/2023", s)
}
