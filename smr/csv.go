package smr

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
)

var ErrMissingColumn = errors.New("missing column")

// Loads a CSV file where records (lines) are described by type T
func ReadCSVFile[T any](filename string) ([]T, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []T
	if err = gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return records, nil
}

// Loads a header-less CSV file, columns are matched to the fields of T by position
func ReadHeaderlessCSVFile[T any](filename string) ([]T, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []T
	if err = gocsv.UnmarshalWithoutHeaders(file, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return records, nil
}

// Reads a CSV with a header into one map per line, keyed by column name
func readTable(in io.Reader) ([]map[string]string, error) {
	return gocsv.CSVToMaps(in)
}

func requireColumns(row map[string]string, columns ...string) error {
	for _, col := range columns {
		if _, ok := row[col]; !ok {
			return fmt.Errorf("%w '%s'", ErrMissingColumn, col)
		}
	}
	return nil
}

// Percentile value that is NaN when missing. Empty cells, "nan" and "NaN" are
// all written for missing values by the upstream tools
type Percentile float64

func (p *Percentile) UnmarshalCSV(s string) error {
	value, err := parsePercentile(s)
	*p = Percentile(value)
	return err
}

func (p Percentile) MarshalCSV() (string, error) {
	if math.IsNaN(float64(p)) {
		return "", nil
	}
	return strconv.FormatFloat(float64(p), 'f', -1, 64), nil
}

func parsePercentile(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	// ParseFloat also accepts "nan" and "NaN"
	return strconv.ParseFloat(s, 64)
}
