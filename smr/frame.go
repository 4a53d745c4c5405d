package smr

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"smrload/rockprops"
)

// Processed SMR results for one depth bin of a site
type Record struct {
	SiteName  string
	DepthFrom float64
	DepthTo   float64
	// Indexed by rockprops.Band, NaN when missing
	Values [len(rockprops.Bands)]float64
}

func (r *Record) Value(b rockprops.Band) float64 {
	return r.Values[b]
}

// All the processed SMR records, in file order
type Frame []Record

// Returns the subset of records relevant to the site, preserving their order.
// Position i in the returned slice is the record's sequence index for the site
func (f Frame) Site(name string) []Record {
	var records []Record
	for _, r := range f {
		if r.SiteName == name {
			records = append(records, r)
		}
	}
	return records
}

// Reads a CSV file containing processed SMR data with the columns
//
//	site_name, depth_from, depth_to, <low>, <median>, <high>
//
// where the last three are the percentile labels of the translation table.
// Depths are rounded up to the given number of decimals (centimetre precision
// for ROCKPROPS). No rows are filtered out here.
func LoadFrame(path string, percentiles rockprops.Percentiles, depthDecimals int) (Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := readTable(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	columns := []string{"site_name", "depth_from", "depth_to"}
	for _, band := range rockprops.Bands {
		columns = append(columns, percentiles.Column(band))
	}

	frame := make(Frame, 0, len(rows))
	for i, row := range rows {
		// Line 1 is the header
		line := i + 2

		if err := requireColumns(row, columns...); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		record := Record{SiteName: row["site_name"]}

		if record.DepthFrom, err = parseDepth(row["depth_from"], depthDecimals); err != nil {
			return nil, fmt.Errorf("%s:%v: depth_from: %w", path, line, err)
		}
		if record.DepthTo, err = parseDepth(row["depth_to"], depthDecimals); err != nil {
			return nil, fmt.Errorf("%s:%v: depth_to: %w", path, line, err)
		}

		for _, band := range rockprops.Bands {
			label := percentiles.Column(band)
			if record.Values[band], err = parsePercentile(row[label]); err != nil {
				return nil, fmt.Errorf("%s:%v: %s: %w", path, line, label, err)
			}
		}

		frame = append(frame, record)
	}

	slog.Info(fmt.Sprintf("Read %v SMR records from %s", len(frame), path))
	return frame, nil
}

func parseDepth(s string, decimals int) (float64, error) {
	depth, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(depth) || math.IsInf(depth, 0) {
		return 0, fmt.Errorf("depth must be a finite number, got %q", s)
	}
	return rockprops.RoundUp(depth, decimals), nil
}
