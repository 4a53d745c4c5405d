package prepare

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"smrload/smr"
)

// The last depth bin is open-ended, its thickness is extrapolated from the
// previous bin by this factor
const LAST_BIN_GROWTH = 1.028

// Suffix after the site name in credible interval result file names
const SITE_NAME_CUTOFF = "_FID"

// Returns the bottom of each depth bin, given the top of each bin
func DepthBins(from []float64) ([]float64, error) {
	if len(from) < 2 {
		return nil, fmt.Errorf("need at least two depths to build depth bins, got %v", len(from))
	}

	n := len(from)
	to := make([]float64, n)
	copy(to, from[1:])
	to[n-1] = to[n-2] + (from[n-1]-from[n-2])*LAST_BIN_GROWTH
	return to, nil
}

// Site name encoded in a results file name like "Site A_FID12_CI_results.csv"
func SiteName(path string) string {
	name := filepath.Base(path)
	site, _, _ := strings.Cut(name, SITE_NAME_CUTOFF)
	return site
}

// Lists the results files in dir, sorted by name
func ResultFiles(dir, pattern string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Combines the shared depths with the results file of one site
func SiteRecords(site string, from, to []float64, results []smr.CIResult) ([]smr.RawRecord, error) {
	if len(results) != len(from) {
		return nil, fmt.Errorf("%s: got %v result rows for %v depths", site, len(results), len(from))
	}

	records := make([]smr.RawRecord, len(results))
	for i, r := range results {
		records[i] = smr.RawRecord{
			SiteName:  site,
			DepthFrom: from[i],
			DepthTo:   to[i],
			P5:        r.P5,
			P50:       r.P50,
			P95:       r.P95,
		}
	}
	return records, nil
}

// Reads the depths file and every results file, returning the SMR registration records.
// onFile, if not nil, is called after each results file is read
func Build(depthsPath string, files []string, onFile func(site string)) ([]smr.RawRecord, error) {
	depths, err := smr.ReadHeaderlessCSVFile[smr.Depth](depthsPath)
	if err != nil {
		return nil, err
	}

	from := make([]float64, len(depths))
	for i, d := range depths {
		from[i] = d.From
	}

	to, err := DepthBins(from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", depthsPath, err)
	}

	if len(files) == 0 {
		return nil, errors.New("no credible interval results files found")
	}

	var records []smr.RawRecord
	for _, file := range files {
		site := SiteName(file)

		results, err := smr.ReadHeaderlessCSVFile[smr.CIResult](file)
		if err != nil {
			return nil, err
		}

		siteRecords, err := SiteRecords(site, from, to, results)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		records = append(records, siteRecords...)

		if onFile != nil {
			onFile(site)
		}
	}
	return records, nil
}
