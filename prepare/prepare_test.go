package prepare

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"smrload/rockprops"
	"smrload/smr"
)

func TestDepthBins(t *testing.T) {
	to, err := DepthBins([]float64{0, 1, 2.5})
	if err != nil {
		t.Fatal(err)
	}

	expected := []float64{1, 2.5, 2.5 + 1.5*LAST_BIN_GROWTH}
	for i := range expected {
		if math.Abs(to[i]-expected[i]) > 1e-12 {
			t.Errorf("Bin %v: got %v, wanted %v", i, to[i], expected[i])
		}
	}

	if _, err := DepthBins([]float64{3}); err == nil {
		t.Error("Wanted an error for a single depth")
	}
}

func TestSiteName(t *testing.T) {
	cases := map[string]string{
		filepath.Join("results", "Site A_FID12_CI_results.csv"): "Site A",
		"Tanami-3_FID7_CI_results.csv":                          "Tanami-3",
		"NoFid_CI_results.csv":                                  "NoFid_CI_results.csv",
	}
	for input, expected := range cases {
		if got := SiteName(input); got != expected {
			t.Errorf("%s: got %v, wanted %v", input, got, expected)
		}
	}
}

func TestBuildAndWrite(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"depths.csv":                 "0\n1\n2.5\n",
		"Site B_FID2_CI_results.csv": "0.1,0.2,0.3\n0.11,0.21,0.31\n0.12,,0.32\n",
		"Site A_FID1_CI_results.csv": "0.4,0.5,0.6\n0.41,0.51,0.61\n0.42,0.52,0.62\n",
		"notes.txt":                  "not a result",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := ResultFiles(dir, "*CI_results.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("Got %v result files, wanted 2", len(results))
	}

	var sites []string
	records, err := Build(filepath.Join(dir, "depths.csv"), results, func(site string) { sites = append(sites, site) })
	if err != nil {
		t.Fatal(err)
	}

	if len(sites) != 2 || sites[0] != "Site A" || sites[1] != "Site B" {
		t.Errorf("Got %v, wanted Site A then Site B", sites)
	}
	if len(records) != 6 {
		t.Fatalf("Got %v records, wanted 6", len(records))
	}
	if records[1].SiteName != "Site A" || records[1].DepthFrom != 1 || records[1].DepthTo != 2.5 || records[1].P50 != 0.51 {
		t.Errorf("Got %+v, wanted Site A 1-2.5m with p50 0.51", records[1])
	}
	if !math.IsNaN(float64(records[5].P50)) {
		t.Errorf("Got %v, wanted NaN for the missing p50", records[5].P50)
	}

	// The written file is what the populate command reads
	output := filepath.Join(dir, "out", "registration.csv")
	if err := Write(output, records); err != nil {
		t.Fatal(err)
	}

	frame, err := smr.LoadFrame(output, rockprops.Percentiles{Low: "p5", Median: "p50", High: "p95"}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(frame) != 6 {
		t.Fatalf("Got %v records, wanted 6", len(frame))
	}
	last := frame[5]
	if last.SiteName != "Site B" || last.DepthTo != 4.05 || !math.IsNaN(last.Value(rockprops.Median)) {
		t.Errorf("Got %+v, wanted Site B ending at 4.05m with a missing median", last)
	}
}

func TestBuildMismatchedRows(t *testing.T) {
	dir := t.TempDir()
	depths := filepath.Join(dir, "depths.csv")
	results := filepath.Join(dir, "Site A_FID1_CI_results.csv")

	if err := os.WriteFile(depths, []byte("0\n1\n2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(results, []byte("0.1,0.2,0.3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Build(depths, []string{results}, nil); err == nil {
		t.Error("Wanted an error when result rows don't match the depths")
	}
	if _, err := Build(depths, nil, nil); err == nil {
		t.Error("Wanted an error without results files")
	}
}
