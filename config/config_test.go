package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "load.yaml")
	content := `
max_depth: 80
percentiles:
  low: P05
samples:
  confidential_period: P2Y
paths:
  output_dir: ./out
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if config.MaxDepth != 80 {
		t.Errorf("Got max depth %v, wanted 80", config.MaxDepth)
	}
	if config.Percentiles.Low != "P05" || config.Percentiles.Median != "p50" {
		t.Errorf("Got percentiles %+v, wanted P05 with default median", config.Percentiles)
	}
	if config.NullValue != -99999 {
		t.Errorf("Got null value %v, wanted default -99999", config.NullValue)
	}

	offset, err := config.ConfidentialPeriod()
	if err != nil {
		t.Fatal(err)
	}
	acquired := time.Date(2023, 5, 17, 0, 0, 0, 0, time.UTC)
	until, ok := offset.AddTo(acquired)
	if !ok || !until.Equal(time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Got %v, wanted 2025-05-17", until)
	}
}

func TestValidate(t *testing.T) {
	type testCase struct {
		tag    string
		modify func(*Config)
	}

	cases := []testCase{
		{"zero max depth", func(c *Config) { c.MaxDepth = 0 }},
		{"negative decimals", func(c *Config) { c.ValueDecimals = -1 }},
		{"missing percentile", func(c *Config) { c.Percentiles.High = "" }},
		{"duplicate percentile", func(c *Config) { c.Percentiles.High = c.Percentiles.Low }},
		{"bad period", func(c *Config) { c.Samples.ConfidentialPeriod = "two years" }},
	}

	for _, c := range cases {
		config := Default()
		c.modify(&config)
		if err := config.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: got %v, wanted ErrInvalid", c.tag, err)
		}
	}
}

func TestOutputPath(t *testing.T) {
	config := Default()

	path, err := config.OutputPath("final")
	if err != nil {
		t.Fatal(err)
	}
	if expected := filepath.Join("Outputs", config.Paths.FinalOutput); path != expected {
		t.Errorf("Got %v, wanted %v", path, expected)
	}

	if _, err := config.OutputPath("prod"); !errors.Is(err, ErrInvalid) {
		t.Errorf("Got %v, wanted ErrInvalid", err)
	}
}
