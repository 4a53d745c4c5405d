package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rickb777/period"
	"gopkg.in/yaml.v3"

	"smrload/rockprops"
)

var ErrInvalid = errors.New("invalid configuration")

// Everything that won't change in a data load, sorted by the template sheet it ends up in
type Config struct {
	// Written in place of missing measurements
	NullValue float64 `yaml:"null_value"`
	// Depth (in metres) past which intervals of a site are no longer loaded
	MaxDepth      int `yaml:"max_depth"`
	DepthDecimals int `yaml:"depth_decimals"`
	ValueDecimals int `yaml:"value_decimals"`
	// Every sheet of the template has header information up to this row, inclusive
	HeaderRows int `yaml:"header_rows"`

	// Translation from bayesian percentile labels in the input data to bands
	Percentiles rockprops.Percentiles `yaml:"percentiles"`
	Bands       rockprops.BandTable   `yaml:"bands"`

	Collection       Collection       `yaml:"collection"`
	Intervals        Intervals        `yaml:"intervals"`
	Samples          Samples          `yaml:"samples"`
	ScalarProperties ScalarProperties `yaml:"scalar_properties"`

	Paths Paths `yaml:"paths"`
}

// SECTION INTERVAL COLLECTION sheet
type Collection struct {
	NameSuffix string `yaml:"name_suffix"`
	Type       string `yaml:"type"`
	Originator int    `yaml:"originator"`
	Preferred  string `yaml:"preferred"`
}

// SECTION INTERVALS sheet
type Intervals struct {
	Unit string `yaml:"unit"`
}

// SAMPLES sheet
type Samples struct {
	ANO            int    `yaml:"ano"`
	AccessCode     string `yaml:"access_code"`
	QAStatus       string `yaml:"qa_status"`
	ActivityCode   string `yaml:"activity_code"`
	SampleType     string `yaml:"sample_type"`
	SamplingMethod string `yaml:"sampling_method"`
	MaterialClass  string `yaml:"material_class"`
	ProjectNo      int    `yaml:"project_no"`
	// ISO 8601 period (e.g. "P2Y") added to the acquisition date to fill the
	// "confidential until" column. Left blank if empty
	ConfidentialPeriod string `yaml:"confidential_period"`
}

// SCALAR PROPERTIES sheet
type ScalarProperties struct {
	AccessCode          string `yaml:"access_code"`
	QAStatus            string `yaml:"qa_status"`
	Originator          int    `yaml:"originator"`
	SourceType          string `yaml:"source_type"`
	Source              string `yaml:"source"`
	LoadApproved        string `yaml:"load_approved"`
	ProcessType         int    `yaml:"process_type"`
	Property            string `yaml:"petrophysical_property"`
	Unit                string `yaml:"uom"`
	NumericalConfidence string `yaml:"numerical_confidence"`
	MetadataQuality     string `yaml:"metadata_quality"`
	SummaryConfidence   string `yaml:"summary_confidence"`
}

// Input and output locations
type Paths struct {
	Template     string `yaml:"template"`
	Metadata     string `yaml:"metadata"`
	Measurements string `yaml:"measurements"`
	OutputDir    string `yaml:"output_dir"`
	TestOutput   string `yaml:"test_output"`
	FinalOutput  string `yaml:"final_output"`
}

const bayesianRemarks = "Water content and uncertainty inferred from inverting SMR data using Bayesian probabilistic methods."
const credibleIntervalRemarks = "Water content and uncertainty inferred from inverting SMR data using Bayesian probabilistic methods. " +
	"The credible interval (u) is 90%, where u = high - low."

// Constants of the 2022-2023 SMR load
func Default() Config {
	return Config{
		NullValue:     -99999,
		MaxDepth:      100,
		DepthDecimals: 2,
		ValueDecimals: 4,
		HeaderRows:    5,
		Percentiles: rockprops.Percentiles{
			Low:    "p5",
			Median: "p50",
			High:   "p95",
		},
		Bands: rockprops.BandTable{
			Low: rockprops.Vocabulary{
				Qualifier:        "Bayesian low",
				UncertaintyType:  "Bayesian posterior inferred percentile point",
				UncertaintyValue: 5,
				UncertaintyUnit:  "percent",
				Remarks:          credibleIntervalRemarks,
			},
			Median: rockprops.Vocabulary{
				Qualifier:        "Bayesian median",
				UncertaintyType:  "Bayesian posterior inferred percentile point",
				UncertaintyValue: 50,
				UncertaintyUnit:  "percent",
				Remarks:          bayesianRemarks,
			},
			High: rockprops.Vocabulary{
				Qualifier:        "Bayesian high",
				UncertaintyType:  "Bayesian posterior inferred percentile point",
				UncertaintyValue: 95,
				UncertaintyUnit:  "percent",
				Remarks:          credibleIntervalRemarks,
			},
		},
		Collection: Collection{
			NameSuffix: " water content profile",
			Type:       "hydrogeological",
			Originator: 484, // K.P. Tan
			Preferred:  "Y",
		},
		Intervals: Intervals{
			Unit: "metre",
		},
		Samples: Samples{
			ANO:            228, // Generic GA ANO
			AccessCode:     "A",
			QAStatus:       "C",
			ActivityCode:   "A",
			SampleType:     "observation only",
			SamplingMethod: "field mapping survey",
			MaterialClass:  "groundwater",
			ProjectNo:      576,
		},
		ScalarProperties: ScalarProperties{
			AccessCode: "A",
			// NOTE: the previous loads used the SAMPLES QA status here
			QAStatus:     "C",
			Originator:   484, // K.P. Tan
			SourceType:   "GA NAS",
			Source:       `\\prod.lan\active\proj\futurex\DCD\Data\Processed\Geophysics\SMR\results`,
			LoadApproved: "Y",
			// "Determination of total water content with Surface NMR apparatus"
			ProcessType:         17475995,
			Property:            "water content",
			Unit:                "volume fraction",
			NumericalConfidence: "moderate confidence",
			MetadataQuality:     "high quality",
			SummaryConfidence:   "high confidence",
		},
		Paths: Paths{
			Template:     filepath.Join("Templates", "Measure_Section-Samples-downhole intervals-rockprops_2023.10.XLSX"),
			Metadata:     filepath.Join("Config", "SMR_May2024_load_config_reprocessed.xlsx"),
			Measurements: "SMR_data_for_registration-8April2024.csv",
			OutputDir:    "Outputs",
			TestOutput:   "Test_ROCKPROPS_UDF_SMR_loader_May2024.XLSX",
			FinalOutput:  "ROCKPROPS_reloader_UDF_SMR_acquired_2022-2023.XLSX",
		},
	}
}

// Returns the default configuration overlaid with the values found in the YAML file.
// Keys missing from the file keep their default value
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(b, &config); err != nil {
		return config, fmt.Errorf("could not parse %s: %w", path, err)
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max_depth must be positive, got %v", ErrInvalid, c.MaxDepth)
	}
	if c.DepthDecimals < 0 || c.ValueDecimals < 0 {
		return fmt.Errorf("%w: decimals can't be negative", ErrInvalid)
	}
	if c.HeaderRows < 0 {
		return fmt.Errorf("%w: header_rows can't be negative", ErrInvalid)
	}

	seen := make(map[string]bool, len(rockprops.Bands))
	for _, band := range rockprops.Bands {
		label := c.Percentiles.Column(band)
		if label == "" {
			return fmt.Errorf("%w: missing percentile label for %v", ErrInvalid, band)
		}
		if seen[label] {
			return fmt.Errorf("%w: percentile label %q used more than once", ErrInvalid, label)
		}
		seen[label] = true
	}

	if _, err := c.ConfidentialPeriod(); err != nil {
		return fmt.Errorf("%w: confidential_period: %s", ErrInvalid, err)
	}
	return nil
}

// Parsed Samples.ConfidentialPeriod, zero if unset
func (c *Config) ConfidentialPeriod() (period.Period, error) {
	var zero period.Period
	if c.Samples.ConfidentialPeriod == "" {
		return zero, nil
	}
	return period.Parse(c.Samples.ConfidentialPeriod)
}

// Location of the output workbook for the given development stage ("test" or "final")
func (c *Config) OutputPath(stage string) (string, error) {
	switch stage {
	case "test":
		return filepath.Join(c.Paths.OutputDir, c.Paths.TestOutput), nil
	case "final":
		return filepath.Join(c.Paths.OutputDir, c.Paths.FinalOutput), nil
	}
	return "", fmt.Errorf("%w: stage must be 'test' or 'final', got %q", ErrInvalid, stage)
}
