package rockprops

import "fmt"

// Bayesian percentile band of a posterior water content distribution
type Band int

const (
	Low Band = iota
	Median
	High
)

// Every band, in the order scalar properties are emitted
var Bands = [...]Band{Low, Median, High}

// Database terminology for the band
func (b Band) String() string {
	switch b {
	case Low:
		return "BAYESIAN_LOW"
	case Median:
		return "BAYESIAN_MEDIAN"
	case High:
		return "BAYESIAN_HIGH"
	}
	return fmt.Sprintf("Band(%d)", int(b))
}

// ROCKPROPS vocabulary describing a single percentile band
type Vocabulary struct {
	Qualifier        string  `yaml:"result_qualifier"`
	UncertaintyType  string  `yaml:"uncertainty_type"`
	UncertaintyValue float64 `yaml:"uncertainty_value"`
	UncertaintyUnit  string  `yaml:"uncertainty_uom"`
	Remarks          string  `yaml:"remarks"`
}

// One entry per band. Named fields instead of a map, so a table can't be
// missing a band
type BandTable struct {
	Low    Vocabulary `yaml:"low"`
	Median Vocabulary `yaml:"median"`
	High   Vocabulary `yaml:"high"`
}

func (t *BandTable) For(b Band) Vocabulary {
	switch b {
	case Low:
		return t.Low
	case Median:
		return t.Median
	case High:
		return t.High
	}
	panic("unknown percentile band " + b.String())
}

// Maps the percentile labels found in the input data to bands
type Percentiles struct {
	Low    string `yaml:"low"`
	Median string `yaml:"median"`
	High   string `yaml:"high"`
}

func (p *Percentiles) Column(b Band) string {
	switch b {
	case Low:
		return p.Low
	case Median:
		return p.Median
	case High:
		return p.High
	}
	panic("unknown percentile band " + b.String())
}
