package rockprops

import "time"

// Worksheet names in the Measure_Section-Samples-downhole intervals-rockprops template
const (
	COLLECTION_SHEET = "SECTION INTERVAL COLLECTION"
	INTERVALS_SHEET  = "SECTION INTERVALS"
	SAMPLES_SHEET    = "SAMPLES"
	SCALAR_SHEET     = "SCALAR PROPERTIES"
)

// Sheets populated by the loader, in the order they depend on each other
var SHEET_NAMES = []string{COLLECTION_SHEET, INTERVALS_SHEET, SAMPLES_SHEET, SCALAR_SHEET}

// Struct mimicking a row of the `SECTION INTERVAL COLLECTION` sheet
type Collection struct {
	// Measured section "entity number"
	Eno int
	// Name of the measured section (the SMR site)
	SectionName string
	// Primary key of the measured section's depth reference point, usually ground level
	DepthRefPoint int
	Name          string
	Type          string
	Originator    int
	Preferred     string
}

func (c *Collection) ToRow() []any {
	return []any{
		c.Eno,
		c.SectionName,
		c.DepthRefPoint,
		"", // Interval collection id
		c.Name,
		c.Type,
		c.Originator,
		c.Preferred,
		"", // Collection source document id
		"", // Source comments
	}
}

// Struct mimicking a row of the `SECTION INTERVALS` sheet
type Interval struct {
	CollectionName string
	ID             string
	DepthFrom      float64
	DepthTo        float64
	Unit           string
}

func (i *Interval) ToRow() []any {
	return []any{
		"", // Collection no.
		i.CollectionName,
		"", // Interval no.
		i.ID,
		i.DepthFrom,
		i.DepthTo,
		i.Unit,
	}
}

// Struct mimicking a row of the `SAMPLES` sheet
type Sample struct {
	Eno             int
	CollectionName  string
	IntervalID      string
	ID              string
	AcquisitionDate time.Time
	ANO             int
	AccessCode      string
	// Left blank when nil
	ConfidentialUntil *time.Time
	QAStatus          string
	ActivityCode      string
	SampleType        string
	SamplingMethod    string
	MaterialClass     string
	ProjectNo         int
}

func (s *Sample) ToRow() []any {
	return []any{
		s.Eno,
		s.CollectionName,
		"", // Intervalno
		"", // Sampleno
		s.IntervalID,
		s.ID,
		s.AcquisitionDate,
		"", // Parent sampleno
		"", // Parent sample id
		s.ANO,
		s.AccessCode,
		optionalDate(s.ConfidentialUntil),
		s.QAStatus,
		s.ActivityCode,
		s.SampleType,
		s.SamplingMethod,
		s.MaterialClass,
		"", // Procedure no
		s.ProjectNo,
		"", // Refid
		"", // Other id
		"", // Specimen storage location
		"", // Storage date
		"", // Comments about specimen or observation
		"", // ISGN
		"", // Specimen mass
		"", // Mass UOM
		"", // Source
	}
}

// Struct mimicking a row of the `SCALAR PROPERTIES` sheet
type ScalarProperty struct {
	SampleID            string
	Band                Band
	AccessCode          string
	QAStatus            string
	Originator          int
	SourceType          string
	Source              string
	LoadApproved        string
	ProcessType         int
	Property            string
	Value               float64
	Unit                string
	Vocabulary          Vocabulary
	NumericalConfidence string
	MetadataQuality     string
	SummaryConfidence   string
}

func (p *ScalarProperty) ToRow() []any {
	return []any{
		p.SampleID,
		"", // Sample number
		"", // Resultno
		"", // Resultid
		p.AccessCode,
		"", // Confidential until date
		p.QAStatus,
		p.Originator,
		p.SourceType,
		p.Source,
		p.LoadApproved,
		p.ProcessType,
		p.Property,
		p.Value,
		p.Unit,
		p.Vocabulary.Qualifier,
		p.Vocabulary.UncertaintyType,
		p.Vocabulary.UncertaintyValue,
		p.Vocabulary.UncertaintyUnit,
		"", // Result date/time
		"", // Observation location
		p.Vocabulary.Remarks,
		p.NumericalConfidence,
		p.MetadataQuality,
		p.SummaryConfidence,
	}
}

func optionalDate(t *time.Time) any {
	if t == nil {
		return ""
	}
	return *t
}

// Rows for all the populated sheets
type Sheets struct {
	Collections      []Collection
	Intervals        []Interval
	Samples          []Sample
	ScalarProperties []ScalarProperty
}

// Appends the rows of other after the rows already present
func (s *Sheets) Extend(other *Sheets) {
	s.Collections = append(s.Collections, other.Collections...)
	s.Intervals = append(s.Intervals, other.Intervals...)
	s.Samples = append(s.Samples, other.Samples...)
	s.ScalarProperties = append(s.ScalarProperties, other.ScalarProperties...)
}

// Template rows of the given sheet
func (s *Sheets) Rows(sheet string) [][]any {
	var rows [][]any
	switch sheet {
	case COLLECTION_SHEET:
		rows = make([][]any, len(s.Collections))
		for i := range s.Collections {
			rows[i] = s.Collections[i].ToRow()
		}
	case INTERVALS_SHEET:
		rows = make([][]any, len(s.Intervals))
		for i := range s.Intervals {
			rows[i] = s.Intervals[i].ToRow()
		}
	case SAMPLES_SHEET:
		rows = make([][]any, len(s.Samples))
		for i := range s.Samples {
			rows[i] = s.Samples[i].ToRow()
		}
	case SCALAR_SHEET:
		rows = make([][]any, len(s.ScalarProperties))
		for i := range s.ScalarProperties {
			rows[i] = s.ScalarProperties[i].ToRow()
		}
	}
	return rows
}
