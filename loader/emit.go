package loader

import (
	"errors"
	"fmt"
	"time"

	"github.com/rickb777/period"

	"smrload/config"
	"smrload/rockprops"
	"smrload/smr"
)

// Builds the rows of the ROCKPROPS template for SMR sites.
// Each emitter returns new rows and never touches the rows of other sheets
type Loader struct {
	config       *config.Config
	confidential period.Period
}

func New(config *config.Config) (*Loader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Validate already checked that it parses
	confidential, _ := config.ConfidentialPeriod()
	return &Loader{config: config, confidential: confidential}, nil
}

// SECTION INTERVAL COLLECTION row of the site
func (l *Loader) Collection(site *smr.Site) (rockprops.Collection, error) {
	if site.Name == "" {
		return rockprops.Collection{}, errors.New("site without a measured section name")
	}

	return rockprops.Collection{
		Eno:           site.Eno,
		SectionName:   site.Name,
		DepthRefPoint: site.DepthRefPoint,
		Name:          site.Name + l.config.Collection.NameSuffix,
		Type:          l.config.Collection.Type,
		Originator:    l.config.Collection.Originator,
		Preferred:     l.config.Collection.Preferred,
	}, nil
}

// Returns the leading records that can be loaded. Records must be sorted by
// increasing depth: the first one ending below the max depth stops the site,
// even if later records are shallower
func (l *Loader) Retained(records []smr.Record) []smr.Record {
	for i, record := range records {
		if int(record.DepthTo) > l.config.MaxDepth {
			return records[:i]
		}
	}
	return records
}

// Formatted as "{site}_{from}-{to}m", with depths truncated to whole metres
func IntervalID(record *smr.Record) string {
	return fmt.Sprintf("%s_%d-%dm", record.SiteName, int(record.DepthFrom), int(record.DepthTo))
}

// SECTION INTERVALS row of a depth bin
func (l *Loader) Interval(collection string, record *smr.Record) rockprops.Interval {
	return rockprops.Interval{
		CollectionName: collection,
		ID:             IntervalID(record),
		DepthFrom:      record.DepthFrom,
		DepthTo:        record.DepthTo,
		Unit:           l.config.Intervals.Unit,
	}
}

// Formatted as "{site}_L{n}", where n is the 1-based position of the depth bin in the site
func SampleID(site string, index int) string {
	return fmt.Sprintf("%s_L%d", site, index+1)
}

// SAMPLES row of the depth bin at the given 0-based position of the site
func (l *Loader) Sample(site *smr.Site, collection, intervalID string, index int) rockprops.Sample {
	cfg := &l.config.Samples
	return rockprops.Sample{
		Eno:               site.Eno,
		CollectionName:    collection,
		IntervalID:        intervalID,
		ID:                SampleID(site.Name, index),
		AcquisitionDate:   site.AcquisitionDate,
		ANO:               cfg.ANO,
		AccessCode:        cfg.AccessCode,
		ConfidentialUntil: l.confidentialUntil(site.AcquisitionDate),
		QAStatus:          cfg.QAStatus,
		ActivityCode:      cfg.ActivityCode,
		SampleType:        cfg.SampleType,
		SamplingMethod:    cfg.SamplingMethod,
		MaterialClass:     cfg.MaterialClass,
		ProjectNo:         cfg.ProjectNo,
	}
}

func (l *Loader) confidentialUntil(acquired time.Time) *time.Time {
	if l.confidential.IsZero() {
		return nil
	}
	until, _ := l.confidential.AddTo(acquired)
	return &until
}

// SCALAR PROPERTIES rows of a sample, one per percentile band, low to high
func (l *Loader) ScalarProperties(sampleID string, record *smr.Record) []rockprops.ScalarProperty {
	cfg := &l.config.ScalarProperties

	props := make([]rockprops.ScalarProperty, 0, len(rockprops.Bands))
	for _, band := range rockprops.Bands {
		props = append(props, rockprops.ScalarProperty{
			SampleID:            sampleID,
			Band:                band,
			AccessCode:          cfg.AccessCode,
			QAStatus:            cfg.QAStatus,
			Originator:          cfg.Originator,
			SourceType:          cfg.SourceType,
			Source:              cfg.Source,
			LoadApproved:        cfg.LoadApproved,
			ProcessType:         cfg.ProcessType,
			Property:            cfg.Property,
			Value:               rockprops.Measurement(record.Value(band), l.config.ValueDecimals, l.config.NullValue),
			Unit:                cfg.Unit,
			Vocabulary:          l.config.Bands.For(band),
			NumericalConfidence: cfg.NumericalConfidence,
			MetadataQuality:     cfg.MetadataQuality,
			SummaryConfidence:   cfg.SummaryConfidence,
		})
	}
	return props
}
