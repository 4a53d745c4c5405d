package loader

import (
	"fmt"
	"log/slog"

	"smrload/rockprops"
	"smrload/smr"
)

// Emits the rows of every sheet for a single site.
// records are the site's processed SMR results, sorted by increasing depth
func (l *Loader) Site(site *smr.Site, records []smr.Record) (*rockprops.Sheets, error) {
	collection, err := l.Collection(site)
	if err != nil {
		return nil, err
	}

	retained := l.Retained(records)
	sheets := &rockprops.Sheets{
		Collections:      []rockprops.Collection{collection},
		Intervals:        make([]rockprops.Interval, 0, len(retained)),
		Samples:          make([]rockprops.Sample, 0, len(retained)),
		ScalarProperties: make([]rockprops.ScalarProperty, 0, len(retained)*len(rockprops.Bands)),
	}

	for i := range retained {
		record := &retained[i]

		interval := l.Interval(collection.Name, record)
		sample := l.Sample(site, collection.Name, interval.ID, i)

		sheets.Intervals = append(sheets.Intervals, interval)
		sheets.Samples = append(sheets.Samples, sample)
		sheets.ScalarProperties = append(sheets.ScalarProperties, l.ScalarProperties(sample.ID, record)...)
	}

	if dropped := len(records) - len(retained); dropped > 0 {
		slog.Info(fmt.Sprintf("%s: %v depth bins past %vm not loaded", site.Name, dropped, l.config.MaxDepth))
	}
	return sheets, nil
}

// Called after each site is processed
type Progress func(site *smr.Site, sheets *rockprops.Sheets)

// Populates the sheets for every site, in input order. The first error aborts the whole load
func (l *Loader) Populate(sites []smr.Site, frame smr.Frame, progress Progress) (*rockprops.Sheets, error) {
	var sheets rockprops.Sheets

	for i := range sites {
		site := &sites[i]
		slog.Info("Processing data for site: " + site.Name)

		siteSheets, err := l.Site(site, frame.Site(site.Name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", site.Name, err)
		}

		if len(siteSheets.Samples) == 0 {
			slog.Warn(site.Name + ": no SMR results found for this site")
		}
		slog.Info(fmt.Sprintf(
			"%s: %v intervals, %v samples, %v scalar properties",
			site.Name, len(siteSheets.Intervals), len(siteSheets.Samples), len(siteSheets.ScalarProperties),
		))

		sheets.Extend(siteSheets)
		if progress != nil {
			progress(site, siteSheets)
		}
	}

	return &sheets, nil
}
