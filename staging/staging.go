package staging

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"smrload/rockprops"
)

const STAGING_ENV_VAR string = "SMR_STAGING_CONN_STRING"

const SCHEMA = "smr_staging"

//go:embed schema.sql
var schemaSQL string

// Subset of pgx.Tx used to load the staging tables
type Copier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Staging table mirroring a template sheet
type Table struct {
	Sheet   string
	Name    pgx.Identifier
	Columns []string
	Rows    [][]any
}

func (t *Table) LogStr() string {
	return fmt.Sprintf("[%s]: ", t.Name.Sanitize())
}

// Staging tables for the populated sheets, in load order
func Tables(sheets *rockprops.Sheets) []Table {
	collections := make([][]any, len(sheets.Collections))
	for i, c := range sheets.Collections {
		collections[i] = []any{c.Eno, c.SectionName, c.DepthRefPoint, c.Name, c.Type, c.Originator, c.Preferred}
	}

	intervals := make([][]any, len(sheets.Intervals))
	for i, s := range sheets.Intervals {
		intervals[i] = []any{s.CollectionName, s.ID, s.DepthFrom, s.DepthTo, s.Unit}
	}

	samples := make([][]any, len(sheets.Samples))
	for i, s := range sheets.Samples {
		samples[i] = []any{
			s.Eno, s.CollectionName, s.IntervalID, s.ID, s.AcquisitionDate, s.ANO, s.AccessCode,
			s.ConfidentialUntil, s.QAStatus, s.ActivityCode, s.SampleType, s.SamplingMethod,
			s.MaterialClass, s.ProjectNo,
		}
	}

	props := make([][]any, len(sheets.ScalarProperties))
	for i, p := range sheets.ScalarProperties {
		props[i] = []any{
			p.SampleID, p.Band.String(), p.AccessCode, p.QAStatus, p.Originator, p.SourceType,
			p.Source, p.LoadApproved, p.ProcessType, p.Property, p.Value, p.Unit,
			p.Vocabulary.Qualifier, p.Vocabulary.UncertaintyType, p.Vocabulary.UncertaintyValue,
			p.Vocabulary.UncertaintyUnit, p.Vocabulary.Remarks, p.NumericalConfidence,
			p.MetadataQuality, p.SummaryConfidence,
		}
	}

	return []Table{
		{
			Sheet: rockprops.COLLECTION_SHEET,
			Name:  pgx.Identifier{SCHEMA, "section_interval_collection"},
			Columns: []string{
				"eno", "section_name", "depth_ref_point", "collection_name", "collection_type",
				"originator", "preferred",
			},
			Rows: collections,
		},
		{
			Sheet:   rockprops.INTERVALS_SHEET,
			Name:    pgx.Identifier{SCHEMA, "section_intervals"},
			Columns: []string{"collection_name", "interval_id", "depth_from", "depth_to", "uom"},
			Rows:    intervals,
		},
		{
			Sheet: rockprops.SAMPLES_SHEET,
			Name:  pgx.Identifier{SCHEMA, "samples"},
			Columns: []string{
				"eno", "collection_name", "interval_id", "sample_id", "acquisition_date", "ano",
				"access_code", "confidential_until", "qa_status", "activity_code", "sample_type",
				"sampling_method", "material_class", "project_no",
			},
			Rows: samples,
		},
		{
			Sheet: rockprops.SCALAR_SHEET,
			Name:  pgx.Identifier{SCHEMA, "scalar_properties"},
			Columns: []string{
				"sample_id", "band", "access_code", "qa_status", "originator", "source_type", "source",
				"load_approved", "process_type", "petrophysical_property", "value", "uom",
				"result_qualifier", "uncertainty_type", "uncertainty_value", "uncertainty_uom",
				"remarks", "numerical_confidence", "metadata_quality", "summary_confidence",
			},
			Rows: props,
		},
	}
}

// Replaces the content of the staging tables with the given rows
func Load(ctx context.Context, pool *pgxpool.Pool, sheets *rockprops.Sheets) (int64, error) {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return 0, fmt.Errorf("could not create staging tables: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	count, err := copyTables(ctx, tx, Tables(sheets))
	if err != nil {
		return 0, err
	}

	return count, tx.Commit(ctx)
}

func copyTables(ctx context.Context, conn Copier, tables []Table) (total int64, err error) {
	for _, table := range tables {
		if _, err := conn.Exec(ctx, "TRUNCATE "+table.Name.Sanitize()); err != nil {
			return total, err
		}
	}

	for _, table := range tables {
		count, err := insertTable(ctx, conn, &table)
		if err != nil {
			return total, fmt.Errorf("%sfailed bulk insertion - %w", table.LogStr(), err)
		}
		total += count
	}
	return total, nil
}

func insertTable(ctx context.Context, conn Copier, table *Table) (int64, error) {
	size := len(table.Rows)
	count, err := conn.CopyFrom(ctx, table.Name, table.Columns, pgx.CopyFromRows(table.Rows))
	if err != nil {
		return count, err
	}

	logStr := table.LogStr() + fmt.Sprintf("%v/%v rows inserted", count, size)
	if int(count) != size {
		slog.Warn(logStr)
	} else {
		slog.Info(logStr)
	}
	return count, nil
}
