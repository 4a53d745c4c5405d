package populate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/jackc/pgx/v5/pgxpool"

	conf "smrload/config"
	"smrload/loader"
	"smrload/rockprops"
	"smrload/smr"
	"smrload/staging"
	"smrload/utils"
	"smrload/workbook"
)

type Config struct {
	ConfigFile    string   `arg:"-c,--config" help:"Optional YAML file overriding the default load configuration"`
	Stage         string   `default:"test" help:"Development stage, either 'test' or 'final'. Picks the output file name"`
	Template      string   `arg:"-t,--template" help:"Location of the ROCKPROPS template workbook"`
	Metadata      string   `arg:"-m,--metadata" help:"Location of the site metadata (XLSX or CSV)"`
	MetadataSheet string   `help:"Sheet of the metadata workbook containing the site table. Defaults to the first sheet"`
	Measurements  string   `arg:"-i,--measurements" help:"Location of the SMR measurements CSV file"`
	OutputDir     string   `arg:"-o,--output-dir" help:"Directory the populated workbook is written to"`
	Sites         []string `arg:"-s" help:"Optional space separated list of site names"`
	Staging       bool     `help:"Also copy the populated rows to the staging database"`
	LogFile       bool     `help:"Write logs to a file instead of the terminal"`
}

func (Config) Description() string {
	return fmt.Sprintf(`Populate the four sheets of the ROCKPROPS template with SMR water content data.
The following environment variable needs to be set when using '--staging':
    - "%s"`, staging.STAGING_ENV_VAR)
}

func (config *Config) Execute() {
	if config.LogFile {
		utils.SetLogFile("smr", "populate")
	}

	if err := config.run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// Load configuration with the command line overrides applied
func (config *Config) loadConfig() (*conf.Config, error) {
	cfg, err := conf.Load(config.ConfigFile)
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		flag  string
		field *string
	}{
		{config.Template, &cfg.Paths.Template},
		{config.Metadata, &cfg.Paths.Metadata},
		{config.Measurements, &cfg.Paths.Measurements},
		{config.OutputDir, &cfg.Paths.OutputDir},
	}
	for _, o := range overrides {
		if o.flag != "" {
			*o.field = o.flag
		}
	}
	return &cfg, nil
}

func (config *Config) run() error {
	cfg, err := config.loadConfig()
	if err != nil {
		return err
	}

	output, err := cfg.OutputPath(config.Stage)
	if err != nil {
		return err
	}

	load, err := loader.New(cfg)
	if err != nil {
		return err
	}

	sites, err := smr.LoadSites(cfg.Paths.Metadata, config.MetadataSheet)
	if err != nil {
		return err
	}
	sites = filterSites(sites, config.Sites)
	if len(sites) == 0 {
		return errors.New("no sites to load")
	}

	frame, err := smr.LoadFrame(cfg.Paths.Measurements, cfg.Percentiles, cfg.DepthDecimals)
	if err != nil {
		return err
	}

	bar := utils.NewBar(len(sites), "sites")
	bar.RenderBlank()

	sheets, err := load.Populate(sites, frame, func(_ *smr.Site, _ *rockprops.Sheets) {
		bar.Add(1)
	})
	if err != nil {
		return err
	}

	if err := workbook.Populate(cfg.Paths.Template, output, cfg.HeaderRows, sheets); err != nil {
		return err
	}
	slog.Info("Populated template written to " + output)

	if !config.Staging {
		return nil
	}
	return stage(sheets)
}

// Keeps the sites whose names were requested, all of them if names is empty
func filterSites(sites []smr.Site, names []string) []smr.Site {
	if len(names) == 0 {
		return sites
	}

	reference := make([]string, len(sites))
	for i, s := range sites {
		reference[i] = s.Name
	}
	names = utils.FilterSlice(names, reference, "Site '%s' not present in the metadata, skipping")

	var out []smr.Site
	for _, s := range sites {
		if slices.Contains(names, s.Name) {
			out = append(out, s)
		}
	}
	return out
}

func stage(sheets *rockprops.Sheets) error {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, os.Getenv(staging.STAGING_ENV_VAR))
	if err != nil {
		return fmt.Errorf("could not connect to the staging database: %w", err)
	}
	defer pool.Close()

	count, err := staging.Load(ctx, pool, sheets)
	if err != nil {
		return err
	}

	slog.Info(fmt.Sprintf("%v rows copied to staging tables", count))
	return nil
}
