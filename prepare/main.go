package prepare

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"smrload/smr"
	"smrload/utils"
)

type Config struct {
	Depths  string `arg:"-d,--depths" default:"depths.csv" help:"Header-less CSV file whose first column is the top of each depth bin"`
	Results string `arg:"-r,--results" default:"." help:"Directory containing the per-site credible interval results"`
	Pattern string `default:"*CI_results.csv" help:"File name pattern of the results files"`
	Output  string `arg:"-o,--output" default:"SMR_data_for_registration.csv" help:"Location of the combined CSV file"`
}

func (Config) Description() string {
	return `Combine the per-site credible interval results of the probabilistic
SMR inversion with the shared depth bins into a single CSV file.`
}

func (config *Config) Execute() {
	if err := config.run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func (config *Config) run() error {
	files, err := ResultFiles(config.Results, config.Pattern)
	if err != nil {
		return err
	}

	bar := utils.NewBar(len(files), "sites")
	bar.RenderBlank()

	records, err := Build(config.Depths, files, func(site string) {
		slog.Info("Read results for " + site)
		bar.Add(1)
	})
	if err != nil {
		return err
	}

	return Write(config.Output, records)
}

func Write(path string, records []smr.RawRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	slog.Info("Writing SMR registration data to " + path)
	if err := gocsv.MarshalFile(records, file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
