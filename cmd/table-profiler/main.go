// Command table-profiler profiles a tabular dataset from a CSV, JSON,
// LDJSON file or a Postgres table and writes the profile as JSON or
// YAML.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	profiler "github.com/chop-dbhi/table-profiler"
	"github.com/chop-dbhi/table-profiler/reader"
	"github.com/chop-dbhi/table-profiler/table"
	"github.com/chop-dbhi/table-profiler/table/pg"
)

var (
	cfgFile string

	inFormat    string
	compression string
	csvDelim    string
	csvNoHeader bool

	dbURL    string
	dbSchema string
	dbTable  string

	outFormat string
	outPath   string

	noCorrelation bool
	threshold     float64
	overrides     []string
	checkRecoded  bool
	poolSize      int
	bins          int
)

var rootCmd = &cobra.Command{
	Use:   "table-profiler [flags] [input]",
	Short: "Compute a statistical profile of a tabular dataset",
	Long: `table-profiler classifies each column of a dataset into a semantic
variable kind, computes kind-specific descriptive statistics, rejects
columns redundant by correlation, and aggregates everything into a
dataset-level summary.

The input is a CSV, JSON or LDJSON file (gzip/bzip2 compressed files
are detected by extension), stdin, or a Postgres table via --db.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,

	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(loadConfig)

	f := rootCmd.Flags()

	f.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.table-profiler.yaml)")

	f.StringVar(&inFormat, "input-format", "", "input format: csv, json or ldjson (default detected from extension)")
	f.StringVar(&compression, "compression", "", "compression used: gzip or bzip2 (default detected from extension)")
	f.StringVar(&csvDelim, "csv.delim", ",", "CSV delimiter")
	f.BoolVar(&csvNoHeader, "csv.noheader", false, "no CSV header present")

	f.StringVar(&dbURL, "db", "", "Postgres database URL")
	f.StringVar(&dbSchema, "schema", "public", "Postgres schema name")
	f.StringVar(&dbTable, "table", "", "Postgres table name")

	f.StringVar(&outFormat, "format", "json", "output format: json or yaml")
	f.StringVar(&outPath, "out", "", "output file (default stdout)")

	f.BoolVar(&noCorrelation, "no-correlation", false, "disable correlation rejection")
	f.Float64Var(&threshold, "threshold", 0.9, "correlation rejection threshold")
	f.StringSliceVar(&overrides, "overrides", nil, "column names exempt from correlation rejection")
	f.BoolVar(&checkRecoded, "recoded", false, "enable the expensive recoded-pair check")
	f.IntVar(&poolSize, "pool", 0, "worker pool size (default is the CPU count)")
	f.IntVar(&bins, "bins", 10, "histogram bins")

	viper.SetEnvPrefix("TABLE_PROFILER")
	viper.AutomaticEnv()

	viper.BindPFlag("threshold", f.Lookup("threshold"))
	viper.BindPFlag("overrides", f.Lookup("overrides"))
	viper.BindPFlag("pool", f.Lookup("pool"))
	viper.BindPFlag("bins", f.Lookup("bins"))
}

func loadConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".table-profiler")
			viper.SetConfigType("yaml")
		}
	}

	// The config file is optional.
	if err := viper.ReadInConfig(); err == nil {
		log.Printf("using config file: %s", viper.ConfigFileUsed())
	}
}

func main() {
	log.SetFlags(0)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	t, err := loadTable(args)
	if err != nil {
		return err
	}

	cfg := profiler.DefaultConfig()
	cfg.CheckCorrelation = !noCorrelation
	cfg.CorrelationThreshold = viper.GetFloat64("threshold")
	cfg.CorrelationOverrides = viper.GetStringSlice("overrides")
	cfg.CheckRecoded = checkRecoded
	cfg.Bins = viper.GetInt("bins")

	if n := viper.GetInt("pool"); n > 0 {
		cfg.PoolSize = n
	}

	res, err := profiler.Profile(t, cfg)
	if err != nil {
		return err
	}

	return write(res)
}

func loadTable(args []string) (*table.Table, error) {
	if dbURL != "" {
		return pg.Load(dbURL, dbSchema, dbTable)
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}

	in, err := reader.Open(name, compression)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	format := inFormat
	if format == "" {
		format, _ = reader.DetectType(name)
	}
	if format == "" {
		format = "csv"
	}

	switch format {
	case "csv":
		opts := table.DefaultCSVOptions()
		opts.Header = !csvNoHeader

		if len(csvDelim) > 0 {
			opts.Delimiter = rune(csvDelim[0])
		}

		return table.FromCSV(in, opts)

	case "json":
		return table.FromJSON(in)

	case "ldjson":
		return table.FromLDJSON(in)
	}

	return nil, fmt.Errorf("unknown input format: %s", format)
}

func write(res *profiler.Result) error {
	var out io.Writer = os.Stdout

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()

		out = f
	}

	switch outFormat {
	case "json":
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}

		b = append(b, '\n')

		_, err = out.Write(b)
		return err

	case "yaml":
		b, err := yaml.Marshal(res)
		if err != nil {
			return err
		}

		_, err = out.Write(b)
		return err
	}

	return fmt.Errorf("unknown output format: %s", outFormat)
}
