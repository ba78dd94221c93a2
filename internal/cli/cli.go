package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pfrederiksen/usps-zipcodes/internal/config"
	"github.com/pfrederiksen/usps-zipcodes/internal/extract"
	"github.com/pfrederiksen/usps-zipcodes/internal/logger"
	"github.com/pfrederiksen/usps-zipcodes/internal/output"
	"github.com/pfrederiksen/usps-zipcodes/internal/query"
	"github.com/pfrederiksen/usps-zipcodes/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig   string
	flagVerbose  bool
	flagFormat   string
	flagDir      string
	flagOut      string
	flagSelector string
	flagNoFilter bool
	flagQueries  string
	flagFormURL  string
)

// NewRootCmd creates the root command. With no subcommand it runs parse.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usps-zipcodes",
		Short: "Collect ZIP codes from the USPS city/town look-up",
		Long: `Collect ZIP codes from the USPS city/town look-up.

The scrape command submits city/state queries and archives the result
pages. The parse command (the default) extracts ZIP codes from the
archived pages and writes them to a text file, one per line.`,
		RunE:          runParse,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ./"+config.DefaultConfigFile+" if present)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().StringVar(&flagDir, "dir", "", "Archive directory (default "+config.DefaultArchiveDir+")")
	addParseFlags(cmd)

	parse := &cobra.Command{
		Use:   "parse",
		Short: "Extract ZIP codes from archived pages",
		Args:  cobra.NoArgs,
		RunE:  runParse,
	}
	addParseFlags(parse)

	scrape := &cobra.Command{
		Use:   "scrape",
		Short: "Submit city/state queries and archive the result pages",
		Args:  cobra.NoArgs,
		RunE:  runScrape,
	}
	scrape.Flags().StringVar(&flagQueries, "queries", "", "CSV file of city,state rows (required)")
	scrape.Flags().StringVar(&flagFormURL, "form-url", "", "Look-up form URL (default "+config.DefaultFormURL+")")
	if err := scrape.MarkFlagRequired("queries"); err != nil {
		panic(err)
	}

	cmd.AddCommand(parse, scrape)
	return cmd
}

func addParseFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file (default "+config.DefaultOutputFile+")")
	cmd.Flags().StringVar(&flagSelector, "selector", "", "CSS selector for ZIP code cells (default "+extract.DefaultSelector+")")
	cmd.Flags().BoolVar(&flagNoFilter, "no-filter", false, "Keep long PO Box entries")
}

// loadConfig layers command-line flags over the config file and environment
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flagDir != "" {
		cfg.ArchiveDir = flagDir
	}
	if f := cmd.Flags().Lookup("out"); f != nil && f.Changed {
		cfg.Parser.OutputFile = flagOut
	}
	if f := cmd.Flags().Lookup("selector"); f != nil && f.Changed {
		cfg.Parser.Selector = flagSelector
	}
	if flagNoFilter {
		cfg.Parser.Filter = false
	}
	if flagFormURL != "" {
		cfg.Scraper.FormURL = flagFormURL
	}
	if flagVerbose {
		cfg.LogLevel = string(logger.LevelDebug)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	return cfg, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := ParseOutputFormat(flagFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	parser := &extract.Parser{
		Selector:      cfg.Parser.Selector,
		FilterResults: cfg.Parser.Filter,
		MaxLength:     cfg.Parser.MaxLength,
	}

	logger.Debug("Parsing archive", logger.Fields{
		"dir":      cfg.ArchiveDir,
		"selector": parser.Selector,
		"filter":   parser.FilterResults,
	})

	codes, err := parser.ParseAll(cfg.ArchiveDir)
	if err != nil {
		return fmt.Errorf("parsing pages: %w", err)
	}

	if err := output.Save(cfg.Parser.OutputFile, codes); err != nil {
		return fmt.Errorf("saving ZIP codes: %w", err)
	}

	result := &ParseResult{
		RanAt:      time.Now().UTC(),
		ArchiveDir: cfg.ArchiveDir,
		OutputFile: cfg.Parser.OutputFile,
		Filtered:   cfg.Parser.Filter,
		ZipCodes:   codes,
		Count:      len(codes),
	}
	if err := WriteOutput(cmd.OutOrStdout(), result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return writeMetrics(cmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	format, err := ParseOutputFormat(flagFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	records, err := query.LoadFile(flagQueries)
	if err != nil {
		return fmt.Errorf("loading queries: %w", err)
	}

	sc := scraper.New(scraper.Options{
		FormURL:    cfg.Scraper.FormURL,
		UserAgent:  cfg.Scraper.UserAgent,
		Timeout:    cfg.Scraper.Timeout,
		CityField:  cfg.Scraper.CityField,
		StateField: cfg.Scraper.StateField,
	})

	logger.Info("Starting scrape", logger.Fields{
		"form_url": cfg.Scraper.FormURL,
		"queries":  len(records),
		"dir":      cfg.ArchiveDir,
	})

	paths, err := sc.Archive(cmd.Context(), records, cfg.ArchiveDir)
	if err != nil {
		return fmt.Errorf("archiving pages (%d written): %w", len(paths), err)
	}

	result := &ScrapeResult{
		RanAt:      time.Now().UTC(),
		FormURL:    cfg.Scraper.FormURL,
		ArchiveDir: cfg.ArchiveDir,
		Pages:      paths,
		Count:      len(paths),
	}
	if err := WriteOutput(cmd.OutOrStdout(), result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return writeMetrics(cmd)
}

func writeMetrics(cmd *cobra.Command) error {
	if !flagVerbose {
		return nil
	}
	return logger.DefaultMetrics().GetSnapshot().WriteSummary(cmd.ErrOrStderr())
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
