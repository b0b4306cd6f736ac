// Package main implements the slidekpi CLI: extract KPIs from
// presentation decks and ZIP archives of decks into CSV/XLSX tables.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chalamkotahemanth/slidekpi/batch"
	"github.com/chalamkotahemanth/slidekpi/config"
	"github.com/chalamkotahemanth/slidekpi/export"
	"github.com/chalamkotahemanth/slidekpi/format"
	"github.com/chalamkotahemanth/slidekpi/kpi"
)

var (
	configPath   string
	outDir       string
	exportFormat string
	sheetName    string
	verbose      bool

	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slidekpi <file.pptx|archive.zip>...",
	Short: "Extract KPIs from presentation decks into CSV/XLSX tables",
	Long: `slidekpi scans presentation decks for KPI phrasings (achievement
rate, revenue target, achieved amount, quality score, ...), normalizes
them into a table with derived best-achieved/best-target columns, and
writes timestamped CSV and XLSX exports.

Inputs may be individual .pptx files or .zip archives of decks; decks
listed directly are processed first, then archive contents. A source
name seen twice is processed only once.

Examples:
  # Process two decks and an archive
  slidekpi q1.pptx q2.pptx all-hands.zip

  # CSV only, into a specific directory
  slidekpi --format csv --out ./exports bundle.zip`,
	Version: version,
	Args:    cobra.MinimumNArgs(1),
	RunE:    run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.Flags().StringVar(&outDir, "out", "", "Directory for exported files")
	rootCmd.Flags().StringVar(&exportFormat, "format", "", "Export format: csv, xlsx, or both")
	rootCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet name for XLSX export")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Flags take precedence over the config file.
	if outDir != "" {
		cfg.Export.Dir = outDir
	}
	if exportFormat != "" {
		cfg.Export.Format = exportFormat
	}
	if sheetName != "" {
		cfg.Export.SheetName = sheetName
	}
	if verbose {
		cfg.Verbose = true
	}

	log := zap.NewNop()
	if cfg.Verbose {
		log, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer log.Sync()
	}

	decks, archives, err := readInputs(args)
	if err != nil {
		return err
	}

	// Archives hold an unknown number of decks, so progress renders as
	// a spinner advanced per processed document.
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.BlueString("Processing decks")),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionClearOnFinish(),
	)

	processor := batch.New(
		batch.WithLogger(log),
		batch.WithDeckExtension(cfg.Batch.DeckExtension),
		batch.WithProgress(func(string) { bar.Add(1) }),
	)

	res := processor.Run(decks, archives)
	bar.Finish()

	for _, f := range res.Failures {
		color.Yellow("Warning: failed to process %s: %v", f.Name, f.Err)
	}

	if len(res.Table.Rows) == 0 {
		color.Cyan("No valid decks found.")
		return nil
	}

	printTable(cmd, res.Table)

	if err := writeExports(cmd, cfg, res.Table); err != nil {
		return err
	}

	color.Green("Done: %d deck(s) processed, %d failure(s).", len(res.Table.Rows), len(res.Failures))
	return nil
}

// readInputs loads each argument into memory and classifies it as deck
// or archive, preferring content sniffing over the file extension.
func readInputs(args []string) (decks, archives []batch.Input, err error) {
	for _, arg := range args {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", arg, err)
		}

		f := format.DetectBytes(data)
		if f == format.Unknown {
			f = format.Detect(arg)
		}

		in := batch.Input{Name: filepath.Base(arg), Data: data}
		switch f {
		case format.Deck:
			decks = append(decks, in)
		case format.Archive:
			archives = append(archives, in)
		default:
			return nil, nil, fmt.Errorf("%s: unrecognized input format (want .pptx or .zip)", arg)
		}
	}
	return decks, archives, nil
}

// printTable renders a compact summary of the extracted table.
func printTable(cmd *cobra.Command, t *kpi.Table) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PPT File\tRate (%)\tBest Achieved\tBest Target\tQuality (%)")
	for i := range t.Rows {
		r := &t.Rows[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.Source,
			cell(r.AchievementRate),
			cell(r.BestAchieved),
			cell(r.BestTarget),
			cell(r.QualityScore),
		)
	}
	w.Flush()
}

func cell(v kpi.Value) string {
	if !v.Valid {
		return "-"
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

// writeExports writes the configured export files with a capture
// timestamp embedded in each name.
func writeExports(cmd *cobra.Command, cfg *config.Config, t *kpi.Table) error {
	now := time.Now()

	if cfg.Export.Format == "csv" || cfg.Export.Format == "both" {
		path := filepath.Join(cfg.Export.Dir, export.Filename(cfg.Export.Prefix, ".csv", now))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := export.CSV(f, t); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		cmd.Printf("Wrote %s\n", path)
	}

	if cfg.Export.Format == "xlsx" || cfg.Export.Format == "both" {
		path := filepath.Join(cfg.Export.Dir, export.Filename(cfg.Export.Prefix, ".xlsx", now))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := export.XLSX(f, t, cfg.Export.SheetName); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		cmd.Printf("Wrote %s\n", path)
	}

	return nil
}
