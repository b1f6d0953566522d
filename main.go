package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"go-mscx/fraction"
	"go-mscx/mscx"
	"go-mscx/score"
)

var (
	configPath string
	debug      bool
	strict     bool
	jobs       int

	pasteInto  string
	pasteTick  string
	pasteStaff int

	cfg    *Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mscx2ly [files...]",
	Short: "Convert MuseScore XML scores to LilyPond voice sequences",
	Args:  cobra.MinimumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = LoadConfig(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("strict") {
			cfg.Reader.Strict = strict
		}
		if flags.Changed("jobs") && jobs > 0 {
			cfg.Jobs = jobs
		}
		if debug {
			cfg.Logging.Level = "debug"
		}

		config := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("bad log level: %w", err)
		}
		config.Level = zap.NewAtomicLevelAt(level)
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg.Reader.Logger = logger
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := readFiles(cmd.Context(), args, cfg.Reader, cfg.Jobs)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, d := range docs {
			if len(docs) > 1 {
				fmt.Fprintf(out, "%% %s\n", d.name)
			}
			if err := Convert(d.score, out); err != nil {
				return err
			}
		}
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Print measures, spanners, tuplets and diagnostics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := readFiles(cmd.Context(), args, cfg.Reader, cfg.Jobs)
		if err != nil {
			return err
		}
		for _, d := range docs {
			analyze(cmd.OutOrStdout(), d.name, d.size, d.score, d.diags)
		}
		return nil
	},
}

var pasteCmd = &cobra.Command{
	Use:   "paste FRAGMENT",
	Short: "Import a clipboard fragment into a score and analyze the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tick, err := fraction.Parse(pasteTick)
		if err != nil {
			return fmt.Errorf("bad --tick: %w", err)
		}
		docs, err := readFiles(cmd.Context(), []string{pasteInto}, cfg.Reader, 1)
		if err != nil {
			return err
		}
		d := docs[0]
		diags, err := paste(args[0], d.score, tick, pasteStaff, cfg.Reader)
		if err != nil {
			return err
		}
		analyze(cmd.OutOrStdout(), d.name, d.size, d.score, append(d.diags, diags...))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "mscx2ly.yaml", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Treat structural inconsistencies as errors")
	rootCmd.PersistentFlags().IntVarP(&jobs, "jobs", "j", 0, "Files read in parallel (default: number of CPUs)")

	pasteCmd.Flags().StringVar(&pasteInto, "into", "", "Score to paste into (required)")
	pasteCmd.Flags().StringVar(&pasteTick, "tick", "0/1", "Destination time, as n/d of a whole or ticks")
	pasteCmd.Flags().IntVar(&pasteStaff, "staff", 0, "Destination staff, 0-based")
	_ = pasteCmd.MarkFlagRequired("into")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(pasteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type document struct {
	name  string
	size  int
	score *score.Score
	diags []mscx.Diagnostic
}

// readFiles reads each file with its own Reader, at most jobs at a
// time. Results keep the order of names.
func readFiles(ctx context.Context, names []string, opts mscx.Options, jobs int) ([]*document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	docs := make([]*document, len(names))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(name)
			if err != nil {
				return fmt.Errorf("ReadFile: %w", err)
			}
			o := opts
			o.DocName = name
			if o.Logger != nil {
				o.Logger = o.Logger.With(zap.String("file", name))
			}
			sc, diags, err := mscx.ReadData(content, o)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			docs[i] = &document{name: name, size: len(content), score: sc, diags: diags}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// paste imports the fragment file into sc at tick on staff.
func paste(name string, sc *score.Score, tick fraction.Fraction, staff int, opts mscx.Options) ([]mscx.Diagnostic, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pasteFrom(f, name, sc, tick, staff, opts)
}

func pasteFrom(in io.Reader, name string, sc *score.Score, tick fraction.Fraction, staff int, opts mscx.Options) ([]mscx.Diagnostic, error) {
	opts.DocName = name
	r := mscx.NewReader(in, sc, opts)
	if err := r.ReadFragment(tick, staff); err != nil {
		return r.Diagnostics(), fmt.Errorf("%s: %w", name, err)
	}
	return r.Diagnostics(), nil
}
