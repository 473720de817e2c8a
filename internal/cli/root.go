// Package cli implements the cardify command tree. The root command
// ingests PDFs with their markdown transcriptions; the subcommands list
// what the store holds.
package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bytemouse/cardify/internal/config"
	"github.com/bytemouse/cardify/internal/contextutil"
	"github.com/bytemouse/cardify/internal/ingest"
	"github.com/bytemouse/cardify/internal/metadata"
	"github.com/bytemouse/cardify/internal/storage"
)

var cfg *config.Config

var (
	flagDB        string
	flagDebug     bool
	flagLogFormat string
	flagLogFile   string

	flagMarkdown         string
	flagOptionalMarkdown bool
)

var rootCmd = &cobra.Command{
	Use:   "cardify <pdf>...",
	Short: "ingest PDF documents and their markdown transcriptions",
	Long: `Ingest one or more PDF documents together with their markdown
transcriptions, splitting the markdown into page-aware chunks for later
flashcard generation.

A companion markdown file is discovered next to each PDF (same stem,
.md or .markdown extension).`,
	Example: `cardify lecture.pdf
cardify --markdown notes.md lecture.pdf
cardify --optional-markdown *.pdf`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		if cmd.Flags().Changed("db") {
			cfg.DBPath = flagDB
		}
		if cmd.Flags().Changed("log-format") {
			cfg.LogFormat = flagLogFormat
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = flagLogFile
		}
		if flagDebug {
			cfg.LogLevel = slog.LevelDebug
		}

		return setupLogger(cfg)
	},
	RunE: runIngest,
}

// Execute runs the command tree. A non-nil return means the process
// should exit non-zero.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to the database file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "also write logs to this file")

	rootCmd.Flags().StringVar(&flagMarkdown, "markdown", "", "specific markdown file to use (single document only)")
	rootCmd.Flags().BoolVar(&flagOptionalMarkdown, "optional-markdown", false, "don't fail when no markdown file is found")

	rootCmd.AddCommand(docsCmd())
	rootCmd.AddCommand(chunksCmd())
	rootCmd.AddCommand(cardsCmd())

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}

// setupLogger configures the process-wide slog default from config:
// text or json handler, chosen level, optional additional log file.
func setupLogger(cfg *config.Config) error {
	var w io.Writer = os.Stdout
	if cfg.LogFile != "" {
		if dir := filepath.Dir(cfg.LogFile); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, f)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// openStore opens the configured database and runs migrations.
func openStore() (*sql.DB, error) {
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.DBPath, err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("at least one pdf file is required")
	}
	if flagMarkdown != "" && len(args) > 1 {
		return errors.New("--markdown can only be used when processing a single pdf file")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	logger := slog.Default()
	ctx := contextutil.WithLogger(cmd.Context(), logger)

	pipeline := ingest.NewPipeline(
		storage.NewDocumentRepo(db),
		storage.NewChunkRepo(db),
		metadata.NewInteractive(logger),
	)

	summary := pipeline.ProcessBatch(ctx, args, ingest.Options{
		MarkdownPath:         flagMarkdown,
		AllowMissingMarkdown: flagOptionalMarkdown,
	})

	if summary.Succeeded < summary.Total {
		color.Red("\nSummary: %d of %d documents ingested", summary.Succeeded, summary.Total)
		return fmt.Errorf("%d of %d documents failed", summary.Total-summary.Succeeded, summary.Total)
	}

	color.Green("\nSummary: %d of %d documents ingested", summary.Succeeded, summary.Total)
	return nil
}
