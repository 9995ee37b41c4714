package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/vietddude/stylelog"

	"github.com/vietddude/backupreport/internal/control"
	"github.com/vietddude/backupreport/internal/core/config"
)

var (
	cfgPath string
	isDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "backupreport",
	Short: "Generate the daily backup triage workbook",
	Long: `backupreport pulls yesterday's failed, warning, missing and pending backup jobs
from the backup-status API and writes a spreadsheet grouped by client, with the
Microsoft 365 cloud backups in their own section.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReport,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Report run failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "optional config file (defaults are built in)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
}

func runReport(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	// Load Configuration
	cfg, err := config.Load(cfgPath)
	if err != nil {
		stylelog.InitDefault()
		return err
	}

	// Setup logging
	slogLevel := slog.LevelInfo
	if isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}

	stylelog.InitDefault(&tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	})

	runID := uuid.NewString()
	slog.SetDefault(slog.Default().With("run_id", runID))

	runner, err := control.NewRunner(control.Config{
		App:   cfg,
		RunID: runID,
		Out:   cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = runner.Close()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	res, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("Report complete", "path", res.Path, "records", res.Counts.Total(), "partial", res.Halted)
	return nil
}
