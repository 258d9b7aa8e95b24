package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	cfgpkg "github.com/KaramelBytes/surveylens/internal/config"
	"github.com/KaramelBytes/surveylens/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "surveylens",
	Short: "SurveyLens: screen time vs. student productivity survey analysis",
	Long: `SurveyLens loads a survey dataset (Excel or CSV), reports descriptive statistics,
computes the Pearson correlation between the screen-time and productivity scores
and explains the result in English or Bahasa Indonesia, from the command line
or through a web dashboard.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.surveylens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// effectiveConfig returns the loaded configuration, or defaults when loading failed.
func effectiveConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return cfgpkg.Defaults()
}

func newLogger(c *cfgpkg.Global) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newRecorder degrades to a no-op recorder when the exporter cannot be built.
func newRecorder(ctx context.Context, c *cfgpkg.Global) telemetry.Recorder {
	rec, err := telemetry.New(ctx, telemetry.Config{
		Endpoint: c.OTelEndpoint,
		Enabled:  c.OTelEnabled,
		Insecure: c.OTelInsecure,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: metrics disabled: %v\n", err)
		return telemetry.NoOp{}
	}
	return rec
}

func closeRecorder(rec telemetry.Recorder) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rec.Close(ctx); err != nil && debug {
		fmt.Fprintf(os.Stderr, "⚠ Warning: flush metrics: %v\n", err)
	}
}
