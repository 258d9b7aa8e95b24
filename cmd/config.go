package cmd

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/surveylens/internal/chart"
	cfgpkg "github.com/KaramelBytes/surveylens/internal/config"
	"github.com/KaramelBytes/surveylens/internal/locale"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set SurveyLens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "language: %s\n", cfg.Language)
		fmt.Fprintf(out, "theme: %s\n", cfg.Theme)
		fmt.Fprintf(out, "x_column: %s\n", cfg.XColumn)
		fmt.Fprintf(out, "y_column: %s\n", cfg.YColumn)
		fmt.Fprintf(out, "sample_rows: %d\n", cfg.SampleRows)
		fmt.Fprintf(out, "addr: %s\n", cfg.Addr)
		fmt.Fprintf(out, "max_upload_mb: %d\n", cfg.MaxUploadMB)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "otel_enabled: %t\n", cfg.OTelEnabled)
		if cfg.OTelEnabled {
			fmt.Fprintf(out, "otel_endpoint: %s\n", cfg.OTelEndpoint)
			fmt.Fprintf(out, "otel_insecure: %t\n", cfg.OTelInsecure)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "language":
			l, err := locale.Parse(val)
			if err != nil {
				return fmt.Errorf("invalid language: %w", err)
			}
			cfg.Language = string(l)
		case "theme":
			t, err := chart.ParseTheme(val)
			if err != nil {
				return fmt.Errorf("invalid theme: %w", err)
			}
			cfg.Theme = string(t)
		case "x_column":
			cfg.XColumn = val
		case "y_column":
			cfg.YColumn = val
		case "sample_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for sample_rows: %v", val)
			}
			cfg.SampleRows = i
		case "addr":
			cfg.Addr = val
		case "max_upload_mb":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for max_upload_mb: %v", val)
			}
			cfg.MaxUploadMB = i
		case "log_level":
			switch val {
			case "debug", "info", "warn", "error":
				cfg.LogLevel = val
			default:
				return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
			}
		case "otel_enabled":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for otel_enabled: %w", err)
			}
			cfg.OTelEnabled = b
		case "otel_endpoint":
			cfg.OTelEndpoint = val
		case "otel_insecure":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for otel_insecure: %w", err)
			}
			cfg.OTelInsecure = b
		default:
			return fmt.Errorf("unknown key: %s (valid keys: %v)", key, cfgpkg.Keys)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
