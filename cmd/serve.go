package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/surveylens/internal/chart"
	"github.com/KaramelBytes/surveylens/internal/locale"
	"github.com/KaramelBytes/surveylens/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start the survey analysis dashboard.

Examples:
  surveylens serve               # Start on the configured address (default :8501)
  surveylens serve --addr :3000  # Start on port 3000`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "address to listen on (default from config, :8501)")
}

func runServe(cmd *cobra.Command, args []string) error {
	c := effectiveConfig()
	addr := c.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	lang, err := locale.Parse(c.Language)
	if err != nil {
		return fmt.Errorf("config language: %w", err)
	}
	theme, err := chart.ParseTheme(c.Theme)
	if err != nil {
		return fmt.Errorf("config theme: %w", err)
	}

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	logger := newLogger(c)
	rec := newRecorder(ctx, c)
	defer closeRecorder(rec)

	server := web.NewServer(addr, web.Settings{
		DefaultLang:    lang,
		DefaultTheme:   theme,
		XColumn:        c.XColumn,
		YColumn:        c.YColumn,
		PreviewRows:    c.SampleRows,
		MaxUploadBytes: c.MaxUploadBytes(),
	}, logger, rec)
	return server.Start(ctx)
}
