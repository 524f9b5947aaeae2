package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"trendy/internal/core"
	"trendy/internal/logger"
	"trendy/internal/pipeline"
	"trendy/internal/server"
)

// NewServeCmd creates the serve command for starting the HTTP server
func NewServeCmd(root *rootOptions) *cobra.Command {
	var (
		port int
		host string
		mode string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP server for the web page and JSON API",
		Long: `Start the trendy web server.

The server provides:
  • GET  /             form to generate reports
  • POST /generate     run and render the reports as HTML
  • POST /api/reports  run and return JSON ({"city": "...", "mode": "..."})
  • GET  /health       health check
  • GET  /metrics      Prometheus metrics

Only one run executes at a time; concurrent requests get 409 Conflict.

Examples:
  trendy serve
  trendy serve --port 3000 --host 0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), root, port, host, mode)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 127.0.0.1)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "default mode for requests that do not set one")

	return cmd
}

func runServe(ctx context.Context, root *rootOptions, port int, host, mode string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := root.load(runOverrides(mode, ""))
	if err != nil {
		return err
	}
	log := logger.Get()

	serverCfg := cfg.Server
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}

	defaultMode, err := core.ParseMode(cfg.App.Mode)
	if err != nil {
		return err
	}

	p, err := pipeline.NewBuilder(cfg).Build(ctx)
	if err != nil {
		return err
	}

	srv := server.New(p, serverCfg, server.Defaults{
		City:       cfg.App.City,
		Mode:       defaultMode,
		RunTimeout: cfg.App.RunTimeout,
	})

	serverErrors := make(chan error, 1)
	go func() {
		log.Info(fmt.Sprintf("Server listening on http://%s", serverCfg.Address()))
		log.Info("Press Ctrl+C to stop")
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case sig := <-shutdown:
		log.Info("Server shutdown initiated", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		log.Info("Server stopped successfully")
	}

	return nil
}
