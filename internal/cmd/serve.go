package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve the prioritizer as an HTTP API for browser frontends:
POST /api/prioritize, POST /api/save, GET /api/load, PUT /api/tasks/{index},
and GET /health.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		a.cfg.Server.Addr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on %s\n", a.cfg.Server.Addr)
	srv := server.New(a.orch, a.cfg.Server, a.logger)
	return srv.ListenAndServe(ctx)
}
