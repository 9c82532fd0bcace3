package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"docingest/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP upload endpoint",
	Long: `Start the ingestion server. Documents POSTed to /api/upload as
multipart form data (fields "file" and "namespace") are chunked, embedded,
and upserted into the configured vector index.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	pipeline, vs, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer vs.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server, pipeline, logger)
	return srv.Run(ctx)
}
