package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"docingest/internal/adapter/fs"
	"docingest/internal/domain"
)

var ingestNamespace string

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest files from a directory",
	Long: `Walk a directory and run every matching file through the same
pipeline as the upload endpoint. Include and exclude patterns come from the
upload section of the config.

Examples:
  docingest ingest ./docs
  docingest ingest ./docs --namespace manuals`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestNamespace, "namespace", "n", "", "namespace to upsert vectors under")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	pipeline, vs, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer vs.Close()

	walker := fs.NewWalker(cfg.Upload.Includes, cfg.Upload.Excludes)
	files, err := walker.Walk(path)
	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("No matching files found.")
		return nil
	}

	bar := progressbar.Default(int64(len(files)), "ingesting")

	ingested := 0
	chunks := 0
	var failures []string

	ctx := context.Background()
	for _, file := range files {
		data, err := os.ReadFile(file.Path)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", file.Path, err))
			bar.Add(1)
			continue
		}

		result, err := pipeline.Ingest(ctx, domain.UploadedFile{
			Name:      filepath.Base(file.Path),
			Data:      data,
			Namespace: ingestNamespace,
		})
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", file.Path, err))
			bar.Add(1)
			continue
		}

		ingested++
		chunks += result.Chunks
		bar.Add(1)
	}

	fmt.Printf("\nIngested %d files (%d chunks)\n", ingested, chunks)
	if len(failures) > 0 {
		fmt.Printf("%d failures:\n", len(failures))
		for _, f := range failures {
			fmt.Printf("  %s\n", f)
		}
	}

	return nil
}
