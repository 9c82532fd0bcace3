package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"docingest/config"
	"docingest/internal/adapter/chunker"
	"docingest/internal/adapter/embedding"
	"docingest/internal/adapter/extractor"
	"docingest/internal/adapter/store"
	"docingest/internal/port"
	"docingest/internal/usecase"
)

// buildPipeline constructs the ingest pipeline and its collaborators from
// config. The returned store must be closed by the caller.
func buildPipeline(cfg *config.Config) (*usecase.Pipeline, port.VectorStore, error) {
	registry := extractor.NewRegistry()
	registry.Register(".txt", extractor.NewPlainText())
	registry.Register(".md", extractor.NewPlainText())
	if cfg.Upload.EnablePDF {
		registry.Register(".pdf", extractor.NewPDF())
	}

	var chk port.Chunker
	switch cfg.Chunking.Strategy {
	case "fixed":
		chk = chunker.NewFixedChunker(cfg.Chunking.ChunkSize, cfg.Chunking.Overlap)
	default:
		chk = chunker.NewBoundaryChunker(cfg.Chunking.ChunkSize, cfg.Chunking.Overlap)
	}

	embedder, err := embedding.NewOpenAIEmbedder(
		cfg.Embedding.BaseURL,
		os.Getenv(cfg.Embedding.APIKeyEnv),
		cfg.Embedding.Model,
		cfg.Embedding.Dimension,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedder (set %s): %w", cfg.Embedding.APIKeyEnv, err)
	}

	var vs port.VectorStore
	switch cfg.Index.Provider {
	case "hosted":
		vs, err = store.NewHostedIndex(cfg.Index.URL, os.Getenv(cfg.Index.APIKeyEnv), cfg.Index.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create hosted index client: %w", err)
		}
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Index.Path), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create index directory: %w", err)
		}
		vs, err = store.NewBoltVectorStore(cfg.Index.Path, embedder.Dimension())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local vector store: %w", err)
		}
	}

	pipeline := usecase.NewPipeline(registry, chk, embedder, vs, logger, usecase.PipelineOptions{
		MaxBytes:    cfg.Upload.MaxBytes,
		BatchSize:   cfg.Index.BatchSize,
		Concurrency: cfg.Embedding.Concurrency,
	})

	return pipeline, vs, nil
}
