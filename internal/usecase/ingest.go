package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"docingest/internal/adapter/extractor"
	"docingest/internal/domain"
	"docingest/internal/port"
)

// ErrValidation marks failures caused by the uploaded file itself (bad type,
// oversized, no extractable text). The HTTP layer maps these to 400; anything
// else is a processing error and maps to 500.
var ErrValidation = errors.New("invalid upload")

const DefaultNamespace = "default"

// Pipeline runs one document through extract, chunk, embed and upsert.
// All collaborators are injected; the pipeline holds no global state and is
// safe for concurrent ingests.
type Pipeline struct {
	extractors  *extractor.Registry
	chunker     port.Chunker
	embedder    port.Embedder
	store       port.VectorStore
	logger      *log.Logger
	maxBytes    int64
	batchSize   int
	concurrency int
}

type PipelineOptions struct {
	// MaxBytes caps the accepted file size. Zero means 4 MiB.
	MaxBytes int64
	// BatchSize is the number of vectors per upsert call. Zero means 100.
	BatchSize int
	// Concurrency bounds parallel embedding requests. Zero means 8.
	Concurrency int
}

func NewPipeline(
	extractors *extractor.Registry,
	chunker port.Chunker,
	embedder port.Embedder,
	store port.VectorStore,
	logger *log.Logger,
	opts PipelineOptions,
) *Pipeline {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 4 << 20
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}

	return &Pipeline{
		extractors:  extractors,
		chunker:     chunker,
		embedder:    embedder,
		store:       store,
		logger:      logger,
		maxBytes:    opts.MaxBytes,
		batchSize:   opts.BatchSize,
		concurrency: opts.Concurrency,
	}
}

// MaxBytes returns the configured upload size cap.
func (p *Pipeline) MaxBytes() int64 {
	return p.maxBytes
}

// Ingest processes one uploaded document end to end. Any failure aborts the
// whole ingest; nothing is retried.
func (p *Pipeline) Ingest(ctx context.Context, file domain.UploadedFile) (*domain.IngestResult, error) {
	if int64(len(file.Data)) > p.maxBytes {
		return nil, fmt.Errorf("%w: file exceeds maximum size of %d bytes", ErrValidation, p.maxBytes)
	}

	ext, err := p.extractors.Lookup(file.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	text, err := ext.Extract(file.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to extract text from %s: %v", ErrValidation, file.Name, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no text could be extracted from %s", ErrValidation, file.Name)
	}

	namespace := file.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	chunks := p.chunker.Split(text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document %s produced no chunks", ErrValidation, file.Name)
	}

	p.logger.Debug("chunked document",
		"file", file.Name, "chunks", len(chunks), "namespace", namespace)

	vectors, err := p.embedChunks(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to embed %s: %w", file.Name, err)
	}

	records := p.buildRecords(file.Name, namespace, chunks, vectors)

	for start := 0; start < len(records); start += p.batchSize {
		end := start + p.batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := p.store.Upsert(ctx, namespace, records[start:end]); err != nil {
			return nil, fmt.Errorf("failed to upsert vectors for %s: %w", file.Name, err)
		}
	}

	p.logger.Info("ingested document",
		"file", file.Name, "chunks", len(chunks), "namespace", namespace)

	return &domain.IngestResult{
		FileName:  file.Name,
		Chunks:    len(chunks),
		Namespace: namespace,
	}, nil
}

// embedChunks requests one embedding per chunk concurrently. Each result is
// written to its own index slot, so chunk order survives the concurrency.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []string) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			result, err := p.embedder.Embed(ctx, []string{chunk})
			if err != nil {
				return err
			}
			if len(result) != 1 {
				return fmt.Errorf("expected 1 vector for chunk %d, got %d", i, len(result))
			}
			vectors[i] = result[0]
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func (p *Pipeline) buildRecords(fileName, namespace string, chunks []string, vectors [][]float32) []domain.VectorRecord {
	uploadedAt := time.Now().UTC().Format(time.RFC3339)
	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")

	records := make([]domain.VectorRecord, len(chunks))
	for i := range chunks {
		records[i] = domain.VectorRecord{
			ID:     uuid.NewString(),
			Values: vectors[i],
			Metadata: domain.RecordMetadata{
				Text:        chunks[i],
				FileName:    fileName,
				FileType:    fileType,
				ChunkIndex:  i,
				TotalChunks: len(chunks),
				Namespace:   namespace,
				UploadedAt:  uploadedAt,
			},
		}
	}
	return records
}
