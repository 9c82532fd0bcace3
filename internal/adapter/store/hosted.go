package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"docingest/internal/domain"
)

// HostedIndex talks to a Pinecone-style hosted vector index over HTTP.
// Vectors are grouped by namespace on the remote side; the client itself is
// stateless.
type HostedIndex struct {
	baseURL   string
	apiKey    string
	indexName string
	client    *http.Client
}

type upsertRequest struct {
	Vectors   []domain.VectorRecord `json:"vectors"`
	Namespace string                `json:"namespace"`
}

type upsertResponse struct {
	UpsertedCount int `json:"upsertedCount"`
}

type statsRequest struct {
	Filter map[string]any `json:"filter,omitempty"`
}

type statsResponse struct {
	Namespaces map[string]struct {
		VectorCount int `json:"vectorCount"`
	} `json:"namespaces"`
	TotalVectorCount int `json:"totalVectorCount"`
}

// NewHostedIndex creates a client for a hosted index. A missing URL or index
// name is a configuration error, surfaced at wiring time rather than on the
// first upload.
func NewHostedIndex(baseURL, apiKey, indexName string) (*HostedIndex, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("vector index URL is not configured")
	}
	if indexName == "" {
		return nil, fmt.Errorf("vector index name is not configured")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("vector index API key is empty")
	}

	return &HostedIndex{
		baseURL:   baseURL,
		apiKey:    apiKey,
		indexName: indexName,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (s *HostedIndex) Upsert(ctx context.Context, namespace string, records []domain.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	var resp upsertResponse
	err := s.post(ctx, "/vectors/upsert", upsertRequest{
		Vectors:   records,
		Namespace: namespace,
	}, &resp)
	if err != nil {
		return err
	}

	if resp.UpsertedCount != len(records) {
		return fmt.Errorf("index accepted %d of %d vectors", resp.UpsertedCount, len(records))
	}
	return nil
}

func (s *HostedIndex) Count(ctx context.Context, namespace string) (int, error) {
	var resp statsResponse
	if err := s.post(ctx, "/describe_index_stats", statsRequest{}, &resp); err != nil {
		return 0, err
	}

	ns, ok := resp.Namespaces[namespace]
	if !ok {
		return 0, nil
	}
	return ns.VectorCount, nil
}

func (s *HostedIndex) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

func (s *HostedIndex) post(ctx context.Context, path string, payload, out any) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("index request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read index response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("index %q returned status %d: %s", s.indexName, resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse index response: %w", err)
		}
	}
	return nil
}
