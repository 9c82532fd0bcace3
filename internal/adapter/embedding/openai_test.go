package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIEmbedderOrdersByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", got)
		}

		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}

		// Return vectors in reverse order to exercise index matching.
		resp := embeddingResponse{}
		for i := len(req.Input) - 1; i >= 0; i-- {
			resp.Data = append(resp.Data, embeddingData{
				Index:     i,
				Embedding: []float32{float32(i)},
			})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	e, err := NewOpenAIEmbedder(srv.URL, "test-key", "text-embedding-3-small", 0)
	if err != nil {
		t.Fatal(err)
	}

	vectors, err := e.Embed(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}

	if len(vectors) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vectors))
	}
	for i, v := range vectors {
		if len(v) != 1 || v[0] != float32(i) {
			t.Errorf("vector %d out of order: %v", i, v)
		}
	}
}

func TestOpenAIEmbedderEmptyInput(t *testing.T) {
	e, err := NewOpenAIEmbedder("http://localhost:1", "key", "text-embedding-3-small", 0)
	if err != nil {
		t.Fatal(err)
	}

	vectors, err := e.Embed(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != 0 {
		t.Errorf("expected no vectors, got %d", len(vectors))
	}
}

func TestOpenAIEmbedderProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embeddingResponse{
			Error: &apiError{Message: "model overloaded", Type: "server_error"},
		})
	}))
	defer srv.Close()

	e, err := NewOpenAIEmbedder(srv.URL, "key", "text-embedding-3-small", 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Embed(context.Background(), []string{"a"}); err == nil {
		t.Error("expected error from provider error response")
	}
}

func TestOpenAIEmbedderBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	e, err := NewOpenAIEmbedder(srv.URL, "bad-key", "text-embedding-3-small", 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Embed(context.Background(), []string{"a"}); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestOpenAIEmbedderMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	e, err := NewOpenAIEmbedder(srv.URL, "key", "text-embedding-3-small", 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Embed(context.Background(), []string{"a"}); err == nil {
		t.Error("expected error for malformed response body")
	}
}

func TestOpenAIEmbedderVectorCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embeddingResponse{
			Data: []embeddingData{{Index: 0, Embedding: []float32{1}}},
		})
	}))
	defer srv.Close()

	e, err := NewOpenAIEmbedder(srv.URL, "key", "text-embedding-3-small", 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Error("expected error when provider returns too few vectors")
	}
}

func TestNewOpenAIEmbedderRequiresKey(t *testing.T) {
	if _, err := NewOpenAIEmbedder("", "", "text-embedding-3-small", 0); err == nil {
		t.Error("expected error for empty API key")
	}
}

func TestOpenAIEmbedderDimensions(t *testing.T) {
	tests := []struct {
		model     string
		dimension int
		want      int
	}{
		{"text-embedding-3-small", 0, 1536},
		{"text-embedding-3-large", 0, 3072},
		{"custom-model", 512, 512},
	}

	for _, tt := range tests {
		e, err := NewOpenAIEmbedder("http://localhost:1", "key", tt.model, tt.dimension)
		if err != nil {
			t.Fatal(err)
		}
		if e.Dimension() != tt.want {
			t.Errorf("%s: expected dimension %d, got %d", tt.model, tt.want, e.Dimension())
		}
	}
}
