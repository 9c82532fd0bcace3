package domain

// UploadedFile is a document handed to the ingest pipeline, either from the
// HTTP upload endpoint or from the CLI directory walker.
type UploadedFile struct {
	Name      string
	Data      []byte
	Namespace string
}

// VectorRecord is one embedded chunk ready for upsert into a vector index.
type VectorRecord struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata RecordMetadata `json:"metadata"`
}

// RecordMetadata travels with each vector so retrieval can surface the chunk
// text and its position within the source document.
type RecordMetadata struct {
	Text        string `json:"text"`
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
	ChunkIndex  int    `json:"chunkIndex"`
	TotalChunks int    `json:"totalChunks"`
	Namespace   string `json:"namespace"`
	UploadedAt  string `json:"uploadedAt"`
}

// IngestResult summarizes a completed ingest of one document.
type IngestResult struct {
	FileName  string
	Chunks    int
	Namespace string
}
