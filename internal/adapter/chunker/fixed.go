package chunker

import "strings"

const (
	// DefaultChunkSize is the target maximum chunk length in characters.
	DefaultChunkSize = 1000
	// DefaultOverlap is the number of characters shared by consecutive chunks.
	DefaultOverlap = 200
)

// FixedChunker splits text into fixed-width windows of chunkSize characters,
// each window starting chunkSize-overlap characters after the previous one.
// Chunk boundaries ignore sentence structure; use BoundaryChunker when the
// text has natural punctuation worth preserving.
type FixedChunker struct {
	chunkSize int
	overlap   int
}

func NewFixedChunker(chunkSize, overlap int) *FixedChunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	return &FixedChunker{
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

// Split returns the chunks of text in document order. Characters are counted
// as runes so multi-byte input is never cut mid-codepoint.
func (c *FixedChunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= c.chunkSize {
		return []string{text}
	}

	// overlap >= chunkSize would stall the cursor; clamp the step so the
	// loop always terminates.
	step := c.chunkSize - c.overlap
	if step < 1 {
		step = 1
	}

	var chunks []string
	for start := 0; ; start += step {
		end := start + c.chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
