package chunker

import "strings"

// Cut-point markers, each two characters wide. The cursor lands just after
// the marker, so a chunk keeps its closing punctuation.
var boundaryMarkers = []string{". ", ".\n", "! ", "!\n", "? ", "?\n", "\n\n"}

// BoundaryChunker behaves like FixedChunker but moves each non-final cut to
// the rightmost sentence or paragraph break found inside the last 20% of the
// window, so chunks end on natural boundaries when the text offers any.
// Chunks are whitespace-trimmed, which trades exact size control for
// semantically coherent chunks.
type BoundaryChunker struct {
	chunkSize int
	overlap   int
}

func NewBoundaryChunker(chunkSize, overlap int) *BoundaryChunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	return &BoundaryChunker{
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

// Split returns the trimmed chunks of text in document order. Chunks that
// trim to nothing are dropped without stalling the cursor.
func (c *BoundaryChunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= c.chunkSize {
		return []string{strings.TrimSpace(text)}
	}

	window := c.chunkSize / 5

	var chunks []string
	start := 0
	for {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		if end < len(runes) {
			if cut := lastBoundary(runes, end-window, end); cut > start {
				end = cut
			}
		}

		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			chunks = append(chunks, piece)
		}

		if end == len(runes) {
			break
		}

		// Anchor the next window to the adjusted end, not a fixed step.
		next := end - c.overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks
}

// lastBoundary scans [lo, hi) right to left and returns the offset just after
// the rightmost boundary marker, or -1 when the window holds none.
func lastBoundary(runes []rune, lo, hi int) int {
	if lo < 0 {
		lo = 0
	}
	for i := hi - 2; i >= lo; i-- {
		pair := string(runes[i : i+2])
		for _, marker := range boundaryMarkers {
			if pair == marker {
				return i + 2
			}
		}
	}
	return -1
}
