package port

// Chunker splits a document's text into ordered, possibly overlapping chunks.
// Implementations are pure: any string input yields a valid (possibly empty)
// result, never an error.
type Chunker interface {
	Split(text string) []string
}
