package storage

// PassageRecord is a chunk of document text indexed for vector search. The
// ID matches the vector point ID so search results can be resolved back to
// their text.
type PassageRecord struct {
	ID        string // UUID (same as the vector point ID)
	IndexName string // Index the passage belongs to
	Position  int    // Origin order within the document (starts at 0)
	Text      string // Passage text content
}
