package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks xplaindfile/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search, ordered by
// descending similarity.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector index operations. An index is
// a named similarity structure over fixed-dimensionality embeddings; indexes
// are created and destroyed per document session.
type VectorStore interface {
	// CreateIndex creates a new index configured for cosine similarity over
	// vectors of the given size.
	CreateIndex(ctx context.Context, index string, vectorSize int) error

	// DeleteIndex removes an index and all of its points.
	DeleteIndex(ctx context.Context, index string) error

	// Upsert inserts or updates points in the index.
	Upsert(ctx context.Context, index string, points []Point) error

	// Search returns the k nearest points to the query vector.
	Search(ctx context.Context, index string, query []float32, k int) ([]SearchResult, error)
}
