package index

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks xplaindfile/internal/index Embedder

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"xplaindfile/internal/contextutil"
	"xplaindfile/internal/storage"
	"xplaindfile/internal/vectorstore"
)

// Embedder generates embedding vectors for texts.
// This interface is defined from the index manager's perspective (consumer-first).
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Handle identifies a built vector index and carries the retrieval
// configuration for querying it. The zero Handle means "no index".
type Handle struct {
	IndexName string
	TopK      int
}

// IsZero reports whether the handle refers to no index.
func (h Handle) IsZero() bool {
	return h.IndexName == ""
}

// Manager owns the lifecycle of the per-session vector index: creation from
// passages, teardown on reset, and supersession of a previous index.
type Manager struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	passageRepo storage.PassageStore
	vectorSize  int
	topK        int
}

// NewManager creates a new index Manager.
func NewManager(embedder Embedder, vectorStore vectorstore.VectorStore, passageRepo storage.PassageStore, vectorSize, topK int) *Manager {
	return &Manager{
		embedder:    embedder,
		vectorStore: vectorStore,
		passageRepo: passageRepo,
		vectorSize:  vectorSize,
		topK:        topK,
	}
}

// newIndexName returns a fresh globally-unique index identifier.
func newIndexName() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("xplaindfile-%s", hex[:8])
}

// Build creates a fresh index over the given passages and returns its handle.
// If prior refers to an existing index it is deleted first; that deletion is
// best-effort and never fails the build. Any failure while creating,
// embedding or inserting leaves no index behind: the half-built index is
// removed and an error is returned so the caller keeps its pre-upload state.
func (m *Manager) Build(ctx context.Context, prior Handle, passages []string) (Handle, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(passages) == 0 {
		return Handle{}, fmt.Errorf("no passages to index")
	}

	// Supersede the previous index if one exists.
	if !prior.IsZero() {
		if err := m.vectorStore.DeleteIndex(ctx, prior.IndexName); err != nil {
			logger.WarnContext(ctx, "failed to delete superseded index", "index", prior.IndexName, "error", err)
		}
		if err := m.passageRepo.DeleteByIndex(ctx, prior.IndexName); err != nil {
			logger.WarnContext(ctx, "failed to purge superseded passages", "index", prior.IndexName, "error", err)
		}
	}

	name := newIndexName()

	if err := m.vectorStore.CreateIndex(ctx, name, m.vectorSize); err != nil {
		return Handle{}, fmt.Errorf("failed to create index: %w", err)
	}

	embeddings, err := m.embedder.EmbedTexts(ctx, passages)
	if err != nil {
		m.abandon(ctx, name)
		return Handle{}, fmt.Errorf("failed to embed passages: %w", err)
	}
	if len(embeddings) != len(passages) {
		m.abandon(ctx, name)
		return Handle{}, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(passages), len(embeddings))
	}

	points := make([]vectorstore.Point, len(passages))
	records := make([]*storage.PassageRecord, len(passages))
	for i, text := range passages {
		id := uuid.New().String()
		records[i] = &storage.PassageRecord{
			ID:        id,
			IndexName: name,
			Position:  i,
			Text:      text,
		}
		points[i] = vectorstore.Point{
			ID:  id,
			Vec: embeddings[i],
			Meta: map[string]any{
				"index_name": name,
				"position":   i,
			},
		}
	}

	for _, rec := range records {
		if err := m.passageRepo.Insert(ctx, rec); err != nil {
			m.abandon(ctx, name)
			return Handle{}, fmt.Errorf("failed to store passage: %w", err)
		}
	}

	if err := m.vectorStore.Upsert(ctx, name, points); err != nil {
		m.abandon(ctx, name)
		return Handle{}, fmt.Errorf("failed to upsert vectors: %w", err)
	}

	logger.InfoContext(ctx, "index built", "index", name, "passages", len(passages))
	return Handle{IndexName: name, TopK: m.topK}, nil
}

// Teardown deletes the index and its stored passages. It is a no-op for the
// zero handle; deletion failures propagate so explicit cleanup cannot fail
// silently.
func (m *Manager) Teardown(ctx context.Context, h Handle) error {
	logger := contextutil.LoggerFromContext(ctx)

	if h.IsZero() {
		return nil
	}

	if err := m.vectorStore.DeleteIndex(ctx, h.IndexName); err != nil {
		return fmt.Errorf("failed to delete index: %w", err)
	}
	if err := m.passageRepo.DeleteByIndex(ctx, h.IndexName); err != nil {
		// Rows are in-memory; a purge failure leaks nothing external.
		logger.WarnContext(ctx, "failed to purge passages", "index", h.IndexName, "error", err)
	}

	logger.InfoContext(ctx, "index torn down", "index", h.IndexName)
	return nil
}

// abandon removes what was created for a failed build.
func (m *Manager) abandon(ctx context.Context, name string) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := m.vectorStore.DeleteIndex(ctx, name); err != nil {
		logger.WarnContext(ctx, "failed to delete abandoned index", "index", name, "error", err)
	}
	if err := m.passageRepo.DeleteByIndex(ctx, name); err != nil {
		logger.WarnContext(ctx, "failed to purge abandoned passages", "index", name, "error", err)
	}
}
