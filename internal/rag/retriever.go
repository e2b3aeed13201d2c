package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_rag.go -package=mocks xplaindfile/internal/rag Embedder,Generator,Retriever,Engine

import (
	"context"
	"fmt"

	"xplaindfile/internal/contextutil"
	"xplaindfile/internal/index"
	"xplaindfile/internal/storage"
	"xplaindfile/internal/vectorstore"
)

// Embedder generates embedding vectors for texts.
// This interface is defined from the retriever's perspective (consumer-first).
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces a prose completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Retriever returns the passages most similar to a question, ordered by
// descending similarity, at most handle.TopK of them.
type Retriever interface {
	Retrieve(ctx context.Context, handle index.Handle, question string) ([]string, error)
}

// vectorRetriever implements Retriever over the vector store, resolving
// search hits back to passage text through the passage store.
type vectorRetriever struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	passageRepo storage.PassageStore
}

// NewRetriever creates a Retriever backed by the vector store.
func NewRetriever(embedder Embedder, vectorStore vectorstore.VectorStore, passageRepo storage.PassageStore) Retriever {
	return &vectorRetriever{
		embedder:    embedder,
		vectorStore: vectorStore,
		passageRepo: passageRepo,
	}
}

// Retrieve embeds the question, searches the index and resolves the hits to
// passage texts in score order.
func (r *vectorRetriever) Retrieve(ctx context.Context, handle index.Handle, question string) ([]string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	embeddings, err := r.embedder.EmbedTexts(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for question")
	}

	results, err := r.vectorStore.Search(ctx, handle.IndexName, embeddings[0], handle.TopK)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	passages := make([]string, 0, len(results))
	for i, result := range results {
		rec, err := r.passageRepo.GetByID(ctx, result.PointID)
		if err != nil {
			logger.WarnContext(ctx, "failed to resolve passage text", "point_id", result.PointID, "error", err)
			continue
		}
		passages = append(passages, rec.Text)

		logger.DebugContext(ctx, "retrieved passage",
			"rank", i+1,
			"score", result.Score,
			"position", rec.Position,
			"text_length", len(rec.Text),
		)
	}

	logger.InfoContext(ctx, "retrieval completed", "index", handle.IndexName, "k", handle.TopK, "passages", len(passages))
	return passages, nil
}
