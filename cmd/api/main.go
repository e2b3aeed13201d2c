package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"xplaindfile/internal/chunker"
	"xplaindfile/internal/config"
	"xplaindfile/internal/http"
	"xplaindfile/internal/index"
	"xplaindfile/internal/llm"
	"xplaindfile/internal/rag"
	"xplaindfile/internal/service"
	"xplaindfile/internal/session"
	"xplaindfile/internal/storage"
	"xplaindfile/internal/vectorstore"
	"xplaindfile/web"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API lets you upload a single document (PDF, Markdown or plain text)
// and chat with it. Answers come from the document when the retrieved
// context is relevant, otherwise from the model's general knowledge.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: XplainDfile API
//   description: |
//     Single session document chat. Upload one document, ask questions about
//     it, reset to start over.
//   version: 1.0.0
// schemes:
//   - http
// consumes:
//   - application/json
//   - multipart/form-data
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize the in-memory passage database
	db, err := storage.New(storage.MemoryDSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	passageRepo := storage.NewPassageRepo(db)
	slog.Info("Passage store initialized")

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	slog.Info("Qdrant client ready", "url", cfg.QdrantURL)

	// External model clients
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingModelName, config.VectorSize)
	generator := llm.NewGenerator(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.LLMModelName)

	// Core pipeline
	sess := session.New()
	splitter := chunker.New(config.ChunkSize, config.ChunkOverlap)
	indexManager := index.NewManager(embedder, vectorStore, passageRepo, config.VectorSize, config.TopK)
	retriever := rag.NewRetriever(embedder, vectorStore, passageRepo)
	engine := rag.NewEngine(retriever, generator)
	slog.Info("RAG engine initialized", "model", cfg.LLMModelName)

	// Services and router
	deps := &http.Deps{
		UploadService: service.NewUploadService(sess, splitter, indexManager),
		ChatService:   service.NewChatService(sess, engine),
		ResetService:  service.NewResetService(sess, indexManager),
		IndexHTML:     web.IndexHTML,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.GroqBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
