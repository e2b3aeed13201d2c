package rag_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"xplaindfile/internal/index"
	"xplaindfile/internal/rag"
	"xplaindfile/internal/rag/mocks"
	"xplaindfile/internal/session"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func loadedSnapshot() session.Snapshot {
	return session.Snapshot{
		Loaded: true,
		Handle: index.Handle{IndexName: "xplaindfile-cafe0123", TopK: 3},
	}
}

func TestEngine_Answer_NoDocument(t *testing.T) {
	ctrl := gomock.NewController(t)

	// No retriever or generator calls may happen.
	retriever := mocks.NewMockRetriever(ctrl)
	generator := mocks.NewMockGenerator(ctrl)
	engine := rag.NewEngine(retriever, generator)

	got, err := engine.Answer(context.Background(), "What is this about?", session.Snapshot{})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if got.Text != "No file is uploaded yet." {
		t.Errorf("Answer() text = %q, want %q", got.Text, "No file is uploaded yet.")
	}
	if got.Source != rag.SourceSystem {
		t.Errorf("Answer() source = %q, want %q", got.Source, rag.SourceSystem)
	}
}

func TestEngine_Answer_FromDocument(t *testing.T) {
	ctrl := gomock.NewController(t)

	retriever := mocks.NewMockRetriever(ctrl)
	generator := mocks.NewMockGenerator(ctrl)
	engine := rag.NewEngine(retriever, generator)

	snap := loadedSnapshot()
	passages := []string{"The warranty lasts two years.", "Warranty claims need a receipt."}

	retriever.EXPECT().
		Retrieve(gomock.Any(), snap.Handle, "How long is the warranty?").
		Return(passages, nil)
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			// The strict prompt must carry the passages (blank-line separated),
			// the question and the refusal contract.
			if !strings.Contains(prompt, passages[0]+"\n\n"+passages[1]) {
				t.Errorf("prompt missing joined context:\n%s", prompt)
			}
			if !strings.Contains(prompt, "How long is the warranty?") {
				t.Errorf("prompt missing question:\n%s", prompt)
			}
			if !strings.Contains(prompt, "The context does not contain the answer.") {
				t.Errorf("prompt missing refusal contract:\n%s", prompt)
			}
			return "Two years.", nil
		})

	got, err := engine.Answer(context.Background(), "How long is the warranty?", snap)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if got.Text != "Two years." {
		t.Errorf("Answer() text = %q, want %q", got.Text, "Two years.")
	}
	if got.Source != rag.SourceFile {
		t.Errorf("Answer() source = %q, want %q", got.Source, rag.SourceFile)
	}
}

func TestEngine_Answer_RefusalTriggersFallback(t *testing.T) {
	tests := []struct {
		name       string
		fileAnswer string
	}{
		{"exact refusal", "The context does not contain the answer."},
		{"uppercase refusal", "THE CONTEXT DOES NOT CONTAIN THE ANSWER."},
		{"refusal inside prose", "I'm sorry, but the context does not contain the answer to that."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			retriever := mocks.NewMockRetriever(ctrl)
			generator := mocks.NewMockGenerator(ctrl)
			engine := rag.NewEngine(retriever, generator)

			snap := loadedSnapshot()
			retriever.EXPECT().
				Retrieve(gomock.Any(), snap.Handle, "question").
				Return([]string{"irrelevant passage"}, nil)

			first := generator.EXPECT().
				Generate(gomock.Any(), gomock.Any()).
				Return(tt.fileAnswer, nil)
			generator.EXPECT().
				Generate(gomock.Any(), gomock.Any()).
				After(first).
				DoAndReturn(func(_ context.Context, prompt string) (string, error) {
					if !strings.Contains(prompt, "general knowledge") {
						t.Errorf("fallback prompt should ask for general knowledge:\n%s", prompt)
					}
					return "General answer.", nil
				})

			got, err := engine.Answer(context.Background(), "question", snap)
			if err != nil {
				t.Fatalf("Answer() error = %v", err)
			}
			if got.Text != "General answer." {
				t.Errorf("Answer() text = %q, want fallback text", got.Text)
			}
			if got.Source != rag.SourceLLM {
				t.Errorf("Answer() source = %q, want %q", got.Source, rag.SourceLLM)
			}
		})
	}
}

func TestEngine_Answer_EmptyRetrievalFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)

	retriever := mocks.NewMockRetriever(ctrl)
	generator := mocks.NewMockGenerator(ctrl)
	engine := rag.NewEngine(retriever, generator)

	snap := loadedSnapshot()
	retriever.EXPECT().
		Retrieve(gomock.Any(), snap.Handle, "question").
		Return(nil, nil)

	// Only the fallback prompt runs; no context-grounded generation.
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			if strings.Contains(prompt, "ONLY the context") {
				t.Errorf("context prompt must not be used when retrieval is empty:\n%s", prompt)
			}
			return "General answer.", nil
		})

	got, err := engine.Answer(context.Background(), "question", snap)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if got.Source != rag.SourceLLM {
		t.Errorf("Answer() source = %q, want %q", got.Source, rag.SourceLLM)
	}
}

func TestEngine_Answer_RetrievalError(t *testing.T) {
	ctrl := gomock.NewController(t)

	retriever := mocks.NewMockRetriever(ctrl)
	generator := mocks.NewMockGenerator(ctrl)
	engine := rag.NewEngine(retriever, generator)

	snap := loadedSnapshot()
	retriever.EXPECT().
		Retrieve(gomock.Any(), snap.Handle, "question").
		Return(nil, errors.New("vector store down"))

	if _, err := engine.Answer(context.Background(), "question", snap); err == nil {
		t.Fatal("Answer() expected error when retrieval fails")
	}
}

func TestEngine_Answer_GenerationError(t *testing.T) {
	ctrl := gomock.NewController(t)

	retriever := mocks.NewMockRetriever(ctrl)
	generator := mocks.NewMockGenerator(ctrl)
	engine := rag.NewEngine(retriever, generator)

	snap := loadedSnapshot()
	retriever.EXPECT().
		Retrieve(gomock.Any(), snap.Handle, "question").
		Return([]string{"passage"}, nil)
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return("", errors.New("generation service down"))

	if _, err := engine.Answer(context.Background(), "question", snap); err == nil {
		t.Fatal("Answer() expected error when generation fails")
	}
}

func TestEngine_Answer_FallbackGenerationError(t *testing.T) {
	ctrl := gomock.NewController(t)

	retriever := mocks.NewMockRetriever(ctrl)
	generator := mocks.NewMockGenerator(ctrl)
	engine := rag.NewEngine(retriever, generator)

	snap := loadedSnapshot()
	retriever.EXPECT().
		Retrieve(gomock.Any(), snap.Handle, "question").
		Return(nil, nil)
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return("", errors.New("generation service down"))

	if _, err := engine.Answer(context.Background(), "question", snap); err == nil {
		t.Fatal("Answer() expected error when fallback generation fails")
	}
}
