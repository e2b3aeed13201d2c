package rag

import (
	"context"
	"fmt"
	"strings"

	"xplaindfile/internal/contextutil"
	"xplaindfile/internal/session"
)

// noDocumentMessage is returned verbatim when chat is used before an upload.
const noDocumentMessage = "No file is uploaded yet."

// Engine answers questions against the current session, grounding answers in
// the uploaded document when retrieval finds relevant passages and falling
// back to the model's general knowledge otherwise.
type Engine interface {
	// Answer produces an answer for the question given the session snapshot.
	Answer(ctx context.Context, question string, snap session.Snapshot) (Answer, error)
}

// answerEngine implements the Engine interface.
type answerEngine struct {
	retriever Retriever
	generator Generator
}

// NewEngine creates a new answer engine.
func NewEngine(retriever Retriever, generator Generator) Engine {
	return &answerEngine{
		retriever: retriever,
		generator: generator,
	}
}

// Answer runs the two-path decision logic:
//
//  1. no document loaded → canned system response, no external calls;
//  2. retrieval empty → general-knowledge fallback;
//  3. document-grounded answer, unless the model self-reports that the
//     context was insufficient, in which case the answer is discarded and
//     the fallback path runs instead.
func (e *answerEngine) Answer(ctx context.Context, question string, snap session.Snapshot) (Answer, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if !snap.Loaded {
		logger.InfoContext(ctx, "chat without document")
		return Answer{Text: noDocumentMessage, Source: SourceSystem}, nil
	}

	passages, err := e.retriever.Retrieve(ctx, snap.Handle, question)
	if err != nil {
		return Answer{}, fmt.Errorf("retrieval failed: %w", err)
	}

	if len(passages) == 0 {
		logger.InfoContext(ctx, "no passages retrieved, using fallback")
		return e.fallback(ctx, question)
	}

	contextText := strings.Join(passages, "\n\n")
	prompt := fmt.Sprintf(filePromptTmpl, refusalSentence, contextText, question)

	fileAnswer, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return Answer{}, fmt.Errorf("generation failed: %w", err)
	}

	if containsRefusal(fileAnswer) {
		logger.InfoContext(ctx, "model refused to answer from context, using fallback")
		return e.fallback(ctx, question)
	}

	logger.InfoContext(ctx, "answered from document", "passages", len(passages), "answer_length", len(fileAnswer))
	return Answer{Text: fileAnswer, Source: SourceFile}, nil
}

// fallback answers from the model's general knowledge, ignoring the document.
func (e *answerEngine) fallback(ctx context.Context, question string) (Answer, error) {
	logger := contextutil.LoggerFromContext(ctx)

	text, err := e.generator.Generate(ctx, fmt.Sprintf(fallbackPromptTmpl, question))
	if err != nil {
		return Answer{}, fmt.Errorf("fallback generation failed: %w", err)
	}

	logger.InfoContext(ctx, "answered from general knowledge", "answer_length", len(text))
	return Answer{Text: text, Source: SourceLLM}, nil
}
