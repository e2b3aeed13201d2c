package rag

// Source tags the provenance of an answer.
type Source string

const (
	// SourceFile marks an answer grounded in the uploaded document.
	SourceFile Source = "file"
	// SourceLLM marks a general-knowledge fallback answer.
	SourceLLM Source = "llm"
	// SourceSystem marks a canned response when no document is loaded.
	SourceSystem Source = "system"
)

// Answer is the result of one chat turn. It is not persisted.
type Answer struct {
	Text   string
	Source Source
}
