package handlers

import (
	"encoding/json"
	"net/http"

	"xplaindfile/internal/contextutil"
	"xplaindfile/internal/service"
)

// ChatHandler handles HTTP requests for chat questions.
type ChatHandler struct {
	chats service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chats service.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

// ChatRequest represents the HTTP request payload for chat questions.
//
// swagger:model ChatRequest
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse represents the HTTP response payload for chat questions.
//
// swagger:model ChatResponse
type ChatResponse struct {
	// The generated answer
	Answer string `json:"answer"`

	// Where the answer came from: "file", "llm" or "system"
	Source string `json:"source"`
}

// ServeHTTP handles HTTP requests for chat questions.
//
// swagger:route POST /chat askQuestion
//
// # Ask a question about the uploaded document
//
// Answers from the document context when it is relevant, otherwise falls
// back to general knowledge. With no document uploaded, returns a system
// notice instead of calling the model.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Answer with its source
//	  schema:
//	    "$ref": "#/definitions/ChatResponse"
//	'400':
//	  description: Bad request (missing or empty question)
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'502':
//	  description: External service error (LLM, embedding, vector store)
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	answer, err := h.chats.Chat(ctx, req.Question)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to answer question")
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Answer: answer.Text,
		Source: string(answer.Source),
	})
}
