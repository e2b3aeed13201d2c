package handlers

import (
	"errors"
	"io"
	"net/http"

	"xplaindfile/internal/contextutil"
	"xplaindfile/internal/service"
)

// maxUploadBytes caps the request body for document uploads.
const maxUploadBytes = 32 << 20 // 32 MiB

// UploadHandler handles HTTP requests for document uploads.
type UploadHandler struct {
	uploads service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploads service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// UploadResponse represents the HTTP response payload for uploads.
//
// swagger:model UploadResponse
type UploadResponse struct {
	Message string `json:"message"`
}

// ServeHTTP handles HTTP requests for document uploads.
//
// swagger:route POST /upload uploadFile
//
// # Upload a document
//
// Accepts a multipart form with a single "file" field containing a PDF,
// Markdown or plain text document. The document is extracted, chunked,
// embedded and indexed for chat.
//
// ---
// consumes:
// - multipart/form-data
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Document indexed, or rejection notice when one is loaded
//	  schema:
//	    "$ref": "#/definitions/UploadResponse"
//	'400':
//	  description: Bad request (missing file, unsupported type, empty document)
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'502':
//	  description: External service error (embedding, vector store)
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.WarnContext(ctx, "upload too large", "limit", maxErr.Limit)
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		logger.WarnContext(ctx, "missing file in upload request", "error", err)
		writeError(w, http.StatusBadRequest, "A \"file\" form field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.WarnContext(ctx, "failed to read uploaded file", "error", err)
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	msg, err := h.uploads.Upload(ctx, header.Filename, data)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to process upload")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{Message: msg})
}
