package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_services.go -package=mocks xplaindfile/internal/service IndexBuilder,UploadService,ChatService,ResetService

import (
	"context"
	"errors"

	"xplaindfile/internal/chunker"
	"xplaindfile/internal/contextutil"
	"xplaindfile/internal/extract"
	"xplaindfile/internal/index"
	"xplaindfile/internal/session"
)

// Response messages returned to the client.
const (
	MsgUploaded      = "File uploaded, indexed, and ready for chat."
	MsgAlreadyLoaded = "A file is already uploaded. Please reset before uploading a new file."
	MsgReset         = "Session reset successfully."
)

// IndexBuilder owns vector index lifecycle operations.
// This interface is defined from the service layer's perspective (consumer-first).
type IndexBuilder interface {
	// Build creates a fresh index over the passages, superseding prior.
	Build(ctx context.Context, prior index.Handle, passages []string) (index.Handle, error)
	// Teardown deletes an index; no-op for the zero handle.
	Teardown(ctx context.Context, h index.Handle) error
}

// UploadService handles document uploads.
type UploadService interface {
	// Upload extracts, chunks and indexes a document, then marks the session
	// loaded. A second upload while a document is loaded is answered with a
	// rejection message, not an error.
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// uploadService implements UploadService.
type uploadService struct {
	sess     *session.Session
	splitter *chunker.Splitter
	indexes  IndexBuilder
}

// NewUploadService creates a new UploadService.
func NewUploadService(sess *session.Session, splitter *chunker.Splitter, indexes IndexBuilder) UploadService {
	return &uploadService{
		sess:     sess,
		splitter: splitter,
		indexes:  indexes,
	}
}

// Upload runs the upload pipeline: guard, extract, chunk, build, commit.
// External failures leave the session in its pre-upload empty state.
func (s *uploadService) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	snap := s.sess.Snapshot()
	if snap.Loaded {
		logger.InfoContext(ctx, "upload rejected, document already loaded")
		return MsgAlreadyLoaded, nil
	}

	text, err := extract.Text(filename, data)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) || errors.Is(err, extract.ErrNoText) || errors.Is(err, extract.ErrCorruptFile) {
			return "", &ValidationError{Field: "file", Message: err.Error()}
		}
		return "", WrapError(err, "failed to extract text")
	}

	passages := s.splitter.Split(text)
	if len(passages) == 0 {
		return "", &ValidationError{Field: "file", Message: "no readable text found in the document"}
	}

	handle, err := s.indexes.Build(ctx, snap.Handle, passages)
	if err != nil {
		return "", external(err, "failed to build index")
	}

	if !s.sess.Commit(handle) {
		// Lost an upload race; this build's index must not leak.
		logger.WarnContext(ctx, "upload raced by another upload, discarding index", "index", handle.IndexName)
		if terr := s.indexes.Teardown(ctx, handle); terr != nil {
			logger.WarnContext(ctx, "failed to discard raced index", "index", handle.IndexName, "error", terr)
		}
		return MsgAlreadyLoaded, nil
	}

	logger.InfoContext(ctx, "document uploaded and indexed",
		"filename", filename,
		"passages", len(passages),
		"index", handle.IndexName,
	)
	return MsgUploaded, nil
}
