package service

import (
	"context"
	"fmt"

	"xplaindfile/internal/contextutil"
	"xplaindfile/internal/session"
)

// ResetService clears the session.
type ResetService interface {
	// Reset tears down the active index and empties the session. Index
	// deletion failures propagate: the user explicitly asked for cleanup.
	Reset(ctx context.Context) (string, error)
}

// resetService implements ResetService.
type resetService struct {
	sess    *session.Session
	indexes IndexBuilder
}

// NewResetService creates a new ResetService.
func NewResetService(sess *session.Session, indexes IndexBuilder) ResetService {
	return &resetService{
		sess:    sess,
		indexes: indexes,
	}
}

// Reset deletes the external index before emptying the session. The session
// stays loaded on a failed delete, so a retried reset re-attempts the
// teardown instead of leaking the index. Uploads are rejected while the
// session is loaded, so nothing can commit between teardown and clear.
func (s *resetService) Reset(ctx context.Context) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	snap := s.sess.Snapshot()
	if err := s.indexes.Teardown(ctx, snap.Handle); err != nil {
		return "", external(err, fmt.Sprintf("failed to delete index %q", snap.Handle.IndexName))
	}
	s.sess.Clear()

	logger.InfoContext(ctx, "session reset", "had_index", !snap.Handle.IsZero())
	return MsgReset, nil
}
