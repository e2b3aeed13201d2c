package service

import (
	"context"
	"strings"

	"xplaindfile/internal/contextutil"
	"xplaindfile/internal/rag"
	"xplaindfile/internal/session"
)

// ChatService answers questions against the loaded document.
type ChatService interface {
	Chat(ctx context.Context, question string) (rag.Answer, error)
}

// chatService implements ChatService.
type chatService struct {
	sess   *session.Session
	engine rag.Engine
}

// NewChatService creates a new ChatService.
func NewChatService(sess *session.Session, engine rag.Engine) ChatService {
	return &chatService{
		sess:   sess,
		engine: engine,
	}
}

func (s *chatService) Chat(ctx context.Context, question string) (rag.Answer, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question = strings.TrimSpace(question)
	if question == "" {
		return rag.Answer{}, &ValidationError{Field: "question", Message: "question cannot be empty"}
	}

	snap := s.sess.Snapshot()
	answer, err := s.engine.Answer(ctx, question, snap)
	if err != nil {
		return rag.Answer{}, external(err, "failed to answer question")
	}

	logger.InfoContext(ctx, "question answered", "source", answer.Source)
	return answer, nil
}
