package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"doq-health/internal/platform/gemini"
)

// ValidationError is the missing-message 400 case.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string { return e.Field + " is required" }

type Service interface {
	// Respond generates the assistant reply for one message and, for an
	// authenticated user, appends both sides to the conversation log.
	Respond(ctx context.Context, userID, message string) (Reply, error)
	History(ctx context.Context, userID string) ([]Message, error)
}

type service struct {
	gw   gemini.Gateway
	repo Repository
	log  *zap.Logger
}

func NewService(gw gemini.Gateway, repo Repository, log *zap.Logger) Service {
	return &service{gw: gw, repo: repo, log: log}
}

func buildChatPrompt(message string) string {
	return fmt.Sprintf(`You are a helpful AI health assistant. Provide accurate, helpful, and safe health information.
Remember: You cannot diagnose, prescribe, or replace professional medical advice.

User question: %s

Provide a helpful response that:
1. Addresses the user's question
2. Provides general health information
3. Encourages professional consultation when appropriate
4. Is clear and easy to understand`, message)
}

func (s *service) Respond(ctx context.Context, userID, message string) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, &ValidationError{Field: "message"}
	}

	// Single gateway call, no retry, no JSON parsing: the raw text is the
	// payload. A failure becomes an in-conversation assistant message, not
	// an error surface, to preserve conversational flow.
	reply := Reply{Confidence: ResponseConfidence}
	text, err := s.gw.Generate(ctx, buildChatPrompt(message))
	if err != nil {
		s.log.Warn("chat generation failed, returning fallback", zap.Error(err))
		reply.Response = FallbackText
		reply.Confidence = FallbackConfidence
	} else {
		reply.Response = text
	}

	if userID != "" {
		s.persist(ctx, userID, message, reply)
	}

	return reply, nil
}

// persist appends the user message and the assistant reply to the log.
// Failures are logged and swallowed; the conversation continues regardless.
func (s *service) persist(ctx context.Context, userID, message string, reply Reply) {
	if err := s.repo.Insert(ctx, &Message{
		UserID:  userID,
		Type:    MessageTypeUser,
		Content: message,
	}); err != nil {
		s.log.Warn("failed to persist user chat message", zap.String("user_id", userID), zap.Error(err))
	}

	confidence := reply.Confidence
	if err := s.repo.Insert(ctx, &Message{
		UserID:     userID,
		Type:       MessageTypeAI,
		Content:    reply.Response,
		Confidence: &confidence,
	}); err != nil {
		s.log.Warn("failed to persist ai chat message", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *service) History(ctx context.Context, userID string) ([]Message, error) {
	return s.repo.ListByUser(ctx, userID, 50)
}
