package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/personachat/server/internal/ai"
	"github.com/personachat/server/internal/persona"
	"github.com/personachat/server/internal/promptlog"
	"go.uber.org/zap"
)

// ErrHistoryTooLong is returned when the client-supplied history exceeds the
// configured turn cap. It maps to a client error, not a backend fault.
var ErrHistoryTooLong = errors.New("history exceeds maximum turn count")

// Service is the persona-chat relay: it resolves the persona, records the
// prompt, assembles the transcript, and makes exactly one backend call per
// request. It holds no per-conversation state.
type Service struct {
	personas        *persona.Registry
	provider        ai.Provider
	recorder        promptlog.Recorder
	maxHistoryTurns int
	log             *zap.Logger
}

func NewService(personas *persona.Registry, provider ai.Provider, recorder promptlog.Recorder, maxHistoryTurns int, log *zap.Logger) *Service {
	return &Service{
		personas:        personas,
		provider:        provider,
		recorder:        recorder,
		maxHistoryTurns: maxHistoryTurns,
		log:             log,
	}
}

// Send relays one user message. Error cases the caller must map:
// persona.ErrNotFound (unknown bot), ErrHistoryTooLong (oversized request),
// anything else is a backend failure.
func (s *Service) Send(ctx context.Context, botID int, message string, history []ai.Message) (string, error) {
	p, err := s.personas.Lookup(botID)
	if err != nil {
		return "", err
	}

	if s.maxHistoryTurns > 0 && len(history) > s.maxHistoryTurns {
		return "", fmt.Errorf("%w: %d > %d", ErrHistoryTooLong, len(history), s.maxHistoryTurns)
	}

	// Fire-and-forget: the recorder swallows its own failures.
	s.recorder.Record(p.DisplayName, message)

	transcript := BuildTranscript(p, history)

	reply, err := s.provider.Generate(ctx, transcript, message)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}

	s.log.Debug("chat reply generated",
		zap.Int("bot_id", botID),
		zap.String("persona", p.DisplayName),
		zap.Int("history_turns", len(history)),
		zap.Int("reply_len", len(reply)),
	)
	return reply, nil
}
