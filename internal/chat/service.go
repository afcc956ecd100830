package chat

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bmartins-dev/bruno-dev/internal/fallback"
	"github.com/bmartins-dev/bruno-dev/internal/llm"
)

// ErrSuperseded reports that a newer message (or a clear) arrived for the
// same session while this completion was in flight. The late result has been
// discarded; the caller should show nothing for it.
var ErrSuperseded = errors.New("chat: response superseded by a newer request")

// Reply sources, surfaced to the widget so it can tell a real completion from
// a canned answer.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// Reply is one assistant turn.
type Reply struct {
	SessionID string
	Text      string
	Source    string
}

// UsageLog records completed exchanges for the admin dashboard. Implementations
// must tolerate concurrent calls; logging is best-effort and never blocks a
// reply.
type UsageLog interface {
	LogExchange(sessionID, userText, reply, source string) error
}

// Service runs the conversation flow: append the user message, send the
// transcript through the transport, and either record the assistant reply or
// fall back to the keyword matcher. A failed exchange never reaches the
// transcript, so the upstream-sent state stays clean.
type Service struct {
	sessions *Manager
	sender   llm.Sender
	usage    UsageLog
	log      *slog.Logger
}

// NewService wires the conversation flow. usage may be nil.
func NewService(sessions *Manager, sender llm.Sender, usage UsageLog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sessions: sessions,
		sender:   sender,
		usage:    usage,
		log:      logger,
	}
}

// Respond handles one user message and returns the assistant's reply. The
// only error it returns is ErrSuperseded; every transport failure is absorbed
// into a fallback reply.
func (svc *Service) Respond(ctx context.Context, sessionID, text string) (Reply, error) {
	id, s := svc.sessions.acquire(sessionID)

	s.mu.Lock()
	s.buffer.AppendUser(text)
	s.generation++
	gen := s.generation
	transcript := s.buffer.Snapshot()
	s.mu.Unlock()

	answer, sendErr := svc.sender.Send(ctx, transcript)

	s.mu.Lock()
	stale := s.generation != gen
	if !stale && sendErr == nil {
		s.buffer.AppendAssistant(answer)
	}
	s.mu.Unlock()

	if stale {
		svc.log.Info("discarding stale completion", "session_id", id)
		return Reply{}, ErrSuperseded
	}

	reply := Reply{SessionID: id, Text: answer, Source: SourceModel}
	if sendErr != nil {
		var lerr *llm.Error
		if errors.As(sendErr, &lerr) {
			svc.log.Warn("completion failed, serving fallback",
				"session_id", id, "kind", string(lerr.Kind), "error", sendErr)
		} else {
			svc.log.Warn("completion failed, serving fallback",
				"session_id", id, "error", sendErr)
		}
		reply.Text = fallback.Match(text)
		reply.Source = SourceFallback
	}

	svc.record(id, text, reply.Text, reply.Source)
	return reply, nil
}

// Clear resets the session's transcript to the system message.
func (svc *Service) Clear(sessionID string) {
	svc.sessions.Clear(sessionID)
}

func (svc *Service) record(sessionID, userText, reply, source string) {
	if svc.usage == nil {
		return
	}
	go func() {
		if err := svc.usage.LogExchange(sessionID, userText, reply, source); err != nil {
			svc.log.Warn("failed to record chat exchange", "session_id", sessionID, "error", err)
		}
	}()
}
