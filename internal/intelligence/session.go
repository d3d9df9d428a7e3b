package intelligence

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Turn roles.
const (
	RoleUser = "user"
	RoleBot  = BotName
)

// Turn is one entry of the conversation history.
type Turn struct {
	Role    string
	Content string
	Kind    ResponseKind // set on bot turns
}

// Session is the memory of one conversation: the user's name and the turn
// history. A Session handles one message at a time and is never persisted.
type Session struct {
	ID string

	a        *Assistant
	gen      *Generator
	userName string
	turns    []Turn
	warned   int
	log      *zap.Logger
}

// NewSession starts a conversation with its own Generator.
func (a *Assistant) NewSession() *Session {
	id := uuid.NewString()
	return a.newSession(id, a.NewGenerator(id))
}

// NewSessionWithGenerator starts a conversation that shares gen with other
// sessions, so the backend is loaded at most once across all of them. Every
// sharing session reports a load failure once through Warnings.
func (a *Assistant) NewSessionWithGenerator(gen *Generator) *Session {
	return a.newSession(uuid.NewString(), gen)
}

func (a *Assistant) newSession(id string, gen *Generator) *Session {
	return &Session{
		ID:  id,
		a:   a,
		gen: gen,
		log: a.log.With(zap.String("session", id)),
	}
}

// Greet returns a welcome line and records it as a bot turn.
func (s *Session) Greet() string {
	text := s.a.Greet(s.userName)
	s.record(RoleBot, text)
	return text
}

// ProcessMessage answers message and records both turns. It always returns
// some text.
func (s *Session) ProcessMessage(ctx context.Context, message string) string {
	s.record(RoleUser, message)
	reply, intent := s.a.Respond(ctx, s, message)
	s.record(RoleBot, reply)
	s.log.Debug("message handled",
		zap.String("intent", string(intent)),
		zap.String("kind", string(ClassifyResponse(reply))),
	)
	return reply
}

// Tip records a standalone farming tip as a bot turn.
func (s *Session) Tip() string {
	text := "💡 Farming Tip: " + s.a.RandomTip()
	s.record(RoleBot, text)
	return text
}

// UserName returns the remembered name, or "" if none was given.
func (s *Session) UserName() string { return s.userName }

// History returns a copy of the turns so far.
func (s *Session) History() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Generator returns the session's generator.
func (s *Session) Generator() *Generator { return s.gen }

// Warnings returns non-fatal problems raised since the last call, such as a
// backend that failed to load.
func (s *Session) Warnings() []string {
	if s.gen == nil {
		return nil
	}
	var w []string
	w, s.warned = s.gen.WarningsSince(s.warned)
	return w
}

func (s *Session) record(role, content string) {
	t := Turn{Role: role, Content: content}
	if role == RoleBot {
		t.Kind = ClassifyResponse(content)
	}
	s.turns = append(s.turns, t)
}
