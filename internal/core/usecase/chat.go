package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmorenov/ragchat/internal/core/domain"
	"github.com/dmorenov/ragchat/internal/core/ports"
)

// FailedAnswerMessage is the fixed assistant text for a query that
// settled with a failure. The raw error never reaches the log.
const FailedAnswerMessage = "Sorry, I could not get an answer to that question right now. Please try again."

// ChatSession holds the ordered, append-only conversation log and drives
// the query cycle: guard, append the user turn, settle into exactly one
// assistant turn. Concurrent submissions interleave in completion order;
// a submitted question always settles even if the caller moved on.
type ChatSession struct {
	source ports.DataSource

	mu       sync.Mutex
	turns    []domain.ChatTurn
	inFlight int
}

func NewChatSession(source ports.DataSource) *ChatSession {
	return &ChatSession{source: source}
}

// Submit rejects precondition violations synchronously without touching
// the log. An accepted submission contributes exactly two turns and
// returns the assistant turn once the query settles.
func (s *ChatSession) Submit(ctx context.Context, documentID, question string) (domain.ChatTurn, error) {
	if strings.TrimSpace(documentID) == "" {
		return domain.ChatTurn{}, domain.ErrNoDocumentSelected
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.ChatTurn{}, domain.ErrBlankQuestion
	}

	s.mu.Lock()
	s.turns = append(s.turns, domain.ChatTurn{
		ID:        uuid.NewString(),
		Role:      domain.RoleUser,
		Text:      question,
		CreatedAt: time.Now().UTC(),
	})
	s.inFlight++
	s.mu.Unlock()

	result, err := s.source.Query(ctx, documentID, question)

	turn := domain.ChatTurn{
		ID:        uuid.NewString(),
		Role:      domain.RoleAssistant,
		CreatedAt: time.Now().UTC(),
	}
	if err != nil {
		slog.Warn("query_settled_with_error", "document_id", documentID, "error", err)
		turn.Text = FailedAnswerMessage
	} else {
		turn.Text = result.Answer
		turn.Evidence = result.Evidence
		if turn.Evidence == nil {
			turn.Evidence = []domain.Evidence{}
		}
	}

	s.mu.Lock()
	s.turns = append(s.turns, turn)
	s.inFlight--
	s.mu.Unlock()

	return turn, nil
}

// Turns returns a copy of the conversation log in insertion order.
func (s *ChatSession) Turns() []domain.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Busy reports whether at least one submission is awaiting its answer.
func (s *ChatSession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

func (s *ChatSession) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}
