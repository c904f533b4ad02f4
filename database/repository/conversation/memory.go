// File: database/repository/conversation/memory.go
package conversationRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"transformai/models"
)

type memoryConversationRepo struct {
	mu             sync.Mutex
	bySession      map[string]*models.Conversation
	messagesByConv map[string][]models.Message
}

// NewMemoryConversationRepo constructs an in-memory ConversationRepository.
func NewMemoryConversationRepo() ConversationRepository {
	return &memoryConversationRepo{
		bySession:      make(map[string]*models.Conversation),
		messagesByConv: make(map[string][]models.Message),
	}
}

func (r *memoryConversationRepo) GetOrCreate(_ context.Context, sessionID string) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	convo, ok := r.bySession[sessionID]
	if !ok {
		convo = &models.Conversation{
			ID:            uuid.New().String(),
			SessionID:     sessionID,
			StartedAt:     now,
			LastMessageAt: now,
		}
		r.bySession[sessionID] = convo
	}
	convo.LastMessageAt = now
	copied := *convo
	return &copied, nil
}

func (r *memoryConversationRepo) SaveMessage(_ context.Context, conversationID, content string, isUser bool) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := models.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Content:        content,
		IsUser:         isUser,
		Timestamp:      time.Now(),
	}
	r.messagesByConv[conversationID] = append(r.messagesByConv[conversationID], msg)
	return &msg, nil
}

func (r *memoryConversationRepo) MessagesFor(_ context.Context, conversationID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := r.messagesByConv[conversationID]
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (r *memoryConversationRepo) ListSummaries(context.Context) ([]models.ConversationSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	summaries := make([]models.ConversationSummary, 0, len(r.bySession))
	for _, convo := range r.bySession {
		summaries = append(summaries, models.ConversationSummary{
			Conversation: *convo,
			MessageCount: len(r.messagesByConv[convo.ID]),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastMessageAt.After(summaries[j].LastMessageAt)
	})
	return summaries, nil
}
