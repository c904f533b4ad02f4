// File: database/repository/conversation/interface.go
package conversationRepo

import (
	"context"
	"errors"

	"transformai/database"
	"transformai/models"
	"transformai/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no conversation carries the requested id.
var ErrNotFound = errors.New("conversation not found")

// ConversationRepository persists chat history for the assistant's context
// window and the admin panel.
type ConversationRepository interface {
	// GetOrCreate returns the conversation for a session id, creating it on
	// first use and bumping last_message_at on every call.
	GetOrCreate(ctx context.Context, sessionID string) (*models.Conversation, error)
	SaveMessage(ctx context.Context, conversationID, content string, isUser bool) (*models.Message, error)
	// MessagesFor returns a conversation's messages ordered by timestamp
	// ascending.
	MessagesFor(ctx context.Context, conversationID string) ([]models.Message, error)
	// ListSummaries returns all conversations with message counts, most
	// recently active first.
	ListSummaries(ctx context.Context) ([]models.ConversationSummary, error)
}

type mongoConversationRepo struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

// NewMongoConversationRepo constructs a new MongoDB ConversationRepository.
func NewMongoConversationRepo() ConversationRepository {
	db := database.DB()
	repo := &mongoConversationRepo{
		conversations: db.Collection("conversations"),
		messages:      db.Collection("messages"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create conversation indexes", zap.Error(err))
	}
	return repo
}
