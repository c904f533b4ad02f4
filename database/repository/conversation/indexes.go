// File: database/repository/conversation/indexes.go
package conversationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the conversation
// collections.
func (r *mongoConversationRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	convIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_session_id"),
		},
		{
			Keys:    bson.D{{Key: "last_message_at", Value: -1}},
			Options: options.Index().SetName("last_message_at_desc"),
		},
	}
	if _, err := r.conversations.Indexes().CreateMany(ctx, convIndexes); err != nil {
		return fmt.Errorf("failed to create conversation indexes: %w", err)
	}

	msgIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "conversation_id", Value: 1}, {Key: "timestamp", Value: 1}},
			Options: options.Index().SetName("conversation_timestamp"),
		},
	}
	if _, err := r.messages.Indexes().CreateMany(ctx, msgIndexes); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}
