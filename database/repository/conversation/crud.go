// File: database/repository/conversation/crud.go
package conversationRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"transformai/models"
)

func (r *mongoConversationRepo) GetOrCreate(ctx context.Context, sessionID string) (*models.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()

	var convo models.Conversation
	err := r.conversations.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&convo)
	if err == mongo.ErrNoDocuments {
		convo = models.Conversation{
			ID:            uuid.New().String(),
			SessionID:     sessionID,
			StartedAt:     now,
			LastMessageAt: now,
		}
		if _, err := r.conversations.InsertOne(ctx, convo); err != nil {
			return nil, err
		}
		return &convo, nil
	}
	if err != nil {
		return nil, err
	}

	convo.LastMessageAt = now
	update := bson.M{"$set": bson.M{"last_message_at": now}}
	if _, err := r.conversations.UpdateOne(ctx, bson.M{"id": convo.ID}, update); err != nil {
		return nil, err
	}
	return &convo, nil
}

func (r *mongoConversationRepo) SaveMessage(ctx context.Context, conversationID, content string, isUser bool) (*models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	msg := models.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Content:        content,
		IsUser:         isUser,
		Timestamp:      time.Now(),
	}
	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *mongoConversationRepo) MessagesFor(ctx context.Context, conversationID string) ([]models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *mongoConversationRepo) ListSummaries(ctx context.Context) ([]models.ConversationSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})
	cursor, err := r.conversations.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var convos []models.Conversation
	if err := cursor.All(ctx, &convos); err != nil {
		return nil, err
	}

	summaries := make([]models.ConversationSummary, 0, len(convos))
	for _, convo := range convos {
		count, err := r.messages.CountDocuments(ctx, bson.M{"conversation_id": convo.ID})
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.ConversationSummary{
			Conversation: convo,
			MessageCount: int(count),
		})
	}
	return summaries, nil
}
