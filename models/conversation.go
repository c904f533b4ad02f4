package models

import "time"

// Conversation is a chat thread keyed by the widget's session id.
type Conversation struct {
	ID            string    `bson:"id" json:"id"`
	SessionID     string    `bson:"session_id" json:"session_id"`
	StartedAt     time.Time `bson:"started_at" json:"started_at"`
	LastMessageAt time.Time `bson:"last_message_at" json:"last_message_at"`
}

// ConversationSummary is the admin-panel view of a conversation.
type ConversationSummary struct {
	Conversation `bson:",inline"`
	MessageCount int `bson:"message_count" json:"message_count"`
}

// Message is one turn of a conversation, authored by the user or the
// assistant.
type Message struct {
	ID             string    `bson:"id" json:"id"`
	ConversationID string    `bson:"conversation_id" json:"conversation_id"`
	Content        string    `bson:"content" json:"content"`
	IsUser         bool      `bson:"is_user" json:"is_user"`
	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
}
