// File: services/assistant/service.go
package assistant

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	conversationRepo "transformai/database/repository/conversation"
	"transformai/models"
	"transformai/services/dialogue"
	"transformai/utils"
)

// AssistantService is the chat entry point. It persists the exchange and
// routes each message either into the booking dialogue or the general reply
// path.
type AssistantService interface {
	HandleChat(ctx context.Context, sessionID, message string) (reply, outSessionID string)
}

// DefaultAssistantService is the production AssistantService.
type DefaultAssistantService struct {
	Conversations  conversationRepo.ConversationRepository
	Dialogue       *dialogue.Controller
	Intents        dialogue.IntentClassifier
	Generator      ReplyGenerator
	PromptTemplate string
}

func (s *DefaultAssistantService) HandleChat(ctx context.Context, sessionID, message string) (string, string) {
	logger := utils.GetLogger()

	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	// History persistence is best-effort. A storage failure degrades the
	// reply to history-less but never blocks the conversation.
	var conversationID string
	var history []models.Message
	conv, err := s.Conversations.GetOrCreate(ctx, sessionID)
	if err != nil {
		logger.Warn("Failed to load conversation",
			zap.String("sessionId", sessionID), zap.Error(err))
	} else {
		conversationID = conv.ID
		if _, err := s.Conversations.SaveMessage(ctx, conversationID, message, true); err != nil {
			logger.Warn("Failed to save user message", zap.Error(err))
		}
		history, err = s.Conversations.MessagesFor(ctx, conversationID)
		if err != nil {
			logger.Warn("Failed to load conversation history", zap.Error(err))
		}
	}

	reply := s.respond(ctx, sessionID, message, history)

	if conversationID != "" {
		if _, err := s.Conversations.SaveMessage(ctx, conversationID, reply, false); err != nil {
			logger.Warn("Failed to save assistant message", zap.Error(err))
		}
	}

	return reply, sessionID
}

func (s *DefaultAssistantService) respond(ctx context.Context, sessionID, message string, history []models.Message) string {
	logger := utils.GetLogger()

	if s.Dialogue.InSession(ctx, sessionID) || s.Intents.IsBookingIntent(message) {
		reply, err := s.Dialogue.HandleBookingTurn(ctx, sessionID, message)
		if err != nil {
			logger.Error("Booking dialogue error", zap.Error(err))
			return ErrorReply
		}
		return reply
	}

	if reply, ok := cannedReply(message); ok {
		return reply
	}

	prompt := s.buildPrompt(message, history)
	reply, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		logger.Error("Error generating AI response", zap.Error(err))
		return ErrorReply
	}
	return cleanGeneratedReply(reply)
}

// buildPrompt prefers raw conversation history as context; the templated
// prompt is only used for the opening message of a conversation.
func (s *DefaultAssistantService) buildPrompt(message string, history []models.Message) string {
	template := s.PromptTemplate
	if template == "" {
		template = DefaultPromptTemplate
	}

	// The user's current message is already the last entry of history.
	var prior []models.Message
	if len(history) > 1 {
		prior = history[:len(history)-1]
	}
	if len(prior) > 0 {
		return formatHistory(prior) + "\n\nUser: " + message
	}
	return strings.Replace(template, "{{QUESTION}}", message, 1)
}
