package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	conversationRepo "transformai/database/repository/conversation"
	"transformai/utils"
)

// ListConversationsHandler feeds the admin panel's conversation list.
func ListConversationsHandler(repo conversationRepo.ConversationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		conversations, err := repo.ListSummaries(c.Request.Context())
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Error retrieving conversations", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"conversations": conversations})
	}
}

// ConversationMessagesHandler returns one conversation's full transcript.
func ConversationMessagesHandler(repo conversationRepo.ConversationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		messages, err := repo.MessagesFor(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Error retrieving messages", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages})
	}
}
