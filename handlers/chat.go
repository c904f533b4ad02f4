package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transformai/models"
	"transformai/services/assistant"
	"transformai/utils"
)

// ChatHandler is the widget's single conversational endpoint.
func ChatHandler(svc assistant.AssistantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		reply, sessionID := svc.HandleChat(c.Request.Context(), req.SessionID, req.Message)
		c.JSON(http.StatusOK, models.ChatResponse{
			Response:  reply,
			SessionID: sessionID,
		})
	}
}

// HealthHandler reports liveness and the active storage backend.
func HealthHandler(storageMode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Transform AI Chatbot server is running",
			"storage": storageMode,
		})
	}
}
