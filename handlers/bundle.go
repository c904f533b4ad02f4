// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"

	conversationRepo "transformai/database/repository/conversation"
	"transformai/services/assistant"
	"transformai/services/scheduling"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Health gin.HandlerFunc
	Chat   gin.HandlerFunc

	// Appointment endpoints
	GetAvailableSlots gin.HandlerFunc
	BookAppointment   gin.HandlerFunc
	VerifyAppointment gin.HandlerFunc
	CancelByToken     gin.HandlerFunc

	// Admin endpoints
	ListAppointments     gin.HandlerFunc
	CancelAppointment    gin.HandlerFunc
	RefreshSlots         gin.HandlerFunc
	ListConversations    gin.HandlerFunc
	ConversationMessages gin.HandlerFunc
}

// NewHandlerBundle wires every handler to its service.
func NewHandlerBundle(
	chat assistant.AssistantService,
	avail scheduling.AvailabilityService,
	ledger scheduling.AppointmentService,
	catalog scheduling.SlotCatalog,
	conversations conversationRepo.ConversationRepository,
	storageMode string,
) *HandlerBundle {
	return &HandlerBundle{
		Health: HealthHandler(storageMode),
		Chat:   ChatHandler(chat),

		GetAvailableSlots: GetAvailableSlotsHandler(avail),
		BookAppointment:   BookAppointmentHandler(ledger),
		VerifyAppointment: VerifyAppointmentHandler(ledger),
		CancelByToken:     CancelByTokenHandler(ledger),

		ListAppointments:     ListAppointmentsHandler(ledger),
		CancelAppointment:    CancelAppointmentHandler(ledger),
		RefreshSlots:         RefreshSlotsHandler(catalog),
		ListConversations:    ListConversationsHandler(conversations),
		ConversationMessages: ConversationMessagesHandler(conversations),
	}
}
