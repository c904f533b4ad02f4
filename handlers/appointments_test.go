package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transformai/config"
	appointmentRepo "transformai/database/repository/appointment"
	conversationRepo "transformai/database/repository/conversation"
	slotRepo "transformai/database/repository/slot"
	"transformai/handlers"
	"transformai/models"
	"transformai/routes"
	"transformai/services/assistant"
	"transformai/services/dialogue"
	"transformai/services/scheduling"
	"transformai/utils"
)

type noopDispatcher struct{}

func (noopDispatcher) BookingConfirmed(context.Context, models.Appointment)         {}
func (noopDispatcher) BookingCancelled(context.Context, models.Appointment, string) {}
func (noopDispatcher) AdminAlert(context.Context, string, map[string]string)        {}

type staticGenerator struct{}

func (staticGenerator) Generate(context.Context, string) (string, error) {
	return "generated reply", nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.AdminAPIToken = "test-admin-token"
	ctx := context.Background()

	now := time.Date(2026, time.March, 4, 8, 0, 0, 0, time.Local)
	slots := slotRepo.NewMemorySlotRepo()
	appts := appointmentRepo.NewMemoryAppointmentRepo()
	conversations := conversationRepo.NewMemoryConversationRepo()

	catalog := &scheduling.DefaultSlotCatalog{Repo: slots, Now: func() time.Time { return now }}
	_, err := catalog.Refresh(ctx)
	require.NoError(t, err)

	availability := &scheduling.DefaultAvailabilityService{
		Slots:        slots,
		Appointments: appts,
		Catalog:      catalog,
		Now:          func() time.Time { return now },
	}
	ledger := &scheduling.DefaultAppointmentService{
		Slots:        slots,
		Appointments: appts,
		Notifier:     noopDispatcher{},
	}
	intents := dialogue.NewKeywordClassifier()
	chat := &assistant.DefaultAssistantService{
		Conversations: conversations,
		Dialogue: &dialogue.Controller{
			Sessions:     dialogue.NewMemorySessionStore(),
			Intents:      intents,
			Availability: availability,
			Ledger:       ledger,
			Now:          func() time.Time { return now },
		},
		Intents:   intents,
		Generator: staticGenerator{},
	}

	router := gin.New()
	routes.RegisterRoutes(router, handlers.NewHandlerBundle(chat, availability, ledger, catalog, conversations, "memory"))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func adminHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer test-admin-token"}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"OK"`)
}

func TestChatEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/chat", models.ChatRequest{Message: "hello"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.Response)

	w = doJSON(t, router, http.MethodPost, "/chat", map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookVerifyCancelRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	// Pick a bookable slot.
	w := doJSON(t, router, http.MethodGet, "/api/appointments/slots", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var slots []models.Slot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slots))
	require.NotEmpty(t, slots)

	w = doJSON(t, router, http.MethodPost, "/api/appointments", models.BookAppointmentRequest{
		SlotID: slots[0].ID,
		Name:   "Jane Doe",
		Email:  "jane@example.com",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var appt models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appt))
	require.NotEmpty(t, appt.CancellationToken)

	// Double booking the same slot fails.
	w = doJSON(t, router, http.MethodPost, "/api/appointments", models.BookAppointmentRequest{
		SlotID: slots[0].ID,
		Name:   "Late Comer",
		Email:  "late@example.com",
	}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	verifyPath := fmt.Sprintf("/api/appointments/verify/%s?token=%s", appt.ID, appt.CancellationToken)
	w = doJSON(t, router, http.MethodGet, verifyPath, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/appointments/verify/%s?token=bogus", appt.ID), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/appointments/verify/%s", appt.ID), nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/appointments/cancel/%s", appt.ID),
		models.CancelAppointmentRequest{Token: appt.CancellationToken}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The appointment is gone.
	w = doJSON(t, router, http.MethodGet, verifyPath, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookMissingFields(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/appointments", map[string]string{"name": "Jane"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "Missing required fields", errResp.Message)
	assert.NotEmpty(t, errResp.Details)
}

func TestSlotsInvalidDateParam(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/appointments/slots?startDate=banana", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "invalid startDate", errResp.Message)
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/appointments", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/appointments", nil,
		map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/appointments", nil, adminHeaders())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminCancelAndConversations(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodDelete, "/api/appointments/appointment-ghost", nil, adminHeaders())
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Create some chat history, then read it back through the admin API.
	w = doJSON(t, router, http.MethodPost, "/chat", models.ChatRequest{Message: "hello"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/admin/conversations", nil, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Conversations []models.ConversationSummary `json:"conversations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Len(t, listResp.Conversations, 1)
	assert.Equal(t, 2, listResp.Conversations[0].MessageCount)

	msgPath := fmt.Sprintf("/api/admin/conversations/%s/messages", listResp.Conversations[0].ID)
	w = doJSON(t, router, http.MethodGet, msgPath, nil, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hello")
}

func TestRefreshSlotsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/appointments/slots/refresh", nil, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count"`)
}
