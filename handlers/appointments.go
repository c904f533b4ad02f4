package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"transformai/models"
	"transformai/services/scheduling"
	"transformai/utils"
)

// parseDateParam accepts either a full timestamp or a plain calendar date.
func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

// GetAvailableSlotsHandler lists free slots, optionally bounded by
// startDate/endDate query parameters.
func GetAvailableSlotsHandler(avail scheduling.AvailabilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var start, end *time.Time

		if raw := c.Query("startDate"); raw != "" {
			t, err := parseDateParam(raw)
			if err != nil {
				utils.JSONError(c, http.StatusBadRequest, "invalid startDate", err.Error())
				return
			}
			start = &t
		}
		if raw := c.Query("endDate"); raw != "" {
			t, err := parseDateParam(raw)
			if err != nil {
				utils.JSONError(c, http.StatusBadRequest, "invalid endDate", err.Error())
				return
			}
			end = &t
		}

		c.JSON(http.StatusOK, avail.GetAvailableSlots(c.Request.Context(), start, end))
	}
}

// BookAppointmentHandler books a slot directly, bypassing the dialogue. Used
// by the widget's booking form.
func BookAppointmentHandler(ledger scheduling.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BookAppointmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Missing required fields", err.Error())
			return
		}

		appt, err := ledger.Book(c.Request.Context(), req.SlotID, req.Name, req.Email, req.Topic)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, err.Error(), "")
			return
		}
		c.JSON(http.StatusCreated, appt)
	}
}

// ListAppointmentsHandler returns every appointment, soonest first.
func ListAppointmentsHandler(ledger scheduling.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		appts, err := ledger.ListAll(c.Request.Context())
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to get appointments", err.Error())
			return
		}
		c.JSON(http.StatusOK, appts)
	}
}

// CancelAppointmentHandler is the admin-side cancel; no token required.
func CancelAppointmentHandler(ledger scheduling.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		appt, err := ledger.CancelByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, scheduling.ErrAppointmentNotFound) {
				utils.JSONError(c, http.StatusNotFound, err.Error(), "")
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, err.Error(), "")
			return
		}
		c.JSON(http.StatusOK, appt)
	}
}

// VerifyAppointmentHandler validates a cancellation link before the page
// shows the confirm button.
func VerifyAppointmentHandler(ledger scheduling.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			utils.JSONError(c, http.StatusBadRequest, "Missing appointment ID or token", "")
			return
		}

		appt, err := ledger.Verify(c.Request.Context(), c.Param("id"), token)
		if err != nil {
			utils.JSONError(c, http.StatusNotFound, "Appointment not found or token invalid", "")
			return
		}
		c.JSON(http.StatusOK, appt)
	}
}

// CancelByTokenHandler is the user-side cancel driven by the emailed link.
func CancelByTokenHandler(ledger scheduling.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CancelAppointmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Missing appointment ID or token", err.Error())
			return
		}

		appt, err := ledger.CancelByToken(c.Request.Context(), c.Param("id"), req.Token)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		c.JSON(http.StatusOK, appt)
	}
}

// RefreshSlotsHandler regenerates the whole slot catalog.
func RefreshSlotsHandler(catalog scheduling.SlotCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := catalog.Refresh(c.Request.Context())
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to refresh slots", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}
