package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler returns free slots for a given date and duration,
// independent of any conversation. Query params: date (YYYY-MM-DD,
// required) and duration (minutes, default 60).
func (hb *HandlerBundle) AvailabilityHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	duration := 60
	if raw := c.Query("duration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be a positive number of minutes"})
			return
		}
		duration = parsed
	}

	slots := hb.Availability.SlotsForDate(c.Request.Context(), date, duration)
	c.JSON(http.StatusOK, gin.H{
		"date":     date,
		"duration": duration,
		"slots":    slots,
	})
}
