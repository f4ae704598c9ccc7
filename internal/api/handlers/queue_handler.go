// server/internal/api/handlers/queue_handler.go
package handlers

import (
	"errors"
	"net/http"

	"surat-palm-api-server/internal/models"
	"surat-palm-api-server/internal/queue"

	"github.com/gin-gonic/gin"
)

type QueueHandler struct {
	Store *queue.Store
}

type UpdateQueueSettingsRequest struct {
	FactoryID           string  `json:"factoryId" binding:"required"`
	TotalDailyQuotaTons float64 `json:"totalDailyQuotaTons" binding:"required,min=1"`
	FarmerPercent       *int    `json:"farmerPercent" binding:"required,min=0,max=100"`
	BookingPercent      *int    `json:"bookingPercent" binding:"required,min=0,max=100"`
	WalkinPercent       *int    `json:"walkinPercent" binding:"required,min=0,max=100"`
}

type CreateQueueEntryRequest struct {
	FactoryID     string  `json:"factoryId" binding:"required"`
	LaneType      string  `json:"laneType" binding:"required,oneof=farmer booking walkin"`
	FarmerName    string  `json:"farmerName" binding:"required,min=1"`
	VehiclePlate  string  `json:"vehiclePlate" binding:"required,min=1"`
	EstimatedTons float64 `json:"estimatedTons" binding:"required,min=0.1"`
}

type UpdateQueueEntryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// queryDate resolves the ?date= parameter, defaulting to today.
func (h *QueueHandler) queryDate(c *gin.Context) string {
	if date := c.Query("date"); date != "" {
		return date
	}
	return h.Store.Today()
}

// GetLanes returns the three lanes for a factory and day, in fixed order
// farmer, booking, walkin.
func (h *QueueHandler) GetLanes(c *gin.Context) {
	factoryID := c.Param("factoryId")
	lanes := h.Store.Lanes(factoryID, h.queryDate(c))
	c.JSON(http.StatusOK, lanes)
}

// GetSettings returns the quota settings for a factory and day, falling back
// to the default split when nothing has been saved.
func (h *QueueHandler) GetSettings(c *gin.Context) {
	factoryID := c.Param("factoryId")
	settings := h.Store.GetSettings(factoryID, h.queryDate(c))
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings saves today's quota split for a factory. The three
// percentages must sum to exactly 100. Note the write always targets the
// server-side current day, regardless of which date the caller was viewing.
func (h *QueueHandler) UpdateSettings(c *gin.Context) {
	var req UpdateQueueSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.Store.UpdateSettings(queue.UpdateSettingsInput{
		FactoryID:           req.FactoryID,
		TotalDailyQuotaTons: req.TotalDailyQuotaTons,
		FarmerPercent:       *req.FarmerPercent,
		BookingPercent:      *req.BookingPercent,
		WalkinPercent:       *req.WalkinPercent,
	})
	if err != nil {
		if errors.Is(err, queue.ErrInvalidSplit) || errors.Is(err, queue.ErrInvalidQuota) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// GetEntries lists a factory's queue entries for a day, optionally filtered
// to one lane, sorted by queue number.
func (h *QueueHandler) GetEntries(c *gin.Context) {
	factoryID := c.Param("factoryId")
	laneType := c.Query("laneType")
	if laneType != "" && !models.ValidLaneType(laneType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown lane type"})
		return
	}

	entries := h.Store.Entries(factoryID, h.queryDate(c), laneType)
	c.JSON(http.StatusOK, entries)
}

// CreateEntry admits a vehicle into a lane. A closed lane (at or over quota)
// is a capacity error, surfaced as 409 so clients can show "quota full"
// rather than "bad input".
func (h *QueueHandler) CreateEntry(c *gin.Context) {
	var req CreateQueueEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Store.SubmitEntry(queue.SubmitEntryInput{
		FactoryID:     req.FactoryID,
		LaneType:      req.LaneType,
		FarmerName:    req.FarmerName,
		VehiclePlate:  req.VehiclePlate,
		EstimatedTons: req.EstimatedTons,
	})
	if err != nil {
		switch {
		case errors.Is(err, queue.ErrLaneClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "เลนนี้ปิดรับแล้ว โควต้าเต็ม", "code": "quota_full"})
		case errors.Is(err, queue.ErrInvalidLane):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create queue entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateEntryStatus transitions one entry to a new status.
func (h *QueueHandler) UpdateEntryStatus(c *gin.Context) {
	id := c.Param("id")

	var req UpdateQueueEntryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Store.UpdateEntryStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, queue.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, queue.ErrEntryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Queue entry not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update queue entry"})
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}
