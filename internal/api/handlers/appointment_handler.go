// server/internal/api/handlers/appointment_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"surat-palm-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AppointmentHandler struct {
	DB *mongo.Database
}

type CreateAppointmentRequest struct {
	FactoryID     string  `json:"factoryId" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	Time          string  `json:"time" binding:"required"`
	EstimatedTons float64 `json:"estimatedTons" binding:"required,min=0.1"`
}

// GetAppointments lists appointments, optionally for one factory.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	filter := bson.M{}
	if factoryID := c.Query("factoryId"); factoryID != "" {
		filter["factoryID"] = factoryID
	}

	collection := h.DB.Collection("appointments")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query appointments"})
		return
	}
	defer cursor.Close(context.Background())

	var appointments []models.Appointment
	if err = cursor.All(context.Background(), &appointments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode appointments"})
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	c.JSON(http.StatusOK, appointments)
}

// CreateAppointment books a delivery slot; new appointments start as pending.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment := models.Appointment{
		AppointmentID: uuid.New().String(),
		FactoryID:     req.FactoryID,
		Date:          req.Date,
		Time:          req.Time,
		EstimatedTons: req.EstimatedTons,
		Status:        models.AppointmentPending,
		CreatedAt:     time.Now(),
	}

	collection := h.DB.Collection("appointments")
	if _, err := collection.InsertOne(context.Background(), appointment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
		return
	}

	c.JSON(http.StatusCreated, appointment)
}
