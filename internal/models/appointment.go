// server/internal/models/appointment.go
package models

import "time"

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a delivery slot a farmer booked with a factory.
type Appointment struct {
	AppointmentID string    `bson:"appointmentID" json:"id"`
	FactoryID     string    `bson:"factoryID" json:"factoryId"`
	Date          string    `bson:"date" json:"date"` // "2006-01-02"
	Time          string    `bson:"time" json:"time"` // "09:30"
	EstimatedTons float64   `bson:"estimatedTons" json:"estimatedTons"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
