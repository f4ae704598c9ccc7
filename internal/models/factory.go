// server/internal/models/factory.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Factory is one palm oil crushing mill in Surat Thani province.
type Factory struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FactoryID  string             `bson:"factoryID" json:"id"` // User-friendly unique ID, e.g., "f1"
	Name       string             `bson:"name" json:"name"`
	Latitude   float64            `bson:"latitude" json:"latitude"`
	Longitude  float64            `bson:"longitude" json:"longitude"`
	PricePerKg float64            `bson:"pricePerKg" json:"pricePerKg"` // THB per kg of fresh fruit bunches
	QueueTons  float64            `bson:"queueTons" json:"queueTons"`   // tonnage currently waiting at the gate
	IsOpen     bool               `bson:"isOpen" json:"isOpen"`
	OpenTime   string             `bson:"openTime" json:"openTime"`   // "06:00"
	CloseTime  string             `bson:"closeTime" json:"closeTime"` // "18:00"
	ClosedDays []string           `bson:"closedDays" json:"closedDays"`
	Phone      string             `bson:"phone" json:"phone"`
	Address    string             `bson:"address" json:"address"`
	District   string             `bson:"district" json:"district"`
	Username   string             `bson:"username,omitempty" json:"username,omitempty"`
	Password   string             `bson:"password,omitempty" json:"password,omitempty"`
}

// FactoryWithDistance is a Factory plus the distance (km) from the user's location.
type FactoryWithDistance struct {
	Factory  `bson:",inline"`
	Distance float64 `json:"distance"`
}

// Sanitized returns a copy with login credentials stripped before sending to clients.
func (f Factory) Sanitized() Factory {
	f.Username = ""
	f.Password = ""
	return f
}
