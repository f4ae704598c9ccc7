// server/internal/models/queue.go
package models

import "time"

// Lane types for the Queue Palm system. Every factory splits its daily
// intake quota across exactly these three lanes, in this order.
const (
	LaneFarmer  = "farmer"  // walk-in farmers, no prior booking
	LaneBooking = "booking" // pre-booked suppliers with a confirmed quota
	LaneWalkin  = "walkin"  // trucks ready to enter the press immediately
)

// LaneTypes lists the lanes in their fixed display order.
var LaneTypes = []string{LaneFarmer, LaneBooking, LaneWalkin}

// Queue entry statuses.
const (
	StatusWaiting    = "waiting"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// ValidLaneType reports whether s is one of the three lane identities.
func ValidLaneType(s string) bool {
	return s == LaneFarmer || s == LaneBooking || s == LaneWalkin
}

// ValidEntryStatus reports whether s is a known queue entry status.
func ValidEntryStatus(s string) bool {
	switch s {
	case StatusWaiting, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// QueueSettings is the active quota configuration for one factory on one day.
// The three percentages must sum to exactly 100; that is enforced at the API
// boundary before the record is written.
type QueueSettings struct {
	FactoryID           string  `json:"factoryId"`
	TotalDailyQuotaTons float64 `json:"totalDailyQuotaTons"`
	FarmerPercent       int     `json:"farmerPercent"`
	BookingPercent      int     `json:"bookingPercent"`
	WalkinPercent       int     `json:"walkinPercent"`
	Date                string  `json:"date"` // "2006-01-02"
}

// QueueEntry is one vehicle's intake request within a lane for a given day.
type QueueEntry struct {
	ID            string     `json:"id"`
	FactoryID     string     `json:"factoryId"`
	LaneType      string     `json:"laneType"`
	FarmerName    string     `json:"farmerName"`
	VehiclePlate  string     `json:"vehiclePlate"`
	EstimatedTons float64    `json:"estimatedTons"`
	QueueNumber   int        `json:"queueNumber"` // 1-based, per (factory, lane, day)
	Status        string     `json:"status"`
	Date          string     `json:"date"` // calendar day bucket, "2006-01-02"
	CreatedAt     time.Time  `json:"createdAt"`
	ProcessedAt   *time.Time `json:"processedAt,omitempty"` // set only when status becomes completed
}

// QueueLane is the derived view of one lane for one factory and day. It is
// never stored; it is recomputed from settings + entries on every read so it
// cannot drift out of sync with the ledger.
type QueueLane struct {
	Type           string  `json:"type"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	QuotaPercent   int     `json:"quotaPercent"`
	DailyQuotaTons float64 `json:"dailyQuotaTons"`
	CurrentTons    float64 `json:"currentTons"`
	IsOpen         bool    `json:"isOpen"`
	EntriesCount   int     `json:"entriesCount"` // waiting entries only
}
