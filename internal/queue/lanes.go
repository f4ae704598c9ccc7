// server/internal/queue/lanes.go
package queue

import (
	"surat-palm-api-server/internal/models"
)

// Display metadata per lane, shown on the Queue Palm board.
var laneInfo = map[string]struct {
	name        string
	description string
}{
	models.LaneFarmer: {
		name:        "เกษตรกรทั่วไป",
		description: "เกษตรกรนำปาล์มมาส่งขายตามปกติ ไม่มีการจองล่วงหน้า รอคิวเข้าสู่กระบวนการสกัดตามลำดับ",
	},
	models.LaneBooking: {
		name:        "ลานปาล์มของโรงงาน",
		description: "พื้นที่สำหรับปาล์มที่จองคิวล่วงหน้าไว้แล้ว มีการยืนยันและรับประกันการรับซื้อตามโควต้าที่ตกลง",
	},
	models.LaneWalkin: {
		name:        "WALK IN",
		description: "เลนพิเศษสำหรับรถที่พร้อมเข้าสกัดทันที ช่วยเพิ่มความคล่องตัวในการบริหารจัดการปริมาณรับซื้อ",
	},
}

func lanePercent(st models.QueueSettings, laneType string) int {
	switch laneType {
	case models.LaneFarmer:
		return st.FarmerPercent
	case models.LaneBooking:
		return st.BookingPercent
	case models.LaneWalkin:
		return st.WalkinPercent
	}
	return 0
}

// computeLane derives one lane's state from the settings and the day's entries.
// currentTons sums every entry that was not cancelled (waiting, processing and
// completed all consume quota); entriesCount is the visible queue length, so
// only waiting entries count.
func computeLane(st models.QueueSettings, entries []models.QueueEntry, laneType string) models.QueueLane {
	percent := lanePercent(st, laneType)
	quota := st.TotalDailyQuotaTons * float64(percent) / 100

	var currentTons float64
	waiting := 0
	for _, e := range entries {
		if e.LaneType != laneType || e.Status == models.StatusCancelled {
			continue
		}
		currentTons += e.EstimatedTons
		if e.Status == models.StatusWaiting {
			waiting++
		}
	}

	info := laneInfo[laneType]
	return models.QueueLane{
		Type:           laneType,
		Name:           info.name,
		Description:    info.description,
		QuotaPercent:   percent,
		DailyQuotaTons: quota,
		CurrentTons:    currentTons,
		IsOpen:         currentTons < quota, // a lane exactly at quota is closed
		EntriesCount:   waiting,
	}
}

// Lanes returns the derived state of the three lanes for (factoryID, date) in
// fixed order: farmer, booking, walkin. Consumers index by position.
func (s *Store) Lanes(factoryID, date string) []models.QueueLane {
	st := s.GetSettings(factoryID, date)
	entries := s.Entries(factoryID, date, "")

	lanes := make([]models.QueueLane, 0, len(models.LaneTypes))
	for _, lt := range models.LaneTypes {
		lanes = append(lanes, computeLane(st, entries, lt))
	}
	return lanes
}

// SubmitEntryInput carries a new vehicle arrival. Entries are always created
// against the server-side current day.
type SubmitEntryInput struct {
	FactoryID     string
	LaneType      string
	FarmerName    string
	VehiclePlate  string
	EstimatedTons float64
}

// SubmitEntry admission-checks the requested lane and appends the entry with
// the next sequential queue number for that (factory, lane, day). The check
// and the insert run under the lane's key lock, so two concurrent submissions
// cannot both read the same count.
func (s *Store) SubmitEntry(in SubmitEntryInput) (models.QueueEntry, error) {
	if !models.ValidLaneType(in.LaneType) {
		return models.QueueEntry{}, ErrInvalidLane
	}

	now := s.clock.Now()
	date := DateKey(now)

	lock := s.laneLock(laneKey(in.FactoryID, in.LaneType, date))
	lock.Lock()
	defer lock.Unlock()

	st := s.GetSettings(in.FactoryID, date)
	lane := computeLane(st, s.Entries(in.FactoryID, date, in.LaneType), in.LaneType)
	if !lane.IsOpen {
		return models.QueueEntry{}, ErrLaneClosed
	}

	s.mu.RLock()
	queueNumber := s.countLaneEntries(in.FactoryID, in.LaneType, date) + 1
	s.mu.RUnlock()

	entry := models.QueueEntry{
		ID:            newEntryID(),
		FactoryID:     in.FactoryID,
		LaneType:      in.LaneType,
		FarmerName:    in.FarmerName,
		VehiclePlate:  in.VehiclePlate,
		EstimatedTons: in.EstimatedTons,
		QueueNumber:   queueNumber,
		Status:        models.StatusWaiting,
		Date:          date,
		CreatedAt:     now,
	}
	s.insertEntry(entry)
	return entry, nil
}
