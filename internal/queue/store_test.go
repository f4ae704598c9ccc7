package queue

import (
	"errors"
	"testing"
	"time"

	"surat-palm-api-server/internal/models"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func newTestStore(t time.Time) (*Store, *fakeClock) {
	clock := &fakeClock{t: t}
	return NewStore(clock), clock
}

func day(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestGetSettingsDefault(t *testing.T) {
	s, _ := newTestStore(day("2025-06-01T08:00:00Z"))

	st := s.GetSettings("f1", "2025-06-01")
	if st.TotalDailyQuotaTons != 500 || st.FarmerPercent != 10 || st.BookingPercent != 70 || st.WalkinPercent != 20 {
		t.Fatalf("unexpected default settings: %+v", st)
	}

	// The fallback must not persist anything.
	s.mu.RLock()
	n := len(s.settings)
	s.mu.RUnlock()
	if n != 0 {
		t.Fatalf("default fallback persisted a record, settings map has %d entries", n)
	}
}

func TestUpdateSettingsValidation(t *testing.T) {
	s, _ := newTestStore(day("2025-06-01T08:00:00Z"))

	cases := []struct {
		name    string
		in      UpdateSettingsInput
		wantErr error
	}{
		{"valid", UpdateSettingsInput{FactoryID: "f1", TotalDailyQuotaTons: 300, FarmerPercent: 20, BookingPercent: 50, WalkinPercent: 30}, nil},
		{"sum over 100", UpdateSettingsInput{FactoryID: "f1", TotalDailyQuotaTons: 300, FarmerPercent: 40, BookingPercent: 50, WalkinPercent: 30}, ErrInvalidSplit},
		{"sum under 100", UpdateSettingsInput{FactoryID: "f1", TotalDailyQuotaTons: 300, FarmerPercent: 10, BookingPercent: 50, WalkinPercent: 30}, ErrInvalidSplit},
		{"zero quota", UpdateSettingsInput{FactoryID: "f1", TotalDailyQuotaTons: 0, FarmerPercent: 10, BookingPercent: 70, WalkinPercent: 20}, ErrInvalidQuota},
	}

	for _, tt := range cases {
		_, err := s.UpdateSettings(tt.in)
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("%s: UpdateSettings err=%v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestUpdateSettingsRejectionLeavesPriorSettings(t *testing.T) {
	s, _ := newTestStore(day("2025-06-01T08:00:00Z"))

	if _, err := s.UpdateSettings(UpdateSettingsInput{FactoryID: "f1", TotalDailyQuotaTons: 300, FarmerPercent: 20, BookingPercent: 50, WalkinPercent: 30}); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}
	if _, err := s.UpdateSettings(UpdateSettingsInput{FactoryID: "f1", TotalDailyQuotaTons: 999, FarmerPercent: 90, BookingPercent: 90, WalkinPercent: 90}); !errors.Is(err, ErrInvalidSplit) {
		t.Fatalf("invalid update err=%v, want ErrInvalidSplit", err)
	}

	st := s.GetSettings("f1", "2025-06-01")
	if st.TotalDailyQuotaTons != 300 || st.FarmerPercent != 20 {
		t.Fatalf("rejected update mutated settings: %+v", st)
	}
}

func TestUpdateSettingsAlwaysWritesToday(t *testing.T) {
	s, _ := newTestStore(day("2025-06-01T08:00:00Z"))

	st, err := s.UpdateSettings(UpdateSettingsInput{FactoryID: "f1", TotalDailyQuotaTons: 250, FarmerPercent: 30, BookingPercent: 40, WalkinPercent: 30})
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if st.Date != "2025-06-01" {
		t.Fatalf("settings date=%q, want today", st.Date)
	}

	// Reading another day still falls back to defaults.
	other := s.GetSettings("f1", "2025-06-02")
	if other.TotalDailyQuotaTons != 500 {
		t.Fatalf("settings leaked across days: %+v", other)
	}
}

func TestSubmitEntryAssignsPerLaneSequence(t *testing.T) {
	s, _ := newTestStore(day("2025-06-01T08:00:00Z"))

	var farmerNums, bookingNums []int
	for i := 0; i < 3; i++ {
		e, err := s.SubmitEntry(SubmitEntryInput{FactoryID: "f1", LaneType: models.LaneFarmer, FarmerName: "สมชาย", VehiclePlate: "กข 1234", EstimatedTons: 2})
		if err != nil {
			t.Fatalf("farmer submit %d failed: %v", i, err)
		}
		farmerNums = append(farmerNums, e.QueueNumber)
	}
	for i := 0; i < 2; i++ {
		e, err := s.SubmitEntry(SubmitEntryInput{FactoryID: "f1", LaneType: models.LaneBooking, FarmerName: "สมหญิง", VehiclePlate: "คง 5678", EstimatedTons: 2})
		if err != nil {
			t.Fatalf("booking submit %d failed: %v", i, err)
		}
		bookingNums = append(bookingNums, e.QueueNumber)
	}

	for i, n := range farmerNums {
		if n != i+1 {
			t.Fatalf("farmer queue numbers = %v, want [1 2 3]", farmerNums)
		}
	}
	for i, n := range bookingNums {
		if n != i+1 {
			t.Fatalf("booking queue numbers = %v, want [1 2]", bookingNums)
		}
	}
}

func TestDayIsolation(t *testing.T) {
	s, clock := newTestStore(day("2025-06-01T08:00:00Z"))

	if _, err := s.SubmitEntry(SubmitEntryInput{FactoryID: "f1", LaneType: models.LaneFarmer, FarmerName: "a", VehiclePlate: "p", EstimatedTons: 5}); err != nil {
		t.Fatalf("yesterday submit failed: %v", err)
	}

	clock.t = day("2025-06-02T08:00:00Z")

	lanes := s.Lanes("f1", "2025-06-02")
	if lanes[0].CurrentTons != 0 || lanes[0].EntriesCount != 0 {
		t.Fatalf("yesterday's entry leaked into today: %+v", lanes[0])
	}

	e, err := s.SubmitEntry(SubmitEntryInput{FactoryID: "f1", LaneType: models.LaneFarmer, FarmerName: "b", VehiclePlate: "q", EstimatedTons: 5})
	if err != nil {
		t.Fatalf("today submit failed: %v", err)
	}
	if e.QueueNumber != 1 {
		t.Fatalf("first entry of a new day got queueNumber %d, want 1", e.QueueNumber)
	}
}

func TestUpdateEntryStatus(t *testing.T) {
	s, _ := newTestStore(day("2025-06-01T08:00:00Z"))

	e, err := s.SubmitEntry(SubmitEntryInput{FactoryID: "f1", LaneType: models.LaneWalkin, FarmerName: "a", VehiclePlate: "p", EstimatedTons: 1})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := s.UpdateEntryStatus(e.ID, "teleported"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("unknown status err=%v, want ErrInvalidStatus", err)
	}
	if _, err := s.UpdateEntryStatus("missing", models.StatusCompleted); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("missing entry err=%v, want ErrEntryNotFound", err)
	}

	cancelled, err := s.UpdateEntryStatus(e.ID, models.StatusCancelled)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.ProcessedAt != nil {
		t.Fatalf("cancel set ProcessedAt: %v", cancelled.ProcessedAt)
	}

	completed, err := s.UpdateEntryStatus(e.ID, models.StatusCompleted)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.ProcessedAt == nil {
		t.Fatal("complete did not set ProcessedAt")
	}
}

func TestEntriesSortedByQueueNumber(t *testing.T) {
	s, _ := newTestStore(day("2025-06-01T08:00:00Z"))

	for i := 0; i < 2; i++ {
		if _, err := s.SubmitEntry(SubmitEntryInput{FactoryID: "f1", LaneType: models.LaneFarmer, FarmerName: "a", VehiclePlate: "p", EstimatedTons: 1}); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		if _, err := s.SubmitEntry(SubmitEntryInput{FactoryID: "f1", LaneType: models.LaneBooking, FarmerName: "b", VehiclePlate: "q", EstimatedTons: 1}); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	all := s.Entries("f1", "2025-06-01", "")
	if len(all) != 4 {
		t.Fatalf("got %d entries, want 4", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].QueueNumber < all[i-1].QueueNumber {
			t.Fatalf("entries not sorted by queueNumber: %d before %d", all[i-1].QueueNumber, all[i].QueueNumber)
		}
	}

	farmerOnly := s.Entries("f1", "2025-06-01", models.LaneFarmer)
	if len(farmerOnly) != 2 {
		t.Fatalf("lane filter returned %d entries, want 2", len(farmerOnly))
	}
	for _, e := range farmerOnly {
		if e.LaneType != models.LaneFarmer {
			t.Fatalf("lane filter leaked %s entry", e.LaneType)
		}
	}
}
