// server/internal/queue/store.go
package queue

import (
	"sort"
	"sync"

	"surat-palm-api-server/internal/models"

	"github.com/google/uuid"
)

// Default quota configuration used when a factory has never saved settings
// for a day. New factories start with a sane quota without explicit setup.
const (
	DefaultTotalDailyQuotaTons = 500
	DefaultFarmerPercent       = 10
	DefaultBookingPercent      = 70
	DefaultWalkinPercent       = 20
)

// Store holds all Queue Palm state for the process lifetime. Queue state is
// ephemeral daily operational data; it is not persisted and a restart loses
// it. The store is constructed once at startup and passed to the handlers.
type Store struct {
	clock Clock

	mu       sync.RWMutex
	settings map[string]models.QueueSettings // factoryID + "|" + date
	entries  map[string]models.QueueEntry    // by entry ID

	// laneLocks serializes count-then-insert per (factory, lane, date) so
	// concurrent submissions cannot assign duplicate queue numbers or jointly
	// overshoot a lane quota. Per-key locks keep unrelated factories and days
	// from serializing each other.
	lockMu    sync.Mutex
	laneLocks map[string]*sync.Mutex
}

// NewStore creates an empty queue store using the given clock.
func NewStore(clock Clock) *Store {
	return &Store{
		clock:     clock,
		settings:  make(map[string]models.QueueSettings),
		entries:   make(map[string]models.QueueEntry),
		laneLocks: make(map[string]*sync.Mutex),
	}
}

// Today returns the current calendar-day bucket key.
func (s *Store) Today() string { return DateKey(s.clock.Now()) }

func settingsKey(factoryID, date string) string { return factoryID + "|" + date }

func laneKey(factoryID, laneType, date string) string {
	return factoryID + "|" + laneType + "|" + date
}

func (s *Store) laneLock(key string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	l, ok := s.laneLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.laneLocks[key] = l
	}
	return l
}

// GetSettings returns the stored settings for (factoryID, date). When no
// record exists it returns the hardcoded default split without persisting
// anything.
func (s *Store) GetSettings(factoryID, date string) models.QueueSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.settings[settingsKey(factoryID, date)]; ok {
		return st
	}
	return models.QueueSettings{
		FactoryID:           factoryID,
		TotalDailyQuotaTons: DefaultTotalDailyQuotaTons,
		FarmerPercent:       DefaultFarmerPercent,
		BookingPercent:      DefaultBookingPercent,
		WalkinPercent:       DefaultWalkinPercent,
		Date:                date,
	}
}

// UpdateSettingsInput carries a settings write. The write always targets the
// server-side current day, never a caller-supplied date.
type UpdateSettingsInput struct {
	FactoryID           string
	TotalDailyQuotaTons float64
	FarmerPercent       int
	BookingPercent      int
	WalkinPercent       int
}

// UpdateSettings validates and writes the quota split for today, overwriting
// any existing record for (factoryID, today). Last write wins.
func (s *Store) UpdateSettings(in UpdateSettingsInput) (models.QueueSettings, error) {
	if in.TotalDailyQuotaTons <= 0 {
		return models.QueueSettings{}, ErrInvalidQuota
	}
	if in.FarmerPercent+in.BookingPercent+in.WalkinPercent != 100 {
		return models.QueueSettings{}, ErrInvalidSplit
	}

	date := DateKey(s.clock.Now())
	st := models.QueueSettings{
		FactoryID:           in.FactoryID,
		TotalDailyQuotaTons: in.TotalDailyQuotaTons,
		FarmerPercent:       in.FarmerPercent,
		BookingPercent:      in.BookingPercent,
		WalkinPercent:       in.WalkinPercent,
		Date:                date,
	}

	s.mu.Lock()
	s.settings[settingsKey(in.FactoryID, date)] = st
	s.mu.Unlock()
	return st, nil
}

// Entries returns the entries for (factoryID, date), optionally filtered to
// one lane. laneType == "" means all lanes; the combined list is sorted by
// queueNumber ascending, which interleaves the independent per-lane counters
// rather than giving true arrival order.
func (s *Store) Entries(factoryID, date, laneType string) []models.QueueEntry {
	s.mu.RLock()
	out := make([]models.QueueEntry, 0)
	for _, e := range s.entries {
		if e.FactoryID != factoryID || e.Date != date {
			continue
		}
		if laneType != "" && e.LaneType != laneType {
			continue
		}
		out = append(out, e)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].QueueNumber != out[j].QueueNumber {
			return out[i].QueueNumber < out[j].QueueNumber
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// GetEntry looks up one entry by ID.
func (s *Store) GetEntry(id string) (models.QueueEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// UpdateEntryStatus sets the entry's status. Any status within the enum can be
// set from any prior status; ProcessedAt is stamped only on the transition to
// completed and is never cleared.
func (s *Store) UpdateEntryStatus(id, status string) (models.QueueEntry, error) {
	if !models.ValidEntryStatus(status) {
		return models.QueueEntry{}, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return models.QueueEntry{}, ErrEntryNotFound
	}
	e.Status = status
	if status == models.StatusCompleted {
		now := s.clock.Now()
		e.ProcessedAt = &now
	}
	s.entries[id] = e
	return e, nil
}

// countLaneEntries counts all entries for the bucket, cancelled included.
// Callers must hold at least the read lock.
func (s *Store) countLaneEntries(factoryID, laneType, date string) int {
	n := 0
	for _, e := range s.entries {
		if e.FactoryID == factoryID && e.LaneType == laneType && e.Date == date {
			n++
		}
	}
	return n
}

func (s *Store) insertEntry(e models.QueueEntry) {
	s.mu.Lock()
	s.entries[e.ID] = e
	s.mu.Unlock()
}

func newEntryID() string { return uuid.New().String() }
