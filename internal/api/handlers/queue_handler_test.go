package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"surat-palm-api-server/internal/models"
	"surat-palm-api-server/internal/queue"

	"github.com/gin-gonic/gin"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func newQueueRouter(store *queue.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := &QueueHandler{Store: store}

	q := router.Group("/api/v1/queue")
	q.GET("/lanes/:factoryId", h.GetLanes)
	q.GET("/settings/:factoryId", h.GetSettings)
	q.PUT("/settings", h.UpdateSettings)
	q.GET("/entries/:factoryId", h.GetEntries)
	q.POST("/entries", h.CreateEntry)
	q.PATCH("/entries/:id/status", h.UpdateEntryStatus)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUpdateSettingsEndpoint(t *testing.T) {
	store := queue.NewStore(fixedClock{t: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)})
	router := newQueueRouter(store)

	cases := []struct {
		name       string
		body       gin.H
		wantStatus int
	}{
		{"valid split", gin.H{"factoryId": "f1", "totalDailyQuotaTons": 400, "farmerPercent": 20, "bookingPercent": 60, "walkinPercent": 20}, http.StatusOK},
		{"split not 100", gin.H{"factoryId": "f1", "totalDailyQuotaTons": 400, "farmerPercent": 20, "bookingPercent": 60, "walkinPercent": 30}, http.StatusBadRequest},
		{"missing percent", gin.H{"factoryId": "f1", "totalDailyQuotaTons": 400, "farmerPercent": 20, "bookingPercent": 60}, http.StatusBadRequest},
		{"zero quota", gin.H{"factoryId": "f1", "totalDailyQuotaTons": 0, "farmerPercent": 10, "bookingPercent": 70, "walkinPercent": 20}, http.StatusBadRequest},
	}

	for _, tt := range cases {
		rec := doJSON(t, router, http.MethodPut, "/api/v1/queue/settings", tt.body)
		if rec.Code != tt.wantStatus {
			t.Fatalf("%s: status=%d, want %d, body=%s", tt.name, rec.Code, tt.wantStatus, rec.Body.String())
		}
	}

	// The rejected updates must not have replaced the valid one.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/queue/settings/f1?date=2025-06-01", nil)
	var settings models.QueueSettings
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if settings.TotalDailyQuotaTons != 400 || settings.FarmerPercent != 20 {
		t.Fatalf("stored settings = %+v, want the valid update", settings)
	}
}

func TestGetSettingsDefaultEndpoint(t *testing.T) {
	store := queue.NewStore(fixedClock{t: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)})
	router := newQueueRouter(store)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/queue/settings/f9", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}

	var settings models.QueueSettings
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if settings.TotalDailyQuotaTons != 500 || settings.FarmerPercent != 10 || settings.BookingPercent != 70 || settings.WalkinPercent != 20 {
		t.Fatalf("default settings = %+v", settings)
	}
	if settings.Date != "2025-06-01" {
		t.Fatalf("default settings date = %q, want today", settings.Date)
	}
}

func TestGetLanesEndpoint(t *testing.T) {
	store := queue.NewStore(fixedClock{t: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)})
	router := newQueueRouter(store)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/queue/lanes/f1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}

	var lanes []models.QueueLane
	if err := json.Unmarshal(rec.Body.Bytes(), &lanes); err != nil {
		t.Fatalf("decode lanes: %v", err)
	}
	if len(lanes) != 3 {
		t.Fatalf("got %d lanes, want 3", len(lanes))
	}
	wantOrder := []string{models.LaneFarmer, models.LaneBooking, models.LaneWalkin}
	for i, lane := range lanes {
		if lane.Type != wantOrder[i] {
			t.Fatalf("lane %d = %s, want %s", i, lane.Type, wantOrder[i])
		}
	}
}

func TestCreateEntryEndpoint(t *testing.T) {
	store := queue.NewStore(fixedClock{t: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)})
	router := newQueueRouter(store)

	cases := []struct {
		name       string
		body       gin.H
		wantStatus int
	}{
		{"valid", gin.H{"factoryId": "f1", "laneType": "farmer", "farmerName": "สมชาย", "vehiclePlate": "กข 1234", "estimatedTons": 4.5}, http.StatusCreated},
		{"tons below minimum", gin.H{"factoryId": "f1", "laneType": "farmer", "farmerName": "สมชาย", "vehiclePlate": "กข 1234", "estimatedTons": 0.05}, http.StatusBadRequest},
		{"missing farmer name", gin.H{"factoryId": "f1", "laneType": "farmer", "vehiclePlate": "กข 1234", "estimatedTons": 4.5}, http.StatusBadRequest},
		{"unknown lane", gin.H{"factoryId": "f1", "laneType": "vip", "farmerName": "สมชาย", "vehiclePlate": "กข 1234", "estimatedTons": 4.5}, http.StatusBadRequest},
	}

	for _, tt := range cases {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/queue/entries", tt.body)
		if rec.Code != tt.wantStatus {
			t.Fatalf("%s: status=%d, want %d, body=%s", tt.name, rec.Code, tt.wantStatus, rec.Body.String())
		}
	}

	var entry models.QueueEntry
	rec := doJSON(t, router, http.MethodPost, "/api/v1/queue/entries", gin.H{"factoryId": "f1", "laneType": "farmer", "farmerName": "สมหญิง", "vehiclePlate": "คง 5678", "estimatedTons": 2})
	if rec.Code != http.StatusCreated {
		t.Fatalf("second valid entry status=%d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.QueueNumber != 2 || entry.Status != models.StatusWaiting {
		t.Fatalf("entry = queueNumber %d status %s, want 2/waiting", entry.QueueNumber, entry.Status)
	}
}

func TestCreateEntryClosedLane(t *testing.T) {
	store := queue.NewStore(fixedClock{t: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)})
	router := newQueueRouter(store)

	// farmer quota = 100 * 10% = 10 tons; fill it exactly.
	rec := doJSON(t, router, http.MethodPut, "/api/v1/queue/settings", gin.H{"factoryId": "f1", "totalDailyQuotaTons": 100, "farmerPercent": 10, "bookingPercent": 70, "walkinPercent": 20})
	if rec.Code != http.StatusOK {
		t.Fatalf("settings update status=%d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, "/api/v1/queue/entries", gin.H{"factoryId": "f1", "laneType": "farmer", "farmerName": "a", "vehiclePlate": "p", "estimatedTons": 10})
	if rec.Code != http.StatusCreated {
		t.Fatalf("filling entry status=%d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/queue/entries", gin.H{"factoryId": "f1", "laneType": "farmer", "farmerName": "b", "vehiclePlate": "q", "estimatedTons": 1})
	if rec.Code != http.StatusConflict {
		t.Fatalf("closed-lane entry status=%d, want 409, body=%s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["code"] != "quota_full" {
		t.Fatalf("capacity error body = %v, want code quota_full", body)
	}

	if n := len(store.Entries("f1", "2025-06-01", "")); n != 1 {
		t.Fatalf("rejected entry reached the ledger, %d entries", n)
	}
}

func TestUpdateEntryStatusEndpoint(t *testing.T) {
	store := queue.NewStore(fixedClock{t: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)})
	router := newQueueRouter(store)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/queue/entries", gin.H{"factoryId": "f1", "laneType": "walkin", "farmerName": "a", "vehiclePlate": "p", "estimatedTons": 1})
	if rec.Code != http.StatusCreated {
		t.Fatalf("entry create status=%d", rec.Code)
	}
	var entry models.QueueEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}

	rec = doJSON(t, router, http.MethodPatch, "/api/v1/queue/entries/"+entry.ID+"/status", gin.H{"status": "teleported"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad status code=%d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPatch, "/api/v1/queue/entries/missing/status", gin.H{"status": "completed"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id code=%d, want 404", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPatch, "/api/v1/queue/entries/"+entry.ID+"/status", gin.H{"status": "completed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("complete code=%d, body=%s", rec.Code, rec.Body.String())
	}
	var updated models.QueueEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated entry: %v", err)
	}
	if updated.ProcessedAt == nil {
		t.Fatal("completed entry has no processedAt")
	}
}
