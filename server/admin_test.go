package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAdminConfig(t *testing.T) {
	rm := newTestManager()
	room, _ := join(rm, "p1")
	h := HandleAdminConfig(rm)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/admin/config?room=nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing room: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/admin/config?room="+room.ID, nil))
	var s Settings
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.WaveIntervalMs != 20000 || s.Speed != 1 || s.Phase != "building" || s.Players != 1 {
		t.Fatalf("unexpected settings %+v", s)
	}

	rec = httptest.NewRecorder()
	body := strings.NewReader(`{"waveIntervalMs":5000,"fast":true}`)
	h(rec, httptest.NewRequest(http.MethodPost, "/admin/config?room="+room.ID, body))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status %d", rec.Code)
	}
	if s := room.Settings(); s.WaveIntervalMs != 5000 || s.Speed != 2 {
		t.Fatalf("settings not applied: %+v", s)
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/admin/config?room="+room.ID, strings.NewReader(`{"waveIntervalMs":0}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("zero interval should be rejected, status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodDelete, "/admin/config?room="+room.ID, nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("delete status %d", rec.Code)
	}
}

func TestMetricsAndRooms(t *testing.T) {
	rm := newTestManager()
	room, _ := join(rm, "p1")
	NewScheduler(rm, 0).TickOnce(t0)

	rec := httptest.NewRecorder()
	HandleMetrics(rm)(rec, httptest.NewRequest(http.MethodGet, "/metrics?room="+room.ID, nil))
	var payload struct {
		Room    string         `json:"room"`
		Tick    int64          `json:"tick"`
		Metrics map[string]any `json:"metrics"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Room != room.ID || payload.Tick != 1 || payload.Metrics["tick_count"] != float64(1) {
		t.Fatalf("unexpected metrics %+v", payload)
	}

	rec = httptest.NewRecorder()
	HandleRooms(rm)(rec, httptest.NewRequest(http.MethodGet, "/admin/rooms", nil))
	var list []RoomInfo
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].ID != room.ID {
		t.Fatalf("unexpected room list %+v", list)
	}
}
