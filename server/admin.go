package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// HandleAdminConfig 提供房间参数的读取与更新（热更新基本规则）
// GET /admin/config?room=room_xxx  返回当前参数
// POST /admin/config?room=room_xxx 以 JSON 载荷更新部分字段：{"waveIntervalMs":10000,"fast":true}
func HandleAdminConfig(rm *RoomManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get("room")
		room := rm.Room(roomID)
		if room == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		type cfg struct {
			WaveIntervalMs *int64 `json:"waveIntervalMs,omitempty"`
			Fast           *bool  `json:"fast,omitempty"`
		}

		switch r.Method {
		case http.MethodGet:
			writeJSON(w, room.Settings())
		case http.MethodPost:
			var body cfg
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			var interval *time.Duration
			if body.WaveIntervalMs != nil {
				if *body.WaveIntervalMs <= 0 {
					http.Error(w, "waveIntervalMs must be positive", http.StatusBadRequest)
					return
				}
				d := time.Duration(*body.WaveIntervalMs) * time.Millisecond
				interval = &d
			}
			room.UpdateSettings(interval, body.Fast)
			s := room.Settings()
			Log.Infow("config updated", "room", roomID, "waveIntervalMs", s.WaveIntervalMs, "speed", s.Speed)
			writeJSON(w, map[string]any{"ok": true, "settings": s})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=room_xxx
func HandleMetrics(rm *RoomManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get("room")
		room := rm.Room(roomID)
		if room == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]any{
			"room":    roomID,
			"tick":    room.TickSeq(),
			"metrics": room.Metrics().Snapshot(),
		})
	}
}

// HandleRooms 列出当前所有房间
// GET /admin/rooms
func HandleRooms(rm *RoomManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, rm.List())
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
