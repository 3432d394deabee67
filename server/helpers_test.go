package server

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"coopdefense/game"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type fakeConn struct {
	mu     sync.Mutex
	codec  Codec
	msgs   [][]byte
	closed bool
}

func (f *fakeConn) Enqueue(b []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	f.msgs = append(f.msgs, cp)
	return true
}

func (f *fakeConn) Codec() Codec {
	if f.codec == "" {
		return CodecJSON
	}
	return f.codec
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// decoded 按 JSON 解码收到的全部消息
func (f *fakeConn) decoded(t *testing.T) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.msgs))
	for _, b := range f.msgs {
		var m map[string]any
		if err := json.Unmarshal(b, &m); err != nil {
			t.Fatalf("decode message: %v", err)
		}
		out = append(out, m)
	}
	return out
}

// lastUpdate 最近一次 game_update
func (f *fakeConn) lastUpdate(t *testing.T) GameUpdateMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.msgs) - 1; i >= 0; i-- {
		var msg GameUpdateMessage
		if err := json.Unmarshal(f.msgs[i], &msg); err != nil {
			t.Fatalf("decode message: %v", err)
		}
		if msg.Type == MsgGameUpdate {
			return msg
		}
	}
	t.Fatal("no game_update received")
	return GameUpdateMessage{}
}

func newTestManager() *RoomManager {
	rm := NewRoomManager(3, game.DefaultRules())
	rm.now = func() time.Time { return t0 }
	return rm
}

func join(rm *RoomManager, id string) (*Room, *fakeConn) {
	fc := &fakeConn{}
	return rm.Join(&Member{ID: PlayerID(id), Conn: fc}), fc
}
