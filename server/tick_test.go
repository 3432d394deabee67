package server

import (
	"testing"
	"time"

	"coopdefense/game"
)

func TestTickBroadcastsSnapshotAndClearsEvents(t *testing.T) {
	rm := newTestManager()
	room, fc := join(rm, "p1")

	if !room.PlaceTower("p1", PlaceTowerData{X: 1, Z: 1, Type: "archer"}) {
		t.Fatal("expected tower placement to succeed")
	}
	s := NewScheduler(rm, 0)
	s.TickOnce(t0.Add(50 * time.Millisecond))

	up := fc.lastUpdate(t)
	if up.Resources != 400 || len(up.Towers) != 1 || !up.IntervalActive || up.BaseHP != 100 {
		t.Fatalf("unexpected snapshot %+v", up.Snapshot)
	}
	if len(up.Events) != 1 || up.Events[0].Type != game.EventTower || up.Events[0].PlayerID != "p1" {
		t.Fatalf("expected tower event, got %+v", up.Events)
	}
	if up.IntervalEnd != t0.Add(20*time.Second).UnixMilli() {
		t.Fatalf("intervalEnd = %d", up.IntervalEnd)
	}

	s.TickOnce(t0.Add(100 * time.Millisecond))
	if up := fc.lastUpdate(t); len(up.Events) != 0 {
		t.Fatalf("events must be cleared after broadcast, got %+v", up.Events)
	}
	if room.TickSeq() != 2 || room.Metrics().TickCount != 2 {
		t.Fatalf("tick counters = %d / %d", room.TickSeq(), room.Metrics().TickCount)
	}
}

func TestTickStartsWaveForAllMembers(t *testing.T) {
	rm := newTestManager()
	_, a := join(rm, "p1")
	_, b := join(rm, "p2")

	NewScheduler(rm, 0).TickOnce(t0.Add(21 * time.Second))

	for _, fc := range []*fakeConn{a, b} {
		up := fc.lastUpdate(t)
		if up.Wave != 1 || up.IntervalActive || len(up.Enemies) != 6 {
			t.Fatalf("expected wave 1 with 6 enemies, got wave=%d interval=%v enemies=%d", up.Wave, up.IntervalActive, len(up.Enemies))
		}
		if len(up.Events) != 1 || up.Events[0].Type != game.EventWave {
			t.Fatalf("expected wave event, got %+v", up.Events)
		}
	}
}

func TestCommandsRejectedDuringCombat(t *testing.T) {
	rm := newTestManager()
	room, fc := join(rm, "p1")
	s := NewScheduler(rm, 0)
	s.TickOnce(t0.Add(21 * time.Second))

	if room.PlaceTower("p1", PlaceTowerData{X: 1, Z: 1, Type: "archer"}) {
		t.Fatal("placement during combat must be rejected")
	}
	s.TickOnce(t0.Add(21*time.Second + 50*time.Millisecond))
	if up := fc.lastUpdate(t); up.Resources != 500 || len(up.Towers) != 0 {
		t.Fatalf("rejected command mutated state: %+v", up.Snapshot)
	}
	if room.Metrics().CommandsRejected != 1 {
		t.Fatalf("rejected = %d, want 1", room.Metrics().CommandsRejected)
	}
}

func TestSpeedToggleIsRoomScoped(t *testing.T) {
	rm := newTestManager()
	r1, _ := join(rm, "p1")
	join(rm, "p2")
	join(rm, "p3")
	r2, _ := join(rm, "p4")

	r1.SetSpeed("p1", SpeedToggleData{Fast: true})
	if r1.Settings().Speed != 2 || r2.Settings().Speed != 1 {
		t.Fatalf("speed leaked across rooms: %d / %d", r1.Settings().Speed, r2.Settings().Speed)
	}
}

func TestTickRecoversFromRoomPanic(t *testing.T) {
	rm := newTestManager()
	broken, _ := join(rm, "p1")
	join(rm, "p2")
	join(rm, "p3")
	healthy, fc := join(rm, "p4")
	if broken == healthy {
		t.Fatal("expected two rooms")
	}
	broken.state = nil

	NewScheduler(rm, 0).TickOnce(t0.Add(50 * time.Millisecond))

	if broken.Metrics().PanicsRecovered != 1 {
		t.Fatalf("panics recovered = %d, want 1", broken.Metrics().PanicsRecovered)
	}
	if up := fc.lastUpdate(t); up.BaseHP != 100 {
		t.Fatalf("healthy room should still broadcast, got %+v", up.Snapshot)
	}
}

func TestDestroyedRoomIsNotTicked(t *testing.T) {
	rm := newTestManager()
	room, fc := join(rm, "p1")
	rooms := rm.Rooms()
	rm.Leave("p1")

	// 模拟 Tick 驱动持有旧快照的情况
	for _, r := range rooms {
		r.Tick(t0.Add(time.Second))
	}
	if room.TickSeq() != 0 {
		t.Fatal("closed room must not advance")
	}
	if n := len(fc.decoded(t)); n != 1 {
		t.Fatalf("expected only the joined message, got %d messages", n)
	}
}
