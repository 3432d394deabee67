package server

import (
	"context"
	"time"
)

const (
	// TicksPerSecond 世界推进频率（20 TPS）
	TicksPerSecond = 20
)

var tickInterval = time.Duration(1000/TicksPerSecond) * time.Millisecond // 50ms

// Scheduler 单一的固定频率 Tick 驱动，每个 Tick 依次推进所有房间
type Scheduler struct {
	rooms    *RoomManager
	interval time.Duration
	now      func() time.Time
}

// NewScheduler 创建 Tick 驱动；interval <= 0 时使用 50ms
func NewScheduler(rm *RoomManager, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = tickInterval
	}
	return &Scheduler{rooms: rm, interval: interval, now: time.Now}
}

// Run 阻塞运行直到 ctx 取消
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.TickOnce(s.now())
		}
	}
}

// TickOnce 推进所有房间一次；单个房间出错不影响其他房间
func (s *Scheduler) TickOnce(now time.Time) {
	for _, r := range s.rooms.Rooms() {
		s.tickRoom(r, now)
	}
}

func (s *Scheduler) tickRoom(r *Room, now time.Time) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			r.metrics.IncPanics()
			Log.Errorw("room tick panicked", "room", r.ID, "panic", p)
		}
		r.metrics.AddTick(time.Since(start).Nanoseconds())
	}()
	r.Tick(now)
}
