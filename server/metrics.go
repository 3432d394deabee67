package server

import (
	"sync/atomic"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount        int64 // 统计的 Tick 次数
	CommandsAccepted int64 // 生效的指令数
	CommandsRejected int64 // 被静默拒绝的指令数
	FramesDropped    int64 // 因发送队列满被丢弃的帧数
	PanicsRecovered  int64 // Tick 中被恢复的 panic 次数
	TotalTickNs      int64 // Tick 累计耗时（纳秒）
}

func (m *RoomMetrics) IncAccepted()      { atomic.AddInt64(&m.CommandsAccepted, 1) }
func (m *RoomMetrics) IncRejected()      { atomic.AddInt64(&m.CommandsRejected, 1) }
func (m *RoomMetrics) IncFramesDropped() { atomic.AddInt64(&m.FramesDropped, 1) }
func (m *RoomMetrics) IncPanics()        { atomic.AddInt64(&m.PanicsRecovered, 1) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":        tick,
		"commands_accepted": atomic.LoadInt64(&m.CommandsAccepted),
		"commands_rejected": atomic.LoadInt64(&m.CommandsRejected),
		"frames_dropped":    atomic.LoadInt64(&m.FramesDropped),
		"panics_recovered":  atomic.LoadInt64(&m.PanicsRecovered),
		"avg_tick_ms":       avgMs,
	}
}
