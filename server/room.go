package server

import (
	"math/rand"
	"sync"
	"time"

	"coopdefense/game"
)

// Room 服务端房间：权威模拟状态 + 成员连接，由独占锁保护
// Tick 驱动与指令处理都必须先持有 mu，保证同一时刻只有一个执行者修改
type Room struct {
	ID string

	mu      sync.Mutex
	state   *game.Room
	members map[PlayerID]*Member
	closed  bool
	tickSeq int64

	metrics *RoomMetrics
}

// NewRoom 创建房间，初始化模拟状态（建造阶段）
func NewRoom(id string, rules game.Rules, now time.Time) *Room {
	return &Room{
		ID:      id,
		state:   game.NewRoom(id, rules, now, rand.New(rand.NewSource(now.UnixNano()))),
		members: make(map[PlayerID]*Member),
		metrics: &RoomMetrics{},
	}
}

// NumPlayers 当前玩家数
func (r *Room) NumPlayers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.NumPlayers()
}

// Metrics 房间指标
func (r *Room) Metrics() *RoomMetrics { return r.metrics }

// TickSeq 已推进的 Tick 数
func (r *Room) TickSeq() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tickSeq
}

// tryJoin 在容量内加入玩家，并先于任何快照下发 joined 消息
func (r *Room) tryJoin(m *Member, maxPlayers int, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.state.Terminal() || r.state.NumPlayers() >= maxPlayers {
		return false
	}
	if !r.state.AddPlayer(string(m.ID), now) {
		return false
	}
	r.members[m.ID] = m
	if m.Conn != nil {
		msg := JoinedMessage{Type: MsgJoined, RoomID: r.ID, PlayerID: string(m.ID)}
		b, err := m.Conn.Codec().Encode(msg)
		if err != nil {
			Log.Errorw("encode joined failed", "room", r.ID, "player", m.ID, "err", err)
		} else if !m.Conn.Enqueue(b) {
			r.metrics.IncFramesDropped()
		}
	}
	return true
}

// leave 将玩家移出房间；返回房间是否已空（空房间被标记为关闭）
func (r *Room) leave(id PlayerID) (removed, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	removed = r.state.RemovePlayer(string(id))
	if ok {
		if m.Conn != nil {
			m.Conn.Close()
		}
		delete(r.members, id)
	}
	if r.state.NumPlayers() == 0 {
		r.closed = true
	}
	return removed || ok, r.closed
}

// PlaceTower 处理 place_tower 指令
func (r *Room) PlaceTower(pid PlayerID, d PlaceTowerData) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	t, ok := r.state.PlaceTower(string(pid), d.X, d.Z, d.Type)
	r.countCommand(ok)
	if ok {
		Log.Debugw("tower placed", "room", r.ID, "player", pid, "tower", t.ID, "type", t.Type, "resources", r.state.Resources)
	}
	return ok
}

// UpgradeTower 处理 upgrade_tower 指令
func (r *Room) UpgradeTower(pid PlayerID, d UpgradeTowerData) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	ok := r.state.UpgradeTower(d.ID)
	r.countCommand(ok)
	if ok {
		Log.Debugw("tower upgraded", "room", r.ID, "player", pid, "tower", d.ID, "resources", r.state.Resources)
	}
	return ok
}

// SetSpeed 处理 speed_toggle 指令；倍速只作用于本房间
func (r *Room) SetSpeed(pid PlayerID, d SpeedToggleData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.state.SetSpeed(d.Fast)
	r.countCommand(true)
	Log.Debugw("speed toggled", "room", r.ID, "player", pid, "speed", r.state.Speed)
}

func (r *Room) countCommand(ok bool) {
	if ok {
		r.metrics.IncAccepted()
	} else {
		r.metrics.IncRejected()
	}
}

// Tick 推进一次模拟并广播快照
// 核心循环：推进世界 → 取快照并清空事件 → 广播
func (r *Room) Tick(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.tickSeq++
	r.state.Advance(now)
	snap := r.state.Flush()
	r.logEvents(snap.Events)
	r.broadcastLocked(GameUpdateMessage{Type: MsgGameUpdate, Snapshot: snap})
}

// broadcastLocked 将消息编码后压入所有成员的发送队列（非阻塞）
func (r *Room) broadcastLocked(msg any) {
	cache := encodeCache{}
	for _, m := range r.members {
		if m.Conn == nil {
			continue
		}
		b, err := cache.get(m.Conn.Codec(), msg)
		if err != nil {
			Log.Errorw("encode snapshot failed", "room", r.ID, "err", err)
			return
		}
		if !m.Conn.Enqueue(b) {
			r.metrics.IncFramesDropped()
		}
	}
}

// logEvents 只记录阶段性事件，战斗细节事件太多不落日志
func (r *Room) logEvents(evs []game.Event) {
	for _, ev := range evs {
		switch ev.Type {
		case game.EventWave:
			Log.Infow("wave started", "room", r.ID, "wave", ev.Wave, "enemies", len(r.state.Enemies))
		case game.EventInterval:
			Log.Infow("interval started", "room", r.ID, "wave", r.state.Wave, "until", ev.Until)
		case game.EventVictory:
			Log.Infow("victory", "room", r.ID, "score", r.state.Score)
		case game.EventGameOver:
			Log.Infow("game over", "room", r.ID, "wave", r.state.Wave, "score", r.state.Score)
		}
	}
}

// Settings 管理接口可调的房间参数
type Settings struct {
	WaveIntervalMs int64  `json:"waveIntervalMs"`
	Speed          int    `json:"speed"`
	Phase          string `json:"phase"`
	Wave           int    `json:"wave"`
	Players        int    `json:"players"`
}

// Settings 读取当前参数
func (r *Room) Settings() Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Settings{
		WaveIntervalMs: r.state.Rules.WaveInterval.Milliseconds(),
		Speed:          r.state.Speed,
		Phase:          r.state.Phase().String(),
		Wave:           r.state.Wave,
		Players:        r.state.NumPlayers(),
	}
}

// UpdateSettings 热更新；新的间隔从下一次建造阶段开始生效
func (r *Room) UpdateSettings(waveInterval *time.Duration, fast *bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if waveInterval != nil && *waveInterval > 0 {
		r.state.Rules.WaveInterval = *waveInterval
	}
	if fast != nil {
		r.state.SetSpeed(*fast)
	}
}
