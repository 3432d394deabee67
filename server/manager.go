package server

import (
	"sync"
	"time"

	"coopdefense/game"
)

// RoomInfo 房间列表项
type RoomInfo struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
	Phase   string `json:"phase"`
	Wave    int    `json:"wave"`
}

// RoomManager 管理多个房间的生命周期：按容量撮合，空房间立即销毁
// 锁顺序固定为 RoomManager.mu → Room.mu，Room 内部从不回调管理器
type RoomManager struct {
	mu         sync.RWMutex
	rooms      map[string]*Room
	order      []string // 创建顺序，撮合时按此顺序扫描
	playerRoom map[PlayerID]string

	maxPlayers int
	rules      game.Rules
	now        func() time.Time
}

// NewRoomManager 创建房间管理器
func NewRoomManager(maxPlayers int, rules game.Rules) *RoomManager {
	if maxPlayers <= 0 {
		maxPlayers = 3
	}
	return &RoomManager{
		rooms:      make(map[string]*Room),
		playerRoom: make(map[PlayerID]string),
		maxPlayers: maxPlayers,
		rules:      rules,
		now:        time.Now,
	}
}

// Join 将玩家分配到第一个有空位的房间，没有则新建
func (m *RoomManager) Join(member *Member) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.playerRoom[member.ID]; ok {
		return m.rooms[id]
	}
	now := m.now()
	for _, id := range m.order {
		r := m.rooms[id]
		if r.tryJoin(member, m.maxPlayers, now) {
			m.playerRoom[member.ID] = r.ID
			Log.Infow("player joined", "room", r.ID, "player", member.ID)
			return r
		}
	}

	r := NewRoom(m.newRoomIDLocked(), m.rules, now)
	m.rooms[r.ID] = r
	m.order = append(m.order, r.ID)
	r.tryJoin(member, m.maxPlayers, now)
	m.playerRoom[member.ID] = r.ID
	Log.Infow("room created", "room", r.ID, "player", member.ID)
	return r
}

// Leave 移除玩家；房间空了立即销毁。重复调用为 no-op
func (m *RoomManager) Leave(pid PlayerID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.playerRoom[pid]
	if !ok {
		return false
	}
	delete(m.playerRoom, pid)
	r, ok := m.rooms[id]
	if !ok {
		return false
	}
	_, empty := r.leave(pid)
	Log.Infow("player left", "room", id, "player", pid)
	if empty {
		m.removeRoomLocked(id)
		Log.Infow("room destroyed", "room", id)
	}
	return true
}

func (m *RoomManager) removeRoomLocked(id string) {
	delete(m.rooms, id)
	for i, rid := range m.order {
		if rid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *RoomManager) newRoomIDLocked() string {
	for {
		id := "room_" + game.ShortID(6)
		if _, exists := m.rooms[id]; !exists {
			return id
		}
	}
}

// Room 按 ID 查找房间
func (m *RoomManager) Room(id string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[id]
}

// RoomOf 玩家所在房间
func (m *RoomManager) RoomOf(pid PlayerID) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.playerRoom[pid]; ok {
		return m.rooms[id]
	}
	return nil
}

// Rooms 当前房间的快照（按创建顺序），供 Tick 驱动在锁外遍历
func (m *RoomManager) Rooms() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Room, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rooms[id])
	}
	return out
}

// List 房间列表
func (m *RoomManager) List() []RoomInfo {
	rooms := m.Rooms()
	out := make([]RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		s := r.Settings()
		out = append(out, RoomInfo{ID: r.ID, Players: s.Players, Phase: s.Phase, Wave: s.Wave})
	}
	return out
}
