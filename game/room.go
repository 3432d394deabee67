package game

import (
	"math/rand"
	"time"
)

// Phase 房间阶段：建造 / 战斗 / 终局
type Phase int

const (
	PhaseBuilding Phase = iota
	PhaseCombat
	PhaseTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseBuilding:
		return "building"
	case PhaseCombat:
		return "combat"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Player 房间内的轻量玩家记录
type Player struct {
	ID           string    `json:"id"`
	JoinedAt     time.Time `json:"joinedAt"`
	TowersPlaced int       `json:"towersPlaced"`
}

// Room 一局独立的模拟：玩家、敌人、塔、资源、波次与终局标记
// 本类型不加锁，由调用方（server.Room）保证同一时刻只有一个执行者修改
type Room struct {
	ID      string
	Players map[string]*Player
	Enemies []*Enemy
	Towers  []*Tower

	Wave           int
	BaseHP         int
	Resources      int
	Score          int
	IntervalActive bool
	IntervalEnd    time.Time
	GameOver       bool
	Victory        bool
	Speed          int // 1 或 2，每个房间独立

	Rules Rules

	rng    *rand.Rand
	newID  func(n int) string
	events []Event
}

// NewRoom 创建处于建造阶段的新房间，intervalEnd = now + WaveInterval
func NewRoom(id string, rules Rules, now time.Time, rng *rand.Rand) *Room {
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}
	return &Room{
		ID:             id,
		Players:        make(map[string]*Player),
		BaseHP:         rules.BaseHP,
		Resources:      rules.StartResources,
		IntervalActive: true,
		IntervalEnd:    now.Add(rules.WaveInterval),
		Speed:          1,
		Rules:          rules,
		rng:            rng,
		newID:          ShortID,
	}
}

// Phase 当前阶段
func (r *Room) Phase() Phase {
	switch {
	case r.GameOver || r.Victory:
		return PhaseTerminal
	case r.IntervalActive:
		return PhaseBuilding
	default:
		return PhaseCombat
	}
}

// Terminal 是否已结束（失败或胜利）
func (r *Room) Terminal() bool { return r.GameOver || r.Victory }

// AddPlayer 记录玩家；已存在返回 false
func (r *Room) AddPlayer(id string, now time.Time) bool {
	if _, ok := r.Players[id]; ok {
		return false
	}
	r.Players[id] = &Player{ID: id, JoinedAt: now}
	return true
}

// RemovePlayer 移除玩家；不存在时为 no-op
func (r *Room) RemovePlayer(id string) bool {
	if _, ok := r.Players[id]; !ok {
		return false
	}
	delete(r.Players, id)
	return true
}

// NumPlayers 当前玩家数
func (r *Room) NumPlayers() int { return len(r.Players) }

// PlaceTower 建造阶段放塔；阶段不对、类型未知或资源不足时静默拒绝
func (r *Room) PlaceTower(playerID string, x, z float64, kind string) (*Tower, bool) {
	if !r.IntervalActive || r.Terminal() {
		return nil, false
	}
	k, ok := TowerKinds[kind]
	if !ok || r.Resources < k.Cost {
		return nil, false
	}
	r.Resources -= k.Cost
	t := &Tower{ID: r.newID(8), Type: k.Name, Owner: playerID, X: x, Z: z, Level: 1}
	r.Towers = append(r.Towers, t)
	if p, ok := r.Players[playerID]; ok {
		p.TowersPlaced++
	}
	cp := *t
	r.emit(Event{Type: EventTower, ID: t.ID, PlayerID: playerID, Level: t.Level, Tower: &cp})
	return t, true
}

// UpgradeTower 建造阶段升级；塔不存在、已满级或资源不足时静默拒绝
func (r *Room) UpgradeTower(id string) bool {
	if !r.IntervalActive || r.Terminal() {
		return false
	}
	t := r.tower(id)
	if t == nil || t.Level >= MaxTowerLevel {
		return false
	}
	cost := UpgradeCost(t.Level)
	if r.Resources < cost {
		return false
	}
	r.Resources -= cost
	t.Level++
	r.emit(Event{Type: EventTowerUpgrade, ID: t.ID, Level: t.Level})
	return true
}

// SetSpeed 切换本房间的倍速（2x 或 1x）
func (r *Room) SetSpeed(fast bool) {
	if fast {
		r.Speed = 2
	} else {
		r.Speed = 1
	}
}

func (r *Room) tower(id string) *Tower {
	for _, t := range r.Towers {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Advance 推进一个 Tick：建造阶段检查倒计时，战斗阶段按倍速执行若干模拟步
func (r *Room) Advance(now time.Time) {
	if r.Terminal() {
		return
	}
	if r.IntervalActive {
		if now.After(r.IntervalEnd) {
			r.startWave()
		}
	} else {
		speed := r.Speed
		if speed < 1 {
			speed = 1
		}
		for s := 0; s < speed; s++ {
			r.step()
			if r.BaseHP <= 0 {
				break
			}
			if len(r.Enemies) == 0 {
				r.finishWave(now)
				break
			}
		}
	}
	if r.BaseHP <= 0 && !r.GameOver {
		r.BaseHP = 0
		r.GameOver = true
		r.emit(Event{Type: EventGameOver})
	}
}
