package game

// EventType 事件类型
type EventType string

const (
	EventTower        EventType = "tower"
	EventTowerUpgrade EventType = "tower_upgrade"
	EventEnemyHit     EventType = "enemy_hit"
	EventEnemyKilled  EventType = "enemy_killed"
	EventEnemyReached EventType = "enemy_reached"
	EventWave         EventType = "wave"
	EventInterval     EventType = "interval"
	EventGameOver     EventType = "game_over"
	EventVictory      EventType = "victory"
)

// Event 本 Tick 内发生的一件事，广播一次后即丢弃
type Event struct {
	Type     EventType `json:"type"`
	ID       string    `json:"id,omitempty"`
	PlayerID string    `json:"playerId,omitempty"`
	Dmg      int       `json:"dmg,omitempty"`
	Damage   int       `json:"damage,omitempty"`
	Reward   int       `json:"reward,omitempty"`
	Wave     int       `json:"wave,omitempty"`
	Level    int       `json:"level,omitempty"`
	Until    int64     `json:"until,omitempty"` // 毫秒时间戳
	Tower    *Tower    `json:"tower,omitempty"`
}

func (r *Room) emit(ev Event) {
	r.events = append(r.events, ev)
}
