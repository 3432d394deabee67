package server

import (
	"encoding/json"

	"coopdefense/game"
)

// 入站消息类型
const (
	MsgPlaceTower   = "place_tower"
	MsgUpgradeTower = "upgrade_tower"
	MsgSpeedToggle  = "speed_toggle"
)

// 出站消息类型
const (
	MsgJoined     = "joined"
	MsgGameUpdate = "game_update"
)

// InputMessage 入站 JSON 信封（WebSocket 文本消息）
// 示例：{"type":"place_tower","data":{"x":1,"z":1,"type":"archer"}}
type InputMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// PlaceTowerData place_tower 载荷
type PlaceTowerData struct {
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
	Type string  `json:"type"`
}

// UpgradeTowerData upgrade_tower 载荷
type UpgradeTowerData struct {
	ID string `json:"id"`
}

// SpeedToggleData speed_toggle 载荷
type SpeedToggleData struct {
	Fast bool `json:"fast"`
}

// JoinedMessage 分配房间后立即下发一次
type JoinedMessage struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

// GameUpdateMessage 每个 Tick 广播的房间快照
type GameUpdateMessage struct {
	Type string `json:"type"`
	game.Snapshot
}
