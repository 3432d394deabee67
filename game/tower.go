package game

import "math"

// MaxTowerLevel 塔的最高等级
const MaxTowerLevel = 3

// TowerKind 塔的类型定义
type TowerKind struct {
	Name string
	Cost int
}

// TowerKinds 固定的塔目录
var TowerKinds = map[string]TowerKind{
	"archer": {Name: "archer", Cost: 100},
	"cannon": {Name: "cannon", Cost: 150},
	"magic":  {Name: "magic", Cost: 120},
}

// Tower 已放置的塔；会话期间不会被移除
type Tower struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	Owner string  `json:"playerId"`
	X     float64 `json:"x"`
	Z     float64 `json:"z"`
	Level int     `json:"level"`
}

// Range 射程：5 + level*1.5
func (t *Tower) Range() float64 {
	return 5 + float64(t.Level)*1.5
}

// Damage 伤害：基础 8 + level*4；cannon 额外 +6；magic 为 5 + level*3
func (t *Tower) Damage() int {
	switch t.Type {
	case "cannon":
		return 8 + t.Level*4 + 6
	case "magic":
		return 5 + t.Level*3
	default:
		return 8 + t.Level*4
	}
}

// UpgradeCost 从当前等级升一级的花费
func UpgradeCost(level int) int {
	return 80 + level*60
}

func distance(ax, az, bx, bz float64) float64 {
	dx := ax - bx
	dz := az - bz
	return math.Sqrt(dx*dx + dz*dz)
}
