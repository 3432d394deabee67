package game

import (
	"math"
	"math/rand"
)

// Vec2 地面平面上的点（x, z）
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Archetype 敌人模板
type Archetype struct {
	Type   string
	HP     int
	Speed  float64 // 每个模拟步移动的距离（与 Tick 耦合）
	Damage int
	Reward int
}

// Archetypes 固定的敌人目录，顺序即强度顺序（0 最弱）
var Archetypes = []Archetype{
	{Type: "basic", HP: 30, Speed: 0.018, Damage: 10, Reward: 10},
	{Type: "fast", HP: 15, Speed: 0.035, Damage: 7, Reward: 12},
	{Type: "tank", HP: 60, Speed: 0.012, Damage: 20, Reward: 20},
}

// Shapes 敌人的外观标签，仅供客户端渲染
var Shapes = []string{"sphere", "cube", "pyramid"}

const (
	spawnRadiusMin  = 15.0
	spawnRadiusSpan = 5.0
)

// Enemy 场上的敌人实例，仅由战斗结算修改
type Enemy struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Shape         string  `json:"shape"`
	X             float64 `json:"x"`
	Z             float64 `json:"z"`
	HP            int     `json:"hp"`
	MaxHP         int     `json:"maxHp"`
	Speed         float64 `json:"speed"`
	Damage        int     `json:"damage"`
	Reward        int     `json:"reward"`
	Path          []Vec2  `json:"path"`
	WaypointIndex int     `json:"waypointIndex"`
}

// Alive 血量大于 0
func (e *Enemy) Alive() bool { return e.HP > 0 }

// Spawn 按模板生成一个敌人：出生在半径 15~20 的圆周上，路径最后一点为基地（原点）
func Spawn(rng *rand.Rand, a Archetype, id string) *Enemy {
	angle := rng.Float64() * math.Pi * 2
	radius := spawnRadiusMin + rng.Float64()*spawnRadiusSpan
	return &Enemy{
		ID:     id,
		Type:   a.Type,
		Shape:  Shapes[rng.Intn(len(Shapes))],
		X:      math.Cos(angle) * radius,
		Z:      math.Sin(angle) * radius,
		HP:     a.HP,
		MaxHP:  a.HP,
		Speed:  a.Speed,
		Damage: a.Damage,
		Reward: a.Reward,
		Path:   randomPath(rng),
	}
}

// randomPath 每个敌人独立的三点路径：入口附近、中点、基地
func randomPath(rng *rand.Rand) []Vec2 {
	return []Vec2{
		{X: (rng.Float64() - 0.5) * 10, Z: (rng.Float64() - 0.5) * 10},
		{X: (rng.Float64() - 0.5) * 6, Z: (rng.Float64() - 0.5) * 6},
		{X: 0, Z: 0},
	}
}

// PickArchetype 按波次挑选敌人模板
func PickArchetype(rng *rand.Rand, wave int) Archetype {
	switch {
	case wave < 3:
		return Archetypes[0]
	case wave < 6:
		if rng.Float64() < 0.7 {
			return Archetypes[0]
		}
		return Archetypes[1]
	default:
		return Archetypes[rng.Intn(len(Archetypes))]
	}
}

// WaveSize 第 wave 波的敌人数：base + floor(wave * 1.5)
func WaveSize(rules Rules, wave int) int {
	return rules.EnemiesPerWaveBase + int(math.Floor(float64(wave)*1.5))
}
