package game

import "math"

// waypointReach 距离小于该值视为到达路径点
const waypointReach = 0.2

// step 单个模拟步：移动 → 清理到达基地的敌人 → 塔攻击 → 清理死亡敌人
func (r *Room) step() {
	r.moveEnemies()
	r.sweep()
	for _, t := range r.Towers {
		r.fire(t)
	}
	r.sweep()
}

// moveEnemies 敌人沿路径前进，speed 为每步的位移量
func (r *Room) moveEnemies() {
	for _, e := range r.Enemies {
		if e.WaypointIndex >= len(e.Path) {
			continue
		}
		wp := e.Path[e.WaypointIndex]
		dx := wp.X - e.X
		dz := wp.Z - e.Z
		dist := math.Sqrt(dx*dx + dz*dz)
		if dist < waypointReach {
			if e.WaypointIndex < len(e.Path)-1 {
				e.WaypointIndex++
				continue
			}
			// 到达基地
			r.BaseHP -= e.Damage
			e.HP = 0
			r.emit(Event{Type: EventEnemyReached, ID: e.ID, Damage: e.Damage})
			continue
		}
		e.X += dx / dist * e.Speed
		e.Z += dz / dist * e.Speed
	}
}

// fire 塔攻击射程内最近的存活敌人；距离相同时先遍历到的优先
func (r *Room) fire(t *Tower) {
	target := r.nearestEnemy(t.X, t.Z, t.Range())
	if target == nil {
		return
	}
	dmg := t.Damage()
	target.HP -= dmg
	r.emit(Event{Type: EventEnemyHit, ID: target.ID, Dmg: dmg})
	if target.HP <= 0 {
		r.Resources += target.Reward
		r.Score += target.Reward
		r.emit(Event{Type: EventEnemyKilled, ID: target.ID, Reward: target.Reward})
	}
}

func (r *Room) nearestEnemy(x, z, maxDist float64) *Enemy {
	var target *Enemy
	best := math.Inf(1)
	for _, e := range r.Enemies {
		if !e.Alive() {
			continue
		}
		d := distance(x, z, e.X, e.Z)
		if d < maxDist && d < best {
			best = d
			target = e
		}
	}
	return target
}

// sweep 原地过滤掉 hp <= 0 的敌人，保持遍历顺序
func (r *Room) sweep() {
	alive := r.Enemies[:0]
	for _, e := range r.Enemies {
		if e.Alive() {
			alive = append(alive, e)
		}
	}
	for i := len(alive); i < len(r.Enemies); i++ {
		r.Enemies[i] = nil
	}
	r.Enemies = alive
}
