package game

import "time"

// startWave 建造 → 战斗：波次 +1，生成本波敌人
func (r *Room) startWave() {
	wave := r.Wave + 1
	n := WaveSize(r.Rules, wave)
	for i := 0; i < n; i++ {
		a := PickArchetype(r.rng, wave)
		r.Enemies = append(r.Enemies, Spawn(r.rng, a, r.newID(9)))
	}
	r.Wave = wave
	r.IntervalActive = false
	r.emit(Event{Type: EventWave, Wave: r.Wave})
}

// finishWave 场上敌人清空：到达最大波次则胜利，否则进入下一次建造间隔
func (r *Room) finishWave(now time.Time) {
	if r.Wave >= r.Rules.MaxWaves {
		r.Victory = true
		r.emit(Event{Type: EventVictory})
		return
	}
	speed := r.Speed
	if speed < 1 {
		speed = 1
	}
	r.IntervalActive = true
	r.IntervalEnd = now.Add(r.Rules.WaveInterval / time.Duration(speed))
	r.emit(Event{Type: EventInterval, Until: r.IntervalEnd.UnixMilli()})
}
