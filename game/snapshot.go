package game

// Snapshot 广播给客户端的房间完整状态（值拷贝，可在锁外编码）
type Snapshot struct {
	Enemies        []Enemy `json:"enemies"`
	Towers         []Tower `json:"towers"`
	BaseHP         int     `json:"baseHp"`
	Wave           int     `json:"wave"`
	Resources      int     `json:"resources"`
	Score          int     `json:"score"`
	IntervalActive bool    `json:"intervalActive"`
	IntervalEnd    int64   `json:"intervalEnd"` // 毫秒时间戳
	GameOver       bool    `json:"gameOver"`
	Victory        bool    `json:"victory"`
	Speed          int     `json:"speed"`
	Events         []Event `json:"events"`
}

// Flush 生成快照并取走本 Tick 累积的事件（事件列表随之清空）
func (r *Room) Flush() Snapshot {
	s := Snapshot{
		Enemies:        make([]Enemy, 0, len(r.Enemies)),
		Towers:         make([]Tower, 0, len(r.Towers)),
		BaseHP:         r.BaseHP,
		Wave:           r.Wave,
		Resources:      r.Resources,
		Score:          r.Score,
		IntervalActive: r.IntervalActive,
		IntervalEnd:    r.IntervalEnd.UnixMilli(),
		GameOver:       r.GameOver,
		Victory:        r.Victory,
		Speed:          r.Speed,
		Events:         r.events,
	}
	for _, e := range r.Enemies {
		s.Enemies = append(s.Enemies, *e)
	}
	for _, t := range r.Towers {
		s.Towers = append(s.Towers, *t)
	}
	if s.Events == nil {
		s.Events = []Event{}
	}
	r.events = nil
	return s
}

// PendingEvents 尚未广播的事件（只读视图，测试与日志用）
func (r *Room) PendingEvents() []Event { return r.events }
