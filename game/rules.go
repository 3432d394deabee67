package game

import "time"

// Rules 房间的基本规则参数（可在创建房间时注入，便于测试与热更新）
type Rules struct {
	WaveInterval       time.Duration // 波次之间的建造间隔
	MaxWaves           int           // 通关所需波次
	EnemiesPerWaveBase int           // 每波基础敌人数
	BaseHP             int           // 基地初始血量
	StartResources     int           // 初始资源
}

// DefaultRules 默认规则：20 秒间隔，10 波，基地 100 血，500 资源
func DefaultRules() Rules {
	return Rules{
		WaveInterval:       20 * time.Second,
		MaxWaves:           10,
		EnemiesPerWaveBase: 5,
		BaseHP:             100,
		StartResources:     500,
	}
}
