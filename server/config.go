package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"coopdefense/game"
)

// Config 进程级配置：监听地址、日志、房间容量、Tick 频率与默认规则
type Config struct {
	Addr       string
	LogFile    string
	LogLevel   string
	MaxPlayers int
	TickRate   int
	StaticDir  string
	Rules      game.Rules
}

// DefaultConfig 默认配置：3 人房，20 TPS
func DefaultConfig() Config {
	return Config{
		Addr:       ":3000",
		LogFile:    "app.log",
		LogLevel:   "info",
		MaxPlayers: 3,
		TickRate:   TicksPerSecond,
		StaticDir:  "public",
		Rules:      game.DefaultRules(),
	}
}

// TickInterval 每个 Tick 的时长
func (c Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return tickInterval
	}
	return time.Second / time.Duration(c.TickRate)
}

// LoadConfig 读取 .env（不存在则忽略）与环境变量，覆盖默认值
func LoadConfig(envFile string) (Config, error) {
	cfg := DefaultConfig()
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load env file %q: %w", envFile, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	strVars := map[string]*string{
		"TD_ADDR":       &cfg.Addr,
		"TD_LOG_FILE":   &cfg.LogFile,
		"TD_LOG_LEVEL":  &cfg.LogLevel,
		"TD_STATIC_DIR": &cfg.StaticDir,
	}
	for key, dst := range strVars {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	intVars := map[string]*int{
		"TD_MAX_PLAYERS":     &cfg.MaxPlayers,
		"TD_TICK_RATE":       &cfg.TickRate,
		"TD_MAX_WAVES":       &cfg.Rules.MaxWaves,
		"TD_BASE_HP":         &cfg.Rules.BaseHP,
		"TD_START_RESOURCES": &cfg.Rules.StartResources,
	}
	for key, dst := range intVars {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid %s=%q: must be a positive integer", key, v)
		}
		*dst = n
	}

	if v := os.Getenv("TD_WAVE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid TD_WAVE_INTERVAL=%q: %w", v, err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("invalid TD_WAVE_INTERVAL=%q: must be positive", v)
		}
		cfg.Rules.WaveInterval = d
	}
	return cfg, nil
}
