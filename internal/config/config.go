package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"worldbridge/internal/domain"
)

// Config - настройки процесса. Читаются из переменных окружения.
type Config struct {
	Port string `env:"WB_PORT" envDefault:"8080"`

	// Симуляция
	TickRate      time.Duration `env:"WB_TICK_RATE" envDefault:"16ms"`
	StepDuration  time.Duration `env:"WB_STEP_DURATION" envDefault:"120ms"`
	WorldWidth    int           `env:"WB_WORLD_WIDTH" envDefault:"200"`
	WorldHeight   int           `env:"WB_WORLD_HEIGHT" envDefault:"200"`
	StartX        int           `env:"WB_START_X" envDefault:"100"`
	StartY        int           `env:"WB_START_Y" envDefault:"100"`
	VisionRadius  int           `env:"WB_VISION_RADIUS" envDefault:"5"`
	TimeTickEvery int           `env:"WB_TIME_TICK_EVERY" envDefault:"60"` // в тиках, 0 - выключено
	RecentEvents  int           `env:"WB_RECENT_EVENTS" envDefault:"8"`

	// Зрители
	FrameEvery time.Duration `env:"WB_FRAME_EVERY" envDefault:"100ms"`

	// Акторы
	Bots       int           `env:"WB_BOTS" envDefault:"1"`
	ThinkDelay time.Duration `env:"WB_THINK_DELAY" envDefault:"1500ms"`

	// Логи
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Default возвращает конфиг со значениями по умолчанию, без чтения окружения.
func Default() Config {
	return Config{
		Port:          "8080",
		TickRate:      domain.TickRate,
		StepDuration:  domain.StepDuration,
		WorldWidth:    domain.WorldWidth,
		WorldHeight:   domain.WorldHeight,
		StartX:        domain.WorldWidth / 2,
		StartY:        domain.WorldHeight / 2,
		VisionRadius:  domain.VisionRadius,
		TimeTickEvery: 60,
		RecentEvents:  domain.RecentEventsLimit,
		FrameEvery:    100 * time.Millisecond,
		Bots:          1,
		ThinkDelay:    1500 * time.Millisecond,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load читает конфиг из окружения и проверяет его.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет значения, без которых симуляция не может работать.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %s", c.TickRate)
	}
	if c.StepDuration <= 0 {
		return fmt.Errorf("step duration must be positive, got %s", c.StepDuration)
	}
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fmt.Errorf("world size must be positive, got %dx%d", c.WorldWidth, c.WorldHeight)
	}
	if c.FrameEvery <= 0 {
		return fmt.Errorf("frame interval must be positive, got %s", c.FrameEvery)
	}
	if c.Bots < 0 {
		return fmt.Errorf("bots must be >= 0, got %d", c.Bots)
	}
	return nil
}

// StartCell - стартовая клетка первого актора
func (c Config) StartCell() domain.Cell {
	return domain.Cell{X: c.StartX, Y: c.StartY}
}
