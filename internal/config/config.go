package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Генераторы процедурного мира
const (
	GeneratorSimple = "simple"
	GeneratorNoise  = "noise"
)

// GameConfig корневая структура конфигурации игры.
// Загружается из YAML; незаданные поля берутся из Default().
type GameConfig struct {
	Display DisplayConfig `yaml:"display"`
	World   WorldConfig   `yaml:"world"`
	Save    SaveConfig    `yaml:"save"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// DisplayConfig - параметры окна (используются внешним слоем рендера)
type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	FrameRate    int    `yaml:"frame_rate"`
	Fullscreen   bool   `yaml:"fullscreen"`
	WindowTitle  string `yaml:"window_title"`
}

// WorldConfig - размеры тайла и мира, параметры процедурной генерации
type WorldConfig struct {
	TileWidth   float64 `yaml:"tile_width"`
	TileHeight  float64 `yaml:"tile_height"`
	WorldWidth  int     `yaml:"world_width"`
	WorldHeight int     `yaml:"world_height"`
	Generator   string  `yaml:"generator"`
	Seed        int64   `yaml:"seed"`
}

// SaveConfig - пути к файлу сохранения и архиву слотов
type SaveConfig struct {
	Path    string `yaml:"path"`
	SlotDir string `yaml:"slot_dir"`
}

// MetricsConfig - наблюдаемость: Prometheus и трассировка (пустое значение выключает)
type MetricsConfig struct {
	Addr         string `yaml:"addr"`
	OTLPEndpoint string `yaml:"otlp_endpoint"` // host:port OTLP/HTTP коллектора
}

// Default возвращает конфигурацию по умолчанию
func Default() GameConfig {
	return GameConfig{
		Display: DisplayConfig{
			ScreenWidth:  1024,
			ScreenHeight: 768,
			FrameRate:    60,
			WindowTitle:  "IsoGame Test",
		},
		World: WorldConfig{
			TileWidth:   64,
			TileHeight:  32,
			WorldWidth:  60,
			WorldHeight: 80,
			Generator:   GeneratorSimple,
			Seed:        1,
		},
		Save: SaveConfig{
			Path:    "saves/world.json",
			SlotDir: "saves/slots",
		},
	}
}

// GetWorldWidth возвращает ширину мира с поддержкой fallback значений
func (w *WorldConfig) GetWorldWidth() int {
	return getIntWithEnvFallback(w.WorldWidth, "GAME_WORLD_WIDTH", 60)
}

// GetWorldHeight возвращает высоту мира с поддержкой fallback значений
func (w *WorldConfig) GetWorldHeight() int {
	return getIntWithEnvFallback(w.WorldHeight, "GAME_WORLD_HEIGHT", 80)
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configValue int, envVar string, defaultValue int) int {
	if configValue > 0 {
		return configValue
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}

	return defaultValue
}

// Load читает YAML файл конфигурации поверх Default().
// Если path == "", берется ENV GAME_CONFIG; если и он пуст - возвращаются дефолты.
func Load(path string) (GameConfig, error) {
	if path == "" {
		path = os.Getenv("GAME_CONFIG")
		if path == "" {
			cfg := Default()
			return cfg, cfg.Validate()
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return GameConfig{}, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse разбирает YAML поверх Default() и валидирует результат
func Parse(data []byte) (GameConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.World.WorldWidth = cfg.World.GetWorldWidth()
	cfg.World.WorldHeight = cfg.World.GetWorldHeight()

	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// WriteFile записывает конфигурацию в YAML
func (c GameConfig) WriteFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// Validate проверяет значения конфигурации
func (c GameConfig) Validate() error {
	var errs []error
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		errs = append(errs, errors.New("screen dimensions must be positive"))
	}
	if c.Display.FrameRate <= 0 {
		errs = append(errs, errors.New("frame rate must be positive"))
	}
	if c.Display.WindowTitle == "" {
		errs = append(errs, errors.New("window title must not be empty"))
	}
	if c.World.TileWidth <= 0 || c.World.TileHeight <= 0 {
		errs = append(errs, errors.New("tile dimensions must be positive"))
	}
	if c.World.WorldWidth <= 0 || c.World.WorldHeight <= 0 {
		errs = append(errs, errors.New("world dimensions must be positive"))
	}
	switch c.World.Generator {
	case GeneratorSimple, GeneratorNoise:
	default:
		errs = append(errs, fmt.Errorf("unknown world generator %q", c.World.Generator))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
