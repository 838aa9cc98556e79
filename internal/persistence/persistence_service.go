package persistence

import (
	"context"

	"github.com/annel0/isogame/internal/config"
	"github.com/annel0/isogame/internal/logging"
	"github.com/annel0/isogame/internal/world"
)

// WorldPersistenceService выбирает источник данных мира и строит живой мир
// со стандартными компонентами. Конфигурация и реестр типов передаются явно.
type WorldPersistenceService struct {
	cfg     config.GameConfig
	tiles   *world.TilesManager
	metrics *LoadMetrics
	logger  *logging.Logger
}

// NewWorldPersistenceService создаёт сервис
func NewWorldPersistenceService(cfg config.GameConfig, tiles *world.TilesManager) *WorldPersistenceService {
	return &WorldPersistenceService{
		cfg:    cfg,
		tiles:  tiles,
		logger: logging.GetPersistenceLogger(),
	}
}

// WithMetrics подключает метрики ко всем построениям сервиса
func (s *WorldPersistenceService) WithMetrics(m *LoadMetrics) *WorldPersistenceService {
	s.metrics = m
	return s
}

// LoadOrGenerate пока всегда генерирует мир: загрузка ещё не реализована
func (s *WorldPersistenceService) LoadOrGenerate(ctx context.Context) (*world.GameWorld, error) {
	s.logger.Info("🎲 Загрузка сохранения недоступна, генерируем мир (%s)", s.cfg.World.Generator)
	return s.GenerateWorld(ctx)
}

// GenerateWorld строит процедурный мир по настройкам world в конфигурации
func (s *WorldPersistenceService) GenerateWorld(ctx context.Context) (*world.GameWorld, error) {
	return s.LoadFromReader(ctx, s.generator())
}

// LoadFromReader строит мир из произвольного источника данных
func (s *WorldPersistenceService) LoadFromReader(ctx context.Context, reader WorldDataReader) (*world.GameWorld, error) {
	return NewWorldLoadService(reader, s.tiles, BuildWorldWithTiles).
		WithMetrics(s.metrics).
		BuildWorld(ctx)
}

// LoadWorld - загрузка мира из файла сохранения. Пока недоступна.
func (s *WorldPersistenceService) LoadWorld(ctx context.Context) (*world.GameWorld, error) {
	return nil, notAvailable("load")
}

// SaveWorld - сохранение мира в файл. Пока недоступно.
func (s *WorldPersistenceService) SaveWorld(ctx context.Context, w *world.GameWorld) error {
	return notAvailable("save")
}

func (s *WorldPersistenceService) generator() WorldDataReader {
	width := s.cfg.World.GetWorldWidth()
	height := s.cfg.World.GetWorldHeight()

	if s.cfg.World.Generator == config.GeneratorNoise {
		return NewNoiseWorldGenerator(width, height, s.cfg.World.Seed)
	}
	return NewSimpleWorldGenerator(width, height)
}

// BuildWorldWithTiles - WorldBuilder по умолчанию: мир со стандартными компонентами
func BuildWorldWithTiles(width, height int, provider world.TileProvider) (*world.GameWorld, error) {
	return world.NewGameWorld(width, height, world.DefaultComponents(), provider)
}
