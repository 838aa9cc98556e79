package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/annel0/isogame/internal/logging"
	"github.com/annel0/isogame/internal/vec"
	"github.com/annel0/isogame/internal/world"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/annel0/isogame/internal/persistence"

// TileTypeResolver разрешает имена из сохранения в типы и создаёт тайлы.
// *world.TilesManager удовлетворяет этому интерфейсу.
type TileTypeResolver interface {
	NewTile(name string, pos vec.Vec2Float) (*world.Tile, error)
	DecorationTypeByName(name string) (world.DecorationType, error)
	ResourceTypeByName(name string) (world.ResourceType, error)
}

// WorldBuilder строит живой мир, вызывая provider для каждой клетки
type WorldBuilder func(width, height int, provider world.TileProvider) (*world.GameWorld, error)

// WorldLoadService восстанавливает живой мир из WorldDataReader.
// Любая ошибка прерывает построение целиком: частично построенный мир не возвращается.
type WorldLoadService struct {
	reader  WorldDataReader
	tiles   TileTypeResolver
	builder WorldBuilder
	metrics *LoadMetrics
	tracer  trace.Tracer
	logger  *logging.Logger
}

// NewWorldLoadService создаёт сервис загрузки для одного источника данных
func NewWorldLoadService(reader WorldDataReader, tiles TileTypeResolver, builder WorldBuilder) *WorldLoadService {
	return &WorldLoadService{
		reader:  reader,
		tiles:   tiles,
		builder: builder,
		tracer:  otel.Tracer(tracerName),
		logger:  logging.GetPersistenceLogger(),
	}
}

// WithMetrics подключает метрики загрузки
func (s *WorldLoadService) WithMetrics(m *LoadMetrics) *WorldLoadService {
	s.metrics = m
	return s
}

// BuildWorld читает метаданные, строит сетку тайлов и применяет камеру.
// Контекст используется только для трассировки.
func (s *WorldLoadService) BuildWorld(ctx context.Context) (*world.GameWorld, error) {
	_, span := s.tracer.Start(ctx, "world.build")
	defer span.End()

	// Идентификатор сборки для логов: trace-id, если трассировка включена
	buildID := uuid.NewString()
	if span.SpanContext().IsValid() {
		buildID = span.SpanContext().TraceID().String()
	}

	start := time.Now()
	w, built, err := s.build()
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.ObserveFailure(err, elapsed)
		s.logger.Error("❌ Не удалось построить мир (build=%s, тайлов построено %d): %v", buildID, built, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("world.width", w.Width),
		attribute.Int("world.height", w.Height),
		attribute.Int("world.tiles", built),
	)
	s.metrics.ObserveBuild(built, elapsed)
	s.logger.Info("🌍 Мир %dx%d построен за %v (build=%s)", w.Width, w.Height, elapsed, buildID)
	return w, nil
}

func (s *WorldLoadService) build() (*world.GameWorld, int, error) {
	if s.reader == nil || s.tiles == nil {
		return nil, 0, errors.New("world load service requires a reader and a tile resolver")
	}
	if s.builder == nil {
		return nil, 0, errors.New("world load service requires a world builder")
	}

	meta, err := s.reader.ReadMeta()
	if err != nil {
		return nil, 0, err
	}
	if err := checkDimensions(meta.Width, meta.Height); err != nil {
		return nil, 0, err
	}
	s.logger.Debug("📐 Метаданные мира: %dx%d, рельеф %d, декорации %d, ресурсы %d, камера %t",
		meta.Width, meta.Height, len(meta.TileTypeNamesByID), len(meta.DecorationNamesByID),
		len(meta.ResourceNamesByID), meta.Camera != nil)

	if err := s.reader.BeginTileScan(); err != nil {
		return nil, 0, err
	}

	built := 0
	w, err := s.builder(meta.Width, meta.Height, func(x, y int) (*world.Tile, error) {
		tile, err := s.provideTile(meta, x, y)
		if err != nil {
			return nil, err
		}
		built++
		return tile, nil
	})
	if err != nil {
		return nil, built, err
	}
	if w == nil {
		return nil, built, errors.New("world builder returned no world")
	}

	_, extra, err := s.reader.NextTile()
	if err != nil {
		return nil, built, err
	}
	if extra {
		return nil, built, newError(KindStream, "Extra tile data after expected tile count: %d", meta.TileCount())
	}

	if meta.Camera != nil {
		cam := w.Camera()
		cam.Offset = meta.Camera.Offset
		cam.Target = meta.Camera.Target
		cam.Rotation = meta.Camera.Rotation
		cam.Zoom = meta.Camera.Zoom
	}

	return w, built, nil
}

// provideTile строит тайл клетки (x, y) из следующей записи потока
func (s *WorldLoadService) provideTile(meta WorldMeta, x, y int) (*world.Tile, error) {
	data, ok, err := s.reader.NextTile()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newError(KindStream, "Unexpected end of tile stream at x: %d, y: %d", x, y)
	}

	if int(data.TileTypeID) >= len(meta.TileTypeNamesByID) {
		return nil, newError(KindReference, "Unknown tileTypeId=%d at x: %d, y: %d", data.TileTypeID, x, y)
	}
	name := meta.TileTypeNamesByID[data.TileTypeID]
	if name == "" {
		return nil, newError(KindReference, "Missing tile type name for tileTypeId=%d at x: %d, y: %d", data.TileTypeID, x, y)
	}

	tile, err := s.tiles.NewTile(name, vec.Vec2{X: x, Y: y}.Center())
	if err != nil {
		return nil, wrapError(KindReference, err, "Failed to create tile at x: %d, y: %d", x, y)
	}

	if data.DecorationTypeID != 0 {
		decoration, err := s.buildDecoration(meta, data, x, y)
		if err != nil {
			return nil, err
		}
		tile.Decoration = decoration
	}

	if data.ResourceTypeID != 0 {
		resource, err := s.buildResource(meta, data, x, y)
		if err != nil {
			return nil, err
		}
		tile.Resource = resource
	}

	return tile, nil
}

func (s *WorldLoadService) buildDecoration(meta WorldMeta, data WorldTileData, x, y int) (*world.Decoration, error) {
	id := data.DecorationTypeID
	if int(id) >= len(meta.DecorationNamesByID) {
		return nil, newError(KindReference, "Unknown decorationTypeId=%d at x: %d, y: %d", id, x, y)
	}
	name := meta.DecorationNamesByID[id]
	if name == "" {
		return nil, newError(KindReference, "Missing decoration type name for decorationTypeId=%d at x: %d, y: %d", id, x, y)
	}
	if data.DecorationState == nil {
		return nil, newError(KindMissingField, "Missing decoration state at x: %d, y: %d", x, y)
	}
	t, err := s.tiles.DecorationTypeByName(name)
	if err != nil {
		return nil, wrapError(KindReference, err, "Unresolved decoration at x: %d, y: %d", x, y)
	}
	return world.NewDecoration(t, name, *data.DecorationState), nil
}

func (s *WorldLoadService) buildResource(meta WorldMeta, data WorldTileData, x, y int) (*world.Resource, error) {
	id := data.ResourceTypeID
	if int(id) >= len(meta.ResourceNamesByID) {
		return nil, newError(KindReference, "Unknown resourceTypeId=%d at x: %d, y: %d", id, x, y)
	}
	if data.ResourceVolume == nil {
		return nil, newError(KindMissingField, "Missing resource volume at x: %d, y: %d", x, y)
	}
	name := meta.ResourceNamesByID[id]
	if name == "" {
		return nil, newError(KindReference, "Missing resource type name for resourceTypeId=%d at x: %d, y: %d", id, x, y)
	}
	t, err := s.tiles.ResourceTypeByName(name)
	if err != nil {
		return nil, wrapError(KindReference, err, "Unresolved resource at x: %d, y: %d", x, y)
	}
	return world.NewResource(t, name, *data.ResourceVolume), nil
}
