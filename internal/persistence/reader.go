package persistence

import (
	"math"

	"github.com/annel0/isogame/internal/vec"
)

// CameraState - снимок камеры из сохранения
type CameraState struct {
	Offset   vec.Vec2Float
	Target   vec.Vec2Float
	Rotation float64
	Zoom     float64
}

// WorldMeta описывает весь мир; читается один раз за загрузку.
// Таблицы имён плотные: индекс - id типа, пустая строка - незанятый id.
// В таблицах декораций и ресурсов id 0 означает "нет".
type WorldMeta struct {
	Width  int
	Height int

	TileTypeNamesByID   []string
	DecorationNamesByID []string
	ResourceNamesByID   []string

	Camera *CameraState
}

// TileCount возвращает width*height
func (m WorldMeta) TileCount() int {
	return m.Width * m.Height
}

// WorldTileData - одна запись потока тайлов.
// ResourceVolume присутствует тогда и только тогда, когда ResourceTypeID != 0,
// DecorationState - когда DecorationTypeID != 0.
type WorldTileData struct {
	TileTypeID       uint16
	DecorationTypeID uint16
	ResourceTypeID   uint16

	ResourceVolume  *uint32
	DecorationState *uint32
}

// WorldDataReader - источник данных мира: метаданные один раз, затем поток тайлов.
// Порядок вызовов: ReadMeta, BeginTileScan, NextTile до ok=false.
// Разбор и проверка выполняются лениво при первом обращении и кэшируются.
type WorldDataReader interface {
	ReadMeta() (WorldMeta, error)
	BeginTileScan() error
	NextTile() (tile WorldTileData, ok bool, err error)
}

// checkDimensions проверяет размеры и отсутствие переполнения width*height
func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return newError(KindDimensions, "World dimensions must be positive")
	}
	if width > math.MaxInt/height {
		return newError(KindDimensions, "World dimensions are too large: %dx%d", width, height)
	}
	return nil
}

// lookupName разрешает id в непустое имя таблицы
func lookupName(names []string, id uint16) (string, bool) {
	if int(id) >= len(names) || names[id] == "" {
		return "", false
	}
	return names[id], true
}
