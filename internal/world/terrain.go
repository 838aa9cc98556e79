package world

import (
	"fmt"

	"github.com/annel0/isogame/internal/vec"
	"github.com/annel0/isogame/internal/world/systems"
)

// TerrainType - общий для многих тайлов тип рельефа: имя, скорость
// передвижения, признак воды и источник текстуры
type TerrainType struct {
	Name          string
	BaseMoveSpeed float64
	IsWater       bool
	TexturePath   string
	TextureRect   systems.Rect // Пустой прямоугольник - вся картинка

	texture systems.TextureHandle
	loaded  bool
}

// NewTile создаёт тайл этого типа в указанной позиции
func (tt *TerrainType) NewTile(pos vec.Vec2Float) *Tile {
	return &Tile{Pos: pos, terrain: tt}
}

// LoadTexture загружает текстуру через внешний ResourcesSystem
func (tt *TerrainType) LoadTexture(rs systems.ResourcesSystem) error {
	tex, err := rs.LoadTexture(tt.TexturePath, tt.TextureRect)
	if err != nil {
		return fmt.Errorf("failed to load texture for terrain %s: %w", tt.Name, err)
	}
	tt.texture = tex
	tt.loaded = true
	return nil
}

// UnloadTexture освобождает текстуру, если она была загружена
func (tt *TerrainType) UnloadTexture(rs systems.ResourcesSystem) {
	if !tt.loaded {
		return
	}
	rs.UnloadTexture(tt.texture)
	tt.texture = 0
	tt.loaded = false
}

// Texture возвращает текстуру; до LoadTexture это ошибка
func (tt *TerrainType) Texture() (systems.TextureHandle, error) {
	if !tt.loaded {
		return 0, fmt.Errorf("texture for terrain tile %s is used but not loaded", tt.Name)
	}
	return tt.texture, nil
}
