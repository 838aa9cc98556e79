package world

import (
	"fmt"
	"sort"

	"github.com/annel0/isogame/internal/vec"
	"github.com/annel0/isogame/internal/world/systems"
)

const (
	terrainAtlas = "textures/terrain-1.png"
	oceanTexture = "textures/ocean_sm.png"
)

// TilesManager - реестр типов рельефа, декораций и ресурсов по имени.
// Создаёт тайлы и разрешает имена из сохранений в типы.
type TilesManager struct {
	terrains    map[string]*TerrainType
	decorations map[string]DecorationType
	resources   map[string]ResourceType
}

// NewTilesManager создаёт пустой реестр
func NewTilesManager() *TilesManager {
	return &TilesManager{
		terrains:    make(map[string]*TerrainType),
		decorations: make(map[string]DecorationType),
		resources:   make(map[string]ResourceType),
	}
}

// NewDefaultTilesManager создаёт реестр со стандартным набором типов
func NewDefaultTilesManager() *TilesManager {
	m := NewTilesManager()

	names := []string{"Desert", "Plains", "Grassland", "ForestBg", "HillsBg",
		"MountainsBg", "Tundra", "Arctic", "Swamp", "Jungle"}
	speeds := []float64{0.8, 2, 1.5, 1.2, 1.3, 0.8, 2.0, 0.8, 0.5, 1.0}

	for i, name := range names {
		m.RegisterTerrain(&TerrainType{
			Name:          name,
			BaseMoveSpeed: speeds[i],
			TexturePath:   terrainAtlas,
			TextureRect:   systems.Rect{X: 1, Y: 49*float64(i) + 1, Width: 96, Height: 48},
		})
	}
	m.RegisterTerrain(&TerrainType{
		Name:          "Deep Water",
		BaseMoveSpeed: 0.5,
		IsWater:       true,
		TexturePath:   oceanTexture,
	})

	for _, t := range []DecorationType{DecorationGrass, DecorationRock, DecorationWall, DecorationTree, DecorationRoad} {
		m.RegisterDecoration(t.String(), t)
	}
	for _, t := range []ResourceType{ResourceCoil, ResourceClay, ResourceIron, ResourceCopper} {
		m.RegisterResource(t.String(), t)
	}

	return m
}

// RegisterTerrain добавляет (или заменяет) тип рельефа
func (m *TilesManager) RegisterTerrain(tt *TerrainType) {
	m.terrains[tt.Name] = tt
}

// RegisterDecoration связывает имя декорации с типом
func (m *TilesManager) RegisterDecoration(name string, t DecorationType) {
	m.decorations[name] = t
}

// RegisterResource связывает имя ресурса с типом
func (m *TilesManager) RegisterResource(name string, t ResourceType) {
	m.resources[name] = t
}

// Terrain возвращает тип рельефа по имени
func (m *TilesManager) Terrain(name string) (*TerrainType, bool) {
	tt, ok := m.terrains[name]
	return tt, ok
}

// NewTile создаёт тайл указанного типа рельефа в позиции pos
func (m *TilesManager) NewTile(name string, pos vec.Vec2Float) (*Tile, error) {
	tt, ok := m.terrains[name]
	if !ok {
		return nil, fmt.Errorf("unknown tile type name: %s", name)
	}
	return tt.NewTile(pos), nil
}

// DecorationTypeByName разрешает имя декорации
func (m *TilesManager) DecorationTypeByName(name string) (DecorationType, error) {
	t, ok := m.decorations[name]
	if !ok {
		return 0, fmt.Errorf("unknown decoration type name: %s", name)
	}
	return t, nil
}

// ResourceTypeByName разрешает имя ресурса
func (m *TilesManager) ResourceTypeByName(name string) (ResourceType, error) {
	t, ok := m.resources[name]
	if !ok {
		return 0, fmt.Errorf("unknown resource type name: %s", name)
	}
	return t, nil
}

// TileTypeNames возвращает отсортированные имена типов рельефа
func (m *TilesManager) TileTypeNames() []string {
	return sortedKeys(m.terrains)
}

// DecorationNames возвращает отсортированные имена декораций
func (m *TilesManager) DecorationNames() []string {
	return sortedKeys(m.decorations)
}

// ResourceNames возвращает отсортированные имена ресурсов
func (m *TilesManager) ResourceNames() []string {
	return sortedKeys(m.resources)
}

// LoadTextures загружает текстуры всех типов рельефа
func (m *TilesManager) LoadTextures(rs systems.ResourcesSystem) error {
	for _, name := range m.TileTypeNames() {
		if err := m.terrains[name].LoadTexture(rs); err != nil {
			return err
		}
	}
	return nil
}

// UnloadTextures выгружает все загруженные текстуры
func (m *TilesManager) UnloadTextures(rs systems.ResourcesSystem) {
	for _, tt := range m.terrains {
		tt.UnloadTexture(rs)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
