package world

import (
	"github.com/annel0/isogame/internal/vec"
)

// DecorationType - вид декорации поверх рельефа
type DecorationType int

const (
	DecorationGrass DecorationType = iota
	DecorationRock
	DecorationWall
	DecorationTree
	DecorationRoad
)

func (t DecorationType) String() string {
	switch t {
	case DecorationGrass:
		return "Grass"
	case DecorationRock:
		return "Rock"
	case DecorationWall:
		return "Wall"
	case DecorationTree:
		return "Tree"
	case DecorationRoad:
		return "Road"
	default:
		return "Unknown"
	}
}

// ResourceType - вид добываемого ресурса
type ResourceType int

const (
	ResourceCoil ResourceType = iota
	ResourceClay
	ResourceIron
	ResourceCopper
)

func (t ResourceType) String() string {
	switch t {
	case ResourceCoil:
		return "Coil"
	case ResourceClay:
		return "Clay"
	case ResourceIron:
		return "Iron"
	case ResourceCopper:
		return "Copper"
	default:
		return "Unknown"
	}
}

// Decoration - декорация на тайле (дерево, камень, стена...)
type Decoration struct {
	Type  DecorationType
	Name  string
	State uint32 // Произвольное состояние из сохранения
}

// NewDecoration создаёт декорацию
func NewDecoration(t DecorationType, name string, state uint32) *Decoration {
	return &Decoration{Type: t, Name: name, State: state}
}

// MoveSpeed возвращает модификатор скорости передвижения
func (d *Decoration) MoveSpeed() float64 {
	return 1
}

// Resource - истощаемый запас на тайле
type Resource struct {
	Type          ResourceType
	Name          string
	volume        uint32
	initialVolume uint32
}

// NewResource создаёт ресурс с начальным объемом
func NewResource(t ResourceType, name string, volume uint32) *Resource {
	return &Resource{Type: t, Name: name, volume: volume, initialVolume: volume}
}

// Volume возвращает оставшийся объем
func (r *Resource) Volume() uint32 {
	return r.volume
}

// InitialVolume возвращает объем на момент создания
func (r *Resource) InitialVolume() uint32 {
	return r.initialVolume
}

// Tile - живое состояние клетки: рельеф, необязательные декорация и ресурс.
// Декорация и ресурс принадлежат тайлу; nil означает их отсутствие.
type Tile struct {
	Pos        vec.Vec2Float // Центр клетки в мировых координатах
	Dirty      bool          // Требуется перерисовка рамки
	Decoration *Decoration
	Resource   *Resource

	terrain *TerrainType
}

// Terrain возвращает тип рельефа тайла
func (t *Tile) Terrain() *TerrainType {
	return t.terrain
}

// MovementSpeed - итоговая скорость передвижения по тайлу
func (t *Tile) MovementSpeed() float64 {
	speed := t.terrain.BaseMoveSpeed
	if t.Decoration != nil {
		speed *= t.Decoration.MoveSpeed()
	}
	return speed
}

// Update - тик тайла. Рост и истощение ресурсов пока не моделируются.
func (t *Tile) Update() {}
