package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/annel0/isogame/internal/vec"
	"github.com/annel0/isogame/internal/world/systems"
)

// TileProvider создаёт тайл для клетки (x, y).
// Вызывается ровно один раз на клетку в построчном порядке.
type TileProvider func(x, y int) (*Tile, error)

// GameWorld - живой мир: сетка тайлов, камера и поведение
type GameWorld struct {
	Width  int
	Height int

	grid       []*Tile
	camera     *Camera
	components Components
}

// NewGameWorld строит сетку width x height, запрашивая тайлы у provider
// построчно (y внешний, x внутренний). Первая ошибка provider прерывает построение.
func NewGameWorld(width, height int, components Components, provider TileProvider) (*GameWorld, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("world dimensions must be positive, got %dx%d", width, height)
	}
	if width > math.MaxInt/height {
		return nil, fmt.Errorf("world dimensions %dx%d are too large to allocate tile grid", width, height)
	}
	if provider == nil {
		return nil, errors.New("world requires a tile provider")
	}

	w := &GameWorld{
		Width:      width,
		Height:     height,
		grid:       make([]*Tile, 0, width*height),
		camera:     NewCamera(),
		components: components,
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tile, err := provider(x, y)
			if err != nil {
				return nil, err
			}
			if tile == nil {
				return nil, fmt.Errorf("tile provider returned no tile at x: %d, y: %d", x, y)
			}
			w.grid = append(w.grid, tile)
		}
	}

	return w, nil
}

// Camera возвращает изменяемую камеру мира
func (w *GameWorld) Camera() *Camera {
	return w.camera
}

// Tiles возвращает тайлы в построчном порядке
func (w *GameWorld) Tiles() []*Tile {
	return w.grid
}

// At возвращает тайл клетки (x, y)
func (w *GameWorld) At(x, y int) (*Tile, error) {
	cell := vec.Vec2{X: x, Y: y}
	if !cell.InBounds(w.Width, w.Height) {
		return nil, fmt.Errorf("grid position overflow: x: %d, y: %d", x, y)
	}
	return w.grid[cell.Index(w.Width)], nil
}

// TileAt возвращает тайл, в клетку которого попадает мировая позиция
func (w *GameWorld) TileAt(pos vec.Vec2Float) (*Tile, error) {
	cell := pos.Floor()
	return w.At(cell.X, cell.Y)
}

// HandleInput передает ввод компоненту ввода
func (w *GameWorld) HandleInput(in systems.InputSystem) {
	if w.components.Input != nil {
		w.components.Input.HandleInput(w, in)
	}
}

// Update выполняет тик мира
func (w *GameWorld) Update(cs systems.CollisionSystem) {
	if w.components.Update != nil {
		w.components.Update.Update(w, cs)
	}
}

// Render рисует мир
func (w *GameWorld) Render(rs systems.RenderSystem) error {
	if w.components.Graphics == nil {
		return nil
	}
	return w.components.Graphics.Render(w, rs)
}
