package world

import (
	"fmt"

	"github.com/annel0/isogame/internal/vec"
	"github.com/annel0/isogame/internal/world/systems"
)

// InputComponent обрабатывает ввод для мира
type InputComponent interface {
	HandleInput(w *GameWorld, in systems.InputSystem)
}

// UpdateComponent обновляет состояние мира за тик
type UpdateComponent interface {
	Update(w *GameWorld, cs systems.CollisionSystem)
}

// GraphicsComponent рисует мир
type GraphicsComponent interface {
	Render(w *GameWorld, rs systems.RenderSystem) error
}

// Components - набор стратегий поведения мира
type Components struct {
	Input    InputComponent
	Update   UpdateComponent
	Graphics GraphicsComponent
}

// DefaultComponents возвращает стандартное поведение мира
func DefaultComponents() Components {
	return Components{
		Input:    CameraInput{},
		Update:   TilesUpdate{},
		Graphics: TilesGraphics{},
	}
}

// CameraInput двигает камеру стрелками/WASD и масштабирует колесом мыши
type CameraInput struct{}

// HandleInput применяет ввод к камере мира
func (CameraInput) HandleInput(w *GameWorld, in systems.InputSystem) {
	cam := w.Camera()

	var delta vec.Vec2Float
	if in.IsKeyDown(systems.KeyRight) || in.IsKeyDown(systems.KeyD) {
		delta.X += MoveSpeed
	}
	if in.IsKeyDown(systems.KeyLeft) || in.IsKeyDown(systems.KeyA) {
		delta.X -= MoveSpeed
	}
	if in.IsKeyDown(systems.KeyDown) || in.IsKeyDown(systems.KeyS) {
		delta.Y += MoveSpeed
	}
	if in.IsKeyDown(systems.KeyUp) || in.IsKeyDown(systems.KeyW) {
		delta.Y -= MoveSpeed
	}
	cam.Pan(delta)

	if wheel := in.MouseWheelMove(); wheel != 0 {
		cam.ZoomBy(wheel * ZoomSpeed)
	}
}

// TilesUpdate вызывает тик каждого тайла в построчном порядке
type TilesUpdate struct{}

// Update обновляет тайлы мира
func (TilesUpdate) Update(w *GameWorld, _ systems.CollisionSystem) {
	for _, tile := range w.Tiles() {
		tile.Update()
	}
}

// TilesGraphics рисует текстуры тайлов и рамки изменённых клеток
type TilesGraphics struct{}

// Render рисует все тайлы мира
func (TilesGraphics) Render(w *GameWorld, rs systems.RenderSystem) error {
	for i, tile := range w.Tiles() {
		tex, err := tile.Terrain().Texture()
		if err != nil {
			return fmt.Errorf("render tile %d: %w", i, err)
		}
		screen := rs.GridToScreen(tile.Pos)
		rs.DrawTexture(tex, screen, systems.White)

		if tile.Dirty {
			rs.DrawDiamondFrame(screen, systems.Yellow, 1)
			tile.Dirty = false
		}
	}
	return nil
}
