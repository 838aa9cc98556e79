package physics

import (
	"github.com/annel0/isogame/internal/vec"
	"github.com/annel0/isogame/internal/world/systems"
)

// RectCollision реализует systems.CollisionSystem для осевых прямоугольников
// в экранных координатах. Границы: левая и верхняя включены, правая и нижняя нет.
type RectCollision struct{}

var _ systems.CollisionSystem = RectCollision{}

// CheckCollisionPointRec проверяет, находится ли точка внутри прямоугольника
func (RectCollision) CheckCollisionPointRec(point vec.Vec2Float, rect systems.Rect) bool {
	return point.X >= rect.X &&
		point.X < rect.X+rect.Width &&
		point.Y >= rect.Y &&
		point.Y < rect.Y+rect.Height
}

// CheckCollisionRecs проверяет пересечение двух прямоугольников.
// Касание по границе пересечением не считается.
func (RectCollision) CheckCollisionRecs(a, b systems.Rect) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	return a.X < b.X+b.Width &&
		a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height &&
		a.Y+a.Height > b.Y
}

// TileBounds возвращает прямоугольник ромба тайла с центром center
func TileBounds(center vec.Vec2Float, tileWidth, tileHeight float64) systems.Rect {
	return systems.Rect{
		X:      center.X - tileWidth/2,
		Y:      center.Y - tileHeight/2,
		Width:  tileWidth,
		Height: tileHeight,
	}
}
