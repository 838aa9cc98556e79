// Package systems описывает возможности внешнего слоя рендера и ввода,
// которые использует модель мира. Реализация (окно, опрос устройств,
// растеризация текстур) живет вне этого модуля.
package systems

import "github.com/annel0/isogame/internal/vec"

// TextureHandle - идентификатор загруженной текстуры; 0 означает "нет текстуры"
type TextureHandle uint32

// Valid сообщает, ссылается ли дескриптор на загруженную текстуру
func (h TextureHandle) Valid() bool {
	return h != 0
}

// Rect - прямоугольник в координатах изображения или экрана
type Rect struct {
	X, Y, Width, Height float64
}

// Empty сообщает, что у прямоугольника нулевая площадь
func (r Rect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Color - цвет RGBA
type Color struct {
	R, G, B, A uint8
}

var (
	White  = Color{R: 255, G: 255, B: 255, A: 255}
	Yellow = Color{R: 253, G: 249, B: 0, A: 255}
)

// Key - код клавиши
type Key int

const (
	KeyRight Key = 262
	KeyLeft  Key = 263
	KeyDown  Key = 264
	KeyUp    Key = 265
	KeyA     Key = 65
	KeyD     Key = 68
	KeyS     Key = 83
	KeyW     Key = 87
)

// InputSystem - опрос клавиатуры и мыши
type InputSystem interface {
	MousePosition() vec.Vec2Float
	IsKeyPressed(key Key) bool
	IsKeyDown(key Key) bool
	IsMouseButtonPressed(button int) bool
	MouseWheelMove() float64
}

// CollisionSystem - проверки пересечений в экранных координатах
type CollisionSystem interface {
	CheckCollisionPointRec(point vec.Vec2Float, rect Rect) bool
	CheckCollisionRecs(a, b Rect) bool
}

// RenderSystem - отрисовка и изометрическое преобразование координат
type RenderSystem interface {
	GridToScreen(pos vec.Vec2Float) vec.Vec2Float
	DrawTexture(texture TextureHandle, pos vec.Vec2Float, tint Color)
	DrawDiamondFrame(center vec.Vec2Float, color Color, thickness float64)
}

// ResourcesSystem - загрузка и выгрузка текстур
type ResourcesSystem interface {
	LoadTexture(path string, src Rect) (TextureHandle, error)
	UnloadTexture(texture TextureHandle)
}
