package world

import (
	"github.com/annel0/isogame/internal/vec"
)

const (
	ZoomSpeed = 0.1
	MoveSpeed = 3.0
	ZoomMin   = 0.5
	ZoomMax   = 3.0
)

// Camera - состояние 2D-камеры мира
type Camera struct {
	Offset   vec.Vec2Float // Смещение относительно цели
	Target   vec.Vec2Float // Точка поворота и масштабирования
	Rotation float64       // Поворот в градусах
	Zoom     float64       // Масштаб, 1.0 по умолчанию
}

// NewCamera создаёт камеру с настройками по умолчанию
func NewCamera() *Camera {
	return &Camera{Zoom: 1.0}
}

// Pan сдвигает цель камеры
func (c *Camera) Pan(delta vec.Vec2Float) {
	c.Target = c.Target.Add(delta)
}

// ZoomBy меняет масштаб с ограничением [ZoomMin, ZoomMax]
func (c *Camera) ZoomBy(delta float64) {
	c.Zoom = clamp(c.Zoom+delta, ZoomMin, ZoomMax)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
