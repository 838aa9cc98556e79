package physics

import (
	"testing"

	"github.com/annel0/isogame/internal/vec"
	"github.com/annel0/isogame/internal/world/systems"
	"github.com/stretchr/testify/assert"
)

func TestRectCollision_Point(t *testing.T) {
	var c RectCollision
	r := systems.Rect{X: 10, Y: 20, Width: 64, Height: 32}

	assert.True(t, c.CheckCollisionPointRec(vec.Vec2Float{X: 10, Y: 20}, r))
	assert.True(t, c.CheckCollisionPointRec(vec.Vec2Float{X: 73.9, Y: 51.9}, r))
	assert.False(t, c.CheckCollisionPointRec(vec.Vec2Float{X: 74, Y: 30}, r))
	assert.False(t, c.CheckCollisionPointRec(vec.Vec2Float{X: 30, Y: 19.9}, r))
}

func TestRectCollision_Recs(t *testing.T) {
	var c RectCollision
	a := systems.Rect{X: 0, Y: 0, Width: 10, Height: 10}

	assert.True(t, c.CheckCollisionRecs(a, systems.Rect{X: 5, Y: 5, Width: 10, Height: 10}))
	assert.False(t, c.CheckCollisionRecs(a, systems.Rect{X: 10, Y: 0, Width: 5, Height: 5}), "касание")
	assert.False(t, c.CheckCollisionRecs(a, systems.Rect{X: 2, Y: 2}), "пустой прямоугольник")
}

func TestTileBounds(t *testing.T) {
	r := TileBounds(vec.Vec2Float{X: 100, Y: 50}, 64, 32)
	assert.Equal(t, systems.Rect{X: 68, Y: 34, Width: 64, Height: 32}, r)
}
