package world

import (
	"errors"
	"testing"

	"github.com/annel0/isogame/internal/vec"
	"github.com/annel0/isogame/internal/world/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridProvider(m *TilesManager, calls *[]vec.Vec2) TileProvider {
	return func(x, y int) (*Tile, error) {
		*calls = append(*calls, vec.Vec2{X: x, Y: y})
		return m.NewTile("Plains", vec.Vec2{X: x, Y: y}.Center())
	}
}

func TestGameWorld_BuildsRowMajor(t *testing.T) {
	m := NewDefaultTilesManager()
	var calls []vec.Vec2

	w, err := NewGameWorld(4, 3, DefaultComponents(), gridProvider(m, &calls))
	require.NoError(t, err)

	require.Len(t, calls, 12)
	for i, c := range calls {
		assert.Equal(t, vec.FromIndex(i, 4), c, "вызов %d", i)
	}

	tile, err := w.At(3, 2)
	require.NoError(t, err)
	assert.Equal(t, vec.Vec2Float{X: 3.5, Y: 2.5}, tile.Pos)

	same, err := w.TileAt(vec.Vec2Float{X: 3.9, Y: 2.1})
	require.NoError(t, err)
	assert.Same(t, tile, same)

	_, err = w.At(4, 0)
	assert.Error(t, err)
	_, err = w.TileAt(vec.Vec2Float{X: -0.5, Y: 0})
	assert.Error(t, err)
}

func TestGameWorld_DefaultCamera(t *testing.T) {
	m := NewDefaultTilesManager()
	var calls []vec.Vec2
	w, err := NewGameWorld(1, 1, DefaultComponents(), gridProvider(m, &calls))
	require.NoError(t, err)

	cam := w.Camera()
	assert.Equal(t, vec.Vec2Float{}, cam.Offset)
	assert.Equal(t, vec.Vec2Float{}, cam.Target)
	assert.Equal(t, 0.0, cam.Rotation)
	assert.Equal(t, 1.0, cam.Zoom)
}

func TestGameWorld_ProviderErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	w, err := NewGameWorld(3, 3, Components{}, func(x, y int) (*Tile, error) {
		calls++
		if x == 1 && y == 1 {
			return nil, boom
		}
		return NewDefaultTilesManager().NewTile("Plains", vec.Vec2Float{})
	})

	assert.Nil(t, w)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 5, calls, "построение прерывается на первой ошибке")
}

func TestGameWorld_RejectsBadInput(t *testing.T) {
	_, err := NewGameWorld(0, 5, Components{}, func(int, int) (*Tile, error) { return nil, nil })
	assert.Error(t, err)

	_, err = NewGameWorld(2, 2, Components{}, nil)
	assert.Error(t, err)

	_, err = NewGameWorld(2, 2, Components{}, func(int, int) (*Tile, error) { return nil, nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x: 0, y: 0")
}

type fakeInput struct {
	down  map[systems.Key]bool
	wheel float64
}

func (f fakeInput) MousePosition() vec.Vec2Float     { return vec.Vec2Float{} }
func (f fakeInput) IsKeyPressed(key systems.Key) bool { return f.down[key] }
func (f fakeInput) IsKeyDown(key systems.Key) bool    { return f.down[key] }
func (f fakeInput) IsMouseButtonPressed(int) bool     { return false }
func (f fakeInput) MouseWheelMove() float64           { return f.wheel }

func TestCameraInput_PanAndZoom(t *testing.T) {
	m := NewDefaultTilesManager()
	var calls []vec.Vec2
	w, err := NewGameWorld(1, 1, DefaultComponents(), gridProvider(m, &calls))
	require.NoError(t, err)

	w.HandleInput(fakeInput{down: map[systems.Key]bool{systems.KeyD: true, systems.KeyUp: true}, wheel: 50})

	cam := w.Camera()
	assert.Equal(t, vec.Vec2Float{X: MoveSpeed, Y: -MoveSpeed}, cam.Target)
	assert.Equal(t, ZoomMax, cam.Zoom, "масштаб ограничен сверху")

	w.HandleInput(fakeInput{wheel: -100})
	assert.Equal(t, ZoomMin, cam.Zoom, "масштаб ограничен снизу")
}

type fakeRender struct {
	textures []systems.TextureHandle
	frames   int
}

func (f *fakeRender) GridToScreen(pos vec.Vec2Float) vec.Vec2Float {
	return vec.Vec2Float{X: (pos.X - pos.Y) * 32, Y: (pos.X + pos.Y) * 16}
}
func (f *fakeRender) DrawTexture(tex systems.TextureHandle, _ vec.Vec2Float, _ systems.Color) {
	f.textures = append(f.textures, tex)
}
func (f *fakeRender) DrawDiamondFrame(vec.Vec2Float, systems.Color, float64) { f.frames++ }

func TestTilesGraphics_Render(t *testing.T) {
	m := NewDefaultTilesManager()
	var calls []vec.Vec2
	w, err := NewGameWorld(2, 2, DefaultComponents(), gridProvider(m, &calls))
	require.NoError(t, err)

	rs := &fakeRender{}
	require.Error(t, w.Render(rs), "без загруженных текстур рендер невозможен")

	require.NoError(t, m.LoadTextures(&fakeResources{}))
	w.Tiles()[1].Dirty = true

	rs = &fakeRender{}
	require.NoError(t, w.Render(rs))
	assert.Len(t, rs.textures, 4)
	assert.Equal(t, 1, rs.frames)
	assert.False(t, w.Tiles()[1].Dirty, "рамка рисуется один раз")

	w.Update(nil)
}
