package world

import (
	"errors"
	"testing"

	"github.com/annel0/isogame/internal/vec"
	"github.com/annel0/isogame/internal/world/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResources struct {
	next     systems.TextureHandle
	loaded   map[string]int
	unloaded int
	failOn   string
}

func (f *fakeResources) LoadTexture(path string, _ systems.Rect) (systems.TextureHandle, error) {
	if path == f.failOn {
		return 0, errors.New("file not found")
	}
	if f.loaded == nil {
		f.loaded = make(map[string]int)
	}
	f.loaded[path]++
	f.next++
	return f.next, nil
}

func (f *fakeResources) UnloadTexture(systems.TextureHandle) {
	f.unloaded++
}

func TestTilesManager_Defaults(t *testing.T) {
	m := NewDefaultTilesManager()

	names := m.TileTypeNames()
	assert.Len(t, names, 11)
	assert.Contains(t, names, "Deep Water")
	assert.IsIncreasing(t, names)

	water, ok := m.Terrain("Deep Water")
	require.True(t, ok)
	assert.True(t, water.IsWater)
	assert.Equal(t, 0.5, water.BaseMoveSpeed)
	assert.True(t, water.TextureRect.Empty())

	plains, ok := m.Terrain("Plains")
	require.True(t, ok)
	assert.Equal(t, 2.0, plains.BaseMoveSpeed)
	assert.Equal(t, systems.Rect{X: 1, Y: 50, Width: 96, Height: 48}, plains.TextureRect)

	assert.Equal(t, []string{"Grass", "Road", "Rock", "Tree", "Wall"}, m.DecorationNames())
	assert.Equal(t, []string{"Clay", "Coil", "Copper", "Iron"}, m.ResourceNames())
}

func TestTilesManager_NewTile(t *testing.T) {
	m := NewDefaultTilesManager()

	tile, err := m.NewTile("Grassland", vec.Vec2Float{X: 2.5, Y: 3.5})
	require.NoError(t, err)
	assert.Equal(t, "Grassland", tile.Terrain().Name)
	assert.Equal(t, vec.Vec2Float{X: 2.5, Y: 3.5}, tile.Pos)
	assert.Nil(t, tile.Decoration)
	assert.Nil(t, tile.Resource)
	assert.Equal(t, 1.5, tile.MovementSpeed())

	_, err = m.NewTile("Lava", vec.Vec2Float{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Lava")
}

func TestTilesManager_ResolveNames(t *testing.T) {
	m := NewDefaultTilesManager()

	d, err := m.DecorationTypeByName("Tree")
	require.NoError(t, err)
	assert.Equal(t, DecorationTree, d)

	r, err := m.ResourceTypeByName("Copper")
	require.NoError(t, err)
	assert.Equal(t, ResourceCopper, r)

	_, err = m.DecorationTypeByName("Fountain")
	assert.EqualError(t, err, "unknown decoration type name: Fountain")
	_, err = m.ResourceTypeByName("Gold")
	assert.EqualError(t, err, "unknown resource type name: Gold")
}

func TestTilesManager_Textures(t *testing.T) {
	m := NewDefaultTilesManager()
	plains, _ := m.Terrain("Plains")

	_, err := plains.Texture()
	require.Error(t, err, "текстура не загружена")

	rs := &fakeResources{}
	require.NoError(t, m.LoadTextures(rs))
	assert.Equal(t, 10, rs.loaded[terrainAtlas])
	assert.Equal(t, 1, rs.loaded[oceanTexture])

	tex, err := plains.Texture()
	require.NoError(t, err)
	assert.True(t, tex.Valid())

	m.UnloadTextures(rs)
	assert.Equal(t, 11, rs.unloaded)
	_, err = plains.Texture()
	assert.Error(t, err)
}

func TestTilesManager_TextureLoadFailure(t *testing.T) {
	m := NewDefaultTilesManager()
	err := m.LoadTextures(&fakeResources{failOn: oceanTexture})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Deep Water")
}

func TestResource_Volumes(t *testing.T) {
	r := NewResource(ResourceIron, "Iron", 120)
	assert.Equal(t, uint32(120), r.Volume())
	assert.Equal(t, uint32(120), r.InitialVolume())
	assert.Equal(t, "Iron", r.Type.String())

	d := NewDecoration(DecorationRock, "Rock", 3)
	assert.Equal(t, 1.0, d.MoveSpeed())
	assert.Equal(t, uint32(3), d.State)
}
