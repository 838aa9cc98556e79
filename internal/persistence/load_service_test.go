package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/annel0/isogame/internal/vec"
	"github.com/annel0/isogame/internal/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader отдаёт заранее заданные метаданные и записи
type fakeReader struct {
	meta    WorldMeta
	metaErr error
	tiles   []WorldTileData
	cursor  int

	metaCalls int
	nextCalls int
}

func (r *fakeReader) ReadMeta() (WorldMeta, error) {
	r.metaCalls++
	return r.meta, r.metaErr
}

func (r *fakeReader) BeginTileScan() error {
	r.cursor = 0
	return nil
}

func (r *fakeReader) NextTile() (WorldTileData, bool, error) {
	r.nextCalls++
	if r.cursor >= len(r.tiles) {
		return WorldTileData{}, false, nil
	}
	tile := r.tiles[r.cursor]
	r.cursor++
	return tile, true, nil
}

func u32(v uint32) *uint32 { return &v }

func fakeMeta(width, height int) WorldMeta {
	return WorldMeta{
		Width:               width,
		Height:              height,
		TileTypeNamesByID:   []string{"Deep Water", "Plains", "", "Grassland"},
		DecorationNamesByID: []string{"", "Tree", "", "Rock"},
		ResourceNamesByID:   []string{"", "Iron", "Copper"},
	}
}

func plainTiles(n int) []WorldTileData {
	tiles := make([]WorldTileData, n)
	for i := range tiles {
		tiles[i] = WorldTileData{TileTypeID: 1}
	}
	return tiles
}

func newLoader(r WorldDataReader) *WorldLoadService {
	return NewWorldLoadService(r, world.NewDefaultTilesManager(), BuildWorldWithTiles)
}

func TestWorldLoadService_BuildsTiles(t *testing.T) {
	r := &fakeReader{meta: fakeMeta(3, 2), tiles: []WorldTileData{
		{TileTypeID: 0},
		{TileTypeID: 1, DecorationTypeID: 1, DecorationState: u32(4)},
		{TileTypeID: 3, ResourceTypeID: 2, ResourceVolume: u32(300)},
		{TileTypeID: 3, DecorationTypeID: 3, DecorationState: u32(0), ResourceTypeID: 1, ResourceVolume: u32(55)},
		{TileTypeID: 1},
		{TileTypeID: 0},
	}}

	w, err := newLoader(r).BuildWorld(context.Background())
	require.NoError(t, err)
	require.Len(t, w.Tiles(), 6)
	assert.Equal(t, 1, r.metaCalls)

	for i, tile := range w.Tiles() {
		cell := vec.FromIndex(i, 3)
		assert.Equal(t, cell.Center(), tile.Pos, "тайл %d", i)
	}

	assert.Equal(t, "Deep Water", w.Tiles()[0].Terrain().Name)
	assert.Nil(t, w.Tiles()[0].Decoration)
	assert.Nil(t, w.Tiles()[0].Resource)

	tree := w.Tiles()[1].Decoration
	require.NotNil(t, tree)
	assert.Equal(t, world.DecorationTree, tree.Type)
	assert.Equal(t, "Tree", tree.Name)
	assert.Equal(t, uint32(4), tree.State)

	copper := w.Tiles()[2].Resource
	require.NotNil(t, copper)
	assert.Equal(t, world.ResourceCopper, copper.Type)
	assert.Equal(t, uint32(300), copper.Volume())
	assert.Equal(t, uint32(300), copper.InitialVolume())

	both, err := w.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "Grassland", both.Terrain().Name)
	assert.Equal(t, world.DecorationRock, both.Decoration.Type)
	assert.Equal(t, world.ResourceIron, both.Resource.Type)
	assert.Equal(t, uint32(55), both.Resource.Volume())
}

func TestWorldLoadService_UnexpectedEndOfStream(t *testing.T) {
	r := &fakeReader{meta: fakeMeta(4, 3), tiles: plainTiles(11)}

	w, err := newLoader(r).BuildWorld(context.Background())
	assert.Nil(t, w)
	require.Error(t, err)
	assert.EqualError(t, err, "Unexpected end of tile stream at x: 3, y: 2")
	kind, _ := KindOf(err)
	assert.Equal(t, KindStream, kind)
}

func TestWorldLoadService_ExtraTileData(t *testing.T) {
	r := &fakeReader{meta: fakeMeta(4, 3), tiles: plainTiles(13)}

	w, err := newLoader(r).BuildWorld(context.Background())
	assert.Nil(t, w)
	require.Error(t, err)
	assert.EqualError(t, err, "Extra tile data after expected tile count: 12")
	assert.Equal(t, 13, r.nextCalls, "после построения читается ровно одна лишняя запись")
}

func TestWorldLoadService_Camera(t *testing.T) {
	meta := fakeMeta(2, 2)
	meta.Camera = &CameraState{
		Offset:   vec.Vec2Float{X: 1, Y: 2},
		Target:   vec.Vec2Float{X: 3, Y: 4},
		Rotation: 45,
		Zoom:     2.0,
	}

	w, err := newLoader(&fakeReader{meta: meta, tiles: plainTiles(4)}).BuildWorld(context.Background())
	require.NoError(t, err)

	cam := w.Camera()
	assert.Equal(t, vec.Vec2Float{X: 1, Y: 2}, cam.Offset)
	assert.Equal(t, vec.Vec2Float{X: 3, Y: 4}, cam.Target)
	assert.Equal(t, 45.0, cam.Rotation)
	assert.Equal(t, 2.0, cam.Zoom)
}

func TestWorldLoadService_CameraKeepsBuilderDefault(t *testing.T) {
	builder := func(width, height int, provider world.TileProvider) (*world.GameWorld, error) {
		w, err := BuildWorldWithTiles(width, height, provider)
		if err != nil {
			return nil, err
		}
		w.Camera().Zoom = 1.5
		w.Camera().Target = vec.Vec2Float{X: 7, Y: 8}
		return w, nil
	}
	r := &fakeReader{meta: fakeMeta(2, 2), tiles: plainTiles(4)}

	w, err := NewWorldLoadService(r, world.NewDefaultTilesManager(), builder).BuildWorld(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.5, w.Camera().Zoom)
	assert.Equal(t, vec.Vec2Float{X: 7, Y: 8}, w.Camera().Target)
}

func TestWorldLoadService_TileFailures(t *testing.T) {
	tests := []struct {
		name string
		tile WorldTileData
		want string
		kind ErrorKind
	}{
		{"tile id out of range", WorldTileData{TileTypeID: 9}, "Unknown tileTypeId=9 at x: 1, y: 0", KindReference},
		{"empty tile slot", WorldTileData{TileTypeID: 2}, "Missing tile type name for tileTypeId=2 at x: 1, y: 0", KindReference},
		{"decoration out of range", WorldTileData{TileTypeID: 1, DecorationTypeID: 4, DecorationState: u32(0)},
			"Unknown decorationTypeId=4 at x: 1, y: 0", KindReference},
		{"empty decoration slot", WorldTileData{TileTypeID: 1, DecorationTypeID: 2, DecorationState: u32(0)},
			"Missing decoration type name for decorationTypeId=2 at x: 1, y: 0", KindReference},
		{"decoration without state", WorldTileData{TileTypeID: 1, DecorationTypeID: 1},
			"Missing decoration state at x: 1, y: 0", KindMissingField},
		{"resource out of range", WorldTileData{TileTypeID: 1, ResourceTypeID: 3, ResourceVolume: u32(1)},
			"Unknown resourceTypeId=3 at x: 1, y: 0", KindReference},
		{"resource without volume", WorldTileData{TileTypeID: 1, ResourceTypeID: 1},
			"Missing resource volume at x: 1, y: 0", KindMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeReader{meta: fakeMeta(2, 2), tiles: []WorldTileData{{TileTypeID: 0}, tt.tile, {}, {}}}

			w, err := newLoader(r).BuildWorld(context.Background())
			assert.Nil(t, w)
			require.Error(t, err)
			assert.EqualError(t, err, tt.want)
			kind, _ := KindOf(err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, 2, r.nextCalls, "построение останавливается на первой ошибке")
		})
	}
}

func TestWorldLoadService_UnresolvedNames(t *testing.T) {
	meta := fakeMeta(1, 1)
	meta.TileTypeNamesByID = []string{"Lava"}

	r := &fakeReader{meta: meta, tiles: []WorldTileData{{TileTypeID: 0}}}
	w, err := newLoader(r).BuildWorld(context.Background())
	assert.Nil(t, w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to create tile at x: 0, y: 0")
	assert.Contains(t, err.Error(), "Lava")
	assert.Equal(t, 1, r.nextCalls)

	meta = fakeMeta(1, 1)
	meta.DecorationNamesByID = []string{"", "Fountain"}
	r = &fakeReader{meta: meta, tiles: []WorldTileData{{TileTypeID: 1, DecorationTypeID: 1, DecorationState: u32(0)}}}
	_, err = newLoader(r).BuildWorld(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown decoration type name: Fountain")
}

func TestWorldLoadService_MetadataFailures(t *testing.T) {
	boom := errors.New("disk on fire")
	r := &fakeReader{metaErr: boom}
	_, err := newLoader(r).BuildWorld(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, r.nextCalls)

	r = &fakeReader{meta: fakeMeta(0, 3)}
	_, err = newLoader(r).BuildWorld(context.Background())
	assert.EqualError(t, err, "World dimensions must be positive")
	assert.Zero(t, r.nextCalls, "тайлы не читаются до проверки метаданных")
}

func TestWorldLoadService_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewLoadMetrics(reg)
	require.NoError(t, err)

	ok := &fakeReader{meta: fakeMeta(2, 3), tiles: plainTiles(6)}
	_, err = newLoader(ok).WithMetrics(metrics).BuildWorld(context.Background())
	require.NoError(t, err)

	short := &fakeReader{meta: fakeMeta(2, 3), tiles: plainTiles(2)}
	_, err = newLoader(short).WithMetrics(metrics).BuildWorld(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.builds))
	assert.Equal(t, 6.0, testutil.ToFloat64(metrics.tiles))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.failures.WithLabelValues("stream")))

	_, err = NewLoadMetrics(reg)
	assert.Error(t, err, "повторная регистрация в том же реестре запрещена")
}
