package persistence

import (
	"github.com/annel0/isogame/internal/util"
)

// Таблицы NoiseWorldGenerator. Id 0 в декорациях и ресурсах - "нет".
var (
	noiseTerrainNames    = []string{"Deep Water", "Swamp", "Plains", "Grassland", "ForestBg", "HillsBg", "MountainsBg"}
	noiseDecorationNames = []string{"", "Tree", "Rock", "Grass"}
	noiseResourceNames   = []string{"", "Iron", "Copper", "Clay", "Coil"}
)

const (
	noiseDecorationChance = 12 // из 100
	noiseResourceChance   = 6  // из 100
	noiseMinVolume        = 50
	noiseVolumeSpread     = 500
)

// NoiseWorldGenerator - генератор на шуме Перлина: океан по краю,
// рельеф по высоте шума, редкие декорации и ресурсы. Детерминирован по seed.
type NoiseWorldGenerator struct {
	width  int
	height int
	noise  *util.Noise

	meta    *WorldMeta
	metaErr error
	cursor  int
}

// NewNoiseWorldGenerator создаёт генератор; размеры проверяются при первом чтении
func NewNoiseWorldGenerator(width, height int, seed int64) *NoiseWorldGenerator {
	return &NoiseWorldGenerator{
		width:  width,
		height: height,
		noise:  util.NewNoise(seed),
	}
}

// ReadMeta возвращает метаданные мира
func (g *NoiseWorldGenerator) ReadMeta() (WorldMeta, error) {
	if err := g.ensureMeta(); err != nil {
		return WorldMeta{}, err
	}
	return *g.meta, nil
}

// BeginTileScan сбрасывает курсор на начало сетки
func (g *NoiseWorldGenerator) BeginTileScan() error {
	if err := g.ensureMeta(); err != nil {
		return err
	}
	g.cursor = 0
	return nil
}

// NextTile возвращает следующую клетку в построчном порядке
func (g *NoiseWorldGenerator) NextTile() (WorldTileData, bool, error) {
	if err := g.ensureMeta(); err != nil {
		return WorldTileData{}, false, err
	}
	if g.cursor >= g.meta.TileCount() {
		return WorldTileData{}, false, nil
	}

	x := g.cursor % g.width
	y := g.cursor / g.width
	g.cursor++

	return g.cell(x, y), true, nil
}

func (g *NoiseWorldGenerator) ensureMeta() error {
	if g.meta != nil || g.metaErr != nil {
		return g.metaErr
	}
	if err := checkDimensions(g.width, g.height); err != nil {
		g.metaErr = err
		return err
	}
	g.meta = &WorldMeta{
		Width:               g.width,
		Height:              g.height,
		TileTypeNamesByID:   append([]string(nil), noiseTerrainNames...),
		DecorationNamesByID: append([]string(nil), noiseDecorationNames...),
		ResourceNamesByID:   append([]string(nil), noiseResourceNames...),
	}
	return nil
}

func (g *NoiseWorldGenerator) cell(x, y int) WorldTileData {
	if nearEdge(x, y, g.width, g.height, oceanWidth) {
		return WorldTileData{TileTypeID: 0}
	}

	h := g.noise.At(float64(x)/16, float64(y)/16)
	terrain := terrainForHeight(h)
	tile := WorldTileData{TileTypeID: terrain}

	// Болота и горы остаются пустыми
	if terrain == 1 || terrain == uint16(len(noiseTerrainNames)-1) {
		return tile
	}

	hash := util.CellHash(g.noise.Seed(), x, y)
	if hash%100 < noiseDecorationChance {
		state := uint32((hash >> 32) & 0xff)
		tile.DecorationTypeID = uint16(1 + (hash>>8)%uint64(len(noiseDecorationNames)-1))
		tile.DecorationState = &state
	} else if (hash>>16)%100 < noiseResourceChance {
		volume := uint32(noiseMinVolume + (hash>>24)%noiseVolumeSpread)
		tile.ResourceTypeID = uint16(1 + (hash>>40)%uint64(len(noiseResourceNames)-1))
		tile.ResourceVolume = &volume
	}
	return tile
}

// terrainForHeight переводит высоту [0,1] в id рельефа (без воды)
func terrainForHeight(h float64) uint16 {
	switch {
	case h < 0.3:
		return 1 // Swamp
	case h < 0.45:
		return 2 // Plains
	case h < 0.6:
		return 3 // Grassland
	case h < 0.7:
		return 4 // ForestBg
	case h < 0.8:
		return 5 // HillsBg
	default:
		return 6 // MountainsBg
	}
}
