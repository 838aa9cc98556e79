package persistence

const (
	oceanWidth  = 3
	plainsWidth = 10
)

const (
	simpleDeepWater uint16 = iota
	simplePlains
	simpleGrassland
)

// SimpleWorldGenerator - детерминированный генератор концентрических колец:
// океан по краю, кольцо равнин, луга внутри. Декораций и ресурсов нет.
type SimpleWorldGenerator struct {
	width  int
	height int

	meta    *WorldMeta
	metaErr error
	cursor  int
}

// NewSimpleWorldGenerator создаёт генератор; размеры проверяются при первом чтении
func NewSimpleWorldGenerator(width, height int) *SimpleWorldGenerator {
	return &SimpleWorldGenerator{width: width, height: height}
}

// ReadMeta возвращает метаданные мира
func (g *SimpleWorldGenerator) ReadMeta() (WorldMeta, error) {
	if err := g.ensureMeta(); err != nil {
		return WorldMeta{}, err
	}
	return *g.meta, nil
}

// BeginTileScan сбрасывает курсор на начало сетки
func (g *SimpleWorldGenerator) BeginTileScan() error {
	if err := g.ensureMeta(); err != nil {
		return err
	}
	g.cursor = 0
	return nil
}

// NextTile возвращает следующую клетку в построчном порядке
func (g *SimpleWorldGenerator) NextTile() (WorldTileData, bool, error) {
	if err := g.ensureMeta(); err != nil {
		return WorldTileData{}, false, err
	}
	if g.cursor >= g.meta.TileCount() {
		return WorldTileData{}, false, nil
	}

	x := g.cursor % g.width
	y := g.cursor / g.width
	g.cursor++

	return WorldTileData{TileTypeID: g.classify(x, y)}, true, nil
}

func (g *SimpleWorldGenerator) ensureMeta() error {
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
		TileTypeNamesByID:   []string{"Deep Water", "Plains", "Grassland"},
		DecorationNamesByID: []string{""},
		ResourceNamesByID:   []string{""},
	}
	return nil
}

func (g *SimpleWorldGenerator) classify(x, y int) uint16 {
	switch {
	case nearEdge(x, y, g.width, g.height, oceanWidth):
		return simpleDeepWater
	case nearEdge(x, y, g.width, g.height, plainsWidth):
		return simplePlains
	default:
		return simpleGrassland
	}
}

// nearEdge сообщает, лежит ли клетка в полосе шириной band у любого края
func nearEdge(x, y, width, height, band int) bool {
	return x < band || y < band || x > width-band-1 || y > height-band-1
}
