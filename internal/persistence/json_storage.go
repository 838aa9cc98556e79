package persistence

import (
	"encoding/json"
	"os"

	"github.com/annel0/isogame/internal/encoding"
	"github.com/annel0/isogame/internal/logging"
	"github.com/annel0/isogame/internal/vec"
)

// JSONFileStorage читает мир из файла сохранения версии 1.
// Документ разбирается и проверяется целиком при первом обращении,
// результат (или ошибка) кэшируется до конца жизни экземпляра.
type JSONFileStorage struct {
	name string
	path string
	data []byte

	loaded  bool
	loadErr error

	meta             WorldMeta
	tiles            []uint16
	decorations      []uint16
	resources        []uint16
	resourceVolumes  []uint32
	decorationStates []uint32

	tileIndex   int
	volumeIndex int
	stateIndex  int
}

// NewJSONFileStorage создаёт читатель файла сохранения по пути
func NewJSONFileStorage(path string) *JSONFileStorage {
	return &JSONFileStorage{name: path, path: path}
}

// NewJSONStorageFromBytes создаёт читатель документа, уже находящегося в памяти.
// name используется только в логах и сообщениях.
func NewJSONStorageFromBytes(name string, data []byte) *JSONFileStorage {
	return &JSONFileStorage{name: name, data: data}
}

// ReadMeta возвращает метаданные мира
func (s *JSONFileStorage) ReadMeta() (WorldMeta, error) {
	if err := s.ensureLoaded(); err != nil {
		return WorldMeta{}, err
	}
	return s.meta, nil
}

// BeginTileScan сбрасывает все курсоры на начало
func (s *JSONFileStorage) BeginTileScan() error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.tileIndex = 0
	s.volumeIndex = 0
	s.stateIndex = 0
	return nil
}

// NextTile возвращает следующую клетку. Курсоры упакованных массивов
// сдвигаются только для клеток с ненулевым id, как при упаковке.
func (s *JSONFileStorage) NextTile() (WorldTileData, bool, error) {
	if err := s.ensureLoaded(); err != nil {
		return WorldTileData{}, false, err
	}
	if s.tileIndex >= len(s.tiles) {
		return WorldTileData{}, false, nil
	}

	i := s.tileIndex
	tile := WorldTileData{
		TileTypeID:       s.tiles[i],
		DecorationTypeID: s.decorations[i],
		ResourceTypeID:   s.resources[i],
	}

	if tile.ResourceTypeID != 0 && s.volumeIndex < len(s.resourceVolumes) {
		volume := s.resourceVolumes[s.volumeIndex]
		tile.ResourceVolume = &volume
		s.volumeIndex++
	}
	if tile.DecorationTypeID != 0 && s.stateIndex < len(s.decorationStates) {
		state := s.decorationStates[s.stateIndex]
		tile.DecorationState = &state
		s.stateIndex++
	}

	s.tileIndex++
	return tile, true, nil
}

func (s *JSONFileStorage) ensureLoaded() error {
	if s.loaded {
		return s.loadErr
	}
	s.loaded = true

	logger := logging.GetPersistenceLogger()

	data := s.data
	if s.path != "" {
		raw, err := os.ReadFile(s.path)
		if err != nil {
			s.loadErr = wrapError(KindIO, err, "Failed to open world save file: %s", s.path)
			logger.Error("❌ %v", s.loadErr)
			return s.loadErr
		}
		data = raw
	}

	if err := s.parse(data); err != nil {
		s.loadErr = err
		s.tiles, s.decorations, s.resources = nil, nil, nil
		s.resourceVolumes, s.decorationStates = nil, nil
		logger.Error("❌ Сохранение %s отклонено: %v", s.name, err)
		return err
	}
	// Байты документа больше не нужны
	s.data = nil

	logger.Debug("📂 Сохранение %s: %dx%d, типов рельефа %d, декораций %d, ресурсов %d",
		s.name, s.meta.Width, s.meta.Height, len(s.meta.TileTypeNamesByID),
		len(s.meta.DecorationNamesByID), len(s.meta.ResourceNamesByID))
	return nil
}

func (s *JSONFileStorage) parse(data []byte) error {
	var root jsonObject
	if err := json.Unmarshal(data, &root); err != nil {
		return wrapError(KindMalformed, err, "Failed to parse world save JSON")
	}

	version, err := root.intField("saveVersion")
	if err != nil {
		return err
	}
	if version != SaveVersion {
		return newError(KindMalformed, "Unsupported saveVersion: %d", version)
	}

	world, err := root.object("world")
	if err != nil {
		return err
	}
	if s.meta.Width, err = world.intField("width"); err != nil {
		return err
	}
	if s.meta.Height, err = world.intField("height"); err != nil {
		return err
	}
	if err := checkDimensions(s.meta.Width, s.meta.Height); err != nil {
		return err
	}

	if err := checkEncoding(world); err != nil {
		return err
	}

	tables := []struct {
		field string
		dst   *[]string
	}{
		{"tileTypes", &s.meta.TileTypeNamesByID},
		{"decorationTypes", &s.meta.DecorationNamesByID},
		{"resourceTypes", &s.meta.ResourceNamesByID},
	}
	for _, t := range tables {
		ids, err := world.typeMap(t.field)
		if err != nil {
			return err
		}
		if *t.dst, err = BuildNamesByID(ids, t.field); err != nil {
			return err
		}
	}

	if raw, ok := root["camera"]; ok && !isNull(raw) {
		camera, err := parseCamera(root)
		if err != nil {
			return err
		}
		s.meta.Camera = camera
	}

	if err := s.decodeArrays(world); err != nil {
		return err
	}
	return s.crossValidate()
}

func checkEncoding(world jsonObject) error {
	enc, err := world.object("encoding")
	if err != nil {
		return err
	}

	expected := []struct{ field, value string }{
		{"order", EncodingOrder},
		{"valueType", EncodingValueType},
		{"endianness", EncodingEndianness},
		{"codec", EncodingCodec},
	}
	for _, e := range expected {
		got, err := enc.stringField(e.field)
		if err != nil {
			return err
		}
		if got != e.value {
			return newError(KindEncoding, "Unsupported encoding.%s: %s", e.field, got)
		}
	}
	return nil
}

func parseCamera(root jsonObject) (*CameraState, error) {
	cam, err := root.object("camera")
	if err != nil {
		return nil, err
	}
	offset, err := cam.pointField("offset")
	if err != nil {
		return nil, err
	}
	target, err := cam.pointField("target")
	if err != nil {
		return nil, err
	}
	rotation, err := cam.floatField("rotation")
	if err != nil {
		return nil, err
	}
	zoom, err := cam.floatField("zoom")
	if err != nil {
		return nil, err
	}
	return &CameraState{
		Offset:   vec.Vec2Float{X: offset.X, Y: offset.Y},
		Target:   vec.Vec2Float{X: target.X, Y: target.Y},
		Rotation: rotation,
		Zoom:     zoom,
	}, nil
}

func (s *JSONFileStorage) decodeArrays(world jsonObject) error {
	count := s.meta.TileCount()

	u16 := []struct {
		field string
		dst   *[]uint16
	}{
		{"tiles", &s.tiles},
		{"decorations", &s.decorations},
		{"resources", &s.resources},
	}
	for _, a := range u16 {
		text, err := world.stringField(a.field)
		if err != nil {
			return err
		}
		if *a.dst, err = encoding.DecodeU16LE(text, count, a.field); err != nil {
			return fromDecode(err)
		}
	}

	u32 := []struct {
		field string
		dst   *[]uint32
	}{
		{"resourceVolumes", &s.resourceVolumes},
		{"decorationStates", &s.decorationStates},
	}
	for _, a := range u32 {
		text, err := world.stringField(a.field)
		if err != nil {
			return err
		}
		if *a.dst, err = encoding.DecodeU32LE(text, a.field); err != nil {
			return fromDecode(err)
		}
	}
	return nil
}

// crossValidate проверяет ссылочную целостность и длины упакованных массивов
func (s *JSONFileStorage) crossValidate() error {
	count := s.meta.TileCount()
	if len(s.tiles) != count {
		return newError(KindCount, "tiles count mismatch: expected %d, got %d", count, len(s.tiles))
	}
	if len(s.decorations) != count {
		return newError(KindCount, "decorations count mismatch: expected %d, got %d", count, len(s.decorations))
	}
	if len(s.resources) != count {
		return newError(KindCount, "resources count mismatch: expected %d, got %d", count, len(s.resources))
	}

	var nonZeroDecorations, nonZeroResources int
	for i := 0; i < count; i++ {
		x, y := i%s.meta.Width, i/s.meta.Width
		if _, ok := lookupName(s.meta.TileTypeNamesByID, s.tiles[i]); !ok {
			return newError(KindReference, "Unknown tileTypeId=%d at tile index %d (x: %d, y: %d)",
				s.tiles[i], i, x, y)
		}
		if id := s.decorations[i]; id != 0 {
			if _, ok := lookupName(s.meta.DecorationNamesByID, id); !ok {
				return newError(KindReference, "Unknown decorationTypeId=%d at tile index %d (x: %d, y: %d)",
					id, i, x, y)
			}
			nonZeroDecorations++
		}
		if id := s.resources[i]; id != 0 {
			if _, ok := lookupName(s.meta.ResourceNamesByID, id); !ok {
				return newError(KindReference, "Unknown resourceTypeId=%d at tile index %d (x: %d, y: %d)",
					id, i, x, y)
			}
			nonZeroResources++
		}
	}

	if len(s.resourceVolumes) != nonZeroResources {
		return newError(KindCount, "resourceVolumes count mismatch: expected %d, got %d",
			nonZeroResources, len(s.resourceVolumes))
	}
	if len(s.decorationStates) != nonZeroDecorations {
		return newError(KindCount, "decorationStates count mismatch: expected %d, got %d",
			nonZeroDecorations, len(s.decorationStates))
	}
	return nil
}
