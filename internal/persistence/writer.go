package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/annel0/isogame/internal/encoding"
	"github.com/annel0/isogame/internal/world"
)

// NoneTypeName занимает id 0 в таблицах декораций и ресурсов при записи
const NoneTypeName = "None"

// EncodeSaveDocument упаковывает живой мир в документ сохранения версии 1.
// Id назначаются по алфавиту имён; в декорациях и ресурсах id 0 зарезервирован.
func EncodeSaveDocument(w *world.GameWorld) (*SaveDocument, error) {
	if w == nil {
		return nil, newError(KindMalformed, "Cannot encode a nil world")
	}
	if err := checkDimensions(w.Width, w.Height); err != nil {
		return nil, err
	}

	tiles := w.Tiles()
	if len(tiles) != w.Width*w.Height {
		return nil, newError(KindCount, "tiles count mismatch: expected %d, got %d", w.Width*w.Height, len(tiles))
	}

	terrainNames := make(map[string]struct{})
	decorationNames := make(map[string]struct{})
	resourceNames := make(map[string]struct{})
	for _, tile := range tiles {
		terrainNames[tile.Terrain().Name] = struct{}{}
		if tile.Decoration != nil {
			decorationNames[tile.Decoration.Name] = struct{}{}
		}
		if tile.Resource != nil {
			resourceNames[tile.Resource.Name] = struct{}{}
		}
	}

	if _, clash := decorationNames[NoneTypeName]; clash {
		return nil, newError(KindMalformed, "Decoration name '%s' is reserved", NoneTypeName)
	}
	if _, clash := resourceNames[NoneTypeName]; clash {
		return nil, newError(KindMalformed, "Resource name '%s' is reserved", NoneTypeName)
	}

	terrainIDs := assignIDs(terrainNames, 0)
	decorationIDs := assignIDs(decorationNames, 1)
	resourceIDs := assignIDs(resourceNames, 1)

	tileIDs := make([]uint16, len(tiles))
	decorationCol := make([]uint16, len(tiles))
	resourceCol := make([]uint16, len(tiles))
	var volumes, states []uint32

	for i, tile := range tiles {
		tileIDs[i] = uint16(terrainIDs[tile.Terrain().Name])
		if d := tile.Decoration; d != nil {
			decorationCol[i] = uint16(decorationIDs[d.Name])
			states = append(states, d.State)
		}
		if r := tile.Resource; r != nil {
			resourceCol[i] = uint16(resourceIDs[r.Name])
			volumes = append(volumes, r.Volume())
		}
	}

	decorationIDs[NoneTypeName] = 0
	resourceIDs[NoneTypeName] = 0

	cam := w.Camera()
	return &SaveDocument{
		SaveVersion: SaveVersion,
		World: SaveWorld{
			Width:  w.Width,
			Height: w.Height,
			Encoding: SaveEncoding{
				Order:      EncodingOrder,
				ValueType:  EncodingValueType,
				Endianness: EncodingEndianness,
				Codec:      EncodingCodec,
			},
			TileTypes:        terrainIDs,
			DecorationTypes:  decorationIDs,
			ResourceTypes:    resourceIDs,
			Tiles:            encoding.EncodeU16LE(tileIDs),
			Decorations:      encoding.EncodeU16LE(decorationCol),
			Resources:        encoding.EncodeU16LE(resourceCol),
			ResourceVolumes:  encoding.EncodeU32LE(volumes),
			DecorationStates: encoding.EncodeU32LE(states),
		},
		Camera: &SaveCamera{
			Offset:   SavePoint{X: cam.Offset.X, Y: cam.Offset.Y},
			Target:   SavePoint{X: cam.Target.X, Y: cam.Target.Y},
			Rotation: cam.Rotation,
			Zoom:     cam.Zoom,
		},
	}, nil
}

// MarshalWorld сериализует мир в JSON документа сохранения
func MarshalWorld(w *world.GameWorld) ([]byte, error) {
	doc, err := EncodeSaveDocument(w)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// WriteSaveFile записывает мир в файл, создавая каталог при необходимости.
// Запись идёт через временный файл, чтобы не оставить обрезанное сохранение.
func WriteSaveFile(path string, w *world.GameWorld) error {
	data, err := MarshalWorld(w)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return wrapError(KindIO, err, "Failed to create save directory: %s", dir)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return wrapError(KindIO, err, "Failed to write world save file: %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return wrapError(KindIO, err, "Failed to write world save file: %s", path)
	}
	return nil
}

// assignIDs нумерует имена по алфавиту начиная с first
func assignIDs(names map[string]struct{}, first int) map[string]int {
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	ids := make(map[string]int, len(sorted)+1)
	for i, name := range sorted {
		ids[name] = first + i
	}
	return ids
}
