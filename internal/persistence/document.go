package persistence

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Поддерживаемая версия и объявление кодирования файла сохранения
const (
	SaveVersion        = 1
	EncodingOrder      = "row-major"
	EncodingValueType  = "u16"
	EncodingEndianness = "little"
	EncodingCodec      = "base64"
)

// SaveDocument - файл сохранения мира версии 1
type SaveDocument struct {
	SaveVersion int         `json:"saveVersion"`
	World       SaveWorld   `json:"world"`
	Camera      *SaveCamera `json:"camera,omitempty"`
}

// SaveWorld - секция world: размеры, таблицы типов и упакованные массивы
type SaveWorld struct {
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	Encoding         SaveEncoding   `json:"encoding"`
	TileTypes        map[string]int `json:"tileTypes"`
	DecorationTypes  map[string]int `json:"decorationTypes"`
	ResourceTypes    map[string]int `json:"resourceTypes"`
	Tiles            string         `json:"tiles"`
	Decorations      string         `json:"decorations"`
	Resources        string         `json:"resources"`
	ResourceVolumes  string         `json:"resourceVolumes"`
	DecorationStates string         `json:"decorationStates"`
}

// SaveEncoding - объявление формата упакованных массивов
type SaveEncoding struct {
	Order      string `json:"order"`
	ValueType  string `json:"valueType"`
	Endianness string `json:"endianness"`
	Codec      string `json:"codec"`
}

// SavePoint - 2D точка камеры
type SavePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SaveCamera - снимок камеры
type SaveCamera struct {
	Offset   SavePoint `json:"offset"`
	Target   SavePoint `json:"target"`
	Rotation float64   `json:"rotation"`
	Zoom     float64   `json:"zoom"`
}

// jsonObject - объект JSON с отложенным разбором полей.
// Позволяет отличать отсутствующее поле от поля неверного типа.
type jsonObject map[string]json.RawMessage

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (o jsonObject) object(name string) (jsonObject, error) {
	raw, ok := o[name]
	if !ok || isNull(raw) {
		return nil, newError(KindMalformed, "Missing or invalid object: %s", name)
	}
	var obj jsonObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, newError(KindMalformed, "Missing or invalid object: %s", name)
	}
	return obj, nil
}

// field разбирает обязательное поле в dst
func (o jsonObject) field(name string, dst interface{}) error {
	raw, ok := o[name]
	if !ok || isNull(raw) {
		return newError(KindMalformed, "Missing required field: %s", name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return wrapError(KindMalformed, err, "Invalid field type: %s", name)
	}
	return nil
}

func (o jsonObject) intField(name string) (int, error) {
	var v int
	err := o.field(name, &v)
	return v, err
}

func (o jsonObject) stringField(name string) (string, error) {
	var v string
	err := o.field(name, &v)
	return v, err
}

func (o jsonObject) floatField(name string) (float64, error) {
	var v float64
	err := o.field(name, &v)
	return v, err
}

func (o jsonObject) pointField(name string) (SavePoint, error) {
	obj, err := o.object(name)
	if err != nil {
		return SavePoint{}, err
	}
	x, err := obj.floatField("x")
	if err != nil {
		return SavePoint{}, err
	}
	y, err := obj.floatField("y")
	if err != nil {
		return SavePoint{}, err
	}
	return SavePoint{X: x, Y: y}, nil
}

// typeMap читает отображение имя→id; каждое значение обязано быть целым
func (o jsonObject) typeMap(name string) (map[string]int, error) {
	obj, err := o.object(name)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ids := make(map[string]int, len(obj))
	for _, key := range keys {
		var id int
		if isNull(obj[key]) || json.Unmarshal(obj[key], &id) != nil {
			return nil, newError(KindMalformed, "Invalid type id for '%s' in %s", key, name)
		}
		ids[key] = id
	}
	return ids, nil
}
