package persistence

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/save_v1.schema.json
var saveSchemaV1 string

var (
	saveSchemaOnce sync.Once
	saveSchema     *jsonschema.Schema
	saveSchemaErr  error
)

// SaveSchema возвращает JSON Schema файла сохранения версии 1
func SaveSchema() string {
	return saveSchemaV1
}

// ValidateSaveSchema проверяет структуру документа по JSON Schema.
// Это быстрая предварительная проверка для инструментов: ссылочную
// целостность и длины массивов проверяет только JSONFileStorage.
func ValidateSaveSchema(data []byte) error {
	saveSchemaOnce.Do(func() {
		saveSchema, saveSchemaErr = jsonschema.CompileString("save_v1.schema.json", saveSchemaV1)
	})
	if saveSchemaErr != nil {
		return saveSchemaErr
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return wrapError(KindMalformed, err, "Failed to parse world save JSON")
	}
	if err := saveSchema.Validate(doc); err != nil {
		return wrapError(KindMalformed, err, "World save does not match schema")
	}
	return nil
}
