package persistence

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSaveSchema(t *testing.T) {
	data, err := json.Marshal(sampleDocument())
	require.NoError(t, err)
	require.NoError(t, ValidateSaveSchema(data))

	written, err := MarshalWorld(noiseWorld(t))
	require.NoError(t, err)
	assert.NoError(t, ValidateSaveSchema(written))
}

func TestValidateSaveSchema_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *SaveDocument)
	}{
		{"version", func(doc *SaveDocument) { doc.SaveVersion = 3 }},
		{"width", func(doc *SaveDocument) { doc.World.Width = 0 }},
		{"codec", func(doc *SaveDocument) { doc.World.Encoding.Codec = "hex" }},
		{"negative id", func(doc *SaveDocument) { doc.World.TileTypes["Plains"] = -1 }},
		{"packed alphabet", func(doc *SaveDocument) { doc.World.Tiles = "not*base64" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument()
			tt.mutate(&doc)
			data, err := json.Marshal(doc)
			require.NoError(t, err)

			err = ValidateSaveSchema(data)
			require.Error(t, err)
			kind, _ := KindOf(err)
			assert.Equal(t, KindMalformed, kind)
		})
	}

	assert.Error(t, ValidateSaveSchema([]byte("[")))
}
