package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackedU16_RoundTrip(t *testing.T) {
	values := []uint16{0, 1, 2, 255, 256, 0x1234, 0xFFFF}

	out, err := DecodeU16LE(EncodeU16LE(values), len(values), "tiles")
	require.NoError(t, err)
	assert.Equal(t, values, out)

	// expected < 0 отключает проверку количества
	out, err = DecodeU16LE(EncodeU16LE(values), -1, "tiles")
	require.NoError(t, err)
	assert.Equal(t, values, out)
}

func TestPackedU16_LittleEndianLayout(t *testing.T) {
	raw, err := DecodeBase64(EncodeU16LE([]uint16{0x0201}))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, raw)
}

func TestPackedU16_CountMismatch(t *testing.T) {
	_, err := DecodeU16LE(EncodeU16LE(make([]uint16, 8)), 9, "tiles")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCountMismatch)
	assert.Contains(t, err.Error(), "tiles")
	assert.Contains(t, err.Error(), "expected 9, got 8")
}

func TestPackedU16_OddByteLength(t *testing.T) {
	_, err := DecodeU16LE(EncodeBase64([]byte{1, 2, 3}), 1, "decorations")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrByteLength)
	assert.Contains(t, err.Error(), "decorations")
}

func TestPackedU32_RoundTrip(t *testing.T) {
	values := []uint32{0, 7, 0xDEADBEEF, 1 << 31}

	out, err := DecodeU32LE(EncodeU32LE(values), "resourceVolumes")
	require.NoError(t, err)
	assert.Equal(t, values, out)

	out, err = DecodeU32LE("", "resourceVolumes")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPackedU32_ByteLengthNotMultipleOfFour(t *testing.T) {
	_, err := DecodeU32LE(EncodeBase64([]byte{1, 2, 3, 4, 5, 6}), "decorationStates")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrByteLength)
	assert.Contains(t, err.Error(), "decorationStates")
}

func TestPacked_PropagatesBase64Errors(t *testing.T) {
	_, err := DecodeU32LE("AA!A", "resourceVolumes")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCharacter)
	assert.Contains(t, err.Error(), "resourceVolumes")
}
