package encoding

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for n := 0; n <= 64; n++ {
		data := make([]byte, n)
		rng.Read(data)

		out, err := DecodeBase64(EncodeBase64(data))
		require.NoError(t, err, "длина %d", n)
		assert.Equal(t, data, out, "длина %d", n)
	}
}

func TestDecodeBase64_Empty(t *testing.T) {
	out, err := DecodeBase64("")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecodeBase64_SkipsWhitespace(t *testing.T) {
	data := []byte("isometric tiles, row-major")
	encoded := EncodeBase64(data)

	var sb strings.Builder
	for i, c := range encoded {
		sb.WriteRune(c)
		switch i % 4 {
		case 0:
			sb.WriteString("\n")
		case 1:
			sb.WriteString(" \t")
		case 2:
			sb.WriteString("\r\n")
		}
	}

	plain, err := DecodeBase64(encoded)
	require.NoError(t, err)
	spaced, err := DecodeBase64(sb.String())
	require.NoError(t, err)

	assert.Equal(t, plain, spaced)
	assert.Equal(t, data, spaced)
}

func TestDecodeBase64_DanglingBitsAreDropped(t *testing.T) {
	// один символ даёт 6 бит, полного байта нет
	out, err := DecodeBase64("A")
	require.NoError(t, err)
	assert.Empty(t, out)

	// "QUJD" + "R" -> "ABC", хвостовые 6 бит отбрасываются
	out, err = DecodeBase64("QUJDR")
	require.NoError(t, err)
	assert.Equal(t, []byte("ABC"), out)
}

func TestDecodeBase64_Padding(t *testing.T) {
	out, err := DecodeBase64("QQ==")
	require.NoError(t, err)
	assert.Equal(t, []byte("A"), out)

	out, err = DecodeBase64("QUI=")
	require.NoError(t, err)
	assert.Equal(t, []byte("AB"), out)
}

func TestDecodeBase64_InvalidPadding(t *testing.T) {
	_, err := DecodeBase64("====")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPadding)
	assert.NotErrorIs(t, err, ErrInvalidCharacter)
}

func TestDecodeBase64_InvalidCharacter(t *testing.T) {
	for _, input := range []string{"QU$D", "QUJD-", "QUJD_", "QU\x00D"} {
		_, err := DecodeBase64(input)
		require.Error(t, err, "%q", input)
		assert.ErrorIs(t, err, ErrInvalidCharacter, "%q", input)
	}
}
