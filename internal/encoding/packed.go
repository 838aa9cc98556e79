package encoding

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrByteLength возвращается, когда длина декодированных байт не кратна ширине элемента
	ErrByteLength = errors.New("invalid byte length")
	// ErrCountMismatch возвращается, когда число элементов не совпадает с ожидаемым
	ErrCountMismatch = errors.New("count mismatch")
)

const (
	u16Size = 2
	u32Size = 4
)

// DecodeU16LE декодирует base64(u16[] little-endian).
// При expected >= 0 количество элементов обязано совпасть с expected.
// label попадает в текст ошибки (имя поля документа).
func DecodeU16LE(b64 string, expected int, label string) ([]uint16, error) {
	raw, err := DecodeBase64(b64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	if len(raw)%u16Size != 0 {
		return nil, fmt.Errorf("%w for %s: expected multiple of %d, got %d", ErrByteLength, label, u16Size, len(raw))
	}

	count := len(raw) / u16Size
	if expected >= 0 && count != expected {
		return nil, fmt.Errorf("%s %w: expected %d, got %d", label, ErrCountMismatch, expected, count)
	}

	out := make([]uint16, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(raw[i*u16Size:])
	}
	return out, nil
}

// DecodeU32LE декодирует base64(u32[] little-endian); количество выводится из длины.
func DecodeU32LE(b64 string, label string) ([]uint32, error) {
	raw, err := DecodeBase64(b64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	if len(raw)%u32Size != 0 {
		return nil, fmt.Errorf("%w for %s: expected multiple of %d, got %d", ErrByteLength, label, u32Size, len(raw))
	}

	out := make([]uint32, len(raw)/u32Size)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[i*u32Size:])
	}
	return out, nil
}

// EncodeU16LE упаковывает значения в base64(u16[] little-endian)
func EncodeU16LE(values []uint16) string {
	raw := make([]byte, len(values)*u16Size)
	for i, v := range values {
		binary.LittleEndian.PutUint16(raw[i*u16Size:], v)
	}
	return EncodeBase64(raw)
}

// EncodeU32LE упаковывает значения в base64(u32[] little-endian)
func EncodeU32LE(values []uint32) string {
	raw := make([]byte, len(values)*u32Size)
	for i, v := range values {
		binary.LittleEndian.PutUint32(raw[i*u32Size:], v)
	}
	return EncodeBase64(raw)
}
