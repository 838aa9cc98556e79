// Package encoding содержит кодеки упакованных массивов, встроенных в JSON
// сохранения мира: base64 и little-endian массивы фиксированной ширины.
package encoding

import (
	"encoding/base64"
	"errors"
	"fmt"
)

var (
	// ErrInvalidCharacter возвращается при символе вне алфавита base64
	ErrInvalidCharacter = errors.New("invalid base64 character")
	// ErrInvalidPadding возвращается, когда символов '=' больше, чем декодированных байт
	ErrInvalidPadding = errors.New("invalid base64 padding")
)

const (
	padValue     = -2
	invalidValue = -1
)

func alphabetValue(c byte) int {
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 26
	case c >= '0' && c <= '9':
		return int(c-'0') + 52
	case c == '+':
		return 62
	case c == '/':
		return 63
	case c == '=':
		return padValue
	default:
		return invalidValue
	}
}

// DecodeBase64 декодирует base64-текст в байты.
//
// Пробельные символы (\n, \r, \t, пробел) пропускаются. Символ '=' даёт
// значение 0 и увеличивает счётчик паддинга; после разбора с конца
// результата отрезается столько байт, сколько было '='. Неполные
// хвостовые группы (<8 бит) отбрасываются без ошибки.
func DecodeBase64(text string) ([]byte, error) {
	out := make([]byte, 0, len(text)/4*3)

	var buffer uint32
	bits := 0
	padding := 0

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' || c == '\r' || c == '\t' || c == ' ' {
			continue
		}

		val := alphabetValue(c)
		if val == invalidValue {
			return nil, fmt.Errorf("%w %q at offset %d", ErrInvalidCharacter, c, i)
		}
		if val == padValue {
			padding++
			val = 0
		}

		buffer = buffer<<6 | uint32(val)
		bits += 6

		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buffer>>bits))
			buffer &= 1<<bits - 1
		}
	}

	if padding > 0 {
		if len(out) < padding {
			return nil, fmt.Errorf("%w: %d padding characters for %d decoded bytes", ErrInvalidPadding, padding, len(out))
		}
		out = out[:len(out)-padding]
	}

	return out, nil
}

// EncodeBase64 кодирует байты стандартным алфавитом с паддингом.
// Результат всегда читается DecodeBase64.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
