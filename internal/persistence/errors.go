package persistence

import (
	"errors"
	"fmt"

	"github.com/annel0/isogame/internal/encoding"
)

// ErrorKind классифицирует ошибки конвейера загрузки мира
type ErrorKind int

const (
	KindMalformed      ErrorKind = iota // Документ не разбирается или не той формы
	KindEncoding                        // Неподдерживаемое объявление encoding
	KindCorruptArray                    // Повреждённый упакованный массив
	KindReference                       // Id типа не разрешается в имя
	KindCount                           // Несовпадение количества элементов
	KindStream                          // Нарушение протокола потока тайлов
	KindMissingField                    // Нет обязательного переменного поля тайла
	KindNotAvailable                    // Функция ещё не реализована
	KindDimensions                      // Недопустимые размеры мира
	KindIO                              // Ошибка чтения/записи файла
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindEncoding:
		return "encoding"
	case KindCorruptArray:
		return "corrupt_array"
	case KindReference:
		return "reference"
	case KindCount:
		return "count"
	case KindStream:
		return "stream"
	case KindMissingField:
		return "missing_field"
	case KindNotAvailable:
		return "not_available"
	case KindDimensions:
		return "dimensions"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// GameError - единая доменная ошибка загрузки и сохранения мира.
// Основной контракт - текст сообщения, Kind нужен для классификации.
type GameError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *GameError) Error() string {
	switch {
	case e.Msg == "" && e.Err != nil:
		return e.Err.Error()
	case e.Msg == "":
		return e.Kind.String()
	case e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	default:
		return e.Msg
	}
}

func (e *GameError) Unwrap() error {
	return e.Err
}

// Is сопоставляет ошибки по Kind, если у цели пустое сообщение
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Kind == e.Kind
}

// ErrNotAvailable - метка для errors.Is у ещё не реализованных операций
var ErrNotAvailable = &GameError{Kind: KindNotAvailable}

func newError(kind ErrorKind, format string, args ...interface{}) *GameError {
	return &GameError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, err error, format string, args ...interface{}) *GameError {
	return &GameError{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// fromDecode переводит ошибку упакованного массива в доменную, сохраняя текст
func fromDecode(err error) *GameError {
	kind := KindCorruptArray
	if errors.Is(err, encoding.ErrCountMismatch) {
		kind = KindCount
	}
	return &GameError{Kind: kind, Err: err}
}

// notAvailable - ошибка заглушки; op - "load" или "save"
func notAvailable(op string) *GameError {
	return newError(KindNotAvailable, "World %s is not available yet. Save/load pipeline is still in progress.", op)
}

// KindOf возвращает Kind доменной ошибки; ok=false для посторонних ошибок
func KindOf(err error) (ErrorKind, bool) {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Kind, true
	}
	return 0, false
}
