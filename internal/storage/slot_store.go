package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/annel0/isogame/internal/logging"
	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

const (
	slotDataPrefix = "slot:"
	slotMetaPrefix = "meta:"
)

// ErrSlotNotFound возвращается при обращении к несуществующему слоту
var ErrSlotNotFound = errors.New("save slot not found")

// SlotInfo описывает сохранённый слот
type SlotInfo struct {
	ID         string    `json:"id"`   // Уникален для каждой записи слота
	Name       string    `json:"name"` // Имя слота, ключ хранилища
	SavedAt    time.Time `json:"saved_at"`
	Size       int       `json:"size"`        // Размер документа до сжатия
	StoredSize int       `json:"stored_size"` // Размер после zstd
}

// SlotStore - архив документов сохранения мира в BadgerDB.
// Документы хранятся сжатыми zstd; безопасен для конкурентного использования.
type SlotStore struct {
	db      *badger.DB
	dbPath  string
	mutex   sync.RWMutex
	isReady bool

	encoder *zstd.Encoder
	decoder *zstd.Decoder
	logger  *logging.Logger
}

// NewSlotStore открывает (или создаёт) архив слотов в каталоге dataPath
func NewSlotStore(dataPath string) (*SlotStore, error) {
	dbPath := filepath.Join(dataPath, "slots")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd decoder: %w", err)
	}

	return &SlotStore{
		db:      db,
		dbPath:  dbPath,
		isReady: true,
		encoder: enc,
		decoder: dec,
		logger:  logging.GetStorageLogger(),
	}, nil
}

// Close закрывает хранилище
func (s *SlotStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isReady {
		return nil
	}

	s.isReady = false
	s.encoder.Close()
	s.decoder.Close()
	return s.db.Close()
}

// Put сохраняет документ под именем name, заменяя прежнее содержимое слота
func (s *SlotStore) Put(name string, document []byte) (SlotInfo, error) {
	if err := validateSlotName(name); err != nil {
		return SlotInfo{}, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.isReady {
		return SlotInfo{}, fmt.Errorf("хранилище не готово")
	}

	compressed := s.encoder.EncodeAll(document, nil)
	info := SlotInfo{
		ID:         uuid.NewString(),
		Name:       name,
		SavedAt:    time.Now().UTC(),
		Size:       len(document),
		StoredSize: len(compressed),
	}

	meta, err := json.Marshal(info)
	if err != nil {
		return SlotInfo{}, fmt.Errorf("ошибка сериализации метаданных слота: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(slotDataPrefix+name), compressed); err != nil {
			return err
		}
		return txn.Set([]byte(slotMetaPrefix+name), meta)
	})
	if err != nil {
		return SlotInfo{}, fmt.Errorf("ошибка сохранения слота в BadgerDB: %w", err)
	}

	s.logger.Info("💾 Слот %s сохранён: %d → %d байт (id=%s)", name, info.Size, info.StoredSize, info.ID)
	return info, nil
}

// Get возвращает распакованный документ и метаданные слота
func (s *SlotStore) Get(name string) ([]byte, SlotInfo, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.isReady {
		return nil, SlotInfo{}, fmt.Errorf("хранилище не готово")
	}

	var compressed, meta []byte
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		if compressed, err = readValue(txn, slotDataPrefix+name); err != nil {
			return err
		}
		meta, err = readValue(txn, slotMetaPrefix+name)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, SlotInfo{}, fmt.Errorf("%w: %s", ErrSlotNotFound, name)
	}
	if err != nil {
		return nil, SlotInfo{}, fmt.Errorf("ошибка чтения слота из BadgerDB: %w", err)
	}

	var info SlotInfo
	if err := json.Unmarshal(meta, &info); err != nil {
		return nil, SlotInfo{}, fmt.Errorf("ошибка десериализации метаданных слота: %w", err)
	}

	document, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, SlotInfo{}, fmt.Errorf("ошибка распаковки слота %s: %w", name, err)
	}
	return document, info, nil
}

// List возвращает метаданные всех слотов, отсортированные по имени
func (s *SlotStore) List() ([]SlotInfo, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	var slots []SlotInfo
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(slotMetaPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var info SlotInfo
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &info)
			})
			if err != nil {
				return err
			}
			slots = append(slots, info)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения списка слотов: %w", err)
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Name < slots[j].Name })
	return slots, nil
}

// Delete удаляет слот; удаление несуществующего слота - ErrSlotNotFound
func (s *SlotStore) Delete(name string) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(slotMetaPrefix + name)); err != nil {
			return err
		}
		if err := txn.Delete([]byte(slotDataPrefix + name)); err != nil {
			return err
		}
		return txn.Delete([]byte(slotMetaPrefix + name))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrSlotNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("ошибка удаления слота из BadgerDB: %w", err)
	}

	s.logger.Info("🗑️ Слот %s удалён", name)
	return nil
}

func readValue(txn *badger.Txn, key string) ([]byte, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func validateSlotName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("slot name must not be empty")
	}
	return nil
}
