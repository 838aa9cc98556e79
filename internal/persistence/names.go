package persistence

import "sort"

// BuildNamesByID превращает отображение имя→id в плотную таблицу длины max_id+1.
// Незанятые id заполняются пустой строкой.
func BuildNamesByID(ids map[string]int, label string) ([]string, error) {
	if len(ids) == 0 {
		return nil, newError(KindMalformed, "Empty type map: %s", label)
	}

	// Обходим в порядке имён, чтобы текст ошибки о дубликате был стабильным
	keys := make([]string, 0, len(ids))
	for name := range ids {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	maxID := 0
	seen := make(map[int]string, len(ids))
	for _, name := range keys {
		id := ids[name]
		if id < 0 {
			return nil, newError(KindMalformed, "Negative type id for '%s' in %s", name, label)
		}
		if id > maxTypeID {
			return nil, newError(KindMalformed, "Type id %d for '%s' in %s exceeds u16 range", id, name, label)
		}
		if _, dup := seen[id]; dup {
			return nil, newError(KindMalformed, "Duplicate type id %d in %s", id, label)
		}
		seen[id] = name
		if id > maxID {
			maxID = id
		}
	}

	names := make([]string, maxID+1)
	for id, name := range seen {
		names[id] = name
	}
	return names, nil
}

const maxTypeID = 1<<16 - 1
