package api

import (
	"encoding/json"
	"fmt"
)

// IsKnownVersion - true, если версия записи совпадает с ProtocolVersion
func IsKnownVersion(v string) bool {
	return v == ProtocolVersion
}

// VersionWarner вызывается при неизвестной версии записи.
// Декодирование в этом случае продолжается best-effort.
type VersionWarner func(record, version string)

// DecodeSnapshot разбирает снапшот из JSON.
// Неизвестная версия не является ошибкой: вызывается warn и поля читаются как есть.
func DecodeSnapshot(data []byte, warn VersionWarner) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if !IsKnownVersion(s.Version) && warn != nil {
		warn("snapshot", s.Version)
	}
	return s, nil
}

// DecodeEvent разбирает событие из JSON с той же политикой версий, что и DecodeSnapshot.
func DecodeEvent(data []byte, warn VersionWarner) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if !IsKnownVersion(e.Version) && warn != nil {
		warn("event", e.Version)
	}
	return e, nil
}
