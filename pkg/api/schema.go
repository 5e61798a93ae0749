package api

import (
	"fmt"

	"github.com/invopop/jsonschema"
)

// Имена записей, для которых доступна JSON-схема
const (
	RecordSnapshot = "snapshot"
	RecordEvent    = "event"
)

// Schema возвращает JSON-схему записи протокола по имени.
func Schema(record string) (*jsonschema.Schema, error) {
	var (
		schema *jsonschema.Schema
		title  string
	)

	switch record {
	case RecordSnapshot:
		schema = jsonschema.Reflect(&Snapshot{})
		title = "World Snapshot"
	case RecordEvent:
		schema = jsonschema.Reflect(&Event{})
		title = "World Event"
	default:
		return nil, fmt.Errorf("unknown record %q", record)
	}

	if schema == nil {
		return nil, fmt.Errorf("failed to reflect %s schema", record)
	}
	schema.Title = title
	schema.Description = "protocol version " + ProtocolVersion
	return schema, nil
}
