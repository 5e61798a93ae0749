package api

import (
	"fmt"

	"worldbridge/internal/domain"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (e Event) Validate() error {
	if !e.Priority.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidPriority, e.Priority)
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
	return nil
}

func (s Snapshot) Validate() error {
	if s.ActorID == "" {
		return fmt.Errorf("snapshot: actor_id is required")
	}
	return nil
}
