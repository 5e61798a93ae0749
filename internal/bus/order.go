package bus

import "worldbridge/pkg/api"

// OrderKey - ключ порядка извлечения события из очереди.
// Сначала приоритет по убыванию, внутри одного приоритета - sequence по возрастанию (FIFO).
type OrderKey struct {
	Priority api.Priority
	Sequence uint64
}

// KeyOf возвращает ключ опубликованного события
func KeyOf(ev api.Event) OrderKey {
	return OrderKey{Priority: ev.Priority, Sequence: ev.Sequence}
}

// Before - true, если k должен быть извлечен раньше other
func (k OrderKey) Before(other OrderKey) bool {
	if k.Priority != other.Priority {
		return k.Priority > other.Priority
	}
	return k.Sequence < other.Sequence
}
