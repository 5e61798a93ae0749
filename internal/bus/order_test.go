package bus

import (
	"testing"

	"worldbridge/pkg/api"
)

func TestOrderKey_Before(t *testing.T) {
	tests := []struct {
		name string
		a, b OrderKey
		want bool
	}{
		{"higher priority first", OrderKey{2, 10}, OrderKey{0, 1}, true},
		{"lower priority later", OrderKey{0, 1}, OrderKey{1, 5}, false},
		{"same priority older first", OrderKey{1, 3}, OrderKey{1, 4}, true},
		{"same priority newer later", OrderKey{1, 4}, OrderKey{1, 3}, false},
		{"equal keys", OrderKey{1, 4}, OrderKey{1, 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Before(tt.b); got != tt.want {
				t.Errorf("%+v.Before(%+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestKeyOf(t *testing.T) {
	ev := api.Event{Priority: api.PriorityHigh, Sequence: 42}
	if k := KeyOf(ev); k != (OrderKey{Priority: api.PriorityHigh, Sequence: 42}) {
		t.Errorf("unexpected key %+v", k)
	}
}
