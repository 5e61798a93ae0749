package domain

import (
	"errors"
	"testing"
)

func TestNewStep(t *testing.T) {
	tests := []struct {
		name    string
		dx, dy  int
		wantErr bool
	}{
		{name: "east", dx: 1, dy: 0},
		{name: "west", dx: -1, dy: 0},
		{name: "north", dx: 0, dy: 1},
		{name: "south", dx: 0, dy: -1},
		{name: "zero", dx: 0, dy: 0, wantErr: true},
		{name: "diagonal", dx: 1, dy: 1, wantErr: true},
		{name: "jump", dx: 2, dy: 0, wantErr: true},
		{name: "back diagonal", dx: -1, dy: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStep(tt.dx, tt.dy)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStep) {
					t.Fatalf("expected ErrInvalidStep, got %v", err)
				}
				if s != (Step{}) {
					t.Errorf("rejected step should be zero, got %v", s)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !s.Valid() || s.DX != tt.dx || s.DY != tt.dy {
				t.Errorf("got %v", s)
			}
		})
	}
}

func TestAxisStep(t *testing.T) {
	tests := []struct {
		name       string
		delta      int
		horizontal bool
		want       Step
		ok         bool
	}{
		{name: "far east", delta: 7, horizontal: true, want: StepEast, ok: true},
		{name: "west", delta: -1, horizontal: true, want: StepWest, ok: true},
		{name: "north", delta: 3, horizontal: false, want: StepNorth, ok: true},
		{name: "far south", delta: -9, horizontal: false, want: StepSouth, ok: true},
		{name: "no delta", delta: 0, horizontal: true, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AxisStep(tt.delta, tt.horizontal)
			if ok != tt.ok || got != tt.want {
				t.Errorf("AxisStep(%d, %v) = %v, %v; want %v, %v", tt.delta, tt.horizontal, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRect_Contains(t *testing.T) {
	bakery := Rect{X1: 50, Y1: 50, X2: 60, Y2: 60}
	swapped := Rect{X1: 60, Y1: 60, X2: 50, Y2: 50}

	tests := []struct {
		name string
		cell Cell
		want bool
	}{
		{name: "inside", cell: Cell{X: 55, Y: 55}, want: true},
		{name: "low corner inclusive", cell: Cell{X: 50, Y: 50}, want: true},
		{name: "high corner inclusive", cell: Cell{X: 60, Y: 60}, want: true},
		{name: "left of rect", cell: Cell{X: 49, Y: 55}, want: false},
		{name: "above rect", cell: Cell{X: 55, Y: 61}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bakery.Contains(tt.cell); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.cell, got, tt.want)
			}
			if got := swapped.Contains(tt.cell); got != tt.want {
				t.Errorf("swapped corners: Contains(%v) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}

func TestCell_IsAdjacent(t *testing.T) {
	c := Cell{X: 5, Y: 5}

	tests := []struct {
		other Cell
		want  bool
	}{
		{Cell{X: 6, Y: 5}, true},
		{Cell{X: 5, Y: 4}, true},
		{Cell{X: 4, Y: 4}, true}, // Диагональ
		{Cell{X: 5, Y: 5}, false},
		{Cell{X: 7, Y: 5}, false},
		{Cell{X: 6, Y: 7}, false},
	}

	for _, tt := range tests {
		if got := c.IsAdjacent(tt.other); got != tt.want {
			t.Errorf("%v.IsAdjacent(%v) = %v, want %v", c, tt.other, got, tt.want)
		}
	}
}

func TestCell_Distances(t *testing.T) {
	a, b := Cell{X: 0, Y: 0}, Cell{X: 3, Y: -2}

	if got := a.ManhattanTo(b); got != 5 {
		t.Errorf("ManhattanTo = %d, want 5", got)
	}
	if got := a.DistanceSquaredTo(b); got != 13 {
		t.Errorf("DistanceSquaredTo = %d, want 13", got)
	}
	if got := a.Apply(StepSouth); got != (Cell{X: 0, Y: -1}) {
		t.Errorf("Apply(south) = %v", got)
	}
}
