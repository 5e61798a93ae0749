package domain

import "fmt"

// Step - атомарный кардинальный шаг (dx, dy), где |dx|+|dy| = 1.
// Нулевое значение Step{} невалидно.
type Step struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Четыре допустимых направления
var (
	StepEast  = Step{DX: 1, DY: 0}
	StepWest  = Step{DX: -1, DY: 0}
	StepNorth = Step{DX: 0, DY: 1}
	StepSouth = Step{DX: 0, DY: -1}
)

// NewStep проверяет вектор и возвращает шаг.
// Диагонали, нулевой вектор и прыжки длиннее одной клетки отклоняются с ErrInvalidStep.
func NewStep(dx, dy int) (Step, error) {
	s := Step{DX: dx, DY: dy}
	if !s.Valid() {
		return Step{}, fmt.Errorf("%w: (%d,%d)", ErrInvalidStep, dx, dy)
	}
	return s, nil
}

// Valid - true, если ровно одна ось смещается на одну клетку
func (s Step) Valid() bool {
	return abs(s.DX)+abs(s.DY) == 1
}

// AxisStep возвращает единичный шаг вдоль X (horizontal=true) или Y в сторону delta.
// При delta == 0 второе значение false.
func AxisStep(delta int, horizontal bool) (Step, bool) {
	d := sign(delta)
	if d == 0 {
		return Step{}, false
	}
	if horizontal {
		return Step{DX: d}, true
	}
	return Step{DY: d}, true
}

func (s Step) String() string {
	return fmt.Sprintf("(%+d,%+d)", s.DX, s.DY)
}
