package movement

import (
	"worldbridge/internal/domain"
)

// CellReader - доступ на чтение к текущей клетке актора.
// Владелец позиции - слой отображения (view.Body), не ядро.
type CellReader interface {
	Cell() domain.Cell
}

// Planner раскладывает целевую клетку на единичные шаги.
//
// Раскладка прямоугольная: сначала все шаги по X, затем по Y.
// Проходимость не проверяется - это решает вызывающий до постановки цели.
type Planner struct {
	pos   CellReader
	queue *StepQueue
}

func NewPlanner(pos CellReader, queue *StepQueue) *Planner {
	return &Planner{pos: pos, queue: queue}
}

// Plan возвращает шаги от текущей клетки (читается в момент вызова) до target.
// target == текущая клетка дает пустой список.
func Plan(from, target domain.Cell) []domain.Step {
	steps := make([]domain.Step, 0, from.ManhattanTo(target))

	if s, ok := domain.AxisStep(target.X-from.X, true); ok {
		for x := from.X; x != target.X; x += s.DX {
			steps = append(steps, s)
		}
	}
	if s, ok := domain.AxisStep(target.Y-from.Y, false); ok {
		for y := from.Y; y != target.Y; y += s.DY {
			steps = append(steps, s)
		}
	}
	return steps
}

// Plan раскладывает маршрут от текущей клетки актора
func (p *Planner) Plan(target domain.Cell) []domain.Step {
	return Plan(p.pos.Cell(), target)
}

// MoveTo ставит маршрут до target в очередь шагов и возвращает число шагов.
func (p *Planner) MoveTo(target domain.Cell) (int, error) {
	steps := p.Plan(target)
	if len(steps) == 0 {
		return 0, nil
	}
	if err := p.queue.PushAll(steps); err != nil {
		return 0, err
	}
	return len(steps), nil
}
