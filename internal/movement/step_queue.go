package movement

import (
	"fmt"
	"sync"

	"worldbridge/internal/domain"
)

// StepQueue - FIFO единичных шагов одного актора.
// Пополняется планировщиком в потоке актора, разбирается циклом симуляции.
type StepQueue struct {
	mu    sync.Mutex
	steps []domain.Step
}

func NewStepQueue() *StepQueue {
	return &StepQueue{steps: make([]domain.Step, 0)}
}

// Push проверяет вектор и добавляет шаг в конец очереди.
// Невалидный вектор отклоняется до попадания в очередь.
func (q *StepQueue) Push(dx, dy int) error {
	s, err := domain.NewStep(dx, dy)
	if err != nil {
		return err
	}
	q.mu.Lock()
	q.steps = append(q.steps, s)
	q.mu.Unlock()
	return nil
}

// PushStep - то же, что Push, для готового шага
func (q *StepQueue) PushStep(s domain.Step) error {
	return q.Push(s.DX, s.DY)
}

// PushAll добавляет шаги атомарно: либо все, либо ни одного.
func (q *StepQueue) PushAll(steps []domain.Step) error {
	for i, s := range steps {
		if !s.Valid() {
			return fmt.Errorf("step %d: %w: %s", i, domain.ErrInvalidStep, s)
		}
	}
	q.mu.Lock()
	q.steps = append(q.steps, steps...)
	q.mu.Unlock()
	return nil
}

// Pop извлекает первый шаг. false - очередь пуста.
func (q *StepQueue) Pop() (domain.Step, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.steps) == 0 {
		return domain.Step{}, false
	}
	s := q.steps[0]
	q.steps = q.steps[1:]
	if len(q.steps) == 0 {
		// Отпускаем старый массив, чтобы длинные маршруты не держали память
		q.steps = make([]domain.Step, 0)
	}
	return s, true
}

// Len - число шагов в очереди
func (q *StepQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.steps)
}

// HasSteps - true, если очередь не пуста
func (q *StepQueue) HasSteps() bool {
	return q.Len() > 0
}

// Clear отбрасывает все шаги и возвращает их число.
func (q *StepQueue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.steps)
	q.steps = make([]domain.Step, 0)
	return n
}

// Sum - векторная сумма ожидающих шагов
func (q *StepQueue) Sum() (dx, dy int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, s := range q.steps {
		dx += s.DX
		dy += s.DY
	}
	return dx, dy
}
