package view

import (
	"sync"

	"worldbridge/internal/domain"
)

// Body - единственный владелец "текущей позиции" актора.
// Хранит логическую клетку и интерполированную позицию отрисовки (в клетках).
// Читается потоком актора (планировщик), пишется циклом симуляции.
type Body struct {
	mu      sync.RWMutex
	cell    domain.Cell
	renderX float64
	renderY float64
}

func NewBody(start domain.Cell) *Body {
	return &Body{
		cell:    start,
		renderX: float64(start.X),
		renderY: float64(start.Y),
	}
}

// Cell возвращает текущую клетку
func (b *Body) Cell() domain.Cell {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cell
}

// SetCell ставит клетку и снапает позицию отрисовки в ее центр
func (b *Body) SetCell(c domain.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cell = c
	b.renderX = float64(c.X)
	b.renderY = float64(c.Y)
}

// RenderPos - позиция отрисовки (может быть между клетками во время шага)
func (b *Body) RenderPos() (float64, float64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.renderX, b.renderY
}

// SetRenderPos двигает только позицию отрисовки, клетка не меняется
func (b *Body) SetRenderPos(x, y float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.renderX = x
	b.renderY = y
}
