package domain

// Cell - координата клетки на сетке мира
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shift возвращает новую клетку со смещением (текущая не меняется)
func (c Cell) Shift(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Apply применяет единичный шаг к клетке
func (c Cell) Apply(s Step) Cell {
	return c.Shift(s.DX, s.DY)
}

// DistanceSquaredTo возвращает квадрат расстояния (int) для сравнения без корней
func (c Cell) DistanceSquaredTo(other Cell) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	return dx*dx + dy*dy
}

// ManhattanTo - число единичных шагов до другой клетки по прямоугольной сетке
func (c Cell) ManhattanTo(other Cell) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ)
func (c Cell) IsAdjacent(other Cell) bool {
	dx := abs(c.X - other.X)
	dy := abs(c.Y - other.Y)

	// Если разница по X и Y не больше 1, значит соседи
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
