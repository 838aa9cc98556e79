package vec

// Vec2 представляет целочисленные координаты клетки сетки мира
type Vec2 struct {
	X, Y int
}

// Index возвращает индекс клетки в построчном (row-major) порядке: y*width + x
func (v Vec2) Index(width int) int {
	return v.Y*width + v.X
}

// FromIndex восстанавливает координаты клетки по индексу построчного обхода
func FromIndex(index, width int) Vec2 {
	return Vec2{X: index % width, Y: index / width}
}

// Center возвращает мировую позицию центра клетки (x+0.5, y+0.5)
func (v Vec2) Center() Vec2Float {
	return Vec2Float{X: float64(v.X) + 0.5, Y: float64(v.Y) + 0.5}
}

// InBounds проверяет, лежит ли клетка внутри сетки width x height
func (v Vec2) InBounds(width, height int) bool {
	return v.X >= 0 && v.Y >= 0 && v.X < width && v.Y < height
}
