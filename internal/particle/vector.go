package particle

// Vector is a 2D point or direction.
type Vector struct {
	X, Y float64
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	return Vector{X: v.X, Y: v.Y}
}
