package game

import (
	"math"

	"github.com/iburimskiy/pink-heart/internal/config"
	"github.com/iburimskiy/pink-heart/internal/particle"
)

// Heart is the parametric emitter curve
//
//	x(t) = A·sin³t
//	y(t) = B·cos t − C·cos 2t − D·cos 3t − E·cos 4t + F
//
// in a y-up coordinate system centred on the canvas.
type Heart config.HeartConfig

// Point returns the curve position at parameter t.
func (h Heart) Point(t float64) particle.Vector {
	s := math.Sin(t)
	return particle.Vector{
		X: h.A * s * s * s,
		Y: h.B*math.Cos(t) - h.C*math.Cos(2*t) - h.D*math.Cos(3*t) - h.E*math.Cos(4*t) + h.F,
	}
}
