package out

import "math/rand/v2"

type MathRandom struct{}

func (MathRandom) Float64() float64 { return rand.Float64() }
