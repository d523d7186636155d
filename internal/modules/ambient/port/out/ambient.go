package out

import "innertone/internal/modules/ambient/domain"

// AudioGraph builds the nodes a scene plays through. Implementations must
// count every live node in ActiveNodes until it is stopped or its bus is
// disconnected.
type AudioGraph interface {
	NewBus(level float64) (Bus, error)
	StartTone(bus Bus, tone domain.Tone) (Voice, error)
	StartNoise(bus Bus, band domain.NoiseBand) (Node, error)
	ActiveNodes() int
}

type Node interface {
	Stop()
}

type Voice interface {
	Node
	SetFrequency(hz float64)
}

type Bus interface {
	SetLevel(level float64)
	Disconnect()
}

type Random interface {
	Float64() float64
}
