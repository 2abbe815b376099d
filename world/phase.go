package world

// Phase is the position of the world inside its step cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRebuildGrid
	PhaseAccumulateForces
	PhaseIntegrate
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRebuildGrid:
		return "rebuild-grid"
	case PhaseAccumulateForces:
		return "accumulate-forces"
	case PhaseIntegrate:
		return "integrate"
	default:
		return "unknown"
	}
}
