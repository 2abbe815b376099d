// Package stats summarises particle state for reports and overlays.
package stats

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/olivierh59500/particlelife/particle"
)

// Sample is a summary of one step.
type Sample struct {
	MeanSpeed     float64
	MaxSpeed      float64
	KineticEnergy float64
	Census        []int // particles per class
}

// Take summarises ps. classes sizes the census.
func Take(ps []particle.Particle, classes int) Sample {
	s := Sample{Census: make([]int, classes)}
	if len(ps) == 0 {
		return s
	}

	speeds := make([]float64, len(ps))
	for i := range ps {
		v := ps[i].Speed()
		speeds[i] = v
		if v > s.MaxSpeed {
			s.MaxSpeed = v
		}
		s.KineticEnergy += 0.5 * ps[i].Mass * r2.Norm2(ps[i].Vel)
		if c := ps[i].Class; c >= 0 && c < classes {
			s.Census[c]++
		}
	}
	s.MeanSpeed = stat.Mean(speeds, nil)
	return s
}

// Series collects samples over a run.
type Series struct {
	MeanSpeed     []float64
	KineticEnergy []float64
}

// Add appends one sample.
func (s *Series) Add(x Sample) {
	s.MeanSpeed = append(s.MeanSpeed, x.MeanSpeed)
	s.KineticEnergy = append(s.KineticEnergy, x.KineticEnergy)
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.MeanSpeed)
}

// SpeedSpread returns the mean and standard deviation of the mean speed
// over the series.
func (s *Series) SpeedSpread() (mean, std float64) {
	if len(s.MeanSpeed) < 2 {
		if len(s.MeanSpeed) == 1 {
			return s.MeanSpeed[0], 0
		}
		return 0, 0
	}
	return stat.MeanStdDev(s.MeanSpeed, nil)
}
