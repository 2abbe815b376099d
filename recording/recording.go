// Package recording streams simulation runs to disk with msgpack so they can
// be replayed and checked for determinism.
package recording

import (
	"io"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particlelife/config"
	"github.com/olivierh59500/particlelife/matrix"
	"github.com/olivierh59500/particlelife/particle"
	"github.com/olivierh59500/particlelife/world"
)

// ErrDiverged is returned by Verify when a replay leaves the recorded path.
var ErrDiverged = errors.New("replay diverged")

// State is the stored form of one particle.
type State struct {
	X, Y   float64
	VX, VY float64
	Mass   float64
	Class  int
}

// Header opens every recording.
type Header struct {
	Config    config.Config
	Matrix    [][]float64
	Particles []State
}

// Frame holds the positions after one step, flattened as x0,y0,x1,y1,...
type Frame struct {
	Step int
	DT   float64
	XY   []float64
}

// Recorder steps a world and writes every resulting frame.
type Recorder struct {
	w   *world.World
	enc *msgpack.Encoder
}

// NewRecorder writes the header for w's current state.
func NewRecorder(out io.Writer, w *world.World) (*Recorder, error) {
	enc := msgpack.NewEncoder(out)
	h := Header{
		Config: w.Config(),
		Matrix: w.Matrix().Rows(),
	}
	for _, p := range w.Particles() {
		h.Particles = append(h.Particles, State{
			X: p.Pos.X, Y: p.Pos.Y,
			VX: p.Vel.X, VY: p.Vel.Y,
			Mass: p.Mass, Class: p.Class,
		})
	}
	if err := enc.Encode(&h); err != nil {
		return nil, errors.Wrap(err, "write header")
	}
	return &Recorder{w: w, enc: enc}, nil
}

// Step advances the world and records the frame.
func (r *Recorder) Step(dt float64) ([]particle.Snapshot, error) {
	dt = r.w.Config().ClampDT(dt)
	snaps := r.w.Step(dt)
	f := Frame{Step: r.w.Steps(), DT: dt, XY: flatten(snaps)}
	if err := r.enc.Encode(&f); err != nil {
		return snaps, errors.Wrapf(err, "write frame %d", f.Step)
	}
	return snaps, nil
}

func flatten(snaps []particle.Snapshot) []float64 {
	xy := make([]float64, 0, 2*len(snaps))
	for _, s := range snaps {
		xy = append(xy, s.Pos.X, s.Pos.Y)
	}
	return xy
}

// Reader decodes a recording.
type Reader struct {
	dec    *msgpack.Decoder
	Header Header
}

// NewReader reads the header.
func NewReader(in io.Reader) (*Reader, error) {
	r := &Reader{dec: msgpack.NewDecoder(in)}
	if err := r.dec.Decode(&r.Header); err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	return r, nil
}

// Next returns the next frame, or io.EOF after the last one.
func (r *Reader) Next() (Frame, error) {
	var f Frame
	if err := r.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return f, io.EOF
		}
		return f, errors.Wrap(err, "read frame")
	}
	return f, nil
}

// World rebuilds the recorded initial state.
func (r *Reader) World(opts ...world.Option) (*world.World, error) {
	m, err := matrix.FromRows(r.Header.Matrix)
	if err != nil {
		return nil, err
	}
	ps := make([]particle.Particle, len(r.Header.Particles))
	for i, s := range r.Header.Particles {
		ps[i] = particle.Particle{
			Pos:   r2.Vec{X: s.X, Y: s.Y},
			Vel:   r2.Vec{X: s.VX, Y: s.VY},
			Mass:  s.Mass,
			Class: s.Class,
		}
	}
	opts = append(opts, world.WithMatrix(m), world.WithParticles(ps))
	return world.New(r.Header.Config, opts...)
}

// Verify replays every frame of a recording and returns the number of frames
// that matched exactly.
func Verify(in io.Reader) (int, error) {
	r, err := NewReader(in)
	if err != nil {
		return 0, err
	}
	w, err := r.World()
	if err != nil {
		return 0, err
	}

	matched := 0
	for {
		f, err := r.Next()
		if err == io.EOF {
			return matched, nil
		}
		if err != nil {
			return matched, err
		}
		xy := flatten(w.Step(f.DT))
		if len(xy) != len(f.XY) {
			return matched, errors.Wrapf(ErrDiverged, "step %d: %d coordinates, recorded %d", f.Step, len(xy), len(f.XY))
		}
		for i := range xy {
			if xy[i] != f.XY[i] {
				return matched, errors.Wrapf(ErrDiverged, "step %d particle %d", f.Step, i/2)
			}
		}
		matched++
	}
}
