package script

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dop251/goja"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

// ErrNoForceFunc is returned when a script does not define force
var ErrNoForceFunc = errors.New("script must define a 'force' function")

// Field is a gravity field computed by JavaScript. The script defines
//
//	function force(x, y, z, mass) { return [fx, fy, fz]; }
//
// which must be deterministic: the same field drives both the preview and
// the flight, so any hidden state makes them diverge.
type Field struct {
	mu    sync.Mutex
	vm    *goja.Runtime
	force goja.Callable

	// First error raised while evaluating force, if any
	err error
	log zerolog.Logger
}

// NewField compiles code and probes force once at the origin so broken
// scripts fail at load time rather than mid-flight
func NewField(code string, logger zerolog.Logger) (*Field, error) {
	vm := goja.New()
	if _, err := vm.RunString(code); err != nil {
		return nil, fmt.Errorf("script parse error: %w", err)
	}

	fn, ok := goja.AssertFunction(vm.Get("force"))
	if !ok {
		return nil, ErrNoForceFunc
	}

	f := &Field{
		vm:    vm,
		force: fn,
		log:   logger.With().Str("component", "field-script").Logger(),
	}
	if _, err := f.call(mgl64.Vec3{}, 1); err != nil {
		return nil, err
	}
	return f, nil
}

// Force evaluates the script. A failing evaluation contributes no force.
// The first failure is logged and kept for Err; later ones are silent.
func (f *Field) Force(position mgl64.Vec3, mass float64) mgl64.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, err := f.call(position, mass)
	if err != nil {
		if f.err == nil {
			f.err = err
			f.log.Error().
				Err(err).
				Float64("x", position.X()).
				Float64("y", position.Y()).
				Float64("z", position.Z()).
				Msg("field script failed, contributing no force")
		}
		return mgl64.Vec3{}
	}
	return v
}

// Err returns the first evaluation error
func (f *Field) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Field) call(position mgl64.Vec3, mass float64) (mgl64.Vec3, error) {
	result, err := f.force(goja.Undefined(),
		f.vm.ToValue(position.X()),
		f.vm.ToValue(position.Y()),
		f.vm.ToValue(position.Z()),
		f.vm.ToValue(mass),
	)
	if err != nil {
		return mgl64.Vec3{}, fmt.Errorf("force function failed: %w", err)
	}

	var out []float64
	if err := f.vm.ExportTo(result, &out); err != nil {
		return mgl64.Vec3{}, fmt.Errorf("failed to read force: %w", err)
	}
	if len(out) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("force must return 3 components, got %d", len(out))
	}
	return mgl64.Vec3{out[0], out[1], out[2]}, nil
}
