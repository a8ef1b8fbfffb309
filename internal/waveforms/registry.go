package waveforms

import (
	"fmt"
	"sort"
)

// Registry maps source names to constructors.
type Registry struct {
	sources map[string]func() Waveform
}

func NewRegistry() *Registry {
	r := &Registry{sources: make(map[string]func() Waveform)}

	r.sources["circle-sine"] = func() Waveform { return NewCircleSine() }
	r.sources["spring"] = func() Waveform { return NewSpring() }
	r.sources["spring-alt"] = func() Waveform { return NewSpringAlt() }
	r.sources["rose"] = func() Waveform { return NewRose() }
	r.sources["lissajous"] = func() Waveform { return NewLissajous() }

	return r
}

// Get builds the named source and applies params on top of its defaults.
func (r *Registry) Get(name string, params map[string]float64) (Waveform, error) {
	fn, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownSource, name, r.Names())
	}
	w := fn()

	// apply in a fixed order so "samples" errors are reported the same way
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.SetParam(k, params[k]); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Names returns the registered source names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults returns the default parameters of the named source.
func (r *Registry) Defaults(name string) (map[string]float64, error) {
	fn, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	return fn().Params(), nil
}
