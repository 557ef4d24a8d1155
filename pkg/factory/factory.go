// Package factory builds named test-data records declaratively: a
// factory registers its fields with default generators, optional named
// presets override groups of fields, and per-build overrides win over
// both. No reflection is involved; built records are plain maps.
package factory

import "fmt"

// Generator produces a field's value at build time.
type Generator interface {
	generate() any
}

type value struct{ v any }

func (g value) generate() any { return g.v }

// Value returns the same fixed value for every build.
func Value(v any) Generator { return value{v: v} }

type lazy struct{ fn func() any }

func (g lazy) generate() any { return g.fn() }

// Lazy calls fn on every build.
func Lazy(fn func() any) Generator { return lazy{fn: fn} }

type sequence struct {
	fn func(n int) any
	n  *int
}

func (g sequence) generate() any {
	*g.n++
	return g.fn(*g.n)
}

// Seq calls fn with an auto-incrementing counter starting at 1.
func Seq(fn func(n int) any) Generator {
	return sequence{fn: fn, n: new(int)}
}

// Overrides maps field names to explicit values for one build.
type Overrides map[string]any

// Factory builds records from registered fields and presets.
type Factory struct {
	name    string
	fields  map[string]Generator
	order   []string
	presets map[string]Overrides
}

// New returns an empty factory with the given name (used in errors).
func New(name string) *Factory {
	return &Factory{
		name:    name,
		fields:  make(map[string]Generator),
		presets: make(map[string]Overrides),
	}
}

// Field registers a field with its default generator. Returns the
// factory for chaining; re-registering a field replaces its generator.
func (f *Factory) Field(name string, g Generator) *Factory {
	if _, ok := f.fields[name]; !ok {
		f.order = append(f.order, name)
	}
	f.fields[name] = g
	return f
}

// Preset registers a named set of field overrides (a trait).
func (f *Factory) Preset(name string, o Overrides) *Factory {
	f.presets[name] = o
	return f
}

// Build produces one record from the defaults plus any overrides.
// Overriding an unregistered field is an error.
func (f *Factory) Build(overrides ...Overrides) (map[string]any, error) {
	return f.build("", overrides)
}

// BuildWith produces one record with a named preset applied before the
// explicit overrides.
func (f *Factory) BuildWith(preset string, overrides ...Overrides) (map[string]any, error) {
	if _, ok := f.presets[preset]; !ok {
		return nil, fmt.Errorf("factory %q has no preset %q", f.name, preset)
	}
	return f.build(preset, overrides)
}

// MustBuild is Build, panicking on error. For use in test setup where
// a bad override is a programming mistake.
func (f *Factory) MustBuild(overrides ...Overrides) map[string]any {
	rec, err := f.Build(overrides...)
	if err != nil {
		panic(err)
	}
	return rec
}

// BuildList produces n records from the defaults.
func (f *Factory) BuildList(n int) ([]map[string]any, error) {
	records := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		rec, err := f.Build()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Reset restarts every sequence field's counter.
func (f *Factory) Reset() {
	for _, g := range f.fields {
		if seq, ok := g.(sequence); ok {
			*seq.n = 0
		}
	}
}

func (f *Factory) build(preset string, overrides []Overrides) (map[string]any, error) {
	record := make(map[string]any, len(f.fields))
	for _, name := range f.order {
		record[name] = f.fields[name].generate()
	}
	if preset != "" {
		if err := f.apply(record, f.presets[preset]); err != nil {
			return nil, err
		}
	}
	for _, o := range overrides {
		if err := f.apply(record, o); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func (f *Factory) apply(record map[string]any, o Overrides) error {
	for name, v := range o {
		if _, ok := f.fields[name]; !ok {
			return fmt.Errorf("factory %q has no field %q", f.name, name)
		}
		record[name] = v
	}
	return nil
}
