// Demo test program exercising the DSL against a small vector math
// library. Build and run it directly: `pzspec run`, `pzspec list`, etc.
package main

import (
	"math"

	"github.com/apotema/pzspec"
	"github.com/apotema/pzspec/pkg/expect"
	"github.com/apotema/pzspec/pkg/factory"
)

type vec2 struct {
	X, Y float64
}

func (v vec2) add(o vec2) vec2      { return vec2{v.X + o.X, v.Y + o.Y} }
func (v vec2) sub(o vec2) vec2      { return vec2{v.X - o.X, v.Y - o.Y} }
func (v vec2) scale(s float64) vec2 { return vec2{v.X * s, v.Y * s} }
func (v vec2) dot(o vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v vec2) magnitude() float64   { return math.Sqrt(v.dot(v)) }

func (v vec2) normalize() vec2 {
	m := v.magnitude()
	if m == 0 {
		return vec2{}
	}
	return v.scale(1 / m)
}

var vec2Factory = factory.New("vec2").
	Field("x", factory.Value(0.0)).
	Field("y", factory.Value(0.0)).
	Preset("unit_x", factory.Overrides{"x": 1.0, "y": 0.0}).
	Preset("unit_y", factory.Overrides{"x": 0.0, "y": 1.0}).
	Preset("pythagorean", factory.Overrides{"x": 3.0, "y": 4.0})

func buildVec2(preset string) vec2 {
	rec, err := vec2Factory.BuildWith(preset)
	if err != nil {
		panic(err)
	}
	return vec2{X: rec["x"].(float64), Y: rec["y"].(float64)}
}

func registerVec2Suite() {
	pzspec.Describe("Vec2", func() {
		pzspec.Describe("add", func() {
			pzspec.It("adds two vectors componentwise", func() error {
				sum := vec2{1, 2}.add(vec2{3, 4})
				return expect.Equal(sum, vec2{4, 6})
			})

			pzspec.It("is commutative", func() error {
				a, b := vec2{1, 2}, vec2{-3, 5}
				return expect.Equal(a.add(b), b.add(a))
			})
		})

		pzspec.Describe("sub", func() {
			pzspec.It("subtracts componentwise", func() error {
				return expect.Equal(vec2{4, 6}.sub(vec2{3, 4}), vec2{1, 2})
			})
		})

		pzspec.Describe("dot", func() {
			pzspec.It("is zero for orthogonal vectors", func() error {
				return expect.AlmostEqual(buildVec2("unit_x").dot(buildVec2("unit_y")), 0, 1e-9)
			})
		})

		pzspec.Describe("magnitude", func() {
			pzspec.It("satisfies the pythagorean triple", func() error {
				return expect.AlmostEqual(buildVec2("pythagorean").magnitude(), 5, 1e-9)
			})
		})

		pzspec.Describe("normalize", func() {
			pzspec.It("returns a unit vector", func() error {
				n := vec2{3, 4}.normalize()
				return expect.AlmostEqual(n.magnitude(), 1, 1e-9)
			})

			pzspec.It("leaves the zero vector untouched", func() error {
				return expect.Equal(vec2{}.normalize(), vec2{})
			})
		})
	}, "math")
}

func main() {
	registerVec2Suite()
	pzspec.Main()
}
