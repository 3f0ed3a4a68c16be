package effectchain

import (
	"testing"

	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

// scaleEffect multiplies every sample by a fixed factor.
type scaleEffect struct {
	effects.Switcher

	factor int32
}

func (s *scaleEffect) Process(x int32, _ int) int32 { return x * s.factor }
func (s *scaleEffect) ParamNames() []string         { return []string{"state", "factor"} }
func (s *scaleEffect) Params() []float64 {
	return []float64{s.State().Param(), float64(s.factor)}
}

func (s *scaleEffect) SetParams(values []float64) {
	if len(values) > 0 {
		s.Switch(effects.StateFromParam(values[0]))
	}

	if len(values) > 1 && values[1] == values[1] {
		s.factor = int32(values[1])
	}
}

// addEffect adds a constant to every sample.
type addEffect struct {
	effects.Switcher

	value int32
}

func (a *addEffect) Process(x int32, _ int) int32 { return x + a.value }
func (a *addEffect) ParamNames() []string         { return []string{"state", "value"} }
func (a *addEffect) Params() []float64 {
	return []float64{a.State().Param(), float64(a.value)}
}

func (a *addEffect) SetParams(values []float64) {
	if len(values) > 0 {
		a.Switch(effects.StateFromParam(values[0]))
	}

	if len(values) > 1 && values[1] == values[1] {
		a.value = int32(values[1])
	}
}

// cursorEffect records the cursor of every tick.
type cursorEffect struct {
	effects.Switcher

	cursors []int
}

func (c *cursorEffect) Process(x int32, cursor int) int32 {
	c.cursors = append(c.cursors, cursor)
	return x
}
func (c *cursorEffect) ParamNames() []string       { return []string{"state"} }
func (c *cursorEffect) Params() []float64          { return []float64{c.State().Param()} }
func (c *cursorEffect) SetParams(values []float64) {}

// testRegistry creates a registry with simple test effects. New nodes
// start enabled.
func testRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister("scale", func(_ Context) (effects.Effect, error) {
		fx := &scaleEffect{factor: 2}
		fx.Switch(effects.On)

		return fx, nil
	})
	r.MustRegister("add", func(_ Context) (effects.Effect, error) {
		fx := &addEffect{value: 1}
		fx.Switch(effects.On)

		return fx, nil
	})
	r.MustRegister("cursor", func(_ Context) (effects.Effect, error) {
		fx := &cursorEffect{}
		fx.Switch(effects.On)

		return fx, nil
	})

	return r
}

func newTestChain(t testing.TB, opts ...Option) *Chain {
	t.Helper()

	c, err := New(append([]Option{WithRegistry(testRegistry())}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return c
}
