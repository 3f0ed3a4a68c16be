package effectchain

import (
	"encoding/json"
	"fmt"

	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

// PatchNode is the serialized form of one node.
type PatchNode struct {
	ID     string             `json:"id"`
	Type   string             `json:"type"`
	Params map[string]float64 `json:"params,omitempty"`
}

// Patch is the serialized form of a chain.
type Patch struct {
	SampleRate float64     `json:"sampleRate,omitempty"` //nolint:tagliatelle
	Nodes      []PatchNode `json:"nodes"`
}

// Patch exports node types and parameter vectors in processing order.
func (c *Chain) Patch() Patch {
	p := Patch{SampleRate: c.ctx.SampleRate, Nodes: make([]PatchNode, len(c.nodes))}
	for i, n := range c.nodes {
		p.Nodes[i] = PatchNode{
			ID:     n.id,
			Type:   n.effectType,
			Params: namedParams(n.fx.ParamNames(), n.fx.Params()),
		}
	}

	return p
}

// MarshalPatch encodes the current patch as indented JSON.
func (c *Chain) MarshalPatch() ([]byte, error) {
	return json.MarshalIndent(c.Patch(), "", "  ")
}

// ParsePatch decodes a JSON patch.
func ParsePatch(data []byte) (Patch, error) {
	var p Patch

	err := json.Unmarshal(data, &p)
	if err != nil {
		return Patch{}, fmt.Errorf("invalid patch json: %w", err)
	}

	return p, nil
}

// LoadPatch decodes data and replaces the chain's nodes with it.
func (c *Chain) LoadPatch(data []byte) error {
	p, err := ParsePatch(data)
	if err != nil {
		return err
	}

	return c.Apply(p)
}

// Apply replaces the chain's nodes with those of p and zeroes the history.
// Nodes are built first, so on error the chain is left unchanged. A patch
// whose SampleRate is set and differs from the chain's is rejected with
// ErrSampleRateMismatch, since delay times in samples would not carry over.
func (c *Chain) Apply(p Patch) error {
	s, err := c.Build(p)
	if err != nil {
		return err
	}

	c.Install(s)
	c.history.Reset()

	return nil
}

func countOn(nodes []*node) int {
	n := 0
	for _, nd := range nodes {
		if nd.fx.State() == effects.On {
			n++
		}
	}

	return n
}
