package effectchain

import (
	"errors"
	"fmt"
	"slices"
)

var errStagedCount = errors.New("effectchain: insert needs exactly one staged node")

// Staged holds effect nodes built away from the audio goroutine. It is
// consumed by InsertStaged or Install and must not be reused.
type Staged struct {
	nodes []*node
}

// Len returns the number of staged nodes.
func (s *Staged) Len() int { return len(s.nodes) }

// Stage builds one node of effectType. id may be empty, in which case
// InsertStaged assigns one. Stage reads only the registry and the
// immutable Context, so any goroutine may call it while the chain ticks.
func (c *Chain) Stage(id, effectType string) (*Staged, error) {
	fx, err := c.newEffect(effectType)
	if err != nil {
		return nil, err
	}

	return &Staged{nodes: []*node{{id: id, effectType: effectType, fx: fx}}}, nil
}

// Build constructs every node of p without touching the node list or the
// history. Like Stage it is safe to call from any goroutine. Parameters
// missing from a node keep their defaults; a node without a state
// parameter starts off.
func (c *Chain) Build(p Patch) (*Staged, error) {
	if p.SampleRate != 0 && p.SampleRate != c.ctx.SampleRate {
		return nil, fmt.Errorf("%w: patch %g Hz, chain %g Hz",
			ErrSampleRateMismatch, p.SampleRate, c.ctx.SampleRate)
	}

	built := make([]*node, 0, len(p.Nodes))
	seen := make(map[string]struct{}, len(p.Nodes))

	for i, pn := range p.Nodes {
		id := pn.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", pn.Type, i+1)
		}

		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, id)
		}

		seen[id] = struct{}{}

		fx, err := c.newEffect(pn.Type)
		if err != nil {
			return nil, fmt.Errorf("effectchain: patch node %q: %w", id, err)
		}

		params := Params{ID: id, Type: pn.Type, Num: pn.Params}
		fx.SetParams(params.Vector(fx.ParamNames(), fx.Params()))

		built = append(built, &node{id: id, effectType: pn.Type, fx: fx})
	}

	return &Staged{nodes: built}, nil
}

// InsertStaged places a single staged node at position index and returns
// its ID. Only slice bookkeeping happens here.
func (c *Chain) InsertStaged(index int, s *Staged) (string, error) {
	if s == nil || len(s.nodes) != 1 {
		return "", errStagedCount
	}

	n := s.nodes[0]
	if n.id == "" {
		n.id = c.newID(n.effectType)
	}

	if c.find(n.id) >= 0 {
		return "", fmt.Errorf("%w: %s", ErrDuplicateNode, n.id)
	}

	index = max(0, min(index, len(c.nodes)))
	c.nodes = slices.Insert(c.nodes, index, n)
	s.nodes = nil
	c.logger.Info("node added", "id", n.id, "type", n.effectType, "position", index)

	return n.id, nil
}

// Install replaces the node list with s. The history is kept, so delay
// lines of the new nodes start from the recent input.
func (c *Chain) Install(s *Staged) {
	if s == nil {
		return
	}

	c.nodes = s.nodes
	c.nextID = len(s.nodes)
	s.nodes = nil
	c.logger.Info("patch loaded", "nodes", len(c.nodes), "enabled", countOn(c.nodes))
}
