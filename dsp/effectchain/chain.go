package effectchain

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/cwbudde/algo-gtrfx/dsp/delay"
	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

// Errors returned by Chain.
var (
	ErrUnknownEffect      = errors.New("unknown effect type")
	ErrUnknownNode        = errors.New("unknown node")
	ErrDuplicateNode      = errors.New("duplicate node id")
	ErrSampleRateMismatch = errors.New("patch sample rate mismatch")
)

type node struct {
	id         string
	effectType string
	fx         effects.Effect
}

// NodeInfo describes one node of a chain.
type NodeInfo struct {
	ID     string
	Type   string
	State  effects.State
	Names  []string
	Values []float64
}

// Chain owns the shared sample history and an ordered list of effect
// nodes. ProcessSample and the node-editing methods must be called from one
// goroutine; other goroutines use Post and its wrappers.
type Chain struct {
	cfg      Config
	ctx      Context
	registry *Registry
	logger   *slog.Logger

	history *delay.History
	nodes   []*node
	nextID  int

	control chan func(*Chain)
	scratch []float64
}

// New creates an empty chain.
func New(opts ...Option) (*Chain, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := effects.ValidateSampleRate(cfg.Processor.SampleRate); err != nil {
		return nil, err
	}

	h, err := delay.NewHistory(cfg.HistoryCapacity)
	if err != nil {
		return nil, fmt.Errorf("effectchain: %w", err)
	}

	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry()
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Chain{
		cfg:      cfg,
		ctx:      Context{SampleRate: cfg.Processor.SampleRate, History: h.View()},
		registry: cfg.Registry,
		logger:   cfg.Logger,
		history:  h,
		control:  make(chan func(*Chain), cfg.ControlQueue),
		scratch:  make([]float64, cfg.Processor.BlockSize),
	}, nil
}

// Config returns the construction settings.
func (c *Chain) Config() Config { return c.cfg }

// Context returns the context handed to effect factories.
func (c *Chain) Context() Context { return c.ctx }

// SampleRate returns the processing sample rate.
func (c *Chain) SampleRate() float64 { return c.ctx.SampleRate }

// History returns the shared history.
func (c *Chain) History() *delay.History { return c.history }

// Registry returns the effect registry.
func (c *Chain) Registry() *Registry { return c.registry }

// Len returns the number of nodes.
func (c *Chain) Len() int { return len(c.nodes) }

// Add appends a new node of effectType and returns its generated ID.
func (c *Chain) Add(effectType string) (string, error) {
	s, err := c.Stage("", effectType)
	if err != nil {
		return "", err
	}

	return c.InsertStaged(len(c.nodes), s)
}

// Insert creates a node of effectType with the given ID at position index.
func (c *Chain) Insert(index int, id, effectType string) error {
	if id != "" && c.find(id) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, id)
	}

	s, err := c.Stage(id, effectType)
	if err != nil {
		return err
	}

	_, err = c.InsertStaged(index, s)

	return err
}

// Remove deletes the node with the given ID.
func (c *Chain) Remove(id string) error {
	i := c.find(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}

	c.nodes = slices.Delete(c.nodes, i, i+1)
	c.logger.Info("node removed", "id", id)

	return nil
}

// Move relocates the node with the given ID to position index.
func (c *Chain) Move(id string, index int) error {
	i := c.find(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}

	n := c.nodes[i]
	c.nodes = slices.Delete(c.nodes, i, i+1)
	index = max(0, min(index, len(c.nodes)))
	c.nodes = slices.Insert(c.nodes, index, n)

	return nil
}

// Clear removes every node and zeroes the history.
func (c *Chain) Clear() {
	c.nodes = nil
	c.nextID = 0
	c.history.Reset()
}

// Effect returns the effect of the node with the given ID, or nil.
func (c *Chain) Effect(id string) effects.Effect {
	if i := c.find(id); i >= 0 {
		return c.nodes[i].fx
	}

	return nil
}

// Nodes describes every node in processing order.
func (c *Chain) Nodes() []NodeInfo {
	out := make([]NodeInfo, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = NodeInfo{
			ID:     n.id,
			Type:   n.effectType,
			State:  n.fx.State(),
			Names:  n.fx.ParamNames(),
			Values: n.fx.Params(),
		}
	}

	return out
}

// ApplyParams imports a parameter vector into a node immediately.
func (c *Chain) ApplyParams(id string, values []float64) error {
	fx := c.Effect(id)
	if fx == nil {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}

	fx.SetParams(values)

	return nil
}

// ApplySwitch turns a node on or off immediately.
func (c *Chain) ApplySwitch(id string, state effects.State) error {
	fx := c.Effect(id)
	if fx == nil {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}

	fx.Switch(state)

	return nil
}

func (c *Chain) newEffect(effectType string) (effects.Effect, error) {
	factory := c.registry.Lookup(effectType)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, effectType)
	}

	fx, err := factory(c.ctx)
	if err != nil {
		return nil, fmt.Errorf("effectchain: create %s: %w", effectType, err)
	}

	return fx, nil
}

func (c *Chain) newID(effectType string) string {
	for {
		c.nextID++

		id := fmt.Sprintf("%s-%d", effectType, c.nextID)
		if c.find(id) < 0 {
			return id
		}
	}
}

func (c *Chain) find(id string) int {
	return slices.IndexFunc(c.nodes, func(n *node) bool { return n.id == id })
}
