package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cwbudde/algo-gtrfx/dsp/effectchain"
	"github.com/cwbudde/algo-gtrfx/dsp/effects"
	"github.com/go-chi/chi/v5"
)

const maxBodySize = 1 << 20

// Node is the JSON view of one chain node.
type Node struct {
	ID     string             `json:"id"`
	Type   string             `json:"type"`
	State  string             `json:"state"`
	Names  []string           `json:"names"`
	Params map[string]float64 `json:"params"`
}

func nodeView(info effectchain.NodeInfo) Node {
	params := make(map[string]float64, len(info.Names))
	for i, name := range info.Names {
		if i < len(info.Values) {
			params[name] = info.Values[i]
		}
	}

	return Node{ID: info.ID, Type: info.Type, State: info.State.String(), Names: info.Names, Params: params}
}

type addRequest struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type paramsRequest struct {
	Params map[string]float64 `json:"params"`
	Values []float64          `json:"values"`
}

type stateRequest struct {
	State string `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEffects(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.chain.Registry().Types())
}

func (s *Server) handleListNodes(w http.ResponseWriter, r *http.Request) {
	var nodes []Node

	err := s.query(r.Context(), func(c *effectchain.Chain) error {
		infos := c.Nodes()
		nodes = make([]Node, len(infos))

		for i, info := range infos {
			nodes[i] = nodeView(info)
		}

		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nodes)
}

func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var node Node

	err := s.query(r.Context(), func(c *effectchain.Chain) error {
		var err error

		node, err = findNode(c, id)

		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, node)
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	staged, err := s.chain.Stage(req.ID, req.Type)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var node Node

	err = s.query(r.Context(), func(c *effectchain.Chain) error {
		if _, err := c.InsertStaged(c.Len(), staged); err != nil {
			return err
		}

		infos := c.Nodes()
		node = nodeView(infos[len(infos)-1])

		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, node)
}

func (s *Server) handleRemoveNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.query(r.Context(), func(c *effectchain.Chain) error {
		return c.Remove(id)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetParams(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req paramsRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	var node Node

	err := s.query(r.Context(), func(c *effectchain.Chain) error {
		fx := c.Effect(id)
		if fx == nil {
			return unknownNode(id)
		}

		values := req.Values
		if req.Params != nil {
			p := effectchain.Params{ID: id, Num: req.Params}
			values = p.Vector(fx.ParamNames(), fx.Params())
		}

		fx.SetParams(values)

		var err error

		node, err = findNode(c, id)

		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, node)
}

func (s *Server) handleSetState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req stateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	var state effects.State

	switch strings.ToLower(req.State) {
	case "on":
		state = effects.On
	case "off":
		state = effects.Off
	default:
		s.writeError(w, badRequest("state must be on or off"))
		return
	}

	err := s.query(r.Context(), func(c *effectchain.Chain) error {
		return c.ApplySwitch(id, state)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stateRequest{State: state.String()})
}

func (s *Server) handleGetPatch(w http.ResponseWriter, r *http.Request) {
	var patch effectchain.Patch

	err := s.query(r.Context(), func(c *effectchain.Chain) error {
		patch = c.Patch()
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, patch)
}

func (s *Server) handleLoadPatch(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, badRequest(err.Error()))
		return
	}

	patch, err := effectchain.ParsePatch(data)
	if err != nil {
		s.writeError(w, badRequest(err.Error()))
		return
	}

	staged, err := s.chain.Build(patch)
	if err != nil {
		s.writeError(w, err)
		return
	}

	err = s.query(r.Context(), func(c *effectchain.Chain) error {
		c.Install(staged)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("patch replaced", "nodes", len(patch.Nodes))
	w.WriteHeader(http.StatusNoContent)
}

// query runs fn on the audio goroutine and returns its error.
func (s *Server) query(ctx context.Context, fn func(*effectchain.Chain) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
	defer cancel()

	var fnErr error

	err := s.chain.Query(ctx, func(c *effectchain.Chain) {
		fnErr = fn(c)
	})
	if err != nil {
		return err
	}

	return fnErr
}

type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }

func badRequest(msg string) error { return &requestError{msg: msg} }

func unknownNode(id string) error {
	return fmt.Errorf("%w: %s", effectchain.ErrUnknownNode, id)
}

func findNode(c *effectchain.Chain, id string) (Node, error) {
	for _, info := range c.Nodes() {
		if info.ID == id {
			return nodeView(info), nil
		}
	}

	return Node{}, unknownNode(id)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return badRequest("invalid json: " + err.Error())
	}

	return nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var reqErr *requestError

	status := http.StatusInternalServerError

	switch {
	case errors.As(err, &reqErr):
		status = http.StatusBadRequest
	case errors.Is(err, effectchain.ErrUnknownNode):
		status = http.StatusNotFound
	case errors.Is(err, effectchain.ErrUnknownEffect), errors.Is(err, effectchain.ErrDuplicateNode),
		errors.Is(err, effectchain.ErrSampleRateMismatch):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, effectchain.ErrControlQueueFull):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	if status >= http.StatusInternalServerError {
		s.logger.Warn("control request failed", "status", status, "error", err)
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
