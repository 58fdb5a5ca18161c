package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmichalek/netlayout/pkg/errors"
	pkgio "github.com/jmichalek/netlayout/pkg/io"
	"github.com/jmichalek/netlayout/pkg/layout"
	"github.com/jmichalek/netlayout/pkg/pipeline"
	"github.com/jmichalek/netlayout/pkg/render"
	"github.com/jmichalek/netlayout/pkg/store"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// =============================================================================
// Request / Response Types
// =============================================================================

// layoutRequest is the body for the layout, render, and crossings endpoints.
// Topology uses the same document format as the topology JSON files; Options
// uses the pipeline options JSON shape.
type layoutRequest struct {
	Topology json.RawMessage  `json:"topology"`
	Options  pipeline.Options `json:"options"`
}

// layoutResponse is the body returned by the layout endpoints.
type layoutResponse struct {
	Positions layout.Result `json:"positions"`
	Status    layout.Status `json:"status"`
	Crossings int           `json:"crossings"`
	Devices   int           `json:"devices"`
	Links     int           `json:"links"`
	Cached    bool          `json:"cached"`
}

// crossingsResponse is the body returned by the crossings endpoint.
type crossingsResponse struct {
	Crossings int `json:"crossings"`
	Devices   int `json:"devices"`
	Links     int `json:"links"`
}

// topologyResponse is the body returned by the topology store endpoints.
type topologyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Devices   int    `json:"devices"`
	Links     int    `json:"links"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toTopologyResponse(rec *store.Record) topologyResponse {
	return topologyResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		Devices:   len(rec.Nodes),
		Links:     len(rec.Links),
		CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: rec.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Layout Endpoints
// =============================================================================

// decodeTopology parses the request body and the embedded topology document.
func (s *Server) decodeTopology(r *http.Request) (*layoutRequest, *topo.Graph, layout.Viewport, error) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, nil, layout.Viewport{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if len(req.Topology) == 0 {
		return nil, nil, layout.Viewport{}, errors.New(errors.ErrCodeInvalidInput, "missing topology")
	}
	g, vp, err := pkgio.ReadJSON(bytes.NewReader(req.Topology))
	if err != nil {
		return nil, nil, layout.Viewport{}, errors.Wrap(errors.ErrCodeInvalidTopology, err, "parse topology")
	}
	return &req, g, vp, nil
}

// handleLayout computes positions for a posted topology.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, g, vp, err := s.decodeTopology(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := req.Options
	applyViewport(&opts, vp)

	result, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Positions: result.Positions,
		Status:    result.Status,
		Crossings: result.Crossings,
		Devices:   g.NodeCount(),
		Links:     g.EdgeCount(),
		Cached:    hit,
	})
}

// handleRender runs the full pipeline and returns a single rendered artifact.
// The format comes from options.formats; only one format per request.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, g, vp, err := s.decodeTopology(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := req.Options
	applyViewport(&opts, vp)
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.DefaultFormat}
	}
	if len(opts.Formats) != 1 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "render accepts exactly one format, got %d", len(opts.Formats)))
		return
	}

	result, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// contentTypeFor maps a render format to its MIME type.
func contentTypeFor(format string) string {
	switch render.Format(format) {
	case render.FormatSVG:
		return "image/svg+xml"
	case render.FormatPNG:
		return "image/png"
	default:
		return "text/vnd.graphviz"
	}
}

// handleCrossings counts link crossings at the posted positions.
func (s *Server) handleCrossings(w http.ResponseWriter, r *http.Request) {
	_, g, _, err := s.decodeTopology(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	positions := make(layout.Result, g.NodeCount())
	for _, n := range g.Nodes() {
		positions[n.ID] = n.Position
	}

	writeJSON(w, http.StatusOK, crossingsResponse{
		Crossings: layout.CountCrossings(g.Edges(), positions),
		Devices:   g.NodeCount(),
		Links:     g.EdgeCount(),
	})
}

// applyViewport adopts the document viewport when the options carry none.
func applyViewport(opts *pipeline.Options, vp layout.Viewport) {
	if opts.Width == 0 && vp.Width > 0 {
		opts.Width = vp.Width
		opts.Height = vp.Height
	}
}

// =============================================================================
// Topology Store Endpoints
// =============================================================================

// saveTopologyRequest is the body for creating or updating a stored topology.
type saveTopologyRequest struct {
	Name     string          `json:"name"`
	Topology json.RawMessage `json:"topology"`
}

func (s *Server) handleTopologySave(w http.ResponseWriter, r *http.Request) {
	var req saveTopologyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	g, vp, err := pkgio.ReadJSON(bytes.NewReader(req.Topology))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidTopology, err, "parse topology"))
		return
	}

	rec := store.NewRecord(req.Name, g, vp)
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTopologyResponse(rec))
}

func (s *Server) handleTopologyList(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]topologyResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toTopologyResponse(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTopologyGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	g, err := rec.Graph()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := pkgio.WriteJSON(g, rec.Viewport, &buf); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode topology"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleTopologyDelete(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), rec.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTopologyLayout lays out a stored topology and persists the updated
// positions.
func (s *Server) handleTopologyLayout(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := rec.Graph()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var opts pipeline.Options
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
			return
		}
	}
	applyViewport(&opts, rec.Viewport)

	result, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	for id, p := range result.Positions {
		if n, ok := g.Node(id); ok {
			n.Position = p
		}
	}
	updated := store.NewRecord(rec.Name, g, rec.Viewport)
	if err := s.store.Save(r.Context(), updated); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Positions: result.Positions,
		Status:    result.Status,
		Crossings: result.Crossings,
		Devices:   g.NodeCount(),
		Links:     g.EdgeCount(),
		Cached:    hit,
	})
}
