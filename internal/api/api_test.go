package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/jmichalek/netlayout/pkg/cache"
	"github.com/jmichalek/netlayout/pkg/pipeline"
	"github.com/jmichalek/netlayout/pkg/store"
)

const sampleTopology = `{
	"viewport": {"width": 800, "height": 600},
	"nodes": [
		{"id": "core-rt", "type": "router", "x": 0, "y": 0, "width": 40, "height": 40},
		{"id": "sw-1", "type": "switch", "x": 10, "y": 10, "width": 40, "height": 40},
		{"id": "sw-2", "type": "switch", "x": 20, "y": 20, "width": 40, "height": 40},
		{"id": "srv-1", "type": "server", "x": 30, "y": 30, "width": 40, "height": 40}
	],
	"links": [
		{"source": "core-rt", "target": "sw-1"},
		{"source": "core-rt", "target": "sw-2"},
		{"source": "sw-1", "target": "srv-1"}
	]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	return New(runner, store.NewMemoryStore(), logger)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("response should carry a request ID")
	}
}

func TestLayoutEndpoint(t *testing.T) {
	s := newTestServer(t)
	body := `{"topology": ` + sampleTopology + `, "options": {"algorithm": "grid", "seed": 7}}`
	rec := doRequest(t, s, http.MethodPost, "/v1/layout", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp layoutResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Devices != 4 || resp.Links != 3 {
		t.Errorf("devices/links = %d/%d, want 4/3", resp.Devices, resp.Links)
	}
	if len(resp.Positions) != 4 {
		t.Errorf("positions count = %d, want 4", len(resp.Positions))
	}
	for id, p := range resp.Positions {
		if p.X < 0 || p.X > 800 || p.Y < 0 || p.Y > 600 {
			t.Errorf("node %s at %v is outside the viewport", id, p)
		}
	}
	if resp.Cached {
		t.Error("null cache should never report a hit")
	}
}

func TestLayoutEndpointErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed body",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "missing topology",
			body:       `{"options": {}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "bad topology",
			body:       `{"topology": {"nodes": [{"id": ""}], "links": []}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_TOPOLOGY",
		},
		{
			name:       "unknown algorithm",
			body:       `{"topology": ` + sampleTopology + `, "options": {"algorithm": "circular"}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ALGORITHM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/v1/layout", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var resp errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestCrossingsEndpoint(t *testing.T) {
	s := newTestServer(t)

	// Two diagonals of a square cross once.
	body := `{"topology": {
		"nodes": [
			{"id": "a", "x": 0, "y": 0}, {"id": "b", "x": 10, "y": 10},
			{"id": "c", "x": 0, "y": 10}, {"id": "d", "x": 10, "y": 0}
		],
		"links": [
			{"source": "a", "target": "b"},
			{"source": "c", "target": "d"}
		]
	}}`
	rec := doRequest(t, s, http.MethodPost, "/v1/crossings", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp crossingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Crossings != 1 {
		t.Errorf("crossings = %d, want 1", resp.Crossings)
	}
}

func TestRenderEndpointDOT(t *testing.T) {
	s := newTestServer(t)
	body := `{"topology": ` + sampleTopology + `, "options": {"formats": ["dot"], "algorithm": "grid"}}`
	rec := doRequest(t, s, http.MethodPost, "/v1/render", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("core-rt")) {
		t.Error("DOT output should contain node IDs")
	}
}

func TestRenderEndpointRejectsMultipleFormats(t *testing.T) {
	s := newTestServer(t)
	body := `{"topology": ` + sampleTopology + `, "options": {"formats": ["dot", "svg"]}}`
	rec := doRequest(t, s, http.MethodPost, "/v1/render", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTopologyCRUD(t *testing.T) {
	s := newTestServer(t)

	// Create
	rec := doRequest(t, s, http.MethodPost, "/v1/topologies", `{"name": "campus", "topology": `+sampleTopology+`}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d: %s", rec.Code, rec.Body.String())
	}
	var created topologyResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode save response: %v", err)
	}
	if created.ID == "" || created.Name != "campus" {
		t.Errorf("created = %+v", created)
	}

	// List
	rec = doRequest(t, s, http.MethodGet, "/v1/topologies", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listed []topologyResponse
	if err := json.NewDecoder(rec.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("list returned %d records, want 1", len(listed))
	}

	// Get returns the document format
	rec = doRequest(t, s, http.MethodGet, "/v1/topologies/campus", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d: %s", rec.Code, rec.Body.String())
	}
	var doc struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode topology document: %v", err)
	}
	if len(doc.Nodes) != 4 {
		t.Errorf("document has %d nodes, want 4", len(doc.Nodes))
	}

	// Layout in place
	rec = doRequest(t, s, http.MethodPost, "/v1/topologies/campus/layout", `{"algorithm": "grid"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("layout status = %d: %s", rec.Code, rec.Body.String())
	}
	var laidOut layoutResponse
	if err := json.NewDecoder(rec.Body).Decode(&laidOut); err != nil {
		t.Fatalf("decode layout response: %v", err)
	}
	if len(laidOut.Positions) != 4 {
		t.Errorf("layout returned %d positions, want 4", len(laidOut.Positions))
	}

	// Delete
	rec = doRequest(t, s, http.MethodDelete, "/v1/topologies/campus", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doRequest(t, s, http.MethodGet, "/v1/topologies/campus", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestUnknownTopologyIs404(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/v1/topologies/ghost", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != "TOPOLOGY_NOT_FOUND" {
		t.Errorf("code = %q, want TOPOLOGY_NOT_FOUND", resp.Code)
	}
}

func TestRequestIDIsHonored(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "client-chosen-id")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "client-chosen-id" {
		t.Errorf("X-Request-Id = %q, want the client-supplied ID", got)
	}
}
