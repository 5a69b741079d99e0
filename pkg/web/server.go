package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/askeland/codegraph/pkg/logging"
	"github.com/askeland/codegraph/pkg/model"
	"github.com/askeland/codegraph/pkg/pubsub"
)

// AnalyzeFunc turns externally supplied file records into a graph and
// its analytics. Injected by the caller so the transport layer stays
// independent of the engine packages.
type AnalyzeFunc func(files []model.FileRecord) (*model.Graph, *model.Analytics, error)

// Server exposes the current graph and analytics over a JSON API and
// streams progress over Server-Sent Events. The stored results are
// replaced wholesale by each analysis run; no partial state is ever
// visible to clients.
type Server struct {
	router    *mux.Router
	publisher pubsub.Publisher
	analyze   AnalyzeFunc

	mu        sync.RWMutex
	graph     *model.Graph
	analytics *model.Analytics
}

// NewServer creates the web server. analyze may be nil, which disables
// the upload endpoint.
func NewServer(analyze AnalyzeFunc) *Server {
	publisher := pubsub.NewSSEPublisher()

	// New subscribers get the latest state, not the full history.
	publisher.ConfigureTopic("analysis_status", pubsub.TopicConfig{BufferSize: 10, ReplayAll: false})
	publisher.ConfigureTopic("graph", pubsub.TopicConfig{BufferSize: 5, ReplayAll: false})

	s := &Server{
		router:    mux.NewRouter(),
		publisher: publisher,
		analyze:   analyze,
	}
	s.setupRoutes()
	return s
}

// SetGraph stores the latest built graph.
func (s *Server) SetGraph(g *model.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = g
}

// SetAnalytics stores the latest analytics result.
func (s *Server) SetAnalytics(a *model.Analytics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analytics = a
}

// PublishAnalysisStatus publishes an analysis progress event.
func (s *Server) PublishAnalysisStatus(state, message string, step, total int) error {
	return s.publisher.Publish("analysis_status", state, pubsub.AnalysisStatus{
		State:   state,
		Message: message,
		Step:    step,
		Total:   total,
	})
}

// PublishGraphUpdate publishes a graph availability event.
func (s *Server) PublishGraphUpdate(eventType string, complete bool) error {
	s.mu.RLock()
	update := pubsub.GraphUpdate{Complete: complete}
	if s.graph != nil {
		update.NodeCount = len(s.graph.Nodes)
		update.EdgeCount = len(s.graph.Edges)
	}
	s.mu.RUnlock()

	return s.publisher.Publish("graph", eventType, update)
}

func (s *Server) setupRoutes() {
	s.router.Use(logging.RequestIDMiddleware)

	s.router.HandleFunc("/api/subscribe/analysis_status", s.handleSubscribe("analysis_status")).Methods("GET")
	s.router.HandleFunc("/api/subscribe/graph", s.handleSubscribe("graph")).Methods("GET")

	s.router.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/api/graph", s.handleGraph).Methods("GET")
	s.router.HandleFunc("/api/analytics", s.handleAnalytics).Methods("GET")
	s.router.HandleFunc("/api/summary", s.handleSummary).Methods("GET")
	s.router.HandleFunc("/api/node", s.handleNode).Methods("GET")
	s.router.HandleFunc("/api/analyze", s.handleAnalyze).Methods("POST")
}

// handleSubscribe streams a topic's events as SSE until the client
// disconnects.
func (s *Server) handleSubscribe(topic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		// Initial comment establishes the stream (Safari compatibility).
		fmt.Fprintf(w, ": connected\n\n")
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}

		sub, err := s.publisher.Subscribe(r.Context(), topic)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer sub.Close()

		for event := range sub.Events() {
			if err := pubsub.WriteSSE(w, event); err != nil {
				logging.WarnContext(r.Context(), "error writing SSE event", "topic", topic, "error", err)
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ready := s.analytics != nil
	s.mu.RUnlock()

	writeJSON(w, map[string]any{"status": "ok", "ready": ready})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	g := s.graph
	s.mu.RUnlock()

	if g == nil {
		http.Error(w, "no graph available yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, g)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	a := s.analytics
	s.mu.RUnlock()

	if a == nil {
		http.Error(w, "no analytics available yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, a)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	a := s.analytics
	s.mu.RUnlock()

	if a == nil {
		http.Error(w, "no analytics available yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, a.Summary)
}

// nodeDetail is the inspector payload for a single file.
type nodeDetail struct {
	Node       *model.Node             `json:"node"`
	Centrality *model.CentralityRecord `json:"centrality,omitempty"`
	Risk       *model.RiskRecord       `json:"risk,omitempty"`
	Cycles     []*model.Cycle          `json:"cycles"`
}

// handleNode returns one node with its analytics. The id comes in as a
// query parameter because file paths contain slashes.
func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id parameter", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	g, a := s.graph, s.analytics
	s.mu.RUnlock()

	if g == nil || a == nil {
		http.Error(w, "no analytics available yet", http.StatusServiceUnavailable)
		return
	}

	node := g.Node(id)
	if node == nil {
		http.Error(w, fmt.Sprintf("unknown node %q", id), http.StatusNotFound)
		return
	}

	detail := nodeDetail{Node: node, Cycles: make([]*model.Cycle, 0)}
	detail.Centrality = a.Centrality.ByNode[id]
	for _, risk := range a.Risks {
		if risk.NodeID == id {
			detail.Risk = risk
			break
		}
	}
	for _, c := range a.Cycles {
		for _, member := range c.Nodes {
			if member == id {
				detail.Cycles = append(detail.Cycles, c)
				break
			}
		}
	}

	writeJSON(w, detail)
}

// handleAnalyze accepts a file-record list from an external extractor,
// runs the engine over it, and stores and returns the result.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.analyze == nil {
		http.Error(w, "analysis endpoint disabled", http.StatusNotImplemented)
		return
	}

	var files []model.FileRecord
	if err := json.NewDecoder(r.Body).Decode(&files); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	g, a, err := s.analyze(files)
	if err != nil {
		http.Error(w, fmt.Sprintf("analysis failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	s.graph = g
	s.analytics = a
	s.mu.Unlock()
	s.PublishGraphUpdate("complete", true)

	writeJSON(w, map[string]any{"graph": g, "analytics": a})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("error encoding response", "error", err)
	}
}

// Router returns the configured router, mainly for tests.
func (s *Server) Router() *mux.Router {
	return s.router
}

// Start starts the web server on the given port.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("starting web server", "addr", fmt.Sprintf("http://localhost%s", addr))
	return http.ListenAndServe(addr, s.router)
}
