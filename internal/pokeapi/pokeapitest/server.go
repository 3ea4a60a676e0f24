// Package pokeapitest runs an in-process stand-in for the PokeAPI endpoints
// that dexview reads, for use in tests of the packages built on top of it.
package pokeapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
)

var starters = []string{
	"bulbasaur", "ivysaur", "venusaur",
	"charmander", "charmeleon", "charizard",
	"squirtle", "wartortle", "blastoise",
	"caterpie", "metapod", "butterfree",
}

// Names returns n entry names. The first ones are real, the rest numbered.
func Names(n int) []string {
	names := make([]string, n)
	for i := range names {
		if i < len(starters) {
			names[i] = starters[i]
		} else {
			names[i] = fmt.Sprintf("creature-%03d", i+1)
		}
	}
	return names
}

// Server serves /pokemon and /pokemon/{id} for a fixed list of names.
// Entry i of the list has id i+1.
type Server struct {
	*httptest.Server

	names []string

	mu      sync.Mutex
	failing map[int]int // id -> status

	requests atomic.Int64
}

// New starts a Server and closes it when the test ends.
func New(t testing.TB, names []string) *Server {
	t.Helper()
	s := &Server{names: names, failing: make(map[int]int)}

	r := chi.NewRouter()
	r.Get("/pokemon", s.handleList)
	r.Get("/pokemon/{ref}", s.handleDetail)
	r.Get("/pokemon/{ref}/", s.handleDetail)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Fail makes detail requests for id answer with status.
func (s *Server) Fail(id, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[id] = status
}

// Heal clears every failure set with Fail.
func (s *Server) Heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.failing)
}

// Requests counts the requests served so far.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)

	limit := len(s.names)
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l < limit {
		limit = l
	}

	type result struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	results := make([]result, limit)
	for i := range results {
		results[i] = result{Name: s.names[i], URL: fmt.Sprintf("%s/pokemon/%d/", s.URL, i+1)}
	}
	writeJSON(w, map[string]any{"count": len(s.names), "results": results})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)

	id := s.lookup(chi.URLParam(r, "ref"))
	if id == 0 {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	s.mu.Lock()
	status, failing := s.failing[id]
	s.mu.Unlock()
	if failing {
		http.Error(w, http.StatusText(status), status)
		return
	}

	writeJSON(w, Record(id, s.names[id-1]))
}

// lookup resolves an id or name to an id, or 0.
func (s *Server) lookup(ref string) int {
	if id, err := strconv.Atoi(ref); err == nil {
		if id >= 1 && id <= len(s.names) {
			return id
		}
		return 0
	}
	for i, name := range s.names {
		if strings.EqualFold(name, ref) {
			return i + 1
		}
	}
	return 0
}

// Record builds the wire form of a detail record. Even ids have a cry.
func Record(id int, name string) map[string]any {
	rec := map[string]any{
		"id":              id,
		"name":            name,
		"height":          id % 20,
		"weight":          id * 10,
		"base_experience": 50 + id,
		"sprites":         map[string]any{"front_default": fmt.Sprintf("https://img.test/%d.png", id)},
		"types": []any{
			map[string]any{"slot": 1, "type": map[string]any{"name": "grass", "url": ""}},
		},
		"abilities": []any{
			map[string]any{"ability": map[string]any{"name": "overgrow", "url": ""}, "is_hidden": false},
			map[string]any{"ability": map[string]any{"name": "chlorophyll", "url": ""}, "is_hidden": true},
		},
		"stats": []any{
			map[string]any{"base_stat": 45, "stat": map[string]any{"name": "hp", "url": ""}},
			map[string]any{"base_stat": 65, "stat": map[string]any{"name": "special-attack", "url": ""}},
		},
		"moves": []any{
			map[string]any{"move": map[string]any{"name": "razor-wind", "url": ""}},
		},
	}
	if id%2 == 0 {
		rec["cries"] = map[string]any{"latest": fmt.Sprintf("https://cries.test/%d.ogg", id)}
	}
	return rec
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
