// Package emulator serves a fake Octofit Tracker REST API backed by fixture
// data, shaped like the real API's list endpoints.
package emulator

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"sort"
	"sync"

	"github.com/go-chi/chi"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

type page struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

type override struct {
	status int
	body   []byte
}

type Emulator struct {
	data *Data
	log  zerolog.Logger

	mu           sync.Mutex
	paginate     bool
	debugRequest bool
	requests     map[string]int
	overrides    map[string]override
}

func New(data *Data, log zerolog.Logger) *Emulator {
	return &Emulator{
		data:      data,
		log:       log,
		requests:  map[string]int{},
		overrides: map[string]override{},
	}
}

// Paginate wraps list responses in a page envelope instead of returning
// bare lists.
func (e *Emulator) Paginate(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.paginate = enabled
}

// DebugRequests dumps every incoming request to the log.
func (e *Emulator) DebugRequests(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.debugRequest = enabled
}

// Respond makes the list endpoint of entity answer with the given status and
// body until Reset is called.
func (e *Emulator) Respond(entity string, status int, body []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.overrides[entity] = override{status: status, body: body}
}

// Reset removes all response overrides and request counts.
func (e *Emulator) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.overrides = map[string]override{}
	e.requests = map[string]int{}
}

// Requests returns how many times the list endpoint of entity was requested.
func (e *Emulator) Requests(entity string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.requests[entity]
}

func (e *Emulator) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(e.debug)
	router.Get("/api/", e.getRoot)
	router.Get("/api/{entity}/", e.getList)

	return router
}

func (e *Emulator) debug(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.mu.Lock()
		enabled := e.debugRequest
		e.mu.Unlock()

		if enabled {
			request, err := httputil.DumpRequest(r, true)
			if err != nil {
				e.log.Error().Err(err).Msg("dumping request")
			}

			e.log.Debug().Msgf("request received %s", string(request))
		}

		next.ServeHTTP(w, r)
	})
}

func (e *Emulator) getRoot(w http.ResponseWriter, r *http.Request) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	var endpoints []string
	for _, entity := range Entities() {
		endpoints = append(endpoints, fmt.Sprintf("%s://%s/api/%s/", scheme, r.Host, entity))
	}

	e.writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Welcome to OctoFit Tracker API",
		"version":   "1.0.0",
		"endpoints": endpoints,
	})
}

func (e *Emulator) getList(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")

	e.mu.Lock()
	e.requests[entity]++
	o, overridden := e.overrides[entity]
	paginate := e.paginate
	e.mu.Unlock()

	if overridden {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(o.status)
		_, _ = w.Write(o.body)

		return
	}

	list, count, ok := e.list(entity)
	if !ok {
		e.writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}

	if paginate {
		e.writeJSON(w, http.StatusOK, page{Count: count, Results: list})
		return
	}

	e.writeJSON(w, http.StatusOK, list)
}

func (e *Emulator) list(entity string) (any, int, bool) {
	if entity == "leaderboard" {
		entries := append([]LeaderboardEntry{}, e.data.Leaderboard...)
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Rank < entries[j].Rank
		})

		return entries, len(entries), true
	}

	return e.data.List(entity)
}

func (e *Emulator) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		e.log.Error().Err(err).Msg("encoding response")
	}
}
