// Package solutions exposes the optimizer state over HTTP.
package solutions

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kilianp07/evoroute/core/archive"
	"github.com/kilianp07/evoroute/core/engine"
)

// Solver is the read side of the optimizer consumed by the handlers.
type Solver interface {
	Best() (archive.Record, bool)
	History() []engine.Generation
}

// NewBestHandler returns an HTTP handler exposing the current best solution
// via GET /api/solutions/best.
func NewBestHandler(solver Solver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		rec, ok := solver.Best()
		if !ok {
			http.Error(w, "no solution yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rec); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// NewHistoryHandler returns an HTTP handler exposing generation summaries via
// GET /api/solutions/history. A limit query parameter keeps the most recent
// entries.
func NewHistoryHandler(solver Solver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		hist := solver.History()
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 && n < len(hist) {
				hist = hist[len(hist)-n:]
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(hist); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
