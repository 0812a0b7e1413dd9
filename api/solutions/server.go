package solutions

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/kilianp07/evoroute/core/archive"
)

// StartServer serves the solutions API on the given address until the context
// is canceled. The archive endpoint is mounted only when a store is provided.
func StartServer(ctx context.Context, addr, token string, solver Solver, store archive.Store) error {
	mux := http.NewServeMux()
	mux.Handle("/api/solutions/best", NewBestHandler(solver))
	mux.Handle("/api/solutions/history", NewHistoryHandler(solver))
	if store != nil {
		mux.Handle("/api/solutions/archive", NewArchiveHandler(store, token))
	}
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("api server shutdown: %v", err)
		}
		cancel()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
