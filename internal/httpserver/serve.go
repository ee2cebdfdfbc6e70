package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/EmpoweredVote/roster-backend/internal/logutil"
)

// Serve runs the handler on bind until ctx is cancelled, then drains
// in-flight requests before returning.
func Serve(ctx context.Context, bind string, handler http.Handler) error {
	server := http.Server{
		Handler:           handler,
		Addr:              bind,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute * 2,
	}
	err := make(chan error, 1)
	done := make(chan struct{})
	go serveInBackground(ctx, &server, err, done)
	<-done
	return <-err
}

func serveInBackground(ctx context.Context, server *http.Server, firstErr chan<- error, done chan<- struct{}) {
	log := logutil.GetOrDefault(ctx).With().Str("server.addr", server.Addr).Logger()
	defer close(done)
	serverCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer cancel()
		defer close(firstErr)
		log.Info().Msg("Starting HTTP server")
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			log.Info().Msg("Server closed")
			return
		} else if err != nil {
			select {
			case firstErr <- err:
			default:
			}
			return
		}
	}()
	<-serverCtx.Done()
	if ctx.Err() == nil {
		// listener failed on its own
		return
	}
	log.Info().Msg("Initiating shutdown process")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Shutdown completed")
}
