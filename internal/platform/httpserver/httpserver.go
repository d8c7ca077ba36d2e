package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// New wraps handler in a server with bounded header, body and idle times.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Run serves until ctx is done or the listener fails. On cancellation
// in-flight requests get shutdownTimeout to finish.
func Run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	served := make(chan error, 1)
	go func() {
		served <- srv.ListenAndServe()
	}()

	select {
	case err := <-served:
		return listenErr(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return listenErr(<-served)
}

func listenErr(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
