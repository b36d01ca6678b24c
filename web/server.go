package web

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// context is canceled.
const shutdownTimeout = 5 * time.Second

// Serve serves handler on ln until ctx is canceled, then shuts the server
// down gracefully.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, logger logrus.FieldLogger) error {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Both *logrus.Logger and *logrus.Entry can back the server's error log.
	if w, ok := logger.(interface {
		WriterLevel(logrus.Level) *io.PipeWriter
	}); ok {
		errorLog := w.WriterLevel(logrus.WarnLevel)
		defer errorLog.Close()
		server.ErrorLog = log.New(errorLog, "", 0)
	}

	listenErrs := make(chan error, 1)
	go func() {
		listenErrs <- server.Serve(ln)
	}()
	logger.WithField("addr", ln.Addr().String()).Info("listening")

	select {
	case err := <-listenErrs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server stopped")
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		shutdownErr := server.Shutdown(shutdownCtx)
		cancel()
		listenErr := <-listenErrs
		if errors.Is(listenErr, http.ErrServerClosed) {
			listenErr = nil
		}
		return errors.Join(shutdownErr, listenErr)
	}
}
