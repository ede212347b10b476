package bootstrap

import (
	"context"
	"log/slog"

	"github.com/finquest/finquest/internal/event"
	"github.com/finquest/finquest/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server     *server.Server
	DeadLetter *event.DeadLetterWriter
}

// GracefulShutdown performs graceful shutdown of all application components.
// The HTTP server stops first so no new requests arrive, then the dead-letter
// writer is closed once in-flight event retries have had their chance.
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if components.DeadLetter != nil {
		if err := components.DeadLetter.Close(); err != nil {
			slog.Error(LogMsgDeadLetterCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
