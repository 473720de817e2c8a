package contextutil

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestLoggerRoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithLogger(context.Background(), logger)

	if got := LoggerFromContext(ctx); got != logger {
		t.Error("LoggerFromContext() did not return the stored logger")
	}
}

func TestLoggerFromContext_Fallback(t *testing.T) {
	if got := LoggerFromContext(context.Background()); got == nil {
		t.Error("LoggerFromContext() returned nil for a bare context")
	}
}
