package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := ContextWithLogger(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Fatal("expected the attached logger back")
	}
	if got := FromContext(context.Background()); got != nil {
		t.Fatalf("expected nil for a bare context, got %v", got)
	}
}

func TestWithChatPrefersContextLogger(t *testing.T) {
	t.Parallel()

	var contextBuf, fallbackBuf bytes.Buffer
	contextLogger := slog.New(slog.NewTextHandler(&contextBuf, nil))
	fallback := slog.New(slog.NewTextHandler(&fallbackBuf, nil))

	ctx := ContextWithLogger(context.Background(), contextLogger)
	WithChat(ctx, fallback, "chat-1").Info("hello")

	if !strings.Contains(contextBuf.String(), "chat_id=chat-1") {
		t.Fatalf("expected the context logger to receive the record: %q", contextBuf.String())
	}
	if fallbackBuf.Len() != 0 {
		t.Fatalf("fallback logger must stay silent: %q", fallbackBuf.String())
	}
}

func TestWithChatFallsBack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fallback := slog.New(slog.NewTextHandler(&buf, nil))

	WithChat(context.Background(), fallback, "chat-2").Info("hello")

	if !strings.Contains(buf.String(), "chat_id=chat-2") {
		t.Fatalf("expected the fallback logger to receive the record: %q", buf.String())
	}
}
