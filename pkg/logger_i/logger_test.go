package logger_i

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/akolanti/LegalDocAPI/internal/config"
)

func TestLogger_FollowsInitAndCarriesTrace(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	// created before Init, like package level loggers
	l := NewLogger("Test")

	var buf bytes.Buffer
	InitWithWriter(&buf, true)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "trace-1")
	l.WithContext(ctx).With("doc_id", "abcd1234").Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "Test" || entry["doc_id"] != "abcd1234" || entry[string(config.TRACE_ID_KEY)] != "trace-1" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestLogger_ProdDropsDebug(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	var buf bytes.Buffer
	InitWithWriter(&buf, true)
	NewLogger("Test").Debug("hidden")

	if buf.Len() != 0 {
		t.Errorf("debug should be filtered in production, got %q", buf.String())
	}
}
