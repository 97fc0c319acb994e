package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestTimeLogsRequestIDAndError(t *testing.T) {
	buf := captureLog(t)

	ctx, id := WithRequestID(context.Background(), "abc123")
	if id != "abc123" {
		t.Fatalf("id = %q, want abc123", id)
	}

	err := errors.New("boom")
	Time(ctx, "dataset.load")(&err)

	line := buf.String()
	for _, want := range []string{"req_id=abc123", "op=dataset.load", "err=boom"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
}

func TestWithRequestIDGeneratesID(t *testing.T) {
	ctx, id := WithRequestID(context.Background(), "")
	if len(id) != 16 {
		t.Fatalf("generated id %q, want 16 hex chars", id)
	}
	if RequestID(ctx) != id {
		t.Fatalf("RequestID(ctx) = %q, want %q", RequestID(ctx), id)
	}
}
