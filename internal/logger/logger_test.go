package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebug_OnlyWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
	})

	SetVerbose(false)
	Debug("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("expected no output when not verbose, got %q", buf.String())
	}

	SetVerbose(true)
	Debug("shown %d", 2)
	Warn("careful")
	Section("sync")

	out := buf.String()
	for _, want := range []string{"[DEBUG] shown 2\n", "[WARN] careful\n", "=== sync ==="} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
}
