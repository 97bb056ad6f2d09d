package server

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestWebLogger_TagsMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWebLogger("render-7", log.New(&buf, "", 0))

	logger.Printf("Scanlines remaining: %d\n", 3)
	logger.Printf("Done.\n")

	expected := "[render-7] Scanlines remaining: 3\n[render-7] Done.\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestWebLogger_MultipleRenders(t *testing.T) {
	var buf bytes.Buffer
	base := log.New(&buf, "", 0)

	first := NewWebLogger("render-1", base)
	second := NewWebLogger("render-2", base)
	first.Printf("a")
	second.Printf("b")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || lines[0] != "[render-1] a" || lines[1] != "[render-2] b" {
		t.Errorf("Unexpected log lines: %q", lines)
	}
}
