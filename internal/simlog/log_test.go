package simlog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

type fixedTick uint64

func (f fixedTick) CurrentTick() uint64 { return uint64(f) }

func TestLogTagsCategoryAndTick(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))
	log := New(base, fixedTick(42))

	log.Gameplay("crop ripened", "kind", "wheat")

	out := buf.String()
	if !strings.Contains(out, "category=GAMEPLAY") {
		t.Fatalf("expected category=GAMEPLAY in output, got %q", out)
	}
	if !strings.Contains(out, "tick=42") {
		t.Fatalf("expected tick=42 in output, got %q", out)
	}
}

func TestSetTickSourceRebinds(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))
	log := New(base, nil)
	log.System("before binding")
	log.SetTickSource(fixedTick(9))
	log.System("after binding")

	out := buf.String()
	if strings.Count(out, "tick=9") != 1 {
		t.Fatalf("expected exactly one tick=9 line, got %q", out)
	}
}
