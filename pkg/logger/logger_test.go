package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerErrorIncludesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})

	ctx := context.Background()
	ctx = log.WithLandID(ctx, "land-123")
	ctx = log.WithFarmerID(ctx, "farmer-456")
	ctx = log.WithSlot(ctx, "lands")

	log.Error(ctx, "boom", errors.New("boom"))

	for _, field := range []string{"\"land_id\"", "\"farmer_id\"", "\"slot\""} {
		if !bytes.Contains(buf.Bytes(), []byte(field)) {
			t.Fatalf("expected %s to be preserved; entry=%s", field, buf.String())
		}
	}
}

func TestLoggerWithFieldsChains(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})

	ctx := log.WithFields(context.Background(), map[string]any{
		"slot": "lands",
		"op":   "add",
	})
	log.Info(ctx, "mutated")

	if !bytes.Contains(buf.Bytes(), []byte("\"slot\"")) {
		t.Fatalf("expected slot field; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("\"op\"")) {
		t.Fatalf("expected op field; entry=%s", buf.String())
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if lvl := ParseLevel(""); lvl != zerolog.InfoLevel {
		t.Fatalf("expected default info level, got %v", lvl)
	}
	if lvl := ParseLevel("invalid"); lvl != zerolog.InfoLevel {
		t.Fatalf("invalid level should fallback to info, got %v", lvl)
	}
}
