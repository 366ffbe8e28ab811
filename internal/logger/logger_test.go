package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "json", Level: slog.LevelInfo})

	log.Info("recipe created", "recipe_id", "rcp-1")

	out := buf.String()
	assert.Contains(t, out, `"msg":"recipe created"`)
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, `"recipe_id":"rcp-1"`)
}

func TestNew_FormatFromEnvironment(t *testing.T) {
	tests := []struct {
		env      string
		wantJSON bool
	}{
		{"production", true},
		{"staging", false},
		{"development", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			New(Config{Writer: &buf, Environment: tt.env, Level: slog.LevelInfo}).Info("hello")
			assert.Equal(t, tt.wantJSON, bytes.HasPrefix(buf.Bytes(), []byte("{")), buf.String())
		})
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "json", Level: slog.LevelWarn})

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestPrettyHandler_Line(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "pretty", Level: slog.LevelDebug})

	log.Debug("cart exported", "user_id", "usr-1", "items", 3)

	out := buf.String()
	assert.Contains(t, out, "DBG")
	assert.Contains(t, out, "cart exported")
	assert.Contains(t, out, "user_id=usr-1")
	assert.Contains(t, out, "items=3")
	assert.Equal(t, byte('\n'), out[len(out)-1])
}

func TestPrettyHandler_GroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "pretty", Level: slog.LevelInfo})

	log.With("component", "store").WithGroup("db").Info("opened", "path", "/tmp/x.db")
	out := buf.String()

	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, "db.path=/tmp/x.db")
}

func TestPrettyHandler_QuotesSpaces(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "pretty", Level: slog.LevelInfo})

	log.Info("x", "name", "Список покупок")
	assert.Contains(t, buf.String(), `name="Список покупок"`)
}

func TestPrettyHandler_InlineGroup(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "pretty", Level: slog.LevelInfo})

	log.Info("req", slog.Group("http", slog.Int("status", 201)))
	assert.Contains(t, buf.String(), "http.status=201")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "json", Level: slog.LevelInfo})

	log.Component("api").Error("failed", "error", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"component":"api"`)
}

func TestPrettyHandler_NilOptions(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)
	require.NotNil(t, h)

	slog.New(h).Info("ok")
	assert.Contains(t, buf.String(), "INF")
}
