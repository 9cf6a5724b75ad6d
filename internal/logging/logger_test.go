package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
		out = append(out, entry)
	}
	return out
}

func TestLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New().SetOutput(&buf)

	l.Info("user registered", map[string]interface{}{"username": "alice"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "user registered", lines[0]["message"])
	assert.Equal(t, "alice", lines[0]["username"])
	assert.Contains(t, lines[0], "timestamp")
	assert.NotContains(t, lines[0], "time")
	_, err := time.Parse(time.RFC3339, lines[0]["timestamp"].(string))
	assert.NoError(t, err)
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New().SetOutput(&buf)

	l.Debug("hidden")
	l.SetLevel(LevelDebug)
	l.Debug("shown")
	l.SetLevel(LevelError)
	l.Warn("hidden too")
	l.Error("boom")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "shown", lines[0]["message"])
	assert.Equal(t, "error", lines[1]["level"])
}

func TestLogger_WithFieldsMerges(t *testing.T) {
	var buf bytes.Buffer
	base := New().SetOutput(&buf)
	child := base.WithField("component", "directory")

	child.Info("op", map[string]interface{}{"op": "login"})
	base.Info("plain")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "directory", lines[0]["component"])
	assert.Equal(t, "login", lines[0]["op"])
	assert.NotContains(t, lines[1], "component")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"nonsense", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
			assert.NotEqual(t, "UNKNOWN", tt.want.String())
		})
	}
}

func TestNop_Discards(t *testing.T) {
	l := Nop()
	l.Error("nothing")
}
