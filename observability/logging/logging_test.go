package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupRenamesKeysAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("csphered", "test", Options{Level: "warn", Output: &buf})
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil))) })

	logger.Info("dropped")
	logger.Warn("kept", slog.String("op", "mint"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var record map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &record))
	require.Equal(t, "kept", record["message"])
	require.Equal(t, "WARN", record["severity"])
	require.Equal(t, "csphered", record["service"])
	require.Equal(t, "test", record["env"])
	require.Equal(t, "mint", record["op"])
	require.Contains(t, record, "timestamp")
}

func TestSetupWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.log")
	var buf bytes.Buffer
	logger := Setup("csphered", "", Options{File: path, Output: &buf})
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil))) })

	logger.Info("hello")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"message":"hello"`)
	require.Contains(t, buf.String(), `"message":"hello"`)
}

func TestMaskField(t *testing.T) {
	require.Equal(t, RedactedValue, MaskField("account", "csp1xyz").Value.String())
	require.Equal(t, "mint", MaskField("op", "mint").Value.String())
	require.Equal(t, "abc", MaskField("opId", "abc").Value.String())
	require.Equal(t, " ", MaskField("account", " ").Value.String())
	require.Contains(t, RedactionAllowlist(), "outcome")
}
