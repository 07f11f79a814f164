// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/schemconvert/internal/codec"
	"github.com/pdiddy/schemconvert/internal/format"
	"github.com/pdiddy/schemconvert/pkg/types"
)

// seedFolder creates dataDir/name holding one valid Sponge v3 file.
func seedFolder(t *testing.T, dataDir, name string) string {
	t.Helper()
	dir := filepath.Join(dataDir, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	desc, _ := format.Resolve("sponge")
	c, err := codec.For(desc)
	require.NoError(t, err)
	require.NoError(t, codec.Save(c, filepath.Join(dir, "hut.schem"), &types.Clipboard{
		Width: 1, Height: 1, Length: 1,
		Palette: []string{"minecraft:glass"},
		Blocks:  []int{0},
	}))
	return dir
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}

func TestPrintFormats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printFormats(&buf))

	out := buf.String()
	for _, d := range format.All() {
		assert.Contains(t, out, d.Name)
	}
	assert.Contains(t, out, "sponge.2")
	assert.Contains(t, out, ".nbt")
}

func TestRunConsole(t *testing.T) {
	dataDir := t.TempDir()
	builds := seedFolder(t, dataDir, "builds")

	var out, logs bytes.Buffer
	a, err := newApp(types.ConverterConfig{DataDir: dataDir, Workers: 2, LogLevel: "debug", Metrics: true}, &out, &logs)
	require.NoError(t, err)

	input := strings.Join([]string{
		"bulkconvert builds sponge yaml",
		"",
		"/bulkconvert nowhere sponge",
		"help",
		"frobnicate",
		"exit",
		"bulkconvert builds sponge",
	}, "\n")
	require.NoError(t, runConsole(context.Background(), strings.NewReader(input), a))
	a.close(context.Background())

	text := out.String()
	assert.Contains(t, text, "Converting 1 files...")
	assert.Contains(t, text, "Converted hut.schem")
	assert.Contains(t, text, "Done! Conversion complete:")
	assert.Contains(t, text, "Folder nowhere does not exist")
	assert.Contains(t, text, "Commands:")
	assert.Contains(t, text, `Unknown command "frobnicate"`)
	assert.Equal(t, 1, strings.Count(text, "Done! Conversion complete:"), "input after exit is ignored")

	_, err = os.Stat(filepath.Join(builds, "converted", "hut.yaml"))
	assert.NoError(t, err)
	assert.Contains(t, logs.String(), "schemconvert_files_total")
}

func TestBulkconvertCommand(t *testing.T) {
	dataDir := t.TempDir()
	builds := seedFolder(t, dataDir, "builds")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"bulkconvert", "--data-dir", dataDir, "--no-color", "builds", "sponge", "structure", "out"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "• To: MINECRAFT_STRUCTURE")

	_, err := os.Stat(filepath.Join(builds, "out", "hut.nbt"))
	assert.NoError(t, err)
}
