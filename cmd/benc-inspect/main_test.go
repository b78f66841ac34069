package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oy3o/benc"
	"github.com/oy3o/benc/internal/layout"
)

func runInspect(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunYAML(t *testing.T) {
	// (u8, string, ?bool) = 5, "hi", absent
	out, _, err := runInspect(t, "05 02 6869 00", "--hex", "-l", "u8, string, ?bool")
	require.NoError(t, err)

	var fields []yamlField
	require.NoError(t, yaml.Unmarshal([]byte(out), &fields))
	require.Len(t, fields, 3)
	assert.Equal(t, yamlField{Layout: "u8", Offset: 0, Length: 1, Value: 5}, fields[0])
	assert.Equal(t, yamlField{Layout: "string", Offset: 1, Length: 3, Value: "hi"}, fields[1])
	assert.Equal(t, yamlField{Layout: "?bool", Offset: 4, Length: 1, Value: nil}, fields[2])
}

func TestRunText(t *testing.T) {
	out, _, err := runInspect(t, "0c48656c6c6f20576f726c6421", "--hex", "--format", "text", "-l", "string")
	require.NoError(t, err)
	assert.Contains(t, out, "string")
	assert.Contains(t, out, "Hello World!")
	assert.Contains(t, out, "+0")
	assert.Contains(t, out, "13")
}

func TestRunSkip(t *testing.T) {
	// Invalid UTF-8 is only reported when decoding.
	out, _, err := runInspect(t, "01ff 07", "--hex", "--skip", "-l", "string, u8")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "+2")
	assert.NotContains(t, out, "7\n", "skip mode prints no values")

	_, _, err = runInspect(t, "01ff 07", "--hex", "-l", "string, u8")
	assert.ErrorIs(t, err, benc.ErrInvalidUTF8)
}

func TestRunFileInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x02, 0x01, 0x02, 0x01, 0x01, 0x01, 0x01}, 0o644))

	out, _, err := runInspect(t, "", "-l", "[]u8", path)
	require.NoError(t, err)
	var fields []yamlField
	require.NoError(t, yaml.Unmarshal([]byte(out), &fields))
	require.Len(t, fields, 1)
	assert.Equal(t, []any{1, 2}, fields[0].Value)
	assert.Equal(t, 7, fields[0].Length)
}

func TestRunErrors(t *testing.T) {
	t.Run("MissingLayout", func(t *testing.T) {
		_, _, err := runInspect(t, "00", "--hex")
		assert.ErrorContains(t, err, "--layout is required")
	})

	t.Run("BadLayout", func(t *testing.T) {
		_, _, err := runInspect(t, "00", "--hex", "-l", "map[bytes]u8")
		assert.ErrorIs(t, err, layout.ErrKeyType)
	})

	t.Run("TrailingData", func(t *testing.T) {
		_, _, err := runInspect(t, "0102", "--hex", "-l", "u8")
		assert.ErrorIs(t, err, benc.ErrTrailingData)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, _, err := runInspect(t, "0102", "--hex", "-l", "u8, u32")
		assert.ErrorIs(t, err, benc.ErrBufferTooSmall)
		assert.ErrorContains(t, err, "field 1 (u32) at offset 1")
	})

	t.Run("BadHex", func(t *testing.T) {
		_, _, err := runInspect(t, "zz", "--hex", "-l", "u8")
		assert.ErrorContains(t, err, "decoding hex from stdin")
	})

	t.Run("BadFormat", func(t *testing.T) {
		_, _, err := runInspect(t, "00", "--hex", "--format", "json", "-l", "u8")
		assert.ErrorContains(t, err, "unknown --format")
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		_, _, err := runInspect(t, "00", "--hex", "--log-level", "loud", "-l", "u8")
		assert.ErrorContains(t, err, "invalid --log-level")
	})

	t.Run("Help", func(t *testing.T) {
		_, stderr, err := runInspect(t, "", "--help")
		assert.ErrorIs(t, err, pflag.ErrHelp)
		assert.Contains(t, stderr, "Usage: benc-inspect")
	})
}

func TestRunDebugLogging(t *testing.T) {
	_, stderr, err := runInspect(t, "00", "--hex", "--log-level", "debug", "-l", "bool")
	require.NoError(t, err)
	assert.Contains(t, stderr, "parsed layout")
	assert.Contains(t, stderr, "bytes=1")
}

func TestYAMLValue(t *testing.T) {
	assert.Equal(t, "cafe", yamlValue([]byte{0xCA, 0xFE}))
	assert.Equal(t, "(1+2i)", yamlValue(complex(1, 2)))
	assert.Equal(t, []any{"00", uint8(1)}, yamlValue([]any{[]byte{0}, uint8(1)}))
	assert.Equal(t, map[any]any{"k": "(0+1i)"}, yamlValue(map[any]any{"k": complex64(1i)}))
}
