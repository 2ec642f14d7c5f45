package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafiki18/archviz/pkg/errors"
)

const sampleDOT = `digraph "sample" { a -> b; }`

// fakeDot writes an executable shell script that stands in for the dot binary.
func fakeDot(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "dot")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// Arguments are: -Tpng <ir> -o <out>
const (
	copyScript  = `cp "$2" "$4"`
	failScript  = `echo "Error: syntax error in line 1 near '->'" >&2; exit 1`
	emptyScript = `: > "$4"`
	slowScript  = `exec sleep 5`
)

func TestCommandSuccess(t *testing.T) {
	bin := fakeDot(t, copyScript)
	out := filepath.Join(t.TempDir(), "sample.png")

	err := NewCommand(WithBinary(bin)).Render(context.Background(), []byte(sampleDOT), out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, sampleDOT, string(data))

	assert.NoFileExists(t, IRPath(out), "intermediate file must be removed after success")
	assertNoTempFiles(t, filepath.Dir(out))
}

func TestCommandFailure(t *testing.T) {
	bin := fakeDot(t, failScript)
	out := filepath.Join(t.TempDir(), "broken.png")

	err := NewCommand(WithBinary(bin)).Render(context.Background(), []byte("digraph {"), out)
	require.Error(t, err)

	assert.True(t, IsFailure(err))
	assert.False(t, IsTimeout(err))
	assert.Contains(t, Stderr(err), "syntax error in line 1")
	assert.NoFileExists(t, out)
	assert.NoFileExists(t, IRPath(out))
	assertNoTempFiles(t, filepath.Dir(out))
}

func TestCommandFailureKeepsIR(t *testing.T) {
	bin := fakeDot(t, failScript)
	out := filepath.Join(t.TempDir(), "broken.png")

	err := NewCommand(WithBinary(bin), WithKeepIR(true)).Render(context.Background(), []byte("digraph {"), out)
	require.Error(t, err)

	data, readErr := os.ReadFile(IRPath(out))
	require.NoError(t, readErr)
	assert.Equal(t, "digraph {", string(data))
	assert.NoFileExists(t, out)
}

func TestCommandKeepIRRemovedOnSuccess(t *testing.T) {
	bin := fakeDot(t, copyScript)
	out := filepath.Join(t.TempDir(), "ok.png")

	require.NoError(t, NewCommand(WithBinary(bin), WithKeepIR(true)).Render(context.Background(), []byte(sampleDOT), out))
	assert.NoFileExists(t, IRPath(out))
	assert.FileExists(t, out)
}

func TestCommandEmptyOutput(t *testing.T) {
	bin := fakeDot(t, emptyScript)
	out := filepath.Join(t.TempDir(), "empty.png")

	err := NewCommand(WithBinary(bin)).Render(context.Background(), []byte(sampleDOT), out)
	require.Error(t, err)
	assert.True(t, IsFailure(err))
	assert.NoFileExists(t, out)
}

func TestCommandTimeout(t *testing.T) {
	bin := fakeDot(t, slowScript)
	out := filepath.Join(t.TempDir(), "slow.png")

	start := time.Now()
	err := NewCommand(WithBinary(bin), WithTimeout(100*time.Millisecond)).Render(context.Background(), []byte(sampleDOT), out)
	require.Error(t, err)

	assert.True(t, IsTimeout(err))
	assert.True(t, IsFailure(err), "a timeout is also a render failure")
	assert.Less(t, time.Since(start), 4*time.Second)
	assert.NoFileExists(t, out)
	assert.NoFileExists(t, IRPath(out))
}

func TestCommandPreservesPreviousImageOnFailure(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "stable.png")
	require.NoError(t, os.WriteFile(out, []byte("old image"), 0o644))

	err := NewCommand(WithBinary(fakeDot(t, failScript))).Render(context.Background(), []byte(sampleDOT), out)
	require.Error(t, err)

	data, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, "old image", string(data))
}

func TestCommandMissingBinary(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.png")
	err := NewCommand(WithBinary("archviz-no-such-binary")).Render(context.Background(), []byte(sampleDOT), out)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeRendererMissing))
	assert.Contains(t, errors.UserMessage(err), "brew install graphviz")
	assert.NoFileExists(t, IRPath(out))
}

func TestIRPath(t *testing.T) {
	tests := map[string]string{
		"out/aws_architecture.png": "out/aws_architecture.dot",
		"er.png":                   "er.dot",
		"noext":                    "noext.dot",
	}
	for in, want := range tests {
		assert.Equal(t, want, IRPath(in), in)
	}
}

func TestGraphvizRender(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in-process graphviz in short mode")
	}
	out := filepath.Join(t.TempDir(), "sample.png")

	require.NoError(t, NewGraphviz().Render(context.Background(), []byte(sampleDOT), out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "expected PNG signature")
	assertNoTempFiles(t, filepath.Dir(out))
}

func TestGraphvizInvalidDOT(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in-process graphviz in short mode")
	}
	out := filepath.Join(t.TempDir(), "bad.png")

	err := NewGraphviz().Render(context.Background(), []byte("digraph { a -> "), out)
	require.Error(t, err)
	assert.True(t, IsFailure(err))
	assert.NoFileExists(t, out)
}

func TestFunc(t *testing.T) {
	var got string
	r := Func(func(_ context.Context, ir []byte, _ string) error {
		got = string(ir)
		return nil
	})
	require.NoError(t, r.Render(context.Background(), []byte("x"), "x.png"))
	assert.Equal(t, "x", got)
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "a.png")

	require.NoError(t, writeAtomic(out, []byte("png")))
	assert.FileExists(t, out)

	err := writeAtomic(filepath.Join(dir, "b.png"), nil)
	assert.True(t, IsFailure(err))
	assert.NoFileExists(t, filepath.Join(dir, "b.png"))
	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
