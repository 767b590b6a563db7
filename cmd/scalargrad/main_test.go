package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/born-ml/scalargrad/internal/serialization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_Epochs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	out, err := runCLI(t, "", "-epochs", "20", "-samples", "20", "-model", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No. of parameters: 6\n")
	assert.Contains(t, out, "Iteration:     0 | Loss:")
	assert.Contains(t, out, "Total no. of epochs: 20\n")
	assert.Contains(t, out, "MSE: ")

	ckpt, err := serialization.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, ckpt.TotalEpochs)
	assert.Len(t, ckpt.Parameters, 6)

	// A second invocation resumes from the checkpoint.
	out, err = runCLI(t, "", "-epochs", "5", "-samples", "20", "-model", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Restored "+path)
	assert.Contains(t, out, "Total no. of epochs: 25\n")
}

func TestRun_DefaultModelPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := runCLI(t, "", "-epochs", "3", "-samples", "10", "-hidden-layers", "2", "-neurons", "2")
	require.NoError(t, err)

	// Widths [2, 2, 2, 1]: 4 + 6 + 6 + 3.
	assert.FileExists(t, filepath.Join(dir, "model_19.json"))
}

func TestRun_Interactive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	out, err := runCLI(t, "abc\n4\n-2\n6\n0\n", "-samples", "10", "-model", path, "-report", "-1")
	require.NoError(t, err)

	assert.Equal(t, 5, strings.Count(out, "Enter no. of epochs: "))
	assert.Contains(t, out, "Total no. of epochs: 4\n")
	assert.Contains(t, out, "Total no. of epochs: 10\n")
	assert.NotContains(t, out, "Iteration:")
}

func TestRun_InteractiveEOF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	out, err := runCLI(t, "2\n", "-samples", "10", "-model", path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Enter no. of epochs: "))
	assert.FileExists(t, path)
}

func TestRun_Cancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	err := run(ctx, []string{"-epochs", "100", "-samples", "10", "-model", path}, strings.NewReader(""), &stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Interrupted after 0 epochs")
}

func TestRun_BadFlags(t *testing.T) {
	tests := [][]string{
		{"-activation", "swish"},
		{"-neurons", "0"},
		{"-hidden-layers", "-1"},
		{"-samples", "0"},
		{"-epochs", "-3"},
		{"-momentum", "1.5"},
		{"-lr", "-0.1"},
		{"-optimizer", "rmsprop"},
		{"-optimizer", "adam", "-momentum", "0.9"},
		{"-init", "he"},
		{"--neurons-per-layer", "0"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := runCLI(t, "", args...)
			assert.Error(t, err)
		})
	}

	_, err := runCLI(t, "", "-h")
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestRun_CorruptCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	_, err := runCLI(t, "", "-epochs", "2", "-samples", "10", "-model", path)
	require.NoError(t, err)

	// Same file, different architecture.
	_, err = runCLI(t, "", "-epochs", "2", "-samples", "10", "-neurons", "3", "-model", path)
	assert.ErrorIs(t, err, serialization.ErrArchitectureMismatch)
}

func TestRun_NeuronsPerLayer(t *testing.T) {
	for _, name := range []string{"-neurons", "--neurons-per-layer"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "model.json")
			out, err := runCLI(t, "", "-epochs", "1", "-samples", "10", name, "3", "-model", path)
			require.NoError(t, err)

			// Widths [3, 3, 1]: 6 + 12 + 4.
			assert.Contains(t, out, "No. of parameters: 22\n")
		})
	}
}

func TestRun_Adam(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	_, err := runCLI(t, "", "-epochs", "5", "-samples", "10", "-optimizer", "adam", "-lr", "0.001", "-model", path)
	require.NoError(t, err)

	ckpt, err := serialization.Load(path)
	require.NoError(t, err)
	require.NotNil(t, ckpt.Optimizer)
	assert.Equal(t, "adam", ckpt.Optimizer.Type)
	assert.Equal(t, 5, ckpt.Optimizer.Step)
	assert.Len(t, ckpt.Optimizer.Buffers["m"], 6)

	out, err := runCLI(t, "", "-epochs", "2", "-samples", "10", "-optimizer", "adam", "-lr", "0.001", "-model", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Total no. of epochs: 7\n")

	ckpt, err = serialization.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, ckpt.Optimizer.Step)
}

func TestRun_XavierInit(t *testing.T) {
	dir := t.TempDir()
	uniform := filepath.Join(dir, "uniform.json")
	xavier := filepath.Join(dir, "xavier.json")

	_, err := runCLI(t, "", "-epochs", "1", "-samples", "10", "-model", uniform)
	require.NoError(t, err)
	_, err = runCLI(t, "", "-epochs", "1", "-samples", "10", "-init", "xavier", "-model", xavier)
	require.NoError(t, err)

	a, err := serialization.Load(uniform)
	require.NoError(t, err)
	b, err := serialization.Load(xavier)
	require.NoError(t, err)
	assert.NotEqual(t, a.Parameters, b.Parameters)
}

// endless yields "1\n" forever.
type endless struct{}

func (endless) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = "1\n"[i%2]
	}
	return len(p) - len(p)%2, nil
}

// TestReadLines_Done tests that the reader goroutine exits when the prompt
// loop stops listening while input remains.
func TestReadLines_Done(t *testing.T) {
	done := make(chan struct{})
	lines := readLines(endless{}, done)

	assert.Equal(t, "1", <-lines)
	close(done)

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-lines:
			return !ok
		default:
			return false
		}
	}, time.Second, time.Millisecond)
}
