package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gpuprogram"
)

// run executes wgslgen with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { gpuprogram.SetLogger(nil) })

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)

	for _, exp := range []string{"wgslgen version:", "Git commit:", "Build date:", "gpuprogram version: " + gpuprogram.Version, "Go version:"} {
		assert.Contains(t, out, exp)
	}
}

func TestOpsCommand(t *testing.T) {
	out, err := run(t, "ops")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 20)
	assert.True(t, strings.HasPrefix(lines[0], "OP"))
	assert.Contains(t, out, "LeakyRelu")
	assert.Contains(t, out, "alpha=0.01")
	assert.Contains(t, out, "f32,f16,i32")
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default", []string{"key", "Abs"}, "Abs:1:1:f32;"},
		{"f16", []string{"key", "Sigmoid", "--type", "f16", "--shape", "8,128"}, "Sigmoid:1:1:f16;"},
		{"attribute", []string{"key", "LeakyRelu", "--attr", "alpha=0.5"}, "LeakyRelu[alpha=0.5]:1:1:f32;"},
		{"rebalanced dispatch", []string{"key", "Abs", "--shape", "100000000"}, "Abs:0:1:f32;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestGenCommandNull(t *testing.T) {
	out, err := run(t, "--backend", "null", "gen", "Abs", "--shape", "1000", "--layout")
	require.NoError(t, err)

	assert.Contains(t, out, "// key: Abs:1:1:f32;\n")
	assert.Contains(t, out, "// backend: null\n")
	assert.Contains(t, out, "// workgroup size: [64 1 1], dispatch: [4 1 1]\n")
	assert.Contains(t, out, "// binding 2: uniform (16 bytes)\n")
	assert.Contains(t, out, "// uniform 0: 1 x u32 at offset 0, 4 bytes\n")
	assert.Contains(t, out, "y[global_idx]=abs(a);")
}

func TestGenCommandNative(t *testing.T) {
	out, err := run(t, "--backend", "native", "gen", "Sigmoid", "--shape", "64")
	if errors.Is(err, gpuprogram.ErrCompilationFailure) {
		t.Skipf("naga does not compile generated shaders: %v", err)
	}
	require.NoError(t, err)
	assert.Contains(t, out, "fn main(")
}

func TestGenCommandConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wgslgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: \"null\"\ndevice:\n  shader_f16: true\n"), 0o644))

	out, err := run(t, "--config", path, "gen", "Relu", "--type", "f16")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "enable f16;\n"))

	// Without the feature the f16 program is rejected.
	_, err = run(t, "--backend", "null", "gen", "Relu", "--type", "f16")
	assert.ErrorIs(t, err, gpuprogram.ErrUnsupportedFeature)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown op", []string{"key", "Frobnicate"}},
		{"unknown type", []string{"key", "Abs", "--type", "f64"}},
		{"bad shape", []string{"key", "Abs", "--shape", "2,x"}},
		{"empty shape", []string{"key", "Abs", "--shape", "0,3"}},
		{"bad attribute", []string{"key", "LeakyRelu", "--attr", "alpha=steep"}},
		{"unsupported type", []string{"key", "Sqrt", "--type", "i32"}},
		{"unknown backend", []string{"--backend", "metal", "gen", "Abs"}},
		{"bad log level", []string{"--log-level", "loud", "ops"}},
		{"missing op", []string{"gen"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
