package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vlang-lab/vlang/internal/cli"
)

func TestRunDispatch(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "main.vl")
	os.WriteFile(script, []byte("println(\"hi\");\n"), 0o644)
	config := filepath.Join(dir, "vlang.yaml")
	os.WriteFile(config, []byte("float_precision: 2\n"), 0o644)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{"no args", nil, cli.ExitUsage, "", "COMMANDS:"},
		{"help", []string{"help"}, cli.ExitOK, "", "run"},
		{"version flag", []string{"--version"}, cli.ExitOK, "vlang v", ""},
		{"unknown", []string{"frobnicate"}, cli.ExitUsage, "", "unknown subcommand"},
		{"run", []string{"run", script}, cli.ExitOK, "hi\n", ""},
		{"config", []string{"--config", config, "--color", "never", "run", script}, cli.ExitOK, "hi\n", ""},
		{"missing config", []string{"--config", filepath.Join(dir, "nope.yaml"), "version"}, cli.ExitError, "", "config"},
		{"bad color", []string{"--color", "purple", "version"}, cli.ExitUsage, "", "color"},
		{"bad flag", []string{"--frob"}, cli.ExitUsage, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			code := run(tt.args, &out, &errOut)
			if code != tt.wantCode {
				t.Fatalf("exit = %d, want %d\nstderr: %s", code, tt.wantCode, errOut.String())
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("stdout %q does not contain %q", out.String(), tt.wantOut)
			}
			if !strings.Contains(errOut.String(), tt.wantErr) {
				t.Errorf("stderr %q does not contain %q", errOut.String(), tt.wantErr)
			}
		})
	}
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	cfg := cli.DefaultConfig()
	if useColor(cfg, &buf) {
		t.Error("auto should not color a buffer")
	}
	cfg.Color = cli.ColorAlways
	if !useColor(cfg, &buf) {
		t.Error("always should color a buffer")
	}
}
