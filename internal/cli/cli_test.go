package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigFormats(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "vlang.yaml")
	yamlSrc := "verbose: true\nfloat_precision: 2\nserve:\n  addr: \":9000\"\nwatch:\n  debounce: 250ms\n"
	if err := os.WriteFile(yamlPath, []byte(yamlSrc), 0644); err != nil {
		t.Fatal(err)
	}

	jsonPath := filepath.Join(dir, "vlang.json")
	if err := os.WriteFile(jsonPath, []byte(`{"debug": true, "max_call_depth": 50}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(yamlPath)
	if err != nil {
		t.Fatalf("LoadConfig(yaml) failed: %v", err)
	}
	if !cfg.Verbose || cfg.FloatPrecision != 2 || cfg.Serve.Addr != ":9000" {
		t.Errorf("unexpected yaml config %+v", cfg)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected 250ms debounce, got %v", cfg.Watch.Debounce)
	}
	if cfg.MaxCallDepth != 1000 {
		t.Errorf("unset fields should keep defaults, got depth %d", cfg.MaxCallDepth)
	}

	cfg, err = LoadConfig(jsonPath)
	if err != nil {
		t.Fatalf("LoadConfig(json) failed: %v", err)
	}
	if !cfg.Debug || cfg.MaxCallDepth != 50 {
		t.Errorf("unexpected json config %+v", cfg)
	}

	cfg, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	if err != nil || cfg.FloatPrecision != 4 {
		t.Errorf("missing file should yield defaults, got %+v, %v", cfg, err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("verbose: [1, 2"), 0644)
	if _, err := LoadConfig(bad); err == nil {
		t.Error("expected a parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"VLANG_VERBOSE": "1",
		"VLANG_COLOR":   "never",
		"VLANG_ADDR":    ":7000",
		"VLANG_HISTORY": "/tmp/h",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := DefaultConfig()
	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatalf("applyEnv failed: %v", err)
	}
	if !cfg.Verbose || cfg.Color != ColorNever || cfg.Serve.Addr != ":7000" || cfg.HistoryFile != "/tmp/h" {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	env["VLANG_DEBUG"] = "maybe"
	if err := cfg.applyEnv(lookup); err == nil {
		t.Error("expected an error for a non-boolean VLANG_DEBUG")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"satisfied constraint", func(c *Config) { c.Requires = ">= 0.1.0" }, false},
		{"unsatisfied constraint", func(c *Config) { c.Requires = "< 0.1.0" }, true},
		{"bad constraint", func(c *Config) { c.Requires = "not a version" }, true},
		{"bad color", func(c *Config) { c.Color = "sometimes" }, true},
		{"bad precision", func(c *Config) { c.FloatPrecision = -1 }, true},
		{"bad depth", func(c *Config) { c.MaxCallDepth = 0 }, true},
		{"negative timeout", func(c *Config) { c.Serve.Timeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			cfg := DefaultConfig()
			cfg.Requires = "^0.3"
			cfg.Serve.Cert = "cert.pem"
			if err := cfg.SaveConfig(path); err != nil {
				t.Fatalf("SaveConfig failed: %v", err)
			}
			loaded, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if loaded.Requires != "^0.3" || loaded.Serve.Cert != "cert.pem" {
				t.Errorf("round trip lost fields: %+v", loaded)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(false, true)
	l.SetOutput(&buf)
	l.Color = false
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Info("hidden %d", 1)
	l.Debug("parsed %d statements", 3)
	l.Warn("careful")
	l.Error("failed: %s", "x")

	want := "[DEBUG] 03:04:05: parsed 3 statements\n[WARN] 03:04:05: careful\n[ERROR] 03:04:05: failed: x\n"
	if buf.String() != want {
		t.Errorf("unexpected log output:\n%s", buf.String())
	}

	buf.Reset()
	l.Color = true
	l.Warn("c")
	if !strings.HasPrefix(buf.String(), colorYellow+"[WARN]"+colorReset) {
		t.Errorf("expected colored tag, got %q", buf.String())
	}
}

func TestIsTerminalOnFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "plain")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f.Fd()) {
		t.Error("a regular file is not a terminal")
	}

	cfg := DefaultConfig()
	cfg.Color = ColorAlways
	if !cfg.UseColor(f.Fd()) {
		t.Error("color always should win")
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf, "vlang", false)
	if !strings.HasPrefix(buf.String(), "vlang v"+Version+"\n") {
		t.Errorf("unexpected version text %q", buf.String())
	}

	buf.Reset()
	PrintVersion(&buf, "vlang", true)
	if !strings.Contains(buf.String(), `"version": "`+Version+`"`) {
		t.Errorf("unexpected version json %q", buf.String())
	}
}
