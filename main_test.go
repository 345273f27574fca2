package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"spheregrid scene", "spheregrid", false},
		{"unknown scene", "nonexistent", true},
		{"missing json file", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
				t.Errorf("Scene size should be positive, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
			}
		})
	}

	if _, err := createScene(""); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene for empty name, got %v", err)
	}
}

func TestParseFlags(t *testing.T) {
	config, err := parseFlags([]string{"-scene", "spheregrid", "-width", "64", "-samples", "8",
		"-depth", "4", "-workers", "2", "-seed", "5", "-integrator", "iterative", "-out", "x.png"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}

	expected := Config{
		SceneType:      "spheregrid",
		Width:          64,
		Samples:        8,
		MaxDepth:       4,
		Workers:        2,
		Seed:           5,
		IntegratorType: "iterative",
		Output:         "x.png",
	}
	if config != expected {
		t.Errorf("Expected %+v, got %+v", expected, config)
	}

	defaults, err := parseFlags(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags with no args failed: %v", err)
	}
	if defaults.SceneType != "default" || defaults.Output != "-" || defaults.IntegratorType != "recursive" {
		t.Errorf("Unexpected defaults %+v", defaults)
	}

	for _, args := range [][]string{{"-samples", "-1"}, {"-bogus"}, {"extra"}} {
		if _, err := parseFlags(args, &bytes.Buffer{}); err == nil {
			t.Errorf("Expected error for args %v", args)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	s, err := createScene("default")
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}

	applyOverrides(s, Config{Width: 160, Samples: 7, MaxDepth: 3, Seed: 11})

	cfg := s.SamplingConfig
	if cfg.Width != 160 || cfg.Height != 90 || cfg.SamplesPerPixel != 7 || cfg.MaxDepth != 3 || cfg.Seed != 11 {
		t.Errorf("Unexpected sampling config after overrides %+v", cfg)
	}
}

func TestCreateIntegrator(t *testing.T) {
	s, _ := createScene("default")

	recursive, err := createIntegrator("recursive", s)
	if err != nil {
		t.Fatalf("recursive integrator failed: %v", err)
	}
	if _, ok := recursive.(*integrator.PathTracingIntegrator); !ok {
		t.Errorf("Expected PathTracingIntegrator, got %T", recursive)
	}

	iterative, err := createIntegrator("iterative", s)
	if err != nil {
		t.Fatalf("iterative integrator failed: %v", err)
	}
	if _, ok := iterative.(*integrator.IterativePathTracingIntegrator); !ok {
		t.Errorf("Expected IterativePathTracingIntegrator, got %T", iterative)
	}

	if _, err := createIntegrator("bdpt", s); err == nil {
		t.Error("Expected error for unknown integrator")
	}
}

func TestRunWritesPPMToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-width", "16", "-samples", "2", "-depth", "3", "-workers", "2"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run failed: %v\nstderr: %s", err, stderr.String())
	}

	// 16 wide at 16:9 is 9 rows
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3+16*9 {
		t.Fatalf("Expected %d lines of PPM, got %d", 3+16*9, len(lines))
	}
	if lines[0] != "P3" || lines[1] != "16 9" || lines[2] != "255" {
		t.Errorf("Unexpected PPM header %q", lines[:3])
	}
	if !strings.Contains(stderr.String(), "Rendering scene") {
		t.Errorf("Expected progress on stderr, got %q", stderr.String())
	}
}

func TestRunIsDeterministic(t *testing.T) {
	render := func(workers string) string {
		var stdout bytes.Buffer
		args := []string{"-width", "16", "-samples", "2", "-depth", "3", "-workers", workers, "-integrator", "iterative"}
		if err := run(args, &stdout, &bytes.Buffer{}); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return stdout.String()
	}

	if render("1") != render("4") {
		t.Error("Expected identical output for different worker counts")
	}
}

func TestRunSavesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.png")
	var stdout, stderr bytes.Buffer
	err := run([]string{"-scene", "spheregrid", "-width", "8", "-samples", "1", "-depth", "2", "-out", path}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected non-empty PNG")
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected nothing on stdout, got %d bytes", stdout.Len())
	}
}

func TestRunHelp(t *testing.T) {
	var stdout bytes.Buffer
	if err := run([]string{"-help"}, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("run -help failed: %v", err)
	}
	for _, want := range []string{"Usage", "-scene", "spheregrid"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("Expected help to mention %q", want)
		}
	}
}
