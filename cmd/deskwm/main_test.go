package main

import (
	"flag"
	"io"
	"testing"

	"github.com/1broseidon/deskwm/internal/config"
)

func TestParsePair(t *testing.T) {
	x, y, err := parsePair("-12.5", "40")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x != -12.5 || y != 40 {
		t.Fatalf("expected -12.5,40, got %v,%v", x, y)
	}
	if _, _, err := parsePair("1", "abc"); err == nil {
		t.Fatalf("expected invalid number error")
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 3, Column: 5}, "file:/c.yaml:3:5"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml"}, "file:/c.yaml"},
		{config.Source{Kind: config.SourceFile}, "file"},
		{config.Source{Kind: config.SourceBuiltin, Name: "notes"}, "builtin:notes"},
		{config.Source{Kind: config.SourceDefault}, "default"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestParseFlagsCodes(t *testing.T) {
	newFS := func() *flag.FlagSet {
		fs := flag.NewFlagSet("x", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		fs.Bool("json", false, "")
		return fs
	}
	if code := parseFlags(newFS(), []string{"--help"}); code != 0 {
		t.Fatalf("expected 0 for help, got %d", code)
	}
	if code := parseFlags(newFS(), []string{"--bogus"}); code != 2 {
		t.Fatalf("expected 2 for bad flag, got %d", code)
	}
	if code := parseFlags(newFS(), []string{"--json"}); code != -1 {
		t.Fatalf("expected -1 to continue, got %d", code)
	}
}

func TestStringListRepeats(t *testing.T) {
	var l stringList
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&l, "open", "")
	if err := fs.Parse([]string{"--open", "notes", "--open", "terminal"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(l) != 2 || l[0] != "notes" || l[1] != "terminal" {
		t.Fatalf("unexpected list %v", l)
	}
}

func TestRunConfigValidate(t *testing.T) {
	path := t.TempDir() + "/config.yaml"
	if code := runConfig([]string{"validate", "--path", path}); code != 0 {
		t.Fatalf("expected missing file to validate with defaults, got %d", code)
	}
	if code := runConfig([]string{"bogus"}); code != 2 {
		t.Fatalf("expected 2 for unknown subcommand, got %d", code)
	}
}
