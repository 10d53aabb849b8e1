package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceBuiltin SourceKind = "builtin"
	SourceFile    SourceKind = "file"
)

// Source records where a setting came from.
type Source struct {
	Kind   SourceKind
	Name   string // builtin or default name
	File   string
	Line   int
	Column int
}

func fileSource(file string, n *yaml.Node) Source {
	return Source{Kind: SourceFile, File: file, Line: n.Line, Column: n.Column}
}

type LoadResult struct {
	Config *Config
	// Sources maps a dotted YAML key to the file position that set it last.
	Sources map[string]Source
	// ApplicationBases maps an application id to the builtin it extends.
	ApplicationBases map[string]string
	// Files lists every file read, includes first.
	Files []string
}

// DefaultConfigPathOrEnv honours DESKWM_CONFIG before the XDG location.
func DefaultConfigPathOrEnv() (string, error) {
	if p := strings.TrimSpace(os.Getenv("DESKWM_CONFIG")); p != "" {
		return p, nil
	}
	return DefaultConfigPath()
}

func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPathOrEnv()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and its includes. A missing file yields defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	w := newIncludeWalker()

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := w.visit(path); err != nil {
			return nil, err
		}
	case !os.IsNotExist(statErr):
		return nil, statErr
	}

	cfg, bases, err := BuildEffectiveConfig(w.raw)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return nil, w.annotate(err)
	}
	return &LoadResult{
		Config:           cfg,
		Sources:          w.sources,
		ApplicationBases: bases,
		Files:            w.files,
	}, nil
}

// includeWalker merges a config file after everything it includes, depth
// first. A file reached twice through different includes is merged once.
type includeWalker struct {
	raw     RawConfig
	sources map[string]Source
	files   []string
	done    map[string]bool
	chain   []string
}

func newIncludeWalker() *includeWalker {
	return &includeWalker{
		sources: map[string]Source{},
		done:    map[string]bool{},
	}
}

func (w *includeWalker) visit(path string) error {
	file, err := canonicalPath(path)
	if err != nil {
		return err
	}
	if slices.Contains(w.chain, file) {
		return fmt.Errorf("include cycle detected: %s -> %s", strings.Join(w.chain, " -> "), file)
	}
	if w.done[file] {
		return nil
	}
	w.done[file] = true

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("%s: failed to read: %w", file, err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("%s: failed to parse yaml: %w", file, err)
	}
	var own RawConfig
	if err := decodeStrictYAML(data, &own); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	body := documentBody(&root)
	w.chain = append(w.chain, file)
	for _, inc := range includeDirectives(body) {
		targets, err := expandInclude(file, inc.Value)
		if err != nil {
			return fmt.Errorf("%s:%d:%d: include %q: %w", file, inc.Line, inc.Column, inc.Value, err)
		}
		for _, target := range targets {
			if err := w.visit(target); err != nil {
				return err
			}
		}
	}
	w.chain = w.chain[:len(w.chain)-1]

	// The including file wins over its includes.
	w.raw = w.raw.merge(own)
	recordPositions(body, file, "", w.sources)
	w.files = append(w.files, file)
	return nil
}

// annotate fills in the file position of a validation error's key.
func (w *includeWalker) annotate(err error) error {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr == nil || verr.Path == "" {
		return err
	}
	if src, ok := w.sources[verr.Path]; ok {
		verr.Source = src
	}
	return verr
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(out)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// canonicalPath resolves symlinks when it can, falling back to the
// absolute path.
func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}

// expandInclude turns one include value into files. A directory expands to
// its *.yaml and *.yml entries in name order.
func expandInclude(from, include string) ([]string, error) {
	target, err := includeTarget(from, include)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{target}, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			out = append(out, filepath.Join(target, e.Name()))
		}
	}
	slices.Sort(out)
	return out, nil
}

func includeTarget(from, include string) (string, error) {
	if include == "" {
		return "", errors.New("path is empty")
	}
	if include == "~" || strings.HasPrefix(include, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		include = filepath.Join(home, strings.TrimPrefix(include[1:], "/"))
	}
	if filepath.IsAbs(include) {
		return include, nil
	}
	return filepath.Join(filepath.Dir(from), include), nil
}

func documentBody(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return n.Content[0]
	}
	return n
}

// recordPositions stores the position of every mapping key under prefix.
// Sequences are recorded as a whole.
func recordPositions(n *yaml.Node, file, prefix string, out map[string]Source) {
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i].Value, n.Content[i+1]
			if prefix != "" {
				key = prefix + "." + key
			}
			out[key] = fileSource(file, val)
			recordPositions(val, file, key, out)
		}
	case yaml.SequenceNode:
		if prefix != "" {
			out[prefix] = fileSource(file, n)
		}
	}
}

// includeDirectives returns the scalar values of the top-level include key,
// which may be a single path or a list.
func includeDirectives(body *yaml.Node) []*yaml.Node {
	if body.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(body.Content); i += 2 {
		if body.Content[i].Value != "include" {
			continue
		}
		val := body.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			return []*yaml.Node{val}
		case yaml.SequenceNode:
			var out []*yaml.Node
			for _, item := range val.Content {
				if item.Kind == yaml.ScalarNode {
					out = append(out, item)
				}
			}
			return out
		}
		return nil
	}
	return nil
}
