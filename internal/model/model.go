// Package model loads classifier artifacts and exposes them as Predictors.
//
// An artifact is a YAML (or JSON) document:
//
//	kind: tree            # or linear
//	name: penguins
//	features: [culmen_length_mm, ...]
//	classes: [Adelie, Chinstrap, Gentoo]
//	tree: {feature: flipper_length_mm, threshold: 206.5, left: {...}, right: {class: Gentoo}}
//	linear: {coefficients: [[...]], intercepts: [...]}
package model

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/rookery/pkg/storage"
)

// BlobScheme prefixes model paths that are read from blob storage.
const BlobScheme = "blob://"

// Artifact kinds.
const (
	KindTree   = "tree"
	KindLinear = "linear"
)

// Artifact is the serialized form of a classifier.
type Artifact struct {
	Kind     string   `yaml:"kind"`
	Name     string   `yaml:"name,omitempty"`
	Version  string   `yaml:"version,omitempty"`
	Features []string `yaml:"features"`
	Classes  []string `yaml:"classes"`
	Tree     *Node    `yaml:"tree,omitempty"`
	Linear   *Linear  `yaml:"linear,omitempty"`
}

// Load reads the artifact at path and builds its Predictor. Paths prefixed
// with BlobScheme are read from store; all others from the filesystem.
func Load(ctx context.Context, path string, store storage.System) (Predictor, error) {
	r, err := open(ctx, path, store)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	p, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return p, nil
}

func open(ctx context.Context, path string, store storage.System) (io.ReadCloser, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	if key, ok := strings.CutPrefix(path, BlobScheme); ok {
		if store == nil {
			return nil, ErrStorageDisabled
		}
		r, err := store.Open(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("open model blob: %w", err)
		}
		return r, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	return f, nil
}

// Decode parses an artifact and builds its Predictor.
func Decode(r io.Reader) (Predictor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var a Artifact
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidArtifact)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}

	return a.Predictor()
}

// Predictor validates the artifact and builds the Predictor it describes.
func (a *Artifact) Predictor() (Predictor, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}

	switch a.Kind {
	case KindTree:
		return newTree(a.Features, a.Classes, a.Tree)
	case KindLinear:
		return newLinear(a.Features, a.Classes, a.Linear)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, a.Kind)
	}
}

func (a *Artifact) validate() error {
	if len(a.Features) == 0 {
		return fmt.Errorf("%w: features required", ErrInvalidArtifact)
	}
	if len(a.Classes) == 0 {
		return fmt.Errorf("%w: classes required", ErrInvalidArtifact)
	}
	if dup := duplicate(a.Features); dup != "" {
		return fmt.Errorf("%w: duplicate feature %q", ErrInvalidArtifact, dup)
	}
	if dup := duplicate(a.Classes); dup != "" {
		return fmt.Errorf("%w: duplicate class %q", ErrInvalidArtifact, dup)
	}
	return nil
}

func duplicate(names []string) string {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return n
		}
		seen[n] = true
	}
	return ""
}
