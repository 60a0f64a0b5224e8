// Package stackfile reads declarative layer definitions and turns them into
// a [layers.Graph].
//
// A stackfile lists layers in order. Each entry names a layer, optionally
// pins it to a static index, and declares which layers it sits above or
// below. The same structure is accepted as TOML, YAML or JSON:
//
//	[[layers]]
//	name = "content"
//
//	[[layers]]
//	name  = "header"
//	index = 100
//
//	[[layers]]
//	name  = "modal"
//	above = ["content", "header"]
//
// Unknown keys are rejected in every format so typos surface early.
package stackfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	perrors "github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/layers"
)

// Supported input formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Formats lists every format accepted by [Read].
var Formats = []string{FormatTOML, FormatYAML, FormatJSON}

// Definition is the decoded content of a stackfile.
type Definition struct {
	Layers []LayerDef `json:"layers" toml:"layers" yaml:"layers"`
}

// LayerDef declares a single layer. A nil Index makes the layer dynamic.
type LayerDef struct {
	Name  string   `json:"name" toml:"name" yaml:"name"`
	Index *int     `json:"index,omitempty" toml:"index,omitempty" yaml:"index,omitempty"`
	Above []string `json:"above,omitempty" toml:"above,omitempty" yaml:"above,omitempty"`
	Below []string `json:"below,omitempty" toml:"below,omitempty" yaml:"below,omitempty"`
}

// Static reports whether the layer has a fixed index.
func (d LayerDef) Static() bool { return d.Index != nil }

// DetectFormat infers the format from the file extension.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", perrors.New(perrors.ErrCodeInvalidFormat, "cannot infer stackfile format from %q (use .toml, .yaml or .json)", path)
}

// Read decodes a definition in the given format from r. Read does not close r.
func Read(r io.Reader, format string) (*Definition, error) {
	var def Definition
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&def)
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, perrors.New(perrors.ErrCodeInvalidInput, "decode toml: unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode json")
		}
	default:
		return nil, perrors.ValidateFormat(format, Formats)
	}
	return &def, nil
}

// Load reads the stackfile at path, inferring its format from the extension.
func Load(path string) (*Definition, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.Classify(err), err, "open stackfile")
	}
	defer f.Close()

	def, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Validate checks layer names and references without building a graph.
func (d *Definition) Validate() error {
	_, err := d.Build()
	return err
}

// Build registers every layer in file order, then applies the above and
// below declarations. Errors carry the offending layer name and a code from
// [perrors.Classify].
func (d *Definition) Build() (*layers.Graph, error) {
	g := layers.New()
	for _, l := range d.Layers {
		if err := perrors.ValidateLayerName(l.Name); err != nil {
			return nil, err
		}
		var err error
		if l.Static() {
			_, err = g.AddStaticLayer(l.Name, *l.Index)
		} else {
			_, err = g.AddLayer(l.Name)
		}
		if err != nil {
			return nil, perrors.Wrap(perrors.Classify(err), err, "layer %q", l.Name)
		}
	}

	for _, l := range d.Layers {
		for _, lower := range l.Above {
			if err := g.Above(l.Name, lower); err != nil {
				return nil, perrors.Wrap(perrors.Classify(err), err, "layer %q above", l.Name)
			}
		}
		for _, upper := range l.Below {
			if err := g.Above(upper, l.Name); err != nil {
				return nil, perrors.Wrap(perrors.Classify(err), err, "layer %q below", l.Name)
			}
		}
	}
	return g, nil
}

// FromGraph converts a graph back into a definition, expressing every
// constraint as an "above" list. Layers keep their registration order.
func FromGraph(g *layers.Graph) *Definition {
	infos := g.Layers()
	def := &Definition{Layers: make([]LayerDef, len(infos))}
	for i, info := range infos {
		ld := LayerDef{Name: info.Name}
		if len(info.Above) > 0 {
			ld.Above = info.Above
		}
		if info.Static {
			idx := info.Index
			ld.Index = &idx
		}
		def.Layers[i] = ld
	}
	return def
}

// Write encodes def in the given format.
func Write(w io.Writer, def *Definition, format string) error {
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(def); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(def); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(def); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	default:
		return perrors.ValidateFormat(format, Formats)
	}
	return nil
}
