// Package output encodes solved layer indices for consumers: stylesheets,
// config files and terminals.
//
// Every encoder is deterministic: the same [layers.Solution] always produces
// the same bytes.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	perrors "github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/layers"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatCSS  = "css"
	FormatSCSS = "scss"
)

// Formats lists every format accepted by [Write].
var Formats = []string{FormatText, FormatJSON, FormatTOML, FormatYAML, FormatCSS, FormatSCSS}

// DefaultPrefix is prepended to variable names in CSS and SCSS output.
const DefaultPrefix = "z-"

// Options configures encoding.
type Options struct {
	// Prefix is prepended to CSS custom property and SCSS variable names.
	// Empty uses DefaultPrefix.
	Prefix string
}

// Write encodes sol in format. An empty format means FormatText.
func Write(w io.Writer, sol layers.Solution, format string, opts Options) error {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if sol == nil {
		sol = layers.Solution{}
	}

	switch format {
	case FormatText, "":
		return writeText(w, sol)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]int(sol)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(map[string]int(sol)); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	case FormatYAML:
		if len(sol) == 0 {
			_, err := io.WriteString(w, "{}\n")
			return err
		}
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(map[string]int(sol)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatCSS:
		return writeCSS(w, sol, opts.Prefix)
	case FormatSCSS:
		return writeSCSS(w, sol, opts.Prefix)
	default:
		return perrors.ValidateFormat(format, Formats)
	}
	return nil
}

// topDown returns layer names from the highest index to the lowest.
func topDown(sol layers.Solution) []string {
	names := sol.Order()
	slices.Reverse(names)
	return names
}

func writeText(w io.Writer, sol layers.Solution) error {
	names := topDown(sol)
	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}
	for _, n := range names {
		if _, err := fmt.Fprintf(w, "%-*s  %d\n", width, n, sol[n]); err != nil {
			return err
		}
	}
	return nil
}

func writeCSS(w io.Writer, sol layers.Solution, prefix string) error {
	names, idents, err := variables(sol, prefix)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, n := range names {
		fmt.Fprintf(&b, "  --%s: %d;\n", idents[n], sol[n])
	}
	b.WriteString("}\n")
	_, err = io.WriteString(w, b.String())
	return err
}

func writeSCSS(w io.Writer, sol layers.Solution, prefix string) error {
	names, idents, err := variables(sol, prefix)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, n := range names {
		fmt.Fprintf(&b, "$%s: %d;\n", idents[n], sol[n])
	}
	_, err = io.WriteString(w, b.String())
	return err
}

// variables returns the layer names top-down with their variable identifiers.
// Two layers mapping to the same identifier is an error, since the later
// declaration would silently override the earlier one.
func variables(sol layers.Solution, prefix string) ([]string, map[string]string, error) {
	names := topDown(sol)
	idents := make(map[string]string, len(names))
	owner := make(map[string]string, len(names))
	for _, n := range names {
		id := Ident(prefix + n)
		if prev, ok := owner[id]; ok {
			a, b := min(prev, n), max(prev, n)
			return nil, nil, perrors.New(perrors.ErrCodeInvalidLayer,
				"layers %q and %q both map to variable %q", a, b, id)
		}
		owner[id] = n
		idents[n] = id
	}
	return names, idents, nil
}

// Ident turns a layer name into a CSS identifier fragment: letters, digits,
// '-' and '_' are kept, runs of anything else collapse to a single '-'.
func Ident(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return b.String()
}
