package catalog

import (
	"crypto/sha256"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/gradefit/internal/selection"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// weightKeys are the dataset keys for the per-grade weights, in A..E order.
var weightKeys = [selection.NumGrades]string{"A_rate", "B_rate", "C_rate", "D_rate", "E_rate"}

// Parse decodes a YAML or JSON catalog. The document is either a bare
// sequence of records or a mapping with name, description and groups keys.
// Any malformed record fails the whole catalog with a *CatalogError.
func Parse(name string, data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &CatalogError{Index: -1, Err: fmt.Errorf("parse %s: %w", name, err)}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &CatalogError{Index: -1, Err: errors.New("empty document")}
	}

	c := &Catalog{Name: name}
	root := doc.Content[0]
	var seq *yaml.Node
	switch root.Kind {
	case yaml.SequenceNode:
		seq = root
	case yaml.MappingNode:
		seen := make(map[string]bool)
		for i := 0; i+1 < len(root.Content); i += 2 {
			k, v := root.Content[i], root.Content[i+1]
			if seen[k.Value] {
				return nil, &CatalogError{Index: -1, Field: k.Value, Err: fmt.Errorf("line %d: duplicate key", k.Line)}
			}
			seen[k.Value] = true
			switch k.Value {
			case "name":
				c.Name = v.Value
			case "description":
				c.Description = strings.TrimSpace(v.Value)
			case "groups":
				seq = v
			}
		}
		if seq == nil {
			return nil, &CatalogError{Index: -1, Field: "groups", Err: errors.New("required")}
		}
		if seq.Kind != yaml.SequenceNode {
			return nil, &CatalogError{Index: -1, Field: "groups", Err: fmt.Errorf("line %d: must be a list", seq.Line)}
		}
	default:
		return nil, &CatalogError{Index: -1, Err: fmt.Errorf("line %d: expected a list of records or a mapping with groups", root.Line)}
	}

	if len(seq.Content) == 0 {
		return nil, &CatalogError{Index: -1, Err: errors.New("catalog has no major groups")}
	}
	for i, n := range seq.Content {
		r, err := decodeRecord(i, n)
		if err != nil {
			return nil, err
		}
		if err := validateRecord(i, r); err != nil {
			return nil, err
		}
		c.records = append(c.records, r)
	}

	h := sha256.Sum256(data)
	c.Hash = fmt.Sprintf("sha256:%x", h)
	return c, nil
}

func decodeRecord(i int, n *yaml.Node) (Record, error) {
	var r Record
	if n.Kind != yaml.MappingNode {
		return r, &CatalogError{Index: i, Err: fmt.Errorf("line %d: record must be a mapping", n.Line)}
	}
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for j := 0; j+1 < len(n.Content); j += 2 {
		k := n.Content[j]
		if _, dup := fields[k.Value]; dup {
			r.School = scalarString(fields["school"])
			r.Group = scalarString(fields["group"])
			return r, recordError(i, r, k.Value, "line %d: duplicate key", k.Line)
		}
		fields[k.Value] = n.Content[j+1]
	}

	// Read the identity first so later errors can name the record.
	r.School = scalarString(fields["school"])
	r.Group = scalarString(fields["group"])
	for _, key := range []string{"school", "group"} {
		v, ok := fields[key]
		if !ok || v.Kind != yaml.ScalarNode || strings.TrimSpace(v.Value) == "" {
			return r, recordError(i, r, key, "required")
		}
	}

	for gi, key := range weightKeys {
		p, err := numberField(fields, key)
		if err != nil {
			return r, recordError(i, r, key, "%v", err)
		}
		r.Weights[gi] = p
	}
	threshold, err := numberField(fields, "score")
	if err != nil {
		return r, recordError(i, r, "score", "%v", err)
	}
	r.Threshold = threshold

	if v, ok := fields["required_subjects"]; ok && v.ShortTag() != "!!null" {
		if v.Kind != yaml.SequenceNode {
			return r, recordError(i, r, "required_subjects", "line %d: must be a list", v.Line)
		}
		for _, s := range v.Content {
			if s.Kind != yaml.ScalarNode {
				return r, recordError(i, r, "required_subjects", "line %d: subject must be a string", s.Line)
			}
			r.RequiredSubjects = append(r.RequiredSubjects, selection.Subject(strings.TrimSpace(s.Value)))
		}
	}
	return r, nil
}

func scalarString(n *yaml.Node) string {
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return strings.TrimSpace(n.Value)
}

func numberField(fields map[string]*yaml.Node, key string) (Points, error) {
	v, ok := fields[key]
	if !ok || v.ShortTag() == "!!null" {
		return 0, errors.New("required")
	}
	if v.Kind != yaml.ScalarNode || (v.ShortTag() != "!!int" && v.ShortTag() != "!!float") {
		return 0, fmt.Errorf("line %d: %q is not numeric", v.Line, v.Value)
	}
	return ParsePoints(v.Value)
}

// Load reads a catalog file from disk. The catalog name defaults to the file
// name without its extension.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %w", err)
	}
	base := filepath.Base(path)
	c, err := Parse(strings.TrimSuffix(base, filepath.Ext(base)), data)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %s: %w", path, err)
	}
	return c, nil
}

// LoadBuiltin loads an embedded catalog by name.
func LoadBuiltin(name string) (*Catalog, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadBuiltin: unknown catalog %q: %w", name, err)
	}
	c, err := Parse(name, data)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadBuiltin: %w", err)
	}
	return c, nil
}

// Resolve loads ref as a file path when such a file exists and as a
// built-in catalog name otherwise.
func Resolve(ref string) (*Catalog, error) {
	if _, err := os.Stat(ref); err == nil {
		return Load(ref)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("catalog.Resolve: %w", err)
	}
	return LoadBuiltin(ref)
}

// List returns the names of all built-in catalogs.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}
