package osclass

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	version "github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

//go:embed lookup.yaml
var defaultLookup []byte

// SupportedVersions is the range of lookup file versions this build understands.
const SupportedVersions = ">= 1.0, < 2.0"

// Entry maps one bucket to the raw strings that classify into it.
type Entry struct {
	Bucket   Bucket   `yaml:"bucket"`
	Variants []string `yaml:"variants"`
}

// Table is the versioned OS lookup table. Entry order is match priority.
type Table struct {
	Version string  `yaml:"version"`
	Entries []Entry `yaml:"buckets"`

	index map[string]Bucket
}

// Result is the outcome of classifying one raw OS string.
type Result struct {
	Bucket Bucket `json:"bucket"`
	// Label is the bucket label, or the raw string for Other.
	Label string `json:"label"`
}

// Parse decodes and validates a YAML lookup table.
func Parse(b []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("os lookup: %w", err)
	}
	v, err := version.NewVersion(t.Version)
	if err != nil {
		return nil, fmt.Errorf("os lookup: invalid version %q: %w", t.Version, err)
	}
	constraint, err := version.NewConstraint(SupportedVersions)
	if err != nil {
		return nil, err
	}
	if !constraint.Check(v) {
		return nil, fmt.Errorf("os lookup: version %s not supported (want %s)", v, SupportedVersions)
	}
	t.index = map[string]Bucket{}
	for _, e := range t.Entries {
		if e.Bucket == Other || e.Bucket == NotFound {
			return nil, fmt.Errorf("os lookup: bucket %q cannot list variants", e.Bucket)
		}
		for _, name := range e.Variants {
			// first listing wins, same as testing buckets in order
			if _, seen := t.index[name]; !seen {
				t.index[name] = e.Bucket
			}
		}
	}
	return &t, nil
}

// Default returns the lookup table compiled into the binary.
func Default() *Table {
	t, err := Parse(defaultLookup)
	if err != nil {
		panic(err)
	}
	return t
}

// LoadFile reads a lookup table from path; an empty path yields Default().
func LoadFile(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os lookup: %w", err)
	}
	return Parse(b)
}

// Classify maps a raw OS string to its bucket. nil, blank and the gap-filled
// sentinel are NotFound; strings not in the table are Other with the raw
// string kept as label.
func (t *Table) Classify(raw *string) Result {
	if raw == nil || *raw == NotFoundLabel || strings.TrimSpace(*raw) == "" {
		return Result{Bucket: NotFound, Label: NotFoundLabel}
	}
	if b, ok := t.index[*raw]; ok {
		return Result{Bucket: b, Label: b.String()}
	}
	return Result{Bucket: Other, Label: *raw}
}

// ClassifyString is Classify for a non-null value.
func (t *Table) ClassifyString(raw string) Result {
	return t.Classify(&raw)
}
