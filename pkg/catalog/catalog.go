// Package catalog defines the registry of talent variables (attributes) scored
// by the matching engine, grouped into competency groups.
package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DataType says how an attribute's values are compared.
type DataType string

const (
	Numeric     DataType = "numeric"
	Categorical DataType = "categorical"
)

// Direction is the scoring direction of an attribute.
type Direction string

const (
	HigherIsBetter Direction = "higher_is_better"
	ExactMatch     Direction = "exact_match"
)

// ScaleEducation is the ordinal scale used by the Education Level attribute.
const ScaleEducation = "education"

// AttributeDefinition describes one talent variable.
type AttributeDefinition struct {
	Order     int       `yaml:"order" json:"order"`
	Group     string    `yaml:"group" json:"group"`
	Name      string    `yaml:"name" json:"name"`
	SourceKey string    `yaml:"source_key" json:"source_key"`
	DataType  DataType  `yaml:"data_type" json:"data_type"`
	Direction Direction `yaml:"direction" json:"direction"`
	// Scale names an ordinal scale. A categorical attribute with a scale is
	// scored meets-or-exceeds on that scale instead of by exact match.
	Scale string `yaml:"scale,omitempty" json:"scale,omitempty"`
}

// Catalog is an immutable, order-stable set of attribute definitions.
type Catalog struct {
	defs   []AttributeDefinition
	groups []string
	byName map[string]int
}

// New builds a catalog from the given definitions, sorted by Order.
func New(defs []AttributeDefinition) (*Catalog, error) {
	sorted := make([]AttributeDefinition, len(defs))
	copy(sorted, defs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	c := &Catalog{
		defs:   sorted,
		byName: make(map[string]int, len(sorted)),
	}
	seenGroup := make(map[string]bool)
	seenKey := make(map[string]bool)
	for i, d := range sorted {
		if err := validate(d); err != nil {
			return nil, err
		}
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate attribute name %q", d.Name)
		}
		if seenKey[d.SourceKey] {
			return nil, fmt.Errorf("duplicate source key %q", d.SourceKey)
		}
		seenKey[d.SourceKey] = true
		c.byName[d.Name] = i
		if !seenGroup[d.Group] {
			seenGroup[d.Group] = true
			c.groups = append(c.groups, d.Group)
		}
	}
	return c, nil
}

func validate(d AttributeDefinition) error {
	if d.Name == "" || d.Group == "" || d.SourceKey == "" {
		return fmt.Errorf("attribute %d: name, group and source_key are required", d.Order)
	}
	switch {
	case d.DataType == Numeric && d.Direction == HigherIsBetter && d.Scale == "":
	case d.DataType == Categorical && d.Direction == ExactMatch:
	default:
		return fmt.Errorf("attribute %q: unsupported scoring rule %s/%s", d.Name, d.DataType, d.Direction)
	}
	return nil
}

// All returns every definition in declared order.
func (c *Catalog) All() []AttributeDefinition {
	out := make([]AttributeDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

// AttributesOf returns the definitions belonging to a group, in declared order.
func (c *Catalog) AttributesOf(group string) []AttributeDefinition {
	var out []AttributeDefinition
	for _, d := range c.defs {
		if d.Group == group {
			out = append(out, d)
		}
	}
	return out
}

// Groups returns group names in order of their first declared attribute.
func (c *Catalog) Groups() []string {
	out := make([]string, len(c.groups))
	copy(out, c.groups)
	return out
}

// GroupIndex returns the position of a group in Groups, or -1.
func (c *Catalog) GroupIndex(group string) int {
	for i, g := range c.groups {
		if g == group {
			return i
		}
	}
	return -1
}

// Lookup returns the definition with the given display name.
func (c *Catalog) Lookup(name string) (AttributeDefinition, bool) {
	i, ok := c.byName[name]
	if !ok {
		return AttributeDefinition{}, false
	}
	return c.defs[i], true
}

// Len returns the number of attributes.
func (c *Catalog) Len() int { return len(c.defs) }

type catalogFile struct {
	Attributes []AttributeDefinition `yaml:"attributes"`
}

// Load reads a catalog from a YAML file with a top-level "attributes" list.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(f.Attributes) == 0 {
		return nil, fmt.Errorf("catalog %s declares no attributes", path)
	}
	return New(f.Attributes)
}
