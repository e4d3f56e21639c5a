package schema

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueType is the declared type of a structured attribute.
type ValueType int

const (
	// TypeString is the default attribute type.
	TypeString ValueType = iota + 1
	// TypeInteger marks attributes coerced to integers (e.g. year).
	TypeInteger
	// TypeFloat marks attributes coerced to floating point.
	TypeFloat
)

var valueTypeNames = map[ValueType]string{
	TypeString:  "string",
	TypeInteger: "integer",
	TypeFloat:   "float",
}

// String returns the type's configuration name.
func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// MarshalYAML implements yaml.Marshaler.
func (t ValueType) MarshalYAML() (any, error) {
	name, ok := valueTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidValueType, int(t))
	}
	return name, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
// An empty or absent type defaults to string, matching the original
// metadata configuration where only year carries an explicit type.
func (t *ValueType) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	if name == "" {
		*t = TypeString
		return nil
	}
	for vt, n := range valueTypeNames {
		if n == name {
			*t = vt
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidValueType, name)
}

// Field describes one structured attribute available for filter
// extraction and evaluation.
type Field struct {
	// Name is the attribute name as it appears in document metadata.
	Name string `yaml:"name"`

	// Description is a human-readable account of the attribute, used to
	// prime LLM-driven filter construction variants.
	Description string `yaml:"description"`

	// Type declares how extracted values are coerced.
	Type ValueType `yaml:"type"`

	// Hierarchy, when present, defines a total order over the field's
	// values, best first (e.g. Qualis tiers A1..C). Comparison operators
	// on such fields compare positions, not lexical order.
	Hierarchy []string `yaml:"hierarchy,omitempty"`

	// IsList marks fields whose record value is a list (e.g. authors);
	// equality and containment match any element.
	IsList bool `yaml:"is_list,omitempty"`

	// SubField names the element attribute matched for list fields.
	SubField string `yaml:"sub_field,omitempty"`

	// Patterns are regular expressions run against queries. A two-group
	// match yields (operator, value); a one-group match yields the value
	// with the operator inferred from lexical cues in the pattern text.
	Patterns []string `yaml:"patterns,omitempty"`

	// SemanticKeywords enable embedding-similarity matching for the
	// field when no pattern fires. Empty disables the semantic path.
	SemanticKeywords []string `yaml:"semantic_keywords,omitempty"`

	compiled []*regexp.Regexp
}

// CompiledPatterns returns the field's patterns compiled at load time,
// index-aligned with Patterns.
func (f *Field) CompiledPatterns() []*regexp.Regexp {
	return f.compiled
}

// HierarchyRank returns the position of value in the field's hierarchy
// (0 = best). The second return value is false when the field has no
// hierarchy or the value is not part of it.
func (f *Field) HierarchyRank(value string) (int, bool) {
	for i, tier := range f.Hierarchy {
		if strings.EqualFold(tier, value) {
			return i, true
		}
	}
	return 0, false
}

// Schema is the full field-schema configuration, loaded once at startup
// and treated as read-only for the lifetime of the process.
type Schema struct {
	// ContentDescription is a natural-language description of what a
	// Document represents.
	ContentDescription string `yaml:"document_content_description"`

	Fields []Field `yaml:"metadata_fields"`
}

// FieldByName returns the field with the given name, or nil.
func (s *Schema) FieldByName(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// Empty returns a schema with no fields. Free-text search still works
// against an empty schema; no structured filters are extractable.
func Empty() *Schema {
	return &Schema{}
}

// compile compiles every field pattern. A pattern that does not compile
// is a configuration error and aborts the load.
func (s *Schema) compile() error {
	for i := range s.Fields {
		field := &s.Fields[i]
		field.compiled = make([]*regexp.Regexp, 0, len(field.Patterns))
		for _, pattern := range field.Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return fmt.Errorf("%w: field %q pattern %q: %v",
					ErrInvalidPattern, field.Name, pattern, err)
			}
			field.compiled = append(field.compiled, re)
		}
	}
	return nil
}

