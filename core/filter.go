package core

import "fmt"

// FilterOperator is a comparison operator in an extracted filter.
type FilterOperator int

const (
	// OpEq matches values equal to the filter value.
	OpEq FilterOperator = iota + 1
	// OpGT matches values strictly greater than the filter value.
	OpGT
	// OpGTE matches values greater than or equal to the filter value.
	// For hierarchical fields this means "at or better than".
	OpGTE
	// OpLT matches values strictly less than the filter value.
	OpLT
	// OpLTE matches values less than or equal to the filter value.
	// For hierarchical fields this means "at or worse than".
	OpLTE
	// OpContains matches string values containing the filter value,
	// case-insensitively.
	OpContains
)

var operatorNames = map[FilterOperator]string{
	OpEq:       "=",
	OpGT:       ">",
	OpGTE:      ">=",
	OpLT:       "<",
	OpLTE:      "<=",
	OpContains: "contains",
}

// String returns the operator's wire representation.
func (op FilterOperator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return fmt.Sprintf("FilterOperator(%d)", int(op))
}

// ParseFilterOperator converts a wire representation to a FilterOperator.
func ParseFilterOperator(s string) (FilterOperator, error) {
	for op, name := range operatorNames {
		if name == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOperator, s)
}

// FilterSource records which extraction mechanism produced a filter.
type FilterSource int

const (
	// SourcePattern means a configured regex pattern matched the query.
	SourcePattern FilterSource = iota + 1
	// SourceSemantic means embedding similarity against a field's
	// keyword set matched the query.
	SourceSemantic
)

// String returns the source name.
func (s FilterSource) String() string {
	switch s {
	case SourcePattern:
		return "pattern"
	case SourceSemantic:
		return "semantic"
	}
	return fmt.Sprintf("FilterSource(%d)", int(s))
}

// Filter is a structured predicate extracted from a natural-language
// query. Value holds the coerced value (int, float64, or string); when
// coercion fails the original trimmed string is kept. Evidence records
// the regex or keyword that produced the filter, and Matched the query
// text it consumed (empty for semantic filters, which leave the query
// untouched).
type Filter struct {
	Field    string
	Operator FilterOperator
	Value    any
	Source   FilterSource
	Evidence string
	Matched  string
}
