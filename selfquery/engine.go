package selfquery

import (
	"strconv"
	"strings"

	"github.com/acadsearch/acadsearch/core"
	"github.com/acadsearch/acadsearch/schema"
)

// Engine evaluates structured filters against records. It is stateless
// apart from the read-only schema and safe for concurrent use.
type Engine struct {
	schema *schema.Schema
}

// NewEngine creates a filter engine over the given schema.
func NewEngine(s *schema.Schema) *Engine {
	return &Engine{schema: s}
}

// Matches reports whether record satisfies every filter. An empty
// filter set matches everything. A record missing a filtered field
// fails that filter; unknown disqualifies rather than passes.
func (e *Engine) Matches(record core.Record, filters []core.Filter) bool {
	for _, filter := range filters {
		if !e.matchesOne(record, filter) {
			return false
		}
	}
	return true
}

func (e *Engine) matchesOne(record core.Record, filter core.Filter) bool {
	value, ok := record.Field(filter.Field)
	if !ok || value == nil {
		return false
	}

	field := e.schema.FieldByName(filter.Field)

	// Hierarchical fields compare positions in the configured order,
	// lower index = better.
	if field != nil && len(field.Hierarchy) > 0 {
		return matchHierarchy(field, value, filter)
	}

	// List fields match any element. The schema flags the field as a
	// list and names the element attribute; the Record contract yields
	// that attribute's values as a string slice.
	if field != nil && field.IsList {
		elements, ok := value.([]string)
		if !ok {
			return false
		}
		return matchList(elements, filter)
	}

	if recordNum, ok := toFloat(value); ok {
		if filterNum, ok := toFloat(filter.Value); ok {
			return matchNumeric(recordNum, filterNum, filter.Operator)
		}
		return false
	}

	return matchString(toString(value), filter)
}

func matchHierarchy(field *schema.Field, value any, filter core.Filter) bool {
	recordRank, ok := field.HierarchyRank(toString(value))
	if !ok {
		return false
	}
	filterRank, ok := field.HierarchyRank(toString(filter.Value))
	if !ok {
		return false
	}

	// ">=" means at-or-better: the record's position is at or before
	// the filter's position in the ranked list.
	switch filter.Operator {
	case core.OpEq:
		return recordRank == filterRank
	case core.OpGT:
		return recordRank < filterRank
	case core.OpGTE:
		return recordRank <= filterRank
	case core.OpLT:
		return recordRank > filterRank
	case core.OpLTE:
		return recordRank >= filterRank
	case core.OpContains:
		return recordRank == filterRank
	default:
		return false
	}
}

func matchList(elements []string, filter core.Filter) bool {
	want := strings.ToLower(toString(filter.Value))
	for _, element := range elements {
		have := strings.ToLower(element)
		switch filter.Operator {
		case core.OpEq:
			if have == want {
				return true
			}
		case core.OpContains:
			if strings.Contains(have, want) {
				return true
			}
		}
	}
	return false
}

func matchNumeric(record, want float64, op core.FilterOperator) bool {
	switch op {
	case core.OpEq:
		return record == want
	case core.OpGT:
		return record > want
	case core.OpGTE:
		return record >= want
	case core.OpLT:
		return record < want
	case core.OpLTE:
		return record <= want
	default:
		return false
	}
}

func matchString(record string, filter core.Filter) bool {
	have := strings.ToLower(record)
	want := strings.ToLower(toString(filter.Value))

	switch filter.Operator {
	case core.OpEq:
		return have == want
	case core.OpContains:
		return strings.Contains(have, want)
	default:
		return false
	}
}

// toFloat coerces record and filter values to float64 for numeric
// comparison. Strings are parsed; non-coercible values fail.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return ""
	}
}
