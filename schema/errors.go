package schema

import "errors"

var (
	// ErrMalformedSchema indicates the schema file could not be parsed.
	ErrMalformedSchema = errors.New("malformed schema file")

	// ErrInvalidPattern indicates a field pattern failed to compile.
	ErrInvalidPattern = errors.New("invalid extraction pattern")

	// ErrInvalidValueType indicates an unknown attribute type name.
	ErrInvalidValueType = errors.New("invalid value type")
)
