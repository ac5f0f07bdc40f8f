package errors

// Code represents a machine-readable error code. Codes follow the pattern
// CATEGORY_XXX where CATEGORY is a short identifier (VAL, INT) and XXX is
// a three-digit number. Codes are stable once assigned.
type Code string

// Error code categories:
//
//	VAL_xxx - Validation errors (invalid arguments, invalid configuration values)
//	INT_xxx - Internal errors (unreadable configuration, unexpected failures)
const (
	// CodeValidation indicates a general validation failure.
	CodeValidation Code = "VAL_001"

	// CodeValidationRequired indicates a required argument or field is
	// missing, such as a nil exception passed to serialization preparation.
	CodeValidationRequired Code = "VAL_002"

	// CodeValidationFormat indicates a value has an invalid format.
	CodeValidationFormat Code = "VAL_003"

	// CodeValidationRange indicates a value is outside its accepted range.
	CodeValidationRange Code = "VAL_004"

	// CodeInternalConfiguration indicates configuration could not be loaded.
	CodeInternalConfiguration Code = "INT_003"
)

// String returns the string representation of the error code.
func (c Code) String() string {
	return string(c)
}

// Category returns the category prefix of the error code (e.g., "VAL").
func (c Code) Category() string {
	s := string(c)
	for i, r := range s {
		if r == '_' {
			return s[:i]
		}
	}
	return s
}
