package scriptmeta

import "errors"

// Validation errors. The validate package wraps these with detail via
// fmt.Errorf("%w: ..."), so callers can match with errors.Is.
var (
	ErrNoJSONObject   = errors.New("no JSON object found")
	ErrInvalidJSON    = errors.New("invalid JSON")
	ErrMissingField   = errors.New("missing field")
	ErrWrongLocale    = errors.New("unexpected locale code")
	ErrSchemaMismatch = errors.New("metadata does not match schema")
)
