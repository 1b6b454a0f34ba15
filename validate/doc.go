// Package validate checks a parsed model reply against what the host
// application expects: every required section present, and the embedded
// metadata JSON block well-formed.
//
// Both checks are pure functions of their inputs. They never mutate the
// sections they are given and never panic on malformed content; a bad reply
// comes back as a result value with a human-readable reason, not an error
// thrown past the caller.
//
// An absent metadata section is reported as not applicable, which is
// deliberately distinct from a validation failure: the model may have been
// asked for a section set that does not include one.
package validate
