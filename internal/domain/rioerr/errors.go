// Package rioerr holds the error taxonomy shared by the record accessors,
// the stats reshaper and the boundary collaborators.
package rioerr

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	// ErrConfiguration marks caller bugs: bad version, team, roster or base arguments.
	ErrConfiguration = crerr.New("configuration error")
	// ErrInvalidArgument is the ErrConfiguration flavour raised by argument validation.
	ErrInvalidArgument = crerr.Wrap(ErrConfiguration, "invalid argument")

	ErrParse            = crerr.New("parse error")
	ErrMissingKey       = crerr.New("missing key")
	ErrAmbiguousShape   = crerr.New("ambiguous stats shape")
	ErrUnknownCharacter = crerr.New("unknown character")
	ErrNoDecision       = crerr.New("no decision")
)

// ParseError reports a malformed field inside a payload whose shape is otherwise trusted.
type ParseError struct {
	Field string
	Raw   string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse %q: raw value %q: %v", e.Field, e.Raw, e.Cause)
	}
	return fmt.Sprintf("parse %q: raw value %q", e.Field, e.Raw)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func NewParseError(field string, raw any, cause error) error {
	return &ParseError{Field: field, Raw: fmt.Sprint(raw), Cause: cause}
}

func InvalidArgument(format string, args ...any) error {
	return crerr.Wrapf(ErrInvalidArgument, format, args...)
}

// MissingKey names the absent path, e.g. "Character Game Stats/Away Roster 3/Offensive Stats".
func MissingKey(path string) error {
	return crerr.Wrapf(ErrMissingKey, "%s", path)
}

func UnknownCharacter(name string) error {
	return crerr.Wrapf(ErrUnknownCharacter, "%q", name)
}
