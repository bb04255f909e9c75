package document

import "errors"

var (
	// ErrContract marks programming errors: a caller broke an operation's precondition.
	ErrContract = errors.New("document: contract violation")
	// ErrEmpty is returned when an operation would leave the document without lines.
	ErrEmpty = errors.New("document: at least one line required")
	// ErrNotIndentable is returned when indent state is requested on a line without it.
	ErrNotIndentable = errors.New("document: line is not indentable")
	// ErrNoPrefixes is returned when prefix state is requested but no prefix kind is enabled.
	ErrNoPrefixes = errors.New("document: no prefix kind enabled")
)
