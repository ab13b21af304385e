// Package statement implements the textual statement lexer/parser and
// its validation. This is a thin wrapper around the core: it turns a
// line of REPL input into a Statement the executor can run, or into one
// of the Prepare error taxonomy below.
package statement

import (
	"strings"

	"kv/row"
)

// Kind distinguishes the two statements this store understands.
type Kind int

const (
	Insert Kind = iota
	Select
)

// Statement is a parsed, validated REPL line ready for execution.
type Statement struct {
	Kind Kind
	Row  row.Row
}

// Prepare errors.
var (
	ErrSyntax                = prepareError("syntax error. could not parse statement")
	ErrNegativeID            = prepareError("id must be positive")
	ErrStringTooLong         = prepareError("string is too long")
	ErrUnrecognizedStatement = prepareError("unrecognized keyword")
)

type prepareError string

func (e prepareError) Error() string { return string(e) }

// Prepare parses a single REPL line into a Statement.
func Prepare(line string) (Statement, error) {
	switch {
	case strings.HasPrefix(line, "insert"):
		return prepareInsert(line)
	case strings.HasPrefix(line, "select"):
		return Statement{Kind: Select}, nil
	default:
		return Statement{}, ErrUnrecognizedStatement
	}
}

func prepareInsert(line string) (Statement, error) {
	fields := strings.Fields(line)
	// fields[0] is the "insert" keyword itself.
	if len(fields) < 4 {
		return Statement{}, ErrSyntax
	}

	idStr, username, email := fields[1], fields[2], fields[3]

	id := atoi(idStr)
	if id < 0 {
		return Statement{}, ErrNegativeID
	}

	r, err := row.New(uint32(id), username, email)
	if err != nil {
		return Statement{}, ErrStringTooLong
	}

	return Statement{Kind: Insert, Row: r}, nil
}

// atoi parses a leading run of digits the way C's atoi does: optional
// leading whitespace, an optional sign, then digits up to the first
// non-digit character. A token with no leading digits at all (e.g.
// "abc") parses as 0 rather than failing, so an id token only ever
// produces a syntax error for missing tokens, never for an unparseable
// one.
func atoi(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}

	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}

	if neg {
		return -n
	}
	return n
}
