package metaparser

import "fmt"

// ParserFailure is returned when the meta-grammar recognizer could not
// match the input. It reports the furthest position reached, matching
// the farthest-failure-position idiom the corpus uses for its own
// errList/parserError reporting.
type ParserFailure struct {
	Offset int
	Line   int
	Col    int
}

func (e *ParserFailure) Error() string {
	return fmt.Sprintf("metaparser: failed to parse grammar at line %d, column %d (offset %d)", e.Line, e.Col, e.Offset)
}
