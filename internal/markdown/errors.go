package markdown

import "fmt"

// SyntaxError describes why a markdown input could not be parsed. Offset is
// the position in the input, in UTF-16 code units, where parsing stopped.
type SyntaxError struct {
	Message string
	Offset  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("markdown: %s at offset %d", e.Message, e.Offset)
}

func syntaxErrorf(offset int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Offset: offset}
}
