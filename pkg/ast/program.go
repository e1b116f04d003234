package ast

import "fmt"

// Program is the output of a parser: the root node plus the token and comment
// streams, each ordered by start offset.
type Program struct {
	Root     *Node
	Tokens   []Token
	Comments []Token
}

// ParseError is returned by parsers when the text is not valid source.
type ParseError struct {
	Message string
	Offset  int
	Line    int
	Column  int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}
