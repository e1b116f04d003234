package ast

// TokenType classifies a lexical token. Comments are tokens too, so a single
// ordered stream can be searched with or without them.
type TokenType string

// Token types, named after their ESTree counterparts.
const (
	TokenPunctuator TokenType = "Punctuator"
	TokenKeyword    TokenType = "Keyword"
	TokenIdentifier TokenType = "Identifier"
	TokenNumeric    TokenType = "Numeric"
	TokenString     TokenType = "String"
	TokenNull       TokenType = "Null"
	TokenBoolean    TokenType = "Boolean"
	TokenTemplate   TokenType = "Template"
	TokenRegExp     TokenType = "RegularExpression"

	// CommentLine is a // comment.
	CommentLine TokenType = "Line"
	// CommentBlock is a /* */ comment.
	CommentBlock TokenType = "Block"
)

// Token is a lexical token or comment.
type Token struct {
	Type  TokenType
	Value string
	Start int
	End   int
}

// Span returns the byte range of the token.
func (t Token) Span() Range {
	return Range{Start: t.Start, End: t.End}
}

// IsComment reports whether the token is a comment.
func (t Token) IsComment() bool {
	return t.Type == CommentLine || t.Type == CommentBlock
}

// Is reports whether the token is the punctuator or keyword value.
func (t Token) Is(value string) bool {
	return (t.Type == TokenPunctuator || t.Type == TokenKeyword) && t.Value == value
}
