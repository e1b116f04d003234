package rules

import (
	"strconv"

	"github.com/yaklabco/gojslint/pkg/ast"
)

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

// canBeAdjacent reports whether text left and right can touch without
// merging into a single token.
func canBeAdjacent(left, right string) bool {
	if left == "" || right == "" {
		return true
	}
	return !isIdentChar(left[len(left)-1]) || !isIdentChar(right[0])
}

// staticPropertyName returns the name of a non-computed or literal key of a
// Property, MethodDefinition or MemberExpression.
func staticPropertyName(node *ast.Node) (string, bool) {
	var prop *ast.Node
	switch node.Type {
	case "Property", "MethodDefinition", "PropertyDefinition":
		prop = node.Child("key")
	case "MemberExpression":
		prop = node.Child("property")
	default:
		return "", false
	}
	if prop == nil {
		return "", false
	}
	if prop.Type == "Identifier" && !node.Bool("computed") {
		return prop.Str("name"), true
	}
	if prop.Type == "Literal" {
		return literalString(prop)
	}
	return "", false
}

// literalString renders the value of a string or number literal the way
// String(value) would.
func literalString(lit *ast.Node) (string, bool) {
	switch value := lit.Get("value").(type) {
	case string:
		return value, true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	}
	return "", false
}
