//go:build cgo

package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/parser/js"
)

func (c *converter) program(root *sitter.Node, length int, sourceType string) *ast.Node {
	return ast.NewNode("Program", 0, length).
		SetList("body", c.convertAll(namedChildren(root))).
		SetAttr("sourceType", sourceType)
}

// namedChildren returns the named children of node, skipping comments.
func namedChildren(node *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for idx := range int(node.NamedChildCount()) {
		child := node.NamedChild(idx)
		if child.Type() == "comment" || child.Type() == "hash_bang_line" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// hasToken reports whether node has a direct anonymous child with the given
// text, such as "async", "*" or "static".
func hasToken(node *sitter.Node, value string) bool {
	for idx := range int(node.ChildCount()) {
		child := node.Child(idx)
		if !child.IsNamed() && child.Type() == value {
			return true
		}
	}
	return false
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() &&
		a.Type() == b.Type()
}

func (c *converter) convertAll(nodes []*sitter.Node) []*ast.Node {
	out := make([]*ast.Node, 0, len(nodes))
	for _, node := range nodes {
		if conv := c.convert(node); conv != nil {
			out = append(out, conv)
		}
	}
	return out
}

func (c *converter) field(node *sitter.Node, name string) *ast.Node {
	child := node.ChildByFieldName(name)
	if child == nil {
		return nil
	}
	return c.convert(child)
}

func span(typ string, node *sitter.Node) *ast.Node {
	return ast.NewNode(typ, int(node.StartByte()), int(node.EndByte()))
}

func (c *converter) literal(node *sitter.Node, tokType ast.TokenType) *ast.Node {
	return js.NewLiteral(ast.Token{
		Type:  tokType,
		Value: c.text(node),
		Start: int(node.StartByte()),
		End:   int(node.EndByte()),
	})
}

//nolint:cyclop,funlen,gocyclo // One case per grammar node.
func (c *converter) convert(node *sitter.Node) *ast.Node {
	if node == nil {
		return nil
	}

	switch typ := node.Type(); typ {
	case "comment", "hash_bang_line":
		return nil
	case "parenthesized_expression":
		inner := namedChildren(node)
		if len(inner) == 0 {
			return nil
		}
		return c.convert(inner[0])

	// Identifiers and literals.
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "statement_identifier", "undefined":
		return span("Identifier", node).SetAttr("name", c.text(node))
	case "private_property_identifier":
		return span("PrivateIdentifier", node).SetAttr("name", c.text(node))
	case "this":
		return span("ThisExpression", node)
	case "super":
		return span("Super", node)
	case "number", "string", "true", "false", "null", "regex":
		return c.literal(node, atomicTokens[typ])
	case "template_string":
		return span("TemplateLiteral", node).
			SetList("quasis", nil).
			SetList("expressions", nil).
			SetAttr("raw", c.text(node))

	// Statements.
	case "expression_statement":
		inner := namedChildren(node)
		if len(inner) == 0 {
			return span("EmptyStatement", node)
		}
		return span("ExpressionStatement", node).SetChild("expression", c.convert(inner[0]))
	case "empty_statement":
		return span("EmptyStatement", node)
	case "statement_block":
		return span("BlockStatement", node).SetList("body", c.convertAll(namedChildren(node)))
	case "variable_declaration", "lexical_declaration":
		kind := "var"
		if k := node.ChildByFieldName("kind"); k != nil {
			kind = c.text(k)
		} else if node.ChildCount() > 0 {
			kind = c.text(node.Child(0))
		}
		return span("VariableDeclaration", node).
			SetList("declarations", c.convertAll(namedChildren(node))).
			SetAttr("kind", kind)
	case "variable_declarator":
		return span("VariableDeclarator", node).
			SetChild("id", c.field(node, "name")).
			SetChild("init", c.field(node, "value"))
	case "return_statement", "throw_statement":
		estree := "ReturnStatement"
		if typ == "throw_statement" {
			estree = "ThrowStatement"
		}
		var arg *ast.Node
		if inner := namedChildren(node); len(inner) > 0 {
			arg = c.convert(inner[0])
		}
		return span(estree, node).SetChild("argument", arg)
	case "if_statement":
		var alternate *ast.Node
		if alt := node.ChildByFieldName("alternative"); alt != nil {
			if inner := namedChildren(alt); alt.Type() == "else_clause" && len(inner) > 0 {
				alternate = c.convert(inner[0])
			} else {
				alternate = c.convert(alt)
			}
		}
		return span("IfStatement", node).
			SetChild("test", c.field(node, "condition")).
			SetChild("consequent", c.field(node, "consequence")).
			SetChild("alternate", alternate)
	case "while_statement":
		return span("WhileStatement", node).
			SetChild("test", c.field(node, "condition")).
			SetChild("body", c.field(node, "body"))
	case "do_statement":
		return span("DoWhileStatement", node).
			SetChild("body", c.field(node, "body")).
			SetChild("test", c.field(node, "condition"))
	case "for_statement":
		return span("ForStatement", node).
			SetChild("init", c.forClause(node.ChildByFieldName("initializer"))).
			SetChild("test", c.forClause(node.ChildByFieldName("condition"))).
			SetChild("update", c.field(node, "increment")).
			SetChild("body", c.field(node, "body"))
	case "for_in_statement":
		estree := "ForInStatement"
		if hasToken(node, "of") {
			estree = "ForOfStatement"
		}
		left := c.field(node, "left")
		if kind := node.ChildByFieldName("kind"); kind != nil && left != nil {
			decl := ast.NewNode("VariableDeclarator", left.Start, left.End).SetChild("id", left).SetChild("init", nil)
			left = ast.NewNode("VariableDeclaration", int(kind.StartByte()), left.End).
				SetList("declarations", []*ast.Node{decl}).
				SetAttr("kind", c.text(kind))
		}
		return span(estree, node).
			SetChild("left", left).
			SetChild("right", c.field(node, "right")).
			SetChild("body", c.field(node, "body"))
	case "try_statement":
		var handler *ast.Node
		if h := node.ChildByFieldName("handler"); h != nil {
			handler = span("CatchClause", h).
				SetChild("param", c.field(h, "parameter")).
				SetChild("body", c.field(h, "body"))
		}
		var finalizer *ast.Node
		if f := node.ChildByFieldName("finalizer"); f != nil {
			finalizer = c.field(f, "body")
		}
		return span("TryStatement", node).
			SetChild("block", c.field(node, "body")).
			SetChild("handler", handler).
			SetChild("finalizer", finalizer)
	case "break_statement", "continue_statement":
		estree := "BreakStatement"
		if typ == "continue_statement" {
			estree = "ContinueStatement"
		}
		return span(estree, node).SetChild("label", c.field(node, "label"))
	case "labeled_statement":
		return span("LabeledStatement", node).
			SetChild("label", c.field(node, "label")).
			SetChild("body", c.field(node, "body"))
	case "debugger_statement":
		return span("DebuggerStatement", node)
	case "import_statement":
		return c.importDeclaration(node)
	case "export_statement":
		if hasToken(node, "default") {
			decl := c.field(node, "declaration")
			if decl == nil {
				decl = c.field(node, "value")
			}
			return span("ExportDefaultDeclaration", node).SetChild("declaration", decl)
		}
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			return span("ExportNamedDeclaration", node).
				SetChild("declaration", c.convert(decl)).
				SetList("specifiers", nil).
				SetChild("source", nil)
		}
		return c.opaque(node)

	// Functions and classes.
	case "function_declaration", "generator_function_declaration":
		return c.function("FunctionDeclaration", node)
	case "function", "function_expression", "generator_function":
		return c.function("FunctionExpression", node)
	case "arrow_function":
		return c.arrow(node)
	case "class_declaration", "class":
		estree := "ClassExpression"
		if typ == "class_declaration" {
			estree = "ClassDeclaration"
		}
		var superClass *ast.Node
		for _, child := range namedChildren(node) {
			if child.Type() == "class_heritage" {
				if inner := namedChildren(child); len(inner) > 0 {
					superClass = c.convert(inner[0])
				}
			}
		}
		body := node.ChildByFieldName("body")
		return span(estree, node).
			SetChild("id", c.field(node, "name")).
			SetChild("superClass", superClass).
			SetChild("body", span("ClassBody", body).SetList("body", c.classMembers(body)))

	// Expressions.
	case "object":
		return span("ObjectExpression", node).SetList("properties", c.objectMembers(node))
	case "object_pattern":
		return span("ObjectPattern", node).SetList("properties", c.patternMembers(node))
	case "array":
		return span("ArrayExpression", node).SetList("elements", c.elements(node))
	case "array_pattern":
		return span("ArrayPattern", node).SetList("elements", c.elements(node))
	case "assignment_pattern":
		return span("AssignmentPattern", node).
			SetChild("left", c.field(node, "left")).
			SetChild("right", c.field(node, "right"))
	case "rest_pattern", "spread_element":
		estree := "RestElement"
		if typ == "spread_element" {
			estree = "SpreadElement"
		}
		var arg *ast.Node
		if inner := namedChildren(node); len(inner) > 0 {
			arg = c.convert(inner[0])
		}
		return span(estree, node).SetChild("argument", arg)
	case "assignment_expression":
		return span("AssignmentExpression", node).
			SetChild("left", c.field(node, "left")).
			SetChild("right", c.field(node, "right")).
			SetAttr("operator", "=")
	case "augmented_assignment_expression":
		return span("AssignmentExpression", node).
			SetChild("left", c.field(node, "left")).
			SetChild("right", c.field(node, "right")).
			SetAttr("operator", c.operator(node))
	case "binary_expression":
		operator := c.operator(node)
		estree := "BinaryExpression"
		if operator == "&&" || operator == "||" || operator == "??" {
			estree = "LogicalExpression"
		}
		return span(estree, node).
			SetChild("left", c.field(node, "left")).
			SetChild("right", c.field(node, "right")).
			SetAttr("operator", operator)
	case "unary_expression":
		return span("UnaryExpression", node).
			SetChild("argument", c.field(node, "argument")).
			SetAttr("operator", c.operator(node)).
			SetAttr("prefix", true)
	case "update_expression":
		prefix := node.ChildCount() > 0 && !node.Child(0).IsNamed()
		return span("UpdateExpression", node).
			SetChild("argument", c.field(node, "argument")).
			SetAttr("operator", c.operator(node)).
			SetAttr("prefix", prefix)
	case "ternary_expression":
		return span("ConditionalExpression", node).
			SetChild("test", c.field(node, "condition")).
			SetChild("consequent", c.field(node, "consequence")).
			SetChild("alternate", c.field(node, "alternative"))
	case "sequence_expression":
		return span("SequenceExpression", node).SetList("expressions", c.convertAll(c.flattenSequence(node)))
	case "await_expression":
		var arg *ast.Node
		if inner := namedChildren(node); len(inner) > 0 {
			arg = c.convert(inner[0])
		}
		return span("AwaitExpression", node).SetChild("argument", arg)
	case "yield_expression":
		var arg *ast.Node
		if inner := namedChildren(node); len(inner) > 0 {
			arg = c.convert(inner[0])
		}
		return span("YieldExpression", node).
			SetChild("argument", arg).
			SetAttr("delegate", hasToken(node, "*"))
	case "new_expression":
		var args []*ast.Node
		if a := node.ChildByFieldName("arguments"); a != nil {
			args = c.convertAll(namedChildren(a))
		}
		return span("NewExpression", node).
			SetChild("callee", c.field(node, "constructor")).
			SetList("arguments", args)
	case "member_expression", "subscript_expression", "call_expression":
		return c.chain(node)
	}

	return c.opaque(node)
}

// opaque keeps an unmapped grammar node so its children stay reachable.
func (c *converter) opaque(node *sitter.Node) *ast.Node {
	return span(node.Type(), node).SetList("children", c.convertAll(namedChildren(node)))
}

func (c *converter) operator(node *sitter.Node) string {
	if op := node.ChildByFieldName("operator"); op != nil {
		return c.text(op)
	}
	for idx := range int(node.ChildCount()) {
		if child := node.Child(idx); !child.IsNamed() {
			return c.text(child)
		}
	}
	return ""
}

// forClause converts a for-statement header part. Expression statements in
// the header carry their own semicolon, which ESTree does not model.
func (c *converter) forClause(node *sitter.Node) *ast.Node {
	if node == nil {
		return nil
	}
	switch node.Type() {
	case "empty_statement":
		return nil
	case "expression_statement":
		if inner := namedChildren(node); len(inner) > 0 {
			return c.convert(inner[0])
		}
		return nil
	}
	return c.convert(node)
}

func (c *converter) flattenSequence(node *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, child := range namedChildren(node) {
		if child.Type() == "sequence_expression" {
			out = append(out, c.flattenSequence(child)...)
			continue
		}
		out = append(out, child)
	}
	return out
}

// elements converts array elements, keeping holes as nil entries.
func (c *converter) elements(node *sitter.Node) []*ast.Node {
	var out []*ast.Node
	pendingHole := true
	for idx := range int(node.ChildCount()) {
		child := node.Child(idx)
		switch {
		case child.Type() == "comment":
		case !child.IsNamed() && child.Type() == ",":
			if pendingHole {
				out = append(out, nil)
			}
			pendingHole = true
		case !child.IsNamed():
		default:
			out = append(out, c.convert(child))
			pendingHole = false
		}
	}
	return out
}
