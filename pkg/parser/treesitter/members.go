//go:build cgo

package treesitter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/gojslint/pkg/ast"
)

func (c *converter) params(node *sitter.Node) []*ast.Node {
	if node == nil {
		return nil
	}
	if node.Type() != "formal_parameters" {
		return []*ast.Node{c.convert(node)}
	}
	return c.convertAll(namedChildren(node))
}

func (c *converter) function(estree string, node *sitter.Node) *ast.Node {
	return span(estree, node).
		SetChild("id", c.field(node, "name")).
		SetList("params", c.params(node.ChildByFieldName("parameters"))).
		SetChild("body", c.field(node, "body")).
		SetAttr("async", hasToken(node, "async")).
		SetAttr("generator", hasToken(node, "*") || strings.HasPrefix(node.Type(), "generator_")).
		SetAttr("expression", false)
}

func (c *converter) arrow(node *sitter.Node) *ast.Node {
	params := node.ChildByFieldName("parameters")
	if params == nil {
		params = node.ChildByFieldName("parameter")
	}
	body := node.ChildByFieldName("body")
	return span("ArrowFunctionExpression", node).
		SetChild("id", nil).
		SetList("params", c.params(params)).
		SetChild("body", c.convert(body)).
		SetAttr("async", hasToken(node, "async")).
		SetAttr("generator", false).
		SetAttr("expression", body != nil && body.Type() != "statement_block")
}

// method converts the parameters and body of a method_definition to a
// FunctionExpression starting at the opening parenthesis.
func (c *converter) method(node *sitter.Node) *ast.Node {
	params := node.ChildByFieldName("parameters")
	body := node.ChildByFieldName("body")
	start := int(node.StartByte())
	if params != nil {
		start = int(params.StartByte())
	}
	return ast.NewNode("FunctionExpression", start, int(node.EndByte())).
		SetChild("id", nil).
		SetList("params", c.params(params)).
		SetChild("body", c.convert(body)).
		SetAttr("async", hasToken(node, "async")).
		SetAttr("generator", hasToken(node, "*")).
		SetAttr("expression", false)
}

// key converts a property or method name and reports whether it is computed.
func (c *converter) key(name *sitter.Node) (*ast.Node, bool) {
	if name == nil {
		return nil, false
	}
	if name.Type() == "computed_property_name" {
		if inner := namedChildren(name); len(inner) > 0 {
			return c.convert(inner[0]), true
		}
		return nil, true
	}
	return c.convert(name), false
}

func methodKind(node *sitter.Node) string {
	switch {
	case hasToken(node, "get"):
		return "get"
	case hasToken(node, "set"):
		return "set"
	}
	return "init"
}

func staticKeyName(key *ast.Node) string {
	switch key.Type {
	case "Identifier":
		return key.Str("name")
	case "Literal":
		if s, ok := key.Get("value").(string); ok {
			return s
		}
	}
	return ""
}

func (c *converter) classMembers(body *sitter.Node) []*ast.Node {
	if body == nil {
		return nil
	}
	var out []*ast.Node
	for _, member := range namedChildren(body) {
		isStatic := hasToken(member, "static")
		switch member.Type() {
		case "method_definition":
			key, computed := c.key(member.ChildByFieldName("name"))
			kind := methodKind(member)
			switch {
			case kind != "init":
			case !isStatic && !computed && key != nil && staticKeyName(key) == "constructor":
				kind = "constructor"
			default:
				kind = "method"
			}
			out = append(out, span("MethodDefinition", member).
				SetChild("key", key).
				SetChild("value", c.method(member)).
				SetAttr("kind", kind).
				SetAttr("computed", computed).
				SetAttr("static", isStatic))
		case "field_definition":
			key, computed := c.key(member.ChildByFieldName("property"))
			out = append(out, span("PropertyDefinition", member).
				SetChild("key", key).
				SetChild("value", c.field(member, "value")).
				SetAttr("computed", computed).
				SetAttr("static", isStatic))
		case "class_static_block":
			var stmts []*ast.Node
			if block := member.ChildByFieldName("body"); block != nil {
				stmts = c.convertAll(namedChildren(block))
			}
			out = append(out, span("StaticBlock", member).SetList("body", stmts))
		default:
			if conv := c.convert(member); conv != nil {
				out = append(out, conv)
			}
		}
	}
	return out
}

func property(node *sitter.Node, key, value *ast.Node, kind string, computed, shorthand bool) *ast.Node {
	return span("Property", node).
		SetChild("key", key).
		SetChild("value", value).
		SetAttr("kind", kind).
		SetAttr("method", false).
		SetAttr("shorthand", shorthand).
		SetAttr("computed", computed)
}

// shorthand builds the separate key and value identifiers of `{a}`.
func (c *converter) shorthand(node *sitter.Node) (*ast.Node, *ast.Node) {
	name := c.text(node)
	return span("Identifier", node).SetAttr("name", name), span("Identifier", node).SetAttr("name", name)
}

func (c *converter) objectMembers(node *sitter.Node) []*ast.Node {
	var out []*ast.Node
	for _, member := range namedChildren(node) {
		switch member.Type() {
		case "pair":
			key, computed := c.key(member.ChildByFieldName("key"))
			out = append(out, property(member, key, c.field(member, "value"), "init", computed, false))
		case "shorthand_property_identifier":
			key, value := c.shorthand(member)
			out = append(out, property(member, key, value, "init", false, true))
		case "method_definition":
			key, computed := c.key(member.ChildByFieldName("name"))
			kind := methodKind(member)
			out = append(out, property(member, key, c.method(member), kind, computed, false).
				SetAttr("method", kind == "init"))
		default:
			if conv := c.convert(member); conv != nil {
				out = append(out, conv)
			}
		}
	}
	return out
}

func (c *converter) patternMembers(node *sitter.Node) []*ast.Node {
	var out []*ast.Node
	for _, member := range namedChildren(node) {
		switch member.Type() {
		case "pair_pattern":
			key, computed := c.key(member.ChildByFieldName("key"))
			out = append(out, property(member, key, c.field(member, "value"), "init", computed, false))
		case "shorthand_property_identifier_pattern":
			key, value := c.shorthand(member)
			out = append(out, property(member, key, value, "init", false, true))
		case "object_assignment_pattern":
			left := member.ChildByFieldName("left")
			if left == nil || left.Type() != "shorthand_property_identifier_pattern" {
				out = append(out, c.opaque(member))
				continue
			}
			key, id := c.shorthand(left)
			value := span("AssignmentPattern", member).
				SetChild("left", id).
				SetChild("right", c.field(member, "right"))
			out = append(out, property(member, key, value, "init", false, true))
		default:
			if conv := c.convert(member); conv != nil {
				out = append(out, conv)
			}
		}
	}
	return out
}

// chain converts member accesses and calls, wrapping the outermost link of
// an optional chain in a ChainExpression.
func (c *converter) chain(node *sitter.Node) *ast.Node {
	var out *ast.Node
	var inner *ast.Node
	optional := node.ChildByFieldName("optional_chain") != nil

	switch node.Type() {
	case "member_expression":
		inner = c.field(node, "object")
		out = span("MemberExpression", node).
			SetChild("object", inner).
			SetChild("property", c.field(node, "property")).
			SetAttr("computed", false).
			SetAttr("optional", optional)
	case "subscript_expression":
		inner = c.field(node, "object")
		out = span("MemberExpression", node).
			SetChild("object", inner).
			SetChild("property", c.field(node, "index")).
			SetAttr("computed", true).
			SetAttr("optional", optional)
	default:
		inner = c.field(node, "function")
		args := node.ChildByFieldName("arguments")
		if args != nil && args.Type() == "template_string" {
			return span("TaggedTemplateExpression", node).
				SetChild("tag", inner).
				SetChild("quasi", c.convert(args))
		}
		var list []*ast.Node
		if args != nil {
			list = c.convertAll(namedChildren(args))
		}
		out = span("CallExpression", node).
			SetChild("callee", inner).
			SetList("arguments", list).
			SetAttr("optional", optional)
	}

	if !optional && !c.chained[inner] {
		return out
	}
	if continuesChain(node) {
		if c.chained == nil {
			c.chained = map[*ast.Node]bool{}
		}
		c.chained[out] = true
		return out
	}
	return ast.NewNode("ChainExpression", out.Start, out.End).SetChild("expression", out)
}

// continuesChain reports whether the parent of node extends the same chain.
func continuesChain(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "member_expression", "subscript_expression":
		return sameNode(parent.ChildByFieldName("object"), node)
	case "call_expression":
		return sameNode(parent.ChildByFieldName("function"), node)
	}
	return false
}

func (c *converter) importDeclaration(node *sitter.Node) *ast.Node {
	var specifiers []*ast.Node
	for _, child := range namedChildren(node) {
		if child.Type() != "import_clause" {
			continue
		}
		for _, part := range namedChildren(child) {
			switch part.Type() {
			case "identifier":
				local := c.convert(part)
				specifiers = append(specifiers, span("ImportDefaultSpecifier", part).SetChild("local", local))
			case "namespace_import":
				if ids := namedChildren(part); len(ids) > 0 {
					specifiers = append(specifiers, span("ImportNamespaceSpecifier", part).
						SetChild("local", c.convert(ids[0])))
				}
			case "named_imports":
				for _, spec := range namedChildren(part) {
					imported := c.field(spec, "name")
					local := c.field(spec, "alias")
					if local == nil && imported != nil {
						local = ast.NewNode(imported.Type, imported.Start, imported.End).
							SetAttr("name", imported.Str("name"))
					}
					specifiers = append(specifiers, span("ImportSpecifier", spec).
						SetChild("imported", imported).
						SetChild("local", local))
				}
			}
		}
	}
	return span("ImportDeclaration", node).
		SetList("specifiers", specifiers).
		SetChild("source", c.field(node, "source"))
}
