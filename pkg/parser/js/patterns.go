package js

import (
	"github.com/yaklabco/gojslint/pkg/ast"
)

// parseBindingElement parses a binding target with an optional default.
func (p *parser) parseBindingElement() *ast.Node {
	target := p.parseBindingTarget()
	if !p.eat("=") {
		return target
	}
	right := p.parseAssign()
	return p.node("AssignmentPattern", target.Start).SetChild("left", target).SetChild("right", right)
}

func (p *parser) parseBindingTarget() *ast.Node {
	switch {
	case p.is("["):
		return p.parseArrayPattern()
	case p.is("{"):
		return p.parseObjectPattern()
	default:
		return p.parseIdentifier()
	}
}

func (p *parser) parseArrayPattern() *ast.Node {
	start := p.expect("[").Start
	elements := []*ast.Node{}
	for !p.is("]") {
		if p.is(",") {
			p.next()
			elements = append(elements, nil)
			continue
		}
		if p.is("...") {
			restStart := p.next().Start
			arg := p.parseBindingTarget()
			elements = append(elements, p.node("RestElement", restStart).SetChild("argument", arg))
		} else {
			elements = append(elements, p.parseBindingElement())
		}
		if !p.is("]") {
			p.expect(",")
		}
	}
	p.next()
	return p.node("ArrayPattern", start).SetList("elements", elements)
}

func (p *parser) parseObjectPattern() *ast.Node {
	start := p.expect("{").Start
	props := []*ast.Node{}
	for !p.is("}") {
		propStart := p.cur().Start
		if p.is("...") {
			p.next()
			arg := p.parseIdentifier()
			props = append(props, p.node("RestElement", propStart).SetChild("argument", arg))
		} else {
			key, computed := p.parsePropertyKey()
			if p.eat(":") {
				value := p.parseBindingElement()
				props = append(props, p.property(propStart, key, value, computed, false))
			} else {
				if computed || key.Type != "Identifier" {
					p.unexpected()
				}
				value := ast.NewNode("Identifier", key.Start, key.End).SetAttr("name", key.Str("name"))
				if p.eat("=") {
					right := p.parseAssign()
					value = p.node("AssignmentPattern", key.Start).SetChild("left", value).SetChild("right", right)
				}
				props = append(props, p.property(propStart, key, value, false, true))
			}
		}
		if !p.is("}") {
			p.expect(",")
		}
	}
	p.next()
	return p.node("ObjectPattern", start).SetList("properties", props)
}

// toPattern reinterprets an expression parsed ahead of `=`, `in` or `of` as
// an assignment target. Nodes are converted in place.
func (p *parser) toPattern(expr *ast.Node) *ast.Node {
	switch expr.Type {
	case "Identifier", "MemberExpression", "ArrayPattern", "ObjectPattern", "AssignmentPattern", "RestElement":
		return expr
	case "ArrayExpression":
		elements := expr.List("elements")
		for idx, el := range elements {
			if el != nil {
				elements[idx] = p.toRest(el)
			}
		}
		expr.Type = "ArrayPattern"
		expr.SetList("elements", elements)
		return expr
	case "ObjectExpression":
		props := expr.List("properties")
		for idx, prop := range props {
			if prop.Type == "Property" {
				prop.SetChild("value", p.toPattern(prop.Child("value")))
				continue
			}
			props[idx] = p.toRest(prop)
		}
		expr.Type = "ObjectPattern"
		expr.SetList("properties", props)
		return expr
	case "AssignmentExpression":
		if expr.Str("operator") != "=" {
			break
		}
		expr.Type = "AssignmentPattern"
		expr.SetChild("left", p.toPattern(expr.Child("left")))
		return expr
	}
	p.failAt(expr.Start, "Invalid destructuring assignment target")
	return nil
}

func (p *parser) toRest(el *ast.Node) *ast.Node {
	if el.Type != "SpreadElement" {
		return p.toPattern(el)
	}
	el.Type = "RestElement"
	el.SetChild("argument", p.toPattern(el.Child("argument")))
	return el
}
