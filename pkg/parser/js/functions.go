package js

import (
	"github.com/yaklabco/gojslint/pkg/ast"
)

// parseFunction parses `function [*] [name] (params) { body }`. The current
// token is the `function` keyword; a preceding `async` has been consumed.
func (p *parser) parseFunction(start int, isDecl, isAsync, anonymousOK bool) *ast.Node {
	p.expect("function")
	isGen := p.eat("*")

	var id *ast.Node
	if p.cur().Type == ast.TokenIdentifier {
		id = p.parseIdentifier()
	} else if isDecl && !anonymousOK {
		p.unexpected()
	}

	params, body := p.parseFunctionRest(isAsync, isGen)

	typ := "FunctionExpression"
	if isDecl {
		typ = "FunctionDeclaration"
	}
	return p.node(typ, start).
		SetChild("id", id).
		SetList("params", params).
		SetChild("body", body).
		SetAttr("async", isAsync).
		SetAttr("generator", isGen).
		SetAttr("expression", false)
}

// parseMethod parses the parameter list and body of an object or class
// method. The function node starts at the opening parenthesis.
func (p *parser) parseMethod(isAsync, isGen bool) *ast.Node {
	start := p.cur().Start
	params, body := p.parseFunctionRest(isAsync, isGen)
	return p.node("FunctionExpression", start).
		SetChild("id", nil).
		SetList("params", params).
		SetChild("body", body).
		SetAttr("async", isAsync).
		SetAttr("generator", isGen).
		SetAttr("expression", false)
}

func (p *parser) parseFunctionRest(isAsync, isGen bool) ([]*ast.Node, *ast.Node) {
	savedFn, savedAsync, savedGen, savedNoIn := p.inFunction, p.inAsync, p.inGenerator, p.noIn
	p.inFunction, p.inAsync, p.inGenerator, p.noIn = true, isAsync, isGen, false
	defer func() {
		p.inFunction, p.inAsync, p.inGenerator, p.noIn = savedFn, savedAsync, savedGen, savedNoIn
	}()

	params := p.parseParams()
	body := p.parseBlock()
	return params, body
}

func (p *parser) parseParams() []*ast.Node {
	p.expect("(")
	params := []*ast.Node{}
	for !p.is(")") {
		if p.is("...") {
			start := p.next().Start
			arg := p.parseBindingTarget()
			params = append(params, p.node("RestElement", start).SetChild("argument", arg))
		} else {
			params = append(params, p.parseBindingElement())
		}
		if !p.is(")") {
			p.expect(",")
		}
	}
	p.next()
	return params
}

func (p *parser) parseClass(start int, isDecl, anonymousOK bool) *ast.Node {
	p.expect("class")

	var id *ast.Node
	if p.cur().Type == ast.TokenIdentifier {
		id = p.parseIdentifier()
	} else if isDecl && !anonymousOK {
		p.unexpected()
	}

	var superClass *ast.Node
	if p.eat("extends") {
		superClass = p.parseExprSubscripts()
	}

	bodyStart := p.expect("{").Start
	members := []*ast.Node{}
	for !p.is("}") {
		if p.atEOF() {
			p.unexpected()
		}
		if p.eat(";") {
			continue
		}
		members = append(members, p.parseClassMember())
	}
	p.next()
	body := p.node("ClassBody", bodyStart).SetList("body", members)

	typ := "ClassExpression"
	if isDecl {
		typ = "ClassDeclaration"
	}
	return p.node(typ, start).
		SetChild("id", id).
		SetChild("superClass", superClass).
		SetChild("body", body)
}

func (p *parser) parseClassMember() *ast.Node {
	start := p.cur().Start

	isStatic := false
	if p.isIdent("static") && p.modifierFollows() {
		p.next()
		if p.is("{") {
			block := p.parseBlock()
			return p.node("StaticBlock", start).SetList("body", block.List("body"))
		}
		isStatic = true
	}

	isAsync, isGen, kind := p.parseMethodModifiers()
	key, computed := p.parsePropertyKey()

	if p.is("(") {
		methodKind := "method"
		switch {
		case kind != "init":
			methodKind = kind
		case !isStatic && !computed && keyName(key) == "constructor":
			methodKind = "constructor"
		}
		value := p.parseMethod(isAsync, isGen)
		return p.node("MethodDefinition", start).
			SetChild("key", key).
			SetChild("value", value).
			SetAttr("kind", methodKind).
			SetAttr("computed", computed).
			SetAttr("static", isStatic)
	}
	if isAsync || isGen || kind != "init" {
		p.unexpected()
	}

	var value *ast.Node
	if p.eat("=") {
		savedFn := p.inFunction
		p.inFunction = true
		value = p.parseAssign()
		p.inFunction = savedFn
	}
	p.consumeSemicolon()
	return p.node("PropertyDefinition", start).
		SetChild("key", key).
		SetChild("value", value).
		SetAttr("computed", computed).
		SetAttr("static", isStatic)
}

// keyName returns the static name of an Identifier or string Literal key.
func keyName(key *ast.Node) string {
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
