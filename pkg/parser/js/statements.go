package js

import (
	"github.com/yaklabco/gojslint/pkg/ast"
)

//nolint:cyclop,funlen // Statement dispatch is one flat switch.
func (p *parser) parseStatement() *ast.Node {
	tok := p.cur()
	start := tok.Start

	switch {
	case p.is("{"):
		return p.parseBlock()
	case p.is(";"):
		p.next()
		return p.node("EmptyStatement", start)
	case p.is("var"), p.is("const"):
		return p.parseVarStatement(start)
	case p.isIdent("let") && (p.peekAt(1).Type == ast.TokenIdentifier || p.peekIs(1, "[", "{")):
		return p.parseVarStatement(start)
	case p.is("function"):
		return p.parseFunction(start, true, false, false)
	case p.isIdent("async") && p.peekIs(1, "function") && !p.peekAt(1).newlineBefore:
		p.next()
		return p.parseFunction(start, true, true, false)
	case p.is("class"):
		return p.parseClass(start, true, false)
	case p.is("if"):
		return p.parseIf(start)
	case p.is("for"):
		return p.parseFor(start)
	case p.is("while"):
		p.next()
		test := p.parseParenExpression()
		body := p.parseStatement()
		return p.node("WhileStatement", start).SetChild("test", test).SetChild("body", body)
	case p.is("do"):
		p.next()
		body := p.parseStatement()
		p.expect("while")
		test := p.parseParenExpression()
		p.eat(";")
		return p.node("DoWhileStatement", start).SetChild("body", body).SetChild("test", test)
	case p.is("return"):
		p.next()
		var arg *ast.Node
		if !p.canInsertSemicolon() {
			arg = p.parseExpression()
		}
		p.consumeSemicolon()
		return p.node("ReturnStatement", start).SetChild("argument", arg)
	case p.is("break"), p.is("continue"):
		p.next()
		var label *ast.Node
		if p.cur().Type == ast.TokenIdentifier && !p.cur().newlineBefore {
			label = p.parseIdentifier()
		}
		p.consumeSemicolon()
		typ := "BreakStatement"
		if tok.Value == "continue" {
			typ = "ContinueStatement"
		}
		return p.node(typ, start).SetChild("label", label)
	case p.is("throw"):
		p.next()
		if p.cur().newlineBefore {
			p.failAt(p.cur().Start, "Illegal newline after throw")
		}
		arg := p.parseExpression()
		p.consumeSemicolon()
		return p.node("ThrowStatement", start).SetChild("argument", arg)
	case p.is("try"):
		return p.parseTry(start)
	case p.is("switch"):
		return p.parseSwitch(start)
	case p.is("with"):
		p.next()
		object := p.parseParenExpression()
		body := p.parseStatement()
		return p.node("WithStatement", start).SetChild("object", object).SetChild("body", body)
	case p.is("debugger"):
		p.next()
		p.consumeSemicolon()
		return p.node("DebuggerStatement", start)
	case p.is("import") && !p.peekIs(1, "(", "."):
		p.requireModule(start)
		return p.parseImport(start)
	case p.is("export"):
		p.requireModule(start)
		return p.parseExport(start)
	case tok.Type == ast.TokenIdentifier && p.peekIs(1, ":"):
		label := p.parseIdentifier()
		p.next()
		body := p.parseStatement()
		return p.node("LabeledStatement", start).SetChild("label", label).SetChild("body", body)
	}

	expr := p.parseExpression()
	p.consumeSemicolon()
	return p.node("ExpressionStatement", start).SetChild("expression", expr)
}

func (p *parser) parseBlock() *ast.Node {
	start := p.expect("{").Start
	var body []*ast.Node
	for !p.is("}") {
		if p.atEOF() {
			p.unexpected()
		}
		body = append(body, p.parseStatement())
	}
	p.next()
	return p.node("BlockStatement", start).SetList("body", body)
}

func (p *parser) parseParenExpression() *ast.Node {
	p.expect("(")
	saved := p.noIn
	p.noIn = false
	expr := p.parseExpression()
	p.noIn = saved
	p.expect(")")
	return expr
}

func (p *parser) parseVarStatement(start int) *ast.Node {
	decl := p.parseVarDeclarations(start)
	p.consumeSemicolon()
	decl.End = p.lastEnd
	return decl
}

// parseVarDeclarations parses `kind a = 1, b` without the trailing semicolon.
func (p *parser) parseVarDeclarations(start int) *ast.Node {
	kind := p.next().Value
	var decls []*ast.Node
	for {
		id := p.parseBindingTarget()
		var init *ast.Node
		if p.eat("=") {
			init = p.parseAssign()
		}
		decls = append(decls, p.node("VariableDeclarator", id.Start).SetChild("id", id).SetChild("init", init))
		if !p.eat(",") {
			break
		}
	}
	return p.node("VariableDeclaration", start).SetList("declarations", decls).SetAttr("kind", kind)
}

func (p *parser) parseIf(start int) *ast.Node {
	p.next()
	test := p.parseParenExpression()
	consequent := p.parseStatement()
	var alternate *ast.Node
	if p.eat("else") {
		alternate = p.parseStatement()
	}
	return p.node("IfStatement", start).
		SetChild("test", test).
		SetChild("consequent", consequent).
		SetChild("alternate", alternate)
}

func (p *parser) parseFor(start int) *ast.Node {
	p.next()
	isAwait := false
	if p.isIdent("await") {
		p.next()
		isAwait = true
	}
	p.expect("(")

	var init *ast.Node
	if !p.is(";") {
		p.noIn = true
		if p.is("var") || p.is("const") ||
			(p.isIdent("let") && (p.peekAt(1).Type == ast.TokenIdentifier || p.peekIs(1, "[", "{"))) {
			init = p.parseVarDeclarations(p.cur().Start)
		} else {
			init = p.parseExpression()
		}
		p.noIn = false

		if p.is("in") || p.isIdent("of") {
			typ := "ForInStatement"
			if p.isIdent("of") {
				typ = "ForOfStatement"
			}
			p.next()
			if init.Type != "VariableDeclaration" {
				init = p.toPattern(init)
			}
			var right *ast.Node
			if typ == "ForOfStatement" {
				right = p.parseAssign()
			} else {
				right = p.parseExpression()
			}
			p.expect(")")
			body := p.parseStatement()
			loop := p.node(typ, start).SetChild("left", init).SetChild("right", right).SetChild("body", body)
			if typ == "ForOfStatement" {
				loop.SetAttr("await", isAwait)
			}
			return loop
		}
	}

	p.expect(";")
	var test, update *ast.Node
	if !p.is(";") {
		test = p.parseExpression()
	}
	p.expect(";")
	if !p.is(")") {
		update = p.parseExpression()
	}
	p.expect(")")
	body := p.parseStatement()
	return p.node("ForStatement", start).
		SetChild("init", init).
		SetChild("test", test).
		SetChild("update", update).
		SetChild("body", body)
}

func (p *parser) parseTry(start int) *ast.Node {
	p.next()
	block := p.parseBlock()
	var handler, finalizer *ast.Node
	if p.is("catch") {
		catchStart := p.next().Start
		var param *ast.Node
		if p.eat("(") {
			param = p.parseBindingTarget()
			p.expect(")")
		}
		body := p.parseBlock()
		handler = p.node("CatchClause", catchStart).SetChild("param", param).SetChild("body", body)
	}
	if p.eat("finally") {
		finalizer = p.parseBlock()
	}
	if handler == nil && finalizer == nil {
		p.failAt(p.lastEnd, "Missing catch or finally clause")
	}
	return p.node("TryStatement", start).
		SetChild("block", block).
		SetChild("handler", handler).
		SetChild("finalizer", finalizer)
}

func (p *parser) parseSwitch(start int) *ast.Node {
	p.next()
	discriminant := p.parseParenExpression()
	p.expect("{")
	var cases []*ast.Node
	for !p.is("}") {
		caseStart := p.cur().Start
		var test *ast.Node
		switch {
		case p.eat("case"):
			test = p.parseExpression()
		case p.eat("default"):
		default:
			p.unexpected()
		}
		p.expect(":")
		var consequent []*ast.Node
		for !p.is("case") && !p.is("default") && !p.is("}") {
			if p.atEOF() {
				p.unexpected()
			}
			consequent = append(consequent, p.parseStatement())
		}
		cases = append(cases, p.node("SwitchCase", caseStart).SetChild("test", test).SetList("consequent", consequent))
	}
	p.next()
	return p.node("SwitchStatement", start).SetChild("discriminant", discriminant).SetList("cases", cases)
}

func (p *parser) parseModuleSource() *ast.Node {
	if p.cur().Type != ast.TokenString {
		p.unexpected()
	}
	return p.parseLiteral()
}

func (p *parser) parseImport(start int) *ast.Node {
	p.next()
	var specifiers []*ast.Node

	if p.cur().Type != ast.TokenString {
		if p.cur().Type == ast.TokenIdentifier {
			local := p.parseIdentifier()
			specifiers = append(specifiers, p.node("ImportDefaultSpecifier", local.Start).SetChild("local", local))
			if !p.eat(",") {
				p.expectContextual("from")
				return p.finishImport(start, specifiers)
			}
		}
		switch {
		case p.is("*"):
			nsStart := p.next().Start
			p.expectContextual("as")
			local := p.parseIdentifier()
			specifiers = append(specifiers, p.node("ImportNamespaceSpecifier", nsStart).SetChild("local", local))
		case p.is("{"):
			p.next()
			for !p.is("}") {
				imported := p.parseModuleExportName()
				var local *ast.Node
				if p.isIdent("as") {
					p.next()
					local = p.parseIdentifier()
				} else {
					local = ast.NewNode("Identifier", imported.Start, imported.End).SetAttr("name", imported.Str("name"))
				}
				specifiers = append(specifiers, p.node("ImportSpecifier", imported.Start).
					SetChild("imported", imported).SetChild("local", local))
				if !p.is("}") {
					p.expect(",")
				}
			}
			p.next()
		default:
			p.unexpected()
		}
		p.expectContextual("from")
	}
	return p.finishImport(start, specifiers)
}

func (p *parser) finishImport(start int, specifiers []*ast.Node) *ast.Node {
	source := p.parseModuleSource()
	p.consumeSemicolon()
	return p.node("ImportDeclaration", start).SetList("specifiers", specifiers).SetChild("source", source)
}

func (p *parser) parseModuleExportName() *ast.Node {
	if p.cur().Type == ast.TokenString {
		return p.parseLiteral()
	}
	return p.parseName()
}

func (p *parser) parseExport(start int) *ast.Node {
	p.next()

	if p.is("default") {
		p.next()
		declStart := p.cur().Start
		var decl *ast.Node
		switch {
		case p.is("function"):
			decl = p.parseFunction(declStart, true, false, true)
		case p.isIdent("async") && p.peekIs(1, "function") && !p.peekAt(1).newlineBefore:
			p.next()
			decl = p.parseFunction(declStart, true, true, true)
		case p.is("class"):
			decl = p.parseClass(declStart, true, true)
		default:
			decl = p.parseAssign()
			p.consumeSemicolon()
		}
		return p.node("ExportDefaultDeclaration", start).SetChild("declaration", decl)
	}

	if p.is("*") {
		p.next()
		var exported *ast.Node
		if p.isIdent("as") {
			p.next()
			exported = p.parseModuleExportName()
		}
		p.expectContextual("from")
		source := p.parseModuleSource()
		p.consumeSemicolon()
		return p.node("ExportAllDeclaration", start).SetChild("exported", exported).SetChild("source", source)
	}

	if p.is("{") {
		p.next()
		var specifiers []*ast.Node
		for !p.is("}") {
			local := p.parseModuleExportName()
			var exported *ast.Node
			if p.isIdent("as") {
				p.next()
				exported = p.parseModuleExportName()
			} else {
				exported = ast.NewNode(local.Type, local.Start, local.End).SetAttr("name", local.Str("name"))
			}
			specifiers = append(specifiers, p.node("ExportSpecifier", local.Start).
				SetChild("local", local).SetChild("exported", exported))
			if !p.is("}") {
				p.expect(",")
			}
		}
		p.next()
		var source *ast.Node
		if p.isIdent("from") {
			p.next()
			source = p.parseModuleSource()
		}
		p.consumeSemicolon()
		return p.node("ExportNamedDeclaration", start).
			SetChild("declaration", nil).
			SetList("specifiers", specifiers).
			SetChild("source", source)
	}

	decl := p.parseStatement()
	switch decl.Type {
	case "VariableDeclaration", "FunctionDeclaration", "ClassDeclaration":
	default:
		p.failAt(decl.Start, "Unexpected export")
	}
	return p.node("ExportNamedDeclaration", start).
		SetChild("declaration", decl).
		SetList("specifiers", nil).
		SetChild("source", nil)
}

func (p *parser) requireModule(start int) {
	if p.sourceType != SourceModule {
		p.failAt(start, "'import' and 'export' may appear only with 'sourceType: module'")
	}
}
