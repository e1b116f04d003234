package js

import (
	"github.com/yaklabco/gojslint/pkg/ast"
)

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	assignOps = map[string]bool{
		"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true, "**=": true,
		"<<=": true, ">>=": true, ">>>=": true, "&=": true, "|=": true, "^=": true,
		"&&=": true, "||=": true, "??=": true,
	}

	binaryPrecedence = map[string]int{
		"??": 1, "||": 1, "&&": 2, "|": 3, "^": 4, "&": 5,
		"==": 6, "!=": 6, "===": 6, "!==": 6,
		"<": 7, ">": 7, "<=": 7, ">=": 7, "instanceof": 7, "in": 7,
		"<<": 8, ">>": 8, ">>>": 8,
		"+": 9, "-": 9,
		"*": 10, "/": 10, "%": 10,
		"**": 11,
	}
)

func (p *parser) parseExpression() *ast.Node {
	start := p.cur().Start
	expr := p.parseAssign()
	if !p.is(",") {
		return expr
	}
	exprs := []*ast.Node{expr}
	for p.eat(",") {
		exprs = append(exprs, p.parseAssign())
	}
	return p.node("SequenceExpression", start).SetList("expressions", exprs)
}

func (p *parser) parseAssign() *ast.Node {
	start := p.cur().Start

	if async, ok := p.arrowAhead(); ok {
		return p.parseArrow(start, async)
	}
	if p.inGenerator && p.isIdent("yield") {
		return p.parseYield(start)
	}

	left := p.parseConditional()
	op := p.cur()
	if op.Type != ast.TokenPunctuator || !assignOps[op.Value] {
		return left
	}
	if op.Value == "=" {
		left = p.toPattern(left)
	} else if !left.Is("Identifier", "MemberExpression") {
		p.failAt(left.Start, "Invalid left-hand side in assignment")
	}
	p.next()
	right := p.parseAssign()
	return p.node("AssignmentExpression", start).
		SetChild("left", left).
		SetAttr("operator", op.Value).
		SetChild("right", right)
}

// arrowAhead reports whether an arrow function starts at the current token.
func (p *parser) arrowAhead() (async bool, ok bool) {
	offset := 0
	if p.isIdent("async") && !p.peekAt(1).newlineBefore &&
		(p.peekAt(1).Type == ast.TokenIdentifier || p.peekIs(1, "(")) {
		offset = 1
	}

	tok := p.peekAt(offset)
	switch {
	case tok.Type == ast.TokenIdentifier:
		arrow := p.peekAt(offset + 1)
		return offset == 1, arrow.Is("=>") && !arrow.newlineBefore
	case tok.Is("("):
		closing := p.matchingParen(p.idx + offset)
		if closing < 0 || closing+1 >= len(p.toks) {
			return false, false
		}
		arrow := p.toks[closing+1]
		return offset == 1, arrow.Is("=>") && !arrow.newlineBefore
	}
	return false, false
}

func (p *parser) parseArrow(start int, async bool) *ast.Node {
	if async {
		p.next()
	}

	savedFn, savedAsync, savedGen := p.inFunction, p.inAsync, p.inGenerator
	p.inFunction, p.inAsync, p.inGenerator = true, async, false
	defer func() {
		p.inFunction, p.inAsync, p.inGenerator = savedFn, savedAsync, savedGen
	}()

	var params []*ast.Node
	if p.is("(") {
		params = p.parseParams()
	} else {
		params = []*ast.Node{p.parseIdentifier()}
	}
	p.expect("=>")

	var body *ast.Node
	expression := !p.is("{")
	if expression {
		body = p.parseAssign()
	} else {
		savedNoIn := p.noIn
		p.noIn = false
		body = p.parseBlock()
		p.noIn = savedNoIn
	}

	return p.node("ArrowFunctionExpression", start).
		SetChild("id", nil).
		SetList("params", params).
		SetChild("body", body).
		SetAttr("async", async).
		SetAttr("generator", false).
		SetAttr("expression", expression)
}

func (p *parser) parseYield(start int) *ast.Node {
	p.next()
	delegate := false
	var arg *ast.Node
	if !p.cur().newlineBefore {
		delegate = p.eat("*")
		if delegate || !(p.canInsertSemicolon() || p.is(")") || p.is("]") || p.is(",") || p.is(":")) {
			arg = p.parseAssign()
		}
	}
	return p.node("YieldExpression", start).SetChild("argument", arg).SetAttr("delegate", delegate)
}

func (p *parser) parseConditional() *ast.Node {
	start := p.cur().Start
	test := p.parseBinary(0)
	if !p.is("?") {
		return test
	}
	p.next()
	savedNoIn := p.noIn
	p.noIn = false
	consequent := p.parseAssign()
	p.noIn = savedNoIn
	p.expect(":")
	alternate := p.parseAssign()
	return p.node("ConditionalExpression", start).
		SetChild("test", test).
		SetChild("consequent", consequent).
		SetChild("alternate", alternate)
}

func (p *parser) operatorPrecedence() (string, int) {
	tok := p.cur()
	if tok.Type != ast.TokenPunctuator && tok.Type != ast.TokenKeyword {
		return "", 0
	}
	if tok.Value == "in" && p.noIn {
		return "", 0
	}
	return tok.Value, binaryPrecedence[tok.Value]
}

func (p *parser) parseBinary(minPrec int) *ast.Node {
	start := p.cur().Start
	left := p.parseUnary()
	for {
		op, prec := p.operatorPrecedence()
		if prec == 0 || prec <= minPrec {
			return left
		}
		p.next()
		var right *ast.Node
		if op == "**" {
			right = p.parseBinary(prec - 1)
		} else {
			right = p.parseBinary(prec)
		}
		typ := "BinaryExpression"
		if op == "||" || op == "&&" || op == "??" {
			typ = "LogicalExpression"
		}
		left = p.node(typ, start).SetChild("left", left).SetAttr("operator", op).SetChild("right", right)
	}
}

func (p *parser) awaitAllowed() bool {
	return p.inAsync || (!p.inFunction && p.sourceType == SourceModule)
}

func (p *parser) parseUnary() *ast.Node {
	tok := p.cur()
	start := tok.Start

	switch {
	case tok.Type == ast.TokenPunctuator && (tok.Value == "!" || tok.Value == "~" || tok.Value == "+" || tok.Value == "-"),
		tok.Type == ast.TokenKeyword && (tok.Value == "typeof" || tok.Value == "void" || tok.Value == "delete"):
		p.next()
		arg := p.parseUnary()
		return p.node("UnaryExpression", start).
			SetAttr("operator", tok.Value).
			SetAttr("prefix", true).
			SetChild("argument", arg)
	case tok.Is("++") || tok.Is("--"):
		p.next()
		arg := p.parseUnary()
		return p.node("UpdateExpression", start).
			SetAttr("operator", tok.Value).
			SetAttr("prefix", true).
			SetChild("argument", arg)
	case p.isIdent("await") && p.awaitAllowed():
		p.next()
		arg := p.parseUnary()
		return p.node("AwaitExpression", start).SetChild("argument", arg)
	}

	expr := p.parseExprSubscripts()
	if (p.is("++") || p.is("--")) && !p.cur().newlineBefore {
		op := p.next().Value
		return p.node("UpdateExpression", start).
			SetAttr("operator", op).
			SetAttr("prefix", false).
			SetChild("argument", expr)
	}
	return expr
}

func (p *parser) parseExprSubscripts() *ast.Node {
	start := p.cur().Start
	var base *ast.Node
	if p.is("new") {
		base = p.parseNew()
	} else {
		base = p.parsePrimary()
	}
	return p.parseSubscripts(base, start, false)
}

//nolint:cyclop // One case per subscript form.
func (p *parser) parseSubscripts(base *ast.Node, start int, noCalls bool) *ast.Node {
	chained := false
	for {
		switch {
		case p.is("."):
			p.next()
			prop := p.parseName()
			base = p.member(start, base, prop, false, false)
		case p.is("?.") && !noCalls:
			p.next()
			chained = true
			switch {
			case p.is("("):
				args := p.parseArguments()
				base = p.node("CallExpression", start).
					SetChild("callee", base).
					SetList("arguments", args).
					SetAttr("optional", true)
			case p.is("["):
				prop := p.parseComputedMember()
				base = p.member(start, base, prop, true, true)
			default:
				prop := p.parseName()
				base = p.member(start, base, prop, false, true)
			}
		case p.is("["):
			prop := p.parseComputedMember()
			base = p.member(start, base, prop, true, false)
		case p.is("(") && !noCalls:
			args := p.parseArguments()
			base = p.node("CallExpression", start).
				SetChild("callee", base).
				SetList("arguments", args).
				SetAttr("optional", false)
		case p.cur().Type == ast.TokenTemplate:
			quasi := p.parseTemplate()
			base = p.node("TaggedTemplateExpression", start).SetChild("tag", base).SetChild("quasi", quasi)
		default:
			if chained {
				return ast.NewNode("ChainExpression", base.Start, base.End).SetChild("expression", base)
			}
			return base
		}
	}
}

func (p *parser) member(start int, object, property *ast.Node, computed, optional bool) *ast.Node {
	return p.node("MemberExpression", start).
		SetChild("object", object).
		SetChild("property", property).
		SetAttr("computed", computed).
		SetAttr("optional", optional)
}

func (p *parser) parseComputedMember() *ast.Node {
	p.expect("[")
	savedNoIn := p.noIn
	p.noIn = false
	prop := p.parseExpression()
	p.noIn = savedNoIn
	p.expect("]")
	return prop
}

func (p *parser) parseArguments() []*ast.Node {
	p.expect("(")
	savedNoIn := p.noIn
	p.noIn = false
	defer func() { p.noIn = savedNoIn }()

	args := []*ast.Node{}
	for !p.is(")") {
		if p.is("...") {
			start := p.next().Start
			arg := p.parseAssign()
			args = append(args, p.node("SpreadElement", start).SetChild("argument", arg))
		} else {
			args = append(args, p.parseAssign())
		}
		if !p.is(")") {
			p.expect(",")
		}
	}
	p.next()
	return args
}

func (p *parser) parseNew() *ast.Node {
	start := p.next().Start
	if p.is(".") {
		meta := p.node("Identifier", start).SetAttr("name", "new")
		p.next()
		prop := p.parseName()
		return p.node("MetaProperty", start).SetChild("meta", meta).SetChild("property", prop)
	}

	calleeStart := p.cur().Start
	var callee *ast.Node
	if p.is("new") {
		callee = p.parseNew()
	} else {
		callee = p.parsePrimary()
	}
	callee = p.parseSubscripts(callee, calleeStart, true)

	args := []*ast.Node{}
	if p.is("(") {
		args = p.parseArguments()
	}
	return p.node("NewExpression", start).SetChild("callee", callee).SetList("arguments", args)
}

//nolint:cyclop,funlen // One case per primary expression form.
func (p *parser) parsePrimary() *ast.Node {
	tok := p.cur()
	start := tok.Start

	switch tok.Type {
	case ast.TokenIdentifier:
		if tok.Value == "async" && p.peekIs(1, "function") && !p.peekAt(1).newlineBefore {
			p.next()
			return p.parseFunction(start, false, true, false)
		}
		return p.parseIdentifier()
	case ast.TokenNumeric, ast.TokenString, ast.TokenNull, ast.TokenBoolean, ast.TokenRegExp:
		return p.parseLiteral()
	case ast.TokenTemplate:
		return p.parseTemplate()
	case ast.TokenKeyword:
		switch tok.Value {
		case "this":
			p.next()
			return p.node("ThisExpression", start)
		case "super":
			p.next()
			return p.node("Super", start)
		case "function":
			return p.parseFunction(start, false, false, false)
		case "class":
			return p.parseClass(start, false, false)
		case "import":
			p.next()
			if p.eat(".") {
				meta := ast.NewNode("Identifier", start, start+len("import")).SetAttr("name", "import")
				prop := p.parseName()
				return p.node("MetaProperty", start).SetChild("meta", meta).SetChild("property", prop)
			}
			p.expect("(")
			source := p.parseAssign()
			p.expect(")")
			return p.node("ImportExpression", start).SetChild("source", source)
		}
	case ast.TokenPunctuator:
		switch tok.Value {
		case "(":
			p.next()
			savedNoIn := p.noIn
			p.noIn = false
			expr := p.parseExpression()
			p.noIn = savedNoIn
			p.expect(")")
			return expr
		case "[":
			return p.parseArray()
		case "{":
			return p.parseObject()
		}
	}

	p.unexpected()
	return nil
}

func (p *parser) parseLiteral() *ast.Node {
	return NewLiteral(p.next().Token)
}

// parseTemplate produces an opaque TemplateLiteral covering the whole token.
func (p *parser) parseTemplate() *ast.Node {
	tok := p.next()
	return p.node("TemplateLiteral", tok.Start).
		SetList("quasis", nil).
		SetList("expressions", nil).
		SetAttr("raw", tok.Value)
}

func (p *parser) parseArray() *ast.Node {
	start := p.expect("[").Start
	savedNoIn := p.noIn
	p.noIn = false
	defer func() { p.noIn = savedNoIn }()

	elements := []*ast.Node{}
	for !p.is("]") {
		if p.is(",") {
			p.next()
			elements = append(elements, nil)
			continue
		}
		if p.is("...") {
			spreadStart := p.next().Start
			arg := p.parseAssign()
			elements = append(elements, p.node("SpreadElement", spreadStart).SetChild("argument", arg))
		} else {
			elements = append(elements, p.parseAssign())
		}
		if !p.is("]") {
			p.expect(",")
		}
	}
	p.next()
	return p.node("ArrayExpression", start).SetList("elements", elements)
}

func (p *parser) parseObject() *ast.Node {
	start := p.expect("{").Start
	savedNoIn := p.noIn
	p.noIn = false
	defer func() { p.noIn = savedNoIn }()

	props := []*ast.Node{}
	for !p.is("}") {
		if p.is("...") {
			spreadStart := p.next().Start
			arg := p.parseAssign()
			props = append(props, p.node("SpreadElement", spreadStart).SetChild("argument", arg))
		} else {
			props = append(props, p.parseProperty())
		}
		if !p.is("}") {
			p.expect(",")
		}
	}
	p.next()
	return p.node("ObjectExpression", start).SetList("properties", props)
}

// modifierFollows reports whether the identifier at the current position is
// a modifier (async, get, set, static) rather than a key.
func (p *parser) modifierFollows() bool {
	return !p.peekIs(1, ",", ":", "(", "}", "=", ";") && p.peekAt(1).Type != "EOF"
}

func (p *parser) parseProperty() *ast.Node {
	start := p.cur().Start
	isAsync, isGen, kind := p.parseMethodModifiers()

	key, computed := p.parsePropertyKey()

	if p.is("(") {
		value := p.parseMethod(isAsync, isGen)
		return p.node("Property", start).
			SetChild("key", key).
			SetChild("value", value).
			SetAttr("kind", kind).
			SetAttr("method", kind == "init").
			SetAttr("shorthand", false).
			SetAttr("computed", computed)
	}
	if isAsync || isGen || kind != "init" {
		p.unexpected()
	}

	if p.eat(":") {
		value := p.parseAssign()
		return p.property(start, key, value, computed, false)
	}

	if computed || key.Type != "Identifier" {
		p.unexpected()
	}
	value := ast.NewNode("Identifier", key.Start, key.End).SetAttr("name", key.Str("name"))
	if p.eat("=") {
		right := p.parseAssign()
		value = p.node("AssignmentPattern", key.Start).SetChild("left", value).SetChild("right", right)
	}
	return p.property(start, key, value, false, true)
}

func (p *parser) property(start int, key, value *ast.Node, computed, shorthand bool) *ast.Node {
	return p.node("Property", start).
		SetChild("key", key).
		SetChild("value", value).
		SetAttr("kind", "init").
		SetAttr("method", false).
		SetAttr("shorthand", shorthand).
		SetAttr("computed", computed)
}

func (p *parser) parseMethodModifiers() (isAsync, isGen bool, kind string) {
	kind = "init"
	if p.isIdent("async") && !p.peekAt(1).newlineBefore && p.modifierFollows() {
		isAsync = true
		p.next()
	}
	if p.eat("*") {
		isGen = true
	}
	if !isAsync && !isGen && (p.isIdent("get") || p.isIdent("set")) && p.modifierFollows() {
		kind = p.next().Value
	}
	return isAsync, isGen, kind
}

func (p *parser) parsePropertyKey() (*ast.Node, bool) {
	if p.is("[") {
		p.next()
		savedNoIn := p.noIn
		p.noIn = false
		key := p.parseAssign()
		p.noIn = savedNoIn
		p.expect("]")
		return key, true
	}
	switch p.cur().Type {
	case ast.TokenString, ast.TokenNumeric:
		return p.parseLiteral(), false
	default:
		return p.parseName(), false
	}
}
