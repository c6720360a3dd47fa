package expr

// Grammar, lowest precedence first:
//
//	sum     := product (('+' | '-') product)*
//	product := unary (('*' | '/') unary)*
//	unary   := ('+' | '-') unary | power
//	power   := primary ('^' unary)?
//	primary := number | '(' sum ')' | '√' primary
//
// '^' is right associative; '√' binds to the primary that follows it.

type parser struct {
	l   lexer
	cur token
}

func parse(s string) (node, error) {
	p := &parser{l: lexer{s: s}}
	p.next()
	if p.cur.kind == tokEOF {
		return nil, parseErr("empty expression")
	}
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, parseErr("unexpected %q at %d", p.cur.text, p.cur.pos)
	}
	return n, nil
}

func (p *parser) next() { p.cur = p.l.next() }

func (p *parser) parseSum() (node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokStar || p.cur.kind == tokSlash {
		op := p.cur.text[0]
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return nodeUnary{op: op, x: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokCaret {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return nodeBinary{op: '^', left: base, right: exp}, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.cur.kind {
	case tokNumber:
		v := p.cur.num
		p.next()
		return nodeNumber{v: v}, nil
	case tokSqrt:
		p.next()
		x, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return nodeSqrt{x: x}, nil
	case tokLParen:
		p.next()
		ex, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, parseErr("expected ')' at %d", p.cur.pos)
		}
		p.next()
		return ex, nil
	case tokEOF:
		return nil, parseErr("unexpected end of expression")
	default:
		return nil, parseErr("unexpected %q at %d", p.cur.text, p.cur.pos)
	}
}
