package dice

// parser is a handwritten recursive-descent parser for the dice-notation
// grammar. The grammar is LL(1) once the lexer's maximal munch has
// already distinguished 'd' from 'dF' and the keep/reroll/explode prefixes,
// so the parser itself never needs to backtrack: one token of lookahead,
// held in cur, is enough everywhere.
//
// parseMathExpr/parseAddExpr/parseMultExpr implement the precedence the
// grammar's prose specifies (parens tightest, then postfix modifiers, then
// * and /, then + and - loosest) rather than the literal production names
// in spec.md's EBNF, whose "mult_expr"/"add_expr" labels are swapped
// relative to what they actually bind — see DESIGN.md.
type parser struct {
	lex *lexer
	cur token
}

// parseExpr parses a complete dice expression and returns its AST, or
// ErrSyntax if the input is malformed in any way, including trailing
// garbage after an otherwise-valid expression.
func parseExpr(input string) (*Node, error) {
	p := &parser{lex: newLexer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.parseMathExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, ErrSyntax
	}
	return n, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		p.cur = token{kind: tokEOF}
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) parseMathExpr() (*Node, error) {
	return p.parseAddExpr()
}

// parseAddExpr is the loosest-binding level: left-associative chains of
// '+' and '-' over multExpr terms.
func (p *parser) parseAddExpr() (*Node, error) {
	left, err := p.parseMultExpr()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := OpAdd
		if p.cur.kind == tokMinus {
			op = OpSub
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultExpr()
		if err != nil {
			return nil, err
		}
		left = newMath(op, left, right)
	}
	return left, nil
}

// parseMultExpr binds tighter than +/-: left-associative chains of '*' and
// '/' over atoms.
func (p *parser) parseMultExpr() (*Node, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokStar || p.cur.kind == tokSlash {
		op := OpMul
		if p.cur.kind == tokSlash {
			op = OpDiv
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = newMath(op, left, right)
	}
	return left, nil
}

// parseAtom is the grammar's "paren" production: a parenthesized
// expression, a grouped roll, or a basic roll / bare number.
func (p *parser) parseAtom() (*Node, error) {
	switch p.cur.kind {
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseMathExpr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, ErrSyntax
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil
	case tokLBrace:
		return p.parseGroupedRoll()
	default:
		return p.parseBasicRollOrNumber()
	}
}

// parseNumber parses the grammar's "number" production: a bare digit
// sequence or a bracketed math expression used where a literal count is
// grammatically required. It is mandatory at its call sites.
func (p *parser) parseNumber() (*Node, error) {
	switch p.cur.kind {
	case tokNumber:
		v := p.cur.num
		if err := p.advance(); err != nil {
			return nil, err
		}
		return newLiteral(v), nil
	case tokLBracket:
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseMathExpr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRBracket {
			return nil, ErrSyntax
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, ErrSyntax
	}
}

// parseOptNumber parses the grammar's "opt_number": a number if one is
// present, else the implicit literal 1. hadNumber tells the caller whether
// anything was actually consumed, which parseBasicRollOrNumber needs to
// tell "bare number" from "nothing at all" apart.
func (p *parser) parseOptNumber() (node *Node, hadNumber bool, err error) {
	if p.cur.kind == tokNumber || p.cur.kind == tokLBracket {
		n, err := p.parseNumber()
		return n, true, err
	}
	return newLiteral(1), false, nil
}

// parseBasicRollOrNumber parses an opt_number, then decides whether what
// follows is 'd'/'dF' (making it a basic_roll) or nothing of the sort
// (making the already-consumed number the atom itself).
func (p *parser) parseBasicRollOrNumber() (*Node, error) {
	count, hadNumber, err := p.parseOptNumber()
	if err != nil {
		return nil, err
	}
	switch p.cur.kind {
	case tokD:
		if err := p.advance(); err != nil {
			return nil, err
		}
		sides, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		roll := newRoll(RollNormal, count, sides)
		ex, err := p.parseBasicExtras()
		if err != nil {
			return nil, err
		}
		return wrapExtras(roll, ex), nil
	case tokDF:
		if err := p.advance(); err != nil {
			return nil, err
		}
		roll := newRoll(RollFate, count, nil)
		ex, err := p.parseBasicExtras()
		if err != nil {
			return nil, err
		}
		return wrapExtras(roll, ex), nil
	default:
		if !hadNumber {
			return nil, ErrSyntax
		}
		return count, nil
	}
}

// parseGroupedRoll parses '{' group_inner '}' group_extras. The grammar
// gives no syntax for an explicit repetition count, so Group's num is
// always the implicit literal 1 (see DESIGN.md).
func (p *parser) parseGroupedRoll() (*Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	first, err := p.parseMathExpr()
	if err != nil {
		return nil, err
	}
	exprs := []*Node{first}
	for p.cur.kind == tokComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseMathExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	if p.cur.kind != tokRBrace {
		return nil, ErrSyntax
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	group := newGroup(newLiteral(1), exprs)
	ex, err := p.parseGroupExtras()
	if err != nil {
		return nil, err
	}
	return wrapGroupExtras(group, ex), nil
}

// parseBasicExtras parses reroll? explode? keep? success?, in that fixed
// written order, which also happens to be the canonical wrap order
// wrapExtras applies.
func (p *parser) parseBasicExtras() (*extras, error) {
	ex := &extras{}
	if p.cur.kind == tokR || p.cur.kind == tokRO {
		once := p.cur.kind == tokRO
		if err := p.advance(); err != nil {
			return nil, err
		}
		cmp, err := p.parseExplicitCompare()
		if err != nil {
			return nil, err
		}
		ex.reroll = newReroll(once, cmp)
	}
	if p.cur.kind == tokBang || p.cur.kind == tokBangBang || p.cur.kind == tokBangP {
		mode := ExplodeStandard
		switch p.cur.kind {
		case tokBangBang:
			mode = ExplodeCompound
		case tokBangP:
			mode = ExplodePenetrate
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		cmp, err := p.parseOptCompare()
		if err != nil {
			return nil, err
		}
		ex.explode = newExplode(mode, cmp)
	}
	if k, ok, err := p.tryParseKeep(); err != nil {
		return nil, err
	} else if ok {
		ex.keep = k
	}
	succ, err := p.tryParseSuccess()
	if err != nil {
		return nil, err
	}
	ex.success = succ
	return ex, nil
}

// parseGroupExtras parses keep? success?, the subset of modifiers
// admissible on a grouped roll.
func (p *parser) parseGroupExtras() (*extras, error) {
	ex := &extras{}
	if k, ok, err := p.tryParseKeep(); err != nil {
		return nil, err
	} else if ok {
		ex.keep = k
	}
	succ, err := p.tryParseSuccess()
	if err != nil {
		return nil, err
	}
	ex.success = succ
	return ex, nil
}

func (p *parser) tryParseKeep() (*Node, bool, error) {
	var mode KeepMode
	switch p.cur.kind {
	case tokKH:
		mode = KeepHigh
	case tokKL:
		mode = KeepLow
	case tokDH:
		mode = DropHigh
	case tokDL:
		// The grammar lists 'dl' as a keep-token alongside 'dh'; both
		// drop-low actions map here (spec.md's design notes flag a
		// redundant second 'dl' variant in the source grammar that this
		// single token already collapses).
		mode = DropLow
	default:
		return nil, false, nil
	}
	if err := p.advance(); err != nil {
		return nil, false, err
	}
	amount, err := p.parseNumber()
	if err != nil {
		return nil, false, err
	}
	return newKeep(mode, amount), true, nil
}

// tryParseSuccess parses an optional success modifier: compare fail?.
func (p *parser) tryParseSuccess() (*Node, error) {
	switch p.cur.kind {
	case tokEq, tokLt, tokGt, tokNumber, tokLBracket:
		succ, err := p.parseCompare()
		if err != nil {
			return nil, err
		}
		var fail *Node
		if p.cur.kind == tokF {
			if err := p.advance(); err != nil {
				return nil, err
			}
			fail, err = p.parseCompare()
			if err != nil {
				return nil, err
			}
		}
		return newSuccess(succ, fail), nil
	default:
		return nil, nil
	}
}

// parseOptCompare parses the grammar's "opt_compare": a comparison if
// present, or nil if absent (meaning "equal to sides", resolved by the
// evaluator once it knows the die's side count).
func (p *parser) parseOptCompare() (*Node, error) {
	switch p.cur.kind {
	case tokEq, tokLt, tokGt:
		return p.parseExplicitCompare()
	case tokNumber, tokLBracket:
		n, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		return newCompare(CompareEQ, n), nil
	default:
		return nil, nil
	}
}

// parseCompare is parseOptCompare's mandatory counterpart, used by
// success/fail conditions which must always supply a comparison.
func (p *parser) parseCompare() (*Node, error) {
	switch p.cur.kind {
	case tokEq, tokLt, tokGt:
		return p.parseExplicitCompare()
	case tokNumber, tokLBracket:
		n, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		return newCompare(CompareEQ, n), nil
	default:
		return nil, ErrSyntax
	}
}

// parseExplicitCompare parses ('='|'>'|'<') number, mandatory at its call
// sites (reroll always requires one).
func (p *parser) parseExplicitCompare() (*Node, error) {
	var op CompareOp
	switch p.cur.kind {
	case tokEq:
		op = CompareEQ
	case tokLt:
		op = CompareLT
	case tokGt:
		op = CompareGT
	default:
		return nil, ErrSyntax
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	return newCompare(op, n), nil
}
