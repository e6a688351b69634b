package formula

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Parse parses a formula string into an AST. The grammar is case-sensitive
// and whitespace-insensitive around tokens. Any syntax error, unknown
// function name or wrong argument count is reported as a non-nil error; the
// evaluator maps all such errors to 0.0.
func Parse(text string) (Node, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, fmt.Errorf("unexpected trailing input at %q", p.peek().text)
	}
	return node, nil
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokSymbol
	tokEOF
)

type token struct {
	kind tokenKind
	text string
}

func lex(text string) ([]token, error) {
	var toks []token
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r >= '0' && r <= '9':
			j := i
			for j < len(runes) && (runes[j] >= '0' && runes[j] <= '9' || runes[j] == '.') {
				j++
			}
			toks = append(toks, token{tokNumber, string(runes[i:j])})
			i = j
		case r >= 'a' && r <= 'z' || r == '_':
			j := i
			for j < len(runes) && (runes[j] >= 'a' && runes[j] <= 'z' || runes[j] == '_' || runes[j] >= '0' && runes[j] <= '9') {
				j++
			}
			toks = append(toks, token{tokIdent, string(runes[i:j])})
			i = j
		case strings.ContainsRune("+-*/(),", r):
			toks = append(toks, token{tokSymbol, string(r)})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q", r)
		}
	}
	toks = append(toks, token{tokEOF, ""})
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) atEnd() bool {
	return p.peek().kind == tokEOF
}

func (p *parser) expect(sym string) error {
	t := p.next()
	if t.kind != tokSymbol || t.text != sym {
		return fmt.Errorf("expected %q, found %q", sym, t.text)
	}
	return nil
}

func (p *parser) acceptSymbol(sym string) bool {
	t := p.peek()
	if t.kind == tokSymbol && t.text == sym {
		p.pos++
		return true
	}
	return false
}

// parseExpr handles '+' and '-', left-associative.
func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokSymbol || (t.text != "+" && t.text != "-") {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = BinaryOp{Op: t.text[0], Left: left, Right: right}
	}
}

// parseTerm handles '*' and '/', left-associative.
func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokSymbol || (t.text != "*" && t.text != "/") {
			return left, nil
		}
		p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = BinaryOp{Op: t.text[0], Left: left, Right: right}
	}
}

func (p *parser) parseFactor() (Node, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed number %q", t.text)
		}
		return NumberLit{Value: v}, nil
	case tokIdent:
		return p.parseFuncCall()
	case tokSymbol:
		if t.text == "(" {
			p.next()
			inner, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return inner, nil
		}
	}
	return nil, fmt.Errorf("unexpected token %q", t.text)
}

func (p *parser) parseFuncCall() (Node, error) {
	name := p.next().text
	if err := p.expect("("); err != nil {
		return nil, err
	}
	switch name {
	case "cell":
		args, err := p.parseIntArgs(3)
		if err != nil {
			return nil, err
		}
		return CellRef{Table: args[0], Row: args[1], Col: args[2]}, nil
	case "sum_col":
		args, err := p.parseIntArgs(4)
		if err != nil {
			return nil, err
		}
		return SumCol{Table: args[0], Col: args[1], FromRow: args[2], ToRow: args[3]}, nil
	case "sum_row":
		args, err := p.parseIntArgs(4)
		if err != nil {
			return nil, err
		}
		return SumRow{Table: args[0], Row: args[1], FromCol: args[2], ToCol: args[3]}, nil
	case "sum_cells":
		return p.parseSumCells()
	case "abs", "round":
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return Builtin{Name: name, Args: []Node{arg}}, nil
	case "min", "max":
		var args []Node
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.acceptSymbol(",") {
				break
			}
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, fmt.Errorf("%s requires at least two arguments", name)
		}
		return Builtin{Name: name, Args: args}, nil
	default:
		return nil, fmt.Errorf("unknown function %q", name)
	}
}

// parseIntArgs parses exactly n comma-separated non-negative integers and the
// closing parenthesis.
func (p *parser) parseIntArgs(n int) ([]int, error) {
	args := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
		v, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parseInt() (int, error) {
	t := p.next()
	if t.kind != tokNumber {
		return 0, fmt.Errorf("expected index, found %q", t.text)
	}
	v, err := strconv.Atoi(t.text)
	if err != nil {
		return 0, fmt.Errorf("index %q is not a non-negative integer", t.text)
	}
	return v, nil
}

func (p *parser) parseSumCells() (Node, error) {
	var refs []CellRef
	for {
		if err := p.expect("("); err != nil {
			return nil, err
		}
		args, err := p.parseIntArgs(3)
		if err != nil {
			return nil, err
		}
		refs = append(refs, CellRef{Table: args[0], Row: args[1], Col: args[2]})
		if !p.acceptSymbol(",") {
			break
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("sum_cells requires at least one coordinate")
	}
	return SumCells{Refs: refs}, nil
}
