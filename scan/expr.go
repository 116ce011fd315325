package scan

import (
	"fmt"
	"strconv"
	"strings"
)

// evalConst evaluates an enum value expression to a constant. Literals
// pass through; anything else is evaluated by algebraic substitution of
// already-seen sibling constants (env maps full C constant names to
// values) followed by constant folding over |, +, << and parentheses.
// That covers the bit-OR composite constants the header family uses.
func evalConst(expr string, env map[string]uint32) (uint32, error) {
	p := &exprParser{input: strings.TrimSpace(expr), env: env}
	v, err := p.parseOr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("trailing input in expression %q", expr)
	}
	return uint32(v), nil
}

type exprParser struct {
	input string
	pos   int
	env   map[string]uint32
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t' || p.input[p.pos] == '\n') {
		p.pos++
	}
}

func (p *exprParser) parseOr() (uint64, error) {
	v, err := p.parseShift()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		if p.pos < len(p.input) && p.input[p.pos] == '|' {
			p.pos++
			rhs, err := p.parseShift()
			if err != nil {
				return 0, err
			}
			v |= rhs
			continue
		}
		return v, nil
	}
}

func (p *exprParser) parseShift() (uint64, error) {
	v, err := p.parseAdd()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		if strings.HasPrefix(p.input[p.pos:], "<<") {
			p.pos += 2
			rhs, err := p.parseAdd()
			if err != nil {
				return 0, err
			}
			v <<= rhs
			continue
		}
		return v, nil
	}
}

func (p *exprParser) parseAdd() (uint64, error) {
	v, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		if p.pos < len(p.input) && p.input[p.pos] == '+' {
			p.pos++
			rhs, err := p.parsePrimary()
			if err != nil {
				return 0, err
			}
			v += rhs
			continue
		}
		return v, nil
	}
}

func (p *exprParser) parsePrimary() (uint64, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, fmt.Errorf("unexpected end of expression %q", p.input)
	}
	if p.input[p.pos] == '(' {
		p.pos++
		v, err := p.parseOr()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return 0, fmt.Errorf("unbalanced parentheses in expression %q", p.input)
		}
		p.pos++
		return v, nil
	}

	start := p.pos
	for p.pos < len(p.input) && isWordByte(p.input[p.pos]) {
		p.pos++
	}
	tok := p.input[start:p.pos]
	if tok == "" {
		return 0, fmt.Errorf("unexpected character %q in expression %q", p.input[p.pos], p.input)
	}

	if v, ok := p.env[tok]; ok {
		return uint64(v), nil
	}
	// Integer suffixes from the C source carry no value here.
	lit := strings.TrimRight(tok, "uUlL")
	v, err := strconv.ParseUint(lit, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("unknown name or malformed literal %q", tok)
	}
	return v, nil
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
