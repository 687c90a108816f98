package scenario

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/candlelang/candle/frontend/infer"
)

// ParseType parses the small type syntax scenarios are written in:
//
//	Int
//	List<T>
//	Map<K, V>?
//	Nothing, Any
//	flex(Nothing, String)      a flexible lower..upper pair
//	capture(*)                 a captured star projection
//	capture(out T)             a captured variance projection
//
// Identifiers naming a declared variable resolve to that variable; everything
// else is a type constructor reference.
func ParseType(input string, vars map[string]*infer.TypeVariable) (infer.SimpleType, error) {
	p := &typeParser{input: input, vars: vars}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("unexpected trailing %q in type %q", p.input[p.pos:], p.input)
	}
	return t, nil
}

type typeParser struct {
	input string
	pos   int
	vars  map[string]*infer.TypeVariable
}

func (p *typeParser) parse() (infer.SimpleType, error) {
	p.skipSpaces()
	name := p.ident()
	if name == "" {
		return nil, fmt.Errorf("expected a type at offset %d of %q", p.pos, p.input)
	}

	var t infer.SimpleType
	var err error
	switch name {
	case "flex":
		t, err = p.parseFlex()
	case "capture":
		t, err = p.parseCapture()
	case "Nothing":
		t = infer.BottomType
	case "Any":
		t = infer.TopType
	default:
		t, err = p.parseRef(name)
	}
	if err != nil {
		return nil, err
	}

	p.skipSpaces()
	if p.peek() == '?' {
		p.pos++
		t = infer.NewNullable(t)
	}
	return t, nil
}

func (p *typeParser) parseRef(name string) (infer.SimpleType, error) {
	if v, isVar := p.vars[name]; isVar {
		if p.peekAfterSpaces() == '<' {
			return nil, fmt.Errorf("variable %q cannot take type arguments", name)
		}
		return v, nil
	}
	if p.peekAfterSpaces() != '<' {
		return infer.NewTypeRef(name), nil
	}
	p.skipSpaces()
	p.pos++ // consume '<'
	var args []infer.SimpleType
	for {
		arg, err := p.parse()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipSpaces()
		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return infer.NewTypeRef(name, args...), nil
		default:
			return nil, fmt.Errorf("expected ',' or '>' at offset %d of %q", p.pos, p.input)
		}
	}
}

func (p *typeParser) parseFlex() (infer.SimpleType, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	lower, err := p.parse()
	if err != nil {
		return nil, err
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}
	upper, err := p.parse()
	if err != nil {
		return nil, err
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return infer.NewFlexibleType(lower, upper), nil
}

func (p *typeParser) parseCapture() (infer.SimpleType, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.peek() == '*' {
		p.pos++
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return infer.NewStarCapture(), nil
	}

	variance := p.ident()
	var kind infer.ProjectionKind
	switch variance {
	case "out":
		kind = infer.ProjectionOut
	case "in":
		kind = infer.ProjectionIn
	default:
		return nil, fmt.Errorf("expected '*', 'in' or 'out' in capture at offset %d of %q", p.pos, p.input)
	}
	projected, err := p.parse()
	if err != nil {
		return nil, err
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return infer.NewCapturedType(kind, projected), nil
}

func (p *typeParser) skipSpaces() {
	p.pos += len(p.input[p.pos:]) - len(strings.TrimLeft(p.input[p.pos:], " \t"))
}

func (p *typeParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *typeParser) peekAfterSpaces() byte {
	rest := strings.TrimLeft(p.input[p.pos:], " \t")
	if rest == "" {
		return 0
	}
	return rest[0]
}

func (p *typeParser) expect(c byte) error {
	p.skipSpaces()
	if p.peek() != c {
		return fmt.Errorf("expected %q at offset %d of %q", string(c), p.pos, p.input)
	}
	p.pos++
	return nil
}

func (p *typeParser) ident() string {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.input) {
		r := rune(p.input[p.pos])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}
