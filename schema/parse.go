package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcdocval/mcdoc/internal/debug"
	"github.com/mcdocval/mcdoc/token"
)

// Parse lexes and parses one MCDOC source file into a Unit. modulePath is
// the `a::b::c` module path derived from the source file's logical name
// (the root mcdoc package's modulePathOf derives it); it is recorded on the Unit so the resolver can build
// fully qualified names. Parse never returns nil and never aborts on a
// syntax error — it synchronizes to the next safe point and keeps going,
// recording the error on Unit.Errors, per spec §4.2 and §8.
func Parse(src []byte, modulePath string) *Unit {
	toks, lexErrs := token.Lex(src)
	p := &parser{toks: toks}
	u := &Unit{ModulePath: modulePath}
	for _, e := range lexErrs {
		u.Errors = append(u.Errors, e)
	}
	p.parseUnit(u)
	debug.Logf(debug.Parser(), "parser", "module %q: %d structs, %d enums, %d types, %d dispatches, %d errors",
		modulePath, len(u.Structs), len(u.Enums), len(u.Types), len(u.Dispatches), len(u.Errors))
	return u
}

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) cur() token.Token  { return p.toks[p.pos] }
func (p *parser) peekType() token.Type { return p.toks[p.pos].Type }

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if t.Type != token.TEOF {
		p.pos++
	}
	return t
}

func (p *parser) at(t token.Type) bool { return p.peekType() == t }

func (p *parser) expect(t token.Type) (token.Token, error) {
	if p.at(t) {
		return p.advance(), nil
	}
	cur := p.cur()
	return cur, &SyntaxError{
		Expected: t.String(),
		Found:    cur.Type.String(),
		Pos:      cur.Pos,
	}
}

// SyntaxError is a parser-emitted error, carrying the offending token's
// span and a short expected-vs-found message, per spec §4.2 and §7.
type SyntaxError struct {
	Expected string
	Found    string
	Pos      *token.Pos
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected %s, found %s at %s", e.Expected, e.Found, e.Pos)
}

// synchronize skips tokens until a top-level keyword or a closing brace,
// the recovery contract of spec §4.2.
func (p *parser) synchronize() {
	for !p.at(token.TEOF) {
		switch p.peekType() {
		case token.TStruct, token.TEnum, token.TDispatch, token.TUse, token.TType:
			return
		case token.TRBrace:
			p.advance()
			return
		}
		p.advance()
	}
}

func (p *parser) parseUnit(u *Unit) {
	for !p.at(token.TEOF) {
		if p.at(token.TUse) {
			imp, err := p.parseImport()
			if err != nil {
				u.Errors = append(u.Errors, err)
				p.synchronize()
				continue
			}
			u.Imports = append(u.Imports, *imp)
			continue
		}

		anns, err := p.parseAnnotations()
		if err != nil {
			u.Errors = append(u.Errors, err)
			p.synchronize()
			continue
		}

		switch p.peekType() {
		case token.TStruct:
			decl, err := p.parseStruct(anns)
			if err != nil {
				u.Errors = append(u.Errors, err)
				p.synchronize()
				continue
			}
			u.Structs = append(u.Structs, decl)
		case token.TEnum:
			decl, err := p.parseEnumDecl(anns, false)
			if err != nil {
				u.Errors = append(u.Errors, err)
				p.synchronize()
				continue
			}
			u.Enums = append(u.Enums, decl)
		case token.TType:
			decl, err := p.parseTypeAlias(anns)
			if err != nil {
				u.Errors = append(u.Errors, err)
				p.synchronize()
				continue
			}
			u.Types = append(u.Types, decl)
		case token.TDispatch:
			decl, err := p.parseDispatch(anns)
			if err != nil {
				u.Errors = append(u.Errors, err)
				p.synchronize()
				continue
			}
			u.Dispatches = append(u.Dispatches, decl)
		case token.TEOF:
			return
		default:
			u.Errors = append(u.Errors, &SyntaxError{
				Expected: "declaration",
				Found:    p.peekType().String(),
				Pos:      p.cur().Pos,
			})
			p.synchronize()
		}
	}
}

func (p *parser) parseImport() (*Import, error) {
	usePos := p.cur().Pos
	p.advance() // 'use'
	var segs []string
	for {
		id, err := p.expect(token.TIdent)
		if err != nil {
			return nil, err
		}
		segs = append(segs, string(id.Bytes))
		if p.at(token.TColonColon) {
			p.advance()
			continue
		}
		break
	}
	alias := ""
	if p.at(token.TAs) {
		p.advance()
		id, err := p.expect(token.TIdent)
		if err != nil {
			return nil, err
		}
		alias = string(id.Bytes)
	}
	return &Import{Path: segs, Alias: alias, Pos: usePos}, nil
}

// parseAnnotations parses zero or more stacked `#[...]` annotations.
func (p *parser) parseAnnotations() ([]Annotation, error) {
	var anns []Annotation
	for p.at(token.TAnnotationOpen) {
		ann, err := p.parseAnnotation()
		if err != nil {
			return anns, err
		}
		anns = append(anns, *ann)
	}
	return anns, nil
}

func (p *parser) parseAnnotation() (*Annotation, error) {
	openPos := p.cur().Pos
	p.advance() // '#['
	nameTok, err := p.expect(token.TIdent)
	if err != nil {
		return nil, err
	}
	ann := &Annotation{Name: string(nameTok.Bytes), Pos: openPos}

	switch {
	case p.at(token.TEquals):
		p.advance()
		lit, err := p.parseLiteralText()
		if err != nil {
			return nil, err
		}
		ann.Value = lit
	case p.at(token.TLParen):
		p.advance()
		ann.Args = map[string]ArgValue{}
		for !p.at(token.TRParen) {
			keyTok, err := p.expect(token.TIdent)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.TEquals); err != nil {
				return nil, err
			}
			val, err := p.parseArgValue()
			if err != nil {
				return nil, err
			}
			ann.Args[string(keyTok.Bytes)] = val
			if p.at(token.TComma) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(token.TRParen); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.TRBracket); err != nil {
		return nil, err
	}
	return ann, nil
}

func (p *parser) parseArgValue() (ArgValue, error) {
	if p.at(token.TLBracket) {
		p.advance()
		var list []string
		for !p.at(token.TRBracket) {
			if p.at(token.TString) {
				s, err := token.Unquote(p.cur().Bytes[1 : len(p.cur().Bytes)-1])
				if err != nil {
					return ArgValue{}, err
				}
				list = append(list, s)
				p.advance()
			} else {
				id, err := p.expect(token.TIdent)
				if err != nil {
					return ArgValue{}, err
				}
				list = append(list, string(id.Bytes))
			}
			if p.at(token.TComma) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(token.TRBracket); err != nil {
			return ArgValue{}, err
		}
		return ArgValue{List: list}, nil
	}
	s, err := p.parseLiteralText()
	if err != nil {
		return ArgValue{}, err
	}
	return ArgValue{Str: s}, nil
}

// parseLiteralText returns the textual value of a string, identifier, or
// number literal, used for simple annotation values like #[since="1.20"].
func (p *parser) parseLiteralText() (string, error) {
	switch p.peekType() {
	case token.TString:
		tok := p.advance()
		return token.Unquote(tok.Bytes[1 : len(tok.Bytes)-1])
	case token.TIdent, token.TInteger, token.TFloat:
		return string(p.advance().Bytes), nil
	default:
		cur := p.cur()
		return "", &SyntaxError{Expected: "literal", Found: cur.Type.String(), Pos: cur.Pos}
	}
}

func (p *parser) parseStruct(anns []Annotation) (*Struct, error) {
	structPos := p.cur().Pos
	p.advance() // 'struct'
	nameTok, err := p.expect(token.TIdent)
	if err != nil {
		return nil, err
	}
	fields, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	return &Struct{Name: string(nameTok.Bytes), Fields: fields, Annotations: anns, Pos: structPos}, nil
}

func (p *parser) parseFieldList() ([]*Field, error) {
	if _, err := p.expect(token.TLBrace); err != nil {
		return nil, err
	}
	var fields []*Field
	for !p.at(token.TRBrace) && !p.at(token.TEOF) {
		f, err := p.parseField()
		if err != nil {
			return fields, err
		}
		fields = append(fields, f)
		if p.at(token.TComma) {
			p.advance()
		}
	}
	if _, err := p.expect(token.TRBrace); err != nil {
		return fields, err
	}
	return fields, nil
}

func (p *parser) parseField() (*Field, error) {
	anns, err := p.parseAnnotations()
	if err != nil {
		return nil, err
	}
	fieldPos := p.cur().Pos
	if p.at(token.TSpread) {
		p.advance()
		typ, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		return &Field{Spread: true, Type: typ, Annotations: anns, Pos: fieldPos}, nil
	}
	var nameTok token.Token
	if t := p.peekType(); t >= token.TStruct && t <= token.TType {
		// Keywords such as `type` are legal field names.
		nameTok = p.advance()
	} else if nameTok, err = p.expect(token.TIdent); err != nil {
		return nil, err
	}
	optional := false
	if p.at(token.TQuestion) {
		p.advance()
		optional = true
	}
	if _, err := p.expect(token.TColon); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	return &Field{
		Name:        string(nameTok.Bytes),
		Type:        typ,
		Optional:    optional,
		Annotations: anns,
		Pos:         fieldPos,
	}, nil
}

// parseEnumDecl parses an enum declaration. When inline is true and the
// `enum(base)` form is used, the name may be omitted: `enum(string) { ... }`.
func (p *parser) parseEnumDecl(anns []Annotation, inline bool) (*Enum, error) {
	enumPos := p.cur().Pos
	p.advance() // 'enum'
	var base string
	if p.at(token.TLParen) {
		p.advance()
		baseTok, err := p.expect(token.TIdent)
		if err != nil {
			return nil, err
		}
		base = string(baseTok.Bytes)
		if _, err := p.expect(token.TRParen); err != nil {
			return nil, err
		}
	}
	name := ""
	if !(inline && base != "" && p.at(token.TLBrace)) {
		nameTok, err := p.expect(token.TIdent)
		if err != nil {
			return nil, err
		}
		name = string(nameTok.Bytes)
	}
	if base == "" {
		if _, err := p.expect(token.TColon); err != nil {
			return nil, err
		}
		baseTok, err := p.expect(token.TIdent)
		if err != nil {
			return nil, err
		}
		base = string(baseTok.Bytes)
	}
	variants, err := p.parseEnumBody()
	if err != nil {
		return nil, err
	}
	return &Enum{Name: name, BaseType: base, Variants: variants, Annotations: anns, Pos: enumPos}, nil
}

func (p *parser) parseEnumBody() ([]EnumVariant, error) {
	if _, err := p.expect(token.TLBrace); err != nil {
		return nil, err
	}
	var variants []EnumVariant
	for !p.at(token.TRBrace) && !p.at(token.TEOF) {
		varPos := p.cur().Pos
		nameTok, err := p.expect(token.TIdent)
		if err != nil {
			return variants, err
		}
		if _, err := p.expect(token.TEquals); err != nil {
			return variants, err
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return variants, err
		}
		variants = append(variants, EnumVariant{Name: string(nameTok.Bytes), Value: lit, Pos: varPos})
		if p.at(token.TComma) {
			p.advance()
		}
	}
	if _, err := p.expect(token.TRBrace); err != nil {
		return variants, err
	}
	return variants, nil
}

func (p *parser) parseLiteral() (Literal, error) {
	switch p.peekType() {
	case token.TString:
		tok := p.advance()
		s, err := token.Unquote(tok.Bytes[1 : len(tok.Bytes)-1])
		if err != nil {
			return Literal{}, err
		}
		return Literal{IsString: true, Str: s}, nil
	case token.TInteger:
		tok := p.advance()
		n, err := strconv.ParseInt(string(tok.Bytes), 10, 64)
		if err != nil {
			return Literal{}, err
		}
		return Literal{IsInt: true, Int: n}, nil
	case token.TFloat:
		tok := p.advance()
		f, err := strconv.ParseFloat(string(tok.Bytes), 64)
		if err != nil {
			return Literal{}, err
		}
		return Literal{IsFloat: true, Float: f}, nil
	case token.TIdent:
		tok := p.advance()
		switch string(tok.Bytes) {
		case "true":
			return Literal{IsBool: true, Bool: true}, nil
		case "false":
			return Literal{IsBool: true, Bool: false}, nil
		}
		return Literal{IsString: true, Str: string(tok.Bytes)}, nil
	default:
		cur := p.cur()
		return Literal{}, &SyntaxError{Expected: "literal", Found: cur.Type.String(), Pos: cur.Pos}
	}
}

func (p *parser) parseTypeAlias(anns []Annotation) (*TypeAlias, error) {
	typePos := p.cur().Pos
	p.advance() // 'type'
	nameTok, err := p.expect(token.TIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TEquals); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	return &TypeAlias{Name: string(nameTok.Bytes), Type: typ, Annotations: anns, Pos: typePos}, nil
}

// parseNamespacedIdent parses `a` or `a:b` or `a:b:c`, used for dispatcher
// keys and dispatch targets.
func (p *parser) parseNamespacedIdent() (string, error) {
	first, err := p.expect(token.TIdent)
	if err != nil {
		return "", err
	}
	segs := []string{string(first.Bytes)}
	for p.at(token.TColon) {
		p.advance()
		id, err := p.expect(token.TIdent)
		if err != nil {
			return "", err
		}
		segs = append(segs, string(id.Bytes))
	}
	return strings.Join(segs, ":"), nil
}

func (p *parser) parseDispatch(anns []Annotation) (*Dispatch, error) {
	dispatchPos := p.cur().Pos
	p.advance() // 'dispatch'
	key, err := p.parseNamespacedIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TLBracket); err != nil {
		return nil, err
	}
	var targets []string
	for !p.at(token.TRBracket) {
		if p.at(token.TPercentIdent) {
			targets = append(targets, string(p.advance().Bytes))
		} else {
			t, err := p.parseNamespacedIdent()
			if err != nil {
				return nil, err
			}
			targets = append(targets, t)
		}
		if p.at(token.TComma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.TRBracket); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TTo); err != nil {
		return nil, err
	}
	target, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	return &Dispatch{Registry: key, Targets: targets, TargetType: target, Annotations: anns, Pos: dispatchPos}, nil
}

// parseTypeExpr parses a full type expression, including the `|` union
// fold, per spec §4.2.
func (p *parser) parseTypeExpr() (*Expr, error) {
	first, err := p.parseTypeExprNoUnion()
	if err != nil {
		return nil, err
	}
	if !p.at(token.TPipe) {
		return first, nil
	}
	alts := []*Expr{first}
	for p.at(token.TPipe) {
		p.advance()
		next, err := p.parseTypeExprNoUnion()
		if err != nil {
			return nil, err
		}
		alts = append(alts, next)
	}
	return &Expr{Kind: KindUnion, Alternatives: alts, Pos: first.Pos}, nil
}

func (p *parser) parseTypeExprNoUnion() (*Expr, error) {
	anns, err := p.parseAnnotations()
	if err != nil {
		return nil, err
	}
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	e.Annotations = append(e.Annotations, anns...)
	for {
		if p.at(token.TLBracket) {
			e, err = p.parseArrayPostfix(e)
			if err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.at(token.TAt) {
		p.advance()
		constraint, err := p.parseArrayConstraintBody()
		if err != nil {
			return nil, err
		}
		if e.Kind != KindArray {
			return nil, &SyntaxError{Expected: "array type before '@' constraint", Found: e.Kind.String(), Pos: e.Pos}
		}
		e.Constraint = constraint
	}
	// since/until gate the field or alternative as a whole, so they must be
	// visible on the outermost node no matter how many array brackets wrap
	// the primary they were written against. id/uuid/match_regex stay put:
	// those check one concrete value, and for an array that's each element,
	// which already sees them via the Elem they were attached to above.
	if e.Kind == KindArray {
		e.Annotations = append(e.Annotations, versionAnnotations(anns)...)
	}
	return e, nil
}

func versionAnnotations(anns []Annotation) []Annotation {
	var out []Annotation
	for _, a := range anns {
		if a.Name == "since" || a.Name == "until" {
			out = append(out, a)
		}
	}
	return out
}

var primitiveNames = map[string]bool{
	"string": true, "int": true, "long": true, "short": true, "byte": true,
	"float": true, "double": true, "boolean": true, "any": true,
}

func (p *parser) parsePrimary() (*Expr, error) {
	pos := p.cur().Pos
	switch p.peekType() {
	case token.TLParen:
		p.advance()
		inner, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.TRParen); err != nil {
			return nil, err
		}
		return inner, nil
	case token.TPercentIdent:
		tok := p.advance()
		return &Expr{Kind: KindPercent, Raw: string(tok.Bytes), Pos: pos}, nil
	case token.TBracketPlaceholder:
		tok := p.advance()
		return &Expr{Kind: KindPlaceholder, Raw: string(tok.Bytes), Pos: pos}, nil
	case token.TStruct:
		p.advance()
		fields, err := p.parseFieldList()
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: KindStruct, Fields: fields, Pos: pos}, nil
	case token.TEnum:
		decl, err := p.parseEnumDecl(nil, true)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: KindEnum, EnumDecl: decl, Pos: pos}, nil
	case token.TIdent:
		return p.parseNamedOrDispatcherRef(pos)
	default:
		return nil, &SyntaxError{Expected: "type expression", Found: p.peekType().String(), Pos: pos}
	}
}

func (p *parser) parseNamedOrDispatcherRef(pos *token.Pos) (*Expr, error) {
	first, err := p.parseNamespacedIdent()
	if err != nil {
		return nil, err
	}
	if strings.Contains(first, ":") && p.at(token.TLBracket) {
		p.advance()
		key, err := p.parseLiteralText()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.TRBracket); err != nil {
			return nil, err
		}
		return &Expr{Kind: KindDispatcherRef, DispatchRegistry: first, DispatchKey: key, Pos: pos}, nil
	}

	name := first
	for p.at(token.TColonColon) {
		p.advance()
		id, err := p.expect(token.TIdent)
		if err != nil {
			return nil, err
		}
		name += "::" + string(id.Bytes)
	}

	if primitiveNames[name] {
		return &Expr{Kind: KindPrimitive, Primitive: name, Pos: pos}, nil
	}

	e := &Expr{Kind: KindNamed, Name: name, Pos: pos}
	if p.at(token.TLAngle) {
		p.advance()
		for !p.at(token.TRAngle) {
			arg, err := p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
			e.TypeArgs = append(e.TypeArgs, arg)
			if p.at(token.TComma) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(token.TRAngle); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (p *parser) parseArrayPostfix(elem *Expr) (*Expr, error) {
	pos := p.cur().Pos
	p.advance() // '['
	var constraint *ArrayConstraint
	if !p.at(token.TRBracket) {
		c, err := p.parseArrayConstraintBody()
		if err != nil {
			return nil, err
		}
		constraint = c
	}
	if _, err := p.expect(token.TRBracket); err != nil {
		return nil, err
	}
	return &Expr{Kind: KindArray, Elem: elem, Constraint: constraint, Pos: pos}, nil
}

// parseArrayConstraintBody parses one of: `n`, `min..max`, `..max`,
// `min..`, per spec §4.2.
func (p *parser) parseArrayConstraintBody() (*ArrayConstraint, error) {
	if p.at(token.TDotDot) {
		p.advance()
		maxTok, err := p.expect(token.TInteger)
		if err != nil {
			return nil, err
		}
		max, _ := strconv.Atoi(string(maxTok.Bytes))
		return &ArrayConstraint{Max: &max}, nil
	}
	firstTok, err := p.expect(token.TInteger)
	if err != nil {
		return nil, err
	}
	first, _ := strconv.Atoi(string(firstTok.Bytes))
	if !p.at(token.TDotDot) {
		return &ArrayConstraint{Exact: &first}, nil
	}
	p.advance()
	if p.at(token.TInteger) {
		maxTok := p.advance()
		max, _ := strconv.Atoi(string(maxTok.Bytes))
		return &ArrayConstraint{Min: &first, Max: &max}, nil
	}
	return &ArrayConstraint{Min: &first}, nil
}
