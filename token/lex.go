package token

import (
	"unicode/utf8"

	"github.com/mcdocval/mcdoc/internal/debug"
)

// Lex tokenizes src into a sequence of Token values terminated by a TEOF
// token. It is total: bytes it cannot classify become a TUnknown token
// rather than aborting. Any conditions worth surfacing to a caller (an
// unterminated string, invalid UTF-8) are additionally collected into the
// returned error slice, keyed to the same offending token, so a parser can
// choose whether to report them without re-scanning token bytes.
func Lex(src []byte) ([]Token, []error) {
	doc := NewPosDoc(src)
	l := &lexer{src: src, doc: doc}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			l.errs = append(l.errs, err)
		}
		toks = append(toks, tok)
		if tok.Type == TEOF {
			break
		}
	}
	debug.Logf(debug.Lexer(), "lexer", "produced %d tokens, %d errors from %d bytes", len(toks), len(l.errs), len(src))
	return toks, l.errs
}

type lexer struct {
	src  []byte
	doc  *PosDoc
	off  int
	errs []error
}

func (l *lexer) pos(i int) *Pos { return l.doc.Pos(i) }

func (l *lexer) next() (Token, error) {
	l.skipTrivia()
	start := l.off
	if l.off >= len(l.src) {
		return Token{Type: TEOF, Pos: l.pos(start)}, nil
	}
	c := l.src[l.off]
	switch {
	case c == '"':
		return l.lexString()
	case c == '#':
		return l.lexHash()
	case c == '%':
		return l.lexPercent()
	case c == '[':
		if l.peekAt(1) == '[' {
			return l.lexBracketPlaceholder()
		}
		l.off++
		return Token{Type: TLBracket, Bytes: l.src[start:l.off], Pos: l.pos(start)}, nil
	case c == ':':
		if l.peekAt(1) == ':' {
			l.off += 2
			return Token{Type: TColonColon, Bytes: l.src[start:l.off], Pos: l.pos(start)}, nil
		}
		l.off++
		return Token{Type: TColon, Bytes: l.src[start:l.off], Pos: l.pos(start)}, nil
	case c == '.':
		if l.peekAt(1) == '.' && l.peekAt(2) == '.' {
			l.off += 3
			return Token{Type: TSpread, Bytes: l.src[start:l.off], Pos: l.pos(start)}, nil
		}
		if l.peekAt(1) == '.' {
			l.off += 2
			return Token{Type: TDotDot, Bytes: l.src[start:l.off], Pos: l.pos(start)}, nil
		}
		if isDigit(l.peekAt(1)) {
			return l.lexNumber()
		}
		l.off++
		return Token{Type: TDot, Bytes: l.src[start:l.off], Pos: l.pos(start)}, nil
	case isDigit(c) || ((c == '+' || c == '-') && isDigit(l.peekAt(1))):
		return l.lexNumber()
	case isIdentStart(c):
		return l.lexIdent()
	default:
		if typ, ok := singlePunct[c]; ok {
			l.off++
			return Token{Type: typ, Bytes: l.src[start:l.off], Pos: l.pos(start)}, nil
		}
		r, sz := utf8.DecodeRune(l.src[l.off:])
		if r == utf8.RuneError && sz <= 1 {
			l.off++
			return Token{Type: TUnknown, Bytes: l.src[start:l.off], Pos: l.pos(start)}, newLexError(ErrBadUTF8, l.pos(start))
		}
		l.off += sz
		return Token{Type: TUnknown, Bytes: l.src[start:l.off], Pos: l.pos(start)}, unexpectedErr(c, l.pos(start))
	}
}

var singlePunct = map[byte]Type{
	'{': TLBrace,
	'}': TRBrace,
	']': TRBracket,
	'(': TLParen,
	')': TRParen,
	'<': TLAngle,
	'>': TRAngle,
	',': TComma,
	';': TSemicolon,
	'|': TPipe,
	'?': TQuestion,
	'=': TEquals,
	'@': TAt,
}

func (l *lexer) peekAt(n int) byte {
	if l.off+n >= len(l.src) {
		return 0
	}
	return l.src[l.off+n]
}

func (l *lexer) skipTrivia() {
	for l.off < len(l.src) {
		c := l.src[l.off]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			l.off++
			continue
		}
		if c == '/' && l.peekAt(1) == '/' {
			for l.off < len(l.src) && l.src[l.off] != '\n' {
				l.off++
			}
			continue
		}
		break
	}
}

func (l *lexer) lexHash() (Token, error) {
	start := l.off
	if l.peekAt(1) == '[' {
		l.off += 2
		return Token{Type: TAnnotationOpen, Bytes: l.src[start:l.off], Pos: l.pos(start)}, nil
	}
	l.off++
	return Token{Type: THash, Bytes: l.src[start:l.off], Pos: l.pos(start)}, nil
}

func (l *lexer) lexPercent() (Token, error) {
	start := l.off
	l.off++ // consume '%'
	if l.off >= len(l.src) || !isIdentStart(l.src[l.off]) {
		return Token{Type: TUnknown, Bytes: l.src[start:l.off], Pos: l.pos(start)}, unexpectedErr('%', l.pos(start))
	}
	for l.off < len(l.src) && isIdentCont(l.src[l.off]) {
		l.off++
	}
	return Token{Type: TPercentIdent, Bytes: l.src[start:l.off], Pos: l.pos(start)}, nil
}

func (l *lexer) lexBracketPlaceholder() (Token, error) {
	start := l.off
	l.off += 2 // consume "[["
	for l.off < len(l.src) {
		if l.src[l.off] == ']' && l.peekAt(1) == ']' {
			l.off += 2
			return Token{Type: TBracketPlaceholder, Bytes: l.src[start:l.off], Pos: l.pos(start)}, nil
		}
		l.off++
	}
	return Token{Type: TBracketPlaceholder, Bytes: l.src[start:l.off], Pos: l.pos(start)}, newLexError(ErrUnterminated, l.pos(start))
}

func (l *lexer) lexString() (Token, error) {
	start := l.off
	l.off++ // opening quote
	for l.off < len(l.src) {
		c := l.src[l.off]
		if c == '\\' {
			l.off += 2
			continue
		}
		if c == '"' {
			l.off++
			return Token{Type: TString, Bytes: l.src[start:l.off], Pos: l.pos(start)}, nil
		}
		if c == '\n' {
			break
		}
		l.off++
	}
	return Token{Type: TString, Bytes: l.src[start:l.off], Pos: l.pos(start)}, newLexError(ErrUnterminated, l.pos(start))
}

func (l *lexer) lexNumber() (Token, error) {
	start := l.off
	isFloat := false
	if l.peekAt(0) == '+' || l.peekAt(0) == '-' {
		l.off++
	}
	for l.off < len(l.src) && isDigit(l.src[l.off]) {
		l.off++
	}
	if l.off < len(l.src) && l.src[l.off] == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.off++
		for l.off < len(l.src) && isDigit(l.src[l.off]) {
			l.off++
		}
	}
	if l.off < len(l.src) && (l.src[l.off] == 'e' || l.src[l.off] == 'E') {
		save := l.off
		l.off++
		if l.off < len(l.src) && (l.src[l.off] == '+' || l.src[l.off] == '-') {
			l.off++
		}
		if l.off < len(l.src) && isDigit(l.src[l.off]) {
			isFloat = true
			for l.off < len(l.src) && isDigit(l.src[l.off]) {
				l.off++
			}
		} else {
			l.off = save
		}
	}
	typ := TInteger
	if isFloat {
		typ = TFloat
	}
	return Token{Type: typ, Bytes: l.src[start:l.off], Pos: l.pos(start)}, nil
}

func (l *lexer) lexIdent() (Token, error) {
	start := l.off
	for l.off < len(l.src) && isIdentCont(l.src[l.off]) {
		l.off++
	}
	word := l.src[start:l.off]
	if kw, ok := keywords[string(word)]; ok {
		return Token{Type: kw, Bytes: word, Pos: l.pos(start)}, nil
	}
	return Token{Type: TIdent, Bytes: word, Pos: l.pos(start)}, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
