package token

import (
	"errors"
	"fmt"
)

var (
	ErrBadUTF8      = errors.New("bad utf8")
	ErrUnterminated = errors.New("unterminated string literal")
	ErrBadEscape    = errors.New("bad escape sequence")
	ErrBadUnicode   = errors.New("bad unicode escape")
	ErrBadNumber    = errors.New("malformed number literal")
)

// LexError wraps a sentinel error with the position at which it was
// detected, the way the teacher repo's TokenizeErr does.
type LexError struct {
	Err error
	Pos *Pos
}

func newLexError(e error, p *Pos) *LexError {
	return &LexError{Err: e, Pos: p}
}

func (e *LexError) Unwrap() error { return e.Err }

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos)
}

func unexpectedErr(what byte, p *Pos) error {
	return newLexError(fmt.Errorf("unexpected byte %q", what), p)
}
