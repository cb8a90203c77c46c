package token

import (
	"fmt"
	"sort"
	"strconv"
)

// PosDoc tracks newline offsets for a source buffer so that line/column
// pairs can be derived lazily from a byte offset, instead of being computed
// eagerly for every token.
type PosDoc struct {
	src []byte
	nl  []int
}

// NewPosDoc creates a PosDoc over src. It does not copy src.
func NewPosDoc(src []byte) *PosDoc {
	d := &PosDoc{src: src}
	for i, b := range src {
		if b == '\n' {
			d.nl = append(d.nl, i)
		}
	}
	return d
}

// Pos returns the position at byte offset i.
func (d *PosDoc) Pos(i int) *Pos {
	return &Pos{Offset: i, Doc: d}
}

func (d *PosDoc) lineCol(off int) (line, col int) {
	n := len(d.nl)
	i := sort.Search(n, func(i int) bool { return d.nl[i] >= off })
	if i == 0 {
		return 1, off + 1
	}
	return i + 1, off - d.nl[i-1]
}

// Pos is a byte offset into a source buffer, with line/column derived on
// demand for error reporting.
type Pos struct {
	Offset int
	Doc    *PosDoc
}

// LineCol returns the 1-based line and column of this position.
func (p *Pos) LineCol() (line, col int) {
	if p == nil || p.Doc == nil {
		return 0, 0
	}
	return p.Doc.lineCol(p.Offset)
}

func (p *Pos) Line() int { l, _ := p.LineCol(); return l }
func (p *Pos) Col() int  { _, c := p.LineCol(); return c }

func (p *Pos) String() string {
	if p == nil || p.Doc == nil {
		return "<unknown>"
	}
	line, col := p.LineCol()
	lo, hi := max(0, p.Offset-8), min(len(p.Doc.src), p.Offset+8)
	sample := strconv.Quote(string(p.Doc.src[lo:hi]))
	return fmt.Sprintf("%d:%d (near %s)", line, col, sample)
}
