package token

import "testing"

func TestLexPunctuation(t *testing.T) {
	toks, errs := Lex([]byte(`struct Foo { a: string, b?: int }`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []Type{
		TStruct, TIdent, TLBrace,
		TIdent, TColon, TIdent, TComma,
		TIdent, TQuestion, TColon, TIdent,
		TRBrace, TEOF,
	}
	assertTypes(t, toks, want)
}

func TestLexLongestMatchPunctuation(t *testing.T) {
	toks, errs := Lex([]byte(`a::b ..c...d`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []Type{TIdent, TColonColon, TIdent, TDotDot, TIdent, TSpread, TIdent, TEOF}
	assertTypes(t, toks, want)
}

func TestLexAnnotationOpen(t *testing.T) {
	toks, errs := Lex([]byte(`#[id="item"]`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []Type{TAnnotationOpen, TIdent, TEquals, TString, TRBracket, TEOF}
	assertTypes(t, toks, want)
}

func TestLexNumbers(t *testing.T) {
	cases := []struct {
		in   string
		want Type
	}{
		{"42", TInteger},
		{"-42", TInteger},
		{"+42", TInteger},
		{"3.14", TFloat},
		{"1e10", TFloat},
		{"1.5e-3", TFloat},
		{"1E+3", TFloat},
	}
	for _, c := range cases {
		toks, errs := Lex([]byte(c.in))
		if len(errs) != 0 {
			t.Fatalf("%q: unexpected errors: %v", c.in, errs)
		}
		if toks[0].Type != c.want {
			t.Errorf("%q: got %s want %s", c.in, toks[0].Type, c.want)
		}
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks, errs := Lex([]byte(`"a\nb\u{1F600}\""`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Type != TString {
		t.Fatalf("got %s", toks[0].Type)
	}
	body := toks[0].Bytes[1 : len(toks[0].Bytes)-1]
	got, err := Unquote(body)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a\nb\U0001F600\"" {
		t.Errorf("got %q", got)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	toks, errs := Lex([]byte(`"abc`))
	if len(errs) != 1 {
		t.Fatalf("want 1 error, got %d: %v", len(errs), errs)
	}
	if toks[0].Type != TString {
		t.Fatalf("got %s", toks[0].Type)
	}
}

func TestLexPercentAndBracketPlaceholder(t *testing.T) {
	toks, errs := Lex([]byte(`%unknown [[type]]`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []Type{TPercentIdent, TBracketPlaceholder, TEOF}
	assertTypes(t, toks, want)
	if string(toks[0].Bytes) != "%unknown" {
		t.Errorf("got %q", toks[0].Bytes)
	}
	if string(toks[1].Bytes) != "[[type]]" {
		t.Errorf("got %q", toks[1].Bytes)
	}
}

func TestLexComment(t *testing.T) {
	toks, errs := Lex([]byte("a // this is ignored\nb"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []Type{TIdent, TIdent, TEOF}
	assertTypes(t, toks, want)
	if toks[1].Pos.Line() != 2 {
		t.Errorf("expected line 2, got %d", toks[1].Pos.Line())
	}
}

func TestLexKeywords(t *testing.T) {
	toks, _ := Lex([]byte(`struct enum dispatch to use as type notakeyword`))
	want := []Type{TStruct, TEnum, TDispatch, TTo, TUse, TAs, TType, TIdent, TEOF}
	assertTypes(t, toks, want)
}

func assertTypes(t *testing.T, toks []Token, want []Type) {
	t.Helper()
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Errorf("token %d: got %s want %s (%q)", i, tok.Type, want[i], tok.Bytes)
		}
	}
}
